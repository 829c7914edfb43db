package tui

import (
	"testing"

	"github.com/verte-zerg/typee/internal/layout"
	"github.com/verte-zerg/typee/internal/render"
)

func TestStyleCellCaret(t *testing.T) {
	rows := render.Window([]layout.Line{{"ab"}}, []rune("a"), true, 1)
	cells := rows[0].Cells
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if got := styleCell(cells[0], true); got != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first cell")
	}
	if got := styleCell(cells[1], true); got != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second cell")
	}
}

func TestStyleCellNoCaretWhenIdle(t *testing.T) {
	rows := render.Window([]layout.Line{{"ab"}}, nil, false, 1)
	if got := styleCell(rows[0].Cells[0], true); got != pendingStyle.Render("a") {
		t.Fatalf("expected pending style without caret")
	}
}

func TestStyleCellKeepsTargetOnMistype(t *testing.T) {
	rows := render.Window([]layout.Line{{"ab"}}, []rune("ax"), true, 1)
	if got := styleCell(rows[0].Cells[1], true); got != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestStyleCellWrongSpaceDot(t *testing.T) {
	rows := render.Window([]layout.Line{{"a", "b"}}, []rune("ax"), true, 1)
	cells := rows[0].Cells
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if got := styleCell(cells[1], true); got != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestRenderRowsJoinsLines(t *testing.T) {
	lines := []layout.Line{{"ab"}, {"cd"}}
	rows := render.Window(lines, nil, false, 2)
	out := renderRows(rows, true)
	want := renderRow(rows[0], true) + "\n" + renderRow(rows[1], true)
	if out != want {
		t.Fatalf("unexpected rows output: %q", out)
	}
}

func TestStyleCellCaretHiddenDuringBlink(t *testing.T) {
	rows := render.Window([]layout.Line{{"ab"}}, []rune("a"), true, 1)
	caret := rows[0].Cells[1]
	if !caret.Caret {
		t.Fatalf("expected caret on second cell")
	}
	if got := styleCell(caret, false); got != pendingStyle.Render("b") {
		t.Fatalf("expected plain pending style while the caret blinks off")
	}
}
