package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/typee/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Object", "WPM"}
	rows := [][]string{
		{"1", "0xabc", "72"},
		{"10", "0x1", "8"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " # Object WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1 0xabc   72" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10 0x1      8" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderScoreTableTruncatesIDs(t *testing.T) {
	var buf bytes.Buffer
	records := []model.ScoreRecord{{ID: "0x0123456789abcdef", WPM: 64, Accuracy: 97}}
	if err := RenderScoreTable(&buf, records, 10); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0x01234...") {
		t.Fatalf("expected truncated id in output: %q", out)
	}
	if !strings.Contains(out, "97%") {
		t.Fatalf("expected accuracy in output: %q", out)
	}
}
