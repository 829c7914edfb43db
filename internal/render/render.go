// Package render maps a session onto the visible window of classified cells.
package render

import "github.com/verte-zerg/typee/internal/layout"

// Class is the correctness of one target character.
type Class int

const (
	Untyped Class = iota
	Correct
	Incorrect
)

// DefaultRows is the height of the scrolling window.
const DefaultRows = 3

// Cell is one target character at an absolute offset of the flattened sequence.
type Cell struct {
	Char   rune
	Offset int
	Class  Class
	Caret  bool
	Space  bool
}

// Row is a rendered display line.
type Row struct {
	Line  int
	Cells []Cell
}

// Window classifies the rows lines starting at the active line. Each row
// includes the separator after every word except the last word of the
// sequence. The caret is placed only while running.
func Window(lines []layout.Line, input []rune, running bool, rows int) []Row {
	if rows <= 0 {
		rows = DefaultRows
	}
	active := layout.ActiveLineIndex(lines, len(input))
	end := active + rows
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]Row, 0, end-active)
	offset := layout.LineStartOffset(lines, active)
	for li := active; li < end; li++ {
		line := lines[li]
		row := Row{Line: li, Cells: make([]Cell, 0, line.Width()+1)}
		for wi, word := range line {
			for _, ch := range word {
				row.Cells = append(row.Cells, classify(ch, offset, input, running))
				offset++
			}
			last := li == len(lines)-1 && wi == len(line)-1
			if !last {
				cell := classify(' ', offset, input, running)
				cell.Space = true
				row.Cells = append(row.Cells, cell)
				offset++
			}
		}
		out = append(out, row)
	}
	return out
}

func classify(ch rune, offset int, input []rune, running bool) Cell {
	cell := Cell{Char: ch, Offset: offset}
	switch {
	case offset >= len(input):
		cell.Class = Untyped
	case input[offset] == ch:
		cell.Class = Correct
	default:
		cell.Class = Incorrect
	}
	cell.Caret = running && offset == len(input)
	return cell
}

// Progress returns the share of the target covered by input, in percent.
func Progress(target, input []rune) int {
	if len(target) == 0 {
		return 0
	}
	n := len(input)
	if n > len(target) {
		n = len(target)
	}
	return int(float64(n) / float64(len(target)) * 100)
}
