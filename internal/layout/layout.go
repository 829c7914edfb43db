// Package layout splits a word sequence into display lines and maps input
// offsets onto them.
package layout

import (
	"strings"
	"unicode/utf8"
)

// Line is a run of consecutive words rendered on one display row.
type Line []string

// Text returns the words joined by single spaces.
func (l Line) Text() string {
	return strings.Join(l, " ")
}

// Width returns the rune count of Text.
func (l Line) Width() int {
	if len(l) == 0 {
		return 0
	}
	total := len(l) - 1
	for _, w := range l {
		total += utf8.RuneCountInString(w)
	}
	return total
}

// Target returns the flattened sequence the user types against.
func Target(words []string) string {
	return strings.Join(words, " ")
}

// Layout greedily packs words into lines no wider than widthBudget. A word
// wider than the budget occupies a line of its own.
func Layout(words []string, widthBudget int) []Line {
	if len(words) == 0 {
		return nil
	}
	lines := []Line{}
	var current Line
	currentWidth := 0
	for _, word := range words {
		wordWidth := utf8.RuneCountInString(word)
		if len(current) > 0 && currentWidth+1+wordWidth > widthBudget {
			lines = append(lines, current)
			current = nil
			currentWidth = 0
		}
		if len(current) > 0 {
			currentWidth++
		}
		current = append(current, word)
		currentWidth += wordWidth
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// LineStartOffset returns the offset of the first character of line lineIndex
// within the flattened sequence.
func LineStartOffset(lines []Line, lineIndex int) int {
	offset := 0
	for i := 0; i < lineIndex && i < len(lines); i++ {
		offset += lines[i].Width() + 1
	}
	return offset
}

// ActiveLineIndex returns the line holding the caret for an input of
// inputLength characters. Empty input or an input past the end maps to 0.
func ActiveLineIndex(lines []Line, inputLength int) int {
	if inputLength == 0 {
		return 0
	}
	offset := 0
	for i, line := range lines {
		width := line.Width()
		if inputLength < offset+width+1 {
			return i
		}
		offset += width + 1
	}
	return 0
}
