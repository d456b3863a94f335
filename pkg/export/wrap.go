package export

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapper lays out one paragraph into display lines.
type wrapper struct {
	width    int // 0 disables wrapping
	tabWidth int
	expand   bool // replace tabs with spaces
}

func (w wrapper) advance(col int, r rune) int {
	if r == '\t' {
		return col + w.tabWidth - col%w.tabWidth
	}
	return col + runewidth.RuneWidth(r)
}

// lines breaks text at spaces so that no line exceeds the wrap width. A word
// longer than the width is broken where it overflows. The space at a break is dropped.
func (w wrapper) lines(text string) []string {
	var (
		out       []string
		line      []rune
		col       int
		lastSpace = -1
	)

	emit := func(rs []rune) {
		out = append(out, strings.TrimRight(string(rs), " "))
	}

	for _, r := range text {
		next := w.advance(col, r)

		if w.width > 0 && next > w.width && len(line) > 0 {
			switch {
			case r == ' ':
				emit(line)
				line, col, lastSpace = line[:0], 0, -1
				continue
			case lastSpace >= 0:
				emit(line[:lastSpace])
				tail := append([]rune(nil), line[lastSpace+1:]...)
				line, col, lastSpace = tail, 0, -1
				for _, t := range tail {
					col = w.advance(col, t)
				}
			default:
				emit(line)
				line, col, lastSpace = line[:0], 0, -1
			}
			next = w.advance(col, r)
		}

		if r == '\t' && w.expand {
			for ; col < next; col++ {
				line = append(line, ' ')
			}
			continue
		}
		if r == ' ' {
			lastSpace = len(line)
		}
		line = append(line, r)
		col = next
	}

	if len(line) > 0 || len(out) == 0 {
		out = append(out, string(line))
	}
	return out
}
