package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// Diff is a unified line diff between a previous export and a new one.
type Diff struct {
	// Path names the export in the diff headers.
	Path string

	Hunks []Hunk

	Added   int
	Removed int
}

// Hunk is one @@ section. Lines carry their ' ', '+' or '-' prefix.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []string
}

// NewDiff compares previous and next line by line. It returns nil when they
// hold the same lines. A missing previous export is passed as nil.
func NewDiff(path string, previous, next []byte) *Diff {
	oldLines, newLines := splitLines(previous), splitLines(next)
	if slices.Equal(oldLines, newLines) {
		return nil
	}

	// Exports repeat blank lines heavily, so popular lines must not be junked.
	matcher := difflib.NewMatcherWithJunk(oldLines, newLines, false, nil)

	diff := &Diff{Path: path}
	for _, group := range matcher.GetGroupedOpCodes(diffContext) {
		diff.Hunks = append(diff.Hunks, diff.buildHunk(group, oldLines, newLines))
	}
	return diff
}

// String renders the diff in unified format. Line counts are always written,
// including for single-line ranges.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, line := range h.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// buildHunk turns one group of opcodes into a hunk and tallies its changes.
func (d *Diff) buildHunk(group []difflib.OpCode, oldLines, newLines []string) Hunk {
	first, last := group[0], group[len(group)-1]
	h := Hunk{
		OldStart: first.I1 + 1,
		OldLines: last.I2 - first.I1,
		NewStart: first.J1 + 1,
		NewLines: last.J2 - first.J1,
	}

	for _, op := range group {
		if op.Tag == 'e' {
			h.Lines = appendPrefixed(h.Lines, ' ', oldLines[op.I1:op.I2])
			continue
		}
		if op.Tag == 'r' || op.Tag == 'd' {
			h.Lines = appendPrefixed(h.Lines, '-', oldLines[op.I1:op.I2])
			d.Removed += op.I2 - op.I1
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			h.Lines = appendPrefixed(h.Lines, '+', newLines[op.J1:op.J2])
			d.Added += op.J2 - op.J1
		}
	}

	// An empty side is numbered from the line before it.
	if h.OldLines == 0 {
		h.OldStart--
	}
	if h.NewLines == 0 {
		h.NewStart--
	}
	return h
}

func appendPrefixed(dst []string, prefix byte, lines []string) []string {
	for _, line := range lines {
		dst = append(dst, string(prefix)+line)
	}
	return dst
}
