package export

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// EmphasisCount tallies emphasis nodes in parsed Markdown.
type EmphasisCount struct {
	Strong   int // level-2 emphasis, **x**
	Emphasis int // level-1 emphasis, *x*
}

// CountEmphasis parses src as CommonMark and counts emphasis nodes.
// Raw HTML such as <strong> is not counted.
func CountEmphasis(src []byte) EmphasisCount {
	var count EmphasisCount

	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if em, ok := n.(*ast.Emphasis); ok {
			if em.Level >= 2 {
				count.Strong++
			} else {
				count.Emphasis++
			}
		}
		return ast.WalkContinue, nil
	})

	return count
}

// ValidateMarkdown reports ErrEmphasisMismatch when src does not parse into
// exactly the expected emphasis.
func ValidateMarkdown(src []byte, want EmphasisCount) error {
	got := CountEmphasis(src)
	if got != want {
		return fmt.Errorf("%w: want %d strong/%d emphasis, parsed %d/%d",
			ErrEmphasisMismatch, want.Strong, want.Emphasis, got.Strong, got.Emphasis)
	}
	return nil
}
