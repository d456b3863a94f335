package quill

import "fmt"

// FindingKind classifies a strict-mode toggle finding.
type FindingKind string

const (
	// FindingOutOfSequence is a toggle switched off while another toggle opened
	// after it is still on.
	FindingOutOfSequence FindingKind = "out-of-sequence"

	// FindingUnclosedAtBreak is a toggle still on when a paragraph break reset it.
	FindingUnclosedAtBreak FindingKind = "unclosed-at-break"
)

// Toggle names a character attribute control code.
type Toggle string

const (
	ToggleBold        Toggle = "bold"
	ToggleUnderline   Toggle = "underline"
	ToggleSubscript   Toggle = "subscript"
	ToggleSuperscript Toggle = "superscript"
	ToggleItalic      Toggle = "italic"
)

// Finding is one strict-mode observation. Findings describe nesting that the
// decoder resolves by the paragraph-reset rule; they are not errors.
type Finding struct {
	Kind      FindingKind `json:"kind"`
	Toggle    Toggle      `json:"toggle"`
	Offset    int         `json:"offset"`
	Paragraph int         `json:"paragraph"`

	// Top is the toggle that was innermost when an out-of-sequence close happened.
	Top Toggle `json:"top,omitempty"`
}

// Message returns a human-readable description.
func (f Finding) Message() string {
	switch f.Kind {
	case FindingOutOfSequence:
		return fmt.Sprintf("%s switched off while %s is still open", f.Toggle, f.Top)
	case FindingUnclosedAtBreak:
		return fmt.Sprintf("%s still on at paragraph end", f.Toggle)
	default:
		return string(f.Kind)
	}
}

// Lint replays the body of a Quill file with a strict nesting model and reports
// toggles that are closed out of order or left open at a paragraph break.
// Structural problems return the same errors as Decode.
func Lint(data []byte, opts ...Option) ([]Finding, error) {
	doc, err := Decode(data, opts...)
	if err != nil {
		return nil, err
	}
	return LintDocument(doc), nil
}

// LintDocument runs the strict pass over an already decoded document.
func LintDocument(doc *Document) []Finding {
	var (
		findings  []Finding
		stack     []Toggle
		paragraph int
	)

	open := func(t Toggle) int {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == t {
				return i
			}
		}
		return -1
	}

	end := int(doc.header.TextLength)
	for offset := doc.bodyStart; offset < end; offset++ {
		var toggle Toggle
		switch doc.raw[offset] {
		case codeParagraph:
			for _, t := range stack {
				findings = append(findings, Finding{
					Kind:      FindingUnclosedAtBreak,
					Toggle:    t,
					Offset:    offset,
					Paragraph: paragraph,
				})
			}
			stack = stack[:0]
			paragraph++
			continue
		case codeBold:
			toggle = ToggleBold
		case codeUnderline:
			toggle = ToggleUnderline
		case codeSubscript:
			toggle = ToggleSubscript
		case codeSuperscript:
			toggle = ToggleSuperscript
		case codeItalic:
			if !doc.italic {
				continue
			}
			toggle = ToggleItalic
		default:
			continue
		}

		idx := open(toggle)
		if idx < 0 {
			stack = append(stack, toggle)
			continue
		}
		if idx != len(stack)-1 {
			findings = append(findings, Finding{
				Kind:      FindingOutOfSequence,
				Toggle:    toggle,
				Offset:    offset,
				Paragraph: paragraph,
				Top:       stack[len(stack)-1],
			})
		}
		stack = append(stack[:idx], stack[idx+1:]...)
	}

	return findings
}
