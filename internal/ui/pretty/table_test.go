package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/qstripper/internal/ui/pretty"
)

func TestFormatTable(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatTable(
		[]string{"FIELD", "OFFSET", "VALUE"},
		[][]string{
			{"magic", "2", "vrm1qdf0"},
			{"text length", "10", "1234"},
			{"header", "20", "£ Ledger"},
		},
	)

	want := "FIELD        OFFSET  VALUE\n" +
		"-------------------------------\n" +
		"magic        2       vrm1qdf0\n" +
		"text length  10      1234\n" +
		"header       20      £ Ledger\n"
	assert.Equal(t, want, got)
}
