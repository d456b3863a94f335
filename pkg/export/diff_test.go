package export_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/export"
)

func numbered(n int, replace map[int]string) []byte {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if line, ok := replace[i]; ok {
			b.WriteString(line)
		} else {
			fmt.Fprintf(&b, "%d", i)
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func TestNewDiff_Equal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, export.NewDiff("a_txt", []byte("x\ny\n"), []byte("x\ny\n")))
	assert.Nil(t, export.NewDiff("a_txt", nil, nil))
	assert.Empty(t, (*export.Diff)(nil).String())
}

func TestNewDiff_NewFile(t *testing.T) {
	t.Parallel()

	diff := export.NewDiff("letter_txt", nil, []byte("Dear Sir,\nYours\n"))
	require.NotNil(t, diff)

	assert.Equal(t, 2, diff.Added)
	assert.Equal(t, 0, diff.Removed)
	assert.Equal(t, "--- letter_txt\n+++ letter_txt\n@@ -0,0 +1,2 @@\n+Dear Sir,\n+Yours\n", diff.String())
}

func TestNewDiff_ChangedLine(t *testing.T) {
	t.Parallel()

	diff := export.NewDiff("memo_txt", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	require.NotNil(t, diff)

	assert.Equal(t, 1, diff.Added)
	assert.Equal(t, 1, diff.Removed)
	assert.Equal(t, "--- memo_txt\n+++ memo_txt\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n", diff.String())
}

func TestNewDiff_Hunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   int
		replace map[int]string
		headers []string
	}{
		{
			name:    "nearby changes share a hunk",
			lines:   10,
			replace: map[int]string{2: "two", 9: "nine"},
			headers: []string{"@@ -1,10 +1,10 @@"},
		},
		{
			name:    "distant changes split",
			lines:   20,
			replace: map[int]string{2: "two", 19: "nineteen"},
			headers: []string{"@@ -1,5 +1,5 @@", "@@ -16,5 +16,5 @@"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diff := export.NewDiff("x", numbered(tt.lines, nil), numbered(tt.lines, tt.replace))
			require.NotNil(t, diff)
			require.Len(t, diff.Hunks, len(tt.headers))

			out := diff.String()
			for _, header := range tt.headers {
				assert.Contains(t, out, header+"\n")
			}
			assert.Equal(t, len(tt.replace), diff.Added)
			assert.Equal(t, len(tt.replace), diff.Removed)
		})
	}
}

func TestNewDiff_RemovedTail(t *testing.T) {
	t.Parallel()

	diff := export.NewDiff("x", []byte("a\nb\n"), []byte("a\n"))
	require.NotNil(t, diff)
	assert.Equal(t, "--- x\n+++ x\n@@ -1,2 +1,1 @@\n a\n-b\n", diff.String())
}

func TestNewDiff_RepeatedBlankLines(t *testing.T) {
	t.Parallel()

	previous := []byte(strings.Repeat("\n", 300) + "old\n")
	next := []byte(strings.Repeat("\n", 300) + "new\n")

	diff := export.NewDiff("x", previous, next)
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 1)

	assert.Equal(t, 1, diff.Added)
	assert.Equal(t, 1, diff.Removed)
	assert.Equal(t, []string{" ", " ", " ", "-old", "+new"}, diff.Hunks[0].Lines)
	assert.Equal(t, 298, diff.Hunks[0].OldStart)
}
