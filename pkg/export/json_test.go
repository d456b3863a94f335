package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/export"
	qt "github.com/yaklabco/qstripper/pkg/quill/quilltest"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	doc := decode(t, qt.QL("Head", "Foot", qt.Bold, 'A', qt.Para, qt.Para, 0x60))
	out := render(t, export.NewJSON(export.DefaultOptions()), doc)

	var view export.DocumentView
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	assert.Equal(t, "ql", view.Dialect)
	assert.Equal(t, "Head", view.Header)
	assert.Equal(t, "Foot", view.Footer)
	require.Len(t, view.Paragraphs, 3)
	assert.Equal(t, "A", view.Paragraphs[0].Text)
	assert.True(t, view.Paragraphs[0].Runs[0].Style.Bold)
	assert.Empty(t, view.Paragraphs[1].Runs)
	assert.Equal(t, "£", view.Paragraphs[2].Text)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	file, ok := raw["file"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ql", file["dialect"])
	assert.Equal(t, "vrm1qdf0", file["magic"])
	assert.Contains(t, out, `"runs": []`, "empty paragraphs serialise an empty run list")
}
