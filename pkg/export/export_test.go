package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/export"
	"github.com/yaklabco/qstripper/pkg/quill"
)

func decode(t *testing.T, data []byte) *quill.Document {
	t.Helper()
	doc, err := quill.Decode(data)
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, w export.Writer, doc *quill.Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, doc))
	return buf.String()
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"json", "markdown", "text"}, export.Names())

	for _, name := range export.Names() {
		w, err := export.New(name, export.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, name, w.Name())
		assert.NotEmpty(t, w.Extension())
	}

	_, err := export.New("html", export.DefaultOptions())
	require.ErrorIs(t, err, export.ErrUnknownWriter)

	_, ok := export.Lookup("docbook")
	assert.False(t, ok)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Text.Wrap = 0
	cfg.Text.Tabs = config.TabsSpaces
	cfg.Text.TabWidth = 4
	cfg.Text.PageHeader = false

	assert.Equal(t, export.Options{Wrap: 0, Tabs: config.TabsSpaces, TabWidth: 4}, export.OptionsFromConfig(cfg))
}
