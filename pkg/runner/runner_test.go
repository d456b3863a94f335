package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/charset"
	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/fsutil"
	"github.com/yaklabco/qstripper/pkg/quill"
	qt "github.com/yaklabco/qstripper/pkg/quill/quilltest"
	"github.com/yaklabco/qstripper/pkg/runner"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func run(t *testing.T, cfg *config.Config, dir string, paths ...string) *runner.Result {
	t.Helper()
	r, err := runner.NewFromConfig(cfg)
	require.NoError(t, err)

	opts := runner.OptionsFromConfig(cfg, paths...)
	opts.WorkingDir = dir

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func letter() []byte {
	return qt.QL("Letter", "Page 1", qt.Join(qt.Text("Dear Sir,"), []byte{qt.Para}, qt.Text("Yours"))...)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result := run(t, config.NewConfig(), t.TempDir())

	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "text", result.Format)
}

func TestRunner_Run_ExportsText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc", letter())
	writeFile(t, dir, "MEMO.DOC", qt.PC("", "", qt.Text("memo")...))

	result := run(t, config.NewConfig(), dir)

	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Stats.FilesExported)
	assert.Equal(t, 3, result.Stats.Paragraphs)
	assert.False(t, result.HasFailures())

	memo, ql := result.Files[0], result.Files[1]
	assert.Equal(t, filepath.Join(dir, "MEMO.txt"), memo.Output)
	assert.Equal(t, charset.PC, memo.Dialect)
	assert.Equal(t, filepath.Join(dir, "letter_txt"), ql.Output)
	assert.Equal(t, charset.QL, ql.Dialect)
	assert.Equal(t, runner.StatusExported, ql.Status)

	assert.Equal(t, "Letter\n\nDear Sir,\nYours\n\nPage 1\n", readFile(t, ql.Output))
	assert.Equal(t, "memo\n", readFile(t, memo.Output))
}

func TestRunner_Run_OutputDirAndFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc", letter())

	cfg := config.NewConfig()
	cfg.Export.To = config.ExportMarkdown
	cfg.Export.OutputDir = filepath.Join(dir, "out", "md")

	result := run(t, cfg, dir)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "markdown", result.Format)
	out := filepath.Join(dir, "out", "md", "letter_md")
	assert.Equal(t, out, result.Files[0].Output)
	assert.Contains(t, readFile(t, out), "<!-- header: Letter -->")
}

func TestRunner_Run_DecodeFailureContinues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := qt.File{Dialect: charset.QL, Magic: "vrm1qdg0", Body: qt.Text("x")}.Build()
	writeFile(t, dir, "a_doc", bad)
	writeFile(t, dir, "b_doc", letter())
	writeFile(t, dir, "c_doc", []byte{0, 20})

	result := run(t, config.NewConfig(), dir)

	require.Len(t, result.Files, 3)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 2, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesExported)
	assert.Equal(t, map[string]int{"bad_magic": 1, "truncated_file": 1}, result.Stats.ErrorsByKind)

	failed := result.Files[0]
	assert.Equal(t, runner.StatusFailed, failed.Status)
	require.ErrorIs(t, failed.Error, quill.ErrBadMagic)
	assert.Equal(t, "bad_magic", failed.ErrorKind())
	assert.False(t, fsutil.Exists(failed.Output))
}

func TestRunner_Run_ExistingOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc", letter())
	out := writeFile(t, dir, "letter_txt", []byte("hand edited\n"))

	result := run(t, config.NewConfig(), dir)
	assert.Equal(t, runner.StatusSkipped, result.Files[0].Status)
	assert.Equal(t, "hand edited\n", readFile(t, out))

	cfg := config.NewConfig()
	cfg.Export.Overwrite = true
	cfg.Backups.Enabled = true
	result = run(t, cfg, dir)
	assert.Equal(t, runner.StatusExported, result.Files[0].Status)
	assert.True(t, result.Files[0].BackedUp)
	assert.Equal(t, "hand edited\n", readFile(t, fsutil.BackupPath(out)))
	assert.Contains(t, readFile(t, out), "Dear Sir,")

	result = run(t, config.NewConfig(), dir)
	assert.Equal(t, runner.StatusUnchanged, result.Files[0].Status)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc", letter())

	cfg := config.NewConfig()
	cfg.DryRun = true
	result := run(t, cfg, dir)

	require.Len(t, result.Files, 1)
	assert.Equal(t, runner.StatusDryRun, result.Files[0].Status)
	assert.Equal(t, 2, result.Files[0].Paragraphs)
	assert.False(t, fsutil.Exists(result.Files[0].Output))
}

func TestRunner_Run_Diff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc", letter())
	writeFile(t, dir, "letter_txt", []byte("Letter\n\nDear Madam,\nYours\n\nPage 1\n"))

	cfg := config.NewConfig()
	cfg.DryRun = true
	cfg.Diff = true
	result := run(t, cfg, dir)

	require.Len(t, result.Files, 1)
	diff := result.Files[0].Diff
	require.NotNil(t, diff)
	assert.Equal(t, 1, diff.Added)
	assert.Equal(t, 1, diff.Removed)
	assert.Contains(t, diff.String(), "-Dear Madam,\n+Dear Sir,\n")
	assert.Equal(t, "Letter\n\nDear Madam,\nYours\n\nPage 1\n", readFile(t, filepath.Join(dir, "letter_txt")))
}

func TestRunner_Run_DiffOffByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc", letter())

	result := run(t, config.NewConfig(), dir)

	require.Len(t, result.Files, 1)
	assert.Nil(t, result.Files[0].Diff)
}

func TestRunner_Run_CompressedSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(letter())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	writeFile(t, dir, "letter_doc.gz", buf.Bytes())

	result := run(t, config.NewConfig(), dir)

	require.Len(t, result.Files, 1)
	assert.Equal(t, fsutil.CompressionGzip, result.Files[0].Compression)
	assert.Equal(t, filepath.Join(dir, "letter_txt"), result.Files[0].Output)
	assert.Contains(t, readFile(t, result.Files[0].Output), "Dear Sir,")
}

func TestRunner_Run_OutputCollision(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a/letter_doc", letter())
	writeFile(t, dir, "b/letter_doc", letter())

	cfg := config.NewConfig()
	cfg.Export.OutputDir = filepath.Join(dir, "out")
	result := run(t, cfg, dir)

	require.Len(t, result.Files, 2)
	assert.Equal(t, runner.StatusExported, result.Files[0].Status)
	assert.Equal(t, runner.StatusFailed, result.Files[1].Status)
	require.ErrorIs(t, result.Files[1].Error, runner.ErrOutputCollision)
	assert.Equal(t, "output_collision", result.Files[1].ErrorKind())
}

func TestRunner_Run_ItalicOption(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a_doc", qt.QL("", "", qt.Italic, 'x', qt.Italic))

	cfg := config.NewConfig()
	cfg.Export.To = config.ExportMarkdown
	cfg.Decode.Italic = config.ItalicOn
	result := run(t, cfg, dir)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "*x*\n", readFile(t, result.Files[0].Output))
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a_doc", "b_doc", "c_doc", "d_doc", "e_doc", "f_doc"} {
		writeFile(t, dir, name, letter())
	}

	serial := config.NewConfig()
	serial.DryRun = true
	serial.Jobs = 1
	parallel := config.NewConfig()
	parallel.DryRun = true
	parallel.Jobs = 4

	one := run(t, serial, dir)
	many := run(t, parallel, dir)

	require.Len(t, many.Files, len(one.Files))
	for i := range one.Files {
		assert.Equal(t, one.Files[i].Path, many.Files[i].Path)
		assert.Equal(t, one.Files[i].Paragraphs, many.Files[i].Paragraphs)
	}
	assert.NotEqual(t, one.RunID, many.RunID)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a_doc", letter())

	r, err := runner.NewFromConfig(config.NewConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewFromConfig_UnknownFormat(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Export.To = "rtf"

	_, err := runner.NewFromConfig(cfg)
	require.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		outDir string
		ext    string
		want   string
	}{
		{"/docs/letter_doc", "", "txt", "/docs/letter_txt"},
		{"/docs/LETTER_DOC", "", "md", "/docs/LETTER_md"},
		{"/docs/LETTER.DOC", "", "txt", "/docs/LETTER.txt"},
		{"/docs/memo.doc.gz", "/out", "json", "/out/memo.json"},
		{"/docs/memo_doc.zst", "", "txt", "/docs/memo_txt"},
		{"/docs/LETTER", "", "txt", "/docs/LETTER.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, filepath.FromSlash(tt.want),
				runner.OutputPath(filepath.FromSlash(tt.source), filepath.FromSlash(tt.outDir), tt.ext))
		})
	}
}
