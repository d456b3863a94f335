package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), `
export:
  to: markdown
text:
  wrap: 72
  page_header: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.ExportMarkdown, cfg.Export.To)
	assert.Equal(t, 72, cfg.Text.Wrap)
	assert.False(t, cfg.Text.PageHeader, "a file can switch a default-on flag off")
	assert.Equal(t, config.DefaultTabWidth, cfg.Text.TabWidth, "unset keys keep defaults")
	assert.Equal(t, []string{filepath.Join(dir, ".qstripper.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".qstripper.yml"), "decode:\n  italic: on\n")

	nested := filepath.Join(root, "letters", "1986")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, config.ItalicOn, result.Config.Decode.Italic)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".qstripper.yml"), "text:\n  wrap: 60\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "export:\n  to: markdown\n  overwrite: true\n")
	explicit := filepath.Join(dir, "ci.yml")
	writeFile(t, explicit, "export:\n  to: json\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.ExportJSON, result.Config.Export.To)
	assert.True(t, result.Config.Export.Overwrite, "explicit file only overrides keys it sets")
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "qstripper", "config.yaml"), "text:\n  tabs: spaces\n")

	opts := isolated(t.TempDir())
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.TabsSpaces, result.Config.Text.Tabs)
	assert.Equal(t, filepath.Join(xdg, "qstripper", "config.yaml"), result.Paths.User)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "export:\n  to: markdown\ntext:\n  wrap: 60\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Export: config.ExportConfig{To: config.ExportJSON},
		Jobs:   8,
		DryRun: true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ExportJSON, result.Config.Export.To)
	assert.Equal(t, 60, result.Config.Text.Wrap, "zero CLI values do not override")
	assert.Equal(t, 8, result.Config.Jobs)
	assert.True(t, result.Config.DryRun)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "text:\n  wrap: 60\n")
	t.Setenv("QSTRIPPER_WRAP", "100")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Config.Text.Wrap)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "export:\n  to: html\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "export.to", verr.Field)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "text: [unclosed\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project config")
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "text:\n  wrapp: 60\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "wrapp")
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".qstripper.yml"), "\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"QSTRIPPER_TO":          "json",
		"QSTRIPPER_OVERWRITE":   "true",
		"QSTRIPPER_TAB_WIDTH":   "4",
		"QSTRIPPER_PAGE_HEADER": "false",
		"QSTRIPPER_IGNORE":      " a/** , ,b_doc ",
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, func(k string) string { return env[k] }))

	assert.Equal(t, config.ExportJSON, cfg.Export.To)
	assert.True(t, cfg.Export.Overwrite)
	assert.Equal(t, 4, cfg.Text.TabWidth)
	assert.False(t, cfg.Text.PageHeader)
	assert.Equal(t, []string{"a/**", "b_doc"}, cfg.Ignore)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"QSTRIPPER_JOBS":      "many",
		"QSTRIPPER_OVERWRITE": "perhaps",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			err := loadFromEnv(config.NewConfig(), func(k string) string {
				if k == key {
					return value
				}
				return ""
			})
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), key))
		})
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "QSTRIPPER_WRAP")
	assert.Contains(t, vars, "QSTRIPPER_ITALIC")
	for name, desc := range vars {
		assert.NotEmpty(t, desc, name)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	merged := MergeAll(base,
		&config.Config{Text: config.TextConfig{Wrap: 40}},
		&config.Config{Ignore: []string{"x"}, Export: config.ExportConfig{Overwrite: true}},
	)

	assert.Equal(t, 40, merged.Text.Wrap)
	assert.Equal(t, []string{"x"}, merged.Ignore)
	assert.True(t, merged.Export.Overwrite)
	assert.Equal(t, config.DefaultWrap, base.Text.Wrap, "inputs are not modified")
	assert.Nil(t, MergeAll())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"valid defaults", func(*config.Config) {}, ""},
		{"wrap off", func(c *config.Config) { c.Text.Wrap = 0 }, ""},
		{"wrap too narrow", func(c *config.Config) { c.Text.Wrap = 3 }, "text.wrap"},
		{"negative wrap", func(c *config.Config) { c.Text.Wrap = -1 }, "text.wrap"},
		{"bad tabs", func(c *config.Config) { c.Text.Tabs = "hard" }, "text.tabs"},
		{"zero tab width", func(c *config.Config) { c.Text.TabWidth = 0 }, "text.tab_width"},
		{"bad italic", func(c *config.Config) { c.Decode.Italic = "yes" }, "decode.italic"},
		{"bad report", func(c *config.Config) { c.Report = "sarif" }, "report"},
		{"negative jobs", func(c *config.Config) { c.Jobs = -2 }, "jobs"},
		{"bad glob", func(c *config.Config) { c.Ignore = []string{"[unclosed"} }, "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)
			result := Validate(cfg)

			if tt.field == "" {
				assert.True(t, result.Valid(), "%v", result.Errors)
				return
			}
			require.False(t, result.Valid())
			assert.Equal(t, tt.field, result.Errors[0].Field)
		})
	}
}

func TestValidate_DryRunOverwriteWarns(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DryRun = true
	cfg.Export.Overwrite = true

	result := Validate(cfg)
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{FilePath: "a.yml", Field: "text.wrap", Message: "bad"}
	assert.Equal(t, "a.yml: text.wrap: bad", err.Error())
}

func TestWriteConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.FileName)

	require.NoError(t, WriteConfigFile(path, []byte("a: 1\n"), false))
	err := WriteConfigFile(path, []byte("a: 2\n"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteConfigFile(path, []byte("a: 2\n"), true))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(got))
}
