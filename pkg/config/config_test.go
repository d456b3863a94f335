package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/qstripper/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.ExportText, cfg.Export.To)
	assert.Equal(t, config.DefaultWrap, cfg.Text.Wrap)
	assert.Equal(t, config.TabsKeep, cfg.Text.Tabs)
	assert.Equal(t, config.ItalicAuto, cfg.Decode.Italic)
	assert.Equal(t, config.ReportText, cfg.Report)
	assert.False(t, cfg.Export.Overwrite)
}

func TestItalicMode_Forced(t *testing.T) {
	tests := []struct {
		mode        config.ItalicMode
		wantEnabled bool
		wantOK      bool
	}{
		{config.ItalicAuto, false, false},
		{config.ItalicOn, true, true},
		{config.ItalicOff, false, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			enabled, ok := tt.mode.Forced()
			assert.Equal(t, tt.wantEnabled, enabled)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, config.ExportMarkdown.IsValid())
	assert.False(t, config.ExportFormat("html").IsValid())
	assert.True(t, config.ReportSummary.IsValid())
	assert.False(t, config.ReportFormat("sarif").IsValid())
	assert.True(t, config.TabsSpaces.IsValid())
	assert.False(t, config.TabMode("").IsValid())
	assert.True(t, config.ItalicOff.IsValid())
	assert.False(t, config.ItalicMode("maybe").IsValid())
}
