// Package config defines the configuration types for qstripper.
// These are plain data structures; loading and layering live in internal/configloader.
package config

// ExportFormat names an export writer.
type ExportFormat string

const (
	ExportText     ExportFormat = "text"
	ExportMarkdown ExportFormat = "markdown"
	ExportJSON     ExportFormat = "json"
)

// IsValid reports whether f names a shipped writer.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportText, ExportMarkdown, ExportJSON:
		return true
	default:
		return false
	}
}

// ReportFormat specifies how a batch run is reported.
type ReportFormat string

const (
	ReportText    ReportFormat = "text"
	ReportJSON    ReportFormat = "json"
	ReportSummary ReportFormat = "summary"
)

// IsValid reports whether f is a known report format.
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportText, ReportJSON, ReportSummary:
		return true
	default:
		return false
	}
}

// TabMode controls how the text writer renders tabs.
type TabMode string

const (
	TabsKeep   TabMode = "tab"    // emit U+0009
	TabsSpaces TabMode = "spaces" // expand to the next tab stop
)

// IsValid reports whether m is a known tab mode.
func (m TabMode) IsValid() bool {
	return m == TabsKeep || m == TabsSpaces
}

// ItalicMode selects how byte 0x13 is decoded.
type ItalicMode string

const (
	// ItalicAuto recognises italic in PC files only.
	ItalicAuto ItalicMode = "auto"
	ItalicOn   ItalicMode = "on"
	ItalicOff  ItalicMode = "off"
)

// IsValid reports whether m is a known italic mode.
func (m ItalicMode) IsValid() bool {
	switch m {
	case ItalicAuto, ItalicOn, ItalicOff:
		return true
	default:
		return false
	}
}

// Forced returns the explicit italic setting, or ok=false for auto.
func (m ItalicMode) Forced() (enabled, ok bool) {
	switch m {
	case ItalicOn:
		return true, true
	case ItalicOff:
		return false, true
	default:
		return false, false
	}
}

// Defaults.
const (
	// DefaultWrap matches the 80-column screens Quill text was usually read on.
	DefaultWrap     = 80
	DefaultTabWidth = 8
)

// ExportConfig controls where and how exports are written.
type ExportConfig struct {
	// To is the writer to use.
	To ExportFormat `yaml:"to"`

	// OutputDir receives exports. Empty means next to each source file.
	OutputDir string `yaml:"output_dir"`

	// Overwrite replaces existing exports instead of skipping them.
	Overwrite bool `yaml:"overwrite"`
}

// TextConfig controls the plain text writer.
type TextConfig struct {
	// Wrap is the column to wrap paragraphs at; 0 disables wrapping.
	Wrap int `yaml:"wrap"`

	Tabs     TabMode `yaml:"tabs"`
	TabWidth int     `yaml:"tab_width"`

	// PageHeader includes the page header and footer in the export.
	PageHeader bool `yaml:"page_header"`
}

// DecodeConfig controls the decoder.
type DecodeConfig struct {
	Italic ItalicMode `yaml:"italic"`
}

// BackupsConfig controls backups of exports replaced by --overwrite.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root configuration structure for qstripper.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Text    TextConfig    `yaml:"text"`
	Decode  DecodeConfig  `yaml:"decode"`
	Backups BackupsConfig `yaml:"backups"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// DryRun decodes every file but writes nothing.
	DryRun bool `yaml:"-"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"-"`

	// Report is the batch report format.
	Report ReportFormat `yaml:"-"`

	// Strict enables toggle nesting findings in inspect output.
	Strict bool `yaml:"-"`

	// Diff records a unified diff of each export against the file it would replace.
	Diff bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Export: ExportConfig{
			To: ExportText,
		},
		Text: TextConfig{
			Wrap:       DefaultWrap,
			Tabs:       TabsKeep,
			TabWidth:   DefaultTabWidth,
			PageHeader: true,
		},
		Decode: DecodeConfig{
			Italic: ItalicAuto,
		},
		Report: ReportText,
	}
}
