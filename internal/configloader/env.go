package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/qstripper/pkg/config"
)

// envVarPrefix is the prefix for all qstripper environment variables.
const envVarPrefix = "QSTRIPPER_"

// envSetter parses value and applies it to cfg.
type envSetter func(cfg *config.Config, value string) error

// envMapping describes one environment variable.
type envMapping struct {
	set         envSetter
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TO": {
		set:         stringSetter(func(c *config.Config, v string) { c.Export.To = config.ExportFormat(v) }),
		description: "Export writer: text, markdown or json",
	},
	"OUTPUT_DIR": {
		set:         stringSetter(func(c *config.Config, v string) { c.Export.OutputDir = v }),
		description: "Directory for exports",
	},
	"OVERWRITE": {
		set:         boolSetter(func(c *config.Config, v bool) { c.Export.Overwrite = v }),
		description: "Replace existing exports: true or false",
	},
	"WRAP": {
		set:         intSetter(func(c *config.Config, v int) { c.Text.Wrap = v }),
		description: "Text wrap column (0 disables wrapping)",
	},
	"TABS": {
		set:         stringSetter(func(c *config.Config, v string) { c.Text.Tabs = config.TabMode(v) }),
		description: "Tab rendering: tab or spaces",
	},
	"TAB_WIDTH": {
		set:         intSetter(func(c *config.Config, v int) { c.Text.TabWidth = v }),
		description: "Tab stop width for --tabs spaces",
	},
	"PAGE_HEADER": {
		set:         boolSetter(func(c *config.Config, v bool) { c.Text.PageHeader = v }),
		description: "Include page header and footer: true or false",
	},
	"ITALIC": {
		set:         stringSetter(func(c *config.Config, v string) { c.Decode.Italic = config.ItalicMode(v) }),
		description: "Italic decoding: auto, on or off",
	},
	"BACKUPS_ENABLED": {
		set:         boolSetter(func(c *config.Config, v bool) { c.Backups.Enabled = v }),
		description: "Back up exports before overwriting: true or false",
	},
	"IGNORE": {
		set:         func(c *config.Config, v string) error { c.Ignore = parseSliceValue(v); return nil },
		description: "Comma-separated list of ignore patterns",
	},
	"JOBS": {
		set:         intSetter(func(c *config.Config, v int) { c.Jobs = v }),
		description: "Number of parallel workers (0 = auto)",
	},
	"DRY_RUN": {
		set:         boolSetter(func(c *config.Config, v bool) { c.DryRun = v }),
		description: "Decode without writing: true or false",
	},
	"REPORT": {
		set:         stringSetter(func(c *config.Config, v string) { c.Report = config.ReportFormat(v) }),
		description: "Report format: text, json or summary",
	},
}

// LoadFromEnv applies QSTRIPPER_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

func stringSetter(apply func(*config.Config, string)) envSetter {
	return func(cfg *config.Config, value string) error {
		apply(cfg, value)
		return nil
	}
}

func boolSetter(apply func(*config.Config, bool)) envSetter {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		apply(cfg, b)
		return nil
	}
}

func intSetter(apply func(*config.Config, int)) envSetter {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		apply(cfg, i)
		return nil
	}
}

// parseSliceValue splits a comma-separated list, trimming and dropping empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, m := range envMappings {
		out[envVarPrefix+suffix] = m.description
	}
	return out
}
