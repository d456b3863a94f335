package configloader

import "github.com/yaklabco/qstripper/pkg/config"

// merge applies CLI flag values in override on top of base.
//   - Scalars: override wins when non-zero
//   - Booleans: only true is applied, since flags cannot express "unset"
//   - Slices: override replaces base when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Export.To != "" {
		result.Export.To = override.Export.To
	}
	if override.Export.OutputDir != "" {
		result.Export.OutputDir = override.Export.OutputDir
	}
	if override.Export.Overwrite {
		result.Export.Overwrite = true
	}

	if override.Text.Wrap != 0 {
		result.Text.Wrap = override.Text.Wrap
	}
	if override.Text.Tabs != "" {
		result.Text.Tabs = override.Text.Tabs
	}
	if override.Text.TabWidth != 0 {
		result.Text.TabWidth = override.Text.TabWidth
	}

	if override.Decode.Italic != "" {
		result.Decode.Italic = override.Decode.Italic
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Report != "" {
		result.Report = override.Report
	}
	if override.Strict {
		result.Strict = true
	}
	if override.Diff {
		result.Diff = true
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, c := range configs[1:] {
		result = merge(result, c)
	}
	return result
}
