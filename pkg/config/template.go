package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file name.
const FileName = ".qstripper.yml"

const yamlTemplate = `# qstripper configuration
# Values shown are the defaults.

export:
  # Writer: text, markdown or json
  to: text
  # Directory for exports; empty writes next to each source file
  output_dir: ""
  # Replace existing exports instead of skipping them
  overwrite: false

text:
  # Wrap paragraphs at this display column; 0 disables wrapping
  wrap: 80
  # Tabs: "tab" keeps them, "spaces" expands to tab stops
  tabs: tab
  tab_width: 8
  # Include the page header and footer
  page_header: true

decode:
  # Italic (byte 0x13): auto (PC files only), on or off
  italic: auto

backups:
  # Keep a .qstripper.bak copy of exports replaced by overwrite
  enabled: false

# Glob patterns to skip during discovery
# ignore:
#   - "archive/**"
#   - "*_bak_doc"
`

// GenerateTemplate returns a starter configuration file in format ("yaml" or "json").
func GenerateTemplate(format string) ([]byte, error) {
	switch format {
	case "", "yaml", "yml":
		return []byte(yamlTemplate), nil
	case "json":
		return templateToJSON()
	default:
		return nil, fmt.Errorf("unsupported template format %q", format)
	}
}

// templateToJSON renders the YAML template's values as JSON. Comments are lost.
func templateToJSON() ([]byte, error) {
	var values map[string]any
	if err := yaml.Unmarshal([]byte(yamlTemplate), &values); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}
