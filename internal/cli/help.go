// Package cli provides the Cobra command structure for qstripper.
package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qstripper/internal/ui/pretty"
)

// minFlagGap is the run of spaces pflag puts between a flag and its usage.
const minFlagGap = 2

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimLines . }}

{{end}}` + usageTemplate

// HelpFormatter renders Cobra help and usage text with the CLI styles.
type HelpFormatter struct {
	styles *pretty.Styles
	help   *template.Template
	usage  *template.Template
}

// NewHelpFormatter creates a help formatter for the given color mode and output.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"heading":   h.styles.SummaryTitle.Render,
		"command":   h.styles.FilePath.Render,
		"dim":       h.styles.Dim.Render,
		"flags":     h.renderFlags,
		"rpad":      rpad,
		"trimLines": trimLines,
	}
	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	return h
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// renderFlags colours the flag names in a pflag usage block, leaving the
// type placeholder dimmed and the description plain.
func (h *HelpFormatter) renderFlags(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		names, desc, ok := splitFlagLine(line)
		if !ok {
			continue
		}

		tokens := strings.Fields(names)
		for j, tok := range tokens {
			if !strings.HasPrefix(tok, "-") {
				tokens[j] = h.styles.Dim.Render(tok)
				continue
			}
			name, comma := strings.CutSuffix(tok, ",")
			tokens[j] = h.styles.Info.UnsetBold().Render(name)
			if comma {
				tokens[j] += ","
			}
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		lines[i] = indent + strings.Join(tokens, " ") + "   " + desc
	}
	return strings.Join(lines, "\n")
}

// splitFlagLine separates "  -o, --out string   usage" into its flag and
// usage halves.
func splitFlagLine(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	gap := strings.Index(trimmed, strings.Repeat(" ", minFlagGap))
	if trimmed == "" || gap < 0 {
		return "", "", false
	}
	return trimmed[:gap], strings.TrimLeft(trimmed[gap:], " "), true
}

func rpad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
