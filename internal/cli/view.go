package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/qstripper/internal/logging"
	"github.com/yaklabco/qstripper/internal/ui/pretty"
	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/quill"
	"github.com/yaklabco/qstripper/pkg/runner"
)

// defaultTermWidth is used when the output is not a terminal.
const defaultTermWidth = 80

type viewFlags struct {
	width  int
	italic string
}

func newViewCommand() *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Show a Quill document with its formatting in the terminal",
		Long: `Decode a Quill document and render it in the terminal with bold,
underline and italic runs styled. The page header and footer frame the body.

Paragraphs wrap to the terminal width, or to --width when given. A width of 0
disables wrapping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "wrap column (default: terminal width)")
	cmd.Flags().StringVar(&flags.italic, "italic", "", "decode 0x13 as italic: auto, on, off")

	return cmd
}

func runView(cmd *cobra.Command, path string, flags *viewFlags) error {
	if flags.italic != "" && !config.ItalicMode(flags.italic).IsValid() {
		return usageError(fmt.Errorf("invalid --italic %q: must be auto, on or off", flags.italic))
	}
	if flags.width < 0 {
		return usageError(fmt.Errorf("invalid --width %d: must not be negative", flags.width))
	}

	loaded, err := loadConfig(cmd, &config.Config{Decode: config.DecodeConfig{Italic: config.ItalicMode(flags.italic)}})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := flags.width
	if !cmd.Flags().Changed("width") {
		width = terminalWidth(out)
	}

	doc, err := quill.DecodeFile(commandContext(cmd), path, runner.DecodeOptions(loaded.cfg)...)
	if err != nil {
		return err
	}

	logging.Default().Debug("decoded document",
		logging.FieldPath, path,
		logging.FieldDialect, doc.Dialect(),
		logging.FieldParagraphs, len(doc.Paragraphs()),
	)

	styles := pretty.NewStyles(pretty.IsColorEnabled(loaded.color, out))
	_, err = io.WriteString(out, styles.RenderDocument(doc, width))
	return err
}

// terminalWidth returns the width of the terminal behind writer, if any.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
