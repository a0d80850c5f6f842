package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/pandiff/pkg/io"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// decorateCommand creates the decorate command, which styles an already
// merged document. It is the standalone form of "diff --decorate".
func (c *CLI) decorateCommand() *cobra.Command {
	var (
		output  string
		format  string
		indent  int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "decorate MERGED",
		Short: "Turn diff annotations into underline/strikeout markup",
		Long: `Replace every diff wrapper of a merged document by its blocks, with the text
of added blocks underlined and the text of removed blocks struck out.

For LaTeX output the ulem package is added to header-includes when needed.`,
		Example: `  pandiff decorate diff.json --format latex | pandoc -f json -o diff.pdf`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.Config.Output.Decorate
			}
			if format == "" {
				return fmt.Errorf("--format is required")
			}
			if !cmd.Flags().Changed("indent") {
				indent = c.Config.Output.Indent
			}

			ctx := cmd.Context()
			doc, err := pio.ImportDocument(args[0], "merged")
			if err != nil {
				return err
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			result, err := runner.Decorate(ctx, doc, pipeline.Options{Decorate: format, Indent: indent, Logger: c.Logger})
			if err != nil {
				return err
			}
			if err := pio.ExportDocument(result.Document, output, indent); err != nil {
				return err
			}

			if output != pio.Stdio {
				printSuccess("Decorated %d added and %d removed blocks", result.Decorated.Added, result.Decorated.Removed)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", pio.Stdio, "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Pandoc output format (e.g. latex, html)")
	cmd.Flags().IntVar(&indent, "indent", pipeline.DefaultIndent, "spaces per JSON nesting level (0 for compact output)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
