package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/pandiff/pkg/io"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// diffOpts holds the command-line flags for the diff command.
type diffOpts struct {
	output   string // output file, "-" for stdout
	decorate string // Pandoc output format to decorate for, empty for annotations only
	indent   int    // spaces per JSON nesting level, 0 for compact output
	stats    bool   // print a statistics table after the run
	noCache  bool   // bypass the cache entirely
	refresh  bool   // recompute even on a cache hit
}

// diffCommand creates the diff command.
//
// The output may be given as a third argument or with -o; without either
// the merged document goes to stdout.
func (c *CLI) diffCommand() *cobra.Command {
	var opts diffOpts

	cmd := &cobra.Command{
		Use:   "diff BEFORE AFTER [OUTPUT]",
		Short: "Compare two Pandoc JSON documents",
		Long: `Compare two Pandoc JSON documents (as written by "pandoc -t json") and write
the merged document. Every top-level block that is not in both versions is
wrapped in a Div carrying a "diff" attribute of "added" or "removed".

Use "-" for BEFORE or AFTER to read from stdin.`,
		Example: `  pandoc -t json v1.md > v1.json && pandoc -t json v2.md > v2.json
  pandiff diff v1.json v2.json -o diff.json
  pandiff diff v1.json v2.json --decorate latex | pandoc -f json -o diff.pdf`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 3 {
				if cmd.Flags().Changed("output") {
					return fmt.Errorf("output given both as argument and with --output")
				}
				opts.output = args[2]
			}
			if !cmd.Flags().Changed("indent") {
				opts.indent = c.Config.Output.Indent
			}
			if !cmd.Flags().Changed("decorate") {
				opts.decorate = c.Config.Output.Decorate
			}
			return c.runDiff(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", pio.Stdio, "output file")
	cmd.Flags().StringVar(&opts.decorate, "decorate", "", "replace annotations by underline/strikeout markup for this Pandoc format (e.g. latex, html)")
	cmd.Flags().IntVar(&opts.indent, "indent", pipeline.DefaultIndent, "spaces per JSON nesting level (0 for compact output)")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print block counts and timings")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}

func (c *CLI) runDiff(cmd *cobra.Command, before, after string, opts diffOpts) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Before:   before,
		After:    after,
		Output:   opts.output,
		Decorate: opts.decorate,
		Indent:   opts.indent,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Diffed %d against %d blocks", result.Stats.BeforeBlocks, result.Stats.AfterBlocks))

	if opts.output != pio.Stdio {
		printSuccess("Wrote merged document")
		printFile(opts.output)
		printDiffLine(result)
	}
	if opts.stats {
		fmt.Fprintln(uiOut, renderStats(result))
	}
	return nil
}
