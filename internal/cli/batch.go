package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pandiff/internal/config"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
	"github.com/matzehuels/pandiff/pkg/observability"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		concurrency int
		noCache     bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Diff every pair listed in a TOML manifest",
		Long: `Diff many document pairs in parallel. The manifest lists one [[pair]] table
per diff:

  concurrency = 4
  decorate = "html"

  [[pair]]
  before = "v1/intro.json"
  after  = "v2/intro.json"
  output = "diff/intro.json"

Relative paths are resolved against the manifest's directory. A failing pair
does not stop the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			manifest, err := config.LoadManifest(args[0], c.Config.Output)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") && manifest.Concurrency > 0 {
				concurrency = manifest.Concurrency
			}

			jobs := manifest.Pairs
			for i := range jobs {
				jobs[i].Refresh = refresh
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			hooks := &logHooks{logger: c.Logger}
			counter := &batchCounter{DiffHooks: hooks, CacheHooks: hooks, total: len(jobs)}
			observability.SetDiffHooks(counter)
			observability.SetCacheHooks(counter)

			spinner := newSpinner(ctx, fmt.Sprintf("Diffing %d pairs...", len(jobs)))
			counter.spinner = spinner
			spinner.Start()
			prog := newProgress(c.Logger)
			results, err := runner.ExecuteBatch(ctx, jobs, concurrency)
			spinner.Stop()
			if err != nil {
				return err
			}

			failed := pipeline.Failed(results)
			prog.done(fmt.Sprintf("Diffed %d pairs", len(results)-failed))
			fmt.Fprintln(uiOut, renderBatch(results))
			for _, res := range results {
				if res.Err != nil {
					printError("pair %d: %s", res.Index+1, perrors.UserMessage(res.Err))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d pairs failed", failed, len(results))
			}
			printSuccess("Diffed %s pairs", StyleNumber.Render(strconv.Itoa(len(results))))
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "jobs", "j", pipeline.DefaultConcurrency, "number of pairs diffed at once")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}

// batchCounter updates the spinner as pairs finish, whether their diff
// was computed or served from the cache.
type batchCounter struct {
	observability.DiffHooks
	observability.CacheHooks
	total   int
	done    atomic.Int64
	spinner *Spinner
}

func (b *batchCounter) OnDiffComplete(ctx context.Context, stats observability.DiffStats, d time.Duration, err error) {
	b.DiffHooks.OnDiffComplete(ctx, stats, d, err)
	b.advance()
}

func (b *batchCounter) OnCacheHit(ctx context.Context, keyType string) {
	b.CacheHooks.OnCacheHit(ctx, keyType)
	if keyType == pipeline.KeyTypeDiff {
		b.advance()
	}
}

func (b *batchCounter) advance() {
	n := b.done.Add(1)
	if b.spinner != nil {
		b.spinner.SetMessage("Diffing %d pairs... %d done", b.total, n)
	}
}

// renderBatch renders one table row per pair.
func renderBatch(results []pipeline.BatchResult) string {
	rows := make([][]string, len(results))
	for i, res := range results {
		status, added, removed := "failed", "", ""
		if res.Err == nil && res.Result != nil {
			status = iconFresh
			if res.Result.CacheInfo.DiffHit {
				status = iconCached
			}
			added = "+" + strconv.Itoa(res.Result.Summary.Added)
			removed = "-" + strconv.Itoa(res.Result.Summary.Removed)
		}
		rows[i] = []string{
			strconv.Itoa(res.Index + 1),
			filepath.Base(res.Options.Before),
			filepath.Base(res.Options.After),
			added,
			removed,
			status,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Before", "After", "Added", "Removed", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if row >= len(rows) {
				return styleTableCell
			}
			switch {
			case rows[row][5] == "failed":
				return styleTableCell.Foreground(colorRed)
			case col == 3:
				return styleTableCell.Foreground(colorGreen)
			case col == 4:
				return styleTableCell.Foreground(colorRed)
			case col == 5 && rows[row][5] == iconCached:
				return styleTableCell.Foreground(colorGreen)
			case col == 0 || col == 5:
				return styleTableCell.Foreground(colorGray)
			}
			return styleTableCell.Foreground(colorWhite)
		}).
		Render()
}
