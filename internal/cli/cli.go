// Package cli implements the pandiff command-line interface.
//
// # Commands
//
//   - diff: Compare two Pandoc JSON documents and write the annotated merge
//   - decorate: Turn the annotations of a merged document into markup
//   - batch: Diff every pair listed in a TOML manifest in parallel
//   - view: Browse the block alignment of two documents interactively
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Status
// lines and tables go to stderr so that documents written to stdout stay
// valid JSON.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pandiff/internal/config"
	"github.com/matzehuels/pandiff/pkg/buildinfo"
	"github.com/matzehuels/pandiff/pkg/observability"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "pandiff"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pandiff compares Pandoc documents block by block",
		Long: `pandiff compares two versions of a Pandoc JSON document and writes a single
merged document in which every top-level block is marked as unchanged, added
or removed, ready for a Pandoc filter or the built-in decorator to style.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pandiff/config.toml)")

	root.AddCommand(c.diffCommand())
	root.AddCommand(c.decorateCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and applies the log level before any
// command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	hooks := &logHooks{logger: c.Logger}
	observability.SetDiffHooks(hooks)
	observability.SetCacheHooks(hooks)
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	runner := pipeline.NewRunner(c.openCache(ctx, noCache), c.Config.Keyer(), c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner
}
