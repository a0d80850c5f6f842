// Package pipeline provides the load → diff → decorate → write pipeline
// shared by the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read the before and after documents (concurrently)
//  2. Diff: Align their blocks and build the annotated merge
//  3. Decorate: Optionally turn annotations into underline/strikeout markup
//  4. Write: Encode the result to a file or standard output
//
// The diff and decorate stages are cached by content digest: running the
// same pair twice reads the merged document from the cache.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Before: "v1.json",
//	    After:  "v2.json",
//	    Output: "diff.json",
//	    Indent: 2,
//	})
//
// Diff documents already in memory:
//
//	result, err := runner.Diff(ctx, before, after, pipeline.Options{Decorate: "latex"})
//
// Run many pairs with bounded concurrency:
//
//	results, err := runner.ExecuteBatch(ctx, jobs, 4)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/cache"
	"github.com/matzehuels/pandiff/pkg/decorate"
	"github.com/matzehuels/pandiff/pkg/diff"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
	pio "github.com/matzehuels/pandiff/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultIndent is the default number of spaces per JSON nesting level.
	DefaultIndent = pio.DefaultIndent

	// DefaultConcurrency bounds the number of pairs a batch diffs at once.
	DefaultConcurrency = 4

	// MaxIndent bounds the indentation accepted from callers.
	MaxIndent = 16
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one diff.
// This struct supports JSON and TOML decoding for API requests and batch
// manifests.
type Options struct {
	// Input and output paths. "-" means standard input or output.
	Before string `json:"before,omitempty" toml:"before"`
	After  string `json:"after,omitempty" toml:"after"`
	Output string `json:"output,omitempty" toml:"output"`

	// Decorate is a Pandoc output format. When set, annotations are
	// replaced by underline/strikeout markup for that format.
	Decorate string `json:"decorate,omitempty" toml:"decorate"`

	// Indent is the number of spaces per nesting level; 0 writes compact
	// JSON.
	Indent int `json:"indent,omitempty" toml:"indent"`

	// Refresh skips cache lookups. Fresh results are still stored.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the merged document, decorated if requested.
	Document *ast.Document

	// Summary counts blocks by status.
	Summary diff.Summary

	// Entries is the alignment behind Document. It is nil when the result
	// came from the cache.
	Entries []diff.Entry

	// Decorated counts the wrappers the decorate stage replaced.
	Decorated decorate.Stats

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BeforeBlocks int
	AfterBlocks  int
	LoadTime     time.Duration
	DiffTime     time.Duration
	DecorateTime time.Duration
	WriteTime    time.Duration
}

// Total returns the time spent in all stages.
func (s Stats) Total() time.Duration {
	return s.LoadTime + s.DiffTime + s.DecorateTime + s.WriteTime
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DiffHit     bool // Whether the merged document came from cache
	DecorateHit bool // Whether the decorated document came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the fields Execute needs and applies
// defaults. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Before == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "before document is required")
	}
	if o.After == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "after document is required")
	}
	if o.Before == pio.Stdio && o.After == pio.Stdio {
		return perrors.New(perrors.ErrCodeInvalidInput, "before and after cannot both be read from stdin")
	}
	if err := perrors.ValidatePath(o.Before); err != nil {
		return err
	}
	if err := perrors.ValidatePath(o.After); err != nil {
		return err
	}

	if o.Output == "" {
		o.Output = pio.Stdio
	}
	if err := perrors.ValidatePath(o.Output); err != nil {
		return err
	}

	if err := o.ValidateForDiff(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDiff checks the fields that apply to in-memory diffs.
func (o *Options) ValidateForDiff() error {
	if o.Decorate != "" {
		if err := perrors.ValidateFormat(o.Decorate); err != nil {
			return err
		}
	}
	if o.Indent < 0 || o.Indent > MaxIndent {
		return perrors.New(perrors.ErrCodeInvalidInput, "indent must be between 0 and %d", MaxIndent)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// DiffKeyOpts returns cache key options for the diff stage.
func (o *Options) DiffKeyOpts() cache.DiffKeyOpts {
	return cache.DiffKeyOpts{Decorate: o.Decorate}
}
