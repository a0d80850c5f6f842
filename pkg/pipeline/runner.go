package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/cache"
	"github.com/matzehuels/pandiff/pkg/decorate"
	"github.com/matzehuels/pandiff/pkg/diff"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
	pio "github.com/matzehuels/pandiff/pkg/io"
	"github.com/matzehuels/pandiff/pkg/observability"
)

// Cache key types reported to observability.CacheHooks.
const (
	KeyTypeDiff     = "diff"
	KeyTypeDecorate = "decorate"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached results; zero uses cache.TTLDiff.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is the cache payload of the diff and decorate stages.
type cachedResult struct {
	Document  *ast.Document  `json:"document"`
	Summary   diff.Summary   `json:"summary"`
	Decorated decorate.Stats `json:"decorated"`
}

// Execute runs the complete load → diff → decorate → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Load
	loadStart := time.Now()
	before, after, err := r.Load(ctx, opts.Before, opts.After)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	opts.Logger.Debug("loaded documents",
		"before_blocks", len(before.Blocks),
		"after_blocks", len(after.Blocks),
		"duration", loadTime)

	// Stages 2 and 3: Diff and decorate
	result, err := r.Diff(ctx, before, after, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime

	// Stage 4: Write
	writeStart := time.Now()
	if err := pio.ExportDocument(result.Document, opts.Output, opts.Indent); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.Stats.WriteTime = time.Since(writeStart)

	return result, nil
}

// Load reads the before and after documents concurrently.
func (r *Runner) Load(ctx context.Context, beforePath, afterPath string) (*ast.Document, *ast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var before, after *ast.Document
	var g errgroup.Group
	g.Go(func() error {
		var err error
		before, err = pio.ImportDocument(beforePath, "before")
		return err
	})
	g.Go(func() error {
		var err error
		after, err = pio.ImportDocument(afterPath, "after")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// Diff compares two documents in memory, decorating the result if
// opts.Decorate is set. Results are cached by the digests of both inputs.
func (r *Runner) Diff(ctx context.Context, before, after *ast.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForDiff(); err != nil {
		return nil, err
	}
	if before == nil || after == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "both documents are required")
	}

	result := &Result{
		Stats: Stats{BeforeBlocks: len(before.Blocks), AfterBlocks: len(after.Blocks)},
	}

	cacheKey := r.Keyer.DiffKey(ast.Digest(before), ast.Digest(after), opts.DiffKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, KeyTypeDiff, cacheKey); ok {
			result.Document = cached.Document
			result.Summary = cached.Summary
			result.Decorated = cached.Decorated
			result.CacheInfo.DiffHit = true
			opts.Logger.Debug("diff served from cache", "key", cacheKey)
			return result, nil
		}
	}

	hooks := observability.Diff()
	hooks.OnDiffStart(ctx, len(before.Blocks), len(after.Blocks))

	diffStart := time.Now()
	compared, err := diff.Compare(before, after)
	result.Stats.DiffTime = time.Since(diffStart)

	stats := observability.DiffStats{BeforeBlocks: len(before.Blocks), AfterBlocks: len(after.Blocks)}
	if compared != nil {
		stats.Unchanged = compared.Summary.Unchanged
		stats.Added = compared.Summary.Added
		stats.Removed = compared.Summary.Removed
	}
	hooks.OnDiffComplete(ctx, stats, result.Stats.DiffTime, err)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}

	result.Document = compared.Document
	result.Summary = compared.Summary
	result.Entries = compared.Entries

	opts.Logger.Info("computed diff",
		"unchanged", compared.Summary.Unchanged,
		"added", compared.Summary.Added,
		"removed", compared.Summary.Removed,
		"duration", result.Stats.DiffTime)

	if opts.Decorate != "" {
		decorateStart := time.Now()
		doc, decorated, err := decorate.Decorate(result.Document, opts.Decorate)
		result.Stats.DecorateTime = time.Since(decorateStart)
		hooks.OnDecorateComplete(ctx, opts.Decorate, result.Stats.DecorateTime, err)
		if err != nil {
			return nil, fmt.Errorf("decorate: %w", err)
		}
		result.Document = doc
		result.Decorated = decorated

		opts.Logger.Info("decorated changes",
			"format", opts.Decorate,
			"added", decorated.Added,
			"removed", decorated.Removed)
	}

	r.store(ctx, KeyTypeDiff, cacheKey, cachedResult{
		Document:  result.Document,
		Summary:   result.Summary,
		Decorated: result.Decorated,
	})

	return result, nil
}

// Decorate rewrites the annotations of an already merged document for
// opts.Decorate. Results are cached by the digest of doc and the format.
func (r *Runner) Decorate(ctx context.Context, doc *ast.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if opts.Decorate == "" {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "decorate format is required")
	}
	if err := opts.ValidateForDiff(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "document is required")
	}

	result := &Result{Stats: Stats{AfterBlocks: len(doc.Blocks)}}
	cacheKey := r.Keyer.DecorateKey(ast.Digest(doc), opts.Decorate)

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, KeyTypeDecorate, cacheKey); ok {
			result.Document = cached.Document
			result.Decorated = cached.Decorated
			result.CacheInfo.DecorateHit = true
			return result, nil
		}
	}

	start := time.Now()
	out, decorated, err := decorate.Decorate(doc, opts.Decorate)
	result.Stats.DecorateTime = time.Since(start)
	observability.Diff().OnDecorateComplete(ctx, opts.Decorate, result.Stats.DecorateTime, err)
	if err != nil {
		return nil, err
	}
	result.Document = out
	result.Decorated = decorated

	opts.Logger.Info("decorated changes",
		"format", opts.Decorate,
		"added", decorated.Added,
		"removed", decorated.Removed,
		"duration", result.Stats.DecorateTime)

	r.store(ctx, KeyTypeDecorate, cacheKey, cachedResult{Document: out, Decorated: decorated})
	return result, nil
}

// lookup reads a cached result. Backend failures and undecodable entries
// count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) (*cachedResult, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache lookup failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil || cached.Document == nil {
		hooks.OnCacheMiss(ctx, keyType)
		r.Logger.Debug("discarding unreadable cache entry", "type", keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return &cached, true
}

// store writes a result to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, v cachedResult) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cannot encode cache entry", "type", keyType, "err", err)
		return
	}

	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLDiff
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
