package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/apibook/pkg/book"
	"github.com/matzehuels/apibook/pkg/cache"
	"github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/observability"
	"github.com/matzehuels/apibook/pkg/reflection"
)

// Runner executes builds with caching.
//
// The Runner holds no per-build state, so one Runner serves every rebuild of
// a watch session.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means cache.NewDefaultKeyer and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Input is a loaded reflection tree.
type Input struct {
	Hash   string           // SHA-256 of the raw JSON
	Module *reflection.Node // the documented module
	Nodes  int              // nodes in the whole tree
}

// Execute runs load → compile → write.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{BuildID: uuid.NewString()}
	logger := opts.Logger.With("build", result.BuildID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	in, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Nodes = in.Nodes

	logger.Debug("loaded reflection tree",
		"input", opts.Input,
		"nodes", in.Nodes,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Compile
	compileStart := time.Now()
	files, stats, hit, err := r.CompileWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.Entities = stats.Entities
	result.Stats.Skipped = stats.Skipped
	result.Stats.Signatures = stats.Signatures
	result.Stats.Documents = stats.Documents
	result.Stats.Examples = stats.Examples
	result.CacheInfo.CompileHit = hit

	logger.Info("compiled book",
		"entities", stats.Entities,
		"files", len(files),
		"cached", hit,
		"duration", result.Stats.CompileTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Write (or check)
	files = r.withReadme(files, opts)
	writeStart := time.Now()
	if opts.Check {
		result.Files, err = r.Check(ctx, files, opts)
	} else {
		result.Files, err = r.Write(ctx, files, opts)
	}
	result.Stats.WriteTime = time.Since(writeStart)
	for _, f := range result.Files {
		switch f.Status {
		case StatusWritten:
			result.Stats.Written++
		case StatusUnchanged:
			result.Stats.Unchanged++
			result.CacheInfo.FileHits++
		}
	}
	if err != nil {
		return result, err
	}

	logger.Debug("wrote book",
		"dir", opts.BookDir,
		"written", result.Stats.Written,
		"unchanged", result.Stats.Unchanged,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Load reads the reflection JSON and locates the documented module.
func (r *Runner) Load(ctx context.Context, opts Options) (in *Input, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()
	defer func() {
		nodes := 0
		if in != nil {
			nodes = in.Nodes
		}
		hooks.OnLoadComplete(ctx, opts.Input, nodes, time.Since(start), err)
	}()

	data, err := os.ReadFile(opts.Input)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Input)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Input)
	}

	root, err := reflection.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", opts.Input)
	}
	module, err := root.Module(opts.Module)
	if err != nil {
		return nil, err
	}

	return &Input{
		Hash:   cache.Hash(data),
		Module: module,
		Nodes:  reflection.Count(root),
	}, nil
}

// CompileStats are the compile counters that survive a cache round trip.
type CompileStats struct {
	book.Stats
	Examples int
}

// cachedBook is the cache record of a compiled book.
type cachedBook struct {
	Files []book.File  `json:"files"`
	Stats CompileStats `json:"stats"`
}

// CompileWithCacheInfo discovers examples and compiles in.Module, reusing a
// cached result for identical input and settings unless opts.Refresh is set.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, in *Input, opts Options) (files []book.File, stats CompileStats, hit bool, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, stats, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, opts.Module)
	start := time.Now()
	defer func() {
		hooks.OnCompileComplete(ctx, opts.Module, stats.Entities, time.Since(start), err)
	}()

	examples, err := book.DiscoverExamples(opts.ExamplesDir, opts.ExamplesGlob, opts.BookDir, opts.Logger)
	if err != nil {
		return nil, stats, false, err
	}

	cacheKey := r.Keyer.BookKey(in.Hash, opts.BookKeyOpts(examples))
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			var cached cachedBook
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "book")
				return cached.Files, cached.Stats, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "book")
	}

	b, err := r.Compile(in.Module, examples, opts)
	if err != nil {
		return nil, stats, false, err
	}
	files = b.Files()
	stats = CompileStats{Stats: b.Stats(), Examples: len(examples)}

	if data, err := json.Marshal(cachedBook{Files: files, Stats: stats}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, TTLBook); err == nil {
			observability.Cache().OnCacheSet(ctx, "book", len(data))
		}
	}
	return files, stats, false, nil
}

// Compile compiles module without consulting the cache.
func (r *Runner) Compile(module *reflection.Node, examples []book.Example, opts Options) (*book.Book, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	c := book.NewCompiler(book.Config{
		BookDir:    opts.BookDir,
		Examples:   examples,
		References: opts.References,
		Logger:     opts.Logger,
	})
	b, err := c.Compile(module)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", opts.Module, err)
	}
	return b, nil
}

// withReadme prepends the README as the book's Quick Start page. A missing
// README is reported and skipped.
func (r *Runner) withReadme(files []book.File, opts Options) []book.File {
	data, err := os.ReadFile(opts.Readme)
	if err != nil {
		opts.Logger.Warn("README not copied", "path", opts.Readme, "err", err)
		return files
	}
	out := make([]book.File, 0, len(files)+1)
	out = append(out, book.File{Path: book.ReadmePath, Content: string(data)})
	return append(out, files...)
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
