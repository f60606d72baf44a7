package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/cache"
	"github.com/matzehuels/lgi/pkg/io"
	"github.com/matzehuels/lgi/pkg/lgi"
	"github.com/matzehuels/lgi/pkg/observability"
)

// cacheKeyType labels translation entries in cache hooks.
const cacheKeyType = "translation"

// Runner encapsulates translation with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Translate runs a batch over records and reports the number of cache hits.
func (r *Runner) Translate(ctx context.Context, records []string, opts Options) (*batch.Result, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	r.applyLogger(&opts)

	factory, hits, err := r.factory(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	bopts := opts.Batch
	if bopts.Logger == nil {
		bopts.Logger = opts.Logger
	}
	res, err := batch.New(bopts).RunEach(ctx, records, factory)
	if err != nil {
		return nil, 0, err
	}
	return res, int(hits.Load()), nil
}

// TranslateFile reads a record file, translates it and writes the output
// next to the input.
func (r *Runner) TranslateFile(ctx context.Context, opts FileOptions) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts.Options)

	out := opts.Output
	if out == "" {
		ext := opts.Ext
		if ext == "" {
			ext = OutputExt
		}
		var err error
		if out, err = io.OutputPath(opts.Input, ext); err != nil {
			return nil, err
		}
	}

	records, err := io.ImportRecords(opts.Input)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("read records", "file", opts.Input, "records", len(records))

	res, hits, err := r.Translate(ctx, records, opts.Options)
	if err != nil {
		return nil, err
	}

	if err := io.ExportLines(out, res.Outputs); err != nil {
		return nil, err
	}
	result := &Result{Batch: res, OutputPath: out, CacheHits: hits}

	if opts.FailuresPath != "" {
		if err := ExportFailures(opts.FailuresPath, res); err != nil {
			return nil, err
		}
		result.FailuresPath = opts.FailuresPath
	}

	opts.Logger.Info("translated records",
		"run", res.RunID,
		"kept", len(res.Outputs),
		"dropped", len(res.Dropped),
		"cache_hits", hits,
		"duration", res.Duration)
	return result, nil
}

// factory builds the per-record translator for opts. The returned counter
// is incremented on every cache hit.
func (r *Runner) factory(ctx context.Context, opts Options) (batch.Factory, *atomic.Int64, error) {
	base, err := lgi.TranslatorFor(opts.Source, opts.Canonical)
	if err != nil {
		return nil, nil, err
	}
	hits := new(atomic.Int64)

	seeded := !opts.Canonical && opts.Seed != 0

	return func(i int) batch.TranslateFunc {
		fn := base
		if seeded {
			// The source was validated above, so this cannot fail.
			fn, _ = lgi.TranslatorFor(opts.Source, false, lgi.WithSeed(opts.Seed+uint64(i)))
		}
		if !opts.cacheable() {
			return batch.TranslateFunc(fn)
		}
		return func(input string) (string, error) {
			return r.cached(ctx, opts, hits, fn, input)
		}
	}, hits, nil
}

// cached serves a deterministic translation from the cache or computes and
// stores it. Failures are not cached.
func (r *Runner) cached(ctx context.Context, opts Options, hits *atomic.Int64, fn lgi.TranslateFunc, input string) (string, error) {
	hooks := observability.Cache()
	key := r.Keyer.TranslationKey(string(opts.Source), input, opts.Canonical)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hits.Add(1)
			hooks.OnCacheHit(ctx, cacheKeyType)
			return string(data), nil
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	out, err := fn(input)
	if err != nil {
		return "", err
	}
	if err := r.Cache.Set(ctx, key, []byte(out), opts.TTL); err != nil {
		opts.Logger.Debug("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(out))
	}
	return out, nil
}

// Encode translates a single input of the given format to LGI, using the
// cache for canonical graph6 and SMILES inputs.
func (r *Runner) Encode(ctx context.Context, input string, from Format, canonical bool) (string, error) {
	switch from {
	case FormatGraph6, FormatSMILES:
		opts := Options{Source: lgi.Source(from), Canonical: canonical, Logger: r.Logger}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return "", err
		}
		fn, err := lgi.TranslatorFor(opts.Source, canonical)
		if err != nil {
			return "", err
		}
		if !canonical {
			return fn(input)
		}
		return r.cached(ctx, opts, new(atomic.Int64), fn, input)
	default:
		g, err := ParseInput(input, from)
		if err != nil {
			return "", err
		}
		return lgi.Encode(g, canonical)
	}
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
