package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/observability"
)

// DefaultChunkSize is the number of contiguous records handed to a worker
// at once.
const DefaultChunkSize = 16

// TranslateFunc translates one record.
type TranslateFunc func(input string) (string, error)

// Factory returns the translator for the record at index. It lets callers
// give every record its own stateful translator, such as a seeded encoder.
type Factory func(index int) TranslateFunc

// Reporter observes batch progress. Calls are serialized by the translator.
type Reporter interface {
	Start(total int)
	Advance(ok bool)
	Finish()
}

// NopReporter discards progress events.
type NopReporter struct{}

func (NopReporter) Start(int)    {}
func (NopReporter) Advance(bool) {}
func (NopReporter) Finish()      {}

// Options configures a [Translator]. Zero values select the defaults.
type Options struct {
	ChunkSize int           // Records per chunk (default 16)
	Workers   int           // Concurrent chunks (default runtime.NumCPU())
	Timeout   time.Duration // Per-record bound; 0 disables it
	Progress  Reporter      // Progress sink (default NopReporter)
	Logger    *log.Logger   // Logger (default log.Default())
}

// Drop describes a record that failed translation.
type Drop struct {
	Index   int         `json:"index"`
	Input   string      `json:"input"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

// Result is the outcome of a batch run.
type Result struct {
	RunID    string
	Outputs  []string // Successful translations in input order
	Dropped  []Drop   // Failed records in input order
	Total    int
	Duration time.Duration
}

// FailureCounts returns the number of dropped records per error code.
func (r *Result) FailureCounts() map[errors.Code]int {
	counts := make(map[errors.Code]int)
	for _, d := range r.Dropped {
		counts[d.Code]++
	}
	return counts
}

// Translator runs batches with fixed options. It is safe for concurrent use.
type Translator struct {
	opts Options
}

// New returns a translator with defaults filled in.
func New(opts Options) *Translator {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Progress == nil {
		opts.Progress = NopReporter{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Translator{opts: opts}
}

// Options returns the effective options.
func (t *Translator) Options() Options { return t.opts }

// Run translates every input with fn.
func (t *Translator) Run(ctx context.Context, inputs []string, fn TranslateFunc) (*Result, error) {
	return t.RunEach(ctx, inputs, func(int) TranslateFunc { return fn })
}

type slot struct {
	out string
	err error
}

// RunEach translates every input with the translator newFn returns for its
// index.
func (t *Translator) RunEach(ctx context.Context, inputs []string, newFn Factory) (*Result, error) {
	runID := uuid.NewString()
	logger := t.opts.Logger.With("run", runID)
	hooks := observability.Batch()
	start := time.Now()

	logger.Debug("batch started", "records", len(inputs), "chunk", t.opts.ChunkSize, "workers", t.opts.Workers)
	hooks.OnBatchStart(ctx, runID, len(inputs))

	var progressMu sync.Mutex
	t.opts.Progress.Start(len(inputs))
	defer t.opts.Progress.Finish()
	advance := func(ok bool) {
		progressMu.Lock()
		defer progressMu.Unlock()
		t.opts.Progress.Advance(ok)
	}

	slots := make([]slot, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.Workers)

	for lo := 0; lo < len(inputs); lo += t.opts.ChunkSize {
		if gctx.Err() != nil {
			break
		}
		hi := min(lo+t.opts.ChunkSize, len(inputs))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				itemStart := time.Now()
				out, err := t.translate(gctx, newFn, i, inputs[i])
				slots[i] = slot{out: out, err: err}
				hooks.OnItem(gctx, runID, i, time.Since(itemStart), err)
				advance(err == nil)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Debug("batch aborted", "err", err)
		hooks.OnBatchComplete(ctx, runID, 0, 0, time.Since(start), err)
		return nil, err
	}

	res := &Result{RunID: runID, Total: len(inputs)}
	for i, s := range slots {
		if s.err == nil {
			res.Outputs = append(res.Outputs, s.out)
			continue
		}
		res.Dropped = append(res.Dropped, Drop{
			Index:   i,
			Input:   inputs[i],
			Code:    errors.CodeOf(s.err),
			Message: errors.UserMessage(s.err),
			Err:     s.err,
		})
		logger.Debug("record dropped", "index", i, "code", errors.CodeOf(s.err), "err", s.err)
	}
	res.Duration = time.Since(start)

	logger.Debug("batch complete", "kept", len(res.Outputs), "dropped", len(res.Dropped), "duration", res.Duration)
	hooks.OnBatchComplete(ctx, runID, len(res.Outputs), len(res.Dropped), res.Duration, nil)
	return res, nil
}

// translate runs one record, converting panics and timeouts into errors.
// A record that times out keeps running in its own goroutine; its result is
// discarded.
func (t *Translator) translate(ctx context.Context, newFn Factory, index int, input string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", errors.Recovered(r)
		}
	}()

	fn := newFn(index)
	if t.opts.Timeout <= 0 {
		return fn(input)
	}

	done := make(chan slot, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- slot{err: errors.Recovered(r)}
			}
		}()
		out, err := fn(input)
		done <- slot{out: out, err: err}
	}()

	timer := time.NewTimer(t.opts.Timeout)
	defer timer.Stop()

	select {
	case s := <-done:
		return s.out, s.err
	case <-timer.C:
		return "", errors.New(errors.ErrCodeTimeout, "translation exceeded %s", t.opts.Timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Run translates inputs with default options.
func Run(ctx context.Context, inputs []string, fn TranslateFunc) (*Result, error) {
	return New(Options{}).Run(ctx, inputs, fn)
}
