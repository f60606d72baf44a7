// Package pipeline runs record translation end to end for the CLI and the
// HTTP API.
//
// By centralizing this logic, every entry point reads records, consults the
// cache, fans out over the batch translator and reports failures the same
// way.
//
// # Usage
//
// Create a Runner and translate a file:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.TranslateFile(ctx, pipeline.FileOptions{
//	    Input:   "train.txt",
//	    Options: pipeline.Options{Source: lgi.SourceGraph6, Canonical: true},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OutputPath, len(res.Batch.Outputs))
//
// Translate in-memory records:
//
//	res, err := runner.Translate(ctx, records, opts)
//
// Encode, decode or draw a single input:
//
//	s, err := runner.Encode(ctx, "CCO", pipeline.FormatSMILES, true)
//	g, err := lgi.Decode(s)
//	svg, err := pipeline.Render(ctx, s, pipeline.RenderSVG, nodelink.Options{})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/lgi"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSource is the record notation of translate input files.
	DefaultSource = lgi.SourceGraph6

	// DefaultTTL is how long cached translations are kept.
	DefaultTTL = 30 * 24 * time.Hour

	// OutputExt is the extension of translate output files.
	OutputExt = ".lgi"

	// ValidExt is the extension of validate output files.
	ValidExt = ".valid.lgi"
)

// =============================================================================
// Options - Translation Configuration
// =============================================================================

// Options configures a translation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Source    lgi.Source `json:"source"`
	Canonical bool       `json:"canonical"`

	// Seed makes randomized translations reproducible. Each record gets its
	// own source derived from Seed and the record index, so the output does
	// not depend on the worker count. 0 leaves randomized output unseeded.
	Seed uint64 `json:"seed,omitempty"`

	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	TTL    time.Duration `json:"-"`
	Batch  batch.Options `json:"-"`
	Logger *log.Logger   `json:"-"`
}

// ValidateAndSetDefaults validates options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if _, err := lgi.ParseSource(string(o.Source)); err != nil {
		return err
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	return nil
}

// cacheable reports whether translations under o are deterministic.
func (o *Options) cacheable() bool {
	return o.Canonical || o.Source == lgi.SourceLGI
}

// FileOptions configures a file translation.
type FileOptions struct {
	Options

	Input string // Record file to read

	// Output is the file to write. Empty derives a sibling of Input with
	// extension Ext.
	Output string

	// Ext defaults to OutputExt.
	Ext string

	// FailuresPath, when set, receives a JSON-lines report of dropped records.
	FailuresPath string
}

// Result is the outcome of a file translation.
type Result struct {
	Batch        *batch.Result
	OutputPath   string
	FailuresPath string
	CacheHits    int
}
