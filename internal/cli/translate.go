package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/lgi"
	"github.com/matzehuels/lgi/pkg/pipeline"
)

// batchFlags holds the flags shared by translate and validate.
type batchFlags struct {
	chunkSize int
	workers   int
	timeout   time.Duration
	output    string
	failures  string
	noCache   bool
	refresh   bool
	quiet     bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.chunkSize, "chunk-size", batch.DefaultChunkSize, "records per worker chunk")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent workers (default: number of CPUs)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "per-record time limit, e.g. 500ms (0 disables)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&f.failures, "failures", "", "write a JSON-lines report of dropped records to this file")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "hide progress")
}

// batchOptions merges flags over the configuration. Flags win only when set.
func (c *CLI) batchOptions(cmd *cobra.Command, f *batchFlags) batch.Options {
	opts := c.Config.BatchOptions()
	if cmd.Flags().Changed("chunk-size") {
		opts.ChunkSize = f.chunkSize
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = f.timeout
	}
	opts.Logger = c.Logger
	return opts
}

// translateCommand creates the translate command for batch encoding.
func (c *CLI) translateCommand() *cobra.Command {
	var (
		flags  batchFlags
		source string
		random bool
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate a record file to LGI strings",
		Long: `Translate a record file to LGI strings.

Each line of the input holds one record; only the first tab-separated field
is read. Records that cannot be translated are dropped and counted. The
output keeps the input order and is written next to the input with the
extension .lgi unless --output is given.

Canonical results are cached, so translating the same file again is fast.`,
		Example: `  lgi translate train.g6
  lgi translate --source smiles molecules.smi --random --seed 7
  lgi translate train.g6 --workers 8 --timeout 2s --failures dropped.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := lgi.ParseSource(source)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Source:    src,
				Canonical: c.Config.Canonical,
				Seed:      c.Config.Seed,
				Refresh:   flags.refresh,
				TTL:       c.Config.Cache.TTL.Duration,
				Batch:     c.batchOptions(cmd, &flags),
			}
			if cmd.Flags().Changed("random") {
				opts.Canonical = !random
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			return c.runBatch(cmd.Context(), args[0], opts, &flags, pipeline.OutputExt)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&source, "source", "s", string(pipeline.DefaultSource), "record notation: graph6, smiles")
	cmd.Flags().BoolVar(&random, "random", false, "randomize atom order instead of canonical output")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for --random (0 = unseeded)")

	return cmd
}

// validateCommand creates the validate command for batch decoding.
func (c *CLI) validateCommand() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "validate <file.lgi>",
		Short: "Check that LGI strings decode consistently",
		Long: `Check that every LGI string in a file decodes to a graph whose degrees
match the degree characters.

Valid lines are written next to the input with the extension .valid.lgi
unless --output is given. Invalid lines are dropped and summarized by
failure kind.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:  lgi.SourceLGI,
				Refresh: flags.refresh,
				TTL:     c.Config.Cache.TTL.Duration,
				Batch:   c.batchOptions(cmd, &flags),
			}
			return c.runBatch(cmd.Context(), args[0], opts, &flags, pipeline.ValidExt)
		},
	}

	flags.register(cmd)
	return cmd
}

// runBatch translates a file and prints the summary.
func (c *CLI) runBatch(ctx context.Context, input string, opts pipeline.Options, flags *batchFlags, ext string) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	verb := "Translating"
	if opts.Source == lgi.SourceLGI {
		verb = "Validating"
	}
	opts.Batch.Progress = newReporter(ctx, verb, flags.quiet)

	prog := newProgress(c.Logger)
	report := trackCache(c.Logger)
	res, err := runner.TranslateFile(ctx, pipeline.FileOptions{
		Options:      opts,
		Input:        input,
		Output:       flags.output,
		Ext:          ext,
		FailuresPath: flags.failures,
	})
	report()
	if err != nil {
		return err
	}

	b := res.Batch
	prog.done(verb, "records", b.Total, "kept", len(b.Outputs), "dropped", len(b.Dropped))
	if opts.Source == lgi.SourceLGI {
		printSuccess("%d of %d strings valid", len(b.Outputs), b.Total)
	} else {
		printSuccess("Translated %d of %d records", len(b.Outputs), b.Total)
	}
	printFile(res.OutputPath)
	printStats(len(b.Outputs), len(b.Dropped), res.CacheHits)
	printDetail("run %s in %s", b.RunID, b.Duration.Round(time.Millisecond))

	if len(b.Dropped) > 0 {
		printNewline()
		printFailureTable(b.FailureCounts())
		if res.FailuresPath != "" {
			printInfo("Failure report")
			printFile(res.FailuresPath)
		}
	}
	if len(b.Outputs) == 0 && b.Total > 0 {
		printWarning("No records could be translated")
	}

	if opts.Source != lgi.SourceLGI {
		printNewline()
		printNextStep("Validate", "lgi validate "+res.OutputPath)
	}
	return nil
}
