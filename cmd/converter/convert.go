package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/mixtli/dungeon-lab-sub000/internal/clients/external"
	"github.com/mixtli/dungeon-lab-sub000/internal/config"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/orchestrators/conversion"
	"github.com/mixtli/dungeon-lab-sub000/internal/redis"
	documentrepo "github.com/mixtli/dungeon-lab-sub000/internal/repositories/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type convertFlags struct {
	source        string
	dataDir       string
	filterMode    string
	ruleset       string
	markupMode    string
	resolveAssets bool
	concurrency   int
	outputDir     string
	format        string
	redisAddrs    []string
	trace         bool
	dryRun        bool
}

func newConvertCommand(opts *cliOptions) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [category...]",
		Short: "Convert content categories",
		Long: `Convert one or more content categories; with no arguments every category
is converted. Documents are written to one file per category and a summary
table is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, opts.cfg)
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			return runConvert(cmd, opts.cfg, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "Record source: files or api")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "Directory holding the raw content files")
	cmd.Flags().StringVar(&flags.filterMode, "filter", "", "Licensing filter: srd or all")
	cmd.Flags().StringVar(&flags.ruleset, "ruleset", "", "Class edition: 2024 or 2014")
	cmd.Flags().StringVar(&flags.markupMode, "markup", "", "Markup rendering: plain or markdown")
	cmd.Flags().BoolVar(&flags.resolveAssets, "resolve-assets", false, "Resolve fluff image paths")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Categories converted at once")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory the documents are written to")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: json or yaml")
	cmd.Flags().StringSliceVar(&flags.redisAddrs, "redis-addr", nil, "Redis address for the document sink (repeatable)")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "Print category spans to stderr")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Convert without writing output files")
	return cmd
}

// apply copies the flags the user set over the loaded config
func (f *convertFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Source = f.source
	}
	if changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if changed("filter") {
		cfg.FilterMode = f.filterMode
	}
	if changed("ruleset") {
		cfg.Ruleset = f.ruleset
	}
	if changed("markup") {
		cfg.MarkupMode = f.markupMode
	}
	if changed("resolve-assets") {
		cfg.ResolveAssets = f.resolveAssets
	}
	if changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("format") {
		cfg.OutputFormat = f.format
	}
	if changed("redis-addr") {
		cfg.RedisAddrs = f.redisAddrs
	}
}

func runConvert(cmd *cobra.Command, cfg *config.Config, flags *convertFlags, categories []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchCfg := &conversion.Config{
		Options:     cfg.PipelineOptions(),
		FilterMode:  cfg.Filter(),
		Concurrency: cfg.Concurrency,
		EventBus:    events.NewBus(),
	}

	reader, err := newReader(cfg)
	if err != nil {
		return err
	}
	orchCfg.Reader = reader

	if len(cfg.RedisAddrs) > 0 {
		repo, closeRepo, err := newDocumentRepository(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeRepo()
		orchCfg.Documents = repo
	}

	if flags.trace {
		tracer, shutdown, err := newTracer(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
		orchCfg.Tracer = tracer
	}

	orchestrator, err := conversion.NewOrchestrator(orchCfg)
	if err != nil {
		return err
	}

	output, err := orchestrator.ConvertAll(ctx, &conversion.ConvertAllInput{Categories: categories})
	if err != nil {
		return err
	}

	if !flags.dryRun {
		for _, result := range output.Results {
			if _, err := writeDocuments(cfg.OutputDir, cfg.OutputFormat, result); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(output))
	return nil
}

// newReader returns the record source named by the config
func newReader(cfg *config.Config) (source.Reader, error) {
	if cfg.Source == config.SourceAPI {
		client, err := external.New(&external.Config{
			BaseURL:     cfg.APIBaseURL,
			HTTPTimeout: cfg.ReadTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return external.NewReader(&external.ReaderConfig{Client: client})
	}

	info, err := os.Stat(cfg.DataDir)
	if err != nil || !info.IsDir() {
		return nil, errors.NotFoundf("data directory %s not found", cfg.DataDir)
	}
	return source.NewFS(&source.FSConfig{
		FS:      os.DirFS(cfg.DataDir),
		Timeout: cfg.ReadTimeout(),
	})
}

// newDocumentRepository connects the redis document sink
func newDocumentRepository(ctx context.Context, cfg *config.Config) (documentrepo.Repository, func(), error) {
	client, err := redis.Connect(cfg.RedisAddrs, &redis.Options{Password: cfg.RedisPassword})
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() { _ = client.Close() } // nolint:errcheck // safe to ignore in cleanup

	if err := client.Ping(ctx).Err(); err != nil {
		closeClient()
		return nil, nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %v is unreachable", cfg.RedisAddrs)
	}

	repo, err := documentrepo.NewRedis(&documentrepo.RedisConfig{Client: client})
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return repo, closeClient, nil
}
