// Package conversion orchestrates category batches: it reads source files,
// filters and converts their records, links items to their groups and
// hands documents to an optional sink
package conversion

//go:generate mockgen -destination=mock/mock_service.go -package=conversionmock github.com/mixtli/dungeon-lab-sub000/internal/orchestrators/conversion Service

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/filter"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/pkg/clock"
	"github.com/mixtli/dungeon-lab-sub000/internal/pkg/idgen"
	documentrepo "github.com/mixtli/dungeon-lab-sub000/internal/repositories/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

const tracerName = "github.com/mixtli/dungeon-lab-sub000/internal/orchestrators/conversion"

// Service defines the interface for conversion operations
type Service interface {
	// ConvertCategory converts every record of one category. Record and
	// file failures are reported in the result, never as an error.
	// Returns errors.InvalidArgument for an unknown category
	ConvertCategory(ctx context.Context, input *ConvertCategoryInput) (*ConvertCategoryOutput, error)

	// ConvertAll converts several categories in parallel
	// Returns errors.InvalidArgument if any category is unknown
	ConvertAll(ctx context.Context, input *ConvertAllInput) (*ConvertAllOutput, error)

	// Categories lists the registered categories in conversion order
	Categories() []string
}

// Config holds the dependencies for the conversion orchestrator
type Config struct {
	Reader     source.Reader
	Options    pipeline.Options
	FilterMode filter.Mode
	// Concurrency caps the categories converted at once (optional,
	// defaults to GOMAXPROCS)
	Concurrency int
	IDGenerator idgen.Generator
	Clock       clock.Clock
	EventBus    events.EventBus
	// Documents receives every converted document (optional)
	Documents documentrepo.Repository
	// Tracer records one span per category (optional, defaults to the
	// global provider)
	Tracer trace.Tracer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Reader == nil {
		vb.RequiredField("Reader")
	}
	if c.Concurrency < 0 {
		vb.Field("Concurrency", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.FilterMode == "" {
		c.FilterMode = filter.ModeSRD
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewNameBased("")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(tracerName)
	}
	return nil
}

type orchestrator struct {
	reader      source.Reader
	opts        pipeline.Options
	filterMode  filter.Mode
	concurrency int
	idGen       idgen.Generator
	clock       clock.Clock
	bus         events.EventBus
	documents   documentrepo.Repository
	tracer      trace.Tracer

	order    []string
	registry map[string]*category
}

// NewOrchestrator creates a new conversion orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	opts := cfg.Options
	opts.SRDOnly = cfg.FilterMode == filter.ModeSRD

	o := &orchestrator{
		reader:      cfg.Reader,
		opts:        opts,
		filterMode:  cfg.FilterMode,
		concurrency: cfg.Concurrency,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		bus:         cfg.EventBus,
		documents:   cfg.Documents,
		tracer:      cfg.Tracer,
		registry:    make(map[string]*category),
	}
	for _, c := range defaultCategories() {
		o.order = append(o.order, c.name)
		o.registry[c.name] = c
	}
	return o, nil
}

func (o *orchestrator) Categories() []string {
	return append([]string(nil), o.order...)
}

func (o *orchestrator) ConvertCategory(ctx context.Context, input *ConvertCategoryInput) (*ConvertCategoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	def, ok := o.registry[input.Category]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown category %q", input.Category)
	}

	ctx, span := o.tracer.Start(ctx, "conversion.ConvertCategory",
		trace.WithAttributes(attribute.String("category", def.name)))
	defer span.End()

	result := o.convert(ctx, def)
	o.save(ctx, result)

	span.SetAttributes(
		attribute.Int("records.total", result.Total),
		attribute.Int("records.converted", result.Converted),
		attribute.Int("records.failed", result.Failed),
		attribute.Int("errors", len(result.Errors)),
	)

	return &ConvertCategoryOutput{Result: result}, nil
}

func (o *orchestrator) ConvertAll(ctx context.Context, input *ConvertAllInput) (*ConvertAllOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	names := input.Categories
	if len(names) == 0 {
		names = o.Categories()
	}

	vb := errors.NewValidationBuilder()
	for _, name := range names {
		if _, ok := o.registry[name]; !ok {
			vb.Fieldf("categories", "unknown category %q", name)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	ctx, span := o.tracer.Start(ctx, "conversion.ConvertAll",
		trace.WithAttributes(attribute.StringSlice("categories", names)))
	defer span.End()

	results := make([]*pipeline.BatchResult, len(names))
	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, name := range names {
		g.Go(func() error {
			out, err := o.ConvertCategory(ctx, &ConvertCategoryInput{Category: name})
			if err != nil {
				return errors.Wrapf(err, "category %s", name)
			}
			results[i] = out.Result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &ConvertAllOutput{Results: results}
	total, converted, failed := output.Totals()
	slog.Info("Conversion finished",
		"categories", len(names),
		"total", total,
		"converted", converted,
		"failed", failed)
	return output, nil
}

// convert runs one category. Unreadable files are recorded and the
// category continues with what could be read.
func (o *orchestrator) convert(ctx context.Context, def *category) *pipeline.BatchResult {
	result := &pipeline.BatchResult{Category: def.name}

	tables := &sideTables{
		reader: o.reader,
		files:  make(map[string]any, len(def.sources)),
	}

	var records []source.RawRecord
	unreadable := make(map[string]bool)
	for _, file := range def.sources {
		if unreadable[file.Path] {
			continue
		}
		data, read := tables.files[file.Path]
		if !read {
			var err error
			data, err = o.reader.ReadSourceData(ctx, file.Path)
			if err != nil {
				slog.Warn("Skipping unreadable source file", "category", def.name, "file", file.Path, "error", err)
				result.AddResourceError(errors.Wrapf(err, "source file %s", file.Path))
				unreadable[file.Path] = true
				continue
			}
			tables.files[file.Path] = data
		}

		fileRecords, err := source.Records(data, file.Key)
		if err != nil {
			result.AddResourceError(errors.Wrapf(err, "source file %s", file.Path))
			continue
		}
		records = append(records, fileRecords...)
	}

	fluffIndex, fluffErrs := fluff.Load(ctx, o.reader, def.fluff)
	for _, err := range fluffErrs {
		result.AddResourceError(err)
	}
	tables.fluff = fluffIndex

	conv, buildErrs := def.build(ctx, tables)
	for _, err := range buildErrs {
		result.AddResourceError(err)
	}
	if conv == nil {
		slog.Error("Category converter unavailable", "category", def.name)
		return result
	}

	records = filter.Filter(records, o.filterMode)
	if def.prepare != nil {
		records = def.prepare(records, o.opts)
	}

	driver, err := pipeline.New(&pipeline.Config{
		Converter:   conv,
		Options:     o.opts,
		IDGenerator: o.idGen,
		Clock:       o.clock,
		EventBus:    o.bus,
	})
	if err != nil {
		result.AddResourceError(err)
		return result
	}

	result.Merge(driver.ConvertAll(ctx, records))
	if def.link != nil {
		result.Documents = def.link(result.Documents)
	}
	return result
}

// save hands the documents to the sink. A sink failure is reported on the
// result; the documents stay converted.
func (o *orchestrator) save(ctx context.Context, result *pipeline.BatchResult) {
	if o.documents == nil || len(result.Documents) == 0 {
		return
	}

	if _, err := o.documents.Save(ctx, &documentrepo.SaveInput{Documents: result.Documents}); err != nil {
		slog.Error("Failed to save documents", "category", result.Category, "error", err)
		result.AddResourceError(errors.Wrap(err, "save documents"))
		return
	}
	slog.Debug("Saved category documents", "category", result.Category, "count", len(result.Documents))
}
