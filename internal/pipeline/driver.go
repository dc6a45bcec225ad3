package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/pkg/clock"
	"github.com/mixtli/dungeon-lab-sub000/internal/pkg/idgen"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// EventDocumentConverted is published once per converted document
const EventDocumentConverted = "document.converted"

// Config contains the dependencies of a Driver
type Config struct {
	Converter Converter
	Options   Options
	// IDGenerator derives document IDs (optional, defaults to name-based UUIDs)
	IDGenerator idgen.Generator
	// Clock measures batch duration (optional, defaults to the system clock)
	Clock clock.Clock
	// EventBus receives a document.converted event per document (optional)
	EventBus events.EventBus
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Converter == nil {
		vb.RequiredField("Converter")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.IDGenerator == nil {
		cfg.IDGenerator = idgen.NewNameBased("")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return nil
}

// Driver converts the records of one category
type Driver struct {
	converter Converter
	opts      Options
	idGen     idgen.Generator
	clock     clock.Clock
	bus       events.EventBus
}

// New creates a driver for the configured converter
func New(cfg *Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Driver{
		converter: cfg.Converter,
		opts:      cfg.Options,
		idGen:     cfg.IDGenerator,
		clock:     cfg.Clock,
		bus:       cfg.EventBus,
	}, nil
}

// Category returns the converter's category name
func (d *Driver) Category() string {
	return d.converter.Name()
}

// Convert runs one record through the pipeline. It never panics; a
// failing hook yields an unsuccessful Result.
func (d *Driver) Convert(ctx context.Context, raw source.RawRecord) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Converter panicked",
				"category", d.converter.Name(),
				"record", raw.Name(),
				"panic", r,
				"stack", string(debug.Stack()))
			result = failed(fmt.Sprintf("internal error: %v", r))
		}
	}()

	input, err := d.converter.Decode(raw)
	if err != nil {
		return failed(errors.Messages(err)...)
	}

	if err := d.converter.InputSchema().Validate(input); err != nil {
		return failed(errors.Messages(err)...)
	}

	class := d.converter.Classify(input)
	description := d.converter.ExtractDescription(input, d.opts)
	var assetPath string
	if d.opts.ResolveAssets {
		assetPath = d.converter.ExtractAssetPath(input, d.opts)
	}

	data, err := d.converter.TransformData(input, class, d.opts)
	if err != nil {
		if !errors.IsStructural(err) {
			slog.Warn("Transform failed",
				"category", d.converter.Name(),
				"record", raw.Name(),
				"error", err)
		}
		return failed(errors.Messages(err)...)
	}
	if data == nil {
		return failed("plugin_data: transform produced no data")
	}
	if data.Category() != class.Category {
		return failed(fmt.Sprintf("plugin_data: %s payload does not match category %s", data.Category(), class.Category))
	}
	if err := d.converter.OutputSchema().Validate(data); err != nil {
		return failed(errors.Messages(err)...)
	}

	doc, err := d.build(raw, class, description, assetPath, data)
	if err != nil {
		return failed(errors.Messages(err)...)
	}

	d.publish(ctx, doc)
	return Result{Success: true, Document: doc}
}

func (d *Driver) build(raw source.RawRecord, class Classification, description, assetPath string, data document.PluginData) (*document.Document, error) {
	name := raw.Name()
	slug := document.Slugify(name)
	if slug == "" {
		return nil, errors.NewValidationBuilder().Field("name", "does not produce a slug").Build()
	}

	doc := &document.Document{
		Name:         name,
		Slug:         slug,
		DocumentKind: class.Kind,
		Category:     class.Category,
		Description:  description,
		PluginData:   data,
		ImagePath:    assetPath,
		Source:       document.Source{Book: raw.Source()},
	}
	if page, ok := source.AsInt(raw["page"]); ok {
		doc.Source.Page = page
	}
	doc.ID = d.idGen.Generate(doc.IdentityKey())
	return doc, nil
}

func (d *Driver) publish(ctx context.Context, doc *document.Document) {
	if d.bus == nil {
		return
	}
	if err := d.bus.Publish(ctx, events.NewGameEvent(EventDocumentConverted, doc, nil)); err != nil {
		slog.Warn("Failed to publish conversion event", "document", doc.ID, "error", err)
	}
}

// ConvertAll converts every record in order. One record's failure never
// stops the batch; each failure is listed as "<name>: <reason>".
func (d *Driver) ConvertAll(ctx context.Context, records []source.RawRecord) *BatchResult {
	start := d.clock.Now()
	batch := &BatchResult{
		Category: d.converter.Name(),
		Total:    len(records),
	}

	for i, raw := range records {
		res := d.Convert(ctx, raw)
		if res.Success {
			batch.Converted++
			batch.Documents = append(batch.Documents, res.Document)
			continue
		}

		batch.Failed++
		label := raw.Name()
		if label == "" {
			label = fmt.Sprintf("record #%d", i)
		}
		reason := "conversion failed"
		if len(res.Errors) > 0 {
			reason = strings.Join(res.Errors, "; ")
		}
		batch.Errors = append(batch.Errors, fmt.Sprintf("%s: %s", label, reason))
	}

	batch.Duration = clock.Elapsed(d.clock, start)
	slog.Info("Converted category batch",
		"category", batch.Category,
		"total", batch.Total,
		"converted", batch.Converted,
		"failed", batch.Failed,
		"duration", batch.Duration)
	return batch
}
