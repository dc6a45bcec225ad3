// Package pipeline drives raw records through validation, transformation
// and document construction for one content category.
package pipeline

import (
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Options are the per-batch settings passed to every hook. They are passed
// by value and never modified by the pipeline.
type Options struct {
	MarkupMode    markup.Mode
	ResolveAssets bool
	// SRDOnly drops nested records, such as subclasses, that are not open
	// content
	SRDOnly bool
	// Ruleset selects the class/subclass edition: "2024" or "2014"
	Ruleset string
}

// Processor returns a markup processor for the options' mode
func (o Options) Processor() *markup.Processor {
	return markup.New(o.MarkupMode)
}

// Classification is the kind and category decided for one input. It is
// computed once per record and threaded into construction.
type Classification struct {
	Kind     document.Kind
	Category document.Category
}

// Converter supplies the category-specific hooks the driver calls
type Converter interface {
	// Name is the content category handled, e.g. "creature"
	Name() string
	// Decode turns a raw record into the converter's input type
	Decode(raw source.RawRecord) (any, error)
	InputSchema() schema.Schema
	OutputSchema() schema.Schema
	// Classify must be pure
	Classify(input any) Classification
	ExtractDescription(input any, opts Options) string
	ExtractAssetPath(input any, opts Options) string
	TransformData(input any, class Classification, opts Options) (document.PluginData, error)
}

// Hooks is the typed form of Converter. Adapt turns it into a Converter
// that decodes raw records into *T.
type Hooks[T any] interface {
	Name() string
	InputSchema() schema.Schema
	OutputSchema() schema.Schema
	Classify(input *T) Classification
	ExtractDescription(input *T, opts Options) string
	ExtractAssetPath(input *T, opts Options) string
	TransformData(input *T, class Classification, opts Options) (document.PluginData, error)
}

// Adapt wraps typed hooks as a Converter
func Adapt[T any](hooks Hooks[T]) Converter {
	return &adapter[T]{hooks: hooks}
}

type adapter[T any] struct {
	hooks Hooks[T]
}

func (a *adapter[T]) Name() string                { return a.hooks.Name() }
func (a *adapter[T]) InputSchema() schema.Schema  { return a.hooks.InputSchema() }
func (a *adapter[T]) OutputSchema() schema.Schema { return a.hooks.OutputSchema() }

func (a *adapter[T]) Decode(raw source.RawRecord) (any, error) {
	in := new(T)
	if err := raw.Decode(in); err != nil {
		return nil, err
	}
	return in, nil
}

func (a *adapter[T]) Classify(input any) Classification {
	return a.hooks.Classify(input.(*T))
}

func (a *adapter[T]) ExtractDescription(input any, opts Options) string {
	return a.hooks.ExtractDescription(input.(*T), opts)
}

func (a *adapter[T]) ExtractAssetPath(input any, opts Options) string {
	return a.hooks.ExtractAssetPath(input.(*T), opts)
}

func (a *adapter[T]) TransformData(input any, class Classification, opts Options) (document.PluginData, error) {
	in, ok := input.(*T)
	if !ok {
		return nil, errors.FailedPreconditionf("%s converter received %T", a.hooks.Name(), input)
	}
	return a.hooks.TransformData(in, class, opts)
}
