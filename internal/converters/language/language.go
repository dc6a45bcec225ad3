// Package language converts language records into language documents
package language

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/common"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Name is the category handled by this converter
const Name = "language"

// Sources lists the language files
var Sources = []source.File{
	{Path: "languages.json", Key: "language"},
}

// FluffSources lists the language fluff files
var FluffSources = []source.File{
	{Path: "fluff-languages.json", Key: "languageFluff"},
}

// Types are the accepted language types
var Types = []string{"standard", "exotic", "rare", "secret"}

// Input is a language record
type Input struct {
	Name            string            `json:"name"`
	Source          string            `json:"source"`
	Page            int               `json:"page"`
	Type            string            `json:"type"`
	Script          string            `json:"script"`
	TypicalSpeakers source.StringList `json:"typicalSpeakers"`
	Dialects        source.StringList `json:"dialects"`
	Entries         []any             `json:"entries"`
}

// Config contains the read-only side tables of the converter
type Config struct {
	Fluff *fluff.Index
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Fluff == nil {
		cfg.Fluff = fluff.NewIndex()
	}
	return nil
}

type converter struct {
	fluff *fluff.Index
}

// New creates the language converter
func New(cfg *Config) (pipeline.Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return pipeline.Adapt[Input](&converter{fluff: cfg.Fluff}), nil
}

func (c *converter) Name() string { return Name }

func (c *converter) InputSchema() schema.Schema {
	return schema.For(func(in *Input) error {
		return validation.ValidateStruct(in,
			validation.Field(&in.Name, validation.Required),
			validation.Field(&in.Type, validation.Required, schema.OneOf(Types...)),
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.For(func(out *document.LanguageData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.Type, validation.Required, schema.OneOf(Types...)),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindDocument, Category: document.CategoryLanguage}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, in.Entries, "")
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	speakers := make([]string, 0, len(in.TypicalSpeakers))
	for _, s := range in.TypicalSpeakers {
		speakers = append(speakers, p.Text(s))
	}
	out := &document.LanguageData{
		Type:            in.Type,
		Script:          p.Text(in.Script),
		TypicalSpeakers: strings.Join(speakers, ", "),
		Speakers:        common.References([]string(in.TypicalSpeakers), "race", document.KindDocument, document.CategorySpecies, in.Source),
	}
	for _, d := range in.Dialects {
		out.Dialects = append(out.Dialects, p.Text(d))
	}
	return out, nil
}
