// Package action converts action records into action documents
package action

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/common"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/reference"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Name is the category handled by this converter
const Name = "action"

// Sources lists the action files
var Sources = []source.File{
	{Path: "actions.json", Key: "action"},
}

// Input is an action record. Time entries are {number, unit, condition}
// objects or free text such as "Varies".
type Input struct {
	Name          string   `json:"name"`
	Source        string   `json:"source"`
	Page          int      `json:"page"`
	Time          []any    `json:"time"`
	Entries       []any    `json:"entries"`
	SeeAlsoAction []string `json:"seeAlsoAction"`
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

// New creates the action converter
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
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.For(func(out *document.ActionData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.Effect, validation.NotNil),
			validation.Field(&out.Uses, validation.By(func(any) error {
				if out.Uses != nil && out.Uses.Count < 1 {
					return validation.NewError("validation_uses", "must allow at least one use")
				}
				return nil
			})),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindDocument, Category: document.CategoryAction}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, in.Entries, "")
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	out := &document.ActionData{
		Effect: Effect(in.Time, p),
		Uses:   uses(markup.New(markup.ModePlain).Process(in.Entries).Text),
	}
	seen := make(map[document.Reference]bool)
	for _, key := range in.SeeAlsoAction {
		ref := reference.Parse(key, document.KindDocument, document.CategoryAction, in.Source)
		if ref.Slug != "" && !seen[ref] {
			seen[ref] = true
			out.SeeAlso = append(out.SeeAlso, ref)
		}
	}
	return out, nil
}

// Effect picks the effect variant from the first time entry. Free text and
// unknown units become a special action carrying the text.
func Effect(times []any, p *markup.Processor) document.ActionEffect {
	if len(times) == 0 {
		return document.SpecialAction{}
	}
	switch t := times[0].(type) {
	case string:
		return document.SpecialAction{Timing: p.Text(t)}
	case map[string]any:
		unit, _ := t["unit"].(string)
		condition, _ := t["condition"].(string)
		switch unit {
		case "action":
			return document.StandardAction{}
		case "bonus":
			return document.BonusAction{}
		case "reaction":
			return document.Reaction{Trigger: p.Text(condition)}
		case "free":
			return document.FreeAction{}
		}
		return document.SpecialAction{Timing: common.Humanize(unit)}
	}
	return document.SpecialAction{}
}

// uses reads an "N/Day" limit. Anything less clear than a single stated
// limit is left unset.
func uses(text string) *document.Uses {
	values := markup.ExtractStructuredValues(text, markup.UsesPerDay)
	if len(values) == 0 {
		return nil
	}
	for _, v := range values[1:] {
		if v.Number != values[0].Number {
			return nil
		}
	}
	return &document.Uses{Count: values[0].Number, Per: "day"}
}
