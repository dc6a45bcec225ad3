// Package species converts playable race records into species documents
package species

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/common"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Name is the category handled by this converter
const Name = "species"

// Sources lists the species files
var Sources = []source.File{
	{Path: "races.json", Key: "race"},
}

// FluffSources lists the species fluff files
var FluffSources = []source.File{
	{Path: "fluff-races.json", Key: "raceFluff"},
}

// Input is a race record
type Input struct {
	Name                  string            `json:"name"`
	Source                string            `json:"source"`
	Page                  int               `json:"page"`
	Size                  source.StringList `json:"size"`
	Speed                 any               `json:"speed"`
	CreatureTypes         []string          `json:"creatureTypes"`
	Ability               []map[string]any  `json:"ability"`
	Darkvision            int               `json:"darkvision"`
	Resist                []any             `json:"resist"`
	LanguageProficiencies []any             `json:"languageProficiencies"`
	Entries               []any             `json:"entries"`
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

// New creates the species converter
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
			validation.Field(&in.Size, validation.Each(schema.OneOf(common.SizeCodes...))),
			validation.Field(&in.Darkvision, validation.Min(0)),
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.For(func(out *document.SpeciesData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.Size, validation.Required),
			validation.Field(&out.CreatureType, validation.Required),
			validation.Field(&out.AbilityChoices, validation.Each(validation.By(func(value any) error {
				choice, _ := value.(document.AbilityChoice)
				if choice.Choose < 1 || choice.Choose > len(choice.From) {
					return validation.NewError("validation_ability_choice", "must choose between 1 and the number of options")
				}
				return nil
			}))),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindDocument, Category: document.CategorySpecies}
}

// ExtractDescription does not fall back to entries; those become traits
func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, nil, "")
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	out := &document.SpeciesData{
		Size:         common.Sizes(in.Size),
		Speed:        common.Speed(in.Speed),
		CreatureType: "humanoid",
		Darkvision:   in.Darkvision,
		Resistances:  resistances(in.Resist),
		Languages:    common.ProficiencyList(in.LanguageProficiencies),
		Traits:       common.Features(p, in.Entries),
	}
	if len(in.CreatureTypes) > 0 {
		out.CreatureType = strings.Join(in.CreatureTypes, " or ")
	}
	// only the first ability block is used; later blocks are alternatives
	if len(in.Ability) > 0 {
		out.AbilityBonuses, out.AbilityChoices = abilities(in.Ability[0])
	}
	return out, nil
}

func abilities(block map[string]any) (map[string]int, []document.AbilityChoice) {
	var bonuses map[string]int
	var choices []document.AbilityChoice
	for _, code := range common.AbilityCodes {
		if n, ok := source.AsInt(block[code]); ok {
			if bonuses == nil {
				bonuses = make(map[string]int)
			}
			bonuses[strings.ToLower(markup.AbilityName(code))] = n
		}
	}
	if choose, ok := block["choose"].(map[string]any); ok {
		choice := document.AbilityChoice{Choose: 1, Amount: 1}
		if n, ok := source.AsInt(choose["count"]); ok {
			choice.Choose = n
		}
		if n, ok := source.AsInt(choose["amount"]); ok {
			choice.Amount = n
		}
		for _, code := range source.AsStrings(choose["from"]) {
			choice.From = append(choice.From, strings.ToLower(markup.AbilityName(code)))
		}
		choices = append(choices, choice)
	}
	return bonuses, choices
}

func resistances(values []any) []string {
	var out []string
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			choose, _ := t["choose"].(map[string]any)
			from := source.AsStrings(choose["from"])
			if len(from) == 0 {
				continue
			}
			sorted := append([]string(nil), from...)
			sort.Strings(sorted)
			out = append(out, fmt.Sprintf("one of %s", strings.Join(sorted, ", ")))
		}
	}
	return out
}
