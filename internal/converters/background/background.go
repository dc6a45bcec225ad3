// Package background converts background records into background documents
package background

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
	"github.com/mixtli/dungeon-lab-sub000/internal/reference"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Name is the category handled by this converter
const Name = "background"

// Sources lists the background files
var Sources = []source.File{
	{Path: "backgrounds.json", Key: "background"},
}

// FluffSources lists the background fluff files
var FluffSources = []source.File{
	{Path: "fluff-backgrounds.json", Key: "backgroundFluff"},
}

// Input is a background record
type Input struct {
	Name                  string `json:"name"`
	Source                string `json:"source"`
	Page                  int    `json:"page"`
	SkillProficiencies    []any  `json:"skillProficiencies"`
	ToolProficiencies     []any  `json:"toolProficiencies"`
	LanguageProficiencies []any  `json:"languageProficiencies"`
	Ability               []any  `json:"ability"`
	Feats                 []any  `json:"feats"`
	StartingEquipment     []any  `json:"startingEquipment"`
	Entries               []any  `json:"entries"`
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

// New creates the background converter
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
	return schema.For(func(out *document.BackgroundData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.AbilityScores, validation.Each(schema.OneOf(
				"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
			))),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindDocument, Category: document.CategoryBackground}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, nil, "")
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	return &document.BackgroundData{
		SkillProficiencies:    common.ProficiencyList(in.SkillProficiencies),
		ToolProficiencies:     common.ProficiencyList(in.ToolProficiencies),
		LanguageProficiencies: common.ProficiencyList(in.LanguageProficiencies),
		AbilityScores:         abilityScores(in.Ability),
		Feats:                 feats(in.Feats, in.Source),
		Equipment:             equipment(in.StartingEquipment, p),
		Features:              common.Features(p, in.Entries),
	}, nil
}

// abilityScores lists the abilities a background can raise, from
// {"choose": {"weighted": {"from": [...]}}}, {"choose": {"from": [...]}}
// or fixed {"str": 1} blocks
func abilityScores(blocks []any) []string {
	var codes []string
	for _, b := range blocks {
		obj, ok := b.(map[string]any)
		if !ok {
			continue
		}
		if choose, ok := obj["choose"].(map[string]any); ok {
			if weighted, ok := choose["weighted"].(map[string]any); ok {
				codes = append(codes, source.AsStrings(weighted["from"])...)
			} else {
				codes = append(codes, source.AsStrings(choose["from"])...)
			}
		}
		for _, code := range common.AbilityCodes {
			if _, ok := obj[code]; ok {
				codes = append(codes, code)
			}
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, code := range codes {
		name := strings.ToLower(markup.AbilityName(code))
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// feats reads [{"magic initiate; cleric|xphb": true}]
func feats(blocks []any, defaultSource string) []document.Reference {
	var out []document.Reference
	for _, b := range blocks {
		obj, ok := b.(map[string]any)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(obj))
		for k, v := range obj {
			if set, _ := v.(bool); set {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, reference.Parse(k, document.KindDocument, document.CategoryFeat, defaultSource))
		}
	}
	return out
}

// equipment summarises startingEquipment blocks as "A: x, y; B: 50 GP".
// The "_" option is always granted and is listed without a label.
func equipment(blocks []any, p *markup.Processor) string {
	var lines []string
	for _, b := range blocks {
		obj, ok := b.(map[string]any)
		if !ok {
			continue
		}
		options := make([]string, 0, len(obj))
		for k := range obj {
			options = append(options, k)
		}
		sort.Strings(options)
		for _, opt := range options {
			items, _ := obj[opt].([]any)
			names := make([]string, 0, len(items))
			for _, item := range items {
				if name := equipmentItem(item, p); name != "" {
					names = append(names, name)
				}
			}
			if len(names) == 0 {
				continue
			}
			line := strings.Join(names, ", ")
			if opt != "_" {
				line = opt + ": " + line
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "; ")
}

func equipmentItem(v any, p *markup.Processor) string {
	switch t := v.(type) {
	case string:
		name, _, _ := reference.Split(t)
		return name
	case map[string]any:
		if value, ok := source.AsInt(t["value"]); ok {
			return coins(value)
		}
		name, _ := t["special"].(string)
		if item, ok := t["item"].(string); ok {
			name, _, _ = reference.Split(item)
		}
		if display, ok := t["displayName"].(string); ok {
			name = display
		}
		if name == "" {
			return ""
		}
		if qty, ok := source.AsInt(t["quantity"]); ok && qty > 1 {
			name = fmt.Sprintf("%s (%d)", name, qty)
		}
		return p.Text(name)
	}
	return ""
}

// coins formats a copper amount in the largest whole coin
func coins(cp int) string {
	switch {
	case cp >= 100 && cp%100 == 0:
		return fmt.Sprintf("%d GP", cp/100)
	case cp >= 10 && cp%10 == 0:
		return fmt.Sprintf("%d SP", cp/10)
	}
	return fmt.Sprintf("%d CP", cp)
}
