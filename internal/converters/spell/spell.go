// Package spell converts spell records into spell documents
package spell

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Name is the category handled by this converter
const Name = "spell"

// Sources lists the spell files in load order
var Sources = []source.File{
	{Path: "spells/spells-phb.json", Key: "spell"},
	{Path: "spells/spells-xphb.json", Key: "spell"},
}

// FluffSources lists the spell fluff files
var FluffSources = []source.File{
	{Path: "spells/fluff-spells-phb.json", Key: "spellFluff"},
	{Path: "spells/fluff-spells-xphb.json", Key: "spellFluff"},
}

var schools = map[string]string{
	"A": "abjuration",
	"C": "conjuration",
	"D": "divination",
	"E": "enchantment",
	"V": "evocation",
	"I": "illusion",
	"N": "necromancy",
	"T": "transmutation",
	"P": "psionic",
}

var schoolCodes = []string{"A", "C", "D", "E", "V", "I", "N", "T", "P"}

// Config contains the read-only side tables of the converter
type Config struct {
	Fluff   *fluff.Index
	Classes ClassIndex
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Fluff == nil {
		cfg.Fluff = fluff.NewIndex()
	}
	if cfg.Classes == nil {
		cfg.Classes = ClassIndex{}
	}
	return nil
}

type converter struct {
	fluff   *fluff.Index
	classes ClassIndex
}

// New creates the spell converter
func New(cfg *Config) (pipeline.Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return pipeline.Adapt[Input](&converter{fluff: cfg.Fluff, classes: cfg.Classes}), nil
}

func (c *converter) Name() string { return Name }

func (c *converter) InputSchema() schema.Schema {
	return schema.For(func(in *Input) error {
		return validation.ValidateStruct(in,
			validation.Field(&in.Name, validation.Required),
			validation.Field(&in.Level, validation.Min(0), validation.Max(9)),
			validation.Field(&in.School, validation.Required, schema.OneOf(schoolCodes...)),
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.For(func(out *document.SpellData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.Level, validation.Min(0), validation.Max(9)),
			validation.Field(&out.School, validation.Required),
			validation.Field(&out.Damage, validation.Each(validation.By(func(value any) error {
				roll, _ := value.(document.DamageRoll)
				return validation.Validate(roll.Dice, schema.Dice)
			}))),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindDocument, Category: document.CategorySpell}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, in.Entries, "")
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	// prose is scanned in plain text so markdown markers never split a match
	plain := markup.New(markup.ModePlain)
	text := plain.Process(in.Entries).Text
	higher := plain.Process(in.EntriesHigherLevel).Text

	out := &document.SpellData{
		Level:        in.Level,
		School:       schools[in.School],
		CastingTime:  castingTime(in.Time, p),
		Range:        rangeText(in.Range),
		Components:   components(in.Components, p),
		Duration:     duration(in.Duration),
		Ritual:       in.Meta["ritual"],
		SavingThrows: lowerAll(in.SavingThrow),
		HigherLevels: p.Process(in.EntriesHigherLevel).Text,
		Classes:      c.classes.Classes(in.Name, in.Source),
	}
	for _, d := range in.Duration {
		if d.Concentration {
			out.Concentration = true
		}
	}

	seen := make(map[document.DamageRoll]bool)
	for _, v := range markup.ExtractStructuredValues(text, markup.DamageDice) {
		roll := document.DamageRoll{Dice: v.Dice, Type: v.DamageType}
		if !seen[roll] {
			seen[roll] = true
			out.Damage = append(out.Damage, roll)
		}
	}

	out.DamageTypes = lowerAll(in.DamageInflict)
	if len(out.DamageTypes) == 0 {
		for _, roll := range out.Damage {
			out.DamageTypes = appendUnique(out.DamageTypes, roll.Type)
		}
	}

	if in.Level == 0 {
		out.Scaling = scaling(in.ScalingLevelDice)
		if len(out.Scaling) == 0 {
			for _, v := range markup.ExtractStructuredValues(text+"\n"+higher, markup.ScalingTable) {
				out.Scaling = append(out.Scaling, document.ScalingStep{Level: v.Level, Dice: v.Dice})
			}
		}
	}

	return out, nil
}

func castingTime(times []CastingTime, p *markup.Processor) string {
	parts := make([]string, 0, len(times))
	for _, t := range times {
		unit := t.Unit
		if unit == "bonus" {
			unit = "bonus action"
		}
		if t.Number != 1 {
			unit += "s"
		}
		part := fmt.Sprintf("%d %s", t.Number, unit)
		if t.Condition != "" {
			part += ", " + p.Text(t.Condition)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " or ")
}

func rangeText(r Range) string {
	switch r.Type {
	case "point":
		return distanceText(r.Distance)
	case "special":
		return "Special"
	case "":
		return ""
	default:
		// area shapes centred on the caster
		return fmt.Sprintf("Self (%d-%s %s)", r.Distance.Amount, singular(r.Distance.Type), r.Type)
	}
}

func distanceText(d Distance) string {
	switch d.Type {
	case "self", "touch", "sight", "unlimited":
		return strings.ToUpper(d.Type[:1]) + d.Type[1:]
	case "":
		return ""
	}
	unit := d.Type
	if d.Amount == 1 {
		unit = singular(unit)
	}
	return fmt.Sprintf("%d %s", d.Amount, unit)
}

func singular(unit string) string {
	if unit == "feet" {
		return "foot"
	}
	return strings.TrimSuffix(unit, "s")
}

func components(m map[string]any, p *markup.Processor) document.Components {
	var out document.Components
	out.Verbal, _ = m["v"].(bool)
	out.Somatic, _ = m["s"].(bool)
	switch mat := m["m"].(type) {
	case string:
		out.Material = p.Text(mat)
	case map[string]any:
		text, _ := mat["text"].(string)
		out.Material = p.Text(text)
		if cost, ok := source.AsInt(mat["cost"]); ok {
			out.MaterialCost = cost
		}
		switch consume := mat["consume"].(type) {
		case bool:
			out.MaterialConsumed = consume
		case string:
			out.MaterialConsumed = consume != ""
		}
	}
	return out
}

func duration(durations []Duration) string {
	parts := make([]string, 0, len(durations))
	for _, d := range durations {
		switch d.Type {
		case "instant":
			parts = append(parts, "Instantaneous")
		case "timed":
			part := fmt.Sprintf("%d %s", d.Duration.Amount, d.Duration.Type)
			if d.Duration.Amount != 1 {
				part += "s"
			}
			if d.Concentration {
				part = "Concentration, up to " + part
			}
			parts = append(parts, part)
		case "permanent":
			if contains(d.Ends, "dispel") {
				parts = append(parts, "Until dispelled")
			} else {
				parts = append(parts, "Permanent")
			}
		case "special":
			parts = append(parts, "Special")
		}
	}
	return strings.Join(parts, " or ")
}

// scaling reads scalingLevelDice, a {label, scaling} object or a list of
// them; only the first is used
func scaling(v any) []document.ScalingStep {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	obj, _ := v.(map[string]any)
	table, _ := obj["scaling"].(map[string]any)
	var out []document.ScalingStep
	for level, dice := range table {
		n, err := strconv.Atoi(level)
		expr, _ := dice.(string)
		if err != nil || expr == "" {
			continue
		}
		out = append(out, document.ScalingStep{Level: n, Dice: expr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

func lowerAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}

func appendUnique(values []string, v string) []string {
	if v == "" || contains(values, v) {
		return values
	}
	return append(values, v)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
