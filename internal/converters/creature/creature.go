// Package creature converts monster stat blocks into creature documents
package creature

import (
	"fmt"
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
const Name = "creature"

// Sources lists the stat block files in load order
var Sources = []source.File{
	{Path: "bestiary/bestiary-mm.json", Key: "monster"},
	{Path: "bestiary/bestiary-xmm.json", Key: "monster"},
}

// FluffSources lists the creature fluff files; later files win
var FluffSources = []source.File{
	{Path: "bestiary/fluff-bestiary-mm.json", Key: "monsterFluff"},
	{Path: "bestiary/fluff-bestiary-xmm.json", Key: "monsterFluff"},
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

// New creates the creature converter
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
			validation.Field(&in.Size, validation.Required, validation.Each(schema.OneOf(common.SizeCodes...))),
			validation.Field(&in.Type, validation.By(func(any) error {
				if creatureType(in.Type) == "" {
					return validation.NewError("validation_required", "cannot be blank")
				}
				return nil
			})),
			validation.Field(&in.CR, validation.By(func(any) error {
				if _, ok := ParseCR(in.CR); !ok {
					return validation.NewError("validation_cr", fmt.Sprintf("cannot read challenge rating %v", in.CR))
				}
				return nil
			})),
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.For(func(out *document.CreatureData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.Size, validation.Required),
			validation.Field(&out.Type, validation.Required),
			validation.Field(&out.ChallengeRating, validation.Min(0.0), validation.Max(30.0)),
			validation.Field(&out.ProficiencyBonus, validation.Min(2), validation.Max(9)),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindActor, Category: document.CategoryCreature}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	template := fmt.Sprintf("%s is a %s %s.", in.Name, strings.Join(common.Sizes(in.Size), " or "), typeLine(in.Type))
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, nil, template)
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	if path := c.fluff.AssetPath(in.Name); path != "" {
		return path
	}
	if in.HasToken {
		return fmt.Sprintf("bestiary/tokens/%s/%s.webp", in.Source, in.Name)
	}
	return ""
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	cr, _ := ParseCR(in.CR)

	data := &document.CreatureData{
		Size:      common.Sizes(in.Size),
		Type:      creatureType(in.Type),
		TypeTags:  typeTags(in.Type),
		Alignment: Alignment(in.Alignment),
		HitPoints: hitPoints(in.HP),
		Speed:     common.Speed(in.Speed),
		Abilities: document.AbilityScores{
			Strength:     in.Str,
			Dexterity:    in.Dex,
			Constitution: in.Con,
			Intelligence: in.Int,
			Wisdom:       in.Wis,
			Charisma:     in.Cha,
		},
		SavingThrows:          bonuses(in.Save),
		Skills:                bonuses(in.Skill),
		PassivePerception:     passive(in.Passive, in.Wis),
		ChallengeRating:       cr,
		ProficiencyBonus:      ProficiencyBonus(cr),
		ExperiencePoints:      ExperiencePoints(cr),
		DamageImmunities:      Resistances(in.Immune, "immune", p),
		DamageResistances:     Resistances(in.Resist, "resist", p),
		DamageVulnerabilities: Resistances(in.Vulnerable, "vulnerable", p),
		ConditionImmunities:   Resistances(in.ConditionImmune, "conditionImmune", p),
		Traits:                common.Features(p, in.Trait),
		Actions:               common.Features(p, in.Action),
		BonusActions:          common.Features(p, in.Bonus),
		Reactions:             common.Features(p, in.Reaction),
		LegendaryActions:      common.Features(p, in.Legendary),
		Spells:                common.References(in.Spellcasting, "spell", document.KindDocument, document.CategorySpell, in.Source),
	}

	for _, ac := range in.AC {
		if entry, ok := armorClass(ac, p); ok {
			data.ArmorClass = append(data.ArmorClass, entry)
		}
	}
	for _, s := range in.Senses {
		data.Senses = append(data.Senses, p.Text(s))
	}
	for _, l := range in.Languages {
		data.Languages = append(data.Languages, p.Text(l))
	}

	return data, nil
}
