// Package class converts class records, with their features and
// subclasses, into class documents
package class

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/common"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/filter"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/reference"
	"github.com/mixtli/dungeon-lab-sub000/internal/schema"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Name is the category handled by this converter
const Name = "class"

// srdClasses are the classes with one file each under class/
var srdClasses = []string{
	"barbarian", "bard", "cleric", "druid", "fighter", "monk",
	"paladin", "ranger", "rogue", "sorcerer", "warlock", "wizard",
}

// Sources lists the class files in load order
var Sources = func() []source.File {
	files := make([]source.File, len(srdClasses))
	for i, c := range srdClasses {
		files[i] = source.File{Path: fmt.Sprintf("class/class-%s.json", c), Key: "class"}
	}
	return files
}()

// FluffSources lists the class fluff files
var FluffSources = func() []source.File {
	files := make([]source.File, len(srdClasses))
	for i, c := range srdClasses {
		files[i] = source.File{Path: fmt.Sprintf("class/fluff-class-%s.json", c), Key: "classFluff"}
	}
	return files
}()

// Config contains the read-only side tables of the converter
type Config struct {
	Fluff  *fluff.Index
	Tables *Tables
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Fluff == nil {
		cfg.Fluff = fluff.NewIndex()
	}
	if cfg.Tables == nil {
		cfg.Tables = NewTables()
	}
	return nil
}

type converter struct {
	fluff  *fluff.Index
	tables *Tables
}

// New creates the class converter
func New(cfg *Config) (pipeline.Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return pipeline.Adapt[Input](&converter{fluff: cfg.Fluff, tables: cfg.Tables}), nil
}

func (c *converter) Name() string { return Name }

func (c *converter) InputSchema() schema.Schema {
	return schema.For(func(in *Input) error {
		return validation.ValidateStruct(in,
			validation.Field(&in.Name, validation.Required),
			validation.Field(&in.HD, validation.By(func(any) error {
				if in.HD.Faces <= 0 {
					return validation.NewError("validation_hit_die", "must have a die size")
				}
				return nil
			})),
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.For(func(out *document.ClassData) error {
		return validation.ValidateStruct(out,
			validation.Field(&out.HitDie, validation.Required, validation.In(6, 8, 10, 12)),
			validation.Field(&out.Proficiencies, validation.By(func(any) error {
				if out.Proficiencies.Skills.Choose < 0 {
					return validation.NewError("validation_skill_choice", "cannot choose a negative number of skills")
				}
				return nil
			})),
		)
	})
}

func (c *converter) Classify(_ *Input) pipeline.Classification {
	return pipeline.Classification{Kind: document.KindDocument, Category: document.CategoryClass}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, nil, fmt.Sprintf("The %s class.", in.Name))
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, _ pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	p := opts.Processor()
	out := &document.ClassData{
		HitDie:         in.HD.Faces,
		PrimaryAbility: primaryAbility(in.PrimaryAbility),
		SavingThrows:   abilityNames(in.Proficiency),
		Proficiencies: document.Proficiencies{
			Armor:   proficiencies(in.StartingProficiencies.Armor, p),
			Weapons: proficiencies(in.StartingProficiencies.Weapons, p),
			Tools:   proficiencies(in.StartingProficiencies.Tools, p),
			Skills:  skillChoice(in.StartingProficiencies.Skills),
		},
		Features: c.features(in.ClassFeatures, in.Source, p),
	}

	if in.SpellcastingAbility != "" {
		prepared := in.PreparedSpellsProgression
		if len(prepared) == 0 {
			prepared = in.SpellsKnownProgression
		}
		out.Spellcasting = &document.Spellcasting{
			Ability:        strings.ToLower(markup.AbilityName(in.SpellcastingAbility)),
			Progression:    in.CasterProgression,
			CantripsKnown:  in.CantripProgression,
			PreparedSpells: prepared,
		}
	}

	want := RulesetSource(opts.Ruleset)
	for _, sc := range c.tables.Subclasses(in.Name, in.Source) {
		if want != "" && !strings.EqualFold(sc.Source, want) {
			continue
		}
		if opts.SRDOnly && !filter.IsOpenContent(source.RawRecord{"srd": sc.SRD, "srd52": sc.SRD52}) {
			continue
		}
		out.Subclasses = append(out.Subclasses, document.Subclass{
			Name:             sc.Name,
			ShortName:        sc.ShortName,
			Source:           sc.Source,
			Features:         c.features(sc.SubclassFeatures, sc.ClassSource, p),
			AdditionalSpells: spellGrants(sc.AdditionalSpells, sc.Source),
		})
	}

	return out, nil
}

// features resolves feature keys through the side table. Keys with no
// record keep their name and level.
func (c *converter) features(keys []any, defaultSource string, p *markup.Processor) []document.ClassFeature {
	var out []document.ClassFeature
	for _, entry := range keys {
		var key string
		switch t := entry.(type) {
		case string:
			key = t
		case map[string]any:
			key, _ = t["classFeature"].(string)
			if key == "" {
				key, _ = t["subclassFeature"].(string)
			}
		}
		fk, ok := reference.ParseFeatureKey(key, defaultSource)
		if !ok {
			continue
		}
		feature := document.ClassFeature{Name: fk.Name, Level: fk.Level}
		if rec, found := c.tables.Feature(fk); found {
			feature.Text = p.Process(rec.Entries).Text
		}
		out = append(out, feature)
	}
	return out
}

func abilityNames(codes []string) []string {
	var out []string
	for _, code := range codes {
		out = append(out, strings.ToLower(markup.AbilityName(code)))
	}
	return out
}

// primaryAbility reads [{"str": true}, {"dex": true, "wis": true}]; each
// object is one alternative
func primaryAbility(options []map[string]bool) []string {
	var out []string
	for _, opt := range options {
		var codes []string
		for code, set := range opt {
			if set {
				codes = append(codes, code)
			}
		}
		sort.Strings(codes)
		if len(codes) > 0 {
			out = append(out, strings.Join(abilityNames(codes), " and "))
		}
	}
	return out
}

func proficiencies(values []any, p *markup.Processor) []string {
	var out []string
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, p.Text(t))
		case map[string]any:
			if full, _ := t["full"].(string); full != "" {
				out = append(out, p.Text(full))
			} else if prof, _ := t["proficiency"].(string); prof != "" {
				out = append(out, p.Text(prof))
			}
		}
	}
	return out
}

func skillChoice(blocks []any) document.SkillChoice {
	for _, b := range blocks {
		obj, ok := b.(map[string]any)
		if !ok {
			continue
		}
		if choose, ok := obj["choose"].(map[string]any); ok {
			count, ok := source.AsInt(choose["count"])
			if !ok {
				count = 1
			}
			return document.SkillChoice{Choose: count, From: common.Humanized(source.AsStrings(choose["from"]))}
		}
		if n, ok := source.AsInt(obj["any"]); ok {
			return document.SkillChoice{Choose: n}
		}
	}
	return document.SkillChoice{}
}

// spellGrants reads additionalSpells blocks such as
// [{"prepared": {"3": ["bless|xphb"]}}] into references by level. Choice
// filters like {"choose": "level=0"} are not spells and are skipped.
func spellGrants(blocks []any, defaultSource string) []document.SpellGrant {
	byLevel := make(map[int][]document.Reference)
	seen := make(map[int]map[document.Reference]bool)
	for _, b := range blocks {
		obj, _ := b.(map[string]any)
		for _, kind := range []string{"prepared", "known", "expanded", "innate"} {
			levels, _ := obj[kind].(map[string]any)
			for key, spells := range levels {
				level, err := strconv.Atoi(strings.TrimPrefix(key, "s"))
				if err != nil {
					continue
				}
				if seen[level] == nil {
					seen[level] = make(map[document.Reference]bool)
				}
				for _, name := range source.AsStrings(spells) {
					ref := reference.Parse(name, document.KindDocument, document.CategorySpell, defaultSource)
					if ref.Slug == "" || seen[level][ref] {
						continue
					}
					seen[level][ref] = true
					byLevel[level] = append(byLevel[level], ref)
				}
			}
		}
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	out := make([]document.SpellGrant, 0, len(levels))
	for _, level := range levels {
		out = append(out, document.SpellGrant{Level: level, Spells: byLevel[level]})
	}
	return out
}
