// Package item converts base items, items and item groups into weapon,
// armor, tool, gear and item-group documents
package item

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

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
const Name = "item"

// Sources lists the item files in load order. items.json is listed twice:
// once for items and once for item groups.
var Sources = []source.File{
	{Path: "items-base.json", Key: "baseitem"},
	{Path: "items.json", Key: "item"},
	{Path: "items.json", Key: "itemGroup"},
}

// FluffSources lists the item fluff files
var FluffSources = []source.File{
	{Path: "fluff-items.json", Key: "itemFluff"},
}

var flatDamage = regexp.MustCompile(`^\d+$`)

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

// New creates the item converter
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
			validation.Field(&in.Weight, validation.Min(0.0)),
			validation.Field(&in.Value, validation.Min(0.0)),
		)
	})
}

func (c *converter) OutputSchema() schema.Schema {
	return schema.Func(func(value any) error {
		switch out := value.(type) {
		case *document.WeaponData:
			return schema.Normalize(validation.ValidateStruct(out,
				validation.Field(&out.WeaponCategory, schema.OneOf("simple", "martial")),
				validation.Field(&out.AttackType, validation.Required, schema.OneOf("melee", "ranged")),
				validation.Field(&out.Damage, validation.By(damageRule)),
			))
		case *document.ArmorData:
			return schema.Normalize(validation.ValidateStruct(out,
				validation.Field(&out.ArmorCategory, validation.Required),
				validation.Field(&out.ArmorClass, validation.Min(0)),
			))
		case *document.ToolData:
			return schema.Normalize(validation.ValidateStruct(out,
				validation.Field(&out.ToolType, validation.Required),
			))
		case *document.GearData:
			return nil
		case *document.ItemGroupData:
			return schema.Normalize(validation.ValidateStruct(out,
				validation.Field(&out.Members, validation.Required),
			))
		}
		return errors.FailedPreconditionf("item schema cannot validate %T", value)
	})
}

func damageRule(value any) error {
	roll, _ := value.(document.DamageRoll)
	if roll.Dice == "" || flatDamage.MatchString(roll.Dice) {
		return nil
	}
	return validation.Validate(roll.Dice, schema.Dice)
}

func (c *converter) Classify(in *Input) pipeline.Classification {
	category := Classify(in)
	if category == document.CategoryItemGroup {
		return pipeline.Classification{Kind: document.KindDocument, Category: category}
	}
	return pipeline.Classification{Kind: document.KindItem, Category: category}
}

func (c *converter) ExtractDescription(in *Input, opts pipeline.Options) string {
	return fluff.Describe(c.fluff, opts.Processor(), in.Name, in.Entries, summary(in))
}

func (c *converter) ExtractAssetPath(in *Input, _ pipeline.Options) string {
	return c.fluff.AssetPath(in.Name)
}

func (c *converter) TransformData(in *Input, class pipeline.Classification, opts pipeline.Options) (document.PluginData, error) {
	switch class.Category {
	case document.CategoryWeapon:
		return weapon(in)
	case document.CategoryArmor:
		return armor(in), nil
	case document.CategoryTool:
		return &document.ToolData{
			ItemCommon: common(in, opts.Processor()),
			ToolType:   toolType(in),
			TypeCode:   in.TypeCode(),
		}, nil
	case document.CategoryItemGroup:
		return group(in), nil
	default:
		return &document.GearData{
			ItemCommon: common(in, opts.Processor()),
			GearType:   gearCodes[in.TypeCode()],
		}, nil
	}
}

func common(in *Input, p *markup.Processor) document.ItemCommon {
	out := document.ItemCommon{
		Weight:      in.Weight,
		ValueCopper: in.Value.Int(),
	}
	if in.Rarity != "none" && in.Rarity != "unknown" {
		out.Rarity = in.Rarity
	}
	switch attune := in.ReqAttune.(type) {
	case bool:
		out.RequiresAttunement = attune
	case string:
		out.RequiresAttunement = true
		out.AttunementNote = p.Text(attune)
	}
	return out
}

func weapon(in *Input) (document.PluginData, error) {
	out := &document.WeaponData{
		ItemCommon:     common(in, markup.New(markup.ModePlain)),
		WeaponCategory: strings.ToLower(in.WeaponCategory),
		AttackType:     weaponCodes[in.TypeCode()],
	}
	if out.AttackType == "" {
		out.AttackType = "melee"
		if in.Range != "" {
			out.AttackType = "ranged"
		}
	}

	vb := errors.NewValidationBuilder()
	if in.Dmg1 != "" {
		dice, err := damageDice(in.Dmg1)
		if err != nil {
			vb.Field("dmg1", errors.GetMessage(err))
		}
		out.Damage = document.DamageRoll{Dice: dice, Type: DamageType(in.DmgType)}
	}

	for _, prop := range in.Property {
		code := propertyCode(prop)
		name, ok := propertyNames[code]
		if !ok {
			continue
		}
		out.Properties = append(out.Properties, name)
		if code == "V" && in.Dmg2 != "" {
			dice, err := damageDice(in.Dmg2)
			if err != nil {
				vb.Field("dmg2", errors.GetMessage(err))
			}
			out.VersatileDamage = &document.DamageRoll{Dice: dice, Type: out.Damage.Type}
		}
	}

	if in.Range != "" {
		rng, ok := parseRange(in.Range)
		if !ok {
			vb.Fieldf("range", "cannot read range %q", in.Range)
		}
		out.Range = rng
	}

	for _, m := range in.Mastery {
		if code := propertyCode(m); code != "" {
			out.Mastery = append(out.Mastery, code)
		}
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return out, nil
}

func damageDice(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if flatDamage.MatchString(expr) {
		return expr, nil
	}
	return markup.NormalizeDice(expr)
}

// propertyCode reads a property or mastery entry, either "CODE|SOURCE" or
// an object with a uid
func propertyCode(prop any) string {
	switch t := prop.(type) {
	case string:
		return StripSource(t)
	case map[string]any:
		uid, _ := t["uid"].(string)
		return StripSource(uid)
	}
	return ""
}

func parseRange(s string) (*document.RangeIncrement, bool) {
	normal, long, _ := strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(normal))
	if err != nil {
		return nil, false
	}
	out := &document.RangeIncrement{Normal: n}
	if long != "" {
		l, err := strconv.Atoi(strings.TrimSpace(long))
		if err != nil {
			return nil, false
		}
		out.Long = l
	}
	return out, true
}

func armor(in *Input) document.PluginData {
	code := in.TypeCode()
	out := &document.ArmorData{
		ItemCommon:          common(in, markup.New(markup.ModePlain)),
		ArmorCategory:       armorCodes[code],
		StealthDisadvantage: in.Stealth,
	}
	if out.ArmorCategory == "" {
		out.ArmorCategory = "armor"
	}
	if in.AC != nil {
		out.ArmorClass = *in.AC
	}
	if n, ok := source.AsInt(in.Strength); ok {
		out.StrengthRequirement = n
	}

	switch code {
	case "LA":
		out.AddDexterity = true
	case "MA":
		out.AddDexterity = true
		limit := 2
		out.DexterityCap = &limit
	}
	if in.DexterityMax != nil {
		limit := *in.DexterityMax
		out.DexterityCap = &limit
	}
	return out
}

func toolType(in *Input) string {
	if name, ok := toolCodes[in.TypeCode()]; ok {
		return name
	}
	return "tool"
}

func group(in *Input) document.PluginData {
	code := in.TypeCode()
	category, ok := CategoryForCode(code)
	if !ok {
		category = document.CategoryGear
	}
	out := &document.ItemGroupData{TypeCode: code, Members: []document.Reference{}}
	seen := make(map[document.Reference]bool)
	for _, member := range in.Items {
		ref := reference.Parse(member, document.KindItem, category, in.Source)
		if ref.Slug == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		out.Members = append(out.Members, ref)
	}
	return out
}

func summary(in *Input) string {
	switch Classify(in) {
	case document.CategoryWeapon:
		parts := []string{strings.ToLower(in.WeaponCategory), weaponCodes[in.TypeCode()], "weapon"}
		return fmt.Sprintf("%s is a %s.", in.Name, strings.Join(nonEmpty(parts), " "))
	case document.CategoryArmor:
		if code := armorCodes[in.TypeCode()]; code != "" && code != "shield" {
			return fmt.Sprintf("%s is %s armor.", in.Name, code)
		}
	case document.CategoryTool:
		return fmt.Sprintf("%s is a %s.", in.Name, toolType(in))
	}
	return ""
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
