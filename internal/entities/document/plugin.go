package document

import "fmt"

// PluginData is the category-specific payload of a document. The set of
// variants is closed; each reports the category it belongs to.
type PluginData interface {
	isPluginData()
	Category() Category
}

// NewPluginData returns an empty payload for the given category
func NewPluginData(category Category) (PluginData, error) {
	switch category {
	case CategoryCreature:
		return &CreatureData{}, nil
	case CategoryWeapon:
		return &WeaponData{}, nil
	case CategoryArmor:
		return &ArmorData{}, nil
	case CategoryTool:
		return &ToolData{}, nil
	case CategoryGear:
		return &GearData{}, nil
	case CategoryItemGroup:
		return &ItemGroupData{}, nil
	case CategorySpell:
		return &SpellData{}, nil
	case CategoryClass:
		return &ClassData{}, nil
	case CategorySpecies:
		return &SpeciesData{}, nil
	case CategoryBackground:
		return &BackgroundData{}, nil
	case CategoryAction:
		return &ActionData{}, nil
	case CategoryLanguage:
		return &LanguageData{}, nil
	default:
		return nil, fmt.Errorf("unknown document category %q", category)
	}
}

// Feature is a named block of rendered rules text
type Feature struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// DamageRoll pairs a dice expression with a damage type
type DamageRoll struct {
	Dice string `json:"dice"`
	Type string `json:"type,omitempty"`
}

// Speed holds movement speeds in feet
type Speed struct {
	Walk   int  `json:"walk,omitempty"`
	Fly    int  `json:"fly,omitempty"`
	Swim   int  `json:"swim,omitempty"`
	Climb  int  `json:"climb,omitempty"`
	Burrow int  `json:"burrow,omitempty"`
	Hover  bool `json:"hover,omitempty"`
}

// AbilityScores holds the six ability scores
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// ArmorClass is one armor class entry of a stat block
type ArmorClass struct {
	Value int    `json:"value"`
	Notes string `json:"notes,omitempty"`
}

// HitPoints is a stat block's hit point line
type HitPoints struct {
	Average int    `json:"average"`
	Formula string `json:"formula,omitempty"`
}

// CreatureData is the payload of a creature stat block
type CreatureData struct {
	Size                  []string       `json:"size"`
	Type                  string         `json:"type"`
	TypeTags              []string       `json:"type_tags,omitempty"`
	Alignment             []string       `json:"alignment,omitempty"`
	ArmorClass            []ArmorClass   `json:"armor_class,omitempty"`
	HitPoints             HitPoints      `json:"hit_points"`
	Speed                 Speed          `json:"speed"`
	Abilities             AbilityScores  `json:"abilities"`
	SavingThrows          map[string]int `json:"saving_throws,omitempty"`
	Skills                map[string]int `json:"skills,omitempty"`
	Senses                []string       `json:"senses,omitempty"`
	PassivePerception     int            `json:"passive_perception"`
	Languages             []string       `json:"languages,omitempty"`
	ChallengeRating       float64        `json:"challenge_rating"`
	ProficiencyBonus      int            `json:"proficiency_bonus"`
	ExperiencePoints      int            `json:"experience_points"`
	DamageImmunities      []string       `json:"damage_immunities,omitempty"`
	DamageResistances     []string       `json:"damage_resistances,omitempty"`
	DamageVulnerabilities []string       `json:"damage_vulnerabilities,omitempty"`
	ConditionImmunities   []string       `json:"condition_immunities,omitempty"`
	Traits                []Feature      `json:"traits,omitempty"`
	Actions               []Feature      `json:"actions,omitempty"`
	BonusActions          []Feature      `json:"bonus_actions,omitempty"`
	Reactions             []Feature      `json:"reactions,omitempty"`
	LegendaryActions      []Feature      `json:"legendary_actions,omitempty"`
	Spells                []Reference    `json:"spells,omitempty"`
}

func (CreatureData) isPluginData()      {}
func (CreatureData) Category() Category { return CategoryCreature }

// ItemCommon holds the fields every physical item shares
type ItemCommon struct {
	Weight             float64 `json:"weight,omitempty"`
	ValueCopper        int     `json:"value_cp,omitempty"`
	Rarity             string  `json:"rarity,omitempty"`
	RequiresAttunement bool    `json:"requires_attunement,omitempty"`
	AttunementNote     string  `json:"attunement_note,omitempty"`
}

// RangeIncrement is a weapon's normal and long range in feet
type RangeIncrement struct {
	Normal int `json:"normal"`
	Long   int `json:"long,omitempty"`
}

// WeaponData is the payload of a weapon item
type WeaponData struct {
	ItemCommon
	WeaponCategory  string          `json:"weapon_category"`
	AttackType      string          `json:"attack_type"`
	Damage          DamageRoll      `json:"damage"`
	VersatileDamage *DamageRoll     `json:"versatile_damage,omitempty"`
	Properties      []string        `json:"properties,omitempty"`
	Range           *RangeIncrement `json:"range,omitempty"`
	Mastery         []string        `json:"mastery,omitempty"`
}

func (WeaponData) isPluginData()      {}
func (WeaponData) Category() Category { return CategoryWeapon }

// ArmorData is the payload of an armor item
type ArmorData struct {
	ItemCommon
	ArmorCategory       string `json:"armor_category"`
	ArmorClass          int    `json:"armor_class"`
	DexterityCap        *int   `json:"dexterity_cap,omitempty"`
	AddDexterity        bool   `json:"add_dexterity"`
	StrengthRequirement int    `json:"strength_requirement,omitempty"`
	StealthDisadvantage bool   `json:"stealth_disadvantage,omitempty"`
}

func (ArmorData) isPluginData()      {}
func (ArmorData) Category() Category { return CategoryArmor }

// ToolData is the payload of a tool item
type ToolData struct {
	ItemCommon
	ToolType string     `json:"tool_type"`
	TypeCode string     `json:"type_code,omitempty"`
	Group    *Reference `json:"group,omitempty"`
}

func (ToolData) isPluginData()      {}
func (ToolData) Category() Category { return CategoryTool }

// GearData is the payload of any item that is not a weapon, armor or tool
type GearData struct {
	ItemCommon
	GearType string `json:"gear_type,omitempty"`
}

func (GearData) isPluginData()      {}
func (GearData) Category() Category { return CategoryGear }

// ItemGroupData lists the members of a named group of items
type ItemGroupData struct {
	TypeCode string      `json:"type_code,omitempty"`
	Members  []Reference `json:"members"`
}

func (ItemGroupData) isPluginData()      {}
func (ItemGroupData) Category() Category { return CategoryItemGroup }

// Components are a spell's casting components
type Components struct {
	Verbal           bool   `json:"verbal"`
	Somatic          bool   `json:"somatic"`
	Material         string `json:"material,omitempty"`
	MaterialConsumed bool   `json:"material_consumed,omitempty"`
	MaterialCost     int    `json:"material_cost_cp,omitempty"`
}

// ScalingStep is one row of a cantrip scaling table
type ScalingStep struct {
	Level int    `json:"level"`
	Dice  string `json:"dice"`
}

// SpellData is the payload of a spell
type SpellData struct {
	Level         int           `json:"level"`
	School        string        `json:"school"`
	CastingTime   string        `json:"casting_time"`
	Range         string        `json:"range"`
	Components    Components    `json:"components"`
	Duration      string        `json:"duration"`
	Concentration bool          `json:"concentration"`
	Ritual        bool          `json:"ritual"`
	DamageTypes   []string      `json:"damage_types,omitempty"`
	SavingThrows  []string      `json:"saving_throws,omitempty"`
	Damage        []DamageRoll  `json:"damage,omitempty"`
	Scaling       []ScalingStep `json:"scaling,omitempty"`
	HigherLevels  string        `json:"higher_levels,omitempty"`
	Classes       []Reference   `json:"classes,omitempty"`
}

func (SpellData) isPluginData()      {}
func (SpellData) Category() Category { return CategorySpell }

// SkillChoice is a "choose N from" list
type SkillChoice struct {
	Choose int      `json:"choose"`
	From   []string `json:"from,omitempty"`
}

// Proficiencies are the starting proficiencies of a class
type Proficiencies struct {
	Armor   []string    `json:"armor,omitempty"`
	Weapons []string    `json:"weapons,omitempty"`
	Tools   []string    `json:"tools,omitempty"`
	Skills  SkillChoice `json:"skills"`
}

// Spellcasting describes a class's spellcasting
type Spellcasting struct {
	Ability        string `json:"ability"`
	Progression    string `json:"progression,omitempty"`
	CantripsKnown  []int  `json:"cantrips_known,omitempty"`
	PreparedSpells []int  `json:"prepared_spells,omitempty"`
}

// ClassFeature is a feature gained at a class level
type ClassFeature struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Text  string `json:"text,omitempty"`
}

// SpellGrant lists spells granted at a level
type SpellGrant struct {
	Level  int         `json:"level"`
	Spells []Reference `json:"spells"`
}

// Subclass is a subclass folded into its class document
type Subclass struct {
	Name             string         `json:"name"`
	ShortName        string         `json:"short_name,omitempty"`
	Source           string         `json:"source"`
	Features         []ClassFeature `json:"features,omitempty"`
	AdditionalSpells []SpellGrant   `json:"additional_spells,omitempty"`
}

// ClassData is the payload of a class
type ClassData struct {
	HitDie         int            `json:"hit_die"`
	PrimaryAbility []string       `json:"primary_ability,omitempty"`
	SavingThrows   []string       `json:"saving_throws,omitempty"`
	Proficiencies  Proficiencies  `json:"proficiencies"`
	Spellcasting   *Spellcasting  `json:"spellcasting,omitempty"`
	Features       []ClassFeature `json:"features,omitempty"`
	Subclasses     []Subclass     `json:"subclasses,omitempty"`
}

func (ClassData) isPluginData()      {}
func (ClassData) Category() Category { return CategoryClass }

// AbilityChoice is a "choose N abilities, +amount each" bonus
type AbilityChoice struct {
	Choose int      `json:"choose"`
	From   []string `json:"from"`
	Amount int      `json:"amount"`
}

// SpeciesData is the payload of a playable species
type SpeciesData struct {
	Size           []string        `json:"size"`
	Speed          Speed           `json:"speed"`
	CreatureType   string          `json:"creature_type"`
	AbilityBonuses map[string]int  `json:"ability_bonuses,omitempty"`
	AbilityChoices []AbilityChoice `json:"ability_choices,omitempty"`
	Darkvision     int             `json:"darkvision,omitempty"`
	Resistances    []string        `json:"resistances,omitempty"`
	Languages      []string        `json:"languages,omitempty"`
	Traits         []Feature       `json:"traits,omitempty"`
}

func (SpeciesData) isPluginData()      {}
func (SpeciesData) Category() Category { return CategorySpecies }

// BackgroundData is the payload of a background
type BackgroundData struct {
	SkillProficiencies    []string    `json:"skill_proficiencies,omitempty"`
	ToolProficiencies     []string    `json:"tool_proficiencies,omitempty"`
	LanguageProficiencies []string    `json:"language_proficiencies,omitempty"`
	AbilityScores         []string    `json:"ability_scores,omitempty"`
	Feats                 []Reference `json:"feats,omitempty"`
	Equipment             string      `json:"equipment,omitempty"`
	Features              []Feature   `json:"features,omitempty"`
}

func (BackgroundData) isPluginData()      {}
func (BackgroundData) Category() Category { return CategoryBackground }

// LanguageData is the payload of a language
type LanguageData struct {
	Type            string      `json:"type"`
	Script          string      `json:"script,omitempty"`
	TypicalSpeakers string      `json:"typical_speakers,omitempty"`
	Speakers        []Reference `json:"speakers,omitempty"`
	Dialects        []string    `json:"dialects,omitempty"`
}

func (LanguageData) isPluginData()      {}
func (LanguageData) Category() Category { return CategoryLanguage }
