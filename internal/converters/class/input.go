package class

// Input is a class record
type Input struct {
	Name                      string                `json:"name"`
	Source                    string                `json:"source"`
	Page                      int                   `json:"page"`
	HD                        HitDice               `json:"hd"`
	Proficiency               []string              `json:"proficiency"`
	PrimaryAbility            []map[string]bool     `json:"primaryAbility"`
	StartingProficiencies     StartingProficiencies `json:"startingProficiencies"`
	SpellcastingAbility       string                `json:"spellcastingAbility"`
	CasterProgression         string                `json:"casterProgression"`
	CantripProgression        []int                 `json:"cantripProgression"`
	PreparedSpellsProgression []int                 `json:"preparedSpellsProgression"`
	SpellsKnownProgression    []int                 `json:"spellsKnownProgression"`
	ClassFeatures             []any                 `json:"classFeatures"`
}

// HitDice is the hd block
type HitDice struct {
	Number int `json:"number"`
	Faces  int `json:"faces"`
}

// StartingProficiencies are the level 1 proficiencies of a class
type StartingProficiencies struct {
	Armor   []any `json:"armor"`
	Weapons []any `json:"weapons"`
	Tools   []any `json:"tools"`
	Skills  []any `json:"skills"`
}

// SubclassInput is a subclass record from the class side tables
type SubclassInput struct {
	Name             string `json:"name"`
	ShortName        string `json:"shortName"`
	Source           string `json:"source"`
	ClassName        string `json:"className"`
	ClassSource      string `json:"classSource"`
	SubclassFeatures []any  `json:"subclassFeatures"`
	AdditionalSpells []any  `json:"additionalSpells"`
	SRD              any    `json:"srd"`
	SRD52            any    `json:"srd52"`
}

// FeatureRecord is a classFeature or subclassFeature record
type FeatureRecord struct {
	Name              string `json:"name"`
	Source            string `json:"source"`
	ClassName         string `json:"className"`
	ClassSource       string `json:"classSource"`
	SubclassShortName string `json:"subclassShortName"`
	SubclassSource    string `json:"subclassSource"`
	Level             int    `json:"level"`
	Entries           []any  `json:"entries"`
}
