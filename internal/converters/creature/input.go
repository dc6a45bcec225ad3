package creature

import "github.com/mixtli/dungeon-lab-sub000/internal/source"

// Input is a monster record as it appears in the bestiary files
type Input struct {
	Name            string            `json:"name"`
	Source          string            `json:"source"`
	Page            int               `json:"page"`
	Size            source.StringList `json:"size"`
	Type            any               `json:"type"`
	Alignment       []any             `json:"alignment"`
	AC              []any             `json:"ac"`
	HP              HitPoints         `json:"hp"`
	Speed           any               `json:"speed"`
	Str             int               `json:"str"`
	Dex             int               `json:"dex"`
	Con             int               `json:"con"`
	Int             int               `json:"int"`
	Wis             int               `json:"wis"`
	Cha             int               `json:"cha"`
	Save            map[string]any    `json:"save"`
	Skill           map[string]any    `json:"skill"`
	Senses          source.StringList `json:"senses"`
	Passive         any               `json:"passive"`
	Languages       source.StringList `json:"languages"`
	CR              any               `json:"cr"`
	Immune          []any             `json:"immune"`
	Resist          []any             `json:"resist"`
	Vulnerable      []any             `json:"vulnerable"`
	ConditionImmune []any             `json:"conditionImmune"`
	Trait           []any             `json:"trait"`
	Action          []any             `json:"action"`
	Bonus           []any             `json:"bonus"`
	Reaction        []any             `json:"reaction"`
	Legendary       []any             `json:"legendary"`
	Spellcasting    []any             `json:"spellcasting"`
	HasToken        bool              `json:"hasToken"`
}

// HitPoints is the hp block; special replaces the average for odd cases
type HitPoints struct {
	Average int    `json:"average"`
	Formula string `json:"formula"`
	Special string `json:"special"`
}
