package item

import "github.com/mixtli/dungeon-lab-sub000/internal/source"

// Input is an item, base item or item group record
type Input struct {
	Name           string        `json:"name"`
	Source         string        `json:"source"`
	Page           int           `json:"page"`
	Type           string        `json:"type"`
	Weapon         bool          `json:"weapon"`
	Armor          bool          `json:"armor"`
	WeaponCategory string        `json:"weaponCategory"`
	Dmg1           string        `json:"dmg1"`
	Dmg2           string        `json:"dmg2"`
	DmgType        string        `json:"dmgType"`
	Property       []any         `json:"property"`
	Range          string        `json:"range"`
	Mastery        []any         `json:"mastery"`
	AC             *int          `json:"ac"`
	DexterityMax   *int          `json:"dexterityMax"`
	Strength       any           `json:"strength"`
	Stealth        bool          `json:"stealth"`
	Weight         float64       `json:"weight"`
	Value          source.Number `json:"value"`
	Rarity         string        `json:"rarity"`
	ReqAttune      any           `json:"reqAttune"`
	Entries        []any         `json:"entries"`

	// Items lists the members of an item group
	Items []string `json:"items"`
}

// TypeCode returns the item type with any "|SOURCE" suffix removed
func (in *Input) TypeCode() string {
	return StripSource(in.Type)
}

// IsGroup reports whether the record is an item group
func (in *Input) IsGroup() bool {
	return in.Items != nil
}
