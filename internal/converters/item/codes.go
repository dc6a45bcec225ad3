package item

import (
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
)

var weaponCodes = map[string]string{
	"M": "melee",
	"R": "ranged",
}

var armorCodes = map[string]string{
	"LA": "light",
	"MA": "medium",
	"HA": "heavy",
	"S":  "shield",
}

var toolCodes = map[string]string{
	"AT":  "artisan's tools",
	"INS": "musical instrument",
	"GS":  "gaming set",
	"T":   "tool",
}

var gearCodes = map[string]string{
	"G":   "adventuring gear",
	"A":   "ammunition",
	"AF":  "ammunition",
	"P":   "potion",
	"RG":  "ring",
	"RD":  "rod",
	"WD":  "wand",
	"SC":  "scroll",
	"SCF": "spellcasting focus",
	"TAH": "tack and harness",
	"FD":  "food and drink",
	"TG":  "trade good",
	"EXP": "explosive",
	"VEH": "vehicle",
	"SHP": "vehicle",
	"AIR": "vehicle",
	"MNT": "mount",
	"OTH": "other",
	"$":   "treasure",
	"$A":  "treasure",
	"$C":  "treasure",
	"$G":  "treasure",
}

// GroupNames maps the tool type codes that belong to a named item group
// to that group's name
var GroupNames = map[string]string{
	"AT":  "Artisan's Tools",
	"INS": "Musical Instrument",
	"GS":  "Gaming Set",
}

var damageTypes = map[string]string{
	"A": "acid",
	"B": "bludgeoning",
	"C": "cold",
	"F": "fire",
	"O": "force",
	"L": "lightning",
	"N": "necrotic",
	"P": "piercing",
	"I": "poison",
	"Y": "psychic",
	"R": "radiant",
	"S": "slashing",
	"T": "thunder",
}

var propertyNames = map[string]string{
	"A":   "ammunition",
	"BF":  "burst fire",
	"F":   "finesse",
	"H":   "heavy",
	"L":   "light",
	"LD":  "loading",
	"R":   "reach",
	"RLD": "reload",
	"S":   "special",
	"T":   "thrown",
	"2H":  "two-handed",
	"V":   "versatile",
}

// StripSource removes a "|SOURCE" suffix from a code or reference key
func StripSource(code string) string {
	code, _, _ = strings.Cut(code, "|")
	return strings.TrimSpace(code)
}

// DamageType returns the damage type word for a letter code
func DamageType(code string) string {
	if name, ok := damageTypes[strings.ToUpper(code)]; ok {
		return name
	}
	return strings.ToLower(code)
}

// CategoryForCode returns the category a type code implies, and false for
// codes that carry no category of their own
func CategoryForCode(code string) (document.Category, bool) {
	switch {
	case weaponCodes[code] != "":
		return document.CategoryWeapon, true
	case armorCodes[code] != "":
		return document.CategoryArmor, true
	case toolCodes[code] != "":
		return document.CategoryTool, true
	case gearCodes[code] != "":
		return document.CategoryGear, true
	}
	return "", false
}

// Classify decides the category of an item. Explicit flags win, then the
// type code, then field heuristics; anything left over is gear.
func Classify(in *Input) document.Category {
	if in.IsGroup() {
		return document.CategoryItemGroup
	}
	if in.Weapon {
		return document.CategoryWeapon
	}
	if in.Armor {
		return document.CategoryArmor
	}
	if category, ok := CategoryForCode(in.TypeCode()); ok {
		return category
	}
	switch {
	case in.Dmg1 != "":
		return document.CategoryWeapon
	case in.AC != nil:
		return document.CategoryArmor
	case looksLikeTool(in.Name):
		return document.CategoryTool
	}
	return document.CategoryGear
}

func looksLikeTool(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range []string{" tools", " supplies", " kit"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
