package external

import (
	"strings"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

var damageCodes = map[string]string{
	"acid":        "A",
	"bludgeoning": "B",
	"cold":        "C",
	"fire":        "F",
	"force":       "O",
	"lightning":   "L",
	"necrotic":    "N",
	"piercing":    "P",
	"poison":      "I",
	"psychic":     "Y",
	"radiant":     "R",
	"slashing":    "S",
	"thunder":     "T",
}

var propertyCodes = map[string]string{
	"ammunition": "A",
	"finesse":    "F",
	"heavy":      "H",
	"light":      "L",
	"loading":    "LD",
	"reach":      "R",
	"special":    "S",
	"thrown":     "T",
	"two-handed": "2H",
	"versatile":  "V",
}

var armorTypeCodes = map[string]string{
	"light":  "LA",
	"medium": "MA",
	"heavy":  "HA",
	"shield": "S",
}

// gearTypeCodes maps API equipment categories to item type codes
var gearTypeCodes = map[string]string{
	"tools":               "T",
	"artisans-tools":      "AT",
	"musical-instruments": "INS",
	"gaming-sets":         "GS",
	"mounts-and-vehicles": "VEH",
	"ammunition":          "A",
}

// copperPerUnit converts API cost units to copper pieces
var copperPerUnit = map[string]int{
	"cp": 1,
	"sp": 10,
	"ep": 50,
	"gp": 100,
	"pp": 1000,
}

// equipmentRecord reshapes API equipment into a base item record, or
// returns nil for an unknown equipment type
func equipmentRecord(equipment dnd5e.EquipmentInterface) source.RawRecord {
	switch eq := equipment.(type) {
	case *entities.Weapon:
		record := baseRecord(eq.Name, eq.Weight, eq.Cost)
		record["type"] = weaponType(eq.WeaponRange)
		record["weapon"] = true
		record["weaponCategory"] = strings.ToLower(eq.WeaponCategory)
		if eq.Damage != nil {
			record["dmg1"] = eq.Damage.DamageDice
			if eq.Damage.DamageType != nil {
				record["dmgType"] = damageCodes[strings.ToLower(eq.Damage.DamageType.Name)]
			}
		}
		var properties []any
		for _, p := range eq.Properties {
			if p == nil {
				continue
			}
			if code, ok := propertyCodes[strings.ToLower(p.Name)]; ok {
				properties = append(properties, code)
			}
		}
		if len(properties) > 0 {
			record["property"] = properties
		}
		return record

	case *entities.Armor:
		record := baseRecord(eq.Name, eq.Weight, eq.Cost)
		record["type"] = armorTypeCodes[strings.ToLower(eq.ArmorCategory)]
		record["armor"] = true
		if eq.ArmorClass != nil {
			record["ac"] = eq.ArmorClass.Base
		}
		if eq.StrMinimum > 0 {
			record["strength"] = eq.StrMinimum
		}
		if eq.StealthDisadvantage {
			record["stealth"] = true
		}
		return record

	case *entities.Equipment:
		record := baseRecord(eq.Name, eq.Weight, eq.Cost)
		record["type"] = "G"
		if eq.EquipmentCategory != nil {
			if code, ok := gearTypeCodes[eq.EquipmentCategory.Key]; ok {
				record["type"] = code
			}
		}
		return record
	}
	return nil
}

func baseRecord(name string, weight float32, cost *entities.Cost) source.RawRecord {
	record := source.RawRecord{
		"name":   name,
		"source": APISource,
		"srd":    true,
	}
	if weight > 0 {
		record["weight"] = float64(weight)
	}
	if cost != nil {
		if per, ok := copperPerUnit[strings.ToLower(cost.Unit)]; ok {
			record["value"] = cost.Quantity * per
		}
	}
	return record
}

func weaponType(weaponRange string) string {
	if strings.EqualFold(weaponRange, "ranged") {
		return "R"
	}
	return "M"
}
