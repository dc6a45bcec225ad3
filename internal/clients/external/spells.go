package external

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

var schoolCodes = map[string]string{
	"abjuration":    "A",
	"conjuration":   "C",
	"divination":    "D",
	"enchantment":   "E",
	"evocation":     "V",
	"illusion":      "I",
	"necromancy":    "N",
	"transmutation": "T",
}

// spellRecord reshapes an API spell into a spell record. Fields the API
// does not carry, such as components, are left out.
func spellRecord(spell *entities.Spell) source.RawRecord {
	record := source.RawRecord{
		"name":   spell.Name,
		"source": APISource,
		"srd":    true,
		"level":  spell.SpellLevel,
	}
	if spell.SpellSchool != nil {
		record["school"] = schoolCodes[strings.ToLower(spell.SpellSchool.Name)]
	}
	if t := castingTime(spell.CastingTime); t != nil {
		record["time"] = []any{t}
	}
	if r := spellRange(spell); r != nil {
		record["range"] = r
	}
	if d := spellDuration(spell.Duration, spell.Concentration); d != nil {
		record["duration"] = []any{d}
	}
	if spell.Ritual {
		record["meta"] = map[string]any{"ritual": true}
	}

	var entries []any
	if spell.SpellDamage != nil && spell.SpellDamage.SpellDamageType != nil {
		damageType := strings.ToLower(spell.SpellDamage.SpellDamageType.Name)
		record["damageInflict"] = []any{damageType}
		if spell.SpellDamage.SpellDamageAtSlotLevel != nil {
			if dice := baseDamage(spell.SpellLevel, spell.SpellDamage.SpellDamageAtSlotLevel); dice != "" {
				entries = append(entries, fmt.Sprintf("The spell deals {@damage %s} %s damage.", dice, damageType))
			}
		}
	}
	if spell.DC != nil && spell.DC.DCType != nil {
		ability := strings.ToLower(markup.AbilityName(spell.DC.DCType.Name))
		record["savingThrow"] = []any{ability}
		save := fmt.Sprintf("Targets make a %s saving throw.", markup.AbilityName(spell.DC.DCType.Name))
		if spell.DC.DCSuccess != "" && spell.DC.DCSuccess != "none" {
			save = fmt.Sprintf("Targets make a %s saving throw, taking %s effect on a success.", markup.AbilityName(spell.DC.DCType.Name), spell.DC.DCSuccess)
		}
		entries = append(entries, save)
	}
	if len(entries) > 0 {
		record["entries"] = entries
	}
	return record
}

// castingTime reads "1 action", "1 bonus action" or "10 minutes"
func castingTime(s string) map[string]any {
	n, unit, ok := amount(s)
	if !ok {
		return nil
	}
	if unit == "bonus action" {
		unit = "bonus"
	}
	return map[string]any{"number": n, "unit": unit}
}

// spellRange reads "Self", "Touch", "120 feet" and "1 mile". A self range
// with an area of effect becomes the area shape.
func spellRange(spell *entities.Spell) map[string]any {
	text := strings.ToLower(strings.TrimSpace(spell.Range))
	switch text {
	case "":
		return nil
	case "special":
		return map[string]any{"type": "special"}
	case "self":
		if spell.AreaOfEffect != nil && spell.AreaOfEffect.Size > 0 {
			return map[string]any{
				"type":     strings.ToLower(fmt.Sprint(spell.AreaOfEffect.Type)),
				"distance": map[string]any{"type": "feet", "amount": spell.AreaOfEffect.Size},
			}
		}
		fallthrough
	case "touch", "sight", "unlimited":
		return map[string]any{"type": "point", "distance": map[string]any{"type": text}}
	}

	n, unit, ok := amount(text)
	if !ok {
		return nil
	}
	switch unit {
	case "foot":
		unit = "feet"
	case "mile":
		unit = "miles"
	}
	return map[string]any{"type": "point", "distance": map[string]any{"type": unit, "amount": n}}
}

// spellDuration reads "Instantaneous", "Until dispelled" and timed
// durations such as "Up to 1 minute"
func spellDuration(s string, concentration bool) map[string]any {
	text := strings.ToLower(strings.TrimSpace(s))
	switch {
	case text == "":
		return nil
	case text == "instantaneous":
		return map[string]any{"type": "instant"}
	case strings.HasPrefix(text, "until dispelled"):
		return map[string]any{"type": "permanent", "ends": []any{"dispel"}}
	case text == "special":
		return map[string]any{"type": "special"}
	}

	n, unit, ok := amount(strings.TrimPrefix(text, "up to "))
	if !ok {
		return nil
	}
	return map[string]any{
		"type":          "timed",
		"duration":      map[string]any{"type": unit, "amount": n},
		"concentration": concentration,
	}
}

// amount splits "10 minutes" into 10 and "minute"
func amount(s string) (int, string, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) < 2 {
		return 0, "", false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", false
	}
	unit := strings.Join(fields[1:], " ")
	if unit != "feet" {
		unit = strings.TrimSuffix(unit, "s")
	}
	return n, unit, true
}

// baseDamage returns the damage at the spell's own level
func baseDamage(level int, slots *entities.SpellDamageAtSlotLevel) string {
	switch level {
	case 0, 1:
		return slots.FirstLevel
	case 2:
		return slots.SecondLevel
	case 3:
		return slots.ThirdLevel
	case 4:
		return slots.FourthLevel
	case 5:
		return slots.FifthLevel
	case 6:
		return slots.SixthLevel
	case 7:
		return slots.SeventhLevel
	case 8:
		return slots.EighthLevel
	case 9:
		return slots.NinthLevel
	default:
		return ""
	}
}
