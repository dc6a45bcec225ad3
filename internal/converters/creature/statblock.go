package creature

import (
	"math"
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// ParseCR reads a challenge rating given as "1/4", 3, or {"cr": "1/2"}.
// A missing rating reads as 0.
func ParseCR(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, true
	case float64:
		return t, t >= 0
	case string:
		f, ok := source.ParseNumber(t)
		return f, ok && f >= 0
	case map[string]any:
		return ParseCR(t["cr"])
	}
	return 0, false
}

// ProficiencyBonus derives the bonus from a challenge rating
func ProficiencyBonus(cr float64) int {
	steps := int(math.Ceil(cr)) - 1
	if steps < 0 {
		steps = 0
	}
	return 2 + steps/4
}

var experienceByCR = map[float64]int{
	0: 10, 0.125: 25, 0.25: 50, 0.5: 100,
	1: 200, 2: 450, 3: 700, 4: 1100, 5: 1800,
	6: 2300, 7: 2900, 8: 3900, 9: 5000, 10: 5900,
	11: 7200, 12: 8400, 13: 10000, 14: 11500, 15: 13000,
	16: 15000, 17: 18000, 18: 20000, 19: 22000, 20: 25000,
	21: 33000, 22: 41000, 23: 50000, 24: 62000, 25: 75000,
	26: 90000, 27: 105000, 28: 120000, 29: 135000, 30: 155000,
}

// ExperiencePoints returns the XP award for a challenge rating, 0 when the
// rating is not on the table
func ExperiencePoints(cr float64) int {
	return experienceByCR[cr]
}

var alignmentWords = map[string]string{
	"L":  "lawful",
	"N":  "neutral",
	"NX": "neutral",
	"NY": "neutral",
	"C":  "chaotic",
	"G":  "good",
	"E":  "evil",
	"U":  "unaligned",
	"A":  "any alignment",
}

// Alignment reads alignment codes, weighted alternatives and special text
func Alignment(values []any) []string {
	var out []string
	for _, v := range values {
		switch t := v.(type) {
		case string:
			if word, ok := alignmentWords[strings.ToUpper(t)]; ok {
				out = append(out, word)
			}
		case map[string]any:
			if special, ok := t["special"].(string); ok {
				out = append(out, special)
				continue
			}
			inner, _ := t["alignment"].([]any)
			out = append(out, strings.Join(Alignment(inner), " "))
		}
	}
	return out
}

func creatureType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		switch inner := t["type"].(type) {
		case string:
			return inner
		case map[string]any:
			return strings.Join(source.AsStrings(inner["choose"]), " or ")
		}
	}
	return ""
}

func typeTags(v any) []string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	tags, _ := obj["tags"].([]any)
	var out []string
	for _, tag := range tags {
		switch t := tag.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			name, _ := t["tag"].(string)
			if prefix, _ := t["prefix"].(string); prefix != "" {
				name = prefix + " " + name
			}
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func typeLine(v any) string {
	line := creatureType(v)
	if tags := typeTags(v); len(tags) > 0 {
		line += " (" + strings.Join(tags, ", ") + ")"
	}
	return line
}

func armorClass(v any, p *markup.Processor) (document.ArmorClass, bool) {
	switch t := v.(type) {
	case float64:
		return document.ArmorClass{Value: int(t)}, true
	case map[string]any:
		value, ok := source.AsInt(t["ac"])
		if !ok {
			if special, _ := t["special"].(string); special != "" {
				return document.ArmorClass{Notes: p.Text(special)}, true
			}
			return document.ArmorClass{}, false
		}
		var notes []string
		for _, from := range source.AsStrings(t["from"]) {
			notes = append(notes, p.Text(from))
		}
		if cond, _ := t["condition"].(string); cond != "" {
			notes = append(notes, p.Text(cond))
		}
		return document.ArmorClass{Value: value, Notes: strings.Join(notes, ", ")}, true
	}
	return document.ArmorClass{}, false
}

// bonuses reads {"dex": "+4"} style maps; non-numeric entries are dropped
func bonuses(m map[string]any) map[string]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		if n, ok := source.AsInt(v); ok {
			out[k] = n
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func passive(v any, wis int) int {
	if n, ok := source.AsInt(v); ok {
		return n
	}
	return 10 + int(math.Floor(float64(wis-10)/2))
}

// Resistances flattens damage and condition lists. Grouped entries such as
// {"resist": ["cold", "fire"], "note": "from nonmagical attacks"} become one
// line; key names the nested list for the group.
func Resistances(values []any, key string, p *markup.Processor) []string {
	var out []string
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if special, ok := t["special"].(string); ok {
				out = append(out, p.Text(special))
				continue
			}
			inner, _ := t[key].([]any)
			names := Resistances(inner, key, p)
			if len(names) == 0 {
				continue
			}
			pre, _ := t["preNote"].(string)
			note, _ := t["note"].(string)
			if pre == "" && note == "" {
				out = append(out, names...)
				continue
			}
			line := strings.Join(names, ", ")
			if pre != "" {
				line = pre + " " + line
			}
			if note != "" {
				line += " " + note
			}
			out = append(out, p.Text(line))
		}
	}
	return out
}

func hitPoints(hp HitPoints) document.HitPoints {
	out := document.HitPoints{Average: hp.Average, Formula: hp.Formula}
	if out.Formula == "" {
		out.Formula = hp.Special
	}
	return out
}
