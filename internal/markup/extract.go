package markup

import (
	"regexp"
	"strconv"
	"strings"
)

// ValueKind selects what ExtractStructuredValues looks for
type ValueKind string

const (
	// DamageDice finds "2d6 fire damage" style dice and damage type pairs
	DamageDice ValueKind = "damage-dice"
	// ScalingTable finds "5th level (2d10)" style level to dice steps
	ScalingTable ValueKind = "scaling-table"
	// SaveDC finds "DC 13" values
	SaveDC ValueKind = "save-dc"
	// AttackBonus finds "+4 to hit" values
	AttackBonus ValueKind = "attack-bonus"
	// UsesPerDay finds "3/Day" limits
	UsesPerDay ValueKind = "uses-per-day"
)

// Value is one structured value pulled out of prose
type Value struct {
	Raw        string
	Dice       string
	DamageType string
	Level      int
	Number     int
}

// DamageTypes lists the recognised damage types
var DamageTypes = []string{
	"acid", "bludgeoning", "cold", "fire", "force", "lightning", "necrotic",
	"piercing", "poison", "psychic", "radiant", "slashing", "thunder",
}

var (
	damageDicePattern = regexp.MustCompile(`(?i)(\d+d\d+(?:\s*[+-]\s*\d+)?)\)?\s+(` + strings.Join(DamageTypes, "|") + `)\s+damage`)
	scalingPattern    = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)[\s-]+level\s*\((\d+d\d+)\)`)
	saveDCPattern     = regexp.MustCompile(`\bDC\s*(\d+)`)
	attackPattern     = regexp.MustCompile(`([+-]\d+)\s+to\s+hit`)
	usesPattern       = regexp.MustCompile(`(?i)\b(\d+)\s*/\s*day\b`)
)

// ExtractStructuredValues pulls values of the given kind out of rendered
// text. It returns nil when nothing matches.
func ExtractStructuredValues(text string, kind ValueKind) []Value {
	var out []Value

	switch kind {
	case DamageDice:
		for _, m := range damageDicePattern.FindAllStringSubmatch(text, -1) {
			dice, err := NormalizeDice(m[1])
			if err != nil {
				continue
			}
			out = append(out, Value{Raw: m[0], Dice: dice, DamageType: strings.ToLower(m[2])})
		}
	case ScalingTable:
		for _, m := range scalingPattern.FindAllStringSubmatch(text, -1) {
			level, _ := strconv.Atoi(m[1])
			out = append(out, Value{Raw: m[0], Level: level, Dice: strings.ToLower(m[2])})
		}
	case SaveDC:
		out = numbers(saveDCPattern, text)
	case AttackBonus:
		out = numbers(attackPattern, text)
	case UsesPerDay:
		out = numbers(usesPattern, text)
	}

	return out
}

func numbers(pattern *regexp.Regexp, text string) []Value {
	var out []Value
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(strings.TrimPrefix(m[1], "+"))
		if err != nil {
			continue
		}
		out = append(out, Value{Raw: m[0], Number: n})
	}
	return out
}
