package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// tagPattern matches an innermost tag; nested tags resolve inside out
var tagPattern = regexp.MustCompile(`\{@(\w+)\s*([^{}]*)\}`)

var attackLabels = map[string]string{
	"mw":    "Melee Weapon Attack:",
	"rw":    "Ranged Weapon Attack:",
	"mw,rw": "Melee or Ranged Weapon Attack:",
	"ms":    "Melee Spell Attack:",
	"rs":    "Ranged Spell Attack:",
	"ms,rs": "Melee or Ranged Spell Attack:",
	"m":     "Melee Attack Roll:",
	"r":     "Ranged Attack Roll:",
	"m,r":   "Melee or Ranged Attack Roll:",
}

var abilityNames = map[string]string{
	"str": "Strength",
	"dex": "Dexterity",
	"con": "Constitution",
	"int": "Intelligence",
	"wis": "Wisdom",
	"cha": "Charisma",
}

// AbilityName returns the full name for a three-letter ability code
func AbilityName(code string) string {
	if name, ok := abilityNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// displayIndex is the pipe position of the display override for tags that
// do not use the usual name|source|display layout
var displayIndex = map[string]int{
	"classFeature":    5,
	"subclassFeature": 7,
	"quickref":        4,
	"subclass":        4,
}

// renderText resolves every tag in s
func (p *Processor) renderText(s string) string {
	for {
		next := tagPattern.ReplaceAllStringFunc(s, func(match string) string {
			m := tagPattern.FindStringSubmatch(match)
			return p.renderTag(m[1], m[2])
		})
		if next == s {
			return next
		}
		s = next
	}
}

func (p *Processor) renderTag(tag, body string) string {
	parts := strings.Split(body, "|")
	first := strings.TrimSpace(parts[0])

	switch tag {
	case "b", "bold":
		return p.wrap(first, "**")
	case "i", "italic":
		return p.wrap(first, "*")
	case "u", "underline", "s", "strike", "sup", "sub", "code", "kbd", "note", "style", "font", "color", "highlight":
		return first
	case "dice", "damage", "d20", "scaledice", "scaledamage", "autodice":
		return renderDice(tag, parts)
	case "hit":
		return signed(first)
	case "dc":
		return "DC " + first
	case "chance":
		if len(parts) > 1 && parts[1] != "" {
			return parts[1]
		}
		return first + " percent"
	case "recharge":
		if first == "" || first == "6" {
			return "(Recharge 6)"
		}
		return fmt.Sprintf("(Recharge %s-6)", first)
	case "atk", "atkr":
		if label, ok := attackLabels[strings.ReplaceAll(first, " ", "")]; ok {
			return p.wrap(label, "*")
		}
		return p.wrap("Attack:", "*")
	case "h":
		return p.wrap("Hit:", "*") + " "
	case "hom":
		return p.wrap("Hit or Miss:", "*") + " "
	case "m":
		return p.wrap("Miss:", "*") + " "
	case "actSave":
		return p.wrap(AbilityName(first)+" Saving Throw:", "*")
	case "actSaveFail":
		return p.wrap("Failure:", "*")
	case "actSaveSuccess":
		return p.wrap("Success:", "*")
	case "actSaveSuccessOrFail":
		return p.wrap("Failure or Success:", "*")
	case "actTrigger":
		return p.wrap("Trigger:", "*")
	case "actResponse":
		return p.wrap("Response:", "*")
	case "filter", "book", "adventure", "area", "5etools", "link", "loader", "footnote", "homebrew":
		return first
	}

	idx, ok := displayIndex[tag]
	if !ok {
		idx = 2
	}
	if idx < len(parts) && strings.TrimSpace(parts[idx]) != "" {
		return strings.TrimSpace(parts[idx])
	}
	return first
}

func (p *Processor) wrap(s, marker string) string {
	if p.mode != ModeMarkdown || s == "" {
		return s
	}
	return marker + s + marker
}

func renderDice(tag string, parts []string) string {
	switch tag {
	case "scaledice", "scaledamage":
		// base|levels|step|display
		if len(parts) > 3 && parts[3] != "" {
			return parts[3]
		}
		if len(parts) > 2 {
			return parts[2]
		}
	case "d20":
		if len(parts) > 1 && parts[1] != "" {
			return parts[1]
		}
		return signed(strings.TrimSpace(parts[0]))
	}

	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[1])
	}
	return strings.ReplaceAll(strings.TrimSpace(parts[0]), ";", "/")
}

func signed(n string) string {
	if n == "" || strings.HasPrefix(n, "+") || strings.HasPrefix(n, "-") {
		return n
	}
	return "+" + n
}

// ExtractTagged returns the bodies of every {@tag ...} occurrence found
// anywhere in entries, first occurrence order, without duplicates
func ExtractTagged(entries any, tag string) []string {
	pattern := regexp.MustCompile(`\{@` + regexp.QuoteMeta(tag) + `\s+([^{}]*)\}`)

	var out []string
	seen := make(map[string]bool)
	walkStrings(entries, func(s string) {
		for _, m := range pattern.FindAllStringSubmatch(s, -1) {
			body := strings.TrimSpace(m[1])
			if body == "" || seen[body] {
				continue
			}
			seen[body] = true
			out = append(out, body)
		}
	})
	return out
}
