// Package common holds parsing helpers shared by the category converters
package common

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
	"github.com/mixtli/dungeon-lab-sub000/internal/reference"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

var sizeNames = map[string]string{
	"F": "fine",
	"D": "diminutive",
	"T": "tiny",
	"S": "small",
	"M": "medium",
	"L": "large",
	"H": "huge",
	"G": "gargantuan",
	"C": "colossal",
	"V": "varies",
}

// SizeCodes lists the size letters accepted by the input schemas
var SizeCodes = []string{"F", "D", "T", "S", "M", "L", "H", "G", "C", "V"}

// Sizes converts size letters into size names, dropping unknown letters
func Sizes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if name, ok := sizeNames[strings.ToUpper(c)]; ok {
			out = append(out, name)
		}
	}
	return out
}

// AbilityCodes are the three-letter ability keys in display order
var AbilityCodes = []string{"str", "dex", "con", "int", "wis", "cha"}

// Speed reads a speed value: a bare number (walking speed) or an object of
// mode to number, {number, condition} or true ("equal to walking speed")
func Speed(v any) document.Speed {
	var sp document.Speed
	switch t := v.(type) {
	case float64:
		sp.Walk = int(t)
		return sp
	case map[string]any:
		sp.Walk = speedValue(t["walk"], 0)
		sp.Fly = speedValue(t["fly"], sp.Walk)
		sp.Swim = speedValue(t["swim"], sp.Walk)
		sp.Climb = speedValue(t["climb"], sp.Walk)
		sp.Burrow = speedValue(t["burrow"], sp.Walk)
		if hover, ok := t["canHover"].(bool); ok && hover {
			sp.Hover = true
		}
		if fly, ok := t["fly"].(map[string]any); ok {
			if cond, _ := fly["condition"].(string); strings.Contains(strings.ToLower(cond), "hover") {
				sp.Hover = true
			}
		}
	}
	return sp
}

func speedValue(v any, walk int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case bool:
		if t {
			return walk
		}
	case map[string]any:
		n, _ := source.AsInt(t["number"])
		return n
	}
	return 0
}

// Features turns named entries into features; unnamed entries are skipped
func Features(p *markup.Processor, entries []any) []document.Feature {
	var out []document.Feature
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		if name == "" {
			continue
		}
		out = append(out, document.Feature{
			Name: p.Text(name),
			Text: p.Process(obj["entries"]).Text,
		})
	}
	return out
}

// Humanize turns keys like "anyStandard" or "thieves' tools|phb" into
// display words
func Humanize(key string) string {
	key, _, _ = strings.Cut(key, "|")
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Humanized applies Humanize to every key
func Humanized(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = Humanize(k)
	}
	return out
}

// ProficiencyList flattens the source's proficiency blocks, e.g.
// [{"insight": true, "choose": {"from": [...], "count": 2}}]
func ProficiencyList(v any) []string {
	blocks, _ := v.([]any)
	var out []string
	for _, block := range blocks {
		obj, ok := block.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range sortedKeys(obj) {
			switch val := obj[key].(type) {
			case bool:
				if val {
					out = append(out, Humanize(key))
				}
			case float64:
				out = append(out, fmt.Sprintf("%s (%d)", Humanize(key), int(val)))
			case map[string]any:
				if key == "choose" {
					out = append(out, Choice(val))
				}
			}
		}
	}
	return out
}

// Choice renders a {from, count} block as "choose N from a, b"
func Choice(obj map[string]any) string {
	count := 1
	if n, ok := source.AsInt(obj["count"]); ok && n > 0 {
		count = n
	}
	names := Humanized(source.AsStrings(obj["from"]))
	return fmt.Sprintf("choose %d from %s", count, strings.Join(names, ", "))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// References collects every {@tag ...} in entries as a reference, first
// occurrence order, without duplicates
func References(entries any, tag string, kind document.Kind, category document.Category, defaultSource string) []document.Reference {
	bodies := markup.ExtractTagged(entries, tag)
	out := make([]document.Reference, 0, len(bodies))
	seen := make(map[document.Reference]bool)
	for _, body := range bodies {
		ref := reference.Parse(body, kind, category, defaultSource)
		if ref.Slug == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}
