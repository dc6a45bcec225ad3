package class

import (
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Rulesets maps a ruleset edition to the source book of its classes
var Rulesets = map[string]string{
	"2024": "XPHB",
	"2014": "PHB",
}

// RulesetSource returns the class source for ruleset, or "" when every
// source is accepted
func RulesetSource(ruleset string) string {
	return Rulesets[ruleset]
}

// FilterRuleset keeps the records whose source matches the ruleset. An
// empty or unknown ruleset keeps everything.
func FilterRuleset(records []source.RawRecord, ruleset string) []source.RawRecord {
	want := RulesetSource(ruleset)
	if want == "" {
		return records
	}
	out := make([]source.RawRecord, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.Source(), want) {
			out = append(out, r)
		}
	}
	return out
}
