package spell

import (
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/reference"
)

// ClassIndexFile is the spell to class lookup table
const ClassIndexFile = "spells/sources.json"

// ClassIndex maps a spell to the classes that can learn it
type ClassIndex map[string][]document.Reference

// NewClassIndex reads the lookup table, shaped as
// {"PHB": {"Fireball": {"class": [{"name": "Wizard", "source": "PHB"}]}}}.
// Malformed entries are skipped.
func NewClassIndex(data any) ClassIndex {
	idx := make(ClassIndex)
	books, _ := data.(map[string]any)
	for book, spells := range books {
		byName, _ := spells.(map[string]any)
		for name, entry := range byName {
			obj, _ := entry.(map[string]any)
			classes, _ := obj["class"].([]any)
			seen := make(map[document.Reference]bool)
			var refs []document.Reference
			for _, c := range classes {
				cls, _ := c.(map[string]any)
				className, _ := cls["name"].(string)
				classSource, _ := cls["source"].(string)
				if className == "" {
					continue
				}
				ref := reference.Make(className, document.KindDocument, document.CategoryClass, classSource)
				if seen[ref] {
					continue
				}
				seen[ref] = true
				refs = append(refs, ref)
			}
			if len(refs) > 0 {
				idx[classKey(name, book)] = refs
			}
		}
	}
	return idx
}

// Classes returns the classes for the named spell
func (idx ClassIndex) Classes(name, sourceBook string) []document.Reference {
	return idx[classKey(name, sourceBook)]
}

func classKey(name, sourceBook string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(sourceBook))
}
