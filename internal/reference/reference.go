// Package reference builds address-only references between documents from
// names and from the source's pipe-delimited cross-reference syntax.
package reference

import (
	"strconv"
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
)

// Make builds a reference to the document named name. Equal inputs always
// yield equal references.
func Make(name string, kind document.Kind, category document.Category, source string) document.Reference {
	return document.Reference{
		Slug:         document.Slugify(name),
		DocumentKind: kind,
		Category:     category,
		Source:       strings.ToLower(strings.TrimSpace(source)),
	}
}

// Parse reads a "Name|Source|Display" tag body. The source falls back to
// defaultSource when omitted.
func Parse(body string, kind document.Kind, category document.Category, defaultSource string) document.Reference {
	name, source, _ := Split(body)
	if source == "" {
		source = defaultSource
	}
	return Make(name, kind, category, source)
}

// Split breaks a tag body into name, source and display text
func Split(body string) (name, source, display string) {
	parts := strings.Split(body, "|")
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		source = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		display = strings.TrimSpace(parts[2])
	}
	return name, source, display
}

// FeatureKey is a parsed class or subclass feature key
type FeatureKey struct {
	Name           string
	ClassName      string
	ClassSource    string
	SubclassName   string
	SubclassSource string
	Level          int
	Source         string
}

// ParseFeatureKey reads "Name|Class|ClassSource|Level|Source" class
// feature keys and the longer
// "Name|Class|ClassSource|Subclass|SubclassSource|Level|Source" subclass
// feature keys. Empty sources default to defaultSource.
func ParseFeatureKey(key, defaultSource string) (FeatureKey, bool) {
	parts := strings.Split(key, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var fk FeatureKey
	switch {
	case len(parts) >= 6:
		level, err := strconv.Atoi(parts[5])
		if err != nil {
			return FeatureKey{}, false
		}
		fk = FeatureKey{
			Name:           parts[0],
			ClassName:      parts[1],
			ClassSource:    parts[2],
			SubclassName:   parts[3],
			SubclassSource: parts[4],
			Level:          level,
		}
		if len(parts) > 6 {
			fk.Source = parts[6]
		}
	case len(parts) >= 4:
		level, err := strconv.Atoi(parts[3])
		if err != nil {
			return FeatureKey{}, false
		}
		fk = FeatureKey{
			Name:        parts[0],
			ClassName:   parts[1],
			ClassSource: parts[2],
			Level:       level,
		}
		if len(parts) > 4 {
			fk.Source = parts[4]
		}
	default:
		return FeatureKey{}, false
	}

	if fk.Name == "" {
		return FeatureKey{}, false
	}
	if fk.ClassSource == "" {
		fk.ClassSource = defaultSource
	}
	if fk.SubclassName != "" && fk.SubclassSource == "" {
		fk.SubclassSource = defaultSource
	}
	if fk.Source == "" {
		if fk.SubclassSource != "" {
			fk.Source = fk.SubclassSource
		} else {
			fk.Source = fk.ClassSource
		}
	}
	return fk, true
}

// Lookup returns the side-table key used to index a feature record
func (k FeatureKey) Lookup() string {
	parts := []string{k.Name, k.ClassName, k.ClassSource}
	if k.SubclassName != "" {
		parts = append(parts, k.SubclassName, k.SubclassSource)
	}
	parts = append(parts, strconv.Itoa(k.Level), k.Source)
	return strings.ToLower(strings.Join(parts, "|"))
}
