package class

import (
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/reference"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// Tables holds the subclass and feature records that class records point
// into. Tables are filled while loading and read-only afterwards.
type Tables struct {
	features   map[string]FeatureRecord
	subclasses []SubclassInput
}

// NewTables creates empty tables
func NewTables() *Tables {
	return &Tables{features: make(map[string]FeatureRecord)}
}

// Add reads the subclass, classFeature and subclassFeature arrays of one
// class file. Malformed records are skipped; a malformed array fails.
func (t *Tables) Add(data any) error {
	subclasses, err := source.Records(data, "subclass")
	if err != nil {
		return errors.Wrap(err, "subclass table")
	}
	for _, raw := range subclasses {
		var sc SubclassInput
		if raw.Decode(&sc) == nil && sc.Name != "" {
			t.subclasses = append(t.subclasses, sc)
		}
	}

	for _, key := range []string{"classFeature", "subclassFeature"} {
		records, err := source.Records(data, key)
		if err != nil {
			return errors.Wrapf(err, "%s table", key)
		}
		for _, raw := range records {
			var f FeatureRecord
			if raw.Decode(&f) != nil || f.Name == "" {
				continue
			}
			t.features[f.key().Lookup()] = f
		}
	}
	return nil
}

// Feature returns the feature record named by key
func (t *Tables) Feature(key reference.FeatureKey) (FeatureRecord, bool) {
	f, ok := t.features[key.Lookup()]
	return f, ok
}

// Subclasses returns the subclasses of the given class, in load order
func (t *Tables) Subclasses(className, classSource string) []SubclassInput {
	var out []SubclassInput
	for _, sc := range t.subclasses {
		if strings.EqualFold(sc.ClassName, className) && strings.EqualFold(sc.ClassSource, classSource) {
			out = append(out, sc)
		}
	}
	return out
}

func (f FeatureRecord) key() reference.FeatureKey {
	k := reference.FeatureKey{
		Name:        f.Name,
		ClassName:   f.ClassName,
		ClassSource: f.ClassSource,
		Level:       f.Level,
		Source:      f.Source,
	}
	if f.SubclassShortName != "" {
		k.SubclassName = f.SubclassShortName
		k.SubclassSource = f.SubclassSource
	}
	return k
}
