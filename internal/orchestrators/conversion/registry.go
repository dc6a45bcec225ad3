package conversion

import (
	"context"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/action"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/background"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/class"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/creature"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/item"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/language"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/species"
	"github.com/mixtli/dungeon-lab-sub000/internal/converters/spell"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

// sideTables is what a category's converter is built from. Everything in
// it is read-only once the converter exists.
type sideTables struct {
	reader source.Reader
	fluff  *fluff.Index
	// files holds the decoded content of every source file that was read,
	// keyed by path
	files map[string]any
}

// category describes how one content category is loaded and converted
type category struct {
	name    string
	sources []source.File
	fluff   []source.File
	// build creates the converter. Returned errors are resource errors;
	// a nil converter aborts the category.
	build func(ctx context.Context, t *sideTables) (pipeline.Converter, []error)
	// prepare narrows the filtered records before conversion (optional)
	prepare func(records []source.RawRecord, opts pipeline.Options) []source.RawRecord
	// link post-processes the converted documents (optional)
	link func(docs []*document.Document) []*document.Document
}

func converterOnly(conv pipeline.Converter, err error) (pipeline.Converter, []error) {
	if err != nil {
		return nil, []error{err}
	}
	return conv, nil
}

// defaultCategories returns the registered categories in conversion order
func defaultCategories() []*category {
	return []*category{
		{
			name:    creature.Name,
			sources: creature.Sources,
			fluff:   creature.FluffSources,
			build: func(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
				return converterOnly(creature.New(&creature.Config{Fluff: t.fluff}))
			},
		},
		{
			name:    item.Name,
			sources: item.Sources,
			fluff:   item.FluffSources,
			build: func(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
				return converterOnly(item.New(&item.Config{Fluff: t.fluff}))
			},
			link: item.LinkGroups,
		},
		{
			name:    spell.Name,
			sources: spell.Sources,
			fluff:   spell.FluffSources,
			build:   buildSpell,
		},
		{
			name:    class.Name,
			sources: class.Sources,
			fluff:   class.FluffSources,
			build:   buildClass,
			prepare: func(records []source.RawRecord, opts pipeline.Options) []source.RawRecord {
				return class.FilterRuleset(records, opts.Ruleset)
			},
		},
		{
			name:    species.Name,
			sources: species.Sources,
			fluff:   species.FluffSources,
			build: func(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
				return converterOnly(species.New(&species.Config{Fluff: t.fluff}))
			},
		},
		{
			name:    background.Name,
			sources: background.Sources,
			fluff:   background.FluffSources,
			build: func(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
				return converterOnly(background.New(&background.Config{Fluff: t.fluff}))
			},
		},
		{
			name:    action.Name,
			sources: action.Sources,
			build: func(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
				return converterOnly(action.New(&action.Config{Fluff: t.fluff}))
			},
		},
		{
			name:    language.Name,
			sources: language.Sources,
			fluff:   language.FluffSources,
			build: func(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
				return converterOnly(language.New(&language.Config{Fluff: t.fluff}))
			},
		},
	}
}

// buildSpell loads the spell to class lookup. A missing lookup leaves
// spells without classes.
func buildSpell(ctx context.Context, t *sideTables) (pipeline.Converter, []error) {
	var errs []error
	classes := spell.ClassIndex{}
	data, err := t.reader.ReadSourceData(ctx, spell.ClassIndexFile)
	if err != nil {
		errs = append(errs, errors.Wrapf(err, "class lookup %s", spell.ClassIndexFile))
	} else {
		classes = spell.NewClassIndex(data)
	}

	conv, err := spell.New(&spell.Config{Fluff: t.fluff, Classes: classes})
	if err != nil {
		return nil, append(errs, err)
	}
	return conv, errs
}

// buildClass fills the subclass and feature tables from the class files
// that were read for their records
func buildClass(_ context.Context, t *sideTables) (pipeline.Converter, []error) {
	var errs []error
	tables := class.NewTables()
	for _, file := range class.Sources {
		data, ok := t.files[file.Path]
		if !ok {
			continue
		}
		if err := tables.Add(data); err != nil {
			errs = append(errs, errors.Wrapf(err, "class file %s", file.Path))
		}
	}

	conv, err := class.New(&class.Config{Fluff: t.fluff, Tables: tables})
	if err != nil {
		return nil, append(errs, err)
	}
	return conv, errs
}
