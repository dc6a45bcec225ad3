package class_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/class"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type ClassTestSuite struct {
	suite.Suite
	tables *class.Tables
	ctx    context.Context
}

func TestClassSuite(t *testing.T) {
	suite.Run(t, new(ClassTestSuite))
}

func clericFile() map[string]any {
	return map[string]any{
		"subclass": []any{
			map[string]any{
				"name":             "Life Domain",
				"shortName":        "Life",
				"source":           "XPHB",
				"className":        "Cleric",
				"classSource":      "XPHB",
				"subclassFeatures": []any{"Life Domain|Cleric|XPHB|Life|XPHB|3"},
				"srd52":            true,
				"additionalSpells": []any{
					map[string]any{"prepared": map[string]any{
						"5": []any{"mass healing word|xphb", "revivify|xphb"},
						"3": []any{"aid|xphb", "bless|xphb", "cure wounds|xphb", "Bless|XPHB"},
					}},
				},
			},
			map[string]any{
				"name":        "Life Domain",
				"shortName":   "Life",
				"source":      "PHB",
				"className":   "Cleric",
				"classSource": "XPHB",
			},
			map[string]any{
				"name":        "Knowledge Domain",
				"shortName":   "Knowledge",
				"source":      "PHB",
				"className":   "Cleric",
				"classSource": "PHB",
			},
		},
		"classFeature": []any{
			map[string]any{
				"name":        "Spellcasting",
				"source":      "XPHB",
				"className":   "Cleric",
				"classSource": "XPHB",
				"level":       1,
				"entries":     []any{"You can cast {@filter Cleric spells|spells|class=Cleric}."},
			},
		},
		"subclassFeature": []any{
			map[string]any{
				"name":              "Life Domain",
				"source":            "XPHB",
				"className":         "Cleric",
				"classSource":       "XPHB",
				"subclassShortName": "Life",
				"subclassSource":    "XPHB",
				"level":             3,
				"entries":           []any{"The Life Domain focuses on healing."},
			},
		},
	}
}

func cleric() source.RawRecord {
	return source.RawRecord{
		"name":           "Cleric",
		"source":         "XPHB",
		"hd":             map[string]any{"number": 1, "faces": 8},
		"proficiency":    []any{"wis", "cha"},
		"primaryAbility": []any{map[string]any{"wis": true}},
		"startingProficiencies": map[string]any{
			"armor":   []any{"light", "medium", map[string]any{"proficiency": "shield", "full": "{@item Shield|XPHB|Shields}"}},
			"weapons": []any{"simple"},
			"skills": []any{map[string]any{"choose": map[string]any{
				"from":  []any{"history", "insight", "medicine", "persuasion", "religion"},
				"count": 2,
			}}},
		},
		"spellcastingAbility":       "wis",
		"casterProgression":         "full",
		"cantripProgression":        []any{3, 3, 3, 4},
		"preparedSpellsProgression": []any{4, 5, 6, 7},
		"classFeatures": []any{
			"Spellcasting|Cleric|XPHB|1",
			map[string]any{"classFeature": "Cleric Subclass|Cleric|XPHB|3", "gainSubclassFeature": true},
		},
	}
}

func (s *ClassTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tables = class.NewTables()
	s.Require().NoError(s.tables.Add(clericFile()))
}

func (s *ClassTestSuite) driver(ruleset string) *pipeline.Driver {
	return s.driverWith(pipeline.Options{Ruleset: ruleset})
}

func (s *ClassTestSuite) driverWith(opts pipeline.Options) *pipeline.Driver {
	conv, err := class.New(&class.Config{Tables: s.tables})
	s.Require().NoError(err)
	driver, err := pipeline.New(&pipeline.Config{
		Converter: conv,
		Options:   opts,
	})
	s.Require().NoError(err)
	return driver
}

func (s *ClassTestSuite) TestCleric() {
	result := s.driver("2024").Convert(s.ctx, cleric())
	s.Require().True(result.Success, result.Errors)

	doc := result.Document
	s.Equal(document.KindDocument, doc.DocumentKind)
	s.Equal(document.CategoryClass, doc.Category)
	s.Equal("The Cleric class.", doc.Description)

	data := doc.PluginData.(*document.ClassData)
	s.Equal(8, data.HitDie)
	s.Equal([]string{"wisdom"}, data.PrimaryAbility)
	s.Equal([]string{"wisdom", "charisma"}, data.SavingThrows)
	s.Equal([]string{"light", "medium", "Shields"}, data.Proficiencies.Armor)
	s.Equal([]string{"simple"}, data.Proficiencies.Weapons)
	s.Equal(document.SkillChoice{Choose: 2, From: []string{"history", "insight", "medicine", "persuasion", "religion"}}, data.Proficiencies.Skills)
	s.Equal(&document.Spellcasting{
		Ability:        "wisdom",
		Progression:    "full",
		CantripsKnown:  []int{3, 3, 3, 4},
		PreparedSpells: []int{4, 5, 6, 7},
	}, data.Spellcasting)

	s.Equal([]document.ClassFeature{
		{Name: "Spellcasting", Level: 1, Text: "You can cast Cleric spells."},
		{Name: "Cleric Subclass", Level: 3},
	}, data.Features)

	s.Require().Len(data.Subclasses, 1)
	life := data.Subclasses[0]
	s.Equal("Life Domain", life.Name)
	s.Equal("Life", life.ShortName)
	s.Equal("XPHB", life.Source)
	s.Equal([]document.ClassFeature{{Name: "Life Domain", Level: 3, Text: "The Life Domain focuses on healing."}}, life.Features)

	spellRef := func(slug string) document.Reference {
		return document.Reference{Slug: slug, DocumentKind: document.KindDocument, Category: document.CategorySpell, Source: "xphb"}
	}
	s.Equal([]document.SpellGrant{
		{Level: 3, Spells: []document.Reference{spellRef("aid"), spellRef("bless"), spellRef("cure-wounds")}},
		{Level: 5, Spells: []document.Reference{spellRef("mass-healing-word"), spellRef("revivify")}},
	}, life.AdditionalSpells)
}

func (s *ClassTestSuite) TestNoRulesetKeepsEverySubclassOfTheClass() {
	result := s.driver("").Convert(s.ctx, cleric())
	s.Require().True(result.Success, result.Errors)

	data := result.Document.PluginData.(*document.ClassData)
	s.Len(data.Subclasses, 2)
}

func (s *ClassTestSuite) TestSRDOnlyDropsClosedSubclasses() {
	result := s.driverWith(pipeline.Options{SRDOnly: true}).Convert(s.ctx, cleric())
	s.Require().True(result.Success, result.Errors)

	data := result.Document.PluginData.(*document.ClassData)
	s.Require().Len(data.Subclasses, 1)
	s.Equal("XPHB", data.Subclasses[0].Source)
}

func (s *ClassTestSuite) TestMissingHitDie() {
	record := cleric()
	delete(record, "hd")

	result := s.driver("2024").Convert(s.ctx, record)
	s.False(result.Success)
	s.Contains(result.Errors, "hd: must have a die size")
}

func (s *ClassTestSuite) TestFilterRuleset() {
	records := []source.RawRecord{
		{"name": "Cleric", "source": "PHB"},
		{"name": "Cleric", "source": "XPHB"},
		{"name": "Artificer", "source": "TCE"},
	}

	testCases := []struct {
		ruleset  string
		expected []string
	}{
		{ruleset: "2024", expected: []string{"XPHB"}},
		{ruleset: "2014", expected: []string{"PHB"}},
		{ruleset: "", expected: []string{"PHB", "XPHB", "TCE"}},
		{ruleset: "1999", expected: []string{"PHB", "XPHB", "TCE"}},
	}

	for _, tc := range testCases {
		s.Run(tc.ruleset, func() {
			var sources []string
			for _, r := range class.FilterRuleset(records, tc.ruleset) {
				sources = append(sources, r.Source())
			}
			s.Equal(tc.expected, sources)
		})
	}
}

func (s *ClassTestSuite) TestTablesRejectMalformedArrays() {
	err := class.NewTables().Add(map[string]any{"classFeature": "not a list"})
	s.Error(err)
}

func (s *ClassTestSuite) TestSources() {
	s.Len(class.Sources, 12)
	s.Equal("class/class-barbarian.json", class.Sources[0].Path)
	s.Equal("class", class.Sources[0].Key)
}
