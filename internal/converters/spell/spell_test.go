package spell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/spell"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type SpellTestSuite struct {
	suite.Suite
	driver *pipeline.Driver
	ctx    context.Context
}

func TestSpellSuite(t *testing.T) {
	suite.Run(t, new(SpellTestSuite))
}

func (s *SpellTestSuite) SetupTest() {
	s.ctx = context.Background()
	classes := spell.NewClassIndex(map[string]any{
		"XPHB": map[string]any{
			"Fireball": map[string]any{
				"class": []any{
					map[string]any{"name": "Sorcerer", "source": "XPHB"},
					map[string]any{"name": "Wizard", "source": "XPHB"},
				},
			},
		},
	})
	conv, err := spell.New(&spell.Config{Classes: classes})
	s.Require().NoError(err)
	s.driver, err = pipeline.New(&pipeline.Config{Converter: conv})
	s.Require().NoError(err)
}

func (s *SpellTestSuite) convert(record source.RawRecord) *document.SpellData {
	result := s.driver.Convert(s.ctx, record)
	s.Require().True(result.Success, result.Errors)
	s.Equal(document.KindDocument, result.Document.DocumentKind)
	s.Equal(document.CategorySpell, result.Document.Category)
	return result.Document.PluginData.(*document.SpellData)
}

func (s *SpellTestSuite) TestFireball() {
	data := s.convert(source.RawRecord{
		"name":   "Fireball",
		"source": "XPHB",
		"level":  3,
		"school": "V",
		"time":   []any{map[string]any{"number": 1, "unit": "action"}},
		"range": map[string]any{
			"type":     "point",
			"distance": map[string]any{"type": "feet", "amount": 150},
		},
		"components":    map[string]any{"v": true, "s": true, "m": "a ball of bat guano and sulfur"},
		"duration":      []any{map[string]any{"type": "instant"}},
		"entries":       []any{"Each creature in a 20-foot-radius Sphere makes a Dexterity saving throw, taking {@damage 8d6} Fire damage on a failed save."},
		"savingThrow":   []any{"dexterity"},
		"damageInflict": []any{"fire"},
		"entriesHigherLevel": []any{
			map[string]any{"type": "entries", "name": "Using a Higher-Level Spell Slot", "entries": []any{"The damage increases by {@scaledamage 8d6|3-9|1d6} for each spell slot level above 3."}},
		},
	})

	s.Equal(3, data.Level)
	s.Equal("evocation", data.School)
	s.Equal("1 action", data.CastingTime)
	s.Equal("150 feet", data.Range)
	s.Equal(document.Components{Verbal: true, Somatic: true, Material: "a ball of bat guano and sulfur"}, data.Components)
	s.Equal("Instantaneous", data.Duration)
	s.False(data.Concentration)
	s.False(data.Ritual)
	s.Equal([]string{"fire"}, data.DamageTypes)
	s.Equal([]string{"dexterity"}, data.SavingThrows)
	s.Equal([]document.DamageRoll{{Dice: "8d6", Type: "fire"}}, data.Damage)
	s.Empty(data.Scaling)
	s.Equal("Using a Higher-Level Spell Slot. The damage increases by 1d6 for each spell slot level above 3.", data.HigherLevels)
	s.Equal([]document.Reference{
		{Slug: "sorcerer", DocumentKind: document.KindDocument, Category: document.CategoryClass, Source: "xphb"},
		{Slug: "wizard", DocumentKind: document.KindDocument, Category: document.CategoryClass, Source: "xphb"},
	}, data.Classes)
}

func (s *SpellTestSuite) TestConcentrationAndMaterialCost() {
	data := s.convert(source.RawRecord{
		"name":       "Bless",
		"level":      1,
		"school":     "E",
		"time":       []any{map[string]any{"number": 1, "unit": "bonus"}},
		"range":      map[string]any{"type": "cone", "distance": map[string]any{"type": "feet", "amount": 15}},
		"components": map[string]any{"v": true, "m": map[string]any{"text": "a diamond worth 300+ GP", "cost": 30000, "consume": true}},
		"duration": []any{map[string]any{
			"type":          "timed",
			"duration":      map[string]any{"type": "minute", "amount": 1},
			"concentration": true,
		}},
		"meta": map[string]any{"ritual": true},
	})

	s.Equal("1 bonus action", data.CastingTime)
	s.Equal("Self (15-foot cone)", data.Range)
	s.Equal("Concentration, up to 1 minute", data.Duration)
	s.True(data.Concentration)
	s.True(data.Ritual)
	s.Equal(30000, data.Components.MaterialCost)
	s.True(data.Components.MaterialConsumed)
	s.Empty(data.Classes)
}

func (s *SpellTestSuite) TestCantripScaling() {
	s.Run("explicit table", func() {
		data := s.convert(source.RawRecord{
			"name":    "Fire Bolt",
			"level":   0,
			"school":  "V",
			"entries": []any{"On a hit, the target takes {@damage 1d10} Fire damage."},
			"scalingLevelDice": map[string]any{
				"label":   "fire damage",
				"scaling": map[string]any{"17": "4d10", "1": "1d10", "5": "2d10", "11": "3d10"},
			},
		})
		s.Equal([]document.ScalingStep{
			{Level: 1, Dice: "1d10"},
			{Level: 5, Dice: "2d10"},
			{Level: 11, Dice: "3d10"},
			{Level: 17, Dice: "4d10"},
		}, data.Scaling)
		s.Equal([]string{"fire"}, data.DamageTypes)
	})

	s.Run("from prose", func() {
		data := s.convert(source.RawRecord{
			"name":    "Ray of Frost",
			"level":   0,
			"school":  "V",
			"entries": []any{"The target takes {@damage 1d8} cold damage.", "This spell's damage increases by 1d8 when you reach 5th level ({@damage 2d8}), 11th level ({@damage 3d8}), and 17th level ({@damage 4d8})."},
		})
		s.Equal([]document.ScalingStep{
			{Level: 5, Dice: "2d8"},
			{Level: 11, Dice: "3d8"},
			{Level: 17, Dice: "4d8"},
		}, data.Scaling)
		s.Equal([]document.DamageRoll{{Dice: "1d8", Type: "cold"}}, data.Damage)
	})
}

func (s *SpellTestSuite) TestInvalidRecords() {
	testCases := []struct {
		name    string
		record  source.RawRecord
		message string
	}{
		{
			name:    "missing name",
			record:  source.RawRecord{"level": 1, "school": "V"},
			message: "name: cannot be blank",
		},
		{
			name:    "level out of range",
			record:  source.RawRecord{"name": "Wish Plus", "level": 10, "school": "C"},
			message: "level: must be no greater than 9",
		},
		{
			name:    "unknown school",
			record:  source.RawRecord{"name": "Odd", "level": 1, "school": "Q"},
			message: "school: must be one of [A C D E V I N T P]",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := s.driver.Convert(s.ctx, tc.record)
			s.False(result.Success)
			s.Contains(result.Errors, tc.message)
		})
	}
}

func (s *SpellTestSuite) TestClassIndexSkipsMalformedEntries() {
	idx := spell.NewClassIndex(map[string]any{
		"PHB": map[string]any{
			"Light":  map[string]any{"class": []any{map[string]any{"name": "Cleric"}, "bad", map[string]any{"name": "Cleric"}}},
			"Broken": "nope",
		},
		"XPHB": 42,
	})

	s.Equal([]document.Reference{
		{Slug: "cleric", DocumentKind: document.KindDocument, Category: document.CategoryClass},
	}, idx.Classes("light", "phb"))
	s.Nil(idx.Classes("Broken", "PHB"))
	s.Nil(spell.NewClassIndex(nil).Classes("Light", "PHB"))
}
