package background_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/background"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type BackgroundTestSuite struct {
	suite.Suite
	driver *pipeline.Driver
	ctx    context.Context
}

func TestBackgroundSuite(t *testing.T) {
	suite.Run(t, new(BackgroundTestSuite))
}

func (s *BackgroundTestSuite) SetupTest() {
	s.ctx = context.Background()
	conv, err := background.New(&background.Config{})
	s.Require().NoError(err)
	s.driver, err = pipeline.New(&pipeline.Config{Converter: conv})
	s.Require().NoError(err)
}

func (s *BackgroundTestSuite) TestAcolyte() {
	result := s.driver.Convert(s.ctx, source.RawRecord{
		"name":   "Acolyte",
		"source": "XPHB",
		"ability": []any{map[string]any{"choose": map[string]any{"weighted": map[string]any{
			"from":    []any{"int", "wis", "cha"},
			"weights": []any{2, 1},
		}}}},
		"feats":              []any{map[string]any{"magic initiate; cleric|xphb": true}},
		"skillProficiencies": []any{map[string]any{"insight": true, "religion": true}},
		"toolProficiencies":  []any{map[string]any{"calligrapher's supplies": true}},
		"startingEquipment": []any{map[string]any{
			"A": []any{
				map[string]any{"item": "calligrapher's supplies|xphb"},
				"book|xphb",
				map[string]any{"item": "parchment|xphb", "quantity": 10},
			},
			"B": []any{map[string]any{"value": 5000}},
		}},
		"entries": []any{
			map[string]any{"type": "entries", "name": "Shelter of the Faithful", "entries": []any{"You command respect."}},
		},
	})

	s.Require().True(result.Success, result.Errors)
	s.Equal(document.CategoryBackground, result.Document.Category)

	data := result.Document.PluginData.(*document.BackgroundData)
	s.Equal([]string{"intelligence", "wisdom", "charisma"}, data.AbilityScores)
	s.Equal([]string{"insight", "religion"}, data.SkillProficiencies)
	s.Equal([]string{"calligrapher's supplies"}, data.ToolProficiencies)
	s.Equal([]document.Reference{{
		Slug:         "magic-initiate-cleric",
		DocumentKind: document.KindDocument,
		Category:     document.CategoryFeat,
		Source:       "xphb",
	}}, data.Feats)
	s.Equal("A: calligrapher's supplies, book, parchment (10); B: 50 GP", data.Equipment)
	s.Equal([]document.Feature{{Name: "Shelter of the Faithful", Text: "You command respect."}}, data.Features)
}

func (s *BackgroundTestSuite) TestLanguagesAndFixedEquipment() {
	result := s.driver.Convert(s.ctx, source.RawRecord{
		"name":                  "Sage",
		"source":                "PHB",
		"languageProficiencies": []any{map[string]any{"anyStandard": 2}},
		"startingEquipment": []any{map[string]any{
			"_": []any{map[string]any{"special": "a letter from a dead colleague"}, map[string]any{"value": 15}},
		}},
	})

	s.Require().True(result.Success, result.Errors)
	data := result.Document.PluginData.(*document.BackgroundData)
	s.Equal([]string{"any standard (2)"}, data.LanguageProficiencies)
	s.Equal("a letter from a dead colleague, 15 CP", data.Equipment)
	s.Empty(data.AbilityScores)
}

func (s *BackgroundTestSuite) TestMissingName() {
	result := s.driver.Convert(s.ctx, source.RawRecord{"source": "PHB"})

	s.False(result.Success)
	s.Equal([]string{"name: cannot be blank"}, result.Errors)
}
