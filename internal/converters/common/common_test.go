package common_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/common"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
)

type CommonTestSuite struct {
	suite.Suite
}

func TestCommonSuite(t *testing.T) {
	suite.Run(t, new(CommonTestSuite))
}

func (s *CommonTestSuite) TestSizes() {
	s.Equal([]string{"small", "medium"}, common.Sizes([]string{"S", "m", "?"}))
}

func (s *CommonTestSuite) TestSpeed() {
	testCases := []struct {
		name     string
		input    any
		expected document.Speed
	}{
		{name: "bare number", input: float64(30), expected: document.Speed{Walk: 30}},
		{
			name:     "object with hover condition",
			input:    map[string]any{"walk": float64(10), "fly": map[string]any{"number": float64(60), "condition": "(hover)"}},
			expected: document.Speed{Walk: 10, Fly: 60, Hover: true},
		},
		{
			name:     "fly equal to walking",
			input:    map[string]any{"walk": float64(30), "fly": true, "canHover": true},
			expected: document.Speed{Walk: 30, Fly: 30, Hover: true},
		},
		{name: "missing", input: nil, expected: document.Speed{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, common.Speed(tc.input))
		})
	}
}

func (s *CommonTestSuite) TestProficiencyList() {
	input := []any{
		map[string]any{
			"insight":  true,
			"religion": true,
			"choose":   map[string]any{"from": []any{"history", "sleightOfHand"}, "count": float64(1)},
		},
		map[string]any{"anyStandard": float64(2)},
	}

	s.Equal([]string{
		"choose 1 from history, sleight of hand",
		"insight",
		"religion",
		"any standard (2)",
	}, common.ProficiencyList(input))
}

func (s *CommonTestSuite) TestHumanize() {
	s.Equal("thieves' tools", common.Humanize("thieves' tools|phb"))
	s.Equal("any artisans tool", common.Humanize("anyArtisansTool"))
}

func (s *CommonTestSuite) TestFeatures() {
	p := markup.New(markup.ModePlain)
	features := common.Features(p, []any{
		"Unnamed paragraph.",
		map[string]any{"type": "entries", "name": "Darkvision", "entries": []any{"You see in {@b dim} light."}},
	})

	s.Equal([]document.Feature{{Name: "Darkvision", Text: "You see in dim light."}}, features)
}

func (s *CommonTestSuite) TestReferences() {
	entries := []any{"Cast {@spell Fire Bolt|XPHB} or {@spell fire bolt|xphb} or {@spell light}."}

	refs := common.References(entries, "spell", document.KindDocument, document.CategorySpell, "XPHB")
	s.Equal([]document.Reference{
		{Slug: "fire-bolt", DocumentKind: document.KindDocument, Category: document.CategorySpell, Source: "xphb"},
		{Slug: "light", DocumentKind: document.KindDocument, Category: document.CategorySpell, Source: "xphb"},
	}, refs)
}
