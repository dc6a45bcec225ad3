package markup_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/markup"
)

type ExtractTestSuite struct {
	suite.Suite
}

func TestExtractSuite(t *testing.T) {
	suite.Run(t, new(ExtractTestSuite))
}

func (s *ExtractTestSuite) TestDamageDice() {
	text := "Hit: 5 (1d6 + 2) piercing damage plus 7 (2d6) fire damage."

	values := markup.ExtractStructuredValues(text, markup.DamageDice)
	s.Require().Len(values, 2)
	s.Equal("1d6+2", values[0].Dice)
	s.Equal("piercing", values[0].DamageType)
	s.Equal("2d6", values[1].Dice)
	s.Equal("fire", values[1].DamageType)
}

func (s *ExtractTestSuite) TestScalingTable() {
	text := "This spell's damage increases by 1d10 when you reach 5th level (2d10), 11th level (3d10), and 17th level (4d10)."

	values := markup.ExtractStructuredValues(text, markup.ScalingTable)
	s.Require().Len(values, 3)
	s.Equal(5, values[0].Level)
	s.Equal("2d10", values[0].Dice)
	s.Equal(17, values[2].Level)
	s.Equal("4d10", values[2].Dice)
}

func (s *ExtractTestSuite) TestNumericKinds() {
	testCases := []struct {
		name     string
		text     string
		kind     markup.ValueKind
		expected []int
	}{
		{name: "save dc", text: "must succeed on a DC 13 Wisdom saving throw or DC 15 later", kind: markup.SaveDC, expected: []int{13, 15}},
		{name: "attack bonus", text: "Melee Weapon Attack: +4 to hit, reach 5 ft.", kind: markup.AttackBonus, expected: []int{4}},
		{name: "negative attack bonus", text: "-1 to hit", kind: markup.AttackBonus, expected: []int{-1}},
		{name: "uses per day", text: "Invisibility (3/Day)", kind: markup.UsesPerDay, expected: []int{3}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			values := markup.ExtractStructuredValues(tc.text, tc.kind)
			got := make([]int, 0, len(values))
			for _, v := range values {
				got = append(got, v.Number)
			}
			s.Equal(tc.expected, got)
		})
	}
}

func (s *ExtractTestSuite) TestNoMatchesIsEmpty() {
	s.Empty(markup.ExtractStructuredValues("A quiet room.", markup.DamageDice))
	s.Empty(markup.ExtractStructuredValues("A quiet room.", markup.UsesPerDay))
	s.Empty(markup.ExtractStructuredValues("A quiet room.", markup.ValueKind("unknown")))
}

func (s *ExtractTestSuite) TestNormalizeDice() {
	testCases := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "1d6", expected: "1d6"},
		{input: "2D8 + 3", expected: "2d8+3"},
		{input: "1d4-1", expected: "1d4-1"},
		{input: "0d6", wantErr: true},
		{input: "d6", wantErr: true},
		{input: "fire", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			got, err := markup.NormalizeDice(tc.input)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.NoError(err)
			s.Equal(tc.expected, got)
		})
	}
}
