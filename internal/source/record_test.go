package source_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type RecordTestSuite struct {
	suite.Suite
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordTestSuite))
}

type sampleInput struct {
	Name string            `json:"name"`
	Size source.StringList `json:"size"`
	CR   source.Number     `json:"cr"`
	HP   struct {
		Average int `json:"average"`
	} `json:"hp"`
}

func (s *RecordTestSuite) TestDecodeTolerantFields() {
	testCases := []struct {
		name     string
		record   source.RawRecord
		wantSize []string
		wantCR   float64
	}{
		{
			name:     "array size and fractional cr",
			record:   source.RawRecord{"name": "Goblin", "size": []any{"S"}, "cr": "1/4"},
			wantSize: []string{"S"},
			wantCR:   0.25,
		},
		{
			name:     "string size and numeric cr",
			record:   source.RawRecord{"name": "Ogre", "size": "L", "cr": float64(2)},
			wantSize: []string{"L"},
			wantCR:   2,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var in sampleInput
			s.Require().NoError(tc.record.Decode(&in))
			s.Equal(tc.wantSize, []string(in.Size))
			s.InDelta(tc.wantCR, float64(in.CR), 0.0001)
		})
	}
}

func (s *RecordTestSuite) TestDecodeTypeMismatchNamesField() {
	record := source.RawRecord{"name": "Goblin", "hp": map[string]any{"average": "seven"}}

	var in sampleInput
	err := record.Decode(&in)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(errors.Messages(err)[0], "hp.average")
}

func (s *RecordTestSuite) TestDecodeNilRecord() {
	var in sampleInput
	err := source.RawRecord(nil).Decode(&in)
	s.True(errors.IsInvalidArgument(err))
	s.Equal([]string{"record is not an object"}, errors.Messages(err))
}

func (s *RecordTestSuite) TestParseNumber() {
	testCases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1/8", 0.125, true},
		{"+4", 4, true},
		{"-1", -1, true},
		{"12.5", 12.5, true},
		{"1/0", 0, false},
		{"", 0, false},
		{"varies", 0, false},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			got, ok := source.ParseNumber(tc.input)
			s.Equal(tc.ok, ok)
			s.InDelta(tc.want, got, 0.0001)
		})
	}
}

func (s *RecordTestSuite) TestStringListRejectsObjects() {
	var l source.StringList
	s.Error(json.Unmarshal([]byte(`{"a":1}`), &l))
	s.NoError(json.Unmarshal([]byte(`["S", 3, "M"]`), &l))
	s.Equal(source.StringList{"S", "M"}, l)
}
