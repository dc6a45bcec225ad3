package filter_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/filter"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type FilterTestSuite struct {
	suite.Suite
	records []source.RawRecord
}

func TestFilterSuite(t *testing.T) {
	suite.Run(t, new(FilterTestSuite))
}

func (s *FilterTestSuite) SetupTest() {
	s.records = []source.RawRecord{
		{"name": "Goblin", "srd": true},
		{"name": "Beholder"},
		{"name": "Goblin Warrior", "srd52": true},
		{"name": "Ape", "srd": "Ape (SRD)"},
		{"name": "Blank", "srd": ""},
		{"name": "Hidden", "srd": false},
		nil,
	}
}

func (s *FilterTestSuite) TestSRDMode() {
	out := filter.Filter(s.records, filter.ModeSRD)

	names := make([]string, 0, len(out))
	for _, r := range out {
		names = append(names, r.Name())
	}
	s.Equal([]string{"Goblin", "Goblin Warrior", "Ape"}, names)
}

func (s *FilterTestSuite) TestAllModePassesThrough() {
	s.Equal(s.records, filter.Filter(s.records, filter.ModeAll))
}

func (s *FilterTestSuite) TestIdempotent() {
	for _, mode := range []filter.Mode{filter.ModeSRD, filter.ModeAll} {
		s.Run(string(mode), func() {
			once := filter.Filter(s.records, mode)
			s.Equal(once, filter.Filter(once, mode))
		})
	}
}

func (s *FilterTestSuite) TestParseMode() {
	mode, err := filter.ParseMode("")
	s.NoError(err)
	s.Equal(filter.ModeSRD, mode)

	mode, err = filter.ParseMode("ALL")
	s.NoError(err)
	s.Equal(filter.ModeAll, mode)

	_, err = filter.ParseMode("homebrew")
	s.Error(err)
}
