package language_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/converters/language"
	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/fluff"
	"github.com/mixtli/dungeon-lab-sub000/internal/pipeline"
	"github.com/mixtli/dungeon-lab-sub000/internal/source"
)

type LanguageTestSuite struct {
	suite.Suite
	driver *pipeline.Driver
	ctx    context.Context
}

func TestLanguageSuite(t *testing.T) {
	suite.Run(t, new(LanguageTestSuite))
}

func (s *LanguageTestSuite) SetupTest() {
	s.ctx = context.Background()
	conv, err := language.New(&language.Config{Fluff: fluff.NewIndex(fluff.Record{
		Name:   "Elvish",
		Images: []string{"languages/Elvish.webp"},
	})})
	s.Require().NoError(err)
	s.driver, err = pipeline.New(&pipeline.Config{
		Converter: conv,
		Options:   pipeline.Options{ResolveAssets: true},
	})
	s.Require().NoError(err)
}

func (s *LanguageTestSuite) TestDwarvish() {
	result := s.driver.Convert(s.ctx, source.RawRecord{
		"name":            "Dwarvish",
		"source":          "XPHB",
		"type":            "standard",
		"script":          "Dwarvish",
		"typicalSpeakers": []any{"{@race dwarf|XPHB|Dwarves}", "{@race duergar|MPMM}"},
		"entries":         []any{"Dwarvish is full of hard consonants."},
	})

	s.Require().True(result.Success, result.Errors)
	doc := result.Document
	s.Equal(document.CategoryLanguage, doc.Category)
	s.Equal("Dwarvish is full of hard consonants.", doc.Description)
	s.Empty(doc.ImagePath)

	data := doc.PluginData.(*document.LanguageData)
	s.Equal("standard", data.Type)
	s.Equal("Dwarvish", data.Script)
	s.Equal("Dwarves, duergar", data.TypicalSpeakers)
	s.Equal([]document.Reference{
		{Slug: "dwarf", DocumentKind: document.KindDocument, Category: document.CategorySpecies, Source: "xphb"},
		{Slug: "duergar", DocumentKind: document.KindDocument, Category: document.CategorySpecies, Source: "mpmm"},
	}, data.Speakers)
}

func (s *LanguageTestSuite) TestDialectsAndAsset() {
	result := s.driver.Convert(s.ctx, source.RawRecord{
		"name":     "Elvish",
		"source":   "XPHB",
		"type":     "standard",
		"dialects": []any{"Sylvan Elvish", "{@i Drow Sign}"},
	})

	s.Require().True(result.Success, result.Errors)
	s.Equal("languages/Elvish.webp", result.Document.ImagePath)
	data := result.Document.PluginData.(*document.LanguageData)
	s.Equal([]string{"Sylvan Elvish", "Drow Sign"}, data.Dialects)
	s.Empty(data.Speakers)
}

func (s *LanguageTestSuite) TestInvalidType() {
	testCases := []struct {
		name    string
		record  source.RawRecord
		message string
	}{
		{
			name:    "missing type",
			record:  source.RawRecord{"name": "Gibberish"},
			message: "type: cannot be blank",
		},
		{
			name:    "unknown type",
			record:  source.RawRecord{"name": "Gibberish", "type": "ancient"},
			message: "type: must be one of [standard exotic rare secret]",
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
