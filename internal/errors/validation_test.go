package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("size", "is invalid")
	ve.AddFieldErrorf("level", "must be at most %d", 9)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "name: is required")
	s.Assert().Contains(ve.Error(), "size: is invalid")
	s.Assert().Contains(ve.Error(), "level: must be at most 9")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 0, 9).
		RequiredField("source").
		InvalidField("school", "unknown school letter")

	s.Assert().True(vb.HasErrors())
	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestMessagesAreSortedByField() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("size").RequiredField("name")

	s.Assert().Equal([]string{"name: is required", "size: is required"}, errors.Messages(vb.Build()))
}

func (s *ValidationTestSuite) TestMessagesForPlainErrors() {
	s.Assert().Nil(errors.Messages(nil))
	s.Assert().Equal([]string{"boom"}, errors.Messages(fmt.Errorf("boom")))
	s.Assert().Equal([]string{"file missing"}, errors.Messages(errors.NotFound("file missing")))
}

func (s *ValidationTestSuite) TestMessagesSurviveWrapping() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")
	wrapped := errors.Wrap(vb.Build(), "input schema")

	s.Assert().Equal([]string{"name: is required"}, errors.Messages(wrapped))
}

func (s *ValidationTestSuite) TestValidateEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("markup_mode", "plain", []string{"plain", "markdown"}, vb)
	s.Assert().Nil(vb.Build())

	errors.ValidateEnum("markup_mode", "html", []string{"plain", "markdown"}, vb)
	s.Assert().Equal([]string{"markup_mode: must be one of: plain, markdown"}, errors.Messages(vb.Build()))
}
