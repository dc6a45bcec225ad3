package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "source file not found",
			expected: "NOT_FOUND: source file not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid record",
			expected: "INVALID_ARGUMENT: invalid record",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("source file not found").
		WithMeta("file", "bestiary-mm.json").
		WithMeta("category", "creature")

	s.Assert().Equal("bestiary-mm.json", err.Meta["file"])
	s.Assert().Equal("creature", err.Meta["category"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk read failed")
	wrapped := errors.Wrap(baseErr, "failed to read source file")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to read source file", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("file not found")
	wrapped := errors.Wrap(baseErr, "failed to load creatures")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("failed to load creatures", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("unexpected end of JSON input")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeDataLoss, "unparsable source file")

	s.Assert().Equal(errors.CodeDataLoss, wrapped.Code)
	s.Assert().Equal("unparsable source file", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapCopiesMeta() {
	baseErr := errors.NotFound("file not found").WithMeta("file", "spells-phb.json")
	wrapped := errors.Wrap(baseErr, "failed to load spells").WithMeta("category", "spell")

	s.Assert().Equal("spells-phb.json", wrapped.Meta["file"])
	s.Assert().Equal("spell", wrapped.Meta["category"])
	s.Assert().NotContains(baseErr.Meta, "category")
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(notFoundErr))
}

func (s *ErrorsTestSuite) TestIsStructural() {
	s.Assert().True(errors.IsStructural(errors.InvalidArgument("bad shape")))
	s.Assert().True(errors.IsStructural(errors.FailedPrecondition("mismatched discriminator")))
	s.Assert().False(errors.IsStructural(errors.NotFound("missing file")))
	s.Assert().False(errors.IsStructural(nil))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}
