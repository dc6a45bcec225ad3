// Package schema validates converter inputs and outputs and reports
// failures as field-level validation errors.
package schema

import (
	stderrors "errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

// Schema checks the shape of a value
type Schema interface {
	// Validate returns nil or an errors.InvalidArgument carrying one
	// message per offending field
	Validate(value any) error
}

// Func adapts a function to the Schema interface
type Func func(value any) error

// Validate implements Schema
func (f Func) Validate(value any) error {
	return f(value)
}

// For builds a schema for *T from ozzo rules. Values of any other type
// fail as a precondition error.
func For[T any](rules func(v *T) error) Schema {
	return Func(func(value any) error {
		v, ok := value.(*T)
		if !ok || v == nil {
			var zero *T
			return errors.FailedPreconditionf("schema expects %T, got %T", zero, value)
		}
		return Normalize(rules(v))
	})
}

// Any accepts every value
var Any Schema = Func(func(any) error { return nil })

// Normalize converts ozzo validation errors into the validation error form
// used across the pipeline. Nested field errors are flattened into dotted
// paths such as "hp.average".
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if stderrors.As(err, &internal) {
		return errors.WrapWithCode(internal.InternalError(), errors.CodeInternal, "schema rule failed")
	}

	var fieldErrs validation.Errors
	if stderrors.As(err, &fieldErrs) {
		vb := errors.NewValidationBuilder()
		addFieldErrors(vb, "", fieldErrs)
		return vb.Build()
	}

	var own *errors.Error
	if errors.As(err, &own) {
		return err
	}

	return errors.InvalidArgument(err.Error())
}

func addFieldErrors(vb *errors.ValidationBuilder, prefix string, fieldErrs validation.Errors) {
	names := make([]string, 0, len(fieldErrs))
	for name := range fieldErrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fieldErr := fieldErrs[name]
		if fieldErr == nil {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		var nested validation.Errors
		if stderrors.As(fieldErr, &nested) {
			addFieldErrors(vb, path, nested)
			continue
		}
		vb.Field(path, fieldErr.Error())
	}
}
