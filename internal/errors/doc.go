// Package errors provides the structured error type used across the
// conversion pipeline.
//
// Two classes of failure exist:
//   - structural: a record failed input or output schema validation. These
//     carry CodeInvalidArgument (or CodeFailedPrecondition for a payload whose
//     discriminator does not match its shape) and are always recoverable at
//     the batch level.
//   - resource: a source file could not be read or parsed. These carry
//     CodeNotFound, CodeDataLoss or CodeDeadlineExceeded and abort only the
//     file they belong to.
//
// # Basic Usage
//
//	err := errors.NotFoundf("source file %s not found", name)
//	err := errors.InvalidArgument("record is not an object").WithMeta("index", i)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := reader.ReadSourceData(ctx, name); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", name)
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	vb.RequiredField("name")
//	vb.Fieldf("cr", "unrecognised value %q", raw)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Messages returns the field messages in a stable order so batch reports are
// deterministic:
//
//	for _, msg := range errors.Messages(err) {
//	    fmt.Println(msg) // "name: is required"
//	}
package errors
