// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package maps the error kinds the order core exposes:
//   - ObjectNotFoundError: an order looked up by id does not exist
//   - ReferenceNotFoundError: a user, restaurant or menu item referenced by an order does not exist
//   - InvalidTransitionError: a status change violates the order state machine
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - VersionIsInvalidError: the order row changed concurrently
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
package errs
