package build_report

import "errors"

var (
	// ErrInvalidInput is returned for malformed query parameters.
	ErrInvalidInput = errors.New("build_report: invalid input data")

	// ErrUnknownRoute is returned when the requested route is not in
	// the fleet configuration.
	ErrUnknownRoute = errors.New("build_report: unknown route")

	// ErrInternal is returned when a pipeline stage fails. No partial
	// matrix is ever produced alongside it.
	ErrInternal = errors.New("build_report: internal error")
)
