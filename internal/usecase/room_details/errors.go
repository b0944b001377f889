package room_details

import "errors"

var (
	// ErrInvalidInput is returned when the request fails validation.
	ErrInvalidInput = errors.New("room_details: invalid input data")

	// ErrUnknownRoute is returned for a route code missing from the
	// fleet configuration.
	ErrUnknownRoute = errors.New("room_details: unknown route")

	// ErrInternal wraps repository failures.
	ErrInternal = errors.New("room_details: internal error")
)
