package fleet

import "errors"

var (
	// ErrUnknownRoute is returned when a route code is not configured.
	ErrUnknownRoute = errors.New("fleet: unknown route")

	// ErrUnknownVessel is returned when a route references a vessel
	// that is not configured.
	ErrUnknownVessel = errors.New("fleet: unknown vessel")

	// ErrInvalidConfig is returned when the fleet file fails validation.
	ErrInvalidConfig = errors.New("fleet: invalid configuration")
)
