package build_report

import (
	"fmt"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// normalizeRequest fills wildcard defaults in place.
func normalizeRequest(req *Request) {
	if req.Origin == "" {
		req.Origin = domain.PortWildcard
	}
	if req.Destination == "" {
		req.Destination = domain.PortWildcard
	}
}

// validateRequest checks the parts that cannot degrade gracefully.
// Unknown port selections are not rejected here: the direction
// resolver falls back to both directions for those.
func validateRequest(req *Request) error {
	if req.RouteCode == "" {
		return fmt.Errorf("%w: route code is required", ErrInvalidInput)
	}
	if req.Range.Start.IsZero() || req.Range.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if !req.Range.IsValid() {
		return fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	return nil
}
