package build_report

import (
	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// Request are the resolved query parameters for one report run.
// Origin and Destination are port codes or the wildcard; an empty
// string is normalized to the wildcard.
type Request struct {
	RouteCode   string
	Origin      string
	Destination string
	Range       domain.DateRange
}

// Response is the pipeline output. The matrix is returned by value to
// the caller and held only there; the service keeps no "last result"
// state between requests. Scope is carried so the export can apply the
// same ticket restriction to its demographic query.
type Response struct {
	Matrix *domain.OccupancyMatrix
	Scope  domain.TicketScope
}

// Empty reports whether no schedule survived into the matrix.
func (r *Response) Empty() bool {
	return r.Matrix == nil || len(r.Matrix.Rows) == 0
}
