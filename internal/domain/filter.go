package domain

// PortMatch says which side of a sailing a port filter applies to.
type PortMatch string

const (
	// MatchDeparture keeps only schedules departing from the port.
	MatchDeparture PortMatch = "departure"
	// MatchArrival keeps only tickets whose arrival schedule calls at
	// the port. Resolved against the scheduling database before the
	// booking queries run, since the two live in separate databases.
	MatchArrival PortMatch = "arrival"
)

// PortFilter is the specific-port disambiguation used by routes whose
// itinerary has more than two ports. The generic two-port direction
// table cannot express a middle port, so those selections match a
// concrete port identity instead.
type PortFilter struct {
	PortID int64
	Match  PortMatch
}

// DirectionFilter is the Filter Resolver output: the set of direction
// codes to query, plus an optional port filter for via-port routes.
type DirectionFilter struct {
	Directions []string
	Port       *PortFilter
}

// Both reports whether both legs are selected.
func (f DirectionFilter) Both() bool {
	return len(f.Directions) == 2
}

// TicketScope restricts the ticket set before aggregation. A nil
// ArrivalScheduleIDs means unrestricted; an empty non-nil slice means
// no ticket can match (the caller should short-circuit to zero counts
// rather than issue an impossible query).
type TicketScope struct {
	ArrivalScheduleIDs []int64
}

// Unrestricted reports whether the scope imposes no predicate.
func (s TicketScope) Unrestricted() bool {
	return s.ArrivalScheduleIDs == nil
}
