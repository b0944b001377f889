package build_report

import (
	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
)

// bothDirections is the safe fallback when a selection cannot be
// mapped onto a single leg.
func bothDirections() []string {
	return []string{domain.DirectionOutbound, domain.DirectionInbound}
}

// resolveDirections turns an origin/destination selection into the set
// of direction codes to query.
//
// Every route defines an ordered (first, second) port pair. The rules
// below are evaluated in order, first match wins; any unmatched
// combination degrades silently to both directions.
//
// Routes calling at a third port cannot express that port through the
// two-port table. For those selections the port identity itself is the
// canonical filter: origin = via port matches each schedule's
// departure port, destination = via port matches each ticket's arrival
// schedule port. The direction set stays at both as a fallback only.
func resolveDirections(route fleet.Route, origin, destination string) domain.DirectionFilter {
	if route.HasViaPort() {
		if origin == route.ViaPort {
			return domain.DirectionFilter{
				Directions: bothDirections(),
				Port:       &domain.PortFilter{PortID: route.ViaPortID, Match: domain.MatchDeparture},
			}
		}
		if destination == route.ViaPort {
			return domain.DirectionFilter{
				Directions: bothDirections(),
				Port:       &domain.PortFilter{PortID: route.ViaPortID, Match: domain.MatchArrival},
			}
		}
	}

	first, second := route.FirstPort, route.SecondPort
	wild := domain.PortWildcard

	var directions []string
	switch {
	case origin == wild && destination == wild:
		directions = bothDirections()
	case origin == first && destination == wild:
		directions = []string{domain.DirectionOutbound}
	case origin == second && destination == wild:
		directions = []string{domain.DirectionInbound}
	case origin == wild && destination == second:
		directions = []string{domain.DirectionOutbound}
	case origin == wild && destination == first:
		directions = []string{domain.DirectionInbound}
	case origin == first && destination == second:
		directions = []string{domain.DirectionOutbound}
	case origin == second && destination == first:
		directions = []string{domain.DirectionInbound}
	default:
		directions = bothDirections()
	}

	return domain.DirectionFilter{Directions: directions}
}
