package build_report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
	"github.com/neohelios/occupancy-dashboard/pkg/metrics"
)

// UseCase builds the occupancy matrix for one report request. Every
// Execute call works on its own loaded snapshot, so concurrent
// requests never share intermediate state.
type UseCase struct {
	schedules ScheduleRepository
	inventory InventoryRepository
	fleet     *fleet.Config
	metrics   *metrics.Metrics
	logger    Logger
}

func New(schedules ScheduleRepository, inventory InventoryRepository, fleetCfg *fleet.Config, m *metrics.Metrics, logger Logger) *UseCase {
	return &UseCase{
		schedules: schedules,
		inventory: inventory,
		fleet:     fleetCfg,
		metrics:   m,
		logger:    logger,
	}
}

// Execute runs the full pipeline: resolve directions, load schedules,
// resolve the ticket scope, aggregate counts and assemble the matrix.
// Any repository failure aborts the build; a partial matrix is never
// returned.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.ObserveReportBuild(req.RouteCode, time.Since(started), err)
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req Request) (*Response, error) {
	normalizeRequest(&req)
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	route, err := uc.fleet.Route(req.RouteCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, req.RouteCode)
	}
	vesselCode, vessel, err := uc.fleet.VesselForRoute(route)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - resolve vessel: %v", ErrInternal, err)
	}

	filter := resolveDirections(route, req.Origin, req.Destination)
	uc.logger.Info("build_report: route=%s origin=%s destination=%s directions=%v",
		req.RouteCode, req.Origin, req.Destination, filter.Directions)

	schedules, err := uc.loadSchedules(ctx, route, filter, req.Range)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return &Response{Matrix: emptyMatrix(req.RouteCode, vesselCode, vessel)}, nil
	}

	scope, err := uc.resolveScope(ctx, route, filter, req.Range)
	if err != nil {
		return nil, err
	}

	scheduleIDs := make([]int64, len(schedules))
	for i, s := range schedules {
		scheduleIDs[i] = s.ID
	}

	var rooms map[domain.ScheduleGrade]domain.RoomCount
	var pax map[domain.ScheduleGrade]domain.PassengerCount
	if !scope.Unrestricted() && len(scope.ArrivalScheduleIDs) == 0 {
		// The arrival port matched no sailing in the window, so no
		// ticket can satisfy the scope. Skip the booking queries and
		// report zero occupancy.
		uc.logger.Warn("build_report: arrival-port scope matched no schedules, route=%s", req.RouteCode)
		rooms = map[domain.ScheduleGrade]domain.RoomCount{}
		pax = map[domain.ScheduleGrade]domain.PassengerCount{}
	} else {
		rooms, pax, err = uc.aggregate(ctx, route, vessel, scheduleIDs, scope)
		if err != nil {
			return nil, err
		}
	}

	matrix := buildMatrix(req.RouteCode, vesselCode, vessel.Model, vessel.GradeOrder, schedules, rooms, pax)
	uc.logger.Info("build_report: route=%s rows=%d", req.RouteCode, len(matrix.Rows))
	return &Response{Matrix: matrix, Scope: scope}, nil
}

// loadSchedules queries each selected direction and merges the results
// into a single ETD-ordered list. A departure-side port filter is
// applied here since departure port identity lives on the schedule row.
func (uc *UseCase) loadSchedules(ctx context.Context, route fleet.Route, filter domain.DirectionFilter, rng domain.DateRange) ([]domain.Schedule, error) {
	seen := make(map[int64]bool)
	var schedules []domain.Schedule
	for _, direction := range filter.Directions {
		batch, err := uc.schedules.ListByDirection(ctx, route.ID, direction, rng)
		if err != nil {
			return nil, fmt.Errorf("%w: Execute - load schedules: %v", ErrInternal, err)
		}
		for _, s := range batch {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			schedules = append(schedules, s)
		}
	}

	if filter.Port != nil && filter.Port.Match == domain.MatchDeparture {
		filtered := schedules[:0]
		for _, s := range schedules {
			if s.DeparturePortID == filter.Port.PortID {
				filtered = append(filtered, s)
			}
		}
		schedules = filtered
	}

	sort.Slice(schedules, func(i, j int) bool { return schedules[i].ETD.Before(schedules[j].ETD) })
	return schedules, nil
}

// resolveScope turns an arrival-side port filter into a ticket scope.
// Arrival port identity is only known to the scheduling database, so
// the matching schedule ids are resolved there first and the booking
// queries are then restricted by id.
func (uc *UseCase) resolveScope(ctx context.Context, route fleet.Route, filter domain.DirectionFilter, rng domain.DateRange) (domain.TicketScope, error) {
	if filter.Port == nil || filter.Port.Match != domain.MatchArrival {
		return domain.TicketScope{}, nil
	}
	ids, err := uc.schedules.ArrivalScheduleIDsForPort(ctx, route.ID, filter.Port.PortID, rng)
	if err != nil {
		return domain.TicketScope{}, fmt.Errorf("%w: Execute - resolve arrival scope: %v", ErrInternal, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return domain.TicketScope{ArrivalScheduleIDs: ids}, nil
}

func (uc *UseCase) aggregate(ctx context.Context, route fleet.Route, vessel fleet.Vessel, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.RoomCount, map[domain.ScheduleGrade]domain.PassengerCount, error) {
	var totals map[string]int
	if vessel.Model == domain.RoomBased {
		var err error
		totals, err = uc.inventory.TotalRoomsByGrade(ctx, []int64{route.ID})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: Execute - load room totals: %v", ErrInternal, err)
		}
	}

	model := newOccupancyModel(vessel.Model, uc.inventory, totals, uc.fleet.Capacity)
	rooms, err := model.Classify(ctx, scheduleIDs, scope)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: Execute - classify rooms: %v", ErrInternal, err)
	}
	pax, err := model.DerivePassengers(ctx, scheduleIDs, scope)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: Execute - derive passengers: %v", ErrInternal, err)
	}
	return rooms, pax, nil
}

func emptyMatrix(routeCode, vesselCode string, vessel fleet.Vessel) *domain.OccupancyMatrix {
	return &domain.OccupancyMatrix{
		RouteCode:  routeCode,
		VesselCode: vesselCode,
		Model:      vessel.Model,
		Grades:     []string{domain.TotalGradeCode},
		Rows:       []domain.MatrixRow{},
	}
}
