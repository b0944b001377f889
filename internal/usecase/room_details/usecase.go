package room_details

import (
	"context"
	"fmt"
	"sort"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
)

// UseCase lists the per-room occupancy states of one sailing, the
// drill-down behind a matrix cell. Seat-based routes have no
// enumerable rooms and always yield an empty list.
type UseCase struct {
	inventory InventoryRepository
	fleet     *fleet.Config
	logger    Logger
}

func New(inventory InventoryRepository, fleetCfg *fleet.Config, logger Logger) *UseCase {
	return &UseCase{inventory: inventory, fleet: fleetCfg, logger: logger}
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.RouteCode == "" {
		return nil, fmt.Errorf("%w: route code is required", ErrInvalidInput)
	}
	if req.ScheduleID <= 0 {
		return nil, fmt.Errorf("%w: schedule id must be positive", ErrInvalidInput)
	}

	route, err := uc.fleet.Route(req.RouteCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, req.RouteCode)
	}
	_, vessel, err := uc.fleet.VesselForRoute(route)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - resolve vessel: %v", ErrInternal, err)
	}
	if vessel.Model == domain.SeatBased {
		return &Response{ScheduleID: req.ScheduleID, Rooms: []Room{}}, nil
	}

	scheduleIDs := []int64{req.ScheduleID}
	tallies, err := uc.inventory.RoomTicketTallies(ctx, scheduleIDs, domain.TicketScope{})
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - load room tallies: %v", ErrInternal, err)
	}
	vacant, err := uc.inventory.VacantRooms(ctx, []int64{route.ID}, scheduleIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - load vacant rooms: %v", ErrInternal, err)
	}

	details := make([]domain.RoomDetail, 0, len(tallies)+len(vacant))
	for _, t := range tallies {
		details = append(details, domain.RoomDetail{
			ScheduleID: t.ScheduleID,
			GradeCode:  t.GradeCode,
			RoomNumber: t.RoomNumber,
			State:      t.State(),
		})
	}
	details = append(details, vacant...)

	rooms := make([]Room, 0, len(details))
	for _, d := range details {
		if req.GradeCode != "" && d.GradeCode != req.GradeCode {
			continue
		}
		rooms = append(rooms, Room{
			RoomNumber: d.RoomNumber,
			GradeCode:  d.GradeCode,
			State:      string(d.State),
			StateLabel: d.State.Label(),
		})
	}
	sortRooms(rooms)

	uc.logger.Info("room_details: schedule=%d rooms=%d", req.ScheduleID, len(rooms))
	return &Response{ScheduleID: req.ScheduleID, Rooms: rooms}, nil
}

var stateRank = map[string]int{
	string(domain.StateConfirmed): 0,
	string(domain.StateBlocked):   1,
	string(domain.StateVacant):    2,
}

func sortRooms(rooms []Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if stateRank[rooms[i].State] != stateRank[rooms[j].State] {
			return stateRank[rooms[i].State] < stateRank[rooms[j].State]
		}
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
}
