package build_report

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// ScheduleRepository reads sailings from the scheduling database.
type ScheduleRepository interface {
	ListByDirection(ctx context.Context, routeID int64, direction string, rng domain.DateRange) ([]domain.Schedule, error)
	ArrivalScheduleIDsForPort(ctx context.Context, routeID int64, portID int64, rng domain.DateRange) ([]int64, error)
}

// InventoryRepository reads room inventory and ticket tallies from the
// booking database.
type InventoryRepository interface {
	TotalRoomsByGrade(ctx context.Context, routeIDs []int64) (map[string]int, error)
	RoomTicketTallies(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.RoomTicketTally, error)
	SeatTicketTallies(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.SeatTicketTally, error)
}

// Logger is the logging interface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
