package room_details

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// InventoryRepository reads per-room tallies and vacant units from the
// booking database.
type InventoryRepository interface {
	RoomTicketTallies(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.RoomTicketTally, error)
	VacantRooms(ctx context.Context, routeIDs []int64, scheduleIDs []int64) ([]domain.RoomDetail, error)
}

// Logger is the logging interface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
