package export

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// ManifestRepository reads passenger manifest rows for the
// demographics sheet.
type ManifestRepository interface {
	PassengersBySchedule(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.PassengerRecord, error)
}

// Logger is the logging interface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
