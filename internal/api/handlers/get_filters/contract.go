package get_filters

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// ScheduleRepository reads vessel reference data for the filter list.
type ScheduleRepository interface {
	ListVessels(ctx context.Context) ([]domain.VesselInfo, error)
}

// Logger is the logging interface the handler needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
