package export_report

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/usecase/build_report"
)

// ReportUseCase builds the occupancy matrix for one request.
type ReportUseCase interface {
	Execute(ctx context.Context, req build_report.Request) (*build_report.Response, error)
}

// ExportService renders a built matrix into an xlsx workbook.
type ExportService interface {
	BuildWorkbook(ctx context.Context, matrix *domain.OccupancyMatrix, scope domain.TicketScope) ([]byte, error)
}

// Logger is the logging interface the handler needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
