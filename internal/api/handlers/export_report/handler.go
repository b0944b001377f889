package export_report

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/neohelios/occupancy-dashboard/internal/api/handlers"
	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/usecase/build_report"
)

const (
	msgInvalidDate  = "잘못된 날짜 형식입니다 (YYYY-MM-DD)"
	msgInvalidInput = "잘못된 요청입니다"
	msgUnknownRoute = "알 수 없는 항로입니다"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	useCase ReportUseCase
	export  ExportService
	logger  Logger
}

func NewHandler(useCase ReportUseCase, export ExportService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		export:  export,
		logger:  logger,
	}
}

// Handle GET /api/v1/occupancy/report/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /occupancy/report/export - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, build_report.ErrInvalidInput):
			h.logger.Warn("GET /occupancy/report/export - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, build_report.ErrUnknownRoute):
			h.logger.Warn("GET /occupancy/report/export - Unknown route: %s", req.RouteCode)
			handlers.RespondNotFound(w, msgUnknownRoute)

		default:
			h.logger.Error("GET /occupancy/report/export - Failed to build report: route=%s, error=%v", req.RouteCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	workbook, err := h.export.BuildWorkbook(r.Context(), resp.Matrix, resp.Scope)
	if err != nil {
		h.logger.Error("GET /occupancy/report/export - Failed to build workbook: route=%s, error=%v", req.RouteCode, err)
		handlers.RespondInternalError(w)
		return
	}

	fileName := exportFileName(req.Range)
	h.logger.Info("GET /occupancy/report/export - Workbook served: route=%s, file=%s", req.RouteCode, fileName)
	handlers.RespondAttachment(w, fileName, xlsxContentType, workbook)
}

func exportFileName(rng domain.DateRange) string {
	return fmt.Sprintf("크루즈현황_객실_승객_%s_%s.xlsx",
		rng.Start.Format(domain.DateFormat), rng.End.Format(domain.DateFormat))
}

func parseRequest(r *http.Request) (build_report.Request, error) {
	q := r.URL.Query()
	req := build_report.Request{
		RouteCode:   q.Get("route"),
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
	}

	var err error
	req.Range.Start, err = time.Parse(domain.DateFormat, q.Get("start_date"))
	if err != nil {
		return build_report.Request{}, err
	}
	req.Range.End, err = time.Parse(domain.DateFormat, q.Get("end_date"))
	if err != nil {
		return build_report.Request{}, err
	}
	return req, nil
}
