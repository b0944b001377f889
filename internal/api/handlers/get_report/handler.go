package get_report

import (
	"errors"
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
)

type Handler struct {
	useCase ReportUseCase
	logger  Logger
}

func NewHandler(useCase ReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/occupancy/report
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /occupancy/report - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, build_report.ErrInvalidInput):
			h.logger.Warn("GET /occupancy/report - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, build_report.ErrUnknownRoute):
			h.logger.Warn("GET /occupancy/report - Unknown route: %s", req.RouteCode)
			handlers.RespondNotFound(w, msgUnknownRoute)

		default:
			h.logger.Error("GET /occupancy/report - Failed to build report: route=%s, error=%v", req.RouteCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /occupancy/report - Report built: route=%s, rows=%d", req.RouteCode, len(resp.Matrix.Rows))
	handlers.RespondJSON(w, http.StatusOK, FromDomainMatrix(resp.Matrix))
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
