package get_room_details

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/neohelios/occupancy-dashboard/internal/api/handlers"
	"github.com/neohelios/occupancy-dashboard/internal/usecase/room_details"
)

const (
	msgInvalidScheduleID = "잘못된 스케줄 ID입니다"
	msgInvalidInput      = "잘못된 요청입니다"
	msgUnknownRoute      = "알 수 없는 항로입니다"
)

type Handler struct {
	useCase RoomDetailsUseCase
	logger  Logger
}

func NewHandler(useCase RoomDetailsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/occupancy/schedules/{scheduleId}/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /occupancy/schedules/{id}/rooms - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	q := r.URL.Query()
	req := room_details.Request{
		RouteCode:  q.Get("route"),
		ScheduleID: scheduleID,
		GradeCode:  q.Get("grade"),
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, room_details.ErrInvalidInput):
			h.logger.Warn("GET /occupancy/schedules/{id}/rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, room_details.ErrUnknownRoute):
			h.logger.Warn("GET /occupancy/schedules/{id}/rooms - Unknown route: %s", req.RouteCode)
			handlers.RespondNotFound(w, msgUnknownRoute)

		default:
			h.logger.Error("GET /occupancy/schedules/{id}/rooms - Failed: schedule_id=%d, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /occupancy/schedules/{id}/rooms - Rooms listed: schedule_id=%d, rooms=%d", scheduleID, len(resp.Rooms))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
