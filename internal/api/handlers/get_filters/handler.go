package get_filters

import (
	"net/http"

	"github.com/neohelios/occupancy-dashboard/internal/api/handlers"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
)

// RouteOption is one selectable route with its port choices.
type RouteOption struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Vessel      string   `json:"vessel"`
	VesselName  string   `json:"vessel_name"`
	Model       string   `json:"model"`
	Ports       []string `json:"ports"`
}

// VesselOption is one vessel row from the scheduling database.
type VesselOption struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// FiltersResponse feeds the dashboard's selection controls.
type FiltersResponse struct {
	Routes  []RouteOption  `json:"routes"`
	Vessels []VesselOption `json:"vessels"`
}

type Handler struct {
	schedules ScheduleRepository
	fleet     *fleet.Config
	logger    Logger
}

func NewHandler(schedules ScheduleRepository, fleetCfg *fleet.Config, logger Logger) *Handler {
	return &Handler{
		schedules: schedules,
		fleet:     fleetCfg,
		logger:    logger,
	}
}

// Handle GET /api/v1/occupancy/filters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vessels, err := h.schedules.ListVessels(r.Context())
	if err != nil {
		h.logger.Error("GET /occupancy/filters - Failed to list vessels: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := FiltersResponse{
		Routes:  make([]RouteOption, 0, len(h.fleet.Routes)),
		Vessels: make([]VesselOption, 0, len(vessels)),
	}
	for _, code := range h.fleet.RouteCodes() {
		route := h.fleet.Routes[code]
		vesselCode, vessel, err := h.fleet.VesselForRoute(route)
		if err != nil {
			h.logger.Error("GET /occupancy/filters - Bad fleet config for route %s: %v", code, err)
			handlers.RespondInternalError(w)
			return
		}
		resp.Routes = append(resp.Routes, RouteOption{
			Code:        code,
			Description: route.Description,
			Vessel:      vesselCode,
			VesselName:  vessel.Name,
			Model:       string(vessel.Model),
			Ports:       route.PortOptions(),
		})
	}
	for _, v := range vessels {
		resp.Vessels = append(resp.Vessels, VesselOption{ID: v.ID, Code: v.Code, Name: v.Name})
	}

	h.logger.Info("GET /occupancy/filters - Filters listed: routes=%d, vessels=%d", len(resp.Routes), len(resp.Vessels))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
