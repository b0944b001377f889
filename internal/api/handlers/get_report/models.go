package get_report

import (
	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/pkg/ptr"
)

// ReportResponse is the JSON shape of the occupancy matrix.
type ReportResponse struct {
	Route      string      `json:"route"`
	Vessel     string      `json:"vessel"`
	Model      string      `json:"model"`
	HasVacancy bool        `json:"has_vacancy"`
	Grades     []string    `json:"grades"`
	Rows       []ReportRow `json:"rows"`
}

// ReportRow is one sailing of the matrix.
type ReportRow struct {
	ScheduleID    int64               `json:"schedule_id"`
	Date          string              `json:"date"`
	DeparturePort string              `json:"departure_port"`
	ArrivalPort   string              `json:"arrival_port"`
	Cells         map[string]CellView `json:"cells"`
}

// CellView is one grade's counts. Vacant and remaining are omitted for
// seat-based vessels.
type CellView struct {
	RoomsConfirmed int  `json:"rooms_confirmed"`
	RoomsBlocked   int  `json:"rooms_blocked"`
	RoomsVacant    *int `json:"rooms_vacant,omitempty"`
	PaxConfirmed   int  `json:"pax_confirmed"`
	PaxBlocked     int  `json:"pax_blocked"`
	PaxRemaining   *int `json:"pax_remaining,omitempty"`
}

// FromDomainMatrix maps the domain matrix to the response shape.
func FromDomainMatrix(m *domain.OccupancyMatrix) *ReportResponse {
	rows := make([]ReportRow, 0, len(m.Rows))
	for _, row := range m.Rows {
		cells := make(map[string]CellView, len(row.Cells))
		for grade, cell := range row.Cells {
			view := CellView{
				RoomsConfirmed: cell.RoomsConfirmed,
				RoomsBlocked:   cell.RoomsBlocked,
				PaxConfirmed:   cell.PaxConfirmed,
				PaxBlocked:     cell.PaxBlocked,
			}
			if m.HasVacancy() {
				view.RoomsVacant = ptr.Ptr(cell.RoomsVacant)
				view.PaxRemaining = ptr.Ptr(cell.PaxRemaining)
			}
			cells[grade] = view
		}
		rows = append(rows, ReportRow{
			ScheduleID:    row.ScheduleID,
			Date:          row.DateLabel,
			DeparturePort: row.DeparturePort,
			ArrivalPort:   row.ArrivalPort,
			Cells:         cells,
		})
	}
	return &ReportResponse{
		Route:      m.RouteCode,
		Vessel:     m.VesselCode,
		Model:      string(m.Model),
		HasVacancy: m.HasVacancy(),
		Grades:     m.Grades,
		Rows:       rows,
	}
}
