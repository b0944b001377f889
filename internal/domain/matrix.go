package domain

import "time"

// MatrixCell carries the room triple and the passenger triple for one
// grade of one schedule. For seat-based vessels RoomsVacant and
// PaxRemaining hold zero and are not rendered.
type MatrixCell struct {
	RoomsConfirmed int
	RoomsBlocked   int
	RoomsVacant    int
	PaxConfirmed   int
	PaxBlocked     int
	PaxRemaining   int
}

// Add accumulates another cell, used to build the TOTAL pseudo-grade.
func (c *MatrixCell) Add(o MatrixCell) {
	c.RoomsConfirmed += o.RoomsConfirmed
	c.RoomsBlocked += o.RoomsBlocked
	c.RoomsVacant += o.RoomsVacant
	c.PaxConfirmed += o.PaxConfirmed
	c.PaxBlocked += o.PaxBlocked
	c.PaxRemaining += o.PaxRemaining
}

// Empty reports whether the cell holds no confirmed and no blocked
// inventory. Vacancy alone does not make a cell non-empty.
func (c MatrixCell) Empty() bool {
	return c.RoomsConfirmed == 0 && c.RoomsBlocked == 0
}

// MatrixRow is one schedule of the occupancy matrix.
type MatrixRow struct {
	ScheduleID    int64
	ETD           time.Time
	DateLabel     string
	DeparturePort string
	ArrivalPort   string
	Cells         map[string]MatrixCell
}

// Total returns the row's TOTAL pseudo-grade cell.
func (r MatrixRow) Total() MatrixCell {
	return r.Cells[TotalGradeCode]
}

// OccupancyMatrix is the pipeline output: one row per schedule with
// per-grade column groups, TOTAL leading. It is returned to the caller
// and never stored in any shared slot, so concurrent sessions cannot
// observe each other's results.
type OccupancyMatrix struct {
	RouteCode  string
	VesselCode string
	Model      OccupancyModelKind
	Grades     []string
	Rows       []MatrixRow
}

// HasVacancy reports whether vacancy/remaining columns are defined.
func (m OccupancyMatrix) HasVacancy() bool {
	return m.Model == RoomBased
}

// ScheduleIDs returns the IDs of the displayed rows in row order.
func (m OccupancyMatrix) ScheduleIDs() []int64 {
	ids := make([]int64, len(m.Rows))
	for i, row := range m.Rows {
		ids[i] = row.ScheduleID
	}
	return ids
}
