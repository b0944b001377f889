package build_report

import (
	"sort"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// buildMatrix assembles the final occupancy matrix from per-grade room
// and passenger counts. Rows whose TOTAL cell carries no confirmed and
// no blocked inventory are dropped; when the surviving rows contain
// more than one sailing on the same date, every row label gets the
// departure time appended.
func buildMatrix(
	routeCode, vesselCode string,
	kind domain.OccupancyModelKind,
	gradeOrder []string,
	schedules []domain.Schedule,
	rooms map[domain.ScheduleGrade]domain.RoomCount,
	pax map[domain.ScheduleGrade]domain.PassengerCount,
) *domain.OccupancyMatrix {
	grades := orderGrades(gradeOrder, rooms, pax)

	rows := make([]domain.MatrixRow, 0, len(schedules))
	for _, s := range schedules {
		cells := make(map[string]domain.MatrixCell, len(grades)+1)
		var total domain.MatrixCell
		for _, grade := range grades {
			key := domain.ScheduleGrade{ScheduleID: s.ID, GradeCode: grade}
			rc := rooms[key]
			pc := pax[key]
			cell := domain.MatrixCell{
				RoomsConfirmed: rc.Confirmed,
				RoomsBlocked:   rc.Blocked,
				RoomsVacant:    rc.Vacant,
				PaxConfirmed:   pc.Confirmed,
				PaxBlocked:     pc.Blocked,
				PaxRemaining:   pc.Remaining,
			}
			cells[grade] = cell
			total.Add(cell)
		}
		if total.Empty() {
			continue
		}
		cells[domain.TotalGradeCode] = total
		rows = append(rows, domain.MatrixRow{
			ScheduleID:    s.ID,
			ETD:           s.ETD,
			DeparturePort: s.DeparturePortCode,
			ArrivalPort:   s.ArrivalPortCode,
			Cells:         cells,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ETD.Before(rows[j].ETD) })

	withTime := multipleSailingsPerDate(rows)
	for i, row := range rows {
		s := domain.Schedule{ETD: row.ETD}
		rows[i].DateLabel = s.DateLabel(withTime)
	}

	columns := make([]string, 0, len(grades)+1)
	columns = append(columns, domain.TotalGradeCode)
	columns = append(columns, grades...)

	return &domain.OccupancyMatrix{
		RouteCode:  routeCode,
		VesselCode: vesselCode,
		Model:      kind,
		Grades:     columns,
		Rows:       rows,
	}
}

// orderGrades returns the grade columns in the vessel's canonical
// order. Grades present in the data but missing from the canonical
// list are appended alphabetically so unexpected inventory is still
// visible rather than silently dropped.
func orderGrades(
	canonical []string,
	rooms map[domain.ScheduleGrade]domain.RoomCount,
	pax map[domain.ScheduleGrade]domain.PassengerCount,
) []string {
	seen := make(map[string]bool)
	for key := range rooms {
		seen[key.GradeCode] = true
	}
	for key := range pax {
		seen[key.GradeCode] = true
	}

	ordered := make([]string, 0, len(seen))
	for _, grade := range canonical {
		if seen[grade] {
			ordered = append(ordered, grade)
			delete(seen, grade)
		}
	}

	extras := make([]string, 0, len(seen))
	for grade := range seen {
		extras = append(extras, grade)
	}
	sort.Strings(extras)
	return append(ordered, extras...)
}

// multipleSailingsPerDate reports whether any calendar date appears on
// more than one row. The time suffix is a global toggle: once one date
// is ambiguous, every label carries the departure time.
func multipleSailingsPerDate(rows []domain.MatrixRow) bool {
	dates := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := row.ETD.Format(domain.DateFormat)
		if dates[key] {
			return true
		}
		dates[key] = true
	}
	return false
}
