package export

import (
	"sort"
	"time"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

// ageBands are the manifest age brackets, computed against the sailing
// date rather than the export date so a re-export of an old window
// reproduces the original sheet.
var ageBands = []ageBand{
	{label: "19세 이하", min: 0, max: 19},
	{label: "20-39세", min: 20, max: 39},
	{label: "40-59세", min: 40, max: 59},
	{label: "60세 이상", min: 60, max: 200},
}

type ageBand struct {
	label string
	min   int
	max   int
}

func ageBandLabels() []string {
	labels := make([]string, len(ageBands))
	for i, b := range ageBands {
		labels[i] = b.label
	}
	return labels
}

// demographicRow is one (schedule, nationality) aggregate. Total counts
// every manifest entry; Bands only those with a known birth date, so
// the band columns may sum to less than Total.
type demographicRow struct {
	ScheduleID  int64
	Nationality string
	Total       int
	Bands       map[string]int
}

// aggregateDemographics folds manifest records into per-schedule,
// per-nationality rows ordered by schedule (in the given row order)
// and then by descending headcount.
func aggregateDemographics(records []domain.PassengerRecord, etdBySchedule map[int64]time.Time, scheduleOrder []int64) []demographicRow {
	byKey := make(map[domain.ScheduleGrade]*demographicRow)
	for _, rec := range records {
		nationality := rec.Nationality
		if nationality == "" {
			nationality = domain.UnknownNationality
		}
		key := domain.ScheduleGrade{ScheduleID: rec.ScheduleID, GradeCode: nationality}
		row, ok := byKey[key]
		if !ok {
			row = &demographicRow{
				ScheduleID:  rec.ScheduleID,
				Nationality: nationality,
				Bands:       make(map[string]int, len(ageBands)),
			}
			byKey[key] = row
		}
		row.Total++
		if rec.BirthDate == nil {
			continue
		}
		if etd, ok := etdBySchedule[rec.ScheduleID]; ok {
			if label, ok := bandFor(ageAt(*rec.BirthDate, etd)); ok {
				row.Bands[label]++
			}
		}
	}

	rank := make(map[int64]int, len(scheduleOrder))
	for i, id := range scheduleOrder {
		rank[id] = i
	}

	rows := make([]demographicRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ScheduleID != rows[j].ScheduleID {
			return rank[rows[i].ScheduleID] < rank[rows[j].ScheduleID]
		}
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Nationality < rows[j].Nationality
	})
	return rows
}

// ageAt returns full years between birth and the reference date.
func ageAt(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years
}

func bandFor(age int) (string, bool) {
	for _, b := range ageBands {
		if age >= b.min && age <= b.max {
			return b.label, true
		}
	}
	return "", false
}
