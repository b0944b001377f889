package build_report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
)

func etd(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func schedule(id int64, at string) domain.Schedule {
	return domain.Schedule{ID: id, ETD: etd(at), DeparturePortCode: "PUS", ArrivalPortCode: "OSA"}
}

func TestBuildMatrix_TenRoomScenario(t *testing.T) {
	schedules := []domain.Schedule{schedule(10, "2025-11-01 19:00")}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "OC"): {Confirmed: 3, Blocked: 1, Vacant: 6},
	}
	pax := map[domain.ScheduleGrade]domain.PassengerCount{
		sg(10, "OC"): {Confirmed: 5, Blocked: 2, Remaining: 13},
	}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"BS", "OC"}, schedules, rooms, pax)

	require.Len(t, m.Rows, 1)
	assert.Equal(t, []string{domain.TotalGradeCode, "OC"}, m.Grades)

	total := m.Rows[0].Total()
	assert.Equal(t, 3, total.RoomsConfirmed)
	assert.Equal(t, 1, total.RoomsBlocked)
	assert.Equal(t, 6, total.RoomsVacant)
	assert.Equal(t, 5, total.PaxConfirmed)
	assert.Equal(t, 13, total.PaxRemaining)
}

func TestBuildMatrix_DropsEmptySchedules(t *testing.T) {
	schedules := []domain.Schedule{
		schedule(10, "2025-11-01 19:00"),
		schedule(11, "2025-11-02 19:00"),
	}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "OC"): {Confirmed: 1, Vacant: 9},
		// Schedule 11 has vacancy only. Vacancy alone does not keep a
		// row on the report.
		sg(11, "OC"): {Vacant: 10},
	}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"OC"}, schedules, rooms, nil)

	require.Len(t, m.Rows, 1)
	assert.Equal(t, int64(10), m.Rows[0].ScheduleID)
}

func TestBuildMatrix_RowsSortedByDeparture(t *testing.T) {
	schedules := []domain.Schedule{
		schedule(12, "2025-11-03 19:00"),
		schedule(10, "2025-11-01 19:00"),
		schedule(11, "2025-11-02 19:00"),
	}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "OC"): {Confirmed: 1},
		sg(11, "OC"): {Confirmed: 1},
		sg(12, "OC"): {Confirmed: 1},
	}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"OC"}, schedules, rooms, nil)

	assert.Equal(t, []int64{10, 11, 12}, m.ScheduleIDs())
}

func TestBuildMatrix_DateLabelsPlainForUniqueDates(t *testing.T) {
	schedules := []domain.Schedule{schedule(10, "2025-11-01 19:00")}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{sg(10, "OC"): {Confirmed: 1}}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"OC"}, schedules, rooms, nil)

	// 2025-11-01 is a Saturday.
	assert.Equal(t, "11월 01일 (토)", m.Rows[0].DateLabel)
}

func TestBuildMatrix_TimeSuffixIsGlobalWhenAnyDateRepeats(t *testing.T) {
	schedules := []domain.Schedule{
		schedule(10, "2025-11-01 09:00"),
		schedule(11, "2025-11-01 19:00"),
		schedule(12, "2025-11-02 19:00"),
	}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "OC"): {Confirmed: 1},
		sg(11, "OC"): {Confirmed: 1},
		sg(12, "OC"): {Confirmed: 1},
	}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"OC"}, schedules, rooms, nil)

	require.Len(t, m.Rows, 3)
	assert.Equal(t, "11월 01일 (토) 09:00", m.Rows[0].DateLabel)
	assert.Equal(t, "11월 01일 (토) 19:00", m.Rows[1].DateLabel)
	// The date without a twin still carries the suffix once the toggle
	// is on.
	assert.Equal(t, "11월 02일 (일) 19:00", m.Rows[2].DateLabel)
}

func TestBuildMatrix_GradeColumnsFollowCanonicalOrder(t *testing.T) {
	schedules := []domain.Schedule{schedule(10, "2025-11-01 19:00")}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "DA"): {Confirmed: 1},
		sg(10, "BS"): {Confirmed: 1},
		sg(10, "OC"): {Confirmed: 1},
	}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased,
		[]string{"BS", "OC", "IC", "RS", "GR", "PR", "OR", "DA"}, schedules, rooms, nil)

	assert.Equal(t, []string{domain.TotalGradeCode, "BS", "OC", "DA"}, m.Grades)
}

func TestBuildMatrix_UnknownGradesAppendedSorted(t *testing.T) {
	schedules := []domain.Schedule{schedule(10, "2025-11-01 19:00")}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "ZZ"): {Confirmed: 1},
		sg(10, "AA"): {Confirmed: 1},
		sg(10, "OC"): {Confirmed: 1},
	}

	m := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"BS", "OC"}, schedules, rooms, nil)

	assert.Equal(t, []string{domain.TotalGradeCode, "OC", "AA", "ZZ"}, m.Grades)
}

func TestBuildMatrix_Deterministic(t *testing.T) {
	schedules := []domain.Schedule{
		schedule(10, "2025-11-01 19:00"),
		schedule(11, "2025-11-02 19:00"),
	}
	rooms := map[domain.ScheduleGrade]domain.RoomCount{
		sg(10, "OC"): {Confirmed: 2, Vacant: 8},
		sg(11, "BS"): {Blocked: 1, Vacant: 3},
	}
	pax := map[domain.ScheduleGrade]domain.PassengerCount{
		sg(10, "OC"): {Confirmed: 4, Remaining: 16},
		sg(11, "BS"): {Blocked: 2, Remaining: 6},
	}

	first := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"BS", "OC"}, schedules, rooms, pax)
	second := buildMatrix("BOC", "PSMC", domain.RoomBased, []string{"BS", "OC"}, schedules, rooms, pax)

	assert.Equal(t, first, second)
}
