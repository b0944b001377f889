package build_report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
)

type fakeSchedules struct {
	byDirection map[string][]domain.Schedule
	arrivalIDs  []int64
	listErr     error
	arrivalErr  error
}

func (f *fakeSchedules) ListByDirection(_ context.Context, _ int64, direction string, _ domain.DateRange) ([]domain.Schedule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byDirection[direction], nil
}

func (f *fakeSchedules) ArrivalScheduleIDsForPort(_ context.Context, _ int64, _ int64, _ domain.DateRange) ([]int64, error) {
	if f.arrivalErr != nil {
		return nil, f.arrivalErr
	}
	return f.arrivalIDs, nil
}

type fakeInventory struct {
	totals      map[string]int
	roomTallies []domain.RoomTicketTally
	seatTallies []domain.SeatTicketTally

	roomTallyCalls int
	lastScope      domain.TicketScope
	totalsErr      error
	talliesErr     error
}

func (f *fakeInventory) TotalRoomsByGrade(_ context.Context, _ []int64) (map[string]int, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	return f.totals, nil
}

func (f *fakeInventory) RoomTicketTallies(_ context.Context, _ []int64, scope domain.TicketScope) ([]domain.RoomTicketTally, error) {
	f.roomTallyCalls++
	f.lastScope = scope
	if f.talliesErr != nil {
		return nil, f.talliesErr
	}
	return f.roomTallies, nil
}

func (f *fakeInventory) SeatTicketTallies(_ context.Context, _ []int64, scope domain.TicketScope) ([]domain.SeatTicketTally, error) {
	f.lastScope = scope
	if f.talliesErr != nil {
		return nil, f.talliesErr
	}
	return f.seatTallies, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testFleet() *fleet.Config {
	return &fleet.Config{
		Routes: map[string]fleet.Route{
			"BOC": {ID: 1, FirstPort: "PUS", SecondPort: "OSA", Vessel: "PSMC"},
			"KSC": {ID: 3, FirstPort: "PUS", SecondPort: "TSM", ViaPort: "YSU", ViaPortID: 7, Vessel: "PSMC"},
			"TSL": {ID: 5, FirstPort: "PUS", SecondPort: "ICN", Vessel: "PSTL"},
		},
		Vessels: map[string]fleet.Vessel{
			"PSMC": {Name: "뉴그랜드피스", Model: domain.RoomBased, GradeOrder: []string{"BS", "OC", "IC", "RS", "GR", "PR", "OR", "DA"}},
			"PSTL": {Name: "씨플라워", Model: domain.SeatBased, GradeOrder: []string{"STA", "FST"}},
		},
		Capacity: testCapacity(),
	}
}

func validRequest(route string) Request {
	return Request{
		RouteCode: route,
		Range:     domain.DateRange{Start: day("2025-11-01"), End: day("2025-11-30")},
	}
}

func TestExecute_UnknownRoute(t *testing.T) {
	uc := New(&fakeSchedules{}, &fakeInventory{}, testFleet(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest("XXX"))

	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestExecute_NoSchedulesYieldsEmptyMatrix(t *testing.T) {
	uc := New(&fakeSchedules{}, &fakeInventory{}, testFleet(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest("BOC"))

	require.NoError(t, err)
	assert.True(t, resp.Empty())
	assert.Equal(t, "BOC", resp.Matrix.RouteCode)
	assert.Equal(t, []string{domain.TotalGradeCode}, resp.Matrix.Grades)
}

func TestExecute_DeduplicatesSchedulesAcrossDirections(t *testing.T) {
	shared := schedule(10, "2025-11-01 19:00")
	schedules := &fakeSchedules{byDirection: map[string][]domain.Schedule{
		"E": {shared, schedule(11, "2025-11-02 19:00")},
		"W": {shared},
	}}
	inv := &fakeInventory{
		totals: map[string]int{"OC": 10},
		roomTallies: []domain.RoomTicketTally{
			{ScheduleID: 10, RoomID: 1, GradeCode: "OC", ConfirmedTickets: 1},
			{ScheduleID: 11, RoomID: 2, GradeCode: "OC", ConfirmedTickets: 1},
		},
	}
	uc := New(schedules, inv, testFleet(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest("BOC"))

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, resp.Matrix.ScheduleIDs())
}

func TestExecute_SingleDirectionForConcreteLeg(t *testing.T) {
	schedules := &fakeSchedules{byDirection: map[string][]domain.Schedule{
		"E": {schedule(10, "2025-11-01 19:00")},
		"W": {schedule(11, "2025-11-02 19:00")},
	}}
	inv := &fakeInventory{
		totals: map[string]int{"OC": 10},
		roomTallies: []domain.RoomTicketTally{
			{ScheduleID: 10, RoomID: 1, GradeCode: "OC", ConfirmedTickets: 1},
			{ScheduleID: 11, RoomID: 2, GradeCode: "OC", ConfirmedTickets: 1},
		},
	}
	uc := New(schedules, inv, testFleet(), nil, nopLogger{})

	req := validRequest("BOC")
	req.Origin = "PUS"
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, resp.Matrix.ScheduleIDs())
}

func TestExecute_ViaPortOriginFiltersByDeparturePortID(t *testing.T) {
	fromVia := schedule(10, "2025-11-01 19:00")
	fromVia.DeparturePortID = 7
	fromElsewhere := schedule(11, "2025-11-02 19:00")
	fromElsewhere.DeparturePortID = 1

	schedules := &fakeSchedules{byDirection: map[string][]domain.Schedule{
		"E": {fromVia},
		"W": {fromElsewhere},
	}}
	inv := &fakeInventory{
		totals: map[string]int{"OC": 10},
		roomTallies: []domain.RoomTicketTally{
			{ScheduleID: 10, RoomID: 1, GradeCode: "OC", ConfirmedTickets: 1},
		},
	}
	uc := New(schedules, inv, testFleet(), nil, nopLogger{})

	req := validRequest("KSC")
	req.Origin = "YSU"
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, resp.Matrix.ScheduleIDs())
}

func TestExecute_ViaPortDestinationScopesTickets(t *testing.T) {
	schedules := &fakeSchedules{
		byDirection: map[string][]domain.Schedule{"E": {schedule(10, "2025-11-01 19:00")}},
		arrivalIDs:  []int64{77, 78},
	}
	inv := &fakeInventory{
		totals: map[string]int{"OC": 10},
		roomTallies: []domain.RoomTicketTally{
			{ScheduleID: 10, RoomID: 1, GradeCode: "OC", ConfirmedTickets: 1},
		},
	}
	uc := New(schedules, inv, testFleet(), nil, nopLogger{})

	req := validRequest("KSC")
	req.Destination = "YSU"
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []int64{77, 78}, resp.Scope.ArrivalScheduleIDs)
	assert.Equal(t, []int64{77, 78}, inv.lastScope.ArrivalScheduleIDs)
}

func TestExecute_EmptyArrivalScopeShortCircuitsToZeroCounts(t *testing.T) {
	schedules := &fakeSchedules{
		byDirection: map[string][]domain.Schedule{"E": {schedule(10, "2025-11-01 19:00")}},
		arrivalIDs:  []int64{},
	}
	inv := &fakeInventory{totals: map[string]int{"OC": 10}}
	uc := New(schedules, inv, testFleet(), nil, nopLogger{})

	req := validRequest("KSC")
	req.Destination = "YSU"
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Empty())
	assert.Zero(t, inv.roomTallyCalls, "booking queries must be skipped for an impossible scope")
}

func TestExecute_SeatBasedRoute(t *testing.T) {
	schedules := &fakeSchedules{byDirection: map[string][]domain.Schedule{
		"E": {schedule(20, "2025-11-01 09:00")},
	}}
	inv := &fakeInventory{
		seatTallies: []domain.SeatTicketTally{
			{ScheduleID: 20, GradeCode: "STA", ConfirmedTickets: 50, BlockedTickets: 5},
		},
	}
	uc := New(schedules, inv, testFleet(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest("TSL"))

	require.NoError(t, err)
	require.Len(t, resp.Matrix.Rows, 1)
	assert.False(t, resp.Matrix.HasVacancy())

	total := resp.Matrix.Rows[0].Total()
	assert.Equal(t, 50, total.RoomsConfirmed)
	assert.Equal(t, 50, total.PaxConfirmed)
	assert.Equal(t, 5, total.PaxBlocked)
}

func TestExecute_RepositoryErrorsAbortTheBuild(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("schedule load", func(t *testing.T) {
		uc := New(&fakeSchedules{listErr: boom}, &fakeInventory{}, testFleet(), nil, nopLogger{})
		_, err := uc.Execute(context.Background(), validRequest("BOC"))
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("tallies load", func(t *testing.T) {
		schedules := &fakeSchedules{byDirection: map[string][]domain.Schedule{
			"E": {schedule(10, "2025-11-01 19:00")},
		}}
		inv := &fakeInventory{totals: map[string]int{"OC": 10}, talliesErr: boom}
		uc := New(schedules, inv, testFleet(), nil, nopLogger{})
		_, err := uc.Execute(context.Background(), validRequest("BOC"))
		assert.ErrorIs(t, err, ErrInternal)
	})
}
