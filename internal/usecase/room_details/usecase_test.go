package room_details

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
)

type fakeInventory struct {
	roomTallies []domain.RoomTicketTally
	vacant      []domain.RoomDetail
	talliesErr  error
	vacantErr   error

	roomTallyCalls int
}

func (f *fakeInventory) RoomTicketTallies(_ context.Context, _ []int64, _ domain.TicketScope) ([]domain.RoomTicketTally, error) {
	f.roomTallyCalls++
	if f.talliesErr != nil {
		return nil, f.talliesErr
	}
	return f.roomTallies, nil
}

func (f *fakeInventory) VacantRooms(_ context.Context, _ []int64, _ []int64) ([]domain.RoomDetail, error) {
	if f.vacantErr != nil {
		return nil, f.vacantErr
	}
	return f.vacant, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testFleet() *fleet.Config {
	return &fleet.Config{
		Routes: map[string]fleet.Route{
			"BOC": {ID: 1, FirstPort: "PUS", SecondPort: "OSA", Vessel: "PSMC"},
			"TSL": {ID: 5, FirstPort: "PUS", SecondPort: "ICN", Vessel: "PSTL"},
		},
		Vessels: map[string]fleet.Vessel{
			"PSMC": {Name: "뉴그랜드피스", Model: domain.RoomBased, GradeOrder: []string{"BS", "OC"}},
			"PSTL": {Name: "씨플라워", Model: domain.SeatBased, GradeOrder: []string{"STA", "FST"}},
		},
		Capacity: fleet.CapacityTable{Default: 4},
	}
}

func TestExecute_ListsRoomsGroupedByState(t *testing.T) {
	inv := &fakeInventory{
		roomTallies: []domain.RoomTicketTally{
			{ScheduleID: 10, RoomID: 2, RoomNumber: "B201", GradeCode: "OC", BlockedTickets: 2},
			{ScheduleID: 10, RoomID: 1, RoomNumber: "A101", GradeCode: "BS", ConfirmedTickets: 2},
			{ScheduleID: 10, RoomID: 3, RoomNumber: "A102", GradeCode: "BS", ConfirmedTickets: 1, BlockedTickets: 1},
		},
		vacant: []domain.RoomDetail{
			{ScheduleID: 10, GradeCode: "OC", RoomNumber: "B202", State: domain.StateVacant},
		},
	}
	uc := New(inv, testFleet(), nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{RouteCode: "BOC", ScheduleID: 10})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 4)
	// Confirmed first (A102 has mixed tickets and still classifies as
	// confirmed), then blocked, then vacant.
	assert.Equal(t, Room{RoomNumber: "A101", GradeCode: "BS", State: "confirmed", StateLabel: "확정"}, resp.Rooms[0])
	assert.Equal(t, Room{RoomNumber: "A102", GradeCode: "BS", State: "confirmed", StateLabel: "확정"}, resp.Rooms[1])
	assert.Equal(t, Room{RoomNumber: "B201", GradeCode: "OC", State: "blocked", StateLabel: "블록"}, resp.Rooms[2])
	assert.Equal(t, Room{RoomNumber: "B202", GradeCode: "OC", State: "vacant", StateLabel: "공실"}, resp.Rooms[3])
}

func TestExecute_GradeFilter(t *testing.T) {
	inv := &fakeInventory{
		roomTallies: []domain.RoomTicketTally{
			{ScheduleID: 10, RoomNumber: "A101", GradeCode: "BS", ConfirmedTickets: 1},
			{ScheduleID: 10, RoomNumber: "B201", GradeCode: "OC", ConfirmedTickets: 1},
		},
	}
	uc := New(inv, testFleet(), nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{RouteCode: "BOC", ScheduleID: 10, GradeCode: "OC"})
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, "B201", resp.Rooms[0].RoomNumber)
}

func TestExecute_SeatBasedRouteHasNoRooms(t *testing.T) {
	inv := &fakeInventory{}
	uc := New(inv, testFleet(), nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{RouteCode: "TSL", ScheduleID: 20})
	require.NoError(t, err)

	assert.Empty(t, resp.Rooms)
	assert.Zero(t, inv.roomTallyCalls, "seat-based vessels have no room inventory to query")
}

func TestExecute_Validation(t *testing.T) {
	uc := New(&fakeInventory{}, testFleet(), nopLogger{})

	_, err := uc.Execute(context.Background(), Request{ScheduleID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{RouteCode: "BOC"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{RouteCode: "XXX", ScheduleID: 10})
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestExecute_RepositoryErrorWrapped(t *testing.T) {
	inv := &fakeInventory{talliesErr: errors.New("connection refused")}
	uc := New(inv, testFleet(), nopLogger{})

	_, err := uc.Execute(context.Background(), Request{RouteCode: "BOC", ScheduleID: 10})
	assert.ErrorIs(t, err, ErrInternal)
}
