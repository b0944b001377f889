package build_report

import (
	"context"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/internal/fleet"
)

// occupancyModel is the per-vessel counting strategy, chosen once at
// pipeline start instead of re-branching on the vessel type at every
// call site.
type occupancyModel interface {
	// Classify aggregates room (or seat) counts per (schedule, grade).
	Classify(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.RoomCount, error)
	// DerivePassengers aggregates passenger counts per (schedule, grade).
	DerivePassengers(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.PassengerCount, error)
	// HasVacancy reports whether vacancy/remaining are defined.
	HasVacancy() bool
}

// newOccupancyModel selects the model for a vessel.
func newOccupancyModel(kind domain.OccupancyModelKind, inventory InventoryRepository, totals map[string]int, capacity fleet.CapacityTable) occupancyModel {
	if kind == domain.SeatBased {
		return &seatBackedModel{inventory: inventory}
	}
	return &unitBackedModel{inventory: inventory, totals: totals, capacity: capacity}
}

// unitBackedModel counts discrete rooms. Both Classify and
// DerivePassengers reduce the same per-room ticket tallies, fetched
// once per pipeline run.
type unitBackedModel struct {
	inventory InventoryRepository
	totals    map[string]int
	capacity  fleet.CapacityTable

	tallies []domain.RoomTicketTally
	fetched bool
}

func (m *unitBackedModel) HasVacancy() bool { return true }

func (m *unitBackedModel) load(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) error {
	if m.fetched {
		return nil
	}
	tallies, err := m.inventory.RoomTicketTallies(ctx, scheduleIDs, scope)
	if err != nil {
		return err
	}
	m.tallies = tallies
	m.fetched = true
	return nil
}

// Classify reduces per-room tallies to room counts. A room carrying
// any confirmed ticket counts as confirmed even when block tickets sit
// on it too; vacant is the residual against the grade's total room
// count, floored at zero.
func (m *unitBackedModel) Classify(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.RoomCount, error) {
	if err := m.load(ctx, scheduleIDs, scope); err != nil {
		return nil, err
	}

	counts := make(map[domain.ScheduleGrade]domain.RoomCount)
	for _, t := range m.tallies {
		key := domain.ScheduleGrade{ScheduleID: t.ScheduleID, GradeCode: t.GradeCode}
		c := counts[key]
		switch t.State() {
		case domain.StateConfirmed:
			c.Confirmed++
		case domain.StateBlocked:
			c.Blocked++
		}
		counts[key] = c
	}

	// Every configured grade gets an entry per schedule so vacancy is
	// reported even for fully empty grades. Grades booked in the data
	// but missing from the inventory keep vacant = 0.
	for _, scheduleID := range scheduleIDs {
		for grade, total := range m.totals {
			key := domain.ScheduleGrade{ScheduleID: scheduleID, GradeCode: grade}
			c := counts[key]
			vacant := total - c.Confirmed - c.Blocked
			if vacant < 0 {
				vacant = 0
			}
			c.Vacant = vacant
			counts[key] = c
		}
	}

	return counts, nil
}

// DerivePassengers counts confirmed passengers by ticket and blocked
// passengers by capacity-capped per-room block tallies: a room cannot
// represent more blocked passengers than its rated capacity, however
// many hold tickets were written against it. Remaining is the
// passenger headroom against total capacity, floored at zero.
func (m *unitBackedModel) DerivePassengers(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.PassengerCount, error) {
	if err := m.load(ctx, scheduleIDs, scope); err != nil {
		return nil, err
	}

	counts := make(map[domain.ScheduleGrade]domain.PassengerCount)
	for _, t := range m.tallies {
		key := domain.ScheduleGrade{ScheduleID: t.ScheduleID, GradeCode: t.GradeCode}
		c := counts[key]
		c.Confirmed += t.ConfirmedTickets
		if t.BlockedTickets > 0 {
			contribution := t.BlockedTickets
			if limit := m.capacity.For(t.GradeCode); contribution > limit {
				contribution = limit
			}
			c.Blocked += contribution
		}
		counts[key] = c
	}

	for _, scheduleID := range scheduleIDs {
		for grade, totalRooms := range m.totals {
			key := domain.ScheduleGrade{ScheduleID: scheduleID, GradeCode: grade}
			c := counts[key]
			remaining := totalRooms*m.capacity.For(grade) - c.Confirmed - c.Blocked
			if remaining < 0 {
				remaining = 0
			}
			c.Remaining = remaining
			counts[key] = c
		}
	}

	return counts, nil
}

// seatBackedModel counts tickets directly: one ticket is one passenger
// and there is no enumerable inventory, so vacancy and remaining stay
// undefined. With no unit to arbitrate, no confirmed-over-blocked
// precedence applies either.
type seatBackedModel struct {
	inventory InventoryRepository

	tallies []domain.SeatTicketTally
	fetched bool
}

func (m *seatBackedModel) HasVacancy() bool { return false }

func (m *seatBackedModel) load(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) error {
	if m.fetched {
		return nil
	}
	tallies, err := m.inventory.SeatTicketTallies(ctx, scheduleIDs, scope)
	if err != nil {
		return err
	}
	m.tallies = tallies
	m.fetched = true
	return nil
}

func (m *seatBackedModel) Classify(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.RoomCount, error) {
	if err := m.load(ctx, scheduleIDs, scope); err != nil {
		return nil, err
	}

	counts := make(map[domain.ScheduleGrade]domain.RoomCount)
	for _, t := range m.tallies {
		key := domain.ScheduleGrade{ScheduleID: t.ScheduleID, GradeCode: t.GradeCode}
		c := counts[key]
		c.Confirmed += t.ConfirmedTickets
		c.Blocked += t.BlockedTickets
		counts[key] = c
	}
	return counts, nil
}

func (m *seatBackedModel) DerivePassengers(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) (map[domain.ScheduleGrade]domain.PassengerCount, error) {
	if err := m.load(ctx, scheduleIDs, scope); err != nil {
		return nil, err
	}

	counts := make(map[domain.ScheduleGrade]domain.PassengerCount)
	for _, t := range m.tallies {
		key := domain.ScheduleGrade{ScheduleID: t.ScheduleID, GradeCode: t.GradeCode}
		c := counts[key]
		c.Confirmed += t.ConfirmedTickets
		c.Blocked += t.BlockedTickets
		counts[key] = c
	}
	return counts, nil
}
