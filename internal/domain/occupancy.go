package domain

// OccupancyModelKind selects how a vessel's inventory is counted.
type OccupancyModelKind string

const (
	// RoomBased vessels assign passengers into discrete cabins with
	// fixed per-grade inventory; vacancy is enumerable.
	RoomBased OccupancyModelKind = "room_based"
	// SeatBased vessels sell one ticket per passenger with no
	// enumerable unit inventory; vacancy is undefined.
	SeatBased OccupancyModelKind = "seat_based"
)

// OccupancyState is the derived per-unit state for one schedule.
type OccupancyState string

const (
	StateConfirmed OccupancyState = "confirmed"
	StateBlocked   OccupancyState = "blocked"
	StateVacant    OccupancyState = "vacant"
)

// Label returns the Korean display label used by the detail view and
// the export.
func (s OccupancyState) Label() string {
	switch s {
	case StateConfirmed:
		return "확정"
	case StateBlocked:
		return "블록"
	case StateVacant:
		return "공실"
	default:
		return string(s)
	}
}

// ScheduleGrade keys per-grade aggregates within one query result.
type ScheduleGrade struct {
	ScheduleID int64
	GradeCode  string
}

// RoomTicketTally is one (schedule, room) pair with its non-cancelled
// ticket counts, as grouped by the booking database. Cancelled tickets
// never reach a tally.
type RoomTicketTally struct {
	ScheduleID       int64
	RoomID           int64
	RoomNumber       string
	GradeCode        string
	ConfirmedTickets int
	BlockedTickets   int
}

// State classifies the room. A room carrying both confirmed and
// blocked tickets counts as confirmed: mixed occupancy never downgrades
// to a block.
func (t RoomTicketTally) State() OccupancyState {
	if t.ConfirmedTickets > 0 {
		return StateConfirmed
	}
	return StateBlocked
}

// SeatTicketTally is one (schedule, grade) pair with its non-cancelled
// ticket counts for seat-based vessels, where the grade is reached
// through the ticket's price detail rather than a room.
type SeatTicketTally struct {
	ScheduleID       int64
	GradeCode        string
	ConfirmedTickets int
	BlockedTickets   int
}

// RoomCount is the classified room aggregate for one (schedule, grade).
type RoomCount struct {
	Confirmed int
	Blocked   int
	Vacant    int
}

// PassengerCount is the derived passenger aggregate for one
// (schedule, grade). Remaining is only meaningful for room-based
// vessels.
type PassengerCount struct {
	Confirmed int
	Blocked   int
	Remaining int
}

// RoomDetail is one unit's state for the audit/detail view.
type RoomDetail struct {
	ScheduleID int64
	GradeCode  string
	RoomNumber string
	State      OccupancyState
}
