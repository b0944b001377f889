package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// Direction codes as stored on voyages. Every route has exactly two:
// outbound (first port -> second port) and inbound (the opposite leg).
const (
	DirectionOutbound = "E"
	DirectionInbound  = "W"
)

// PortWildcard is the origin/destination selection meaning "any port".
const PortWildcard = "ALL"

// TotalGradeCode is the synthetic pseudo-grade summing all real grades
// of a schedule. It always leads the column order.
const TotalGradeCode = "TOTAL"

// CancelledStatusPrefix marks refunded tickets. Any ticket whose status
// carries this prefix is excluded from every aggregate.
const CancelledStatusPrefix = "REFUND"

// koreanWeekdays is indexed by time.Weekday (Sunday = 0).
var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}
