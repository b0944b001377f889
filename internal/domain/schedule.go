package domain

import (
	"fmt"
	"time"
)

// Schedule is one sailing instance, read as an immutable snapshot from
// the scheduling database. It is never mutated after loading.
type Schedule struct {
	ID                int64
	ETD               time.Time
	RouteID           int64
	Direction         string
	DeparturePortID   int64
	DeparturePortCode string
	ArrivalPortID     int64
	ArrivalPortCode   string
}

// DateKey returns the calendar date of departure in DateFormat.
func (s Schedule) DateKey() string {
	return s.ETD.Format(DateFormat)
}

// DateLabel returns the Korean display label for the departure date,
// e.g. "11월 01일 (토)". When withTime is set the HH:MM departure time
// is appended, for days with more than one sailing.
func (s Schedule) DateLabel(withTime bool) string {
	label := fmt.Sprintf("%02d월 %02d일 (%s)",
		int(s.ETD.Month()), s.ETD.Day(), koreanWeekdays[s.ETD.Weekday()])
	if withTime {
		label += " " + s.ETD.Format(TimeFormat)
	}
	return label
}

// DateRange is an inclusive calendar-date window. Start and End carry
// date precision only; Start == End selects exactly one day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the range is well-formed.
func (r DateRange) IsValid() bool {
	return !r.End.Before(r.Start)
}

// VesselInfo is a vessel row from the scheduling database, used to
// populate the UI filter options.
type VesselInfo struct {
	ID   int64
	Code string
	Name string
}
