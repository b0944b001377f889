package domain

import "time"

// UnknownNationality is the bucket for passengers without a usable
// nationality category.
const UnknownNationality = "기타"

// PassengerRecord is one manifest entry joined through a confirmed,
// non-cancelled ticket. BirthDate and Sex may be missing; such records
// stay in nationality totals but are excluded from age aggregates.
type PassengerRecord struct {
	ScheduleID  int64
	Nationality string
	BirthDate   *time.Time
	Sex         *string
}
