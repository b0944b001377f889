package manifest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/pkg/psqlbuilder"
)

var cancelledPattern = domain.CancelledStatusPrefix + "%"

// Repository reads passenger manifest entries from the booking
// database for the demographic export sheet.
type Repository struct {
	db DBExecutor
}

// NewRepository creates the manifest repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// PassengersBySchedule returns one record per passenger joined through
// a confirmed, non-cancelled ticket of the given schedules. Blocked
// tickets carry no finalized manifest entry and are excluded by
// construction. The optional scope restricts tickets by arrival
// schedule, mirroring the occupancy queries.
func (r *Repository) PassengersBySchedule(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.PassengerRecord, error) {
	builder := psqlbuilder.Select(
		"t.departure_schedule_id",
		"p.nationality_category",
		"p.birth_date",
		"p.sex",
	).
		From("tickets t").
		Join("passengers p ON t.passenger_id = p.id").
		Where(squirrel.Eq{"t.departure_schedule_id": scheduleIDs}).
		Where(squirrel.Eq{"t.is_temporary": false}).
		Where("t.deleted_at IS NULL").
		Where("p.deleted_at IS NULL").
		Where(squirrel.NotLike{"t.status": cancelledPattern}).
		OrderBy("t.departure_schedule_id")

	if !scope.Unrestricted() {
		builder = builder.Where(squirrel.Eq{"t.arrival_schedule_id": scope.ArrivalScheduleIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PassengersBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: PassengersBySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.PassengerRecord, 0)
	for rows.Next() {
		var rec domain.PassengerRecord
		var nationality sql.NullString
		var birthDate sql.NullTime
		var sex sql.NullString

		if err := rows.Scan(&rec.ScheduleID, &nationality, &birthDate, &sex); err != nil {
			return nil, fmt.Errorf("%w: PassengersBySchedule - scan row: %v", ErrScanRow, err)
		}

		rec.Nationality = domain.UnknownNationality
		if nationality.Valid && nationality.String != "" {
			rec.Nationality = nationality.String
		}
		if birthDate.Valid {
			bd := birthDate.Time
			rec.BirthDate = &bd
		}
		if sex.Valid {
			s := sex.String
			rec.Sex = &s
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: PassengersBySchedule - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
