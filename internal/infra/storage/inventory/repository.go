package inventory

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/pkg/psqlbuilder"
)

// cancelledPattern excludes refunded tickets in every predicate.
var cancelledPattern = domain.CancelledStatusPrefix + "%"

// Repository reads room inventory and ticket tallies from the booking
// database. It only groups and counts; occupancy-state classification
// and passenger derivation happen in the usecase layer where they can
// be tested without a database.
type Repository struct {
	db DBExecutor
}

// NewRepository creates the inventory repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// TotalRoomsByGrade returns the physical room count per grade code for
// the given routes. A route with no configured grades yields no keys;
// downstream treats a missing grade as capacity zero.
func (r *Repository) TotalRoomsByGrade(ctx context.Context, routeIDs []int64) (map[string]int, error) {
	query, args, err := psqlbuilder.Select(
		"g.code",
		"COUNT(*)",
	).
		From("rooms r").
		Join("grades g ON r.grade_id = g.id").
		Where(squirrel.Eq{"g.route_id": routeIDs}).
		Where("r.deleted_at IS NULL").
		Where("g.deleted_at IS NULL").
		GroupBy("g.code").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TotalRoomsByGrade - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TotalRoomsByGrade - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var grade string
		var count int
		if err := rows.Scan(&grade, &count); err != nil {
			return nil, fmt.Errorf("%w: TotalRoomsByGrade - scan row: %v", ErrScanRow, err)
		}
		totals[grade] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TotalRoomsByGrade - rows error: %v", ErrScanRow, err)
	}

	return totals, nil
}

// RoomTicketTallies returns, per (schedule, room), the counts of
// non-cancelled confirmed and blocked tickets, with the room's grade.
// Rooms with no remaining ticket after the cancellation filter do not
// appear. The optional scope restricts tickets by arrival schedule.
func (r *Repository) RoomTicketTallies(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.RoomTicketTally, error) {
	builder := psqlbuilder.Select(
		"t.departure_schedule_id",
		"t.on_boarding_room_id",
		"r.room_number",
		"g.code",
		"SUM(CASE WHEN t.is_temporary = FALSE THEN 1 ELSE 0 END)",
		"SUM(CASE WHEN t.is_temporary = TRUE THEN 1 ELSE 0 END)",
	).
		From("tickets t").
		Join("rooms r ON t.on_boarding_room_id = r.id").
		Join("grades g ON r.grade_id = g.id").
		Where(squirrel.Eq{"t.departure_schedule_id": scheduleIDs}).
		Where("t.deleted_at IS NULL").
		Where("r.deleted_at IS NULL").
		Where("g.deleted_at IS NULL").
		Where("t.on_boarding_room_id IS NOT NULL").
		Where(squirrel.NotLike{"t.status": cancelledPattern}).
		GroupBy("t.departure_schedule_id", "t.on_boarding_room_id", "r.room_number", "g.code").
		OrderBy("t.departure_schedule_id", "g.code", "r.room_number")

	if !scope.Unrestricted() {
		builder = builder.Where(squirrel.Eq{"t.arrival_schedule_id": scope.ArrivalScheduleIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: RoomTicketTallies - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RoomTicketTallies - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tallies := make([]domain.RoomTicketTally, 0)
	for rows.Next() {
		var t domain.RoomTicketTally
		if err := rows.Scan(
			&t.ScheduleID,
			&t.RoomID,
			&t.RoomNumber,
			&t.GradeCode,
			&t.ConfirmedTickets,
			&t.BlockedTickets,
		); err != nil {
			return nil, fmt.Errorf("%w: RoomTicketTallies - scan row: %v", ErrScanRow, err)
		}
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RoomTicketTallies - rows error: %v", ErrScanRow, err)
	}

	return tallies, nil
}

// SeatTicketTallies returns, per (schedule, grade), the counts of
// non-cancelled confirmed and blocked tickets for seat-based vessels.
// Seat tickets carry no room, so the grade is reached through the
// ticket's price detail.
func (r *Repository) SeatTicketTallies(ctx context.Context, scheduleIDs []int64, scope domain.TicketScope) ([]domain.SeatTicketTally, error) {
	builder := psqlbuilder.Select(
		"t.departure_schedule_id",
		"g.code",
		"SUM(CASE WHEN t.is_temporary = FALSE THEN 1 ELSE 0 END)",
		"SUM(CASE WHEN t.is_temporary = TRUE THEN 1 ELSE 0 END)",
	).
		From("tickets t").
		Join("ticket_price_details tpd ON t.price_detail_id = tpd.id").
		Join("grades g ON tpd.grade_id = g.id").
		Where(squirrel.Eq{"t.departure_schedule_id": scheduleIDs}).
		Where("t.deleted_at IS NULL").
		Where("g.deleted_at IS NULL").
		Where(squirrel.NotLike{"t.status": cancelledPattern}).
		GroupBy("t.departure_schedule_id", "g.code").
		OrderBy("t.departure_schedule_id", "g.code")

	if !scope.Unrestricted() {
		builder = builder.Where(squirrel.Eq{"t.arrival_schedule_id": scope.ArrivalScheduleIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SeatTicketTallies - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SeatTicketTallies - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tallies := make([]domain.SeatTicketTally, 0)
	for rows.Next() {
		var t domain.SeatTicketTally
		if err := rows.Scan(
			&t.ScheduleID,
			&t.GradeCode,
			&t.ConfirmedTickets,
			&t.BlockedTickets,
		); err != nil {
			return nil, fmt.Errorf("%w: SeatTicketTallies - scan row: %v", ErrScanRow, err)
		}
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SeatTicketTallies - rows error: %v", ErrScanRow, err)
	}

	return tallies, nil
}

// VacantRooms enumerates every (room, schedule) pair of the routes
// with no non-cancelled ticket at all. The detail view needs the unit
// identities, so this is an anti-join over the full cross product of
// rooms and requested schedules, not a count subtraction.
func (r *Repository) VacantRooms(ctx context.Context, routeIDs []int64, scheduleIDs []int64) ([]domain.RoomDetail, error) {
	query, args, err := psqlbuilder.Select(
		"cs.schedule_id",
		"g.code",
		"r.room_number",
	).
		From("rooms r").
		Join("grades g ON r.grade_id = g.id").
		JoinClause(squirrel.Expr("CROSS JOIN UNNEST(?::bigint[]) AS cs(schedule_id)", pq.Array(scheduleIDs))).
		Where(squirrel.Eq{"g.route_id": routeIDs}).
		Where("r.deleted_at IS NULL").
		Where("g.deleted_at IS NULL").
		Where(squirrel.Expr(
			`NOT EXISTS (
				SELECT 1 FROM tickets t
				WHERE t.on_boarding_room_id = r.id
				  AND t.departure_schedule_id = cs.schedule_id
				  AND t.deleted_at IS NULL
				  AND t.status NOT LIKE ?
			)`, cancelledPattern)).
		OrderBy("cs.schedule_id", "g.code", "r.room_number").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: VacantRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: VacantRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]domain.RoomDetail, 0)
	for rows.Next() {
		var d domain.RoomDetail
		if err := rows.Scan(&d.ScheduleID, &d.GradeCode, &d.RoomNumber); err != nil {
			return nil, fmt.Errorf("%w: VacantRooms - scan row: %v", ErrScanRow, err)
		}
		d.State = domain.StateVacant
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: VacantRooms - rows error: %v", ErrScanRow, err)
	}

	return details, nil
}
