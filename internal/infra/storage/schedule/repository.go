package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/neohelios/occupancy-dashboard/internal/domain"
	"github.com/neohelios/occupancy-dashboard/pkg/psqlbuilder"
)

// Repository reads sailings and their voyage/port metadata from the
// scheduling database. All reads are snapshots; nothing is written.
type Repository struct {
	db DBExecutor
}

// NewRepository creates the scheduling repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDirection fetches the sailings of one route and one direction
// inside an inclusive calendar-date window, ordered by departure time.
// An empty result is valid and returns an empty slice. Callers that
// query several directions concatenate the results and deduplicate.
func (r *Repository) ListByDirection(ctx context.Context, routeID int64, direction string, rng domain.DateRange) ([]domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(
		"cs.id",
		"cs.etd",
		"voy.route_id",
		"voy.direction",
		"cs.departure_port_id",
		"dp.code",
		"cs.arrival_port_id",
		"ap.code",
	).
		From("coastal_schedules cs").
		Join("proforma_schedules ps ON cs.proforma_schedule_id = ps.id").
		Join("voyages voy ON ps.voyage_id = voy.id").
		Join("ports dp ON cs.departure_port_id = dp.id").
		Join("ports ap ON cs.arrival_port_id = ap.id").
		Where(squirrel.Eq{"voy.route_id": routeID}).
		Where(squirrel.Eq{"voy.direction": direction}).
		Where(squirrel.Expr("CAST(cs.etd AS DATE) BETWEEN ? AND ?",
			rng.Start.Format(domain.DateFormat), rng.End.Format(domain.DateFormat))).
		Where("cs.deleted_at IS NULL").
		Where(squirrel.Eq{"cs.is_cruise_available": true}).
		OrderBy("cs.etd ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDirection - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDirection - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(
			&s.ID,
			&s.ETD,
			&s.RouteID,
			&s.Direction,
			&s.DeparturePortID,
			&s.DeparturePortCode,
			&s.ArrivalPortID,
			&s.ArrivalPortCode,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByDirection - scan schedule: %v", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDirection - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// ArrivalScheduleIDsForPort returns the IDs of the route's sailings in
// the window that arrive at the given port. Routes with a three-port
// itinerary use this to scope tickets by their arrival schedule, since
// the generic two-port direction codes cannot express the middle leg.
func (r *Repository) ArrivalScheduleIDsForPort(ctx context.Context, routeID int64, portID int64, rng domain.DateRange) ([]int64, error) {
	query, args, err := psqlbuilder.Select("cs.id").
		From("coastal_schedules cs").
		Join("proforma_schedules ps ON cs.proforma_schedule_id = ps.id").
		Join("voyages voy ON ps.voyage_id = voy.id").
		Where(squirrel.Eq{"voy.route_id": routeID}).
		Where(squirrel.Eq{"cs.arrival_port_id": portID}).
		Where(squirrel.Expr("CAST(cs.etd AS DATE) BETWEEN ? AND ?",
			rng.Start.Format(domain.DateFormat), rng.End.Format(domain.DateFormat))).
		Where("cs.deleted_at IS NULL").
		OrderBy("cs.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ArrivalScheduleIDsForPort - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ArrivalScheduleIDsForPort - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ArrivalScheduleIDsForPort - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ArrivalScheduleIDsForPort - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ListVessels returns the cruise-capable vessels, for the UI filter
// options.
func (r *Repository) ListVessels(ctx context.Context) ([]domain.VesselInfo, error) {
	query, args, err := psqlbuilder.Select("id", "code", "name").
		From("vessels").
		Where("deleted_at IS NULL").
		Where(squirrel.Eq{"is_cruise_available": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListVessels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVessels - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vessels := make([]domain.VesselInfo, 0)
	for rows.Next() {
		var v domain.VesselInfo
		if err := rows.Scan(&v.ID, &v.Code, &v.Name); err != nil {
			return nil, fmt.Errorf("%w: ListVessels - scan vessel: %v", ErrScanRow, err)
		}
		vessels = append(vessels, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVessels - rows error: %v", ErrScanRow, err)
	}

	return vessels, nil
}
