// Package dbmetrics wraps *sql.DB so every query is timed and counted
// in Prometheus, labeled with the logical database name. Repositories
// depend on the DBExecutor interface and work with either a bare
// *sql.DB or a wrapped one.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/neohelios/occupancy-dashboard/pkg/metrics"
)

// DBExecutor is the read-side query surface the repositories need.
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB wraps a *sql.DB with query metrics.
type DB struct {
	db       *sql.DB
	metrics  *metrics.Metrics
	database string
}

// Wrap returns a metered executor for the given logical database name.
func Wrap(db *sql.DB, m *metrics.Metrics, database string) *DB {
	return &DB{db: db, metrics: m, database: database}
}

// WrapWithPoolStats wraps the DB and starts a goroutine publishing
// connection-pool gauges every interval until stopCh closes.
func WrapWithPoolStats(db *sql.DB, m *metrics.Metrics, database string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, database)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBPoolOpenConns.WithLabelValues(database).Set(float64(stats.OpenConnections))
				m.DBPoolIdleConns.WithLabelValues(database).Set(float64(stats.Idle))
			case <-stopCh:
				return
			}
		}
	}()
	return wrapped
}

// QueryContext runs a query and records its duration and outcome.
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(d.database, time.Since(start), err)
	return rows, err
}

// QueryRowContext runs a single-row query and records its duration.
// Scan errors surface later on the returned row and are not counted
// here.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(d.database, time.Since(start), nil)
	return row
}

var _ DBExecutor = (*DB)(nil)
var _ DBExecutor = (*sql.DB)(nil)
