package schedule

import "errors"

var (
	// ErrBuildQuery is returned when a SQL query cannot be built.
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails to execute.
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
