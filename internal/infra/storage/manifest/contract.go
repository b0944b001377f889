package manifest

import "github.com/neohelios/occupancy-dashboard/pkg/dbmetrics"

// DBExecutor is the query surface from dbmetrics, satisfied by both
// *sql.DB and the metered wrapper.
type DBExecutor = dbmetrics.DBExecutor
