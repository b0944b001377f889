package export

import "errors"

var (
	// ErrInternal wraps repository and workbook assembly failures.
	ErrInternal = errors.New("export: internal error")
)
