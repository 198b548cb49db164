package contract

import "errors"

// Configuration errors: invalid generation or analysis parameters. Fatal,
// surfaced immediately, never retried.
var (
	ErrNoDepartments     = errors.New("no departments configured")
	ErrNonPositiveMonths = errors.New("month count must be positive")
	ErrInvalidThreshold  = errors.New("invalid threshold")
)

// Data format errors: the tabular input is missing expected columns or rows.
// Fatal at analysis start.
var (
	ErrMissingColumn = errors.New("missing expected column")
	ErrEmptySeries   = errors.New("dataset has no rows")
)
