package queries

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExportOrdersCSVQueryIsNotConstructed = errors.New(
	"ExportOrdersCSVQuery must be created via NewExportOrdersCSVQuery constructor",
)

// ExportOrdersCSVQuery exports the orders created within [from, to) as CSV
// for back-office reconciliation.
type ExportOrdersCSVQuery struct {
	guard guard.ConstructorGuard

	from time.Time
	to   time.Time
}

// NewExportOrdersCSVQuery creates an export query for the given half-open
// time range.
func NewExportOrdersCSVQuery(from, to time.Time) (ExportOrdersCSVQuery, error) {
	if from.IsZero() || to.IsZero() {
		return ExportOrdersCSVQuery{}, errs.NewValueIsRequiredError("export time range")
	}
	if !from.Before(to) {
		return ExportOrdersCSVQuery{}, errs.NewValueIsInvalidError("export time range is invalid")
	}

	return ExportOrdersCSVQuery{
		guard: guard.NewConstructorGuard(),
		from:  from,
		to:    to,
	}, nil
}

// From returns the inclusive start of the range.
func (q ExportOrdersCSVQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the range.
func (q ExportOrdersCSVQuery) To() time.Time {
	return q.to
}

// Validate ensures the query was created through the constructor.
func (q ExportOrdersCSVQuery) Validate() error {
	return q.guard.Validate(ErrExportOrdersCSVQueryIsNotConstructed)
}
