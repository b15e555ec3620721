package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Class tags a journal line with the kind of entry it belongs to:
// day-to-day bookkeeping, period-end adjustment, or period close.
type Class string

const (
	ClassGeneral    Class = "general"
	ClassAdjustment Class = "adjustment"
	ClassClosing    Class = "closing"
)

// Tolerance is the absolute tolerance used for every monetary comparison.
// Amounts within 0.01 of each other are considered equal.
var Tolerance = decimal.New(1, -2)

// Line is a single posted journal row. Lines sharing a ReferenceCode form
// one logical transaction and must balance at posting time. Lines are
// immutable in normal operation.
type Line struct {
	ID            uuid.UUID
	Date          time.Time
	AccountCode   string
	AccountName   string // denormalized from the chart of accounts
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Class         Class
	ReferenceCode string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Movement returns the signed cash-style movement of the line, debit minus credit.
func (l *Line) Movement() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// ListFilter narrows a journal query. Nil/empty fields are ignored.
type ListFilter struct {
	Classes       []Class
	StartDate     *time.Time
	EndDate       *time.Time
	AccountCode   *string
	ReferenceCode *string
}

// WithinTolerance reports whether a and b differ by less than Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(Tolerance) < 0
}
