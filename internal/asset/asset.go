// Package asset keeps the fixed-asset register and derives depreciation
// schedules. Posting a period's depreciation produces a balanced
// adjustment entry (debit expense, credit accumulated depreciation)
// through the journal, then rolls the register forward.
package asset

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method selects how an asset's cost is spread over its useful life.
type Method string

const (
	MethodStraightLine     Method = "straight_line"
	MethodDecliningBalance Method = "declining_balance"
	MethodSumOfYears       Method = "sum_of_years"
)

// Valid reports whether the method is one of the known methods.
func (m Method) Valid() bool {
	switch m {
	case MethodStraightLine, MethodDecliningBalance, MethodSumOfYears:
		return true
	}

	return false
}

// Asset is one entry in the fixed-asset register. ExpenseAccountCode and
// AccumulatedAccountCode point into the chart of accounts; the
// accumulated account is a credit-normal contra asset.
type Asset struct {
	Code            string
	Name            string
	Cost            decimal.Decimal
	SalvageValue    decimal.Decimal
	UsefulLifeYears int
	Method          Method
	PurchaseDate    time.Time

	ExpenseAccountCode     string
	AccumulatedAccountCode string

	AccumulatedDepreciation decimal.Decimal

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// BookValue is cost less accumulated depreciation.
func (a *Asset) BookValue() decimal.Decimal {
	return a.Cost.Sub(a.AccumulatedDepreciation)
}

// ScheduleEntry is one year of an asset's depreciation schedule. Year is
// 1-based.
type ScheduleEntry struct {
	Year        int
	Expense     decimal.Decimal
	Accumulated decimal.Decimal
	BookValue   decimal.Decimal
}

// Schedule derives the full depreciation schedule from the register
// fields. Per-year amounts are rounded to two places; the final year
// absorbs the rounding remainder so the closing book value lands exactly
// on the salvage value.
func (a *Asset) Schedule() ([]ScheduleEntry, error) {
	if !a.Method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, a.Method)
	}

	if a.UsefulLifeYears <= 0 {
		return nil, fmt.Errorf("%w: useful life must be positive, got %d", ErrInvalidSchedule, a.UsefulLifeYears)
	}

	base := a.Cost.Sub(a.SalvageValue)
	if base.IsNegative() {
		return nil, fmt.Errorf("%w: salvage value %s exceeds cost %s", ErrInvalidSchedule, a.SalvageValue, a.Cost)
	}

	var expenses []decimal.Decimal

	switch a.Method {
	case MethodStraightLine:
		expenses = straightLine(base, a.UsefulLifeYears)
	case MethodDecliningBalance:
		expenses = decliningBalance(a.Cost, a.SalvageValue, a.UsefulLifeYears)
	case MethodSumOfYears:
		expenses = sumOfYears(base, a.UsefulLifeYears)
	}

	entries := make([]ScheduleEntry, len(expenses))
	accumulated := decimal.Zero

	for i, expense := range expenses {
		accumulated = accumulated.Add(expense)
		entries[i] = ScheduleEntry{
			Year:        i + 1,
			Expense:     expense,
			Accumulated: accumulated,
			BookValue:   a.Cost.Sub(accumulated),
		}
	}

	return entries, nil
}

func straightLine(base decimal.Decimal, life int) []decimal.Decimal {
	annual := base.Div(decimal.NewFromInt(int64(life))).Round(2)

	expenses := make([]decimal.Decimal, life)
	total := decimal.Zero

	for i := 0; i < life-1; i++ {
		expenses[i] = annual
		total = total.Add(annual)
	}

	expenses[life-1] = base.Sub(total)

	return expenses
}

func decliningBalance(cost, salvage decimal.Decimal, life int) []decimal.Decimal {
	// Double-declining rate applied to opening book value, floored so the
	// book value never drops below salvage.
	rate := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(life)))

	expenses := make([]decimal.Decimal, life)
	book := cost

	for i := 0; i < life; i++ {
		expense := book.Mul(rate).Round(2)

		if i == life-1 || book.Sub(expense).LessThan(salvage) {
			expense = book.Sub(salvage)
		}

		expenses[i] = expense
		book = book.Sub(expense)
	}

	return expenses
}

func sumOfYears(base decimal.Decimal, life int) []decimal.Decimal {
	digits := decimal.NewFromInt(int64(life * (life + 1) / 2))

	expenses := make([]decimal.Decimal, life)
	total := decimal.Zero

	for i := 0; i < life-1; i++ {
		remaining := decimal.NewFromInt(int64(life - i))
		expenses[i] = base.Mul(remaining).Div(digits).Round(2)
		total = total.Add(expenses[i])
	}

	expenses[life-1] = base.Sub(total)

	return expenses
}
