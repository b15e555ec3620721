package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/journal"
)

// TrialBalanceRow is one account split into debit/credit columns.
type TrialBalanceRow struct {
	Code   string
	Name   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalance lists all account balances in two columns. Balanced is the
// Σdebit == Σcredit check; a false value is reported, not refused.
type TrialBalance struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
}

// TrialBalance builds the pre-adjustment trial balance: general entries only.
func (s *Service) TrialBalance(ctx context.Context, asOf *time.Time) (*TrialBalance, error) {
	return s.trialBalance(ctx, asOf, generalOnly)
}

// AdjustedTrialBalance includes period-end adjustments alongside general entries.
func (s *Service) AdjustedTrialBalance(ctx context.Context, asOf *time.Time) (*TrialBalance, error) {
	return s.trialBalance(ctx, asOf, generalAndAdjustment)
}

func (s *Service) trialBalance(ctx context.Context, asOf *time.Time, classes []journal.Class) (*TrialBalance, error) {
	balances, err := s.balances.FinalBalances(ctx, asOf, classes)
	if err != nil {
		return nil, err
	}

	tb := &TrialBalance{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, b := range balances {
		// An account stays listed once it has ever carried a balance, so a
		// period that nets it to zero still renders the 0/0 row.
		if b.Amount.IsZero() && b.BeginningBalance.IsZero() {
			continue
		}

		cols := splitColumns(b)

		tb.Rows = append(tb.Rows, TrialBalanceRow{
			Code:   b.Code,
			Name:   b.Name,
			Debit:  cols.Debit,
			Credit: cols.Credit,
		})

		tb.TotalDebit = tb.TotalDebit.Add(cols.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(cols.Credit)
	}

	tb.Balanced = journal.WithinTolerance(tb.TotalDebit, tb.TotalCredit)

	return tb, nil
}
