// Package report builds the financial statements: trial balances, the
// ten-column worksheet, income statement, equity statement, balance sheet
// and the classified cash-flow statement. Every builder is read-only and
// derives from ledger.Service's batched balances, so all reports agree on
// the same underlying numbers.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/journal"
	"github.com/tilapiasuite/tilapia/internal/ledger"
)

//go:generate mockgen -source=report.go -destination=source_mock.go -package=report

// BalanceSource is the aggregation engine reports are built from;
// satisfied by ledger.Service.
type BalanceSource interface {
	BalanceOf(ctx context.Context, code string, asOf *time.Time, classes []journal.Class) (decimal.Decimal, error)
	FinalBalances(ctx context.Context, asOf *time.Time, classes []journal.Class) ([]ledger.AccountBalance, error)
}

// LineSource provides filtered journal reads for builders that need raw
// lines (worksheet adjustments, cash-flow pairing).
type LineSource interface {
	List(ctx context.Context, filter journal.ListFilter) ([]*journal.Line, error)
}

// AccountSource lists the chart of accounts.
type AccountSource interface {
	List(ctx context.Context) ([]*account.Account, error)
}

// Config names the two accounts with special statement roles.
type Config struct {
	CashAccountCode     string
	DrawingsAccountCode string
}

type Service struct {
	balances BalanceSource
	lines    LineSource
	accounts AccountSource
	cfg      Config
}

func NewService(balances BalanceSource, lines LineSource, accounts AccountSource, cfg Config) *Service {
	return &Service{balances: balances, lines: lines, accounts: accounts, cfg: cfg}
}

// Pair is one debit/credit column pair.
type Pair struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add returns the element-wise sum of two pairs.
func (p Pair) Add(q Pair) Pair {
	return Pair{Debit: p.Debit.Add(q.Debit), Credit: p.Credit.Add(q.Credit)}
}

// Balanced reports whether the two columns agree within Tolerance.
func (p Pair) Balanced() bool {
	return journal.WithinTolerance(p.Debit, p.Credit)
}

// splitColumns places a signed balance in the debit or credit column
// according to the account's normal side. A negative balance lands on the
// opposite side.
func splitColumns(b ledger.AccountBalance) Pair {
	var p Pair

	onNormalSide := !b.Amount.IsNegative()
	amount := b.Amount.Abs()

	debitSide := b.NormalBalance == account.NormalDebit
	if !onNormalSide {
		debitSide = !debitSide
	}

	if debitSide {
		p.Debit = amount
		p.Credit = decimal.Zero
	} else {
		p.Debit = decimal.Zero
		p.Credit = amount
	}

	return p
}

var generalOnly = []journal.Class{journal.ClassGeneral}

var generalAndAdjustment = []journal.Class{journal.ClassGeneral, journal.ClassAdjustment}
