package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=ledger

// AccountSource provides read access to the chart of accounts.
type AccountSource interface {
	Get(ctx context.Context, code string) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
}

// LineSource provides filtered read access to posted journal lines.
type LineSource interface {
	List(ctx context.Context, filter journal.ListFilter) ([]*journal.Line, error)
}

// Poster appends validated journal entries; satisfied by journal.Service.
type Poster interface {
	Post(ctx context.Context, act actor.Actor, params journal.PostParams) ([]*journal.Line, error)
}

// Service computes derived balances from the journal. It re-reads the store
// on every call and keeps no cache, so staleness is bounded by the store's
// isolation level, not by this package.
type Service struct {
	accounts AccountSource
	lines    LineSource
	poster   Poster
}

func NewService(accounts AccountSource, lines LineSource, poster Poster) *Service {
	return &Service{accounts: accounts, lines: lines, poster: poster}
}

// AccountBalance is one account's signed balance at a point in time.
// Amount is expressed on the account's normal side: positive means the
// balance sits on its normal side.
type AccountBalance struct {
	Code             string
	Name             string
	Type             account.Type
	NormalBalance    account.NormalBalance
	Amount           decimal.Decimal
	BeginningBalance decimal.Decimal
}

// fold accumulates a line set into a signed balance starting from the
// account's beginning balance, respecting the normal side.
func fold(acc *account.Account, lines []*journal.Line) decimal.Decimal {
	debit := decimal.Zero
	credit := decimal.Zero

	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	if acc.NormalBalance == account.NormalDebit {
		return acc.BeginningBalance.Add(debit).Sub(credit)
	}

	return acc.BeginningBalance.Add(credit).Sub(debit)
}

// BalanceOf computes one account's signed balance as of the given date
// (inclusive; nil means all time) over the given journal classes (nil
// means all classes).
func (s *Service) BalanceOf(ctx context.Context, code string, asOf *time.Time, classes []journal.Class) (decimal.Decimal, error) {
	acc, err := s.accounts.Get(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	lines, err := s.lines.List(ctx, journal.ListFilter{
		AccountCode: &code,
		EndDate:     asOf,
		Classes:     classes,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing lines for %s: %w", code, err)
	}

	return fold(acc, lines), nil
}

// FinalBalances computes every account's balance in one pass: a single
// filtered journal scan grouped by account in memory. All statement
// builders derive from this so every report sees the same numbers.
//
// Accounts whose balance rounds to zero are dropped, except revenue,
// expense and equity accounts, which are always surfaced so statement
// shapes stay stable across periods. An opened account keeps its row even
// when movements cancel the beginning balance out.
func (s *Service) FinalBalances(ctx context.Context, asOf *time.Time, classes []journal.Class) ([]AccountBalance, error) {
	accs, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	lines, err := s.lines.List(ctx, journal.ListFilter{
		EndDate: asOf,
		Classes: classes,
	})
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}

	byAccount := make(map[string][]*journal.Line)
	for _, l := range lines {
		byAccount[l.AccountCode] = append(byAccount[l.AccountCode], l)
	}

	balances := make([]AccountBalance, 0, len(accs))

	for _, acc := range accs {
		amount := fold(acc, byAccount[acc.Code])

		alwaysShown := acc.Type == account.TypeRevenue ||
			acc.Type == account.TypeExpense ||
			acc.Type == account.TypeEquity

		if !alwaysShown && amount.Abs().Cmp(journal.Tolerance) < 0 && acc.BeginningBalance.IsZero() {
			continue
		}

		balances = append(balances, AccountBalance{
			Code:             acc.Code,
			Name:             acc.Name,
			Type:             acc.Type,
			NormalBalance:    acc.NormalBalance,
			Amount:           amount,
			BeginningBalance: acc.BeginningBalance,
		})
	}

	return balances, nil
}
