package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

// ErrAlreadyClosed is returned when a closing entry already exists for
// the requested date.
var ErrAlreadyClosed = errors.New("books already closed for date")

// CloseBooks posts one closing-class entry that zeroes every revenue and
// expense balance into the given equity account. Balances are taken over
// the general and adjustment classes as of the closing date.
//
// A revenue balance (credit-normal) is closed with a debit; an expense
// balance with a credit; contra balances flip sides. The equity account
// receives the balancing net-income line.
//
// The sweep aggregates over the general and adjustment classes only, so a
// prior closing entry would not zero what a rerun sees. The CLOSE
// reference is checked first to keep a retried close from posting the
// sweep twice.
func (s *Service) CloseBooks(ctx context.Context, act actor.Actor, asOf time.Time, equityCode string) ([]*journal.Line, error) {
	if _, err := s.accounts.Get(ctx, equityCode); err != nil {
		return nil, fmt.Errorf("resolving equity account %s: %w", equityCode, err)
	}

	ref := "CLOSE-" + asOf.Format(time.DateOnly)

	existing, err := s.lines.List(ctx, journal.ListFilter{ReferenceCode: &ref})
	if err != nil {
		return nil, fmt.Errorf("checking closing reference %s: %w", ref, err)
	}

	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyClosed, ref)
	}

	balances, err := s.FinalBalances(ctx, &asOf, []journal.Class{journal.ClassGeneral, journal.ClassAdjustment})
	if err != nil {
		return nil, err
	}

	var entryLines []journal.EntryLine

	netIncome := decimal.Zero

	for _, b := range balances {
		if b.Amount.IsZero() {
			continue
		}

		switch b.Type {
		case account.TypeRevenue:
			entryLines = append(entryLines, closingLine(b, true))
			netIncome = netIncome.Add(b.Amount)
		case account.TypeExpense:
			entryLines = append(entryLines, closingLine(b, false))
			netIncome = netIncome.Sub(b.Amount)
		}
	}

	if len(entryLines) == 0 {
		return nil, nil
	}

	summary := journal.EntryLine{
		AccountCode: equityCode,
		Description: "Jurnal penutup",
	}

	if netIncome.IsNegative() {
		summary.Debit = netIncome.Neg()
	} else {
		summary.Credit = netIncome
	}

	entryLines = append(entryLines, summary)

	return s.poster.Post(ctx, act, journal.PostParams{
		Date:          asOf,
		Class:         journal.ClassClosing,
		ReferenceCode: ref,
		Lines:         entryLines,
	})
}

// closingLine builds the line that zeroes one account. debitToClose is true
// for credit-normal balances (revenue), which close with a debit.
func closingLine(b AccountBalance, debitToClose bool) journal.EntryLine {
	line := journal.EntryLine{
		AccountCode: b.Code,
		Description: "Jurnal penutup",
	}

	amount := b.Amount
	if amount.IsNegative() {
		amount = amount.Neg()
		debitToClose = !debitToClose
	}

	if debitToClose {
		line.Debit = amount
	} else {
		line.Credit = amount
	}

	return line
}
