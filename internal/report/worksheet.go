package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/journal"
	"github.com/tilapiasuite/tilapia/internal/ledger"
)

// WorksheetRow is one account across the ten columns: trial balance,
// adjustments, adjusted trial balance, and the routed income-statement or
// balance-sheet pair.
type WorksheetRow struct {
	Code                 string
	Name                 string
	TrialBalance         Pair
	Adjustments          Pair
	AdjustedTrialBalance Pair
	IncomeStatement      Pair
	BalanceSheet         Pair
}

// Worksheet is the ten-column working paper. IncomeTotals and
// BalanceTotals include the injected net-income balancing line; both
// pairs agreeing within tolerance is the worksheet's cross-check.
type Worksheet struct {
	Rows          []WorksheetRow
	NetIncome     decimal.Decimal
	IncomeTotals  Pair
	BalanceTotals Pair
	Balanced      bool
}

// Worksheet builds the ten-column worksheet as of the given date.
//
// The adjustments pair holds the raw debit/credit sums of adjustment-class
// lines per account, not the net effect, so the adjustment columns total to
// the adjustment entries actually posted.
func (s *Service) Worksheet(ctx context.Context, asOf *time.Time) (*Worksheet, error) {
	accs, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	pre, err := s.balances.FinalBalances(ctx, asOf, generalOnly)
	if err != nil {
		return nil, err
	}

	post, err := s.balances.FinalBalances(ctx, asOf, generalAndAdjustment)
	if err != nil {
		return nil, err
	}

	adjLines, err := s.lines.List(ctx, journal.ListFilter{
		Classes: []journal.Class{journal.ClassAdjustment},
		EndDate: asOf,
	})
	if err != nil {
		return nil, err
	}

	preByCode := balancePairs(pre)
	postByCode := balancePairs(post)

	adjByCode := make(map[string]Pair)

	for _, l := range adjLines {
		p := adjByCode[l.AccountCode]
		p.Debit = p.Debit.Add(l.Debit)
		p.Credit = p.Credit.Add(l.Credit)
		adjByCode[l.AccountCode] = p
	}

	ws := &Worksheet{}

	incomeTotals := zeroPair()
	balanceTotals := zeroPair()

	for _, acc := range accs {
		row := WorksheetRow{
			Code:                 acc.Code,
			Name:                 acc.Name,
			TrialBalance:         orZero(preByCode, acc.Code),
			Adjustments:          orZero(adjByCode, acc.Code),
			AdjustedTrialBalance: orZero(postByCode, acc.Code),
		}

		switch acc.Type {
		case account.TypeRevenue, account.TypeExpense:
			row.IncomeStatement = row.AdjustedTrialBalance
			incomeTotals = incomeTotals.Add(row.IncomeStatement)
		default:
			row.BalanceSheet = row.AdjustedTrialBalance
			balanceTotals = balanceTotals.Add(row.BalanceSheet)
		}

		ws.Rows = append(ws.Rows, row)
	}

	// Net income balances the two halves: a profit is injected as a debit
	// on the income-statement side and a credit on the balance-sheet side;
	// a loss is mirrored.
	ws.NetIncome = incomeTotals.Credit.Sub(incomeTotals.Debit)

	if ws.NetIncome.IsNegative() {
		loss := ws.NetIncome.Neg()
		incomeTotals.Credit = incomeTotals.Credit.Add(loss)
		balanceTotals.Debit = balanceTotals.Debit.Add(loss)
	} else {
		incomeTotals.Debit = incomeTotals.Debit.Add(ws.NetIncome)
		balanceTotals.Credit = balanceTotals.Credit.Add(ws.NetIncome)
	}

	ws.IncomeTotals = incomeTotals
	ws.BalanceTotals = balanceTotals
	ws.Balanced = incomeTotals.Balanced() && balanceTotals.Balanced()

	return ws, nil
}

func zeroPair() Pair {
	return Pair{Debit: decimal.Zero, Credit: decimal.Zero}
}

func orZero(pairs map[string]Pair, code string) Pair {
	if p, ok := pairs[code]; ok {
		return p
	}

	return zeroPair()
}

func balancePairs(balances []ledger.AccountBalance) map[string]Pair {
	pairs := make(map[string]Pair, len(balances))
	for _, b := range balances {
		pairs[b.Code] = splitColumns(b)
	}

	return pairs
}
