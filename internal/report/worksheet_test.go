package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/journal"
	"github.com/tilapiasuite/tilapia/internal/ledger"
)

func acc(code, name string, typ account.Type, normal account.NormalBalance) *account.Account {
	return &account.Account{Code: code, Name: name, Type: typ, NormalBalance: normal}
}

// Scenario: capital 50000, cash sales 100000, supplies 30000 bought with
// cash; a period-end adjustment expenses 10000 of supplies.
func TestService_Worksheet_Profit(t *testing.T) {
	svc, balances, lines, accounts := newService(t)

	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	accounts.EXPECT().List(gomock.Any()).Return([]*account.Account{
		acc("1-1000", "Kas", account.TypeAsset, account.NormalDebit),
		acc("1-1400", "Perlengkapan", account.TypeAsset, account.NormalDebit),
		acc("3-1000", "Modal", account.TypeEquity, account.NormalCredit),
		acc("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit),
		acc("6-2000", "Beban Perlengkapan", account.TypeExpense, account.NormalDebit),
	}, nil)

	balances.EXPECT().
		FinalBalances(gomock.Any(), &asOf, []journal.Class{journal.ClassGeneral}).
		Return([]ledger.AccountBalance{
			bal("1-1000", "Kas", account.TypeAsset, account.NormalDebit, "120000"),
			bal("1-1400", "Perlengkapan", account.TypeAsset, account.NormalDebit, "30000"),
			bal("3-1000", "Modal", account.TypeEquity, account.NormalCredit, "50000"),
			bal("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit, "100000"),
			bal("6-2000", "Beban Perlengkapan", account.TypeExpense, account.NormalDebit, "0"),
		}, nil)

	balances.EXPECT().
		FinalBalances(gomock.Any(), &asOf, []journal.Class{journal.ClassGeneral, journal.ClassAdjustment}).
		Return([]ledger.AccountBalance{
			bal("1-1000", "Kas", account.TypeAsset, account.NormalDebit, "120000"),
			bal("1-1400", "Perlengkapan", account.TypeAsset, account.NormalDebit, "20000"),
			bal("3-1000", "Modal", account.TypeEquity, account.NormalCredit, "50000"),
			bal("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit, "100000"),
			bal("6-2000", "Beban Perlengkapan", account.TypeExpense, account.NormalDebit, "10000"),
		}, nil)

	lines.EXPECT().
		List(gomock.Any(), journal.ListFilter{
			Classes: []journal.Class{journal.ClassAdjustment},
			EndDate: &asOf,
		}).
		Return([]*journal.Line{
			{AccountCode: "6-2000", Debit: amount("10000"), Credit: amount("0"), Class: journal.ClassAdjustment},
			{AccountCode: "1-1400", Debit: amount("0"), Credit: amount("10000"), Class: journal.ClassAdjustment},
		}, nil)

	ws, err := svc.Worksheet(context.Background(), &asOf)
	require.NoError(t, err)
	require.Len(t, ws.Rows, 5)

	byCode := make(map[string]int)
	for i, r := range ws.Rows {
		byCode[r.Code] = i
	}

	supplies := ws.Rows[byCode["1-1400"]]
	assert.True(t, supplies.TrialBalance.Debit.Equal(amount("30000")))
	// Adjustment columns carry raw sums, not the netted effect.
	assert.True(t, supplies.Adjustments.Credit.Equal(amount("10000")))
	assert.True(t, supplies.AdjustedTrialBalance.Debit.Equal(amount("20000")))
	// Asset rows route to the balance-sheet pair.
	assert.True(t, supplies.BalanceSheet.Debit.Equal(amount("20000")))
	assert.True(t, supplies.IncomeStatement.Debit.IsZero())

	expense := ws.Rows[byCode["6-2000"]]
	assert.True(t, expense.IncomeStatement.Debit.Equal(amount("10000")))

	assert.True(t, ws.NetIncome.Equal(amount("90000")))

	// Cross-check: both column pairs agree after the balancing line.
	assert.True(t, ws.IncomeTotals.Debit.Equal(amount("100000")))
	assert.True(t, ws.IncomeTotals.Credit.Equal(amount("100000")))
	assert.True(t, ws.BalanceTotals.Debit.Equal(amount("140000")))
	assert.True(t, ws.BalanceTotals.Credit.Equal(amount("140000")))
	assert.True(t, ws.Balanced)
}

// A loss mirrors the balancing line: credit on the income-statement side,
// debit on the balance-sheet side.
func TestService_Worksheet_Loss(t *testing.T) {
	svc, balances, lines, accounts := newService(t)

	accounts.EXPECT().List(gomock.Any()).Return([]*account.Account{
		acc("1-1000", "Kas", account.TypeAsset, account.NormalDebit),
		acc("3-1000", "Modal", account.TypeEquity, account.NormalCredit),
		acc("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit),
		acc("6-1000", "Beban Pakan", account.TypeExpense, account.NormalDebit),
	}, nil)

	pre := []ledger.AccountBalance{
		bal("1-1000", "Kas", account.TypeAsset, account.NormalDebit, "30000"),
		bal("3-1000", "Modal", account.TypeEquity, account.NormalCredit, "50000"),
		bal("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit, "20000"),
		bal("6-1000", "Beban Pakan", account.TypeExpense, account.NormalDebit, "40000"),
	}

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), []journal.Class{journal.ClassGeneral}).
		Return(pre, nil)
	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), []journal.Class{journal.ClassGeneral, journal.ClassAdjustment}).
		Return(pre, nil)
	lines.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	ws, err := svc.Worksheet(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, ws.NetIncome.Equal(amount("-20000")))
	assert.True(t, ws.IncomeTotals.Credit.Equal(amount("40000")))
	assert.True(t, ws.IncomeTotals.Debit.Equal(amount("40000")))
	assert.True(t, ws.BalanceTotals.Debit.Equal(amount("50000")))
	assert.True(t, ws.BalanceTotals.Credit.Equal(amount("50000")))
	assert.True(t, ws.Balanced)
}
