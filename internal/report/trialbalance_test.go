package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/journal"
	"github.com/tilapiasuite/tilapia/internal/ledger"
	"github.com/tilapiasuite/tilapia/internal/report"
)

var cfg = report.Config{
	CashAccountCode:     "1-1000",
	DrawingsAccountCode: "3-2000",
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bal(code, name string, typ account.Type, normal account.NormalBalance, amt string) ledger.AccountBalance {
	return ledger.AccountBalance{
		Code:          code,
		Name:          name,
		Type:          typ,
		NormalBalance: normal,
		Amount:        amount(amt),
	}
}

func newService(t *testing.T) (*report.Service, *report.MockBalanceSource, *report.MockLineSource, *report.MockAccountSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	balances := report.NewMockBalanceSource(ctrl)
	lines := report.NewMockLineSource(ctrl)
	accounts := report.NewMockAccountSource(ctrl)

	return report.NewService(balances, lines, accounts, cfg), balances, lines, accounts
}

func TestService_TrialBalance(t *testing.T) {
	svc, balances, _, _ := newService(t)

	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	balances.EXPECT().
		FinalBalances(gomock.Any(), &asOf, []journal.Class{journal.ClassGeneral}).
		Return([]ledger.AccountBalance{
			bal("1-1000", "Kas", account.TypeAsset, account.NormalDebit, "100000"),
			bal("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit, "100000"),
			bal("6-1000", "Beban Pakan", account.TypeExpense, account.NormalDebit, "0"),
		}, nil)

	tb, err := svc.TrialBalance(context.Background(), &asOf)
	require.NoError(t, err)

	// Zero-balance rows are skipped; both sides total 100000.
	require.Len(t, tb.Rows, 2)
	assert.Equal(t, "1-1000", tb.Rows[0].Code)
	assert.True(t, tb.Rows[0].Debit.Equal(amount("100000")))
	assert.True(t, tb.Rows[0].Credit.IsZero())
	assert.True(t, tb.Rows[1].Credit.Equal(amount("100000")))

	assert.True(t, tb.TotalDebit.Equal(amount("100000")))
	assert.True(t, tb.TotalCredit.Equal(amount("100000")))
	assert.True(t, tb.Balanced)
}

func TestService_TrialBalance_OpenedAccountRendersZeroRow(t *testing.T) {
	svc, balances, _, _ := newService(t)

	opened := bal("1-1300", "Persediaan", account.TypeAsset, account.NormalDebit, "0")
	opened.BeginningBalance = amount("50000")

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), []journal.Class{journal.ClassGeneral}).
		Return([]ledger.AccountBalance{
			opened,
			bal("1-1100", "Piutang Usaha", account.TypeAsset, account.NormalDebit, "0"),
		}, nil)

	tb, err := svc.TrialBalance(context.Background(), nil)
	require.NoError(t, err)

	// An account opened with a balance keeps its row even when the period
	// nets it to zero; a never-funded account does not.
	require.Len(t, tb.Rows, 1)
	assert.Equal(t, "1-1300", tb.Rows[0].Code)
	assert.True(t, tb.Rows[0].Debit.IsZero())
	assert.True(t, tb.Rows[0].Credit.IsZero())
}

func TestService_TrialBalance_NegativeBalanceFlipsColumn(t *testing.T) {
	svc, balances, _, _ := newService(t)

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), []journal.Class{journal.ClassGeneral}).
		Return([]ledger.AccountBalance{
			// Overdrawn cash: debit-normal with a negative balance sits in
			// the credit column.
			bal("1-1000", "Kas", account.TypeAsset, account.NormalDebit, "-2500"),
		}, nil)

	tb, err := svc.TrialBalance(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 1)
	assert.True(t, tb.Rows[0].Debit.IsZero())
	assert.True(t, tb.Rows[0].Credit.Equal(amount("2500")))
	assert.False(t, tb.Balanced)
}

func TestService_AdjustedTrialBalance_IncludesAdjustments(t *testing.T) {
	svc, balances, _, _ := newService(t)

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), []journal.Class{journal.ClassGeneral, journal.ClassAdjustment}).
		Return([]ledger.AccountBalance{
			bal("6-2000", "Beban Perlengkapan", account.TypeExpense, account.NormalDebit, "10000"),
			bal("1-1400", "Perlengkapan", account.TypeAsset, account.NormalDebit, "-10000"),
		}, nil)

	tb, err := svc.AdjustedTrialBalance(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, tb.Balanced)
}
