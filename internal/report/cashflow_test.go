package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tilapiasuite/tilapia/internal/journal"
)

func flowLine(ref, code, name, debit, credit string) *journal.Line {
	return &journal.Line{
		ReferenceCode: ref,
		AccountCode:   code,
		AccountName:   name,
		Debit:         amount(debit),
		Credit:        amount(credit),
		Class:         journal.ClassGeneral,
	}
}

func TestService_CashFlow(t *testing.T) {
	svc, balances, lines, _ := newService(t)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	lines.EXPECT().
		List(gomock.Any(), journal.ListFilter{StartDate: &start, EndDate: &end}).
		Return([]*journal.Line{
			// Cash sale: operating inflow.
			flowLine("TRX-1", "1-1000", "Kas", "100000", "0"),
			flowLine("TRX-1", "4-1000", "Penjualan", "0", "100000"),
			// Second sale against the same revenue account: merged.
			flowLine("TRX-2", "1-1000", "Kas", "40000", "0"),
			flowLine("TRX-2", "4-1000", "Penjualan", "0", "40000"),
			// Feed bought with cash: operating outflow.
			flowLine("TRX-3", "6-1000", "Beban Pakan", "30000", "0"),
			flowLine("TRX-3", "1-1000", "Kas", "0", "30000"),
			// Equipment bought with cash: investing outflow.
			flowLine("TRX-4", "1-2100", "Peralatan", "50000", "0"),
			flowLine("TRX-4", "1-1000", "Kas", "0", "50000"),
			// Owner capital injection: financing inflow.
			flowLine("TRX-5", "1-1000", "Kas", "200000", "0"),
			flowLine("TRX-5", "3-1000", "Modal", "0", "200000"),
			// Drawings: always a financing outflow.
			flowLine("TRX-6", "3-2000", "Prive", "20000", "0"),
			flowLine("TRX-6", "1-1000", "Kas", "0", "20000"),
			// Credit purchase, no cash leg: ignored.
			flowLine("TRX-7", "1-1300", "Persediaan", "15000", "0"),
			flowLine("TRX-7", "2-1000", "Utang Usaha", "0", "15000"),
		}, nil)

	dayBefore := start.AddDate(0, 0, -1)
	balances.EXPECT().
		BalanceOf(gomock.Any(), "1-1000", &dayBefore, gomock.Nil()).
		Return(decimal.Zero, nil)
	balances.EXPECT().
		BalanceOf(gomock.Any(), "1-1000", &end, gomock.Nil()).
		Return(amount("240000"), nil)

	stmt, err := svc.CashFlow(context.Background(), start, end)
	require.NoError(t, err)

	// Sales merged into one inflow item of 140000.
	require.Len(t, stmt.Operating.Inflows, 1)
	assert.Equal(t, "4-1000", stmt.Operating.Inflows[0].AccountCode)
	assert.True(t, stmt.Operating.Inflows[0].Amount.Equal(amount("140000")))
	assert.True(t, stmt.Operating.TotalOut.Equal(amount("30000")))
	assert.True(t, stmt.Operating.Net.Equal(amount("110000")))

	require.Len(t, stmt.Investing.Outflows, 1)
	assert.True(t, stmt.Investing.Net.Equal(amount("-50000")))

	assert.True(t, stmt.Financing.TotalIn.Equal(amount("200000")))
	assert.True(t, stmt.Financing.TotalOut.Equal(amount("20000")))
	assert.True(t, stmt.Financing.Net.Equal(amount("180000")))

	assert.Empty(t, stmt.Unclassified)

	// Reconciliation: 0 + 240000 derived == ledger balance.
	assert.True(t, stmt.NetChange.Equal(amount("240000")))
	assert.True(t, stmt.EndingCash.Equal(amount("240000")))
	assert.True(t, stmt.Reconciled)
}

func TestService_CashFlow_UnpairedCashBreaksReconciliation(t *testing.T) {
	svc, balances, lines, _ := newService(t)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	lines.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*journal.Line{
			flowLine("TRX-1", "1-1000", "Kas", "100000", "0"),
			flowLine("TRX-1", "4-1000", "Penjualan", "0", "100000"),
			// A lone cash line with no reference code can never pair.
			flowLine("", "1-1000", "Kas", "5000", "0"),
		}, nil)

	balances.EXPECT().
		BalanceOf(gomock.Any(), "1-1000", gomock.Any(), gomock.Nil()).
		Return(decimal.Zero, nil)
	balances.EXPECT().
		BalanceOf(gomock.Any(), "1-1000", &end, gomock.Nil()).
		Return(amount("105000"), nil)

	stmt, err := svc.CashFlow(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, stmt.Unclassified, 1)
	assert.True(t, stmt.Unclassified[0].Amount.Equal(amount("5000")))
	assert.True(t, stmt.EndingCash.Equal(amount("100000")))
	assert.True(t, stmt.ActualCash.Equal(amount("105000")))
	assert.False(t, stmt.Reconciled)
}

func TestService_CashFlow_FixedAssetSaleIsInvestingInflow(t *testing.T) {
	svc, balances, lines, _ := newService(t)

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	lines.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*journal.Line{
			flowLine("TRX-9", "1-1000", "Kas", "35000", "0"),
			flowLine("TRX-9", "1-2100", "Peralatan", "0", "35000"),
		}, nil)

	balances.EXPECT().
		BalanceOf(gomock.Any(), "1-1000", gomock.Any(), gomock.Nil()).
		Return(decimal.Zero, nil).
		Times(2)

	stmt, err := svc.CashFlow(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, stmt.Investing.Inflows, 1)
	assert.True(t, stmt.Investing.TotalIn.Equal(amount("35000")))
}

// A multi-leg transaction pairs each cash movement with the first
// offsetting counterpart; the documented first-match rule.
func TestService_CashFlow_FirstMatchWins(t *testing.T) {
	svc, balances, lines, _ := newService(t)

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	lines.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*journal.Line{
			flowLine("TRX-10", "6-1000", "Beban Pakan", "10000", "0"),
			flowLine("TRX-10", "6-4000", "Beban Listrik", "10000", "0"),
			flowLine("TRX-10", "1-1000", "Kas", "0", "10000"),
			flowLine("TRX-10", "2-1000", "Utang Usaha", "0", "10000"),
		}, nil)

	balances.EXPECT().
		BalanceOf(gomock.Any(), "1-1000", gomock.Any(), gomock.Nil()).
		Return(decimal.Zero, nil).
		Times(2)

	stmt, err := svc.CashFlow(context.Background(), start, end)
	require.NoError(t, err)

	// The cash credit pairs with the first offsetting debit (Beban Pakan).
	require.Len(t, stmt.Operating.Outflows, 1)
	assert.Equal(t, "6-1000", stmt.Operating.Outflows[0].AccountCode)
}
