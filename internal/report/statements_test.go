package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/ledger"
)

// closedPeriod is a consistent balance set derived from: owner invests
// 50000 cash, cash sales 130000, feed expense 20000 cash, equipment 50000
// bought on credit, owner draws 10000, depreciation adjustment 5000.
func closedPeriod() []ledger.AccountBalance {
	return []ledger.AccountBalance{
		bal("1-1000", "Kas", account.TypeAsset, account.NormalDebit, "150000"),
		bal("1-2100", "Peralatan", account.TypeAsset, account.NormalDebit, "50000"),
		bal("1-2110", "Akumulasi Penyusutan", account.TypeAsset, account.NormalCredit, "5000"),
		bal("2-1000", "Utang Usaha", account.TypeLiability, account.NormalCredit, "50000"),
		bal("3-1000", "Modal", account.TypeEquity, account.NormalCredit, "50000"),
		bal("3-2000", "Prive", account.TypeEquity, account.NormalDebit, "10000"),
		bal("4-1000", "Penjualan", account.TypeRevenue, account.NormalCredit, "130000"),
		bal("6-1000", "Beban Pakan", account.TypeExpense, account.NormalDebit, "20000"),
		bal("6-3000", "Beban Penyusutan", account.TypeExpense, account.NormalDebit, "5000"),
	}
}

func TestService_IncomeStatement(t *testing.T) {
	svc, balances, _, _ := newService(t)

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), gomock.Any()).
		Return(closedPeriod(), nil)

	is, err := svc.IncomeStatement(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, is.Revenues, 1)
	assert.Len(t, is.Expenses, 2)
	assert.True(t, is.TotalRevenue.Equal(amount("130000")))
	assert.True(t, is.TotalExpense.Equal(amount("25000")))
	assert.True(t, is.NetIncome.Equal(amount("105000")))
}

func TestService_EquityStatement(t *testing.T) {
	svc, balances, _, _ := newService(t)

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), gomock.Any()).
		Return(closedPeriod(), nil)

	es, err := svc.EquityStatement(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, es.InitialEquity.Equal(amount("50000")))
	assert.True(t, es.NetIncome.Equal(amount("105000")))
	assert.True(t, es.Drawings.Equal(amount("10000")))
	assert.True(t, es.FinalEquity.Equal(amount("145000")))
}

func TestService_BalanceSheet(t *testing.T) {
	svc, balances, _, _ := newService(t)

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), gomock.Any()).
		Return(closedPeriod(), nil)

	bs, err := svc.BalanceSheet(context.Background(), nil)
	require.NoError(t, err)

	// Contra asset subtracts from the asset total.
	assert.True(t, bs.TotalAssets.Equal(amount("195000")), "total assets %s", bs.TotalAssets)

	for _, line := range bs.Assets {
		if line.Code == "1-2110" {
			assert.True(t, line.Amount.Equal(amount("-5000")))
		}
	}

	assert.True(t, bs.TotalLiabilities.Equal(amount("50000")))
	assert.True(t, bs.Equity.FinalEquity.Equal(amount("145000")))
	assert.True(t, bs.TotalLiabEquity.Equal(amount("195000")))
	assert.True(t, bs.Balanced)
}

func TestService_BalanceSheet_DetectsMismatch(t *testing.T) {
	svc, balances, _, _ := newService(t)

	unbalanced := closedPeriod()
	// Strand an extra asset with no offsetting entry.
	unbalanced = append(unbalanced, bal("1-1300", "Persediaan", account.TypeAsset, account.NormalDebit, "7000"))

	balances.EXPECT().
		FinalBalances(gomock.Any(), gomock.Nil(), gomock.Any()).
		Return(unbalanced, nil)

	bs, err := svc.BalanceSheet(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, bs.Balanced)
}
