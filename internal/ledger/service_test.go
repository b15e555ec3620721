package ledger_test

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
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	kas = &account.Account{
		Code: "1-1000", Name: "Kas",
		Type: account.TypeAsset, NormalBalance: account.NormalDebit,
		BeginningBalance: decimal.Zero,
	}
	persediaan = &account.Account{
		Code: "1-1300", Name: "Persediaan",
		Type: account.TypeAsset, NormalBalance: account.NormalDebit,
		BeginningBalance: amount("50000"),
	}
	penjualan = &account.Account{
		Code: "4-1000", Name: "Penjualan",
		Type: account.TypeRevenue, NormalBalance: account.NormalCredit,
		BeginningBalance: decimal.Zero,
	}
	bebanPakan = &account.Account{
		Code: "6-1000", Name: "Beban Pakan",
		Type: account.TypeExpense, NormalBalance: account.NormalDebit,
		BeginningBalance: decimal.Zero,
	}
)

func line(code string, debit, credit string, class journal.Class) *journal.Line {
	return &journal.Line{
		AccountCode: code,
		Debit:       amount(debit),
		Credit:      amount(credit),
		Class:       class,
	}
}

func TestService_BalanceOf(t *testing.T) {
	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name  string
		acc   *account.Account
		lines []*journal.Line
		want  string
	}

	tests := []testCase{
		{
			name: "DebitNormalFoldsDebitMinusCredit",
			acc:  kas,
			lines: []*journal.Line{
				line("1-1000", "100000", "0", journal.ClassGeneral),
				line("1-1000", "0", "30000", journal.ClassGeneral),
			},
			want: "70000",
		},
		{
			name: "CreditNormalFoldsCreditMinusDebit",
			acc:  penjualan,
			lines: []*journal.Line{
				line("4-1000", "0", "100000", journal.ClassGeneral),
			},
			want: "100000",
		},
		{
			name: "BeginningBalanceIncluded",
			acc:  persediaan,
			lines: []*journal.Line{
				line("1-1300", "25000", "0", journal.ClassGeneral),
			},
			want: "75000",
		},
		{
			name:  "NoLinesYieldsBeginningBalance",
			acc:   persediaan,
			lines: nil,
			want:  "50000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := ledger.NewMockAccountSource(ctrl)
			lines := ledger.NewMockLineSource(ctrl)
			svc := ledger.NewService(accounts, lines, ledger.NewMockPoster(ctrl))

			accounts.EXPECT().Get(gomock.Any(), tt.acc.Code).Return(tt.acc, nil)
			lines.EXPECT().List(gomock.Any(), gomock.Any()).Return(tt.lines, nil)

			got, err := svc.BalanceOf(context.Background(), tt.acc.Code, &d1, nil)
			require.NoError(t, err)
			assert.True(t, got.Equal(amount(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

// Folding a line set must be order-independent: the balance is the same
// whether lines are replayed one at a time or summed in any order.
func TestService_BalanceOf_OrderIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forward := []*journal.Line{
		line("1-1000", "100000", "0", journal.ClassGeneral),
		line("1-1000", "0", "40000", journal.ClassGeneral),
		line("1-1000", "15000", "0", journal.ClassAdjustment),
	}
	reversed := []*journal.Line{forward[2], forward[1], forward[0]}

	accounts := ledger.NewMockAccountSource(ctrl)
	lines := ledger.NewMockLineSource(ctrl)
	svc := ledger.NewService(accounts, lines, ledger.NewMockPoster(ctrl))

	accounts.EXPECT().Get(gomock.Any(), "1-1000").Return(kas, nil).Times(2)
	lines.EXPECT().List(gomock.Any(), gomock.Any()).Return(forward, nil)
	lines.EXPECT().List(gomock.Any(), gomock.Any()).Return(reversed, nil)

	a, err := svc.BalanceOf(context.Background(), "1-1000", nil, nil)
	require.NoError(t, err)

	b, err := svc.BalanceOf(context.Background(), "1-1000", nil, nil)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "forward %s != reversed %s", a, b)
	assert.True(t, a.Equal(amount("75000")))
}

func TestService_FinalBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := ledger.NewMockAccountSource(ctrl)
	lines := ledger.NewMockLineSource(ctrl)
	svc := ledger.NewService(accounts, lines, ledger.NewMockPoster(ctrl))

	piutang := &account.Account{
		Code: "1-1100", Name: "Piutang Usaha",
		Type: account.TypeAsset, NormalBalance: account.NormalDebit,
	}

	accounts.EXPECT().List(gomock.Any()).Return([]*account.Account{kas, piutang, penjualan, bebanPakan}, nil)
	lines.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*journal.Line{
		line("1-1000", "100000", "0", journal.ClassGeneral),
		line("4-1000", "0", "100000", journal.ClassGeneral),
	}, nil)

	got, err := svc.FinalBalances(context.Background(), nil, nil)
	require.NoError(t, err)

	byCode := make(map[string]ledger.AccountBalance)
	for _, b := range got {
		byCode[b.Code] = b
	}

	// Zero-balance asset is dropped; zero revenue/expense stay surfaced.
	assert.NotContains(t, byCode, "1-1100")
	assert.Contains(t, byCode, "4-1000")
	assert.Contains(t, byCode, "6-1000")

	assert.True(t, byCode["1-1000"].Amount.Equal(amount("100000")))
	assert.True(t, byCode["4-1000"].Amount.Equal(amount("100000")))
	assert.True(t, byCode["6-1000"].Amount.IsZero())
}

func TestService_FinalBalances_OpenedAccountKeptAtZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := ledger.NewMockAccountSource(ctrl)
	lines := ledger.NewMockLineSource(ctrl)
	svc := ledger.NewService(accounts, lines, ledger.NewMockPoster(ctrl))

	// Movements cancel the beginning balance exactly; the account was
	// opened with one, so it keeps its row.
	accounts.EXPECT().List(gomock.Any()).Return([]*account.Account{persediaan}, nil)
	lines.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*journal.Line{
		line("1-1300", "0", "50000", journal.ClassGeneral),
	}, nil)

	got, err := svc.FinalBalances(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "1-1300", got[0].Code)
	assert.True(t, got[0].Amount.IsZero())
	assert.True(t, got[0].BeginningBalance.Equal(amount("50000")))
}

func TestService_FinalBalances_FiltersPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := ledger.NewMockAccountSource(ctrl)
	lines := ledger.NewMockLineSource(ctrl)
	svc := ledger.NewService(accounts, lines, ledger.NewMockPoster(ctrl))

	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	classes := []journal.Class{journal.ClassGeneral}

	accounts.EXPECT().List(gomock.Any()).Return([]*account.Account{kas}, nil)
	lines.EXPECT().
		List(gomock.Any(), journal.ListFilter{EndDate: &asOf, Classes: classes}).
		Return(nil, nil)

	_, err := svc.FinalBalances(context.Background(), &asOf, classes)
	require.NoError(t, err)
}
