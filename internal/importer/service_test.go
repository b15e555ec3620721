package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

var cashier = actor.Actor{UserID: "user-kasir", Role: actor.RoleCashier}

var testConfig = Config{
	CashAccountCode:    "1-1000",
	SalesAccountCode:   "4-1000",
	ExpenseAccountCode: "6-9000",
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	poster := NewMockPoster(ctrl)
	svc := NewService(poster, testConfig)

	input := strings.Join([]string{
		"Tanggal;No. Transaksi;Keterangan;Jumlah",
		"01/03/2025;TRX-001;Penjualan ikan segar;12.500,00",
		"02/03/2025;;Refund pesanan;-3.000,00",
	}, "\n")

	var posted []journal.PostParams

	poster.EXPECT().
		Post(gomock.Any(), cashier, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ actor.Actor, params journal.PostParams) ([]*journal.Line, error) {
			posted = append(posted, params)
			return []*journal.Line{{}, {}}, nil
		}).
		Times(2)

	lines, err := svc.Import(context.Background(), cashier, strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, lines, 4)
	require.Len(t, posted, 2)

	// Inflow: debit cash, credit sales, export's own reference.
	sale := posted[0]
	assert.Equal(t, "TRX-001", sale.ReferenceCode)
	assert.Equal(t, journal.ClassGeneral, sale.Class)
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, "1-1000", sale.Lines[0].AccountCode)
	assert.True(t, sale.Lines[0].Debit.Equal(amount("12500")))
	assert.Equal(t, "4-1000", sale.Lines[1].AccountCode)
	assert.True(t, sale.Lines[1].Credit.Equal(amount("12500")))

	// Outflow without a reference gets a synthetic one.
	refund := posted[1]
	assert.Equal(t, "IMP-20250302-2", refund.ReferenceCode)
	assert.Equal(t, "6-9000", refund.Lines[0].AccountCode)
	assert.True(t, refund.Lines[0].Debit.Equal(amount("3000")))
	assert.Equal(t, "1-1000", refund.Lines[1].AccountCode)
	assert.True(t, refund.Lines[1].Credit.Equal(amount("3000")))
}

func TestService_Import_StopsOnPostFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	poster := NewMockPoster(ctrl)
	svc := NewService(poster, testConfig)

	input := strings.Join([]string{
		"Tanggal;No. Transaksi;Keterangan;Jumlah",
		"01/03/2025;TRX-001;Penjualan;10,00",
		"02/03/2025;TRX-002;Penjualan;20,00",
	}, "\n")

	poster.EXPECT().
		Post(gomock.Any(), cashier, gomock.Any()).
		Return(nil, journal.ErrUnknownAccount)

	_, err := svc.Import(context.Background(), cashier, strings.NewReader(input))
	require.ErrorIs(t, err, journal.ErrUnknownAccount)
}
