package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_PosExport(t *testing.T) {
	// Real exports carry preamble rows before the header and a totals
	// footer after the data.
	input := strings.Join([]string{
		"Toko Tilapia Jaya",
		"Laporan Penjualan;01/03/2025 - 31/03/2025",
		"",
		"Tanggal;No. Transaksi;Keterangan;Jumlah",
		"01/03/2025;TRX-001;Penjualan ikan segar;12.500,00",
		"02/03/2025;TRX-002;Refund pesanan;-3.000,00",
		"02/03/2025;TRX-003;Penjualan ikan asap;25.000,00",
		";;Total;34.500,00",
	}, "\n")

	movements, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 3)

	first := movements[0]
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "TRX-001", first.ReferenceCode)
	assert.Equal(t, "Penjualan ikan segar", first.Description)
	assert.True(t, first.Amount.Equal(amount("12500")))
	assert.True(t, first.Inflow)

	refund := movements[1]
	assert.True(t, refund.Amount.Equal(amount("3000")))
	assert.False(t, refund.Inflow)
}

func TestParser_BankMutation(t *testing.T) {
	// Comma-separated with split debit/credit columns; amounts quoted
	// because of the decimal comma.
	input := strings.Join([]string{
		`Tanggal,Keterangan,No. Referensi,Debet,Kredit`,
		`03/03/2025,Setoran tunai,FT25062,,"1.000.000,00"`,
		`05/03/2025,Biaya admin,ADM03,"7.500,00",`,
	}, "\n")

	movements, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, movements, 2)

	deposit := movements[0]
	assert.Equal(t, "FT25062", deposit.ReferenceCode)
	assert.True(t, deposit.Amount.Equal(amount("1000000")))
	assert.True(t, deposit.Inflow)

	fee := movements[1]
	assert.True(t, fee.Amount.Equal(amount("7500")))
	assert.False(t, fee.Inflow)
}

func TestParser_UnknownFormat(t *testing.T) {
	input := "Kolom A;Kolom B\nfoo;bar\n"

	_, err := NewParser().Parse(strings.NewReader(input))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseIndonesianAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"-12.500,00", "-12500"},
		{"10,00", "10"},
		{"Rp 2.500,00", "2500"},
	}

	for _, tt := range tests {
		got, err := parseIndonesianAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(amount(tt.want)), "%s: want %s, got %s", tt.in, tt.want, got)
	}

	_, err := parseIndonesianAmount("n/a")
	require.Error(t, err)
}
