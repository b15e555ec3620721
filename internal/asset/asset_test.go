package asset_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilapiasuite/tilapia/internal/asset"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pump(method asset.Method, cost, salvage string, life int) *asset.Asset {
	return &asset.Asset{
		Code:            "PMP-01",
		Name:            "Pompa Air",
		Cost:            amount(cost),
		SalvageValue:    amount(salvage),
		UsefulLifeYears: life,
		Method:          method,
	}
}

func expenses(t *testing.T, a *asset.Asset) []decimal.Decimal {
	t.Helper()

	schedule, err := a.Schedule()
	require.NoError(t, err)
	require.Len(t, schedule, a.UsefulLifeYears)

	out := make([]decimal.Decimal, len(schedule))
	for i, e := range schedule {
		out[i] = e.Expense
	}

	return out
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		name  string
		asset *asset.Asset
		want  []string
	}{
		{
			name:  "straight line",
			asset: pump(asset.MethodStraightLine, "10000", "1000", 3),
			want:  []string{"3000", "3000", "3000"},
		},
		{
			name: "straight line rounding remainder lands in final year",
			// 10000/3 rounds to 3333.33; the last year absorbs the extra cent.
			asset: pump(asset.MethodStraightLine, "10000", "0", 3),
			want:  []string{"3333.33", "3333.33", "3333.34"},
		},
		{
			name:  "double declining balance",
			asset: pump(asset.MethodDecliningBalance, "10000", "1000", 5),
			want:  []string{"4000", "2400", "1440", "864", "296"},
		},
		{
			name:  "sum of years digits",
			asset: pump(asset.MethodSumOfYears, "10000", "1000", 3),
			want:  []string{"4500", "3000", "1500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expenses(t, tt.asset)

			total := decimal.Zero

			for i, want := range tt.want {
				assert.True(t, got[i].Equal(amount(want)),
					"year %d: want %s, got %s", i+1, want, got[i])
				total = total.Add(got[i])
			}

			// Every method fully depreciates down to salvage.
			assert.True(t, total.Equal(tt.asset.Cost.Sub(tt.asset.SalvageValue)))
		})
	}
}

func TestSchedule_FinalBookValueIsSalvage(t *testing.T) {
	a := pump(asset.MethodDecliningBalance, "10000", "1000", 5)

	schedule, err := a.Schedule()
	require.NoError(t, err)

	last := schedule[len(schedule)-1]
	assert.True(t, last.BookValue.Equal(amount("1000")))
	assert.True(t, last.Accumulated.Equal(amount("9000")))
}

func TestSchedule_Invalid(t *testing.T) {
	_, err := pump("units_of_production", "10000", "0", 3).Schedule()
	require.ErrorIs(t, err, asset.ErrInvalidMethod)

	_, err = pump(asset.MethodStraightLine, "1000", "2000", 3).Schedule()
	require.ErrorIs(t, err, asset.ErrInvalidSchedule)

	_, err = pump(asset.MethodStraightLine, "1000", "0", 0).Schedule()
	require.ErrorIs(t, err, asset.ErrInvalidSchedule)
}

func TestBookValue(t *testing.T) {
	a := pump(asset.MethodStraightLine, "10000", "1000", 3)
	a.AccumulatedDepreciation = amount("6000")

	assert.True(t, a.BookValue().Equal(amount("4000")))
}
