package asset_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/asset"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

var (
	accountant = actor.Actor{UserID: "user-akuntan", Role: actor.RoleAccountant}
	cashier    = actor.Actor{UserID: "user-kasir", Role: actor.RoleCashier}
)

func newService(t *testing.T) (*asset.Service, *asset.MockRepository, *asset.MockLineSource, *asset.MockPoster) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := asset.NewMockRepository(ctrl)
	lines := asset.NewMockLineSource(ctrl)
	poster := asset.NewMockPoster(ctrl)

	return asset.NewService(repo, lines, poster), repo, lines, poster
}

func registeredPump() *asset.Asset {
	return &asset.Asset{
		Code:            "PMP-01",
		Name:            "Pompa Air",
		Cost:            amount("10000"),
		SalvageValue:    amount("1000"),
		UsefulLifeYears: 3,
		Method:          asset.MethodStraightLine,
		PurchaseDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),

		ExpenseAccountCode:     "6-3000",
		AccumulatedAccountCode: "1-2110",

		AccumulatedDepreciation: amount("0"),
	}
}

func TestService_Register(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().CreateAsset(gomock.Any(), gomock.Any()).Return(nil)

	a, err := svc.Register(context.Background(), accountant, asset.RegisterParams{
		Code:            "PMP-01",
		Name:            "Pompa Air",
		Cost:            amount("10000"),
		SalvageValue:    amount("1000"),
		UsefulLifeYears: 3,
		Method:          asset.MethodStraightLine,

		ExpenseAccountCode:     "6-3000",
		AccumulatedAccountCode: "1-2110",
	})
	require.NoError(t, err)
	assert.True(t, a.AccumulatedDepreciation.IsZero())
}

func TestService_Register_RejectsBadSchedule(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.Register(context.Background(), accountant, asset.RegisterParams{
		Code:            "PMP-01",
		Cost:            amount("10000"),
		UsefulLifeYears: 3,
		Method:          "units_of_production",
	})
	require.ErrorIs(t, err, asset.ErrInvalidMethod)

	_, err = svc.Register(context.Background(), cashier, asset.RegisterParams{})
	require.ErrorIs(t, err, asset.ErrForbidden)
}

func TestService_PostDepreciation(t *testing.T) {
	svc, repo, lines, poster := newService(t)

	repo.EXPECT().GetAsset(gomock.Any(), "PMP-01").Return(registeredPump(), nil)

	ref := "DEP-PMP-01-1"
	lines.EXPECT().
		List(gomock.Any(), journal.ListFilter{ReferenceCode: &ref}).
		Return(nil, nil)

	poster.EXPECT().
		Post(gomock.Any(), accountant, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ actor.Actor, params journal.PostParams) ([]*journal.Line, error) {
			assert.Equal(t, journal.ClassAdjustment, params.Class)
			assert.Equal(t, ref, params.ReferenceCode)
			require.Len(t, params.Lines, 2)

			assert.Equal(t, "6-3000", params.Lines[0].AccountCode)
			assert.True(t, params.Lines[0].Debit.Equal(amount("3000")))
			assert.Equal(t, "1-2110", params.Lines[1].AccountCode)
			assert.True(t, params.Lines[1].Credit.Equal(amount("3000")))

			return []*journal.Line{{}, {}}, nil
		})

	repo.EXPECT().
		UpdateAccumulated(gomock.Any(), "PMP-01", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, accumulated decimal.Decimal) error {
			assert.True(t, accumulated.Equal(amount("3000")))
			return nil
		})

	posted, err := svc.PostDepreciation(context.Background(), accountant, "PMP-01", 1)
	require.NoError(t, err)
	assert.Len(t, posted, 2)
}

func TestService_PostDepreciation_AlreadyPosted(t *testing.T) {
	svc, repo, lines, _ := newService(t)

	repo.EXPECT().GetAsset(gomock.Any(), "PMP-01").Return(registeredPump(), nil)

	lines.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*journal.Line{{ReferenceCode: "DEP-PMP-01-1"}}, nil)

	// No Post, no register update.
	_, err := svc.PostDepreciation(context.Background(), accountant, "PMP-01", 1)
	require.ErrorIs(t, err, asset.ErrAlreadyPosted)
}

func TestService_PostDepreciation_YearOutOfRange(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().GetAsset(gomock.Any(), "PMP-01").Return(registeredPump(), nil).Times(2)

	_, err := svc.PostDepreciation(context.Background(), accountant, "PMP-01", 0)
	require.ErrorIs(t, err, asset.ErrYearOutOfRange)

	_, err = svc.PostDepreciation(context.Background(), accountant, "PMP-01", 4)
	require.ErrorIs(t, err, asset.ErrYearOutOfRange)
}

func TestService_PostDepreciation_Forbidden(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.PostDepreciation(context.Background(), cashier, "PMP-01", 1)
	require.ErrorIs(t, err, asset.ErrForbidden)
}
