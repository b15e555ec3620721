package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/actor"
	"github.com/tilapiasuite/tilapia/internal/journal"
)

var (
	// ErrNotFound is returned when no asset exists under the given code.
	ErrNotFound = errors.New("asset not found")
	// ErrDuplicate is returned when an asset code is already registered.
	ErrDuplicate = errors.New("asset already exists")
	// ErrInvalidMethod is returned when the depreciation method is unknown.
	ErrInvalidMethod = errors.New("invalid depreciation method")
	// ErrInvalidSchedule is returned when the register fields cannot
	// produce a depreciation schedule.
	ErrInvalidSchedule = errors.New("invalid depreciation schedule")
	// ErrAlreadyPosted is returned when the period's depreciation entry
	// already exists in the journal.
	ErrAlreadyPosted = errors.New("depreciation already posted for period")
	// ErrYearOutOfRange is returned when the requested year falls outside
	// the asset's useful life.
	ErrYearOutOfRange = errors.New("year outside useful life")
	// ErrForbidden is returned when the actor's role does not permit the operation.
	ErrForbidden = errors.New("role not permitted for asset operation")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=asset
type Repository interface {
	CreateAsset(ctx context.Context, a *Asset) error
	GetAsset(ctx context.Context, code string) (*Asset, error)
	ListAssets(ctx context.Context) ([]*Asset, error)
	UpdateAccumulated(ctx context.Context, code string, accumulated decimal.Decimal) error
	DeleteAsset(ctx context.Context, code string) error
}

// LineSource checks the journal for existing depreciation references.
type LineSource interface {
	List(ctx context.Context, filter journal.ListFilter) ([]*journal.Line, error)
}

// Poster appends validated journal entries; satisfied by journal.Service.
type Poster interface {
	Post(ctx context.Context, act actor.Actor, params journal.PostParams) ([]*journal.Line, error)
}

type Service struct {
	repo   Repository
	lines  LineSource
	poster Poster
}

func NewService(repo Repository, lines LineSource, poster Poster) *Service {
	return &Service{repo: repo, lines: lines, poster: poster}
}

// RegisterParams describes a new fixed asset.
type RegisterParams struct {
	Code            string
	Name            string
	Cost            decimal.Decimal
	SalvageValue    decimal.Decimal
	UsefulLifeYears int
	Method          Method
	PurchaseDate    time.Time

	ExpenseAccountCode     string
	AccumulatedAccountCode string
}

// Register adds an asset to the register with zero accumulated
// depreciation. The schedule is derived up front so an inconsistent
// register entry is rejected before it is stored.
func (s *Service) Register(ctx context.Context, act actor.Actor, params RegisterParams) (*Asset, error) {
	if !act.CanAdjust() {
		return nil, ErrForbidden
	}

	a := &Asset{
		Code:            params.Code,
		Name:            params.Name,
		Cost:            params.Cost,
		SalvageValue:    params.SalvageValue,
		UsefulLifeYears: params.UsefulLifeYears,
		Method:          params.Method,
		PurchaseDate:    params.PurchaseDate,

		ExpenseAccountCode:     params.ExpenseAccountCode,
		AccumulatedAccountCode: params.AccumulatedAccountCode,

		AccumulatedDepreciation: decimal.Zero,
	}

	if _, err := a.Schedule(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateAsset(ctx, a); err != nil {
		return nil, fmt.Errorf("creating asset %s: %w", params.Code, err)
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, code string) (*Asset, error) {
	return s.repo.GetAsset(ctx, code)
}

func (s *Service) List(ctx context.Context) ([]*Asset, error) {
	return s.repo.ListAssets(ctx)
}

func (s *Service) Remove(ctx context.Context, act actor.Actor, code string) error {
	if !act.CanAdjust() {
		return ErrForbidden
	}

	if _, err := s.repo.GetAsset(ctx, code); err != nil {
		return err
	}

	return s.repo.DeleteAsset(ctx, code)
}

// DepreciationReference is the journal reference for one asset-year.
func DepreciationReference(code string, year int) string {
	return fmt.Sprintf("DEP-%s-%d", code, year)
}

// PostDepreciation posts year N of the asset's schedule as an
// adjustment-class entry (debit depreciation expense, credit accumulated
// depreciation) and rolls the register's accumulated total forward. The
// entry is keyed by reference code, so posting the same year twice fails
// with ErrAlreadyPosted and writes nothing.
func (s *Service) PostDepreciation(ctx context.Context, act actor.Actor, code string, year int) ([]*journal.Line, error) {
	if !act.CanAdjust() {
		return nil, ErrForbidden
	}

	a, err := s.repo.GetAsset(ctx, code)
	if err != nil {
		return nil, err
	}

	schedule, err := a.Schedule()
	if err != nil {
		return nil, err
	}

	if year < 1 || year > len(schedule) {
		return nil, fmt.Errorf("%w: year %d, life %d", ErrYearOutOfRange, year, len(schedule))
	}

	entry := schedule[year-1]
	ref := DepreciationReference(code, year)

	existing, err := s.lines.List(ctx, journal.ListFilter{ReferenceCode: &ref})
	if err != nil {
		return nil, fmt.Errorf("checking reference %s: %w", ref, err)
	}

	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPosted, ref)
	}

	if entry.Expense.IsZero() {
		return nil, nil
	}

	description := fmt.Sprintf("Penyusutan %s tahun ke-%d", a.Name, year)

	lines, err := s.poster.Post(ctx, act, journal.PostParams{
		Date:          a.PurchaseDate.AddDate(year, 0, 0),
		Class:         journal.ClassAdjustment,
		ReferenceCode: ref,
		Lines: []journal.EntryLine{
			{AccountCode: a.ExpenseAccountCode, Description: description, Debit: entry.Expense},
			{AccountCode: a.AccumulatedAccountCode, Description: description, Credit: entry.Expense},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("posting depreciation %s: %w", ref, err)
	}

	accumulated := a.AccumulatedDepreciation.Add(entry.Expense)
	if err := s.repo.UpdateAccumulated(ctx, code, accumulated); err != nil {
		return nil, fmt.Errorf("updating register for %s: %w", code, err)
	}

	return lines, nil
}
