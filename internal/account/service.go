package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/actor"
)

var (
	// ErrNotFound is returned when no account exists with the given code.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate is returned when registering a code that already exists.
	ErrDuplicate = errors.New("account code already registered")
	// ErrInvalidCode is returned when a code fails the <digit>-<4digit> format.
	ErrInvalidCode = errors.New("invalid account code format")
	// ErrForbidden is returned when the actor's role does not permit the operation.
	ErrForbidden = errors.New("role not permitted to manage accounts")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, code string) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	UpdateAccount(ctx context.Context, code string, name string, beginning decimal.Decimal) error

	// DeleteAccountCascade removes all journal lines referencing the account
	// and then the account itself, inside a single database transaction.
	DeleteAccountCascade(ctx context.Context, code string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Code             string
	Name             string
	NormalBalance    NormalBalance
	BeginningBalance decimal.Decimal
}

// Register adds a new account to the chart. The account's type is derived
// from the code's class digit; NormalBalance defaults by type when left empty.
func (s *Service) Register(ctx context.Context, act actor.Actor, params RegisterParams) (*Account, error) {
	if !act.CanManageAccounts() {
		return nil, ErrForbidden
	}

	if !ValidCode(params.Code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCode, params.Code)
	}

	typ, _ := Classify(params.Code)

	normal := params.NormalBalance
	if normal == "" {
		normal = DefaultNormalBalance(typ)
	}

	acc := &Account{
		Code:             params.Code,
		Name:             params.Name,
		Type:             typ,
		NormalBalance:    normal,
		BeginningBalance: params.BeginningBalance,
	}

	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// RenameOrAdjust updates an account's name and beginning balance.
// Code and normal balance are immutable after creation.
func (s *Service) RenameOrAdjust(ctx context.Context, act actor.Actor, code, newName string, newBeginning decimal.Decimal) error {
	if !act.CanManageAccounts() {
		return ErrForbidden
	}

	return s.repo.UpdateAccount(ctx, code, newName, newBeginning)
}

// Remove deletes the account and every journal line referencing it.
// The deletion is destructive and unrecoverable; callers must confirm
// before invoking it.
func (s *Service) Remove(ctx context.Context, act actor.Actor, code string) error {
	if !act.CanManageAccounts() {
		return ErrForbidden
	}

	if _, err := s.repo.GetAccount(ctx, code); err != nil {
		return err
	}

	return s.repo.DeleteAccountCascade(ctx, code)
}

func (s *Service) Get(ctx context.Context, code string) (*Account, error) {
	return s.repo.GetAccount(ctx, code)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}
