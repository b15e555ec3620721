package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
	"github.com/tilapiasuite/tilapia/internal/actor"
)

var (
	// ErrUnbalanced is returned when an entry's debits and credits do not
	// agree within Tolerance. Nothing is written.
	ErrUnbalanced = errors.New("unbalanced entry")
	// ErrUnknownAccount is returned when a line references a code missing
	// from the chart of accounts.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrEmptyEntry is returned when an entry has no lines.
	ErrEmptyEntry = errors.New("entry has no lines")
	// ErrBothSides is returned when a single line carries both a debit and a credit.
	ErrBothSides = errors.New("line has both debit and credit")
	// ErrNegativeAmount is returned when a debit or credit is negative.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrForbidden is returned when the actor's role does not permit the operation.
	ErrForbidden = errors.New("role not permitted to post")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=journal
type Repository interface {
	ListLines(ctx context.Context, filter ListFilter) ([]*Line, error)
	UpdateLine(ctx context.Context, line *Line) error
	DeleteLine(ctx context.Context, id uuid.UUID) error

	// BeginPost opens the transactional boundary for a multi-row posting:
	// either every line of the entry is written or none.
	BeginPost(ctx context.Context) (PostTx, error)
}

type PostTx interface {
	CreateLines(ctx context.Context, lines []*Line) error
	DeleteByReference(ctx context.Context, referenceCode string) error
	Commit() error
	Rollback() error
}

// AccountResolver resolves codes against the chart of accounts.
type AccountResolver interface {
	Get(ctx context.Context, code string) (*account.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountResolver
}

func NewService(repo Repository, accounts AccountResolver) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// EntryLine is one row of an entry to be posted.
type EntryLine struct {
	AccountCode string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// PostParams describes one logical transaction.
type PostParams struct {
	Date          time.Time
	Class         Class
	ReferenceCode string
	Lines         []EntryLine
}

// Post validates and appends one logical transaction. The entry must contain
// at least one line, every line must carry exactly one side, every account
// must resolve, and total debit must equal total credit within Tolerance.
// All rows are written in a single store transaction.
func (s *Service) Post(ctx context.Context, act actor.Actor, params PostParams) ([]*Line, error) {
	if !act.CanPost() {
		return nil, ErrForbidden
	}

	if params.Class != ClassGeneral && !act.CanAdjust() {
		return nil, ErrForbidden
	}

	if len(params.Lines) == 0 {
		return nil, ErrEmptyEntry
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	lines := make([]*Line, 0, len(params.Lines))

	for _, el := range params.Lines {
		if el.Debit.IsNegative() || el.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: account %s", ErrNegativeAmount, el.AccountCode)
		}

		if el.Debit.IsPositive() && el.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: account %s", ErrBothSides, el.AccountCode)
		}

		acc, err := s.accounts.Get(ctx, el.AccountCode)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, el.AccountCode)
			}

			return nil, fmt.Errorf("resolving account %s: %w", el.AccountCode, err)
		}

		totalDebit = totalDebit.Add(el.Debit)
		totalCredit = totalCredit.Add(el.Credit)

		lines = append(lines, &Line{
			Date:          params.Date,
			AccountCode:   acc.Code,
			AccountName:   acc.Name,
			Description:   el.Description,
			Debit:         el.Debit,
			Credit:        el.Credit,
			Class:         params.Class,
			ReferenceCode: params.ReferenceCode,
		})
	}

	if !WithinTolerance(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debit %s != credit %s",
			ErrUnbalanced, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}

	tx, err := s.repo.BeginPost(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin post: %w", err)
	}
	defer tx.Rollback()

	if err := tx.CreateLines(ctx, lines); err != nil {
		return nil, fmt.Errorf("create lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit post: %w", err)
	}

	return lines, nil
}

// Void deletes every line sharing the reference code, in one store
// transaction. Used by transaction edit and delete flows. No audit trail
// of the removal is kept.
func (s *Service) Void(ctx context.Context, act actor.Actor, referenceCode string) error {
	if !act.CanPost() {
		return ErrForbidden
	}

	tx, err := s.repo.BeginPost(ctx)
	if err != nil {
		return fmt.Errorf("begin void: %w", err)
	}
	defer tx.Rollback()

	if err := tx.DeleteByReference(ctx, referenceCode); err != nil {
		return fmt.Errorf("delete by reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit void: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Line, error) {
	return s.repo.ListLines(ctx, filter)
}

// UpdateLine is an administrative edit of a single posted line. It does not
// rebalance the counterpart lines; keeping the entry balanced is the
// caller's responsibility.
func (s *Service) UpdateLine(ctx context.Context, act actor.Actor, line *Line) error {
	if !act.CanAdjust() {
		return ErrForbidden
	}

	return s.repo.UpdateLine(ctx, line)
}

// DeleteLine is an administrative removal of a single posted line, with the
// same caveat as UpdateLine.
func (s *Service) DeleteLine(ctx context.Context, act actor.Actor, id uuid.UUID) error {
	if !act.CanAdjust() {
		return ErrForbidden
	}

	return s.repo.DeleteLine(ctx, id)
}
