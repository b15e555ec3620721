package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account

	var typeStr, normalStr string

	if err := s.Scan(&acc.Code, &acc.Name, &typeStr, &normalStr, &acc.BeginningBalance); err != nil {
		return nil, err
	}

	acc.Type = account.Type(typeStr)
	acc.NormalBalance = account.NormalBalance(normalStr)

	return &acc, nil
}

const selectAccountColumns = `code, name, type, normal_balance, beginning_balance`

func (s *Store) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (code, name, type, normal_balance, beginning_balance)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		acc.Code,
		acc.Name,
		acc.Type,
		acc.NormalBalance,
		acc.BeginningBalance,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return account.ErrDuplicate
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, code string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE code = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts ORDER BY code ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accs []*account.Account

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accs = append(accs, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accs, nil
}

func (s *Store) UpdateAccount(ctx context.Context, code, name string, beginning decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET name = $1, beginning_balance = $2
		WHERE code = $3
	`

	res, err := s.db.ExecContext(ctx, query, name, beginning, code)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}

// DeleteAccountCascade removes every journal line referencing the account and
// then the account row itself. Both deletes run in one database transaction so
// a failure part-way cannot strand orphaned lines.
func (s *Store) DeleteAccountCascade(ctx context.Context, code string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cascade delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_lines WHERE account_code = $1`, code); err != nil {
		return fmt.Errorf("deleting journal lines: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE code = $1`, code); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cascade delete: %w", err)
	}

	return nil
}
