package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/tilapiasuite/tilapia/internal/asset"
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

const selectAssetColumns = `
	code, name, cost, salvage_value, useful_life_years, method, purchase_date,
	expense_account_code, accumulated_account_code, accumulated_depreciation,
	created_at, updated_at
`

func scanAsset(s scanner) (*asset.Asset, error) {
	var a asset.Asset

	var methodStr string

	if err := s.Scan(
		&a.Code, &a.Name, &a.Cost, &a.SalvageValue, &a.UsefulLifeYears,
		&methodStr, &a.PurchaseDate,
		&a.ExpenseAccountCode, &a.AccumulatedAccountCode, &a.AccumulatedDepreciation,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Method = asset.Method(methodStr)

	return &a, nil
}

func (s *Store) CreateAsset(ctx context.Context, a *asset.Asset) error {
	query := `
		INSERT INTO assets (
			code, name, cost, salvage_value, useful_life_years, method, purchase_date,
			expense_account_code, accumulated_account_code, accumulated_depreciation,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.Code,
		a.Name,
		a.Cost,
		a.SalvageValue,
		a.UsefulLifeYears,
		a.Method,
		a.PurchaseDate,
		a.ExpenseAccountCode,
		a.AccumulatedAccountCode,
		a.AccumulatedDepreciation,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return asset.ErrDuplicate
		}

		return fmt.Errorf("creating asset: %w", err)
	}

	return nil
}

func (s *Store) GetAsset(ctx context.Context, code string) (*asset.Asset, error) {
	query := `SELECT ` + selectAssetColumns + ` FROM assets WHERE code = $1`

	a, err := scanAsset(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, asset.ErrNotFound
		}

		return nil, fmt.Errorf("getting asset: %w", err)
	}

	return a, nil
}

func (s *Store) ListAssets(ctx context.Context) ([]*asset.Asset, error) {
	query := `SELECT ` + selectAssetColumns + ` FROM assets ORDER BY code ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []*asset.Asset

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}

		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating asset rows: %w", err)
	}

	return assets, nil
}

func (s *Store) UpdateAccumulated(ctx context.Context, code string, accumulated decimal.Decimal) error {
	query := `
		UPDATE assets
		SET accumulated_depreciation = $1, updated_at = NOW()
		WHERE code = $2
	`

	res, err := s.db.ExecContext(ctx, query, accumulated, code)
	if err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return asset.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteAsset(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE code = $1`, code); err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}

	return nil
}
