package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tilapiasuite/tilapia/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectRowColumns = `
	id, date, reference_code, description, product_name,
	purchase_quantity, purchase_unit_price, purchase_amount,
	sales_quantity, sales_unit_price, sales_amount,
	balance_quantity, balance_unit_price, balance_amount,
	employee, created_at, updated_at
`

func scanRow(s scanner) (*inventory.CardRow, error) {
	var row inventory.CardRow

	if err := s.Scan(
		&row.ID, &row.Date, &row.ReferenceCode, &row.Description, &row.ProductName,
		&row.PurchaseQuantity, &row.PurchaseUnitPrice, &row.PurchaseAmount,
		&row.SalesQuantity, &row.SalesUnitPrice, &row.SalesAmount,
		&row.BalanceQuantity, &row.BalanceUnitPrice, &row.BalanceAmount,
		&row.Employee, &row.CreatedAt, &row.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &row, nil
}

func (s *Store) ListRows(ctx context.Context, product string) ([]*inventory.CardRow, error) {
	query := `
		SELECT ` + selectRowColumns + `
		FROM inventory_card_rows
		WHERE product_name = $1
		ORDER BY date ASC, created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, product)
	if err != nil {
		return nil, fmt.Errorf("listing card rows: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func collectRows(rows *sql.Rows) ([]*inventory.CardRow, error) {
	var out []*inventory.CardRow

	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}

	return out, nil
}

type moveTx struct {
	tx *sql.Tx
}

func (s *Store) BeginMove(ctx context.Context) (inventory.MoveTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning move tx: %w", err)
	}

	return &moveTx{tx: dbTx}, nil
}

func (mtx *moveTx) Commit() error   { return mtx.tx.Commit() }
func (mtx *moveTx) Rollback() error { return mtx.tx.Rollback() }

func (mtx *moveTx) LatestBalance(ctx context.Context, product string) (*inventory.CardRow, error) {
	query := `
		SELECT ` + selectRowColumns + `
		FROM inventory_card_rows
		WHERE product_name = $1
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT 1
		FOR UPDATE
	`

	row, err := scanRow(mtx.tx.QueryRowContext(ctx, query, product))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading latest balance: %w", err)
	}

	return row, nil
}

func (mtx *moveTx) CreateRow(ctx context.Context, row *inventory.CardRow) error {
	query := `
		INSERT INTO inventory_card_rows (
			date, reference_code, description, product_name,
			purchase_quantity, purchase_unit_price, purchase_amount,
			sales_quantity, sales_unit_price, sales_amount,
			balance_quantity, balance_unit_price, balance_amount,
			employee, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := mtx.tx.QueryRowContext(ctx, query,
		row.Date,
		row.ReferenceCode,
		row.Description,
		row.ProductName,
		row.PurchaseQuantity,
		row.PurchaseUnitPrice,
		row.PurchaseAmount,
		row.SalesQuantity,
		row.SalesUnitPrice,
		row.SalesAmount,
		row.BalanceQuantity,
		row.BalanceUnitPrice,
		row.BalanceAmount,
		row.Employee,
	).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating card row: %w", err)
	}

	return nil
}

func (mtx *moveTx) AllRowsForUpdate(ctx context.Context) ([]*inventory.CardRow, error) {
	query := `
		SELECT ` + selectRowColumns + `
		FROM inventory_card_rows
		ORDER BY date ASC, created_at ASC, id ASC
		FOR UPDATE
	`

	rows, err := mtx.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing card rows for update: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func (mtx *moveTx) UpdateBalances(ctx context.Context, row *inventory.CardRow) error {
	query := `
		UPDATE inventory_card_rows
		SET balance_quantity = $1, balance_unit_price = $2, balance_amount = $3, updated_at = NOW()
		WHERE id = $4
	`

	if _, err := mtx.tx.ExecContext(ctx, query,
		row.BalanceQuantity,
		row.BalanceUnitPrice,
		row.BalanceAmount,
		row.ID,
	); err != nil {
		return fmt.Errorf("updating card row balances: %w", err)
	}

	return nil
}
