package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tilapiasuite/tilapia/internal/journal"
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

const selectLineColumns = `
	id, date, account_code, account_name, description, debit, credit,
	class, reference_code, created_at, updated_at
`

func scanLine(s scanner) (*journal.Line, error) {
	var line journal.Line

	var classStr string

	if err := s.Scan(
		&line.ID, &line.Date, &line.AccountCode, &line.AccountName, &line.Description,
		&line.Debit, &line.Credit, &classStr, &line.ReferenceCode,
		&line.CreatedAt, &line.UpdatedAt,
	); err != nil {
		return nil, err
	}

	line.Class = journal.Class(classStr)

	return &line, nil
}

func (s *Store) ListLines(ctx context.Context, filter journal.ListFilter) ([]*journal.Line, error) {
	query := `SELECT ` + selectLineColumns + ` FROM journal_lines WHERE 1=1`

	var args []any

	argIdx := 1

	if len(filter.Classes) > 0 {
		query += fmt.Sprintf(" AND class = ANY($%d)", argIdx)

		classes := make([]string, len(filter.Classes))
		for i, c := range filter.Classes {
			classes[i] = string(c)
		}

		args = append(args, classes)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.AccountCode != nil {
		query += fmt.Sprintf(" AND account_code = $%d", argIdx)

		args = append(args, *filter.AccountCode)
		argIdx++
	}

	if filter.ReferenceCode != nil {
		query += fmt.Sprintf(" AND reference_code = $%d", argIdx)

		args = append(args, *filter.ReferenceCode)
		argIdx++
	}

	query += " ORDER BY date ASC, created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal lines: %w", err)
	}
	defer rows.Close()

	var lines []*journal.Line

	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}

	return lines, nil
}

func (s *Store) UpdateLine(ctx context.Context, line *journal.Line) error {
	query := `
		UPDATE journal_lines
		SET date = $1, account_code = $2, account_name = $3, description = $4,
		    debit = $5, credit = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		line.Date,
		line.AccountCode,
		line.AccountName,
		line.Description,
		line.Debit,
		line.Credit,
		line.ID,
	)
	if err != nil {
		return fmt.Errorf("updating journal line: %w", err)
	}

	return nil
}

func (s *Store) DeleteLine(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM journal_lines WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting journal line: %w", err)
	}

	return nil
}

type postTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPost(ctx context.Context) (journal.PostTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning post tx: %w", err)
	}

	return &postTx{tx: dbTx}, nil
}

func (ptx *postTx) Commit() error   { return ptx.tx.Commit() }
func (ptx *postTx) Rollback() error { return ptx.tx.Rollback() }

func (ptx *postTx) CreateLines(ctx context.Context, lines []*journal.Line) error {
	query := `
		INSERT INTO journal_lines (date, account_code, account_name, description, debit, credit, class, reference_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, line := range lines {
		err := ptx.tx.QueryRowContext(ctx, query,
			line.Date,
			line.AccountCode,
			line.AccountName,
			line.Description,
			line.Debit,
			line.Credit,
			line.Class,
			line.ReferenceCode,
		).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating journal line: %w", err)
		}
	}

	return nil
}

func (ptx *postTx) DeleteByReference(ctx context.Context, referenceCode string) error {
	if _, err := ptx.tx.ExecContext(ctx, `DELETE FROM journal_lines WHERE reference_code = $1`, referenceCode); err != nil {
		return fmt.Errorf("deleting lines by reference: %w", err)
	}

	return nil
}
