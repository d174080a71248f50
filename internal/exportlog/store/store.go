package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/presence/internal/exportlog"
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

// Expected column order: id, filename, format, layout, scope, row_count, username, created_at
func scanEntry(s scanner) (*exportlog.Entry, error) {
	var e exportlog.Entry

	if err := s.Scan(&e.ID, &e.Filename, &e.Format, &e.Layout, &e.Scope, &e.Rows, &e.Username, &e.CreatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

const selectEntryColumns = `id, filename, format, layout, scope, row_count, username, created_at`

func (s *Store) CreateEntry(ctx context.Context, e *exportlog.Entry) error {
	query := `
		INSERT INTO export_log (filename, format, layout, scope, row_count, username, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Filename,
		e.Format,
		e.Layout,
		e.Scope,
		e.Rows,
		e.Username,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating export entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*exportlog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM export_log WHERE id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, exportlog.ErrNotFound
		}

		return nil, fmt.Errorf("getting export entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter exportlog.ListFilter) ([]*exportlog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM export_log WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Username != nil {
		query += fmt.Sprintf(" AND username = $%d", argIdx)

		args = append(args, *filter.Username)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing export entries: %w", err)
	}
	defer rows.Close()

	var entries []*exportlog.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning export entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export entries: %w", err)
	}

	return entries, nil
}
