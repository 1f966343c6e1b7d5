// Package store implements the core query executor on top of a pgx
// connection pool.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"distro-reports/internal/core"
)

// Store executes report queries against PostgreSQL. It satisfies
// core.Executor: rows come back as column-name maps, empty result sets are
// empty slices, and any driver failure surfaces as *core.DataAccessError.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Select(ctx context.Context, query string, args ...any) ([]core.Row, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &core.DataAccessError{Err: err}
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, &core.DataAccessError{Err: err}
	}

	out := make([]core.Row, len(maps))
	for i, m := range maps {
		out[i] = core.Row(m)
	}
	return out, nil
}

func (s *Store) SelectOne(ctx context.Context, query string, args ...any) (core.Row, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &core.DataAccessError{Err: err}
	}

	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.DataAccessError{Err: err}
	}
	return core.Row(m), nil
}
