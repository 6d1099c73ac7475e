// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorites (Postgres) persists favorites on the users.account row.

# Schema Table Mapping
  - users.account.favorites: text[] NOT NULL, insertion ordered.
*/
package favorites

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cinelist/internal/platform/dberr"
)

// Column and table names of the user row.
const (
	accountTable     = "users.account"
	accountID        = "id"
	accountFavorites = "favorites"
	accountUpdatedAt = "updatedat"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres favorites store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ListFavorites reads the favorites array of one user.

Returns:
  - []string: Stored references
  - error: ErrUserNotFound or wrapped database failure
*/
func (repository *PostgresRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountFavorites, accountTable, accountID)

	var favorites []string
	if err := repository.pool.QueryRow(ctx, query, userID).Scan(&favorites); err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, dberr.Wrap(err, "postgres_favorites_list_failed")
	}

	if favorites == nil {
		favorites = []string{}
	}
	return favorites, nil
}

/*
UpdateFavorites runs mutate inside a transaction holding the user row lock.

Description: SELECT ... FOR UPDATE blocks any concurrent mutation of the same
user until commit, so the read handed to mutate is the one the write
replaces. A mutation error or a cancelled context rolls the transaction back.

Returns:
  - error: ErrUserNotFound, the mutation's error, or wrapped database failure
*/
func (repository *PostgresRepository) UpdateFavorites(ctx context.Context, userID string, mutate Mutation) error {
	selectQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		accountFavorites, accountTable, accountID,
	)
	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		accountTable, accountFavorites, accountUpdatedAt, accountID,
	)

	err := pgx.BeginFunc(ctx, repository.pool, func(tx pgx.Tx) error {
		var current []string
		if err := tx.QueryRow(ctx, selectQuery, userID).Scan(&current); err != nil {
			if dberr.IsNoRows(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("lock user row: %w", err)
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}

		if next == nil {
			next = []string{}
		}
		if _, err := tx.Exec(ctx, updateQuery, userID, next); err != nil {
			return fmt.Errorf("write favorites: %w", err)
		}
		return nil
	})

	return dberr.Wrap(err, "postgres_favorites_update_failed")
}
