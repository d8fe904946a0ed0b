// README: History store backed by PostgreSQL (JSONB payloads).
package history

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the histories table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS histories (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			subtitle TEXT NOT NULL DEFAULT '',
			user_request TEXT NOT NULL,
			target_date TEXT NOT NULL DEFAULT '',
			path_options JSONB NOT NULL,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_histories_user_created
		ON histories (user_id, created_at DESC)`)
	return err
}

func (s *Store) Insert(ctx context.Context, h *History) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO histories (user_id, title, subtitle, user_request, target_date, path_options, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		h.UserID, h.Title, h.Subtitle, h.UserRequest, h.TargetDate, h.PathOptions, h.Metadata,
	)
	return row.Scan(&h.ID, &h.CreatedAt)
}

// ListByUser returns a user's histories, newest first.
func (s *Store) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]History, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, subtitle, user_request, target_date, path_options, metadata, created_at
		FROM histories
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []History{}
	for rows.Next() {
		var h History
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Subtitle, &h.UserRequest, &h.TargetDate, &h.PathOptions, &h.Metadata, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id int64) (*History, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, title, subtitle, user_request, target_date, path_options, metadata, created_at
		FROM histories
		WHERE id = $1`, id,
	)

	var h History
	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Subtitle, &h.UserRequest, &h.TargetDate, &h.PathOptions, &h.Metadata, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) Delete(ctx context.Context, id, userID int64) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM histories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
