// README: User store backed by PostgreSQL.
package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			auth0_sub TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// FindOrCreate upserts on auth0_sub and refreshes email/name when the
// identity provider sends newer values.
func (s *Store) FindOrCreate(ctx context.Context, sub, email, name string) (*User, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (auth0_sub, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (auth0_sub) DO UPDATE
		SET email = CASE WHEN EXCLUDED.email != '' THEN EXCLUDED.email ELSE users.email END,
		    name  = CASE WHEN EXCLUDED.name  != '' THEN EXCLUDED.name  ELSE users.name  END
		RETURNING id, auth0_sub, email, name, created_at`,
		sub, email, name,
	)

	var u User
	if err := row.Scan(&u.ID, &u.Auth0Sub, &u.Email, &u.Name, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
