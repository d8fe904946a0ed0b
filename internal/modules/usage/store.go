// README: Building usage store backed by PostgreSQL (upsert counters).
package usage

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

// EnsureSchema creates the building_usage table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS building_usage (
			user_id BIGINT NOT NULL REFERENCES users(id),
			location_key TEXT NOT NULL,
			location TEXT NOT NULL,
			count INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, location_key)
		)`)
	return err
}

// Increment bumps one location counter, inserting the row on first sight.
func (s *Store) Increment(ctx context.Context, userID int64, key, location string, delta int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO building_usage (user_id, location_key, location, count, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, location_key) DO UPDATE
		SET count = building_usage.count + $4,
		    updated_at = NOW()`,
		userID, key, location, delta,
	)
	return err
}

// ListByUser returns a user's counters, most visited first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]BuildingUsage, error) {
	rows, err := s.db.Query(ctx, `
		SELECT location, count, updated_at
		FROM building_usage
		WHERE user_id = $1
		ORDER BY count DESC, location ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BuildingUsage{}
	for rows.Next() {
		var b BuildingUsage
		if err := rows.Scan(&b.Location, &b.Count, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
