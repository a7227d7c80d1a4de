package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// HunterRow mirrors one row of the hunters table: where the hunter stood
// when last saved. Tile contents are never persisted; the world regenerates
// around the restored position.
type HunterRow struct {
	Name  string
	X     float64
	Z     float64
	Yaw   float64
	Score int32
}

// HunterRepo persists hunter profiles.
type HunterRepo struct {
	db *DB
}

func NewHunterRepo(db *DB) *HunterRepo {
	return &HunterRepo{db: db}
}

// Load fetches a profile by name. Returns (nil, nil) when no row exists.
func (r *HunterRepo) Load(ctx context.Context, name string) (*HunterRow, error) {
	row := &HunterRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT name, x, z, yaw, score FROM hunters WHERE name = $1`,
		name,
	).Scan(&row.Name, &row.X, &row.Z, &row.Yaw, &row.Score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load hunter %s: %w", name, err)
	}
	return row, nil
}

// Save upserts a profile.
func (r *HunterRepo) Save(ctx context.Context, row *HunterRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO hunters (name, x, z, yaw, score, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (name) DO UPDATE
		 SET x = EXCLUDED.x, z = EXCLUDED.z, yaw = EXCLUDED.yaw,
		     score = EXCLUDED.score, updated_at = now()`,
		row.Name, row.X, row.Z, row.Yaw, row.Score,
	)
	if err != nil {
		return fmt.Errorf("save hunter %s: %w", row.Name, err)
	}
	return nil
}
