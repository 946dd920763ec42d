package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type PrefabRepo struct {
	db *DB
}

func NewPrefabRepo(db *DB) *PrefabRepo {
	return &PrefabRepo{db: db}
}

func (r *PrefabRepo) Save(ctx context.Context, name string, doc []byte) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO prefabs (name, document) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		name, doc,
	)
	return err
}

func (r *PrefabRepo) Load(ctx context.Context, name string) ([]byte, error) {
	var doc []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT document FROM prefabs WHERE name = $1`, name,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrPrefabNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Names lists stored prefabs alphabetically.
func (r *PrefabRepo) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM prefabs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
