package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrSceneNotFound  = errors.New("scene not found")
	ErrPrefabNotFound = errors.New("prefab not found")
)

type SceneRow struct {
	Name      string
	Document  []byte
	Entities  int
	Revision  int
	UpdatedAt time.Time
}

type SceneRevision struct {
	Revision  int
	CreatedAt time.Time
}

type SceneRepo struct {
	db *DB
}

func NewSceneRepo(db *DB) *SceneRepo {
	return &SceneRepo{db: db}
}

// entityCount reads len(entities) from a scene document without decoding
// the components.
func entityCount(doc []byte) (int, error) {
	var head struct {
		Entities []json.RawMessage `json:"entities"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return 0, fmt.Errorf("scene document: %w", err)
	}
	return len(head.Entities), nil
}

// Save stores doc under name and appends it to the scene's revision history
// in one transaction. It returns the new revision number.
func (r *SceneRepo) Save(ctx context.Context, name string, doc []byte) (int, error) {
	n, err := entityCount(doc)
	if err != nil {
		return 0, err
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("scene save begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var rev int
	err = tx.QueryRow(ctx,
		`INSERT INTO scenes (name, document, entities)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE
		 SET document = EXCLUDED.document, entities = EXCLUDED.entities,
		     revision = scenes.revision + 1, updated_at = NOW()
		 RETURNING revision`,
		name, doc, n,
	).Scan(&rev)
	if err != nil {
		return 0, fmt.Errorf("scene upsert: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO scene_revisions (scene_name, revision, document)
		 VALUES ($1, $2, $3)`,
		name, rev, doc,
	); err != nil {
		return 0, fmt.Errorf("scene revision insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	r.db.log.Debug("scene saved", zap.String("name", name), zap.Int("revision", rev), zap.Int("entities", n))
	return rev, nil
}

// Load returns the latest document of name.
func (r *SceneRepo) Load(ctx context.Context, name string) (*SceneRow, error) {
	row := &SceneRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT name, document, entities, revision, updated_at
		 FROM scenes WHERE name = $1`, name,
	).Scan(&row.Name, &row.Document, &row.Entities, &row.Revision, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSceneNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// LoadRevision returns an older document of name.
func (r *SceneRepo) LoadRevision(ctx context.Context, name string, rev int) ([]byte, error) {
	var doc []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT document FROM scene_revisions
		 WHERE scene_name = $1 AND revision = $2`, name, rev,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q revision %d", ErrSceneNotFound, name, rev)
	}
	return doc, err
}

// List returns every stored scene without its document, newest first.
func (r *SceneRepo) List(ctx context.Context) ([]SceneRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT name, entities, revision, updated_at
		 FROM scenes ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SceneRow
	for rows.Next() {
		var s SceneRow
		if err := rows.Scan(&s.Name, &s.Entities, &s.Revision, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// History lists the revisions of name, oldest first.
func (r *SceneRepo) History(ctx context.Context, name string) ([]SceneRevision, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT revision, created_at FROM scene_revisions
		 WHERE scene_name = $1 ORDER BY revision`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SceneRevision
	for rows.Next() {
		var rev SceneRevision
		if err := rows.Scan(&rev.Revision, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// Delete removes name and its history.
func (r *SceneRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM scenes WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrSceneNotFound, name)
	}
	return nil
}
