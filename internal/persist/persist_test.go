package persist

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/config"
)

func TestEntityCount(t *testing.T) {
	n, err := entityCount([]byte(`{"name":"a","entities":[{"id":1},{"id":2}]}`))
	if err != nil || n != 2 {
		t.Errorf("expected 2 entities, got %d (%v)", n, err)
	}
	if _, err := entityCount([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestPoolConfig(t *testing.T) {
	if _, err := poolConfig(config.DatabaseConfig{}); !errors.Is(err, ErrNoDSN) {
		t.Errorf("expected ErrNoDSN, got %v", err)
	}
	if _, err := poolConfig(config.DatabaseConfig{DSN: "postgres://%zz"}); err == nil {
		t.Error("expected parse error for bad dsn")
	}

	pc, err := poolConfig(config.DatabaseConfig{
		DSN:             "postgres://farix:pw@db.local:5432/scenes",
		MaxOpenConns:    3,
		MaxIdleConns:    8,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		t.Fatal(err)
	}
	if pc.MaxConns != 3 || pc.MinConns != 3 {
		t.Errorf("expected max 3 min 3, got max %d min %d", pc.MaxConns, pc.MinConns)
	}
	if pc.MaxConnLifetime != 5*time.Minute {
		t.Errorf("expected 5m lifetime, got %v", pc.MaxConnLifetime)
	}
	if pc.ConnConfig.Host != "db.local" || pc.ConnConfig.Database != "scenes" {
		t.Errorf("unexpected conn config %s/%s", pc.ConnConfig.Host, pc.ConnConfig.Database)
	}

	pc, err = poolConfig(config.DatabaseConfig{DSN: "postgres://localhost/farix"})
	if err != nil {
		t.Fatal(err)
	}
	if pc.MaxConns != 4 || pc.MinConns != 0 {
		t.Errorf("expected default pool 4/0, got %d/%d", pc.MaxConns, pc.MinConns)
	}
}

// testDB connects to FARIX_TEST_DSN and migrates it; tests skip without it.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("FARIX_TEST_DSN")
	if dsn == "" {
		t.Skip("FARIX_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := NewDB(ctx, config.DatabaseConfig{
		DSN:             dsn,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(db.Close)
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestSceneRepoRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewSceneRepo(db)
	name := "test-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { repo.Delete(ctx, name) })

	if _, err := repo.Load(ctx, name); !errors.Is(err, ErrSceneNotFound) {
		t.Fatalf("expected ErrSceneNotFound, got %v", err)
	}
	rev1, err := repo.Save(ctx, name, []byte(`{"name":"x","entities":[{"id":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	rev2, err := repo.Save(ctx, name, []byte(`{"name":"x","entities":[{"id":1},{"id":2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if rev1 != 1 || rev2 != 2 {
		t.Errorf("expected revisions 1,2, got %d,%d", rev1, rev2)
	}
	row, err := repo.Load(ctx, name)
	if err != nil {
		t.Fatal(err)
	}
	if row.Entities != 2 || row.Revision != 2 {
		t.Errorf("unexpected row: %+v", row)
	}
	hist, err := repo.History(ctx, name)
	if err != nil || len(hist) != 2 {
		t.Errorf("expected 2 revisions, got %v (%v)", hist, err)
	}
	if err := repo.Delete(ctx, name); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, name); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("expected ErrSceneNotFound on second delete, got %v", err)
	}
}

func TestPrefabRepo(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewPrefabRepo(db)
	if _, err := repo.Load(ctx, "missing-prefab"); !errors.Is(err, ErrPrefabNotFound) {
		t.Fatalf("expected ErrPrefabNotFound, got %v", err)
	}
	if err := repo.Save(ctx, "ball", []byte(`{"components":{}}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Load(ctx, "ball"); err != nil {
		t.Fatal(err)
	}
}
