package bakery

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/nerrad567/bakery-core/internal/infrastructure/database"
)

func TestSeed(t *testing.T) {
	db, err := database.Open(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := NewSQLiteRepository(db.DB)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	n, err := Seed(ctx, repo, logger)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != len(seedData) {
		t.Errorf("Seed() = %d, want %d", n, len(seedData))
	}

	// Second run is a no-op.
	n, err = Seed(ctx, repo, logger)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Seed() = %d, want 0", n)
	}

	bakeries, err := repo.ListBakeries(ctx)
	if err != nil {
		t.Fatalf("ListBakeries() error = %v", err)
	}
	if len(bakeries) != len(seedData) {
		t.Fatalf("len(bakeries) = %d, want %d", len(bakeries), len(seedData))
	}
	for i, b := range bakeries {
		if len(b.BakedGoods) != len(seedData[i].goods) {
			t.Errorf("%s has %d baked goods, want %d", b.Name, len(b.BakedGoods), len(seedData[i].goods))
		}
	}
}

func TestSeed_SkipsPopulatedDatabase(t *testing.T) {
	repo := setupTestRepo(t)

	n, err := Seed(context.Background(), repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Seed() = %d, want 0", n)
	}
}
