package bakery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Repository defines the interface for bakery persistence operations.
type Repository interface {
	ListBakeries(ctx context.Context) ([]Bakery, error)
	GetBakery(ctx context.Context, id int64) (*Bakery, error)
	CreateBakery(ctx context.Context, bakery *Bakery) error
	UpdateBakery(ctx context.Context, id int64, update BakeryUpdate) (*Bakery, error)
	CountBakeries(ctx context.Context) (int, error)

	ListBakedGoodsByPriceDesc(ctx context.Context) ([]BakedGood, error)
	MostExpensiveBakedGood(ctx context.Context) (*BakedGood, error)
	GetBakedGood(ctx context.Context, id int64) (*BakedGood, error)
	CreateBakedGood(ctx context.Context, good *BakedGood) error
	DeleteBakedGood(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed bakery repository.
// The schema must already be migrated.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const (
	bakeryColumns    = `id, name, created_at, updated_at`
	bakedGoodColumns = `id, name, price, bakery_id, created_at, updated_at`
)

// ListBakeries returns all bakeries ordered by ID, each with its baked goods.
func (r *SQLiteRepository) ListBakeries(ctx context.Context) ([]Bakery, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bakeryColumns+` FROM bakeries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying bakeries: %w", err)
	}
	defer rows.Close()

	bakeries := []Bakery{}
	index := make(map[int64]int)
	for rows.Next() {
		b, err := scanBakery(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bakery row: %w", err)
		}
		index[b.ID] = len(bakeries)
		bakeries = append(bakeries, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bakery rows: %w", err)
	}
	rows.Close()

	goods, err := r.queryBakedGoods(ctx,
		`SELECT `+bakedGoodColumns+` FROM baked_goods ORDER BY bakery_id, id`)
	if err != nil {
		return nil, err
	}
	for _, g := range goods {
		if i, ok := index[g.BakeryID]; ok {
			bakeries[i].BakedGoods = append(bakeries[i].BakedGoods, g)
		}
	}

	return bakeries, nil
}

// GetBakery returns a single bakery by ID with its baked goods.
func (r *SQLiteRepository) GetBakery(ctx context.Context, id int64) (*Bakery, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bakeryColumns+` FROM bakeries WHERE id = ?`, id)
	b, err := scanBakery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBakeryNotFound
		}
		return nil, fmt.Errorf("getting bakery %d: %w", id, err)
	}

	goods, err := r.queryBakedGoods(ctx,
		`SELECT `+bakedGoodColumns+` FROM baked_goods WHERE bakery_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	b.BakedGoods = goods
	return b, nil
}

// CreateBakery inserts a new bakery and fills in its ID and timestamps.
func (r *SQLiteRepository) CreateBakery(ctx context.Context, bakery *Bakery) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO bakeries (name) VALUES (?)`, bakery.Name)
	if err != nil {
		return fmt.Errorf("inserting bakery %q: %w", bakery.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading bakery id: %w", err)
	}

	stored, err := r.GetBakery(ctx, id)
	if err != nil {
		return err
	}
	*bakery = *stored
	return nil
}

// UpdateBakery applies a partial update and returns the committed record.
// An empty update returns the bakery unchanged.
func (r *SQLiteRepository) UpdateBakery(ctx context.Context, id int64, update BakeryUpdate) (*Bakery, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if update.IsEmpty() {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM bakeries WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBakeryNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("checking bakery %d: %w", id, err)
		}
	} else {
		result, err := tx.ExecContext(ctx, `UPDATE bakeries SET name = ?,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
			WHERE id = ?`, *update.Name, id)
		if err != nil {
			return nil, fmt.Errorf("updating bakery %d: %w", id, err)
		}
		n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
		if n == 0 {
			return nil, ErrBakeryNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing bakery %d: %w", id, err)
	}

	return r.GetBakery(ctx, id)
}

// CountBakeries returns the number of bakeries.
func (r *SQLiteRepository) CountBakeries(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bakeries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting bakeries: %w", err)
	}
	return n, nil
}

// ListBakedGoodsByPriceDesc returns all baked goods, most expensive first.
// Equal prices are ordered by ID.
func (r *SQLiteRepository) ListBakedGoodsByPriceDesc(ctx context.Context) ([]BakedGood, error) {
	return r.queryBakedGoods(ctx,
		`SELECT `+bakedGoodColumns+` FROM baked_goods ORDER BY price DESC, id`)
}

// MostExpensiveBakedGood returns the baked good with the highest price.
// Returns ErrBakedGoodNotFound when there are none.
func (r *SQLiteRepository) MostExpensiveBakedGood(ctx context.Context) (*BakedGood, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bakedGoodColumns+` FROM baked_goods ORDER BY price DESC, id LIMIT 1`)
	g, err := scanBakedGood(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBakedGoodNotFound
		}
		return nil, fmt.Errorf("getting most expensive baked good: %w", err)
	}
	return g, nil
}

// GetBakedGood returns a single baked good by ID.
func (r *SQLiteRepository) GetBakedGood(ctx context.Context, id int64) (*BakedGood, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bakedGoodColumns+` FROM baked_goods WHERE id = ?`, id)
	g, err := scanBakedGood(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBakedGoodNotFound
		}
		return nil, fmt.Errorf("getting baked good %d: %w", id, err)
	}
	return g, nil
}

// CreateBakedGood inserts a new baked good and fills in its ID and timestamps.
// Returns ErrUnknownBakery if BakeryID does not reference an existing bakery.
func (r *SQLiteRepository) CreateBakedGood(ctx context.Context, good *BakedGood) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO baked_goods (name, price, bakery_id) VALUES (?, ?, ?)`,
		good.Name, good.Price, good.BakeryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %d", ErrUnknownBakery, good.BakeryID)
		}
		return fmt.Errorf("inserting baked good %q: %w", good.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading baked good id: %w", err)
	}

	stored, err := r.GetBakedGood(ctx, id)
	if err != nil {
		return err
	}
	*good = *stored
	return nil
}

// DeleteBakedGood removes a single baked good by ID.
// Returns ErrBakedGoodNotFound if it does not exist.
func (r *SQLiteRepository) DeleteBakedGood(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM baked_goods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting baked good %d: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrBakedGoodNotFound
	}
	return nil
}

// queryBakedGoods executes a query and returns a non-nil slice of BakedGood.
func (r *SQLiteRepository) queryBakedGoods(ctx context.Context, query string, args ...any) ([]BakedGood, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying baked goods: %w", err)
	}
	defer rows.Close()

	goods := []BakedGood{}
	for rows.Next() {
		g, err := scanBakedGood(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning baked good row: %w", err)
		}
		goods = append(goods, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating baked good rows: %w", err)
	}
	return goods, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBakery scans a bakery without its baked goods. sql.ErrNoRows is
// passed through unwrapped.
func scanBakery(s scanner) (*Bakery, error) {
	var b Bakery
	var createdAt, updatedAt string

	if err := s.Scan(&b.ID, &b.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	b.BakedGoods = []BakedGood{}
	return &b, nil
}

// scanBakedGood scans a baked good. sql.ErrNoRows is passed through unwrapped.
func scanBakedGood(s scanner) (*BakedGood, error) {
	var g BakedGood
	var createdAt, updatedAt string

	if err := s.Scan(&g.ID, &g.Name, &g.Price, &g.BakeryID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)
	return &g, nil
}

// isForeignKeyViolation reports whether err is a SQLite foreign key failure.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// parseTime parses the schema's strftime timestamps. Zero time is returned
// for anything else, which the DEFAULT clauses never produce.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
