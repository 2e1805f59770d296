// Package store persists evaluation results. The raw password is never part
// of the model; callers hand over only the derived report fields.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Result is one persisted evaluation, mirroring what the web layer extracts
// from a report.
type Result struct {
	bun.BaseModel `bun:"table:password_results,alias:pr"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Username    string    `bun:"username,notnull" json:"username"`
	Email       string    `bun:"email" json:"email"`
	Entropy     float64   `bun:"entropy,notnull" json:"entropy"`
	CrackTime   string    `bun:"crack_time,notnull" json:"crackTime"`
	Strength    string    `bun:"strength,notnull" json:"strength"`
	Feedback    string    `bun:"feedback" json:"feedback"`
	SubmittedAt time.Time `bun:"submitted_at,nullzero,default:current_timestamp" json:"submittedAt"`
}

// Store is the persistence contract consumed by the API layer.
type Store interface {
	SaveResult(ctx context.Context, result *Result) error
	ListResults(ctx context.Context) ([]Result, error)
	Close() error
}

// BunStore backs Store with a relational database through bun.
type BunStore struct {
	sqlDB *sql.DB
	db    *bun.DB
}

// New opens the database for the given driver ("sqlite" or "postgres") and
// creates the results table if it does not exist yet.
func New(ctx context.Context, driver, dsn string) (*BunStore, error) {
	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)

	switch driver {
	case "sqlite":
		sqlDB, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		sqlDB, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	s := &BunStore{sqlDB: sqlDB, db: db}
	if err = s.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return s, nil
}

func (s *BunStore) migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Result)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}
	return nil
}

// SaveResult inserts one result. The submission timestamp is set here if the
// caller left it zero.
func (s *BunStore) SaveResult(ctx context.Context, result *Result) error {
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = time.Now().UTC()
	}

	if _, err := s.db.NewInsert().Model(result).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// ListResults returns all stored results, newest first.
func (s *BunStore) ListResults(ctx context.Context) ([]Result, error) {
	var results []Result
	err := s.db.NewSelect().
		Model(&results).
		Order("submitted_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// Close releases the underlying connection pool.
func (s *BunStore) Close() error {
	return s.sqlDB.Close()
}
