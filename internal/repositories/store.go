package repositories

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"hobbyhive/internal/migrations"
)

// Store vends the repositories and lets the service layer compose several
// repository calls into one transaction without touching database/sql.
type Store interface {
	Users() UserRepository
	Pending() PendingUserRepository
	// InTx runs fn with repositories bound to a single transaction.
	InTx(ctx context.Context, fn func(users UserRepository, pending PendingUserRepository) error) error
}

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the connection and applies the embedded goose
// migrations.
func NewPostgresStore(ctx context.Context, dsn string) (Store, *sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return &postgresStore{db: db}, db, nil
}

func (s *postgresStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *postgresStore) Pending() PendingUserRepository {
	return NewPendingUserRepository(s.db)
}

func (s *postgresStore) InTx(ctx context.Context, fn func(users UserRepository, pending PendingUserRepository) error) error {
	return WithTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		return fn(NewUserRepository(tx), NewPendingUserRepository(tx))
	})
}
