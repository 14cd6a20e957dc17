package client

import (
	"context"
	"database/sql"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/ssrdocs/internal/client/migrations"
	"github.com/dmitrijs2005/ssrdocs/internal/client/repositories/records"
)

// Repositories bundles the local cache repositories.
type Repositories struct {
	Records records.Repository
	DB      *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	// Set the database dialect
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite cache at dsn, applies migrations, and hands
// out the repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Records: records.NewSQLiteRepository(db),
		DB:      db,
	}, nil
}
