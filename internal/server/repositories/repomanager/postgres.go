package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/ssrdocs/internal/server/migrations"
	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/deliverables"
	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db           *sql.DB
	users        users.Repository
	deliverables deliverables.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Deliverables() deliverables.Repository {
	return m.deliverables
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:           db,
		users:        users.NewPostgresRepository(db),
		deliverables: deliverables.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
