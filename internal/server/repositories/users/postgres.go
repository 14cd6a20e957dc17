package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/dbx"
	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, pin, authorized_projects, is_admin FROM users
		 WHERE lower(username) = lower($1)
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PIN, &user.AuthorizedProjects, &user.Admin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (username, pin, authorized_projects, is_admin)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO UPDATE
		 SET pin = EXCLUDED.pin,
		     authorized_projects = EXCLUDED.authorized_projects,
		     is_admin = EXCLUDED.is_admin
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.Username, user.PIN, user.AuthorizedProjects, user.Admin)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

var _ Repository = (*PostgresRepository)(nil)
