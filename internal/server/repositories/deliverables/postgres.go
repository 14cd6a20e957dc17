package deliverables

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ssrdocs/internal/dbx"
	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Deliverable, error) {
	query :=
		`SELECT id, name, team, position FROM deliverables
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Deliverable
	for rows.Next() {
		d := &models.Deliverable{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Team, &d.Position); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) Replace(ctx context.Context, items []*models.Deliverable) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM deliverables`); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		query :=
			`INSERT INTO deliverables (name, team, position)
			 VALUES ($1, $2, $3)
			 `
		for i, d := range items {
			if _, err := tx.ExecContext(ctx, query, d.Name, d.Team, i); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		return nil
	})
}

var _ Repository = (*PostgresRepository)(nil)
