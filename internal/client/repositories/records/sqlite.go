package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ssrdocs/internal/client/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, rec *models.Record) error {

	q := ` INSERT INTO records (project_code, project_name, completed, total, percent, pending, fetched_at)
			values (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(project_code) DO UPDATE SET
				project_name=excluded.project_name,
				completed=excluded.completed,
				total=excluded.total,
				percent=excluded.percent,
				pending=excluded.pending,
				fetched_at=excluded.fetched_at
	`
	_, err := r.db.ExecContext(ctx, q, rec.ProjectCode, rec.ProjectName, rec.Completed, rec.Total, rec.Percent, rec.Pending, rec.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Record, error) {

	q := ` select project_code, project_name, completed, total, percent, pending, fetched_at
			from records order by project_code`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}

	var result []models.Record

	defer rows.Close()
	for rows.Next() {
		var item = models.Record{}
		err := rows.Scan(&item.ProjectCode, &item.ProjectName, &item.Completed, &item.Total, &item.Percent, &item.Pending, &item.FetchedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {

	q := `delete from records`
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
