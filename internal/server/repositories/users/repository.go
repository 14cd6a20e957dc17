// Package users contains the Postgres-backed credential directory
// repository.
package users

import (
	"context"

	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
)

// Repository reads credential directory rows.
type Repository interface {
	// GetByUsername finds a user by normalized (lowercased) username,
	// returning common.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Upsert inserts or replaces a user row, used when seeding the
	// directory from a workbook export.
	Upsert(ctx context.Context, user *models.User) error
}
