// Package records contains the local completion record cache backing the
// CLI's offline review mode.
package records

import (
	"context"

	"github.com/dmitrijs2005/ssrdocs/internal/client/models"
)

// Repository stores the latest completion record per project.
type Repository interface {
	// Upsert inserts or replaces the record for its project code.
	Upsert(ctx context.Context, rec *models.Record) error

	// GetAll returns the cached records ordered by project code.
	GetAll(ctx context.Context) ([]models.Record, error)

	// Clear drops every cached record, used on logout.
	Clear(ctx context.Context) error
}
