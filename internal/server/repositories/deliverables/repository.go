// Package deliverables contains the Postgres-backed deliverable catalog
// repository.
package deliverables

import (
	"context"

	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
)

// Repository reads and replaces catalog rows.
type Repository interface {
	// List returns the catalog ordered by position.
	List(ctx context.Context) ([]*models.Deliverable, error)

	// Replace swaps the whole catalog for the given ordered item list.
	// Used by the admin catalog-management endpoints.
	Replace(ctx context.Context, items []*models.Deliverable) error
}
