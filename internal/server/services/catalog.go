package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ssrdocs/internal/catalog"
	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/repomanager"
)

// StaticCatalog serves a catalog loaded once from a workbook export or YAML
// file. It backs deployments without a database.
type StaticCatalog struct {
	items []catalog.Item
	rules catalog.RuleSet
}

func NewStaticCatalog(items []catalog.Item, rules catalog.RuleSet) *StaticCatalog {
	if len(rules) == 0 {
		rules = catalog.DefaultRules
	}
	return &StaticCatalog{items: items, rules: rules}
}

func (c *StaticCatalog) Items(ctx context.Context) ([]catalog.Item, error) {
	return c.items, nil
}

func (c *StaticCatalog) Rules(ctx context.Context) (catalog.RuleSet, error) {
	return c.rules, nil
}

// CatalogService serves the deliverable catalog from Postgres and lets
// admins replace it. Applicability rules stay in code: they change with the
// program, not with the data.
type CatalogService struct {
	m     repomanager.RepositoryManager
	rules catalog.RuleSet
}

func NewCatalogService(m repomanager.RepositoryManager, rules catalog.RuleSet) *CatalogService {
	if len(rules) == 0 {
		rules = catalog.DefaultRules
	}
	return &CatalogService{m: m, rules: rules}
}

// Items returns the catalog in stored order.
func (s *CatalogService) Items(ctx context.Context) ([]catalog.Item, error) {
	rows, err := s.m.Deliverables().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing deliverables: %w", err)
	}
	items := make([]catalog.Item, len(rows))
	for i, row := range rows {
		items[i] = catalog.Item{Name: row.Name, Team: row.Team}
	}
	return items, nil
}

func (s *CatalogService) Rules(ctx context.Context) (catalog.RuleSet, error) {
	return s.rules, nil
}

// Replace swaps the whole catalog for the given ordered item list.
func (s *CatalogService) Replace(ctx context.Context, items []catalog.Item) error {
	rows := make([]*models.Deliverable, len(items))
	for i, it := range items {
		rows[i] = &models.Deliverable{
			ID:       uuid.NewString(),
			Name:     it.Name,
			Team:     it.Team,
			Position: i,
		}
	}
	if err := s.m.Deliverables().Replace(ctx, rows); err != nil {
		return fmt.Errorf("replacing deliverables: %w", err)
	}
	return nil
}
