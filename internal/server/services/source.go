package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ssrdocs/internal/creds"
	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/repomanager"
)

// PostgresCredentialSource backs the access gate with the users table.
// It maps the raw row into the creds.User shape the gate expects, applying
// the same project-list parsing as the CSV loader.
type PostgresCredentialSource struct {
	m repomanager.RepositoryManager
}

func NewPostgresCredentialSource(m repomanager.RepositoryManager) *PostgresCredentialSource {
	return &PostgresCredentialSource{m: m}
}

func (s *PostgresCredentialSource) FindUser(ctx context.Context, identifier string) (*creds.User, error) {
	row, err := s.m.Users().GetByUsername(ctx, creds.NormalizeUsername(identifier))
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &creds.User{
		Username: row.Username,
		PIN:      row.PIN,
		Projects: creds.SplitProjects(row.AuthorizedProjects),
		Admin:    row.Admin,
	}, nil
}
