// Package gate validates (user, PIN) pairs against a credential source and
// yields the authorized session the rest of the platform works from. It
// never reads ambient state: the session is an explicit value handed to the
// core's entry points.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/creds"
	"github.com/dmitrijs2005/ssrdocs/internal/project"
)

// CredentialSource finds a user by identifier. Implementations must apply
// the same identifier normalization as creds.NormalizeUsername and return
// common.ErrNotFound for unknown users.
type CredentialSource interface {
	FindUser(ctx context.Context, identifier string) (*creds.User, error)
}

// DirectorySource adapts an in-memory creds.Directory to CredentialSource.
type DirectorySource struct {
	Dir *creds.Directory
}

func (s DirectorySource) FindUser(ctx context.Context, identifier string) (*creds.User, error) {
	u, ok := s.Dir.Lookup(identifier)
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

// Session is the result of a successful authentication. Projects is never
// empty: a user without assignments fails authentication instead.
type Session struct {
	ID       string
	Username string
	Projects []string
	Admin    bool
	IssuedAt time.Time
}

// Authorized reports whether the session may see the given project code.
// Codes compare case-sensitively after trimming.
func (s *Session) Authorized(code string) bool {
	code = project.NormalizeCode(code)
	for _, p := range s.Projects {
		if p == code {
			return true
		}
	}
	return false
}

// Gate authenticates users against a credential source.
type Gate struct {
	source CredentialSource
}

func New(source CredentialSource) *Gate {
	return &Gate{source: source}
}

// Authenticate checks the (identifier, pin) pair. Identifier matching is
// case-insensitive, the PIN comparison is verbatim after trimming. Failures
// are common.ErrUnauthorized (no such pair) and common.ErrNoProjectsAssigned
// (valid pair, empty project list); both must reach the user, never be
// treated as success.
func (g *Gate) Authenticate(ctx context.Context, identifier, pin string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	pin = strings.TrimSpace(pin)
	if identifier == "" || pin == "" {
		return nil, common.ErrUnauthorized
	}

	user, err := g.source.FindUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("credential source: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.PIN), []byte(pin)) != 1 {
		return nil, common.ErrUnauthorized
	}

	if len(user.Projects) == 0 {
		return nil, common.ErrNoProjectsAssigned
	}

	return &Session{
		ID:       uuid.NewString(),
		Username: user.Username,
		Projects: append([]string(nil), user.Projects...),
		Admin:    user.Admin,
		IssuedAt: time.Now(),
	}, nil
}
