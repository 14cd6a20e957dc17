// Package creds loads and indexes the credential directory: one row per
// user with a PIN and the comma-separated list of authorized project codes.
package creds

import (
	"strings"

	"github.com/dmitrijs2005/ssrdocs/internal/project"
)

// AdminUsername is the distinguished identifier whose session carries the
// catalog-management capability. It is a data-driven role flag, not a
// separate authentication mechanism.
const AdminUsername = "admin"

// User is an immutable credential directory entry.
type User struct {
	// Username is stored trimmed; lookups compare it case-insensitively.
	Username string

	// PIN is stored trimmed and compared verbatim (case-sensitively).
	PIN string

	// Projects holds the normalized authorized project codes in source
	// order. It may be empty: authentication then fails with
	// ErrNoProjectsAssigned rather than at load time.
	Projects []string

	// Admin marks the catalog-management capability.
	Admin bool
}

// NormalizeUsername folds an identifier for lookup: trimmed and lowercased.
func NormalizeUsername(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SplitProjects parses a comma-separated project-code field. Each entry is
// trimmed and empty entries are discarded.
func SplitProjects(field string) []string {
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		code := project.NormalizeCode(p)
		if code == "" {
			continue
		}
		out = append(out, code)
	}
	return out
}

// Directory indexes users by normalized username.
type Directory struct {
	users map[string]User
}

func NewDirectory(users []User) *Directory {
	m := make(map[string]User, len(users))
	for _, u := range users {
		m[NormalizeUsername(u.Username)] = u
	}
	return &Directory{users: m}
}

// Lookup finds a user by identifier, case-insensitively and ignoring
// surrounding whitespace.
func (d *Directory) Lookup(identifier string) (User, bool) {
	u, ok := d.users[NormalizeUsername(identifier)]
	return u, ok
}

// Len returns the number of users in the directory.
func (d *Directory) Len() int {
	return len(d.users)
}
