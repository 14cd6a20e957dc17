package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/creds"
)

func newTestGate() *Gate {
	dir := creds.NewDirectory([]creds.User{
		{Username: "MPerez", PIN: "1234", Projects: []string{"SSR042", "SSR099"}},
		{Username: "sinproyectos", PIN: "9999"},
		{Username: "admin", PIN: "0000", Projects: []string{"SSR042"}, Admin: true},
	})
	return New(DirectorySource{Dir: dir})
}

func TestAuthenticate_Success(t *testing.T) {
	g := newTestGate()

	s, err := g.Authenticate(context.Background(), "mperez", "1234")
	require.NoError(t, err)
	assert.Equal(t, "MPerez", s.Username)
	assert.Equal(t, []string{"SSR042", "SSR099"}, s.Projects)
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Admin)
}

func TestAuthenticate_TrimsInputsAndFoldsIdentifier(t *testing.T) {
	g := newTestGate()

	s, err := g.Authenticate(context.Background(), "  MPEREZ  ", " 1234 ")
	require.NoError(t, err)
	assert.Equal(t, "MPerez", s.Username)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	g := newTestGate()

	tests := []struct {
		name       string
		identifier string
		pin        string
	}{
		{"unknown user", "nadie", "1234"},
		{"wrong pin", "mperez", "4321"},
		{"pin is case-sensitive", "mperez", "1234a"},
		{"empty identifier", "", "1234"},
		{"empty pin", "mperez", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Authenticate(context.Background(), tc.identifier, tc.pin)
			assert.True(t, errors.Is(err, common.ErrUnauthorized))
		})
	}
}

func TestAuthenticate_NoProjectsAssigned(t *testing.T) {
	g := newTestGate()

	_, err := g.Authenticate(context.Background(), "sinproyectos", "9999")
	assert.True(t, errors.Is(err, common.ErrNoProjectsAssigned))
}

func TestAuthenticate_AdminCapability(t *testing.T) {
	g := newTestGate()

	s, err := g.Authenticate(context.Background(), "admin", "0000")
	require.NoError(t, err)
	assert.True(t, s.Admin)
}

func TestSession_Authorized(t *testing.T) {
	g := newTestGate()
	s, err := g.Authenticate(context.Background(), "mperez", "1234")
	require.NoError(t, err)

	assert.True(t, s.Authorized("SSR042"))
	assert.True(t, s.Authorized("  SSR042  "), "codes are trimmed before comparison")
	assert.False(t, s.Authorized("ssr042"), "codes compare case-sensitively")
	assert.False(t, s.Authorized("SSR001"))
}
