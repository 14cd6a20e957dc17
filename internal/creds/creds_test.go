package creds

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
)

func TestSplitProjects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain list", "SSR042,SSR099", []string{"SSR042", "SSR099"}},
		{"entries trimmed", " SSR042 , SSR099 ", []string{"SSR042", "SSR099"}},
		{"empty entries dropped", "SSR042,,SSR099,", []string{"SSR042", "SSR099"}},
		{"empty field", "", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitProjects(tc.in))
		})
	}
}

func TestDirectory_LookupNormalizesIdentifier(t *testing.T) {
	d := NewDirectory([]User{{Username: "MPerez", PIN: "1234"}})

	for _, id := range []string{"mperez", "MPEREZ", "  MPerez  "} {
		u, ok := d.Lookup(id)
		require.True(t, ok, "identifier %q must resolve", id)
		assert.Equal(t, "MPerez", u.Username)
	}

	_, ok := d.Lookup("otra")
	assert.False(t, ok)
}

func TestLoadCSV(t *testing.T) {
	in := strings.Join([]string{
		"Usuario,PIN,SSR Autorizados",
		"mperez,1234,\"SSR042, SSR099\"",
		"admin,0000,SSR042",
		",,",
	}, "\n")

	users, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "mperez", users[0].Username)
	assert.Equal(t, "1234", users[0].PIN)
	assert.Equal(t, []string{"SSR042", "SSR099"}, users[0].Projects)
	assert.False(t, users[0].Admin)

	assert.True(t, users[1].Admin, "the admin identifier carries the capability flag")
}

func TestLoadCSV_EmptyProjectsFieldIsAllowedAtLoad(t *testing.T) {
	users, err := LoadCSV(strings.NewReader("sinproyectos,9999,\n"))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Projects)
}

func TestLoadCSV_PartialRowIsError(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing pin", "mperez,,SSR042\n"},
		{"missing user", ",1234,SSR042\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrMalformedRow))
		})
	}
}
