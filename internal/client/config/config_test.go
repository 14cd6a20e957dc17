package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.ServerEndpointAddr, "http://127.0.0.1:8080")
	assert.Equal(t, c.CachePath, "avance.db")
	assert.Equal(t, c.RequestTimeout, 30*time.Second)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "http://srv:9090", "-f", "cache.db", "-t", "5",
		}, expectPanic: false,
			expected: &Config{
				ServerEndpointAddr: "http://srv:9090",
				CachePath:          "cache.db",
				RequestTimeout:     5 * time.Second,
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseJson(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "config*.json")
	require.NoError(t, err)
	_, err = tmp.WriteString(`{"server_endpoint_addr":"http://srv:7070","cache_path":"x.db","request_timeout":"10s"}`)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	os.Args = []string{"cmd", "-c", tmp.Name()}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

	config := &Config{}
	require.NotPanics(t, func() { parseJson(config) })

	assert.Equal(t, "http://srv:7070", config.ServerEndpointAddr)
	assert.Equal(t, "x.db", config.CachePath)
	assert.Equal(t, 10*time.Second, config.RequestTimeout)
}
