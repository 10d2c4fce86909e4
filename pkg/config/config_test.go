package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "dev", cfg.Cluster.Name)
	assert.Equal(t, []string{"localhost:5701"}, cfg.Cluster.Addresses)
	assert.Equal(t, "hazelcast-mcp", cfg.Cluster.ClientName)
	assert.Equal(t, 5*time.Second, cfg.Cluster.ConnectTimeout.Std())
	assert.False(t, cfg.Cluster.Unisocket)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 300*time.Millisecond, cfg.Diagnostics.EnumerationTimeout.Std())
	assert.Equal(t, 100, cfg.Limits.SQLMaxRows)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
cluster:
  name: production
  addresses:
    - hz1.internal:5701
    - hz2.internal:5701
  client_name: ops-gateway
  connect_timeout: 10s
  connect_retries: 5
  unisocket: true
server:
  transport: http
  address: 0.0.0.0:8090
diagnostics:
  enumeration_timeout: 150ms
limits:
  sql_max_rows: 25
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Cluster.Name)
	assert.Equal(t, []string{"hz1.internal:5701", "hz2.internal:5701"}, cfg.Cluster.Addresses)
	assert.Equal(t, "ops-gateway", cfg.Cluster.ClientName)
	assert.Equal(t, 10*time.Second, cfg.Cluster.ConnectTimeout.Std())
	assert.Equal(t, uint(5), cfg.Cluster.ConnectRetries)
	assert.True(t, cfg.Cluster.Unisocket)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "0.0.0.0:8090", cfg.Server.Address)
	assert.Equal(t, 150*time.Millisecond, cfg.Diagnostics.EnumerationTimeout.Std())
	assert.Equal(t, 25, cfg.Limits.SQLMaxRows)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
cluster:
  name: staging
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Cluster.Name)
	assert.Equal(t, []string{"localhost:5701"}, cfg.Cluster.Addresses)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "cluster: [not a mapping")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
cluster:
  connect_timeout: soon
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty cluster name",
			mutate:  func(c *Config) { c.Cluster.Name = "" },
			wantErr: "cluster.name",
		},
		{
			name:    "no addresses",
			mutate:  func(c *Config) { c.Cluster.Addresses = nil },
			wantErr: "cluster.addresses",
		},
		{
			name:    "blank address entry",
			mutate:  func(c *Config) { c.Cluster.Addresses = []string{"localhost:5701", ""} },
			wantErr: "empty entries",
		},
		{
			name:    "non-positive connect timeout",
			mutate:  func(c *Config) { c.Cluster.ConnectTimeout = 0 },
			wantErr: "connect_timeout",
		},
		{
			name:    "unknown transport",
			mutate:  func(c *Config) { c.Server.Transport = "websocket" },
			wantErr: "server.transport",
		},
		{
			name: "http transport without address",
			mutate: func(c *Config) {
				c.Server.Transport = TransportHTTP
				c.Server.Address = ""
			},
			wantErr: "server.address",
		},
		{
			name:    "non-positive enumeration timeout",
			mutate:  func(c *Config) { c.Diagnostics.EnumerationTimeout = 0 },
			wantErr: "enumeration_timeout",
		},
		{
			name:    "non-positive sql row cap",
			mutate:  func(c *Config) { c.Limits.SQLMaxRows = 0 },
			wantErr: "sql_max_rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDurationRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(Duration(1500 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, "1.5s\n", string(out))

	var d Duration
	require.NoError(t, yaml.Unmarshal(out, &d))
	assert.Equal(t, 1500*time.Millisecond, d.Std())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Cluster.Name = "saved"
	cfg.Cluster.ConnectTimeout = Duration(7 * time.Second)
	cfg.Limits.SQLMaxRows = 50
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Cluster.Name = ""

	err := cfg.Save(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster.name")
	assert.NoFileExists(t, path)
}
