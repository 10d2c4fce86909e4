// Package config handles the hazelcast-mcp configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Transport names accepted in the server section.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Duration wraps time.Duration so YAML values can be written as "5s", "300ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the top-level application configuration.
type Config struct {
	Cluster     ClusterConfig     `yaml:"cluster"`
	Server      ServerConfig      `yaml:"server"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Limits      LimitsConfig      `yaml:"limits"`
}

// ClusterConfig describes how to reach the Hazelcast cluster.
type ClusterConfig struct {
	// Name is the cluster name members were started with.
	Name string `yaml:"name"`
	// Addresses lists member addresses in host:port form.
	Addresses []string `yaml:"addresses"`
	// ClientName identifies this client in the cluster's member view.
	ClientName string `yaml:"client_name"`
	// ConnectTimeout bounds the initial connection attempt.
	ConnectTimeout Duration `yaml:"connect_timeout"`
	// ConnectRetries is how many times startup retries the connection
	// before giving up.
	ConnectRetries uint `yaml:"connect_retries"`
	// Unisocket disables smart routing and pins all traffic to one
	// member. Needed when members are only reachable through a single
	// forwarded port.
	Unisocket bool `yaml:"unisocket"`
}

// ServerConfig describes how the MCP server is exposed.
type ServerConfig struct {
	// Transport selects stdio or http.
	Transport string `yaml:"transport"`
	// Address is the listen address for the http transport.
	Address string `yaml:"address"`
}

// DiagnosticsConfig tunes failure translation.
type DiagnosticsConfig struct {
	// EnumerationTimeout bounds the structure listing performed while
	// enriching "structure not found" diagnostics. Keep it short; it
	// runs on the error path.
	EnumerationTimeout Duration `yaml:"enumeration_timeout"`
}

// LimitsConfig caps result sizes returned to tool callers.
type LimitsConfig struct {
	// SQLMaxRows is the most rows a single sql_execute call returns.
	SQLMaxRows int `yaml:"sql_max_rows"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Cluster: ClusterConfig{
			Name:           "dev",
			Addresses:      []string{"localhost:5701"},
			ClientName:     "hazelcast-mcp",
			ConnectTimeout: Duration(5 * time.Second),
			ConnectRetries: 3,
		},
		Server: ServerConfig{
			Transport: TransportStdio,
			Address:   "127.0.0.1:8090",
		},
		Diagnostics: DiagnosticsConfig{
			EnumerationTimeout: Duration(300 * time.Millisecond),
		},
		Limits: LimitsConfig{
			SQLMaxRows: 100,
		},
	}
}

// Path returns the default config file location under the XDG config home,
// creating parent directories as needed.
func Path() (string, error) {
	return xdg.ConfigFile("hazelcast-mcp/config.yaml")
}

// Load reads the configuration from path. An empty path means the default
// XDG location. A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user or XDG
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Cluster.Name == "" {
		return fmt.Errorf("cluster.name must not be empty")
	}
	if len(c.Cluster.Addresses) == 0 {
		return fmt.Errorf("cluster.addresses must list at least one member")
	}
	for _, addr := range c.Cluster.Addresses {
		if addr == "" {
			return fmt.Errorf("cluster.addresses must not contain empty entries")
		}
	}
	if c.Cluster.ConnectTimeout <= 0 {
		return fmt.Errorf("cluster.connect_timeout must be positive")
	}

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Address == "" {
			return fmt.Errorf("server.address must be set for the http transport")
		}
	default:
		return fmt.Errorf("server.transport must be %q or %q, got %q",
			TransportStdio, TransportHTTP, c.Server.Transport)
	}

	if c.Diagnostics.EnumerationTimeout <= 0 {
		return fmt.Errorf("diagnostics.enumeration_timeout must be positive")
	}

	if c.Limits.SQLMaxRows <= 0 {
		return fmt.Errorf("limits.sql_max_rows must be positive")
	}

	return nil
}

// Save writes the configuration to path as YAML. An empty path means the
// default XDG location.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
