package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolFunc is the function signature for typed tools with automatic schema
// generation. Schemas are derived from the TIn and TOut types.
type ToolFunc[TIn, TOut any] func(context.Context, TIn) (TOut, error)

// RawToolFunc is the function signature for raw JSON tools. The function
// receives the call arguments as JSON bytes and returns JSON bytes; its
// schema must be provided explicitly at registration.
type RawToolFunc func(context.Context, []byte) ([]byte, error)

// Option is a functional option for configuring the server
type Option func(*serverConfig) error

// WithName sets the server name advertised to MCP clients
func WithName(name string) Option {
	return func(cfg *serverConfig) error {
		if name == "" {
			return ErrEmptyName
		}
		cfg.name = name
		return nil
	}
}

// WithVersion sets the server version advertised to MCP clients
func WithVersion(version string) Option {
	return func(cfg *serverConfig) error {
		if version == "" {
			return ErrEmptyVersion
		}
		cfg.version = version
		return nil
	}
}

// WithGrid sets the grid client the tools operate on. Required.
func WithGrid(grid GridOps) Option {
	return func(cfg *serverConfig) error {
		if grid == nil {
			return ErrNilGrid
		}
		cfg.grid = grid
		return nil
	}
}

// WithLogger sets the logger used for request logging
func WithLogger(log *slog.Logger) Option {
	return func(cfg *serverConfig) error {
		if log == nil {
			return ErrNilLogger
		}
		cfg.log = log
		return nil
	}
}

// WithListTimeout bounds the structure enumeration performed while
// translating structure-not-found failures
func WithListTimeout(timeout time.Duration) Option {
	return func(cfg *serverConfig) error {
		if timeout > 0 {
			cfg.listTimeout = timeout
		}
		return nil
	}
}

// WithServer allows injecting a custom MCP server for testing
func WithServer(server *mcp.Server) Option {
	return func(cfg *serverConfig) error {
		if server == nil {
			return ErrNilServer
		}
		cfg.server = server
		return nil
	}
}
