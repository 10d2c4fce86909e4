// Package mcpserver exposes a Hazelcast cluster to MCP clients as a set of
// data grid tools. Every grid failure crossing the tool boundary is first
// translated into a human-readable diagnostic, so LLM callers see what went
// wrong and what exists on the cluster instead of a raw client error.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/grid-tools/hazelcast-mcp/pkg/diagnose"
)

// serverConfig holds the configuration built by options
type serverConfig struct {
	name        string
	version     string
	grid        GridOps
	log         *slog.Logger
	listTimeout time.Duration
	server      *mcp.Server
}

// Server wires the MCP server, the grid client and the failure translator
// together and serves the tool set over stdio or HTTP.
type Server struct {
	server      *mcp.Server
	httpHandler http.Handler
	grid        GridOps
	translator  diagnose.Translator
	log         *slog.Logger
}

// New creates a Server with the given options. A grid client is required;
// everything else has defaults.
func New(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		name:        "hazelcast-mcp",
		version:     "dev",
		listTimeout: diagnose.DefaultListTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.grid == nil {
		return nil, ErrNilGrid
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if cfg.server == nil {
		impl := &mcp.Implementation{
			Name:    cfg.name,
			Version: cfg.version,
		}
		cfg.server = mcp.NewServer(impl, nil)
	}

	s := &Server{
		server:     cfg.server,
		grid:       cfg.grid,
		translator: diagnose.Translator{ListTimeout: cfg.listTimeout},
		log:        cfg.log,
	}
	s.registerTools()

	s.httpHandler = mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return s.server },
		nil,
	)

	return s, nil
}

// GetServer returns the underlying MCP server for advanced usage
func (s *Server) GetServer() *mcp.Server {
	return s.server
}

// ServeHTTP implements http.Handler for the streamable HTTP transport
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpHandler.ServeHTTP(w, r)
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// createTypedHandler adapts a typed tool function to the SDK handler shape.
// Returned errors, ToolError included, surface to the client as tool-call
// failures with IsError set; the SDK renders err.Error() as the content.
func createTypedHandler[TIn, TOut any](fn ToolFunc[TIn, TOut]) mcp.ToolHandlerFor[TIn, TOut] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TIn) (*mcp.CallToolResult, TOut, error) {
		output, err := fn(ctx, input)
		if err != nil {
			var zero TOut
			return nil, zero, err
		}
		return nil, output, nil
	}
}

// createRawHandler wraps a raw function to match the MCP ToolHandler
// signature. ToolErrors become IsError results carrying only the message;
// any other error is a protocol failure.
func createRawHandler(fn RawToolFunc) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inputJSON, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Failed to marshal input: %v", err)},
				},
				IsError: true,
			}, nil
		}

		outputJSON, err := fn(ctx, inputJSON)
		if err != nil {
			var toolErr *ToolError
			if errors.As(err, &toolErr) {
				return &mcp.CallToolResult{
					Content: []mcp.Content{
						&mcp.TextContent{Text: toolErr.Message},
					},
					IsError: true,
				}, nil
			}
			return nil, err
		}

		// Raw tools must return valid JSON
		var output any
		if err := json.Unmarshal(outputJSON, &output); err != nil {
			return nil, errors.Join(ErrInvalidJSON, err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: string(outputJSON)},
			},
		}, nil
	}
}

// addTypedTool registers a tool whose schema is generated from its types
func addTypedTool[TIn, TOut any](server *mcp.Server, name, description string, fn ToolFunc[TIn, TOut]) {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
	}
	mcp.AddTool(server, tool, createTypedHandler(fn))
}

// addRawTool registers a tool with an explicit input schema
func addRawTool(server *mcp.Server, name, description string, inputSchema *jsonschema.Schema, fn RawToolFunc) {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
	server.AddTool(tool, createRawHandler(fn))
}
