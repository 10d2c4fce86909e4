package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/grid-tools/hazelcast-mcp/pkg/config"
	"github.com/grid-tools/hazelcast-mcp/pkg/grid"
	"github.com/grid-tools/hazelcast-mcp/pkg/logger"
	"github.com/grid-tools/hazelcast-mcp/pkg/mcpserver"
	"github.com/grid-tools/hazelcast-mcp/pkg/versions"
)

const (
	serverReadHeaderTimeout = 10 * time.Second
	gracefulTimeout         = 10 * time.Second
	gridShutdownTimeout     = 5 * time.Second
)

type serveFlags struct {
	configPath       string
	transport        string
	listenAddress    string
	clusterName      string
	clusterAddresses []string
	clientName       string
	unisocket        bool
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server and connect it to the Hazelcast cluster.

With the stdio transport the server speaks MCP on stdin/stdout, which is what
desktop MCP clients expect. With the http transport it exposes a streamable
HTTP endpoint at /mcp plus a /healthz probe.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to the configuration file")
	cmd.Flags().StringVar(&flags.transport, "transport", "", "Transport to use (stdio or http)")
	cmd.Flags().StringVar(&flags.listenAddress, "address", "", "Listen address for the http transport")
	cmd.Flags().StringVar(&flags.clusterName, "cluster-name", "", "Hazelcast cluster name")
	cmd.Flags().StringSliceVar(&flags.clusterAddresses, "cluster-address", nil, "Hazelcast member address in host:port form (repeatable)")
	cmd.Flags().StringVar(&flags.clientName, "client-name", "", "Client name shown in the cluster's client view")
	cmd.Flags().BoolVar(&flags.unisocket, "unisocket", false, "Pin all traffic to a single member connection")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	applyServeFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("connecting to cluster",
		"cluster", cfg.Cluster.Name,
		"addresses", cfg.Cluster.Addresses)

	client, err := grid.Connect(ctx, grid.Config{
		ClusterName:     cfg.Cluster.Name,
		Addresses:       cfg.Cluster.Addresses,
		ClientName:      cfg.Cluster.ClientName,
		ConnectTimeout:  cfg.Cluster.ConnectTimeout.Std(),
		ConnectAttempts: cfg.Cluster.ConnectRetries,
		Unisocket:       cfg.Cluster.Unisocket,
		SQLMaxRows:      cfg.Limits.SQLMaxRows,
	}, logger.Get())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gridShutdownTimeout)
		defer cancel()
		if err := client.Shutdown(shutdownCtx); err != nil {
			logger.Warn("grid client shutdown failed", "error", err)
		}
	}()

	srv, err := mcpserver.New(
		mcpserver.WithName("hazelcast-mcp"),
		mcpserver.WithVersion(versions.GetVersionInfo().Version),
		mcpserver.WithGrid(client),
		mcpserver.WithLogger(logger.Get()),
		mcpserver.WithListTimeout(cfg.Diagnostics.EnumerationTimeout.Std()),
	)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, srv, cfg.Server.Address)
	default:
		logger.Info("serving MCP over stdio")
		return srv.Run(ctx)
	}
}

// applyServeFlags overrides file-based settings with flags the user set
// explicitly.
func applyServeFlags(cmd *cobra.Command, flags *serveFlags, cfg *config.Config) {
	if cmd.Flags().Changed("transport") {
		cfg.Server.Transport = flags.transport
	}
	if cmd.Flags().Changed("address") {
		cfg.Server.Address = flags.listenAddress
	}
	if cmd.Flags().Changed("cluster-name") {
		cfg.Cluster.Name = flags.clusterName
	}
	if cmd.Flags().Changed("cluster-address") {
		cfg.Cluster.Addresses = flags.clusterAddresses
	}
	if cmd.Flags().Changed("client-name") {
		cfg.Cluster.ClientName = flags.clientName
	}
	if cmd.Flags().Changed("unisocket") {
		cfg.Cluster.Unisocket = flags.unisocket
	}
}

func serveHTTP(ctx context.Context, srv *mcpserver.Server, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", srv)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over http", "address", address, "endpoint", "/mcp")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
