// Package main is the entry point for the hazelcast-mcp server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grid-tools/hazelcast-mcp/cmd/hazelcast-mcp/app"
	"github.com/grid-tools/hazelcast-mcp/pkg/logger"
)

func main() {
	// Create a context that will be canceled on signal
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Errorf("Error executing command: %v", err)
		os.Exit(1)
	}
}
