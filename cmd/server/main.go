// Command server exposes the UNO LIMS to MCP clients over stdio or
// streamable HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganot/unolims/internal/app"
	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/mcp"
	"github.com/ganot/unolims/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Logs never go to stdout: in stdio mode it carries JSON-RPC.
	logger, closeLog, err := logging.FromConfig(cfg.Log, "unolims-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	_ = logger.Sync()
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("closing preference store", zap.Error(err))
		}
	}()

	server := mcp.NewServer(mcp.Config{
		Handler: mcp.NewHandler(mcp.ServicesFrom(a.Services), a.Router, logger),
		Logger:  logger,
		Version: version,
	})

	if cfg.Server.Mode == config.ModeHTTP {
		return runHTTPMode(ctx, logger, server, cfg.Server)
	}
	return runStdioMode(ctx, logger, server)
}

func runStdioMode(ctx context.Context, logger *zap.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport", zap.String("version", version))

	// Run blocks until stdin closes or the context is cancelled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", zap.Error(err))
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *zap.Logger, server *sdkmcp.Server, cfg config.ServerConfig) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	var auth func(http.Handler) http.Handler
	if keys := transport.NewStaticKeys(cfg.APIKeys); keys.Len() > 0 {
		auth = transport.AuthMiddleware(keys)
	} else {
		logger.Warn("no API keys configured, /mcp is open")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(mcpHandler, auth, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr), zap.Bool("auth", auth != nil))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
		return err
	}
	return nil
}
