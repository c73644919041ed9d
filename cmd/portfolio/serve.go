package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/ganot/dx-portfolio/internal/config"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/mcp"
	"github.com/ganot/dx-portfolio/internal/transport"
)

func serveCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Initialize the data root and serve it over HTTP or MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.serve()
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "data root (overrides config)")
	return cmd
}

func (a *app) serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed run still serves whatever the data root holds.
	if _, err := a.pipeline.Run(ctx); err != nil {
		a.logger.Error("initialization failed", "error", err)
		if err := a.store.Reload(ctx); err != nil {
			a.logger.Error("failed to load data root", "error", err)
		}
	}

	projects := project.NewService(a.store, a.logger)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projects,
			Users:    a.store,
			Activity: a.journal,
			Pipeline: a.pipeline,
		},
		Version: version,
		Logger:  a.logger,
	})

	if a.cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(ctx, a.logger, mcpServer)
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)
	router := transport.NewServer(transport.Services{
		Projects: projects,
		Data:     a.store,
		Activity: a.journal,
		Pipeline: a.pipeline,
	}, transport.Options{
		APIToken: a.cfg.Server.APIToken,
		MCP:      mcpHandler,
		Logger:   a.logger,
	})
	return runHTTPMode(ctx, a.logger, router, a.cfg.Server)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, cfg config.ServerConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.APIToken != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
