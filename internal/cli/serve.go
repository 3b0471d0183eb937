package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/internal/metrics"
	httpAdapter "github.com/aretw0/stepwise/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/stepwise/pkg/adapters/mcp"
)

// shutdownTimeout bounds graceful shutdown of the servers.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP and MCP servers.
type ServeOptions struct {
	FormPath string
	Addr     string
	Output   string
	Debug    bool
	Config   config.Config
}

// Serve runs the HTTP API until ctx is done.
func Serve(ctx context.Context, opts ServeOptions, out io.Writer) error {
	logger, err := createLogger(opts.Debug, opts.Config.LogLevel, false)
	if err != nil {
		return err
	}

	backend, err := OpenBackend(opts.Config)
	if err != nil {
		return err
	}
	defer backend.Close()

	m := metrics.New()
	engine, cleanup, err := createEngine(ctx, EngineOptions{FormPath: opts.FormPath, Output: opts.Output, Metrics: m, Redact: opts.Config.LogRedact}, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := opts.Addr
	if addr == "" {
		addr = opts.Config.Addr
	}
	srv := &http.Server{
		Addr: addr,
		Handler: httpAdapter.NewHandler(engine, backend.Sessions(logger),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(m.Handler()),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving %q on %s (store: %s)", engine.Inspect().Title, addr, backend.Kind)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		printSystemMessage(out, "Server stopped gracefully")
		return nil
	}
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	FormPath string
	// SSEAddr serves the SSE transport instead of stdio.
	SSEAddr string
	Output  string
	Debug   bool
	Config  config.Config
}

// ServeMCP runs the MCP server on stdio or SSE until ctx is done.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger, err := createLogger(opts.Debug, opts.Config.LogLevel, false)
	if err != nil {
		return err
	}

	backend, err := OpenBackend(opts.Config)
	if err != nil {
		return err
	}
	defer backend.Close()

	engine, cleanup, err := createEngine(ctx, EngineOptions{FormPath: opts.FormPath, Output: opts.Output, Debug: opts.Debug, Redact: opts.Config.LogRedact}, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcpAdapter.NewServer(engine, backend.Sessions(logger), logger)
	if opts.SSEAddr != "" {
		return srv.ServeSSE(ctx, opts.SSEAddr)
	}
	return srv.ServeStdio()
}
