// Package mcpserver serves gopoly over the Model Context Protocol, on stdio
// or streamable HTTP, alongside the plain JSON tool endpoints.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gopoly "github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/log"
)

const (
	serverName    = "gopoly"
	serverVersion = "0.1.0"

	maxBodyBytes    = 1 << 20 // 1 MiB
	shutdownTimeout = 5 * time.Second
)

// Config holds MCP server configuration.
type Config struct {
	Transport string `env:"GOPOLY_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"GOPOLY_MCP_HTTP_ADDR" envDefault:"localhost:8080"`
	LogLevel  string `env:"GOPOLY_LOG_LEVEL"     envDefault:"info"`
}

// ParseConfig parses environment and then flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (for http transport)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewServer creates an MCP server with every polynomial tool registered.
func NewServer(logger *log.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(server, logger.Module("tools"))
	return server
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger *log.Logger) error {
	server := NewServer(logger)
	switch cfg.Transport {
	case "stdio":
		logger.Info("serving MCP", "transport", "stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("serve stdio: %w", err)
		}
		return nil
	case "http":
		return serveHTTP(ctx, cfg.HTTPAddr, Handler(server, logger), logger)
	default:
		return fmt.Errorf("transport %q not supported", cfg.Transport)
	}
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Slog().Handler(), slog.LevelError),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving MCP", "transport", "http", "addr", addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down", "addr", addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Handler returns the HTTP surface:
//
//	POST /tool   — execute a gopoly.ToolRequest
//	GET  /schema — tool schema for agent registration
//	GET  /health — liveness check
//	/mcp         — streamable MCP endpoint
func Handler(server *mcp.Server, logger *log.Logger) http.Handler {
	httpLog := logger.Module("http")
	mux := http.NewServeMux()

	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpLog.Error("panic in /tool", "panic", rec, "stack", string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req gopoly.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		resp := gopoly.HandleToolCall(req)
		if resp.Error != "" {
			httpLog.Debug("tool call failed", "tool", req.Tool, "err", resp.Error)
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, gopoly.MCPToolSpec())
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
