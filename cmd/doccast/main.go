// Command doccast converts semantic document markup into plain text, HTML,
// and Markdown.
//
// Modes:
//
//	doccast file.html [file2.html ...]   batch convert, one file at a time
//	doccast -serve                       HTTP API on PORT (default 8090)
//	doccast -mcp                         MCP server on stdio
//
// Environment: PORT, LOG_LEVEL, HISTORY_DB, API_PASSWORD_HASH.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/doccast"
	"github.com/hazyhaar/doccast/internal/store"
	"github.com/hazyhaar/doccast/render"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API server")
	mcpMode := flag.Bool("mcp", false, "run the MCP server on stdio")
	configPath := flag.String("config", "", "YAML configuration file")
	outDir := flag.String("out", "", "output directory for batch conversion (default: next to each input)")
	formatsFlag := flag.String("formats", "", "comma-separated output formats (default: all)")
	flag.Parse()

	logger := buildLogger(env("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	cfg := doccast.Config{Logger: logger}
	if *configPath != "" {
		loaded, err := doccast.LoadConfig(*configPath)
		if err != nil {
			slog.Error("config", "error", err)
			os.Exit(1)
		}
		cfg = *loaded
		cfg.Logger = logger
	}

	conv := doccast.New(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case *mcpMode:
		runMCP(ctx, conv)
	case *serve:
		runServe(ctx, conv, cfg)
	default:
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "usage: doccast [-serve|-mcp] [flags] file.html ...")
			os.Exit(2)
		}
		formats, err := parseFormats(*formatsFlag)
		if err != nil {
			slog.Error("formats", "error", err)
			os.Exit(1)
		}
		if runBatch(ctx, conv, flag.Args(), *outDir, formats) > 0 {
			os.Exit(1)
		}
	}
}

func buildLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func parseFormats(csv string) ([]render.Format, error) {
	if csv == "" {
		return nil, nil
	}
	var out []render.Format
	for _, part := range strings.Split(csv, ",") {
		f := render.Format(strings.TrimSpace(part))
		if _, err := render.Extension(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// runBatch converts the given files sequentially, one status line per file
// and a summary. The context is checked between files so an interrupt stops
// the batch at the next boundary. Returns the failure count.
func runBatch(ctx context.Context, conv *doccast.Converter, paths []string, outDir string, formats []render.Format) int {
	converted, failed := 0, 0

	for _, path := range paths {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "interrupted")
			break
		}

		res, err := conv.ConvertFile(ctx, path, formats...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:    %s (%v)\n", path, err)
			failed++
			continue
		}
		if err := writeOutputs(path, outDir, res); err != nil {
			fmt.Fprintf(os.Stderr, "failed:    %s (%v)\n", path, err)
			failed++
			continue
		}
		fmt.Printf("converted: %s (%d sections, %d formats, %dms)\n",
			path, len(res.Content.Sections), len(res.Outputs), res.Duration.Milliseconds())
		converted++
	}

	fmt.Printf("done: %d converted, %d failed\n", converted, failed)
	return failed
}

func writeOutputs(inputPath, outDir string, res *doccast.Result) error {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	for f, out := range res.Outputs {
		ext, err := render.Extension(f)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, base+"."+ext), []byte(out), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func runServe(ctx context.Context, conv *doccast.Converter, cfg doccast.Config) {
	api := doccast.APIConfig{PasswordHash: os.Getenv("API_PASSWORD_HASH")}

	historyPath := env("HISTORY_DB", cfg.HistoryDB)
	if historyPath != "" {
		db, err := store.Open(historyPath)
		if err != nil {
			slog.Error("history db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		api.Store = store.NewStore(db)
	}

	port := env("PORT", "8090")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           conv.Routes(api),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func runMCP(ctx context.Context, conv *doccast.Converter) {
	srv := mcp.NewServer(&mcp.Implementation{Name: "doccast", Version: "1.0.0"}, nil)
	conv.RegisterMCP(srv)

	slog.Info("mcp server starting", "transport", "stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		slog.Error("mcp server", "error", err)
		os.Exit(1)
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
