package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/patentdesk/fer-reply/internal/config"
	"github.com/patentdesk/fer-reply/internal/drafting"
	"github.com/patentdesk/fer-reply/internal/mcptool"
	"github.com/patentdesk/fer-reply/internal/server"
)

var (
	version   = "dev"     // set by build flags
	buildTime = "unknown" // set by build flags
	gitCommit = "unknown" // set by build flags
)

func setupLogging(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// In stdio mode stdout carries the MCP protocol, so logs go to stderr.
	out := os.Stdout
	if cfg.IsStdioMode() {
		out = os.Stderr
	}

	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	log := setupLogging(cfg)
	if cfg.IsDebug() {
		log.Debug("starting", "config", cfg.String())
	}

	svc := drafting.NewService(cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsStdioMode() {
		mcpServer, err := mcptool.NewServer(cfg, svc)
		if err != nil {
			log.Error("failed to create MCP server", "error", err)
			os.Exit(1)
		}
		if err := mcpServer.Run(ctx); err != nil {
			log.Error("MCP server error", "error", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.New(cfg, svc, log)
	if err := httpServer.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func printVersion() {
	fmt.Printf("FER Reply Server\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
