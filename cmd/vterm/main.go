package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/InsulaLabs/vterm/internal/chat"
	"github.com/InsulaLabs/vterm/internal/config"
	"github.com/InsulaLabs/vterm/internal/console"
	"github.com/InsulaLabs/vterm/internal/editor"
	"github.com/InsulaLabs/vterm/internal/kv"
	"github.com/InsulaLabs/vterm/internal/quiz"
	"github.com/InsulaLabs/vterm/internal/state"
	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/fatih/color"
)

var (
	configPath string
	dataDir    string
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the vterm configuration file")
	flag.StringVar(&dataDir, "data", "", "Override the storage data directory")
}

func fatal(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}

func loadConfig() *config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigFileMissing) {
			fatal("config file not found: %s", configPath)
		}
		fatal("failed to load config: %v", err)
	}
	return cfg
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	flag.Parse()

	cfg := loadConfig()
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		fatal("failed to create data directory %s: %v", cfg.Storage.DataDir, err)
	}

	// The TUI owns the terminal, so logs go to a file next to the store.
	logFile, err := os.OpenFile(
		filepath.Join(cfg.Storage.DataDir, "vterm.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fatal("failed to open log file: %v", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	charmlog.SetOutput(logFile)

	ctx := context.Background()

	backing, err := kv.New(kv.Config{
		Logger:    logger,
		Directory: cfg.Storage.DataDir,
		AppCtx:    ctx,
		CacheTTL:  cfg.Storage.CacheTTL,
	})
	if err != nil {
		fatal("failed to open storage: %v", err)
	}
	defer backing.Close()

	store := state.NewStore(backing, logger)
	st := store.Load()

	session := console.NewSession(console.SessionConfig{
		Logger:               logger,
		Prompt:               cfg.Console.Prompt,
		ActiveCursorSymbol:   cfg.Console.ActiveCursorSymbol,
		InactiveCursorSymbol: cfg.Console.InactiveCursorSymbol,
	}, st, store)

	registry := console.NewRegistry([]console.ModeEntry{
		editor.Entry(),
		chat.Entry(),
		quiz.Entry(),
	})

	model := console.New(session, registry)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("console exited with error: %v", err)
	}

	fmt.Println("session saved:", state.SlotKey)
}
