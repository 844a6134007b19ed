package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mitosis-ai/mitosis/internal/config"
	"github.com/mitosis-ai/mitosis/internal/memory"
	"github.com/mitosis-ai/mitosis/internal/ui"
	"github.com/mitosis-ai/mitosis/internal/update"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			runVersion(update.DefaultRepo)
			return
		case "update":
			runUpdate(update.DefaultRepo)
			return
		case "help", "-h", "--help":
			usage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			usage()
			os.Exit(2)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	resolvePaths(cfg)

	logger, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := memory.NewJSONStore(cfg.Memory.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("memory store unavailable, running without persistence")
		store = nil
	}
	var persister memory.Persister
	if store != nil {
		persister = store
	}
	mem := memory.NewManager(persister)

	model := ui.NewApp(cfg, mem, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolvePaths fills the home-relative defaults left empty by the config.
func resolvePaths(cfg *config.Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".mitosis")

	if cfg.Memory.Path == "" {
		cfg.Memory.Path = filepath.Join(base, "memory.json")
	}
	if cfg.Reports.Dir == "" {
		cfg.Reports.Dir = filepath.Join(base, "reports")
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(base, "mitosis.log")
	}
}

// newLogger builds the file-backed zerolog logger. Stderr is unusable
// while the TUI owns the terminal.
func newLogger(cfg config.LoggingConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}

func usage() {
	fmt.Println(`mitosis — terminal monitor for the Mitosis agent

Usage:
  mitosis            start the monitor
  mitosis version    print version and check for updates
  mitosis update     self-update to the latest release`)
}
