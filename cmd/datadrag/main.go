package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/catpea/data-drag/internal/board"
	"github.com/catpea/data-drag/internal/config"
	"github.com/catpea/data-drag/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	diag, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := board.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := board.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store := board.NewStore(db)

	def, err := board.LoadDefinition(cfg.Board.Path)
	if err != nil {
		log.Fatalf("board: %v", err)
	}

	tree := board.Build(def)
	placements, err := store.Load(ctx, def.Name)
	if err != nil {
		log.Fatalf("load placements: %v", err)
	}
	board.ApplyPlacements(tree, placements)

	p := tea.NewProgram(
		tui.NewModel(cfg, def, tree, store, diag),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger opens the diagnostic log file. Logging to stdout or stderr would
// corrupt the terminal UI, so diagnostics are disabled unless a file path is
// configured.
func newLogger(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	if cfg.Path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return l, func() { _ = f.Close() }, nil
}
