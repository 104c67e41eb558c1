package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvbach/omnitask/internal/app"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "omnitask: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// First run: materialize the defaults so the knobs are discoverable.
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		_ = model.SaveConfig(configPath, cfg)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	if err := store.SeedDefaults(context.Background(), s); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	applyTheme(context.Background(), s, cfg.Display.Theme)

	p := tea.NewProgram(app.New(cfg, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// applyTheme resolves the theme preference (stored pref wins over the
// config file) and pins the adaptive color variant. "system" leaves
// lipgloss to detect the terminal background.
func applyTheme(ctx context.Context, s store.Store, configTheme string) {
	theme := configTheme
	if saved, err := s.GetPref(ctx, "theme"); err == nil && saved != "" {
		theme = saved
	}

	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	_ = s.SetPref(ctx, "theme", theme)
}
