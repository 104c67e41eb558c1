package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nvbach/omnitask/internal/model"
)

// seededPref marks a database that has already been through first-run
// seeding, so reinstalls over an existing file don't duplicate data.
const seededPref = "seeded"

// SeedDefaults installs the first-run dataset: the brain-game catalog,
// default popup settings, and a small set of sample entries so the
// dashboard is not empty on first launch.
func SeedDefaults(ctx context.Context, s Store) error {
	done, err := s.GetPref(ctx, seededPref)
	if err != nil {
		return fmt.Errorf("checking seed marker: %w", err)
	}
	if done != "" {
		return nil
	}

	for _, g := range model.SeedGames() {
		if err := s.CreateGame(ctx, g); err != nil {
			return fmt.Errorf("seeding game %q: %w", g.Title, err)
		}
	}

	if err := s.PutGameSettings(ctx, model.DefaultGameSettings()); err != nil {
		return fmt.Errorf("seeding game settings: %w", err)
	}

	today := time.Now().Format(model.DateLayout)

	samples := []model.Task{
		{
			Title:       "Explore the dashboard",
			Description: "Press 1-7 to move between boards.",
			Date:        today,
			Status:      model.StatusPending,
			Reminder:    true,
		},
		{
			Title:       "Schedule your first meeting",
			Description: "The meetings board is on 3.",
			Date:        today,
			Status:      model.StatusPending,
		},
	}
	for _, t := range samples {
		if err := s.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("seeding task %q: %w", t.Title, err)
		}
	}

	folder := model.NoteFolder{Name: "Getting Started", Color: "#5B9BD5"}
	if err := s.CreateFolder(ctx, folder); err != nil {
		return fmt.Errorf("seeding folder: %w", err)
	}
	folders, err := s.GetFolders(ctx)
	if err == nil && len(folders) > 0 {
		note := model.Note{
			Title:     "Welcome",
			Content:   "Notes live here. Press y to copy one, E to export everything to YAML.",
			FolderID:  folders[0].ID,
			UpdatedAt: time.Now(),
		}
		if err := s.CreateNote(ctx, note); err != nil {
			return fmt.Errorf("seeding note: %w", err)
		}
	}

	if err := s.SetPref(ctx, seededPref, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing seed marker: %w", err)
	}
	return nil
}
