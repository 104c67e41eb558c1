package notes

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nvbach/omnitask/internal/store"
)

// exportDoc is the YAML document shape for a notes export.
type exportDoc struct {
	ExportedAt time.Time      `yaml:"exported_at"`
	Folders    []exportFolder `yaml:"folders"`
	Unfiled    []exportNote   `yaml:"unfiled,omitempty"`
}

type exportFolder struct {
	Name  string       `yaml:"name"`
	Notes []exportNote `yaml:"notes"`
}

type exportNote struct {
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// ExportYAML writes all notes, grouped by folder, to a timestamped YAML
// file in the current directory and returns its path.
func ExportYAML(ctx context.Context, s store.Store) (string, error) {
	folders, err := s.GetFolders(ctx)
	if err != nil {
		return "", fmt.Errorf("loading folders: %w", err)
	}
	notes, err := s.GetNotes(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("loading notes: %w", err)
	}

	doc := exportDoc{ExportedAt: time.Now()}

	byFolder := make(map[string][]exportNote)
	for _, n := range notes {
		en := exportNote{Title: n.Title, Content: n.Content, UpdatedAt: n.UpdatedAt}
		if n.FolderID == "" {
			doc.Unfiled = append(doc.Unfiled, en)
			continue
		}
		byFolder[n.FolderID] = append(byFolder[n.FolderID], en)
	}

	for _, f := range folders {
		doc.Folders = append(doc.Folders, exportFolder{
			Name:  f.Name,
			Notes: byFolder[f.ID],
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}

	path := fmt.Sprintf("notes-export-%s.yaml", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
