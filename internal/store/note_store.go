package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nvbach/omnitask/internal/model"
)

// CreateNote inserts a new note. A missing ID is assigned a fresh UUID.
func (s *SQLiteStore) CreateNote(ctx context.Context, n model.Note) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, folder_id, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, nullableString(n.FolderID), n.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}

	return nil
}

// UpdateNote replaces a note's content and bumps its updated timestamp.
func (s *SQLiteStore) UpdateNote(ctx context.Context, n model.Note) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, folder_id = ?, updated_at = ?
		WHERE id = ?`,
		n.Title, n.Content, nullableString(n.FolderID), time.Now().UTC(), n.ID,
	)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", n.ID, err)
	}
	return nil
}

// DeleteNote removes a note by ID.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

// GetNotes retrieves notes, optionally restricted to one folder,
// most recently updated first.
func (s *SQLiteStore) GetNotes(ctx context.Context, folderID *string) ([]model.Note, error) {
	query := "SELECT * FROM notes"
	var args []interface{}
	if folderID != nil {
		query += " WHERE folder_id = ?"
		args = append(args, *folderID)
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// CreateFolder inserts a new note folder.
func (s *SQLiteStore) CreateFolder(ctx context.Context, f model.NoteFolder) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO note_folders (id, name, color) VALUES (?, ?, ?)",
		f.ID, f.Name, f.Color,
	)
	if err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	return nil
}

// DeleteFolder removes a folder; its notes become unfiled via ON DELETE SET NULL.
func (s *SQLiteStore) DeleteFolder(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM note_folders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting folder %s: %w", id, err)
	}
	return nil
}

// GetFolders retrieves all note folders ordered by name.
func (s *SQLiteStore) GetFolders(ctx context.Context) ([]model.NoteFolder, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM note_folders ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	var folders []model.NoteFolder
	for rows.Next() {
		var f model.NoteFolder
		if err := rows.Scan(&f.ID, &f.Name, &f.Color); err != nil {
			return nil, fmt.Errorf("scanning folder row: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

// scanNote scans a note row from a sqlx.Rows result set.
func scanNote(rows *sqlx.Rows) (model.Note, error) {
	var (
		n         model.Note
		folderID  sql.NullString
		updatedAt time.Time
	)

	err := rows.Scan(&n.ID, &n.Title, &n.Content, &folderID, &updatedAt)
	if err != nil {
		return model.Note{}, fmt.Errorf("scanning note row: %w", err)
	}

	if folderID.Valid {
		n.FolderID = folderID.String
	}
	n.UpdatedAt = updatedAt

	return n, nil
}

// nullableString maps an empty string to NULL for optional foreign keys.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
