package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nvbach/omnitask/internal/model"
)

// CreateMeeting inserts a new meeting. A missing ID is assigned a fresh UUID.
func (s *SQLiteStore) CreateMeeting(ctx context.Context, m model.Meeting) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings (id, title, date, time, description, platform)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Date, m.Time, m.Description, m.Platform,
	)
	if err != nil {
		return fmt.Errorf("creating meeting: %w", err)
	}

	return nil
}

// UpdateMeeting replaces all mutable fields of an existing meeting.
func (s *SQLiteStore) UpdateMeeting(ctx context.Context, m model.Meeting) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE meetings
		SET title = ?, date = ?, time = ?, description = ?, platform = ?
		WHERE id = ?`,
		m.Title, m.Date, m.Time, m.Description, m.Platform, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating meeting %s: %w", m.ID, err)
	}
	return nil
}

// DeleteMeeting removes a meeting by ID.
func (s *SQLiteStore) DeleteMeeting(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting meeting %s: %w", id, err)
	}
	return nil
}

// GetMeetings retrieves all meetings ordered by date then start time.
func (s *SQLiteStore) GetMeetings(ctx context.Context) ([]model.Meeting, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM meetings ORDER BY date, time",
	)
	if err != nil {
		return nil, fmt.Errorf("querying meetings: %w", err)
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var m model.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Date, &m.Time, &m.Description, &m.Platform); err != nil {
			return nil, fmt.Errorf("scanning meeting row: %w", err)
		}
		meetings = append(meetings, m)
	}

	return meetings, rows.Err()
}
