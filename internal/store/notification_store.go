package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvbach/omnitask/internal/model"
)

// CreateNotification inserts a new notification record.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n model.AppNotification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, title, message, time, read)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, n.Time.UTC(), boolToInt(n.Read),
	)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}

// GetNotifications retrieves all notifications, newest first.
func (s *SQLiteStore) GetNotifications(ctx context.Context) ([]model.AppNotification, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM notifications ORDER BY time DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.AppNotification
	for rows.Next() {
		var (
			n       model.AppNotification
			readInt int
			at      time.Time
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &at, &readInt); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		n.Time = at
		n.Read = readInt != 0
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// CountUnreadNotifications returns the number of unread notifications.
func (s *SQLiteStore) CountUnreadNotifications(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE read = 0",
	)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkAllNotificationsRead marks every notification as read. The panel
// marks everything at once when opened, matching the dashboard behavior.
func (s *SQLiteStore) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE read = 0")
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}
