package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nvbach/omnitask/internal/model"
)

// CreateTask inserts a new task. A missing ID is assigned a fresh UUID.
func (s *SQLiteStore) CreateTask(ctx context.Context, t model.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, location, date, status, remarks, reminder, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Location, t.Date, t.Status,
		t.Remarks, boolToInt(t.Reminder), t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

// UpdateTask replaces all mutable fields of an existing task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, t model.Task) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, location = ?, date = ?,
			status = ?, remarks = ?, reminder = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Location, t.Date,
		t.Status, t.Remarks, boolToInt(t.Reminder), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTask removes a task by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// GetTaskByID retrieves a single task, or nil when it does not exist.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTaskRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	return &task, nil
}

// GetTasks retrieves tasks matching the provided filter.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}
	if filter.Date != nil {
		conditions = append(conditions, "date = ?")
		args = append(args, *filter.Date)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.DateTo)
	}
	if filter.ReminderOnly {
		conditions = append(conditions, "reminder = 1")
	}
	if filter.OpenOnly {
		conditions = append(conditions, "status IN (?, ?)")
		args = append(args, model.StatusPending, model.StatusOnGoing)
	}

	query := "SELECT * FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "date"
	if filter.SortBy != "" {
		allowedSorts := map[string]bool{
			"date":       true,
			"created_at": true,
			"title":      true,
			"status":     true,
		}
		if allowedSorts[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task      model.Task
		reminder  int
		createdAt time.Time
	)

	err := rows.Scan(
		&task.ID, &task.Title, &task.Description, &task.Location,
		&task.Date, &task.Status, &task.Remarks, &reminder, &createdAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Reminder = reminder != 0
	task.CreatedAt = createdAt

	return task, nil
}

// scanTaskRow scans a single task row from a sqlx.Row.
func scanTaskRow(row *sqlx.Row) (model.Task, error) {
	var (
		task      model.Task
		reminder  int
		createdAt time.Time
	)

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Location,
		&task.Date, &task.Status, &task.Remarks, &reminder, &createdAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	task.Reminder = reminder != 0
	task.CreatedAt = createdAt

	return task, nil
}
