package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nvbach/omnitask/internal/model"
)

// CreateGame inserts a new brain game catalog entry.
func (s *SQLiteStore) CreateGame(ctx context.Context, g model.BrainGame) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Frequency == "" {
		g.Frequency = model.FrequencyRandom
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brain_games (id, title, type, duration_seconds, instructions, active, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, string(g.Type), g.DurationSeconds,
		g.Instructions, boolToInt(g.Active), g.Frequency,
	)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	return nil
}

// UpdateGame replaces all mutable fields of a catalog entry.
func (s *SQLiteStore) UpdateGame(ctx context.Context, g model.BrainGame) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE brain_games
		SET title = ?, type = ?, duration_seconds = ?, instructions = ?,
			active = ?, frequency = ?
		WHERE id = ?`,
		g.Title, string(g.Type), g.DurationSeconds, g.Instructions,
		boolToInt(g.Active), g.Frequency, g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating game %s: %w", g.ID, err)
	}
	return nil
}

// DeleteGame removes a catalog entry by ID.
func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM brain_games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting game %s: %w", id, err)
	}
	return nil
}

// GetGames retrieves catalog entries, optionally only active ones.
func (s *SQLiteStore) GetGames(ctx context.Context, activeOnly bool) ([]model.BrainGame, error) {
	query := "SELECT * FROM brain_games"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY title"

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []model.BrainGame
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// GetGameSettings retrieves the single settings row, falling back to
// defaults when it has never been written.
func (s *SQLiteStore) GetGameSettings(ctx context.Context) (model.GameSettings, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT enabled, min_interval_minutes, max_interval_minutes, games_per_day, volume FROM game_settings WHERE id = 1",
	)

	var (
		settings model.GameSettings
		enabled  int
	)
	err := row.Scan(
		&enabled, &settings.MinIntervalMinutes, &settings.MaxIntervalMinutes,
		&settings.GamesPerDay, &settings.Volume,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultGameSettings(), nil
	}
	if err != nil {
		return model.GameSettings{}, fmt.Errorf("reading game settings: %w", err)
	}

	settings.Enabled = enabled != 0
	return settings, nil
}

// PutGameSettings writes the single settings row, last write wins.
func (s *SQLiteStore) PutGameSettings(ctx context.Context, settings model.GameSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO game_settings
			(id, enabled, min_interval_minutes, max_interval_minutes, games_per_day, volume)
		VALUES (1, ?, ?, ?, ?, ?)`,
		boolToInt(settings.Enabled), settings.MinIntervalMinutes,
		settings.MaxIntervalMinutes, settings.GamesPerDay, settings.Volume,
	)
	if err != nil {
		return fmt.Errorf("writing game settings: %w", err)
	}
	return nil
}

// CreateScore appends a score entry to the ledger.
func (s *SQLiteStore) CreateScore(ctx context.Context, sc model.GameScore) error {
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	if sc.Date.IsZero() {
		sc.Date = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_scores (id, game_title, type, score, date)
		VALUES (?, ?, ?, ?, ?)`,
		sc.ID, sc.GameTitle, string(sc.Type), sc.Score, sc.Date.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating score: %w", err)
	}

	return nil
}

// GetScores retrieves score entries, newest first.
func (s *SQLiteStore) GetScores(ctx context.Context, limit int) ([]model.GameScore, error) {
	query := "SELECT * FROM game_scores ORDER BY date DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying scores: %w", err)
	}
	defer rows.Close()

	return collectScores(rows)
}

// TopScores retrieves the n highest scores, descending. Ties land in
// whichever order SQLite returns them.
func (s *SQLiteStore) TopScores(ctx context.Context, n int) ([]model.GameScore, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM game_scores ORDER BY score DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying top scores: %w", err)
	}
	defer rows.Close()

	return collectScores(rows)
}

// GetPref retrieves a preference value, or "" when the key is absent.
func (s *SQLiteStore) GetPref(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM prefs WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading pref %q: %w", key, err)
	}
	return value, nil
}

// SetPref writes a preference value, last write wins.
func (s *SQLiteStore) SetPref(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO prefs (key, value) VALUES (?, ?)", key, value,
	)
	if err != nil {
		return fmt.Errorf("writing pref %q: %w", key, err)
	}
	return nil
}

// scanGame scans a brain game row from a sqlx.Rows result set.
func scanGame(rows *sqlx.Rows) (model.BrainGame, error) {
	var (
		g        model.BrainGame
		gameType string
		active   int
	)

	err := rows.Scan(
		&g.ID, &g.Title, &gameType, &g.DurationSeconds,
		&g.Instructions, &active, &g.Frequency,
	)
	if err != nil {
		return model.BrainGame{}, fmt.Errorf("scanning game row: %w", err)
	}

	g.Type = model.GameType(gameType)
	g.Active = active != 0

	return g, nil
}

// collectScores drains a score result set.
func collectScores(rows *sqlx.Rows) ([]model.GameScore, error) {
	var scores []model.GameScore
	for rows.Next() {
		var (
			sc       model.GameScore
			gameType string
			date     time.Time
		)
		if err := rows.Scan(&sc.ID, &sc.GameTitle, &gameType, &sc.Score, &date); err != nil {
			return nil, fmt.Errorf("scanning score row: %w", err)
		}
		sc.Type = model.GameType(gameType)
		sc.Date = date
		scores = append(scores, sc)
	}

	return scores, rows.Err()
}
