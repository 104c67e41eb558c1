package model

import "time"

// GameType identifies the per-type logic a brain game runs with.
type GameType string

const (
	GameTypeExercise  GameType = "EXERCISE"
	GameTypeMath      GameType = "MATH"
	GameTypeBreathing GameType = "BREATHING"
	GameTypeReflex    GameType = "REFLEX"
	GameTypeMemory    GameType = "MEMORY"
	GameTypePuzzle    GameType = "PUZZLE"
)

// Game frequency values. Only RANDOM games are picked by the background
// trigger today; SCHEDULED is stored for catalog entries that name a time.
const (
	FrequencyRandom    = "RANDOM"
	FrequencyScheduled = "SCHEDULED"
)

// BrainGame is a catalog entry for a brain-break activity.
type BrainGame struct {
	// ID is the unique identifier for this catalog entry.
	ID string `json:"id"`

	// Title is the display name of the game.
	Title string `json:"title"`

	// Type selects the per-type session logic.
	Type GameType `json:"type"`

	// DurationSeconds is the session countdown length.
	DurationSeconds int `json:"duration_seconds"`

	// Instructions is the pre-start explanation shown to the user.
	Instructions string `json:"instructions"`

	// Active marks the game eligible for random or manual triggering.
	Active bool `json:"active"`

	// Frequency is FrequencyRandom or FrequencyScheduled.
	Frequency string `json:"frequency"`
}

// GameSettings holds the user's popup scheduler preferences.
type GameSettings struct {
	// Enabled gates the background popup trigger entirely.
	Enabled bool `json:"enabled"`

	// MinIntervalMinutes and MaxIntervalMinutes bound how often popups
	// were meant to appear. They are stored and editable but the trigger
	// decision is a fixed per-tick probability; see scheduler.Trigger.
	MinIntervalMinutes int `json:"min_interval_minutes"`
	MaxIntervalMinutes int `json:"max_interval_minutes"`

	// GamesPerDay is the user's target number of popups per day.
	GamesPerDay int `json:"games_per_day"`

	// Volume scales audio cues; zero silences them.
	Volume float64 `json:"volume"`
}

// DefaultGameSettings returns the settings applied on first run.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		Enabled:            true,
		MinIntervalMinutes: 30,
		MaxIntervalMinutes: 120,
		GamesPerDay:        2,
		Volume:             1,
	}
}

// GameScore is one completed-session result on the leaderboard.
// Scores are append-only; nothing in the system mutates or deletes them.
type GameScore struct {
	// ID is the unique identifier for this score entry.
	ID string `json:"id"`

	// GameTitle is the catalog title at the time the game was played.
	GameTitle string `json:"game_title"`

	// Type is the game type the score was earned in.
	Type GameType `json:"type"`

	// Score is the points earned.
	Score int `json:"score"`

	// Date is when the session finished.
	Date time.Time `json:"date"`
}

// SeedGames returns the catalog installed on first run.
func SeedGames() []BrainGame {
	return []BrainGame{
		{
			Title:           "Quick Stretch",
			Type:            GameTypeExercise,
			DurationSeconds: 60,
			Instructions:    "Stand up and touch your toes. Hold for 10 seconds, repeat.",
			Active:          true,
			Frequency:       FrequencyRandom,
		},
		{
			Title:           "Box Breathing",
			Type:            GameTypeBreathing,
			DurationSeconds: 45,
			Instructions:    "Inhale for 4s, hold for 4s, exhale for 4s, hold for 4s.",
			Active:          true,
			Frequency:       FrequencyRandom,
		},
		{
			Title:           "Mental Math",
			Type:            GameTypeMath,
			DurationSeconds: 30,
			Instructions:    "Solve the problem as fast as you can.",
			Active:          true,
			Frequency:       FrequencyRandom,
		},
		{
			Title:           "Reflex Test",
			Type:            GameTypeReflex,
			DurationSeconds: 20,
			Instructions:    "Hit the target 5 times as it moves around.",
			Active:          true,
			Frequency:       FrequencyRandom,
		},
		{
			Title:           "Digit Span",
			Type:            GameTypeMemory,
			DurationSeconds: 30,
			Instructions:    "Memorize the 6-digit number shown, then type it in.",
			Active:          true,
			Frequency:       FrequencyRandom,
		},
		{
			Title:           "Word Scramble",
			Type:            GameTypePuzzle,
			DurationSeconds: 45,
			Instructions:    "Unscramble the productivity-related word.",
			Active:          true,
			Frequency:       FrequencyRandom,
		},
	}
}
