package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'PENDING',
	remarks     TEXT NOT NULL DEFAULT '',
	reminder    INTEGER NOT NULL DEFAULT 0 CHECK(reminder IN (0, 1)),
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meetings (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	date        TEXT NOT NULL,
	time        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	platform    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS note_folders (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	folder_id  TEXT REFERENCES note_folders(id) ON DELETE SET NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notifications (
	id      TEXT PRIMARY KEY,
	title   TEXT NOT NULL,
	message TEXT NOT NULL,
	time    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	read    INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1))
);

CREATE TABLE IF NOT EXISTS brain_games (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	type             TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL DEFAULT 30,
	instructions     TEXT NOT NULL DEFAULT '',
	active           INTEGER NOT NULL DEFAULT 1 CHECK(active IN (0, 1)),
	frequency        TEXT NOT NULL DEFAULT 'RANDOM'
);

CREATE TABLE IF NOT EXISTS game_settings (
	id                   INTEGER PRIMARY KEY CHECK(id = 1),
	enabled              INTEGER NOT NULL DEFAULT 1 CHECK(enabled IN (0, 1)),
	min_interval_minutes INTEGER NOT NULL DEFAULT 30,
	max_interval_minutes INTEGER NOT NULL DEFAULT 120,
	games_per_day        INTEGER NOT NULL DEFAULT 2,
	volume               REAL NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS game_scores (
	id         TEXT PRIMARY KEY,
	game_title TEXT NOT NULL,
	type       TEXT NOT NULL,
	score      INTEGER NOT NULL,
	date       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS prefs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_reminder ON tasks(reminder);
CREATE INDEX IF NOT EXISTS idx_notes_folder_id ON notes(folder_id);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_time ON notifications(time);
CREATE INDEX IF NOT EXISTS idx_game_scores_score ON game_scores(score);
CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings(date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
