package database

import "database/sql"

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		amount REAL NOT NULL,
		merchant TEXT NOT NULL,
		category TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		impulse_score REAL NOT NULL DEFAULT 0,
		risk_level TEXT NOT NULL DEFAULT 'low',
		was_cancelled INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS moods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		mood TEXT NOT NULL,
		emoji TEXT NOT NULL DEFAULT '',
		intensity INTEGER NOT NULL DEFAULT 5,
		timestamp TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS savings_goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_amount REAL NOT NULL,
		current_amount REAL NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
		deadline TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS accountability_contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS user_settings (
		user_id TEXT PRIMARY KEY,
		lock_duration INTEGER NOT NULL DEFAULT 20,
		lock_sensitivity TEXT NOT NULL DEFAULT 'medium',
		enable_accountability INTEGER NOT NULL DEFAULT 1,
		enable_breathing INTEGER NOT NULL DEFAULT 1,
		enable_mood_alerts INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS user_state (
		user_id TEXT PRIMARY KEY,
		control_streak INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_tx_user ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_tx_user_ts ON transactions(user_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_tx_category ON transactions(category);
	CREATE INDEX IF NOT EXISTS idx_mood_user ON moods(user_id);
	CREATE INDEX IF NOT EXISTS idx_goal_user ON savings_goals(user_id);
	CREATE INDEX IF NOT EXISTS idx_contact_user ON accountability_contacts(user_id);
	`

	_, err := db.Exec(schema)
	return err
}
