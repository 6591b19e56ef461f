package state

import (
	"github.com/jmoiron/sqlx"
)

const currentSchemaVersion = 1

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS credential_backups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			data TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'renewal',
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS download_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT NOT NULL UNIQUE,
			track_id TEXT NOT NULL,
			artist TEXT NOT NULL,
			title TEXT NOT NULL,
			album TEXT,
			quality TEXT NOT NULL,
			path TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			tag_status TEXT NOT NULL DEFAULT '',
			tag_error TEXT,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_download_history_created ON download_history(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_download_history_track ON download_history(track_id);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
