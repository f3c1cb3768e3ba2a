package state

import (
	"database/sql"
)

const currentSchemaVersion = 3

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS queue_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT 0,
			repeat_mode INTEGER NOT NULL DEFAULT 0,
			shuffle INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS queue_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			media_id INTEGER,
			path TEXT NOT NULL,
			title TEXT,
			duration_ms INTEGER,
			UNIQUE(position)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_items_position ON queue_items(position);

		CREATE TABLE IF NOT EXISTS external_subtitles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			media_id TEXT NOT NULL,
			source TEXT NOT NULL,
			title TEXT,
			language TEXT,
			format TEXT NOT NULL,
			added_at INTEGER NOT NULL,
			UNIQUE(media_id, source)
		);

		CREATE INDEX IF NOT EXISTS idx_external_subtitles_media ON external_subtitles(media_id);

		CREATE TABLE IF NOT EXISTS media_subtitles (
			media_id TEXT PRIMARY KEY,
			selected_track TEXT,
			sync_offset_ms INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: add sync_offset_ms column if missing
	_, _ = db.Exec(`ALTER TABLE media_subtitles ADD COLUMN sync_offset_ms INTEGER NOT NULL DEFAULT 0`)

	return nil
}
