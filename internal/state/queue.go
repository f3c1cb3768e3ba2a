package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/reelplayer/reel/internal/db"
	"github.com/reelplayer/reel/internal/playlist"
)

// QueueState is the saved playback queue.
type QueueState struct {
	CurrentIndex int
	RepeatMode   playlist.RepeatMode
	Shuffle      bool
	Items        []playlist.Item
}

// GetQueue loads the saved queue state, or an empty one when nothing
// was saved yet.
func (m *Manager) GetQueue() (*QueueState, error) {
	var currentIndex, repeatMode int
	var shuffle bool
	row := m.db.QueryRow(`SELECT current_index, repeat_mode, shuffle FROM queue_state WHERE id = 1`)
	err := row.Scan(&currentIndex, &repeatMode, &shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := m.db.Query(`
		SELECT media_id, path, title, duration_ms
		FROM queue_items
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []playlist.Item
	for rows.Next() {
		var it playlist.Item
		var mediaID, durationMs sql.NullInt64
		var title sql.NullString

		if err := rows.Scan(&mediaID, &it.Path, &title, &durationMs); err != nil {
			return nil, err
		}

		it.ID = dbutil.NullInt64Value(mediaID)
		it.Title = dbutil.NullStringValue(title)
		it.Duration = time.Duration(dbutil.NullInt64Value(durationMs)) * time.Millisecond
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &QueueState{
		CurrentIndex: currentIndex,
		RepeatMode:   playlist.RepeatMode(repeatMode),
		Shuffle:      shuffle,
		Items:        items,
	}, nil
}

// SaveQueue replaces the saved queue state.
func (m *Manager) SaveQueue(qs QueueState) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_items`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_items (position, media_id, path, title, duration_ms)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, it := range qs.Items {
			_, err := stmt.Exec(i, it.ID, it.Path, it.Title, it.Duration.Milliseconds())
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(`
			INSERT INTO queue_state (id, current_index, repeat_mode, shuffle)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle
		`, qs.CurrentIndex, int(qs.RepeatMode), qs.Shuffle)
		return err
	})
}
