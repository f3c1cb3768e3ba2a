package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/reelplayer/reel/internal/db"
	"github.com/reelplayer/reel/internal/subtitle"
)

// Verify Manager implements the subtitle persistence contract.
var _ subtitle.Store = (*Manager)(nil)

// ExternalTracks returns the subtitle files registered for a media item.
func (m *Manager) ExternalTracks(mediaID string) ([]subtitle.Track, error) {
	rows, err := m.db.Query(`
		SELECT source, title, language, format
		FROM external_subtitles
		WHERE media_id = ?
		ORDER BY added_at, id
	`, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []subtitle.Track
	for rows.Next() {
		var t subtitle.Track
		var title, language sql.NullString
		var format string

		if err := rows.Scan(&t.Source, &title, &language, &format); err != nil {
			return nil, err
		}

		t.ID = "ext:" + t.Source
		t.Title = dbutil.NullStringValue(title)
		t.Language = dbutil.NullStringValue(language)
		t.Format = subtitle.FormatFromName(format)
		t.External = true
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// SaveExternalTrack registers a subtitle file for a media item.
// Registering the same source twice updates the existing row.
func (m *Manager) SaveExternalTrack(mediaID string, t subtitle.Track) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO external_subtitles (media_id, source, title, language, format, added_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(media_id, source) DO UPDATE SET
				title = excluded.title,
				language = excluded.language,
				format = excluded.format
		`, mediaID, t.Source, t.Title, t.Language, t.Format.String(), time.Now().Unix())
		return err
	})
}

// RemoveExternalTrack drops a registration.
func (m *Manager) RemoveExternalTrack(mediaID, source string) error {
	_, err := m.db.Exec(`
		DELETE FROM external_subtitles WHERE media_id = ? AND source = ?
	`, mediaID, source)
	return err
}

// SubtitleSettings holds the remembered subtitle choices for one media item.
type SubtitleSettings struct {
	SelectedTrack string // track id, empty when subtitles were off
	SyncOffset    time.Duration
}

// GetSubtitleSettings returns the remembered settings for a media item,
// or zero settings when none were saved.
func (m *Manager) GetSubtitleSettings(mediaID string) (SubtitleSettings, error) {
	var s SubtitleSettings
	var selected sql.NullString
	var offsetMs int64
	row := m.db.QueryRow(`
		SELECT selected_track, sync_offset_ms FROM media_subtitles WHERE media_id = ?
	`, mediaID)
	err := row.Scan(&selected, &offsetMs)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	s.SelectedTrack = dbutil.NullStringValue(selected)
	s.SyncOffset = time.Duration(offsetMs) * time.Millisecond
	return s, nil
}

// SaveSubtitleSettings remembers the subtitle choices for a media item.
func (m *Manager) SaveSubtitleSettings(mediaID string, s SubtitleSettings) error {
	_, err := m.db.Exec(`
		INSERT INTO media_subtitles (media_id, selected_track, sync_offset_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(media_id) DO UPDATE SET
			selected_track = excluded.selected_track,
			sync_offset_ms = excluded.sync_offset_ms
	`, mediaID, s.SelectedTrack, s.SyncOffset.Milliseconds())
	return err
}
