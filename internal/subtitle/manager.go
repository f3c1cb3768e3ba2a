package subtitle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/reelplayer/reel/internal/media"
)

// MetadataSource lists subtitle streams embedded in a media container.
// The container probing itself lives with the decode engine.
type MetadataSource interface {
	EmbeddedTracks(mediaID string) ([]Track, error)
}

// Store persists external subtitle track registrations per media item.
type Store interface {
	ExternalTracks(mediaID string) ([]Track, error)
	SaveExternalTrack(mediaID string, t Track) error
}

// Manager owns the subtitle state for one playback session: the available
// tracks for the current media item, the loaded entry index, the sync
// offset and display preferences.
//
// Loads run asynchronously; a generation counter discards results that
// arrive after a newer media item or track selection superseded them.
// Load and parse failures collapse to the disabled state and go to the
// log, never to the caller.
type Manager struct {
	mu sync.Mutex

	source media.Source
	meta   MetadataSource
	store  Store
	log    *zap.Logger

	cfg    Config
	offset time.Duration

	mediaID   string
	mediaPath string
	tracks    []Track
	current   *Track
	index     *Index

	loadGen uint64

	subs   []*Subscription
	subsMu sync.RWMutex
}

// NewManager creates a subtitle manager. meta and store may be nil when
// embedded-track metadata or persistence is unavailable.
func NewManager(source media.Source, meta MetadataSource, store Store, cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		source: source,
		meta:   meta,
		store:  store,
		cfg:    cfg,
		log:    log,
	}
}

// LoadTracksForMedia discovers the subtitle tracks available for a media
// item, replaces the track list and auto-selects per configuration.
// Any in-flight load for the previous item is invalidated.
func (m *Manager) LoadTracksForMedia(mediaID, mediaPath string) {
	tracks := m.discoverTracks(mediaID, mediaPath)

	m.mu.Lock()
	m.loadGen++
	m.mediaID = mediaID
	m.mediaPath = mediaPath
	m.tracks = tracks
	m.current = nil
	m.index = nil
	m.publishTracksLocked()
	m.publishSelectionLocked()

	if pick := m.autoSelectLocked(); pick != nil {
		m.startLoadLocked(*pick)
	}
	m.mu.Unlock()
}

// discoverTracks gathers embedded, registered-external and sibling-file
// tracks. Discovery failures are logged and otherwise ignored: a missing
// file or an unreadable directory just means fewer candidates.
func (m *Manager) discoverTracks(mediaID, mediaPath string) []Track {
	var tracks []Track

	if m.meta != nil {
		embedded, err := m.meta.EmbeddedTracks(mediaID)
		if err != nil {
			m.log.Warn("embedded subtitle track listing failed",
				zap.String("media", mediaID), zap.Error(err))
		} else {
			tracks = append(tracks, embedded...)
		}
	}

	if m.store != nil {
		registered, err := m.store.ExternalTracks(mediaID)
		if err != nil {
			m.log.Warn("external subtitle track lookup failed",
				zap.String("media", mediaID), zap.Error(err))
		} else {
			tracks = append(tracks, registered...)
		}
	}

	for _, t := range m.discoverSiblings(mediaPath) {
		if !containsSource(tracks, t.Source) {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// discoverSiblings probes the media file's directory for subtitle files
// sharing its base name, e.g. movie.mkv -> movie.srt, movie.en.srt.
func (m *Manager) discoverSiblings(mediaPath string) []Track {
	if mediaPath == "" {
		return nil
	}
	siblings, err := m.source.ListSiblings(mediaPath)
	if err != nil {
		m.log.Debug("sibling discovery failed",
			zap.String("media", mediaPath), zap.Error(err))
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	var tracks []Track
	for _, p := range siblings {
		name := filepath.Base(p)
		if p == mediaPath || !strings.HasPrefix(name, base) {
			continue
		}
		format := FormatFromPath(p)
		if format == FormatUnknown {
			continue
		}
		tracks = append(tracks, Track{
			ID:       "ext:" + p,
			Title:    name,
			Language: languageFromPath(p),
			External: true,
			Source:   p,
			Format:   format,
		})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Source < tracks[j].Source })
	return tracks
}

// languageFromPath extracts a language code from names like movie.en.srt.
func languageFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tag := strings.ToLower(filepath.Ext(name))
	tag = strings.TrimPrefix(tag, ".")
	if len(tag) == 2 || len(tag) == 3 {
		for _, r := range tag {
			if r < 'a' || r > 'z' {
				return ""
			}
		}
		return tag
	}
	return ""
}

func containsSource(tracks []Track, source string) bool {
	for _, t := range tracks {
		if t.Source == source {
			return true
		}
	}
	return false
}

// autoSelectLocked picks the track to load when a media item is opened:
// explicit default flag, then first preferred-language match in configured
// order, then the first track.
func (m *Manager) autoSelectLocked() *Track {
	if !m.cfg.AutoLoad || len(m.tracks) == 0 {
		return nil
	}
	for i := range m.tracks {
		if m.tracks[i].Default {
			return &m.tracks[i]
		}
	}
	for _, lang := range m.cfg.PreferredLanguages {
		for i := range m.tracks {
			if strings.EqualFold(m.tracks[i].Language, lang) {
				return &m.tracks[i]
			}
		}
	}
	return &m.tracks[0]
}

// SelectTrack loads the track with the given id. An empty id disables
// subtitles and clears the loaded entries. An unknown id is ignored.
func (m *Manager) SelectTrack(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		m.loadGen++
		m.current = nil
		m.index = nil
		m.publishSelectionLocked()
		return
	}
	for _, t := range m.tracks {
		if t.ID == id {
			m.startLoadLocked(t)
			return
		}
	}
	m.log.Warn("unknown subtitle track selected", zap.String("id", id))
}

// startLoadLocked kicks off an asynchronous parse-and-load of a track.
// The I/O runs outside the lock; the result is committed only if no newer
// selection or media change happened in the meantime.
func (m *Manager) startLoadLocked(t Track) {
	m.loadGen++
	gen := m.loadGen
	go m.load(gen, t)
}

func (m *Manager) load(gen uint64, t Track) {
	entries, err := m.loadEntries(t)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.loadGen {
		// A newer selection superseded this load; drop the result.
		return
	}
	if err != nil {
		m.log.Warn("subtitle track load failed",
			zap.String("source", t.Source), zap.Error(err))
		m.current = nil
		m.index = nil
		m.publishSelectionLocked()
		return
	}
	track := t
	m.current = &track
	m.index = NewIndex(entries)
	m.index.SetOffset(m.offset)
	m.publishSelectionLocked()
}

func (m *Manager) loadEntries(t Track) ([]Entry, error) {
	data, err := m.source.ReadFile(t.Source)
	if err != nil {
		return nil, fmt.Errorf("read subtitle %s: %w", t.Source, err)
	}
	charset := m.source.DetectEncoding(data)
	return Parse(data, charset, t.Format)
}

// AddExternalTrack registers a user-supplied subtitle file as an available
// track for the media item without selecting it.
func (m *Manager) AddExternalTrack(locator, mediaID string) (Track, error) {
	format := FormatFromPath(locator)
	if format == FormatUnknown {
		return Track{}, fmt.Errorf("unrecognized subtitle extension: %s", filepath.Base(locator))
	}
	t := Track{
		ID:       "ext:" + locator,
		Title:    filepath.Base(locator),
		Language: languageFromPath(locator),
		External: true,
		Source:   locator,
		Format:   format,
	}

	if m.store != nil {
		if err := m.store.SaveExternalTrack(mediaID, t); err != nil {
			m.log.Warn("external subtitle track registration failed",
				zap.String("source", locator), zap.Error(err))
		}
	}

	m.mu.Lock()
	if mediaID == m.mediaID && !containsSource(m.tracks, t.Source) {
		m.tracks = append(m.tracks, t)
		m.publishTracksLocked()
	}
	m.mu.Unlock()
	return t, nil
}

// CurrentEntryAt returns the subtitle entry active at the given playback
// position, or nil when subtitles are disabled or nothing is active.
func (m *Manager) CurrentEntryAt(pos time.Duration) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index == nil {
		return nil
	}
	return m.index.EntryAt(pos)
}

// SetSyncOffset shifts subtitle timing relative to playback.
func (m *Manager) SetSyncOffset(d time.Duration) {
	m.mu.Lock()
	m.offset = d
	if m.index != nil {
		m.index.SetOffset(d)
	}
	m.mu.Unlock()

	m.subsMu.RLock()
	for _, sub := range m.subs {
		sub.sendOffset(d)
	}
	m.subsMu.RUnlock()
}

// SyncOffset returns the current sync offset.
func (m *Manager) SyncOffset() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

// UpdateConfig replaces the display preferences.
func (m *Manager) UpdateConfig(cfg Config) {
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	m.subsMu.RLock()
	for _, sub := range m.subs {
		sub.sendConfig(cfg)
	}
	m.subsMu.RUnlock()
}

// Config returns the current display preferences.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Tracks returns a copy of the available track list.
func (m *Manager) Tracks() []Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	tracks := make([]Track, len(m.tracks))
	copy(tracks, m.tracks)
	return tracks
}

// Current returns the loaded track, or nil when subtitles are disabled.
func (m *Manager) Current() *Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	t := *m.current
	return &t
}

// Enabled returns true when a track is loaded.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index != nil
}

// EntryCount returns the number of loaded entries.
func (m *Manager) EntryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index == nil {
		return 0
	}
	return m.index.Len()
}

// Subscribe creates a new event subscription.
func (m *Manager) Subscribe() *Subscription {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	sub := newSubscription()
	m.subs = append(m.subs, sub)
	return sub
}

// Close shuts down the manager and its subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	m.loadGen++
	m.current = nil
	m.index = nil
	m.mu.Unlock()

	m.subsMu.Lock()
	for _, sub := range m.subs {
		sub.close()
	}
	m.subs = nil
	m.subsMu.Unlock()
}

func (m *Manager) publishTracksLocked() {
	e := TracksChange{MediaID: m.mediaID, Tracks: append([]Track(nil), m.tracks...)}
	m.subsMu.RLock()
	for _, sub := range m.subs {
		sub.sendTracks(e)
	}
	m.subsMu.RUnlock()
}

func (m *Manager) publishSelectionLocked() {
	e := SelectionChange{}
	if m.current != nil {
		t := *m.current
		e.Current = &t
	}
	if m.index != nil {
		e.Entries = m.index.Len()
	}
	m.subsMu.RLock()
	for _, sub := range m.subs {
		sub.sendSelection(e)
	}
	m.subsMu.RUnlock()
}
