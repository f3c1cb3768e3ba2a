// Package session wires the playback service, the subtitle manager and
// persistent state into one player session.
package session

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/reelplayer/reel/internal/config"
	"github.com/reelplayer/reel/internal/errmsg"
	"github.com/reelplayer/reel/internal/media"
	"github.com/reelplayer/reel/internal/playback"
	"github.com/reelplayer/reel/internal/player"
	"github.com/reelplayer/reel/internal/playlist"
	"github.com/reelplayer/reel/internal/state"
	"github.com/reelplayer/reel/internal/subtitle"
)

// Session owns the per-run service graph. Track changes flow from the
// playback service into the subtitle manager, and queue changes flow
// into the state database.
type Session struct {
	Config    *config.Config
	State     *state.Manager
	Playback  playback.Service
	Subtitles *subtitle.Manager

	log *zap.Logger
	sub *playback.Subscription
	wg  sync.WaitGroup

	mu           sync.Mutex
	currentMedia string
}

// New builds a session over a player engine, backed by the default
// state database. meta may be nil when the engine exposes no embedded
// subtitle metadata.
func New(p player.Interface, meta subtitle.MetadataSource, cfg *config.Config, log *zap.Logger) (*Session, error) {
	st, err := state.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	return NewWithState(p, meta, cfg, st, log), nil
}

// NewWithState builds a session over an already opened state store.
// The session takes ownership of the store and closes it on Close.
func NewWithState(p player.Interface, meta subtitle.MetadataSource, cfg *config.Config, st *state.Manager, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	queue := playlist.NewQueue()
	if cfg.ShouldRestoreQueue() {
		qs, err := st.GetQueue()
		if err != nil {
			log.Warn("saved queue restore failed", zap.Error(err))
		} else if len(qs.Items) > 0 {
			queue.Replace(qs.Items, qs.CurrentIndex)
			queue.SetRepeatMode(qs.RepeatMode)
			queue.SetShuffle(qs.Shuffle)
		}
	}

	source := media.NewFilesystemSource(afero.NewOsFs())
	subs := subtitle.NewManager(source, meta, st, cfg.SubtitleConfig(), log)
	subs.SetSyncOffset(cfg.DefaultSyncOffset())

	s := &Session{
		Config:    cfg,
		State:     st,
		Playback:  playback.New(p, queue, log),
		Subtitles: subs,
		log:       log,
	}

	s.sub = s.Playback.Subscribe()
	s.wg.Add(1)
	go s.watchEvents()
	return s
}

// watchEvents mirrors playback events into the subtitle manager and
// the state database until the service closes the subscription.
func (s *Session) watchEvents() {
	defer s.wg.Done()
	for {
		select {
		case <-s.sub.Done:
			return
		case e := <-s.sub.TrackChanged:
			s.handleTrackChange(e)
		case <-s.sub.QueueChanged:
			s.saveQueue()
		case <-s.sub.ModeChanged:
			s.saveQueue()
		case e := <-s.sub.Error:
			s.log.Warn(errmsg.FormatWith(errmsg.OpPlaybackStart, e.Path, e.Err))
		}
	}
}

// handleTrackChange switches the subtitle manager to the new media item.
// The previous item's subtitle choices are saved first so they can be
// restored next time it plays.
func (s *Session) handleTrackChange(e playback.TrackChange) {
	if e.Current == nil {
		return
	}
	mediaID := e.Current.Path

	s.mu.Lock()
	prev := s.currentMedia
	s.currentMedia = mediaID
	s.mu.Unlock()

	if prev != "" && prev != mediaID {
		s.saveSubtitleSettings(prev)
	}

	s.Subtitles.LoadTracksForMedia(mediaID, e.Current.Path)

	settings, err := s.State.GetSubtitleSettings(mediaID)
	if err != nil {
		s.log.Warn("subtitle settings lookup failed",
			zap.String("media", mediaID), zap.Error(err))
		return
	}
	// A remembered selection overrides the auto-select; an empty one
	// means nothing was remembered and the auto-select stands.
	if settings.SelectedTrack != "" {
		s.Subtitles.SelectTrack(settings.SelectedTrack)
	}
	if settings.SyncOffset != 0 {
		s.Subtitles.SetSyncOffset(settings.SyncOffset)
	}
}

func (s *Session) saveSubtitleSettings(mediaID string) {
	settings := state.SubtitleSettings{
		SyncOffset: s.Subtitles.SyncOffset(),
	}
	if cur := s.Subtitles.Current(); cur != nil {
		settings.SelectedTrack = cur.ID
	}
	if err := s.State.SaveSubtitleSettings(mediaID, settings); err != nil {
		s.log.Warn("subtitle settings save failed",
			zap.String("media", mediaID), zap.Error(err))
	}
}

func (s *Session) saveQueue() {
	qs := state.QueueState{
		CurrentIndex: s.Playback.QueueIndex(),
		RepeatMode:   s.Playback.RepeatMode(),
		Shuffle:      s.Playback.Shuffle(),
		Items:        s.Playback.QueueItems(),
	}
	if err := s.State.SaveQueue(qs); err != nil {
		s.log.Warn("queue save failed", zap.Error(err))
	}
}

// CurrentSubtitle returns the subtitle entry active at the current
// playback position, or nil when none is.
func (s *Session) CurrentSubtitle() *subtitle.Entry {
	return s.Subtitles.CurrentEntryAt(s.Playback.Position())
}

// Close persists final state and shuts the services down.
func (s *Session) Close() error {
	s.saveQueue()

	s.mu.Lock()
	cur := s.currentMedia
	s.mu.Unlock()
	if cur != "" {
		s.saveSubtitleSettings(cur)
	}

	err := s.Playback.Close()
	s.wg.Wait()
	s.Subtitles.Close()
	if cerr := s.State.Close(); err == nil {
		err = cerr
	}
	return err
}
