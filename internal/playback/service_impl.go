package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/reelplayer/reel/internal/player"
	"github.com/reelplayer/reel/internal/playlist"
)

const historySize = 50

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.Mutex

	player  player.Interface
	queue   *playlist.PlayingQueue
	history *playlist.QueueHistory
	log     *zap.Logger

	// Last item a play was committed for, to build TrackChange events.
	lastPlayed    *playlist.Item
	lastPlayedIdx int

	// loadGen invalidates in-flight track starts when a newer selection
	// supersedes them.
	loadGen uint64

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback service over a player engine and a queue.
func New(p player.Interface, q *playlist.PlayingQueue, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &serviceImpl{
		player:        p,
		queue:         q,
		history:       playlist.NewQueueHistory(historySize),
		log:           log,
		lastPlayedIdx: -1,
		done:          make(chan struct{}),
	}
	s.history.Push(q.Items(), q.CurrentIndex())
	go s.watchFinished()
	return s
}

func (s *serviceImpl) watchFinished() {
	for {
		select {
		case <-s.done:
			return
		case <-s.player.FinishedChan():
			s.handleTrackFinished()
		}
	}
}

// handleTrackFinished advances past an ended track. The queue owns the
// repeat decision: a nil Advance means the end of the queue was reached
// with repeat off, and playback stops.
func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Advance() == nil {
		s.emitState(StatePlaying, StateStopped)
		return
	}
	s.emitQueueLocked()
	s.startPlayLocked()
}

// startPlayLocked begins playing the current queue item. The engine call
// runs in a goroutine so queue mutation never blocks on track loading;
// a generation counter discards the result if a newer start supersedes it.
func (s *serviceImpl) startPlayLocked() {
	item := s.queue.Current()
	if item == nil {
		return
	}
	it := *item
	idx := s.queue.CurrentIndex()
	s.loadGen++
	gen := s.loadGen
	go s.playItem(gen, it, idx)
}

func (s *serviceImpl) playItem(gen uint64, it playlist.Item, idx int) {
	prevState := fromPlayerState(s.player.State())
	err := s.player.Play(it.Path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		// A newer selection superseded this start; drop it.
		return
	}
	if err != nil {
		s.log.Warn("playback start failed",
			zap.String("path", it.Path), zap.Error(err))
		s.emitError("play", it.Path, err)
		return
	}
	prev := s.lastPlayed
	prevIdx := s.lastPlayedIdx
	s.lastPlayed = &it
	s.lastPlayedIdx = idx
	s.emitState(prevState, StatePlaying)
	s.emitTrack(TrackChange{
		Previous:      prev,
		Current:       &it,
		PreviousIndex: prevIdx,
		Index:         idx,
	})
}

// stopLocked halts the engine and cancels any in-flight start.
func (s *serviceImpl) stopLocked() {
	s.loadGen++
	prev := fromPlayerState(s.player.State())
	s.player.Stop()
	s.emitState(prev, StateStopped)
}

// --- Playback control ---

// Play resumes paused playback or starts the current queue item.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.player.State() {
	case player.Paused:
		s.player.Resume()
		s.emitState(StatePaused, StatePlaying)
	case player.Stopped:
		s.startPlayLocked()
	case player.Playing:
	}
	return nil
}

func (s *serviceImpl) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.State() == player.Playing {
		s.player.Pause()
		s.emitState(StatePlaying, StatePaused)
	}
}

func (s *serviceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *serviceImpl) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.player.State() {
	case player.Playing:
		s.player.Pause()
		s.emitState(StatePlaying, StatePaused)
	case player.Paused:
		s.player.Resume()
		s.emitState(StatePaused, StatePlaying)
	case player.Stopped:
		s.startPlayLocked()
	}
}

// Next advances with wraparound (shuffle-aware) and plays the new item.
// No-op on an empty queue.
func (s *serviceImpl) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Next() == nil {
		return
	}
	s.emitQueueLocked()
	s.startPlayLocked()
}

// Previous retreats with wraparound (shuffle-aware) and plays the new
// item. No-op on an empty queue.
func (s *serviceImpl) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Previous() == nil {
		return
	}
	s.emitQueueLocked()
	s.startPlayLocked()
}

func (s *serviceImpl) SeekTo(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.SeekTo(pos)
	s.emitPosition(pos)
}

// --- Queue mutation ---

// SetQueue replaces the whole queue and starts playing at startIndex
// (clamped). An empty replacement stops playback.
func (s *serviceImpl) SetQueue(items []playlist.Item, startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	first := s.queue.Replace(items, startIndex)
	s.pushHistoryLocked()
	s.emitQueueLocked()
	if first == nil {
		s.stopLocked()
		return
	}
	s.startPlayLocked()
}

func (s *serviceImpl) AddItems(items ...playlist.Item) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Add(items...)
	s.pushHistoryLocked()
	s.emitQueueLocked()
}

func (s *serviceImpl) InsertAt(index int, item playlist.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.InsertAt(index, item)
	s.pushHistoryLocked()
	s.emitQueueLocked()
}

// RemoveAt removes the item at index. Removing the playing item reloads
// whatever slid into its slot, or stops when the queue empties.
func (s *serviceImpl) RemoveAt(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, currentChanged := s.queue.RemoveAt(index)
	if !ok {
		return
	}
	s.pushHistoryLocked()
	s.emitQueueLocked()
	if !currentChanged {
		return
	}
	if s.queue.IsEmpty() {
		s.stopLocked()
		return
	}
	if fromPlayerState(s.player.State()).IsActive() {
		s.startPlayLocked()
	}
}

func (s *serviceImpl) MoveItem(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.Move(from, to) {
		return
	}
	s.pushHistoryLocked()
	s.emitQueueLocked()
}

func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Clear()
	s.pushHistoryLocked()
	s.emitQueueLocked()
	s.stopLocked()
}

// PlayAt jumps to an explicit queue position and plays it.
// Out-of-range indices are ignored.
func (s *serviceImpl) PlayAt(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.JumpTo(index) == nil {
		return
	}
	s.emitQueueLocked()
	s.startPlayLocked()
}

// --- State queries ---

func (s *serviceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fromPlayerState(s.player.State())
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }

func (s *serviceImpl) IsPaused() bool { return s.State() == StatePaused }

func (s *serviceImpl) IsStopped() bool { return s.State() == StateStopped }

func (s *serviceImpl) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Position()
}

func (s *serviceImpl) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Duration()
}

func (s *serviceImpl) CurrentItem() *playlist.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.queue.Current()
	if item == nil {
		return nil
	}
	it := *item
	return &it
}

// --- Queue queries ---

func (s *serviceImpl) QueueItems() []playlist.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Items()
}

func (s *serviceImpl) QueueIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

func (s *serviceImpl) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

func (s *serviceImpl) QueueIsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.IsEmpty()
}

// --- Queue history ---

func (s *serviceImpl) Undo() bool { return s.restoreHistory((*playlist.QueueHistory).Undo) }

func (s *serviceImpl) Redo() bool { return s.restoreHistory((*playlist.QueueHistory).Redo) }

func (s *serviceImpl) restoreHistory(step func(*playlist.QueueHistory) (playlist.Snapshot, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := step(s.history)
	if !ok {
		return false
	}
	s.queue.Replace(snap.Items, snap.CurrentIndex)
	s.emitQueueLocked()
	return true
}

func (s *serviceImpl) pushHistoryLocked() {
	s.history.Push(s.queue.Items(), s.queue.CurrentIndex())
}

// --- Mode control ---

func (s *serviceImpl) RepeatMode() playlist.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.RepeatMode()
}

func (s *serviceImpl) SetRepeatMode(mode playlist.RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetRepeatMode(mode)
	s.emitModeLocked()
}

func (s *serviceImpl) CycleRepeatMode() playlist.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.queue.CycleRepeatMode()
	s.emitModeLocked()
	return mode
}

func (s *serviceImpl) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Shuffle()
}

func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetShuffle(enabled)
	s.emitModeLocked()
}

func (s *serviceImpl) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	enabled := s.queue.ToggleShuffle()
	s.emitModeLocked()
	return enabled
}

func (s *serviceImpl) ShuffleOrder() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Order()
}

// --- Subscription / lifecycle ---

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the service.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.loadGen++
	s.player.Stop()
	close(s.done)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// --- Event emission ---

func (s *serviceImpl) emitState(prev, cur State) {
	if prev == cur {
		return
	}
	e := StateChange{Previous: prev, Current: cur}
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
	s.subsMu.RUnlock()
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
	s.subsMu.RUnlock()
}

func (s *serviceImpl) emitPosition(pos time.Duration) {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendPosition(pos)
	}
	s.subsMu.RUnlock()
}

func (s *serviceImpl) emitQueueLocked() {
	e := QueueChange{Items: s.queue.Items(), Index: s.queue.CurrentIndex()}
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendQueue(e)
	}
	s.subsMu.RUnlock()
}

func (s *serviceImpl) emitModeLocked() {
	e := ModeChange{RepeatMode: s.queue.RepeatMode(), Shuffle: s.queue.Shuffle()}
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendMode(e)
	}
	s.subsMu.RUnlock()
}

func (s *serviceImpl) emitError(op, path string, err error) {
	e := ErrorEvent{Operation: op, Path: path, Err: err}
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
	s.subsMu.RUnlock()
}
