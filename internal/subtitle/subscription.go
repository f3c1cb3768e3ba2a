package subtitle

import "time"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	TracksChanged    <-chan TracksChange
	SelectionChanged <-chan SelectionChange
	OffsetChanged    <-chan OffsetChange
	ConfigChanged    <-chan ConfigChange
	Done             <-chan struct{}

	// Internal write channels
	tracksCh    chan TracksChange
	selectionCh chan SelectionChange
	offsetCh    chan OffsetChange
	configCh    chan ConfigChange
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		tracksCh:    make(chan TracksChange, eventBufferSize),
		selectionCh: make(chan SelectionChange, eventBufferSize),
		offsetCh:    make(chan OffsetChange, eventBufferSize),
		configCh:    make(chan ConfigChange, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.TracksChanged = s.tracksCh
	s.SelectionChanged = s.selectionCh
	s.OffsetChanged = s.offsetCh
	s.ConfigChanged = s.configCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendTracks sends a track list event (non-blocking).
func (s *Subscription) sendTracks(e TracksChange) {
	select {
	case s.tracksCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendSelection sends a selection event (non-blocking).
func (s *Subscription) sendSelection(e SelectionChange) {
	select {
	case s.selectionCh <- e:
	default:
	}
}

// sendOffset sends a sync offset event (non-blocking).
func (s *Subscription) sendOffset(d time.Duration) {
	select {
	case s.offsetCh <- OffsetChange{Offset: d}:
	default:
	}
}

// sendConfig sends a preferences event (non-blocking).
func (s *Subscription) sendConfig(c Config) {
	select {
	case s.configCh <- ConfigChange{Config: c}:
	default:
	}
}
