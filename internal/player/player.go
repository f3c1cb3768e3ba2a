// Package player defines the contract with the decode/render engine.
// The engine itself lives outside this module; playback drives it purely
// through this interface.
package player

import "time"

// State represents the engine playback state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration)
	// FinishedChan signals every time a track plays to its end.
	FinishedChan() <-chan struct{}
	Close() error
}
