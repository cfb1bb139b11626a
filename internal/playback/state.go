// Package playback implements the simulated playback session: a queue of
// song ids, a play mode, and progress through the current track.
package playback

import (
	"fmt"
	"strings"
)

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Mode governs how the queue advances.
type Mode int

const (
	ModeSequential Mode = iota
	ModeSingleLoop
	ModeRandom
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "Sequential"
	case ModeSingleLoop:
		return "SingleLoop"
	case ModeRandom:
		return "Random"
	default:
		return "Unknown"
	}
}

// Next returns the following mode in the cycle
// Sequential -> SingleLoop -> Random -> Sequential.
func (m Mode) Next() Mode {
	switch m {
	case ModeSequential:
		return ModeSingleLoop
	case ModeSingleLoop:
		return ModeRandom
	default:
		return ModeSequential
	}
}

func (m Mode) valid() bool {
	return m >= ModeSequential && m <= ModeRandom
}

// ParseMode accepts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq":
		return ModeSequential, nil
	case "singleloop", "single", "loop":
		return ModeSingleLoop, nil
	case "random", "shuffle":
		return ModeRandom, nil
	default:
		return ModeSequential, fmt.Errorf("unknown play mode %q", s)
	}
}
