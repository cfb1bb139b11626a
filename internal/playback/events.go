package playback

import "time"

// StateChange is emitted when the playing flag changes.
type StateChange struct {
	Previous State
	Current  State
}

// Reason tells why the track under the cursor changed.
type Reason int

const (
	ReasonCompleted Reason = iota
	ReasonNext
	ReasonPrevious
	ReasonJump
	ReasonQueue
)

// TrackChange is emitted whenever a track (re)starts from zero progress:
// completion, manual navigation, a jump, or a queue replacement.
// Index equals PreviousIndex when the same track restarts.
type TrackChange struct {
	PreviousSongID string
	SongID         string
	PreviousIndex  int
	Index          int
	Reason         Reason
}

// QueueChange is emitted when the queue is replaced.
type QueueChange struct {
	SongIDs []string
	Index   int
}

// ModeChange is emitted when the play mode changes.
type ModeChange struct {
	Previous Mode
	Current  Mode
}

// ProgressChange is emitted on ticks and seeks.
type ProgressChange struct {
	Progress float64
	Elapsed  time.Duration
}
