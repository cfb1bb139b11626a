package playback

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/tunedeck/internal/queue"
)

var (
	// ErrEmptyQueue is returned by operations that need a loaded track.
	ErrEmptyQueue = errors.New("queue is empty")

	// ErrIndexOutOfRange is returned by JumpTo for an invalid position.
	ErrIndexOutOfRange = errors.New("queue index out of range")
)

// DurationFunc resolves the length of a song.
type DurationFunc func(songID string) time.Duration

// NowPlaying is a snapshot of the session.
type NowPlaying struct {
	SessionID string
	SongID    string
	Index     int
	QueueLen  int
	Mode      Mode
	State     State
	Progress  float64
	Elapsed   time.Duration
	Duration  time.Duration
}

// Playing reports whether playback is running.
func (n NowPlaying) Playing() bool {
	return n.State == StatePlaying
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used by Random mode.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithDurations sets how track lengths are resolved for elapsed-time display.
func WithDurations(fn DurationFunc) Option {
	return func(s *Session) { s.duration = fn }
}

// Session is the playback state machine. All transitions are serialized;
// every transition on an empty queue is a no-op.
type Session struct {
	mu sync.Mutex

	id       string
	queue    *queue.Queue
	mode     Mode
	progress float64
	playing  bool

	rng      *rand.Rand
	duration DurationFunc

	events hub
}

// NewSession creates a paused session at index 0 in Sequential mode.
func NewSession(songIDs []string, opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		queue: queue.New(songIDs, 0),
		mode:  ModeSequential,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.duration == nil {
		s.duration = func(string) time.Duration { return 0 }
	}
	return s
}

// ID returns the unique session id.
func (s *Session) ID() string {
	return s.id
}

// NowPlaying returns a snapshot of the current state.
func (s *Session) NowPlaying() NowPlaying {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() NowPlaying {
	songID, _ := s.queue.Current()
	d := time.Duration(0)
	if songID != "" {
		d = s.duration(songID)
	}
	return NowPlaying{
		SessionID: s.id,
		SongID:    songID,
		Index:     s.queue.Index(),
		QueueLen:  s.queue.Len(),
		Mode:      s.mode,
		State:     s.stateLocked(),
		Progress:  s.progress,
		Elapsed:   scale(d, s.progress),
		Duration:  d,
	}
}

func (s *Session) stateLocked() State {
	switch {
	case s.queue.IsEmpty():
		return StateStopped
	case s.playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// Queue returns a copy of the queued song ids.
func (s *Session) Queue() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.IDs()
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Play starts playback. Index and progress are untouched.
func (s *Session) Play() {
	s.setPlaying(true)
}

// Pause stops playback. Index and progress are untouched.
func (s *Session) Pause() {
	s.setPlaying(false)
}

// Toggle flips between playing and paused.
func (s *Session) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPlayingLocked(!s.playing)
}

func (s *Session) setPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPlayingLocked(playing)
}

func (s *Session) setPlayingLocked(playing bool) {
	if s.events.closed || s.queue.IsEmpty() || s.playing == playing {
		return
	}
	prev := s.stateLocked()
	s.playing = playing
	s.events.state(StateChange{Previous: prev, Current: s.stateLocked()})
}

// Tick advances progress by delta (a fraction of the track). Reaching 1.0
// completes the track: progress resets and the queue advances per mode.
// Ticks are ignored while paused. Returns true when a track completed.
func (s *Session) Tick(delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed || s.queue.IsEmpty() || !s.playing || !(delta > 0) {
		return false
	}

	s.progress += delta
	if s.progress < 1.0 {
		s.emitProgressLocked()
		return false
	}

	prev := s.queue.Index()
	switch s.mode {
	case ModeSingleLoop:
		// Same track restarts.
	case ModeRandom:
		s.queue.JumpTo(s.randomIndexLocked())
	default:
		s.queue.Step(1)
	}
	s.restartLocked(prev, ReasonCompleted)
	return true
}

// Next moves forward: Sequential steps +1 with wraparound, SingleLoop
// restarts the current track, Random draws a different track.
func (s *Session) Next() {
	s.navigate(1, ReasonNext)
}

// Previous is Next in the other direction. Under Random it is identical to Next.
func (s *Session) Previous() {
	s.navigate(-1, ReasonPrevious)
}

func (s *Session) navigate(delta int, reason Reason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed || s.queue.IsEmpty() {
		return
	}

	prev := s.queue.Index()
	switch s.mode {
	case ModeSingleLoop:
	case ModeRandom:
		s.queue.JumpTo(s.randomIndexLocked())
	default:
		s.queue.Step(delta)
	}
	s.restartLocked(prev, reason)
}

// randomIndexLocked picks uniformly among the other entries, or the current
// one when the queue has a single song.
func (s *Session) randomIndexLocked() int {
	n := s.queue.Len()
	cur := s.queue.Index()
	if n <= 1 {
		return cur
	}
	i := s.rng.IntN(n - 1)
	if i >= cur {
		i++
	}
	return i
}

func (s *Session) restartLocked(prevIndex int, reason Reason) {
	prevID, _ := s.queue.At(prevIndex)
	curID, _ := s.queue.Current()
	s.progress = 0
	s.events.track(TrackChange{
		PreviousSongID: prevID,
		SongID:         curID,
		PreviousIndex:  prevIndex,
		Index:          s.queue.Index(),
		Reason:         reason,
	})
}

// CycleMode advances Sequential -> SingleLoop -> Random -> Sequential and
// returns the new mode.
func (s *Session) CycleMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(s.mode.Next())
	return s.mode
}

// SetMode selects a mode directly. Unknown values are ignored.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !m.valid() {
		return
	}
	s.setModeLocked(m)
}

func (s *Session) setModeLocked(m Mode) {
	if s.events.closed || m == s.mode {
		return
	}
	prev := s.mode
	s.mode = m
	s.events.mode(ModeChange{Previous: prev, Current: m})
}

// Seek sets progress to fraction (clamped to [0,1], NaN counts as 0) and
// returns the corresponding position in the current track.
func (s *Session) Seek(fraction float64) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed || s.queue.IsEmpty() {
		return 0
	}
	if math.IsNaN(fraction) {
		fraction = 0
	}
	s.progress = max(0, min(fraction, 1))
	return s.emitProgressLocked()
}

func (s *Session) emitProgressLocked() time.Duration {
	songID, _ := s.queue.Current()
	elapsed := scale(s.duration(songID), s.progress)
	s.events.progress(ProgressChange{Progress: s.progress, Elapsed: elapsed})
	return elapsed
}

// SetQueue replaces the queue and moves to start (clamped), resetting
// progress. The playing flag is kept unless the new queue is empty.
func (s *Session) SetQueue(songIDs []string, start int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed {
		return
	}

	prevState := s.stateLocked()
	prevIndex := s.queue.Index()
	prevID, _ := s.queue.Current()

	s.queue.Replace(songIDs, start)
	s.progress = 0
	if s.queue.IsEmpty() {
		s.playing = false
	}

	s.events.queue(QueueChange{SongIDs: s.queue.IDs(), Index: s.queue.Index()})
	if cur, ok := s.queue.Current(); ok {
		s.events.track(TrackChange{
			PreviousSongID: prevID,
			SongID:         cur,
			PreviousIndex:  prevIndex,
			Index:          s.queue.Index(),
			Reason:         ReasonQueue,
		})
	}
	if st := s.stateLocked(); st != prevState {
		s.events.state(StateChange{Previous: prevState, Current: st})
	}
}

// Append adds songs to the end of the queue. Starting from an empty queue,
// the first appended song becomes current.
func (s *Session) Append(songIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed || len(songIDs) == 0 {
		return
	}
	wasEmpty := s.queue.IsEmpty()
	s.queue.Add(songIDs...)
	s.events.queue(QueueChange{SongIDs: s.queue.IDs(), Index: s.queue.Index()})
	if wasEmpty {
		s.progress = 0
		s.events.track(TrackChange{PreviousIndex: -1, SongID: songIDs[0], Index: 0, Reason: ReasonQueue})
		s.events.state(StateChange{Previous: StateStopped, Current: StatePaused})
	}
}

// Remove drops the first occurrence of songID from the queue. Removing the
// current song moves to the entry that took its place and restarts it.
// Returns false when the song is not queued.
func (s *Session) Remove(songID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed {
		return false
	}
	i := s.queue.IndexOf(songID)
	if i < 0 {
		return false
	}

	prevState := s.stateLocked()
	prevIndex := s.queue.Index()
	s.queue.RemoveAt(i)
	if s.queue.IsEmpty() {
		s.playing = false
	}

	s.events.queue(QueueChange{SongIDs: s.queue.IDs(), Index: s.queue.Index()})
	if i == prevIndex {
		s.progress = 0
		if cur, ok := s.queue.Current(); ok {
			s.events.track(TrackChange{
				PreviousSongID: songID,
				SongID:         cur,
				PreviousIndex:  prevIndex,
				Index:          s.queue.Index(),
				Reason:         ReasonQueue,
			})
		}
	}
	if st := s.stateLocked(); st != prevState {
		s.events.state(StateChange{Previous: prevState, Current: st})
	}
	return true
}

// JumpTo selects the queue entry at index and restarts it from zero.
func (s *Session) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events.closed || s.queue.IsEmpty() {
		return ErrEmptyQueue
	}
	prev := s.queue.Index()
	if _, ok := s.queue.JumpTo(index); !ok {
		return ErrIndexOutOfRange
	}
	s.restartLocked(prev, ReasonJump)
	return nil
}

// Subscribe creates a new event subscription. Subscribing to a closed
// session yields a subscription whose Done channel is already closed.
func (s *Session) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.subscribe()
}

// Close ends every subscription. Later transitions are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events.shutdown() {
		s.playing = false
	}
}

func scale(d time.Duration, fraction float64) time.Duration {
	return time.Duration(float64(d) * fraction)
}
