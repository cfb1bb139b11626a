package playback

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"
)

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func newTestSession(ids ...string) *Session {
	return NewSession(ids, seeded(1))
}

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession("S1", "S2", "S3")

	np := s.NowPlaying()
	if np.Index != 0 || np.SongID != "S1" {
		t.Errorf("initial track = %d/%q, want 0/S1", np.Index, np.SongID)
	}
	if np.Mode != ModeSequential {
		t.Errorf("Mode = %v, want Sequential", np.Mode)
	}
	if np.Progress != 0 {
		t.Errorf("Progress = %v, want 0", np.Progress)
	}
	if np.Playing() {
		t.Error("new session should not be playing")
	}
	if np.State != StatePaused {
		t.Errorf("State = %v, want Paused", np.State)
	}
	if s.ID() == "" || np.SessionID != s.ID() {
		t.Errorf("SessionID = %q, ID() = %q", np.SessionID, s.ID())
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	a := newTestSession("S1")
	b := newTestSession("S1")
	if a.ID() == b.ID() {
		t.Error("two sessions share an id")
	}
}

func TestPlayPause_KeepsIndexAndProgress(t *testing.T) {
	s := newTestSession("S1", "S2")
	s.Play()
	s.Tick(0.4)

	s.Pause()
	np := s.NowPlaying()
	if np.Playing() || np.Index != 0 || np.Progress != 0.4 {
		t.Errorf("after Pause: %+v", np)
	}

	s.Toggle()
	if !s.NowPlaying().Playing() {
		t.Error("Toggle should resume playback")
	}
}

func TestTick_AccumulatesProgress(t *testing.T) {
	s := newTestSession("S1", "S2")
	s.Play()

	if s.Tick(0.25) {
		t.Error("Tick(0.25) reported completion")
	}
	s.Tick(0.25)

	if got := s.NowPlaying().Progress; got != 0.5 {
		t.Errorf("Progress = %v, want 0.5", got)
	}
}

func TestTick_IgnoredWhilePaused(t *testing.T) {
	s := newTestSession("S1", "S2")

	s.Tick(1.0)

	np := s.NowPlaying()
	if np.Index != 0 || np.Progress != 0 {
		t.Errorf("paused Tick changed state: %+v", np)
	}
}

func TestTick_IgnoresNaN(t *testing.T) {
	s := newTestSession("S1", "S2")
	s.Play()
	s.Tick(0.25)

	if s.Tick(math.NaN()) {
		t.Error("Tick(NaN) reported completion")
	}
	if np := s.NowPlaying(); np.Index != 0 || np.Progress != 0.25 {
		t.Errorf("Tick(NaN) changed state: %+v", np)
	}
}

func TestTick_CompletionPerMode(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		start     int
		wantIndex int
	}{
		{name: "sequential advances", mode: ModeSequential, start: 0, wantIndex: 1},
		{name: "sequential wraps", mode: ModeSequential, start: 2, wantIndex: 0},
		{name: "single loop repeats", mode: ModeSingleLoop, start: 1, wantIndex: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession("S1", "S2", "S3")
			s.SetQueue([]string{"S1", "S2", "S3"}, tt.start)
			s.SetMode(tt.mode)
			s.Play()

			if !s.Tick(1.0) {
				t.Fatal("Tick(1.0) should complete the track")
			}

			np := s.NowPlaying()
			if np.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", np.Index, tt.wantIndex)
			}
			if np.Progress != 0 {
				t.Errorf("Progress = %v, want 0", np.Progress)
			}
			if !np.Playing() {
				t.Error("completion should keep playing")
			}
		})
	}
}

func TestTick_RandomNeverRepeats(t *testing.T) {
	for _, n := range []int{2, 3, 7} {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('A' + i))
		}
		s := NewSession(ids, seeded(uint64(n)))
		s.SetMode(ModeRandom)
		s.Play()

		prev := s.NowPlaying().Index
		for range 500 {
			s.Tick(1.0)
			np := s.NowPlaying()
			if np.Index == prev {
				t.Fatalf("n=%d: Random repeated index %d", n, prev)
			}
			if np.Index < 0 || np.Index >= n {
				t.Fatalf("n=%d: index %d out of range", n, np.Index)
			}
			if np.Progress != 0 {
				t.Fatalf("n=%d: progress %v after completion", n, np.Progress)
			}
			prev = np.Index
		}
	}
}

func TestRandom_CoversOtherTracks(t *testing.T) {
	s := NewSession([]string{"A", "B", "C", "D"}, seeded(7))
	s.SetMode(ModeRandom)

	seen := make(map[int]bool)
	for range 200 {
		s.Next()
		seen[s.NowPlaying().Index] = true
	}
	if len(seen) != 4 {
		t.Errorf("Random visited %d distinct indices, want 4", len(seen))
	}
}

func TestRandom_SingleTrackLoops(t *testing.T) {
	s := newTestSession("S1")
	s.SetMode(ModeRandom)
	s.Play()

	s.Tick(1.0)
	s.Next()

	np := s.NowPlaying()
	if np.Index != 0 || np.Progress != 0 {
		t.Errorf("single-track Random: %+v", np)
	}
}

func TestNext_SequentialWraparound(t *testing.T) {
	s := newTestSession("S1", "S2", "S3")
	if err := s.JumpTo(2); err != nil {
		t.Fatal(err)
	}

	s.Next()

	if got := s.NowPlaying().Index; got != 0 {
		t.Errorf("Index = %d, want 0", got)
	}
}

func TestPrevious_SequentialWraparound(t *testing.T) {
	s := newTestSession("S1", "S2", "S3")

	s.Previous()

	if got := s.NowPlaying().Index; got != 2 {
		t.Errorf("Index = %d, want 2", got)
	}
}

func TestNavigation_ResetsProgressAndKeepsPlaying(t *testing.T) {
	ops := map[string]func(*Session){
		"next":     (*Session).Next,
		"previous": (*Session).Previous,
	}

	for _, mode := range []Mode{ModeSequential, ModeSingleLoop, ModeRandom} {
		for name, op := range ops {
			t.Run(mode.String()+"/"+name, func(t *testing.T) {
				s := newTestSession("S1", "S2", "S3")
				s.SetMode(mode)
				s.Play()
				s.Tick(0.6)

				op(s)

				np := s.NowPlaying()
				if np.Progress != 0 {
					t.Errorf("Progress = %v, want 0", np.Progress)
				}
				if !np.Playing() {
					t.Error("navigation should keep playing")
				}
			})
		}
	}
}

func TestNavigation_PausedStaysPaused(t *testing.T) {
	s := newTestSession("S1", "S2")

	s.Next()

	if s.NowPlaying().Playing() {
		t.Error("Next on a paused session should not start playback")
	}
}

func TestSingleLoop_NextKeepsTrack(t *testing.T) {
	s := newTestSession("S1", "S2", "S3")
	s.SetMode(ModeSingleLoop)
	_ = s.JumpTo(1)

	s.Next()
	s.Previous()

	if got := s.NowPlaying().Index; got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}
}

func TestCycleMode_Closure(t *testing.T) {
	for _, start := range []Mode{ModeSequential, ModeSingleLoop, ModeRandom} {
		s := newTestSession("S1", "S2")
		s.SetMode(start)
		_ = s.JumpTo(1)
		s.Play()
		s.Tick(0.3)

		for range 3 {
			s.CycleMode()
		}

		np := s.NowPlaying()
		if np.Mode != start {
			t.Errorf("after 3 cycles from %v: %v", start, np.Mode)
		}
		if np.Index != 1 || np.Progress != 0.3 {
			t.Errorf("CycleMode changed index/progress: %+v", np)
		}
	}
}

func TestSetMode_IgnoresUnknown(t *testing.T) {
	s := newTestSession("S1")
	s.SetMode(Mode(42))
	if s.Mode() != ModeSequential {
		t.Errorf("Mode = %v, want Sequential", s.Mode())
	}
}

func TestSeek(t *testing.T) {
	durations := func(string) time.Duration { return 200 * time.Second }

	tests := []struct {
		fraction     float64
		wantProgress float64
		wantElapsed  time.Duration
	}{
		{fraction: 0.5, wantProgress: 0.5, wantElapsed: 100 * time.Second},
		{fraction: -1, wantProgress: 0, wantElapsed: 0},
		{fraction: 3, wantProgress: 1, wantElapsed: 200 * time.Second},
		{fraction: math.NaN(), wantProgress: 0, wantElapsed: 0},
	}

	for _, tt := range tests {
		s := NewSession([]string{"S1", "S2"}, WithDurations(durations))
		_ = s.JumpTo(1)

		got := s.Seek(tt.fraction)

		np := s.NowPlaying()
		if got != tt.wantElapsed {
			t.Errorf("Seek(%v) = %v, want %v", tt.fraction, got, tt.wantElapsed)
		}
		if np.Progress != tt.wantProgress {
			t.Errorf("Seek(%v) progress = %v, want %v", tt.fraction, np.Progress, tt.wantProgress)
		}
		if np.Index != 1 || np.Playing() {
			t.Errorf("Seek changed index or playing: %+v", np)
		}
		if np.Duration != 200*time.Second {
			t.Errorf("Duration = %v, want 200s", np.Duration)
		}
	}
}

func TestSetQueue(t *testing.T) {
	s := newTestSession("S1", "S2")
	s.Play()
	s.Tick(0.5)

	s.SetQueue([]string{"X", "Y", "Z"}, 5)

	np := s.NowPlaying()
	if np.Index != 2 || np.SongID != "Z" {
		t.Errorf("after SetQueue: index %d song %q, want 2/Z", np.Index, np.SongID)
	}
	if np.Progress != 0 {
		t.Errorf("Progress = %v, want 0", np.Progress)
	}
	if !slices.Equal(s.Queue(), []string{"X", "Y", "Z"}) {
		t.Errorf("Queue() = %v", s.Queue())
	}
	if !np.Playing() {
		t.Error("SetQueue should keep the playing flag")
	}
}

func TestSetQueue_EmptyStops(t *testing.T) {
	s := newTestSession("S1")
	s.Play()

	s.SetQueue(nil, 0)

	np := s.NowPlaying()
	if np.State != StateStopped || np.Index != -1 {
		t.Errorf("empty queue: %+v", np)
	}
}

func TestEmptyQueue_TransitionsAreNoOps(t *testing.T) {
	s := newTestSession()

	s.Play()
	s.Toggle()
	s.Next()
	s.Previous()
	completed := s.Tick(1.0)
	elapsed := s.Seek(0.5)
	err := s.JumpTo(0)

	np := s.NowPlaying()
	if completed || elapsed != 0 {
		t.Errorf("Tick/Seek on empty queue: %v %v", completed, elapsed)
	}
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("JumpTo error = %v, want ErrEmptyQueue", err)
	}
	if np.State != StateStopped || np.Index != -1 || np.Progress != 0 {
		t.Errorf("empty session state = %+v", np)
	}

	// Mode cycling has no queue dependency.
	if s.CycleMode() != ModeSingleLoop {
		t.Error("CycleMode should work on an empty session")
	}
}

func TestJumpTo(t *testing.T) {
	s := newTestSession("S1", "S2", "S3")
	s.Play()
	s.Tick(0.5)

	if err := s.JumpTo(2); err != nil {
		t.Fatalf("JumpTo(2): %v", err)
	}
	np := s.NowPlaying()
	if np.Index != 2 || np.Progress != 0 {
		t.Errorf("after JumpTo: %+v", np)
	}

	if err := s.JumpTo(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("JumpTo(3) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	s := newTestSession("S1", "S2")
	sub := s.Subscribe()

	s.Play()
	s.Next()
	s.CycleMode()
	s.Seek(0.5)

	if e := <-sub.StateChanged; e.Previous != StatePaused || e.Current != StatePlaying {
		t.Errorf("StateChanged = %+v", e)
	}
	tr := <-sub.TrackChanged
	if tr.PreviousSongID != "S1" || tr.SongID != "S2" || tr.Reason != ReasonNext {
		t.Errorf("TrackChanged = %+v", tr)
	}
	if m := <-sub.ModeChanged; m.Current != ModeSingleLoop {
		t.Errorf("ModeChanged = %+v", m)
	}
	if p := <-sub.ProgressChanged; p.Progress != 0.5 {
		t.Errorf("ProgressChanged = %+v", p)
	}
}

func TestSubscribe_CompletionEvent(t *testing.T) {
	s := newTestSession("S1", "S2")
	sub := s.Subscribe()
	s.Play()

	s.Tick(1.0)

	tr := <-sub.TrackChanged
	if tr.Reason != ReasonCompleted || tr.Index != 1 {
		t.Errorf("TrackChanged = %+v", tr)
	}
}

func TestClose_EndsSubscriptions(t *testing.T) {
	s := newTestSession("S1", "S2")
	sub := s.Subscribe()

	s.Close()
	<-sub.Done

	s.Next()
	if got := s.NowPlaying().Index; got != 0 {
		t.Errorf("Next after Close moved to %d", got)
	}

	late := s.Subscribe()
	<-late.Done
	s.Close()
}

func TestSession_ConcurrentTickAndNavigation(t *testing.T) {
	s := newTestSession("S1", "S2", "S3", "S4")
	s.SetMode(ModeRandom)
	s.Play()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 1000 {
			s.Tick(0.3)
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			s.Next()
		}
	}()
	wg.Wait()

	np := s.NowPlaying()
	if np.Index < 0 || np.Index >= 4 {
		t.Errorf("index %d out of range", np.Index)
	}
	if np.Progress < 0 || np.Progress >= 1 {
		t.Errorf("progress %v out of range", np.Progress)
	}
}

func TestAppend(t *testing.T) {
	s := newTestSession()

	s.Append("S1", "S2")

	np := s.NowPlaying()
	if np.Index != 0 || np.SongID != "S1" || np.State != StatePaused {
		t.Errorf("after Append on empty session: %+v", np)
	}

	_ = s.JumpTo(1)
	s.Append("S3")
	if got := s.NowPlaying(); got.Index != 1 || got.QueueLen != 3 {
		t.Errorf("Append moved the cursor: %+v", got)
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		remove     string
		wantIndex  int
		wantSong   string
		wantResets bool
	}{
		{name: "before current", current: 2, remove: "S1", wantIndex: 1, wantSong: "S3"},
		{name: "after current", current: 0, remove: "S3", wantIndex: 0, wantSong: "S1"},
		{name: "current", current: 1, remove: "S2", wantIndex: 1, wantSong: "S3", wantResets: true},
		{name: "current last", current: 2, remove: "S3", wantIndex: 1, wantSong: "S2", wantResets: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession("S1", "S2", "S3")
			_ = s.JumpTo(tt.current)
			s.Play()
			s.Tick(0.5)

			if !s.Remove(tt.remove) {
				t.Fatal("Remove() = false")
			}

			np := s.NowPlaying()
			if np.Index != tt.wantIndex || np.SongID != tt.wantSong {
				t.Errorf("after Remove: index %d song %q, want %d %q", np.Index, np.SongID, tt.wantIndex, tt.wantSong)
			}
			wantProgress := 0.5
			if tt.wantResets {
				wantProgress = 0
			}
			if np.Progress != wantProgress {
				t.Errorf("Progress = %v, want %v", np.Progress, wantProgress)
			}
			if !np.Playing() {
				t.Error("Remove should keep playing")
			}
		})
	}
}

func TestRemove_LastSongStops(t *testing.T) {
	s := newTestSession("S1")
	s.Play()

	if !s.Remove("S1") {
		t.Fatal("Remove() = false")
	}
	if s.Remove("S1") {
		t.Error("second Remove() should report false")
	}

	np := s.NowPlaying()
	if np.State != StateStopped || np.Index != -1 {
		t.Errorf("after removing the last song: %+v", np)
	}
}
