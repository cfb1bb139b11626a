package playlists

import "context"

// ChangeKind identifies an applied playlist mutation.
type ChangeKind int

const (
	ChangeCreated ChangeKind = iota
	ChangeDeleted
	ChangeSongAdded
	ChangeSongRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "Created"
	case ChangeDeleted:
		return "Deleted"
	case ChangeSongAdded:
		return "SongAdded"
	case ChangeSongRemoved:
		return "SongRemoved"
	default:
		return "Unknown"
	}
}

// Change describes a persisted mutation. Playlist is the state after the
// change (before it, for ChangeDeleted).
type Change struct {
	Kind     ChangeKind
	Playlist Playlist
	SongID   string
}

// Observer is notified after each persisted playlist mutation, on the
// goroutine that made it and in the order the writes happened. Observers
// must not call back into the store.
type Observer interface {
	PlaylistChanged(Change)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Change)

func (f ObserverFunc) PlaylistChanged(c Change) { f(c) }

// NoOpObserver ignores every change.
type NoOpObserver struct{}

func (NoOpObserver) PlaylistChanged(Change) {}

// Subscribe registers o and returns a function that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

// Follow hands the current state of playlist id to start and registers the
// observer it returns, with no write in between: every later change to the
// store reaches the observer, and none that start already saw does.
// ok is false, and start is not called, when the playlist does not exist.
func (s *Store) Follow(ctx context.Context, id string, start func(Playlist) Observer) (unsubscribe func(), ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pls := s.loadLocked(ctx)
	i := indexOf(pls, id)
	if i < 0 {
		return nil, false
	}
	return s.Subscribe(start(pls[i].clone())), true
}

func (s *Store) observerList() []Observer {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	return observers
}
