package playback

import "sync/atomic"

const eventBufferSize = 16

// Subscription delivers session events on buffered channels. A slow reader
// never stalls the session: events that find a full buffer are discarded and
// counted in Dropped.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	ProgressChanged <-chan ProgressChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	Done            <-chan struct{}

	state    chan StateChange
	track    chan TrackChange
	progress chan ProgressChange
	queue    chan QueueChange
	mode     chan ModeChange
	done     chan struct{}

	dropped atomic.Int64
}

func newSubscription() *Subscription {
	s := &Subscription{done: make(chan struct{})}
	s.StateChanged = buffered(&s.state)
	s.TrackChanged = buffered(&s.track)
	s.ProgressChanged = buffered(&s.progress)
	s.QueueChanged = buffered(&s.queue)
	s.ModeChanged = buffered(&s.mode)
	s.Done = s.done
	return s
}

func buffered[T any](ch *chan T) <-chan T {
	*ch = make(chan T, eventBufferSize)
	return *ch
}

// Dropped reports how many events were discarded for this subscriber.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

func (s *Subscription) close() {
	close(s.done)
}

func offer[T any](s *Subscription, ch chan T, v T) {
	select {
	case ch <- v:
	default:
		s.dropped.Add(1)
	}
}

// hub fans events out to the live subscriptions of one session.
// The owning session's mutex guards it.
type hub struct {
	subs   []*Subscription
	closed bool
}

func (h *hub) subscribe() *Subscription {
	sub := newSubscription()
	if h.closed {
		sub.close()
		return sub
	}
	h.subs = append(h.subs, sub)
	return sub
}

// shutdown closes every subscription once. It reports false if the hub
// was already shut down.
func (h *hub) shutdown() bool {
	if h.closed {
		return false
	}
	h.closed = true
	for _, sub := range h.subs {
		sub.close()
	}
	h.subs = nil
	return true
}

func (h *hub) state(e StateChange) {
	for _, sub := range h.subs {
		offer(sub, sub.state, e)
	}
}

func (h *hub) track(e TrackChange) {
	for _, sub := range h.subs {
		offer(sub, sub.track, e)
	}
}

func (h *hub) progress(e ProgressChange) {
	for _, sub := range h.subs {
		offer(sub, sub.progress, e)
	}
}

func (h *hub) queue(e QueueChange) {
	for _, sub := range h.subs {
		offer(sub, sub.queue, e)
	}
}

func (h *hub) mode(e ModeChange) {
	for _, sub := range h.subs {
		offer(sub, sub.mode, e)
	}
}
