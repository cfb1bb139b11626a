// Package idgen issues unique, lexically time-ordered record identifiers.
package idgen

import (
	"fmt"
	"sync"
	"time"
)

// Kind identifies the record family an id belongs to.
type Kind string

// Record kinds and their id prefixes.
const (
	KindCollection   Kind = "CR"
	KindDownload     Kind = "DR"
	KindFollow       Kind = "AF"
	KindComment      Kind = "CM"
	KindSongDeletion Kind = "SD"
	KindSearch       Kind = "SR"
	KindStyleChange  Kind = "PS"
	KindPlaylist     Kind = "PL"
)

// seqWidth digits are reserved for the same-millisecond counter.
const (
	seqWidth = 4
	seqLimit = 10000
)

// Generator produces ids of the form <kind><13-digit unix ms><4-digit seq>.
// Ids of one kind never repeat and sort in issue order.
type Generator struct {
	mu    sync.Mutex
	now   func() time.Time
	state map[Kind]*cursor
}

type cursor struct {
	ms  int64
	seq int
}

// New creates a generator driven by the wall clock.
func New() *Generator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a generator with a custom clock (used by tests).
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{
		now:   now,
		state: make(map[Kind]*cursor),
	}
}

// Next returns the next id for kind.
func (g *Generator) Next(kind Kind) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	c, ok := g.state[kind]
	if !ok {
		c = &cursor{ms: ms, seq: -1}
		g.state[kind] = c
	}

	// Never go backwards: a clock step back keeps counting on the last ms.
	if ms > c.ms {
		c.ms = ms
		c.seq = 0
	} else {
		c.seq++
		if c.seq >= seqLimit {
			c.ms++
			c.seq = 0
		}
	}

	return fmt.Sprintf("%s%013d%0*d", kind, c.ms, seqWidth, c.seq)
}
