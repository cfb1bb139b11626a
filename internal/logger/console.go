package logger

import (
	"io"
	"sync"
	"sync/atomic"
)

// Console is a console sink that can be silenced while a full-screen view
// owns the terminal. Entries written while muted are discarded; file cores
// are unaffected.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	muted atomic.Bool
}

// NewConsole wraps w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Write(p []byte) (int, error) {
	if c.muted.Load() {
		return len(p), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

// Mute silences the console until the returned function is called, which
// restores the previous state.
func (c *Console) Mute() (restore func()) {
	prev := c.muted.Swap(true)
	return func() { c.muted.Store(prev) }
}
