// Package queue holds the ordered song ids loaded into a playback session.
package queue

// Queue is an ordered list of song ids with a cursor.
// The cursor is -1 exactly when the queue is empty and a valid index otherwise.
type Queue struct {
	ids   []string
	index int
}

// New creates a queue positioned at start (clamped into range).
func New(ids []string, start int) *Queue {
	q := &Queue{index: -1}
	q.Replace(ids, start)
	return q
}

// Current returns the song id under the cursor.
func (q *Queue) Current() (string, bool) {
	if q.index < 0 || q.index >= len(q.ids) {
		return "", false
	}
	return q.ids[q.index], true
}

// Index returns the cursor position (-1 if empty).
func (q *Queue) Index() int {
	return q.index
}

func (q *Queue) Len() int {
	return len(q.ids)
}

func (q *Queue) IsEmpty() bool {
	return len(q.ids) == 0
}

// IDs returns a copy of the queued song ids.
func (q *Queue) IDs() []string {
	out := make([]string, len(q.ids))
	copy(out, q.ids)
	return out
}

// At returns the song id at index.
func (q *Queue) At(index int) (string, bool) {
	if index < 0 || index >= len(q.ids) {
		return "", false
	}
	return q.ids[index], true
}

// IndexOf returns the first position of id, or -1.
func (q *Queue) IndexOf(id string) int {
	for i, v := range q.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Step moves the cursor by delta, wrapping around both ends.
// Returns false on an empty queue.
func (q *Queue) Step(delta int) (string, bool) {
	n := len(q.ids)
	if n == 0 {
		return "", false
	}
	q.index = ((q.index+delta)%n + n) % n
	return q.Current()
}

// JumpTo moves the cursor to index.
// Returns false and leaves the cursor alone if index is out of range.
func (q *Queue) JumpTo(index int) (string, bool) {
	if index < 0 || index >= len(q.ids) {
		return "", false
	}
	q.index = index
	return q.Current()
}

// Replace swaps in a new list of ids and moves the cursor to start,
// clamped into range.
func (q *Queue) Replace(ids []string, start int) (string, bool) {
	q.ids = make([]string, len(ids))
	copy(q.ids, ids)

	if len(q.ids) == 0 {
		q.index = -1
		return "", false
	}
	q.index = max(0, min(start, len(q.ids)-1))
	return q.Current()
}

// Add appends ids. The cursor moves to the first entry when the queue was
// empty and is unchanged otherwise.
func (q *Queue) Add(ids ...string) {
	q.ids = append(q.ids, ids...)
	if q.index < 0 && len(q.ids) > 0 {
		q.index = 0
	}
}

// RemoveAt removes the entry at index and keeps the cursor valid.
func (q *Queue) RemoveAt(index int) bool {
	if index < 0 || index >= len(q.ids) {
		return false
	}
	q.ids = append(q.ids[:index], q.ids[index+1:]...)

	switch {
	case len(q.ids) == 0:
		q.index = -1
	case q.index > index:
		q.index--
	case q.index >= len(q.ids):
		// Removed the last entry while it was current.
		q.index = len(q.ids) - 1
	}
	return true
}
