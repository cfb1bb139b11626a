package queue

import (
	"slices"
	"testing"
)

func TestNew_Empty(t *testing.T) {
	q := New(nil, 0)

	if !q.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
	if q.Index() != -1 {
		t.Errorf("Index() = %d, want -1", q.Index())
	}
	if _, ok := q.Current(); ok {
		t.Error("Current() should report false for an empty queue")
	}
}

func TestNew_ClampsStart(t *testing.T) {
	tests := []struct {
		start int
		want  int
	}{
		{start: -3, want: 0},
		{start: 0, want: 0},
		{start: 2, want: 2},
		{start: 9, want: 2},
	}

	for _, tt := range tests {
		q := New([]string{"a", "b", "c"}, tt.start)
		if q.Index() != tt.want {
			t.Errorf("New(start=%d).Index() = %d, want %d", tt.start, q.Index(), tt.want)
		}
	}
}

func TestNew_CopiesInput(t *testing.T) {
	ids := []string{"a", "b"}
	q := New(ids, 0)

	ids[0] = "mutated"

	if got, _ := q.Current(); got != "a" {
		t.Errorf("Current() = %q, want a", got)
	}
}

func TestStep_WrapsForward(t *testing.T) {
	q := New([]string{"a", "b", "c"}, 2)

	id, ok := q.Step(1)

	if !ok || id != "a" || q.Index() != 0 {
		t.Errorf("Step(1) = (%q, %v) index %d, want (a, true) index 0", id, ok, q.Index())
	}
}

func TestStep_WrapsBackward(t *testing.T) {
	q := New([]string{"a", "b", "c"}, 0)

	id, ok := q.Step(-1)

	if !ok || id != "c" || q.Index() != 2 {
		t.Errorf("Step(-1) = (%q, %v) index %d, want (c, true) index 2", id, ok, q.Index())
	}
}

func TestStep_Empty(t *testing.T) {
	q := New(nil, 0)

	if _, ok := q.Step(1); ok {
		t.Error("Step on empty queue should report false")
	}
	if q.Index() != -1 {
		t.Errorf("Index() = %d, want -1", q.Index())
	}
}

func TestJumpTo(t *testing.T) {
	q := New([]string{"a", "b", "c"}, 0)

	if id, ok := q.JumpTo(1); !ok || id != "b" {
		t.Errorf("JumpTo(1) = (%q, %v), want (b, true)", id, ok)
	}
	if _, ok := q.JumpTo(3); ok {
		t.Error("JumpTo(3) should fail")
	}
	if q.Index() != 1 {
		t.Errorf("Index() = %d after invalid jump, want 1", q.Index())
	}
}

func TestReplace(t *testing.T) {
	q := New([]string{"a", "b"}, 1)

	id, ok := q.Replace([]string{"x", "y", "z"}, 2)

	if !ok || id != "z" {
		t.Errorf("Replace() = (%q, %v), want (z, true)", id, ok)
	}
	if !slices.Equal(q.IDs(), []string{"x", "y", "z"}) {
		t.Errorf("IDs() = %v", q.IDs())
	}

	if _, ok := q.Replace(nil, 0); ok {
		t.Error("Replace with no ids should report false")
	}
	if q.Index() != -1 {
		t.Errorf("Index() = %d, want -1", q.Index())
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		remove    int
		wantIndex int
		wantIDs   []string
	}{
		{name: "before current", start: 2, remove: 0, wantIndex: 1, wantIDs: []string{"b", "c"}},
		{name: "after current", start: 0, remove: 2, wantIndex: 0, wantIDs: []string{"a", "b"}},
		{name: "current in middle", start: 1, remove: 1, wantIndex: 1, wantIDs: []string{"a", "c"}},
		{name: "current at end", start: 2, remove: 2, wantIndex: 1, wantIDs: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New([]string{"a", "b", "c"}, tt.start)

			if !q.RemoveAt(tt.remove) {
				t.Fatal("RemoveAt() = false, want true")
			}
			if q.Index() != tt.wantIndex {
				t.Errorf("Index() = %d, want %d", q.Index(), tt.wantIndex)
			}
			if !slices.Equal(q.IDs(), tt.wantIDs) {
				t.Errorf("IDs() = %v, want %v", q.IDs(), tt.wantIDs)
			}
		})
	}
}

func TestRemoveAt_LastEntry(t *testing.T) {
	q := New([]string{"a"}, 0)

	q.RemoveAt(0)

	if q.Index() != -1 || !q.IsEmpty() {
		t.Errorf("Index() = %d, IsEmpty() = %v; want -1, true", q.Index(), q.IsEmpty())
	}
	if q.RemoveAt(0) {
		t.Error("RemoveAt on empty queue should fail")
	}
}

func TestIndexOfAndAt(t *testing.T) {
	q := New([]string{"a", "b"}, 0)

	if q.IndexOf("b") != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", q.IndexOf("b"))
	}
	if q.IndexOf("z") != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", q.IndexOf("z"))
	}
	if id, ok := q.At(1); !ok || id != "b" {
		t.Errorf("At(1) = (%q, %v)", id, ok)
	}
	if _, ok := q.At(-1); ok {
		t.Error("At(-1) should fail")
	}
}

func TestAdd(t *testing.T) {
	q := New(nil, 0)

	q.Add("a", "b")
	if q.Index() != 0 {
		t.Errorf("Index() = %d after first Add, want 0", q.Index())
	}

	q.JumpTo(1)
	q.Add("c")
	if q.Index() != 1 || q.Len() != 3 {
		t.Errorf("Index() = %d Len() = %d, want 1 and 3", q.Index(), q.Len())
	}
}
