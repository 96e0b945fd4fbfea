package containers

import (
	"errors"
	"slices"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Dequeue() on empty queue error = %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue() on full queue error = %v", err)
	}
	if v, _ := rq.Peek(); v != 1 {
		t.Errorf("Peek() = %d, want 1", v)
	}

	v, err := rq.Dequeue()
	if err != nil || v != 1 {
		t.Fatalf("Dequeue() = %d, %v", v, err)
	}
	// Wrap the write index around.
	if err := rq.Enqueue(4); err != nil {
		t.Fatal(err)
	}
	if got := rq.Items(); !slices.Equal(got, []int{2, 3, 4}) {
		t.Errorf("Items() = %v, want [2 3 4]", got)
	}
}

func TestRingQueuePush(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		pushes []string
		want   []string
	}{
		{"under capacity", 3, []string{"a", "b"}, []string{"a", "b"}},
		{"drops oldest", 2, []string{"a", "b", "c", "d"}, []string{"c", "d"}},
		{"zero capacity", 0, []string{"a"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := NewRingQueue[string](tt.size)
			for _, p := range tt.pushes {
				rq.Push(p)
			}
			if got := rq.Items(); !slices.Equal(got, tt.want) {
				t.Errorf("Items() = %v, want %v", got, tt.want)
			}
			if rq.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", rq.Len(), len(tt.want))
			}
		})
	}
}
