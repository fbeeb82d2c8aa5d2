package sat

import "testing"

func TestQueuePushWithResizeAndRotation(t *testing.T) {
	q := &queue[int]{
		ring:  []int{3, 4, 1, 2},
		start: 2,
		end:   2,
		size:  4,
		mask:  0b11,
	}

	q.Push(5)

	if q.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", q.Size())
	}
	got := make([]int, 0, 5)
	for !q.IsEmpty() {
		got = append(got, q.Pop())
	}
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestQueuePushPopFIFO(t *testing.T) {
	q := newQueue[int](1)
	for _, v := range []int{1, 2, 3, 4} {
		q.Push(v)
	}
	if q.String() != "queue[1 2 3 4]" {
		t.Errorf("String() = %q", q.String())
	}
	if got := q.Pop(); got != 1 {
		t.Errorf("Pop() = %d, want 1", got)
	}
	if got := q.Pop(); got != 2 {
		t.Errorf("Pop() = %d, want 2", got)
	}
	if q.String() != "queue[3 4]" {
		t.Errorf("String() = %q", q.String())
	}
	q.Clear()
	if !q.IsEmpty() {
		t.Errorf("IsEmpty() = false after Clear()")
	}
}
