package sat

import (
	"reflect"
	"testing"
)

func TestQueue_Push_WithResizeAndRotation(t *testing.T) {
	q := &queue[int]{
		ring:  []int{3, 4, 1, 2},
		start: 2,
		end:   2,
		size:  4,
		mask:  0b11,
	}
	want := &queue[int]{
		ring:  []int{1, 2, 3, 4, 5, 0, 0, 0},
		start: 0,
		end:   5,
		size:  5,
		mask:  0b111,
	}

	q.Push(5)

	if !reflect.DeepEqual(want, q) {
		t.Errorf("Mismatch: want %#v, got %#v", want, q)
	}
}

func TestQueue_PushPop(t *testing.T) {
	q := newQueue[int](1)

	for _, x := range []int{1, 2, 3, 4} {
		q.Push(x)
	}
	if got, want := q.Size(), 4; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
	for _, want := range []int{1, 2, 3, 4} {
		if got := q.Pop(); got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if !q.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
}

func TestQueue_Pop_Empty_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Pop() on empty queue: want panic, got none")
		}
	}()
	newQueue[int](1).Pop()
}

func TestQueue_Clear(t *testing.T) {
	q := newQueue[int](1)
	q.Push(1)
	q.Push(2)
	q.Clear()

	if !q.IsEmpty() {
		t.Errorf("IsEmpty() = false after Clear(), want true")
	}
}
