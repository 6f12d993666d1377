package solver

import "testing"

func TestQueueOrder(t *testing.T) {
	activity := []float64{1.0, 5.0, 3.0, 5.0, 0.5}
	q := newQueue(activity)
	// Highest activity first; ties broken by lower index.
	expected := []int{1, 3, 2, 0, 4}
	for i, want := range expected {
		if got := q.removeMin(); got != want {
			t.Fatalf("pop %d: expected var %d, got %d", i, want, got)
		}
	}
	if !q.empty() {
		t.Error("queue should be empty")
	}
}

func TestQueueDecrease(t *testing.T) {
	activity := []float64{1.0, 2.0, 3.0}
	q := newQueue(activity)
	activity[0] = 10.0
	q.decrease(0)
	if got := q.removeMin(); got != 0 {
		t.Fatalf("expected var 0 after bump, got %d", got)
	}
}

func TestQueueBuild(t *testing.T) {
	activity := []float64{1.0, 2.0, 3.0, 4.0}
	q := newQueue(activity)
	q.removeMin()
	q.removeMin()
	q.build([]int{0, 1, 2, 3})
	for _, want := range []int{3, 2, 1, 0} {
		if got := q.removeMin(); got != want {
			t.Fatalf("expected var %d, got %d", want, got)
		}
	}
}
