package prioritypool

import (
	"sync"
	"testing"
)

func TestQueueFIFOWithinPriority(t *testing.T) {
	q := NewQueue(nil)

	q.Push(Job{ID: 1, Priority: Normal})
	q.Push(Job{ID: 2, Priority: Normal})

	first, ok := q.Pop([]Priority{Normal})
	if !ok || first.ID != 1 {
		t.Fatalf("first pop = %+v, %v; want ID 1", first, ok)
	}
	second, ok := q.Pop([]Priority{Normal})
	if !ok || second.ID != 2 {
		t.Fatalf("second pop = %+v, %v; want ID 2", second, ok)
	}
}

func TestQueuePopPrefersEarlierPriorityInList(t *testing.T) {
	q := NewQueue(nil)

	q.Push(Job{ID: 1, Priority: Normal})
	q.Push(Job{ID: 2, Priority: High})

	job, ok := q.Pop([]Priority{High, Normal})
	if !ok || job.ID != 2 {
		t.Fatalf("Pop([High, Normal]) = %+v, %v; want the HIGH job even though NORMAL was pushed first", job, ok)
	}
}

func TestQueuePopEmptyReturnsFalse(t *testing.T) {
	q := NewQueue(nil)

	if _, ok := q.Pop([]Priority{High, Normal, Low}); ok {
		t.Fatal("Pop on empty queue returned ok=true")
	}
}

func TestQueueCounts(t *testing.T) {
	q := NewQueue(nil)
	q.Push(Job{ID: 1, Priority: High})
	q.Push(Job{ID: 2, Priority: Low})
	q.Push(Job{ID: 3, Priority: Low})

	if got := q.CountAll(); got != 3 {
		t.Fatalf("CountAll() = %d; want 3", got)
	}
	if got := q.Count([]Priority{Low}); got != 2 {
		t.Fatalf("Count([Low]) = %d; want 2", got)
	}
	if got := q.Count([]Priority{Normal}); got != 0 {
		t.Fatalf("Count([Normal]) = %d; want 0", got)
	}
}

func TestQueueWakeupFiresAfterPush(t *testing.T) {
	q := NewQueue(nil)

	woken := make(chan struct{}, 1)
	q.SetWakeup(func() {
		select {
		case woken <- struct{}{}:
		default:
		}
	})

	q.Push(Job{ID: 1, Priority: Normal})

	select {
	case <-woken:
	default:
		t.Fatal("wakeup callback was not invoked after Push")
	}

	job, ok := q.Pop([]Priority{Normal})
	if !ok || job.ID != 1 {
		t.Fatalf("job not visible after wakeup fired: %+v, %v", job, ok)
	}
}

func TestQueueConcurrentPushPop(t *testing.T) {
	q := NewQueue(nil)

	const producers = 8
	const perProducer = 200

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Push(Job{ID: uint64(base*perProducer + j), Priority: Priority(j % 3)})
			}
		}(i)
	}
	wg.Wait()

	if got, want := q.CountAll(), producers*perProducer; got != want {
		t.Fatalf("CountAll() = %d; want %d", got, want)
	}

	drained := 0
	for {
		if _, ok := q.Pop([]Priority{High, Normal, Low}); !ok {
			break
		}
		drained++
	}
	if drained != producers*perProducer {
		t.Fatalf("drained %d jobs; want %d", drained, producers*perProducer)
	}
}
