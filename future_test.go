package prioritypool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSubmitResolvesWithResult(t *testing.T) {
	p := newTestPool(t)
	p.AddWorker(NewWorker(Normal))
	p.SetWorkerPriorityCounts()
	defer p.StopPool(false, 0)

	f := Submit(p, 1, Normal, func() (int, error) {
		return 42, nil
	})

	got, err := f.Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v; want nil", err)
	}
	if got != 42 {
		t.Fatalf("Wait() = %d; want 42", got)
	}
}

func TestSubmitPropagatesError(t *testing.T) {
	p := newTestPool(t)
	p.AddWorker(NewWorker(Normal))
	p.SetWorkerPriorityCounts()
	defer p.StopPool(false, 0)

	wantErr := errors.New("boom")
	f := Submit(p, 1, Normal, func() (int, error) {
		return 0, wantErr
	})

	_, err := f.Wait()
	if !errors.Is(err, wantErr) {
		t.Fatalf("Wait() error = %v; want %v", err, wantErr)
	}
}

func TestSubmitRecoversPanicIntoError(t *testing.T) {
	p := newTestPool(t)
	p.AddWorker(NewWorker(Normal))
	p.SetWorkerPriorityCounts()
	defer p.StopPool(false, 0)

	f := Submit(p, 7, Normal, func() (int, error) {
		panic("boom")
	})

	_, err := f.Wait()
	if err == nil {
		t.Fatal("Wait() error = nil; want the panic surfaced as an error")
	}
}

func TestSubmitToTerminatedPoolResolvesImmediately(t *testing.T) {
	p := newTestPool(t)
	p.AddWorker(NewWorker(Normal))
	_ = p.StopPool(false, 0)

	f := Submit(p, 1, Normal, func() (int, error) {
		return 1, nil
	})

	select {
	case <-f.Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("future submitted to a terminated pool never resolved")
	}

	_, err := f.Wait()
	if !errors.Is(err, ErrPoolTerminated) {
		t.Fatalf("Wait() error = %v; want ErrPoolTerminated", err)
	}
}

func TestSubmitNilWorkResolvesWithErrNilWork(t *testing.T) {
	p := newTestPool(t)
	defer p.StopPool(false, 0)

	f := Submit[int](p, 1, Normal, nil)

	_, err := f.Wait()
	if !errors.Is(err, ErrNilWork) {
		t.Fatalf("Wait() error = %v; want ErrNilWork", err)
	}
}

func TestFutureWaitContextTimesOut(t *testing.T) {
	p := newTestPool(t)
	p.AddWorker(NewWorker(Normal))
	p.SetWorkerPriorityCounts()
	defer p.StopPool(true, time.Second)

	block := make(chan struct{})
	f := Submit(p, 1, Normal, func() (int, error) {
		<-block
		return 0, nil
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.WaitContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WaitContext() error = %v; want context.DeadlineExceeded", err)
	}
}
