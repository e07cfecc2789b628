package qalam

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestClampWorkers(t *testing.T) {
	for _, c := range []struct{ in, out int }{
		{0, 4}, {-3, 4}, {1, 1}, {7, 7}, {10, 10}, {11, 10}, {100, 10},
	} {
		if n := ClampWorkers(c.in); n != c.out {
			t.Errorf("ClampWorkers(%d) = %d, expected %d", c.in, n, c.out)
		}
	}
}

func TestPoolRunsTasks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	wp := NewWorkerPool(0)
	defer wp.Close()
	if wp.Size() != DefaultWorkers {
		t.Errorf("expected default pool size %d, have %d", DefaultWorkers, wp.Size())
	}
	var cnt int32
	var dones []<-chan error
	for i := 0; i < 20; i++ {
		dones = append(dones, wp.Submit(func() error {
			atomic.AddInt32(&cnt, 1)
			return nil
		}))
	}
	for _, d := range dones {
		if err := <-d; err != nil {
			t.Error(err)
		}
	}
	if cnt != 20 {
		t.Errorf("expected 20 tasks to have run, have %d", cnt)
	}
}

func TestPoolIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	wp := NewWorkerPool(2)
	defer wp.Close()
	var active, maxActive int32
	for i := 0; i < 8; i++ {
		wp.Submit(func() error {
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil
		})
	}
	wp.Wait()
	if maxActive > 2 {
		t.Errorf("expected at most 2 concurrent tasks, have seen %d", maxActive)
	}
}

func TestPoolDeliversErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	wp := NewWorkerPool(1)
	boom := errors.New("boom")
	if err := <-wp.Submit(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected task error to be delivered, have %v", err)
	}
	if err := <-wp.Submit(func() error { panic("at the disco") }); err == nil {
		t.Errorf("expected panicking task to deliver an error")
	}
	wp.Close()
	if err := <-wp.Submit(func() error { return nil }); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, have %v", err)
	}
}

func TestPoolCloseWhileSubmitting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	wp := NewWorkerPool(3)
	var ran int32
	var wg sync.WaitGroup
	results := make(chan error, 200)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				results <- <-wp.Submit(func() error {
					atomic.AddInt32(&ran, 1)
					return nil
				})
			}
		}()
	}
	time.Sleep(time.Millisecond)
	wp.Close()
	wg.Wait()
	close(results)
	var ok, rejected int32
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrPoolClosed):
			rejected++
		default:
			t.Errorf("unexpected error %v", err)
		}
	}
	if ok+rejected != 200 {
		t.Errorf("expected 200 results, have %d", ok+rejected)
	}
	if ok != atomic.LoadInt32(&ran) {
		t.Errorf("expected %d tasks to have run, have %d", ok, ran)
	}
}
