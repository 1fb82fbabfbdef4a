package park

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWait_ValueMismatch(t *testing.T) {
	var word uint32
	done := make(chan struct{})
	go func() {
		defer close(done)
		// The word does not hold the expected value, so this must not block.
		Wait(&word, 1)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Wait blocked on a mismatched value")
	}
}

func TestWaitWake_One(t *testing.T) {
	var word uint32
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Callers loop: Wait may return spuriously.
		for atomic.LoadUint32(&word) == 0 {
			Wait(&word, 0)
		}
	}()

	// The waiter should stay parked while the word is unchanged.
	time.Sleep(50 * time.Millisecond)
	select {
	case <-done:
		t.Fatalf("waiter returned before the word changed")
	default:
	}

	atomic.StoreUint32(&word, 1)
	WakeOne(&word)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("waiter not woken")
	}
}

func TestWaitWake_All(t *testing.T) {
	const n = 8
	var word uint32
	var wg sync.WaitGroup
	wg.Add(n)
	var parked int32
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			atomic.AddInt32(&parked, 1)
			for atomic.LoadUint32(&word) == 0 {
				Wait(&word, 0)
			}
		}()
	}

	for atomic.LoadInt32(&parked) != n {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)

	atomic.StoreUint32(&word, 1)
	WakeAll(&word)
	wg.Wait()
}

func TestWake_NoWaiters(t *testing.T) {
	var word uint32
	// Must be a harmless no-op.
	WakeOne(&word)
	WakeAll(&word)
}
