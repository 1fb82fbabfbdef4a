//go:build !linux

package park

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/pb"

	"github.com/jdockerty/atomics-and-locks/internal/opt"
)

// waitq is the wait queue for a single word address. gen advances under mu
// on every wake, so a waiter that raced with the wake observes the bump and
// returns instead of blocking forever.
type waitq struct {
	mu   sync.Mutex
	cond *sync.Cond
	gen  uint64
	_    [(opt.CacheLineSize_ - unsafe.Sizeof(struct {
		mu   sync.Mutex
		cond *sync.Cond
		gen  uint64
	}{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte
}

// queues maps a word address to its wait queue. Entries are tiny and keyed
// by lock identity, so they are kept for the life of the process.
var queues pb.MapOf[uintptr, *waitq]

func queueFor(addr *uint32) *waitq {
	key := uintptr(unsafe.Pointer(addr))
	if q, ok := queues.Load(key); ok {
		return q
	}
	q := &waitq{}
	q.cond = sync.NewCond(&q.mu)
	actual, _ := queues.LoadOrStore(key, q)
	return actual
}

// Wait parks the calling goroutine while *addr == expected.
//
// The word is compared under the queue mutex and wakers bump gen under the
// same mutex, so a store+wake between our compare and the cond wait cannot
// be lost: cond.Wait releases the mutex atomically, forcing the waker's
// signal to land after we are queued.
func Wait(addr *uint32, expected uint32) {
	q := queueFor(addr)
	q.mu.Lock()
	if atomic.LoadUint32(addr) != expected {
		q.mu.Unlock()
		return
	}
	gen := q.gen
	for q.gen == gen && atomic.LoadUint32(addr) == expected {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// Wake releases up to n callers parked on addr.
func Wake(addr *uint32, n int) {
	q, ok := queues.Load(uintptr(unsafe.Pointer(addr)))
	if !ok {
		return
	}
	q.mu.Lock()
	q.gen++
	if n == 1 {
		q.cond.Signal()
	} else {
		q.cond.Broadcast()
	}
	q.mu.Unlock()
}
