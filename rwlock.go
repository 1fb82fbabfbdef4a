// Package rwlock implements a reader-writer lock that owns the value it
// protects and parks contended acquirers on its state word (a futex on
// Linux) instead of spinning.
package rwlock

import (
	"sync/atomic"

	"github.com/jdockerty/atomics-and-locks/internal/park"
)

const (
	// writerLocked is the reserved state value for an exclusive holder.
	writerLocked = ^uint32(0)
	// maxReaders stops one short of writerLocked so that an increment can
	// never collide with the writer sentinel.
	maxReaders = writerLocked - 1
)

// RwLock is a reader-writer lock protecting a single value of type T.
// The value is reachable only through the guards returned by Read and
// Write, so it cannot be touched without holding the lock.
//
// Properties:
//   - Any number of concurrent readers, or exactly one writer.
//   - Contended acquirers park on the state word rather than busy-wait.
//   - No fairness: writers are not preferred, and a steady stream of
//     arriving readers can starve a waiting writer indefinitely.
//   - Not recursive. A holder acquiring again deadlocks.
//
// An RwLock must not be copied after first use. It is safe to share across
// goroutines whenever T itself is.
//
// Size: 4 bytes of state plus the value.
type RwLock[T any] struct {
	_ noCopy
	// state is both the lock word and the park address:
	//   0               unlocked
	//   1..maxReaders   number of live readers
	//   writerLocked    one writer
	state uint32
	value T
}

// New creates an RwLock protecting value.
func New[T any](value T) *RwLock[T] {
	return &RwLock[T]{value: value}
}

// Read acquires the lock for shared reading, blocking while a writer holds
// it. The returned guard exposes the value and must be unlocked exactly
// once. Guards must not be copied.
func (l *RwLock[T]) Read() ReadGuard[T] {
	s := atomic.LoadUint32(&l.state)
	for {
		if s < writerLocked {
			if s == maxReaders {
				panic("rwlock: too many readers")
			}
			if atomic.CompareAndSwapUint32(&l.state, s, s+1) {
				return ReadGuard[T]{lock: l}
			}
			s = atomic.LoadUint32(&l.state)
			continue
		}
		// Write-locked. Park until the writer's release changes the word;
		// if it already has, the wait falls through immediately.
		park.Wait(&l.state, writerLocked)
		s = atomic.LoadUint32(&l.state)
	}
}

// Write acquires the lock exclusively, blocking while any reader or writer
// holds it. The returned guard exposes the value for mutation and must be
// unlocked exactly once. Guards must not be copied.
func (l *RwLock[T]) Write() WriteGuard[T] {
	for {
		if atomic.CompareAndSwapUint32(&l.state, 0, writerLocked) {
			return WriteGuard[T]{lock: l}
		}
		if s := atomic.LoadUint32(&l.state); s != 0 {
			// Park on whatever value we saw. Readers draining to zero and
			// a writer storing zero both change the word, so either form
			// of release lets the wait through.
			park.Wait(&l.state, s)
		}
	}
}

// ReadGuard grants shared access to the protected value for as long as it
// is live.
type ReadGuard[T any] struct {
	lock *RwLock[T]
}

// Get returns the protected value. The value must not be mutated through
// the returned pointer; mutation is only legal through a WriteGuard.
func (g *ReadGuard[T]) Get() *T {
	if g.lock == nil {
		panic("rwlock: Get on released ReadGuard")
	}
	return &g.lock.value
}

// Unlock releases the shared hold. If this was the last reader, one parked
// thread is woken; only the 1-to-0 transition can unblock a writer, and
// readers never block each other, so waking more would be wasted work.
func (g *ReadGuard[T]) Unlock() {
	l := g.lock
	if l == nil {
		panic("rwlock: ReadGuard unlocked twice")
	}
	g.lock = nil
	if atomic.AddUint32(&l.state, ^uint32(0)) == 0 {
		park.WakeOne(&l.state)
	}
}

// WriteGuard grants exclusive access to the protected value for as long as
// it is live.
type WriteGuard[T any] struct {
	lock *RwLock[T]
}

// Get returns the protected value for reading or writing.
func (g *WriteGuard[T]) Get() *T {
	if g.lock == nil {
		panic("rwlock: Get on released WriteGuard")
	}
	return &g.lock.value
}

// Unlock releases the exclusive hold and wakes every parked thread. The
// single state word cannot tell parked readers from parked writers, so all
// are released to contend again.
func (g *WriteGuard[T]) Unlock() {
	l := g.lock
	if l == nil {
		panic("rwlock: WriteGuard unlocked twice")
	}
	g.lock = nil
	atomic.StoreUint32(&l.state, 0)
	park.WakeAll(&l.state)
}
