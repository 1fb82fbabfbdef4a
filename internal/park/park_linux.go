//go:build linux

package park

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	futexWaitPrivate = 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 129 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
)

// Wait parks the calling goroutine while *addr == expected.
//
// The kernel re-checks the word under its own lock, so a concurrent store
// between our load and the syscall turns the wait into a no-op (EAGAIN)
// rather than a lost wake. EINTR is a spurious return by contract.
func Wait(addr *uint32, expected uint32) {
	if atomic.LoadUint32(addr) != expected {
		return
	}
	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitPrivate,
		uintptr(expected),
		0, 0, 0,
	)
	switch errno {
	case 0, unix.EAGAIN, unix.EINTR:
	default:
		panic("park: futex wait: " + errno.Error())
	}
}

// Wake releases up to n callers parked on addr.
func Wake(addr *uint32, n int) {
	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakePrivate,
		uintptr(n),
		0, 0, 0,
	)
	if errno != 0 {
		panic("park: futex wake: " + errno.Error())
	}
}
