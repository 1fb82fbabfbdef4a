// Package park provides a futex-style parking facility over 32-bit words.
//
// Wait blocks the caller for as long as the word at addr still holds the
// expected value; Wake releases up to n parked callers. On Linux this maps
// directly onto FUTEX_WAIT/FUTEX_WAKE; elsewhere a per-address wait queue
// emulates the same contract.
//
// Wait may return spuriously, so callers must re-check their condition in a
// loop. The compare in Wait and the store that invalidates it are both on
// the same word, which is what makes a missed wake impossible: any release
// that changes the word before the waiter blocks makes the wait fall
// through immediately.
package park

import "math"

// WakeOne releases at most one caller parked on addr.
func WakeOne(addr *uint32) {
	Wake(addr, 1)
}

// WakeAll releases every caller parked on addr.
func WakeAll(addr *uint32) {
	Wake(addr, math.MaxInt32)
}
