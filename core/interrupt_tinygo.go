//go:build tinygo

package core

import "runtime/interrupt"

// CriticalState is the opaque token returned by EnterCritical and consumed
// by ExitCritical to restore the prior interrupt-enable state.
type CriticalState = interrupt.State

// EnterCritical masks interrupts and returns the previous state. The guard
// is scoped: outermost EnterCritical/ExitCritical pair wins, matching
// runtime/interrupt's own save/restore semantics.
func EnterCritical() CriticalState {
	return interrupt.Disable()
}

// ExitCritical restores the interrupt state saved by EnterCritical.
func ExitCritical(state CriticalState) {
	interrupt.Restore(state)
}
