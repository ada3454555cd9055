//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts around the short critical sections
// the memory manager shares between task and interrupt context.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the saved interrupt state.
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
