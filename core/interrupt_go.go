//go:build !tinygo

package core

// State is a placeholder for the saved interrupt state on regular Go.
type State uintptr

// disableInterrupts is a no-op on regular Go, where tests drive the
// interrupt entry points directly from the same goroutine.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go.
func restoreInterrupts(state State) {
}
