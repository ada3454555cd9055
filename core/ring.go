package core

import (
	"errors"
	"sync/atomic"
)

// EvtRingCapacity fixes the application-facing event ring depth. Its size
// assumes the application task drains promptly; overflow is a fatal
// condition, not a drop.
const EvtRingCapacity = 32

// ErrRingFull is returned by Push when all slots hold undelivered events.
var ErrRingFull = errors.New("core: event ring full")

// EvtRing is the fixed-capacity single-producer/single-consumer ring that
// carries decoded events from interrupt context to the application task.
// The producer is the doorbell RX handler, the consumer is DequeueEvent;
// neither side blocks and the consumer never disables interrupts.
type EvtRing struct {
	head  atomic.Uint32 // next write slot, producer-owned
	tail  atomic.Uint32 // next read slot, consumer-owned
	slots [EvtRingCapacity]EvtBox
}

// Push stores one event handle. Interrupt context only.
func (r *EvtRing) Push(box EvtBox) error {
	head := r.head.Load()
	if head-r.tail.Load() >= EvtRingCapacity {
		return ErrRingFull
	}
	r.slots[head%EvtRingCapacity] = box
	// Publish the slot only after the copy is complete.
	r.head.Store(head + 1)
	return nil
}

// Pop removes the oldest event handle, or reports false on an empty ring.
// Task context only.
func (r *EvtRing) Pop() (EvtBox, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return EvtBox{}, false
	}
	box := r.slots[tail%EvtRingCapacity]
	r.slots[tail%EvtRingCapacity] = EvtBox{}
	r.tail.Store(tail + 1)
	return box, true
}

// Len returns the number of undelivered events.
func (r *EvtRing) Len() int {
	return int(r.head.Load() - r.tail.Load())
}
