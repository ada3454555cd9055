package core

import "testing"

// boxWithNode fabricates an EvtBox around an ordinary node so ring tests
// can tell entries apart without shared memory.
func boxWithNode(node *LinkedListNode) EvtBox {
	return EvtBox{node: node}
}

func TestRingPushPopOrder(t *testing.T) {
	var ring EvtRing
	var nodes [5]LinkedListNode

	for i := range nodes {
		if err := ring.Push(boxWithNode(&nodes[i])); err != nil {
			t.Fatalf("Push %d failed: %v", i, err)
		}
	}
	if ring.Len() != 5 {
		t.Errorf("Expected 5 undelivered events, got %d", ring.Len())
	}

	for i := range nodes {
		box, ok := ring.Pop()
		if !ok {
			t.Fatalf("Pop %d: unexpected empty ring", i)
		}
		if box.node != &nodes[i] {
			t.Fatalf("Pop %d: order violated", i)
		}
	}

	if _, ok := ring.Pop(); ok {
		t.Error("Pop on drained ring should report empty")
	}
}

func TestRingFullIsError(t *testing.T) {
	var ring EvtRing
	var nodes [EvtRingCapacity + 1]LinkedListNode

	for i := 0; i < EvtRingCapacity; i++ {
		if err := ring.Push(boxWithNode(&nodes[i])); err != nil {
			t.Fatalf("Push %d failed: %v", i, err)
		}
	}

	if err := ring.Push(boxWithNode(&nodes[EvtRingCapacity])); err != ErrRingFull {
		t.Fatalf("Expected ErrRingFull on 33rd push, got %v", err)
	}

	// The overflow attempt must not have corrupted the stored events.
	for i := 0; i < EvtRingCapacity; i++ {
		box, ok := ring.Pop()
		if !ok || box.node != &nodes[i] {
			t.Fatalf("Pop %d after overflow: order or content corrupted", i)
		}
	}
}

func TestRingWrapAround(t *testing.T) {
	var ring EvtRing
	var nodes [EvtRingCapacity * 3]LinkedListNode

	// Repeated fill/drain cycles push head and tail through index wrap.
	n := 0
	for cycle := 0; cycle < 6; cycle++ {
		for i := 0; i < EvtRingCapacity/2; i++ {
			if err := ring.Push(boxWithNode(&nodes[n%len(nodes)])); err != nil {
				t.Fatalf("cycle %d push %d: %v", cycle, i, err)
			}
			n++
		}
		for i := 0; i < EvtRingCapacity/2; i++ {
			if _, ok := ring.Pop(); !ok {
				t.Fatalf("cycle %d pop %d: unexpected empty", cycle, i)
			}
		}
	}
	if ring.Len() != 0 {
		t.Errorf("Expected empty ring after balanced cycles, got %d", ring.Len())
	}
}

func TestRingPopClearsSlot(t *testing.T) {
	var ring EvtRing
	var node LinkedListNode

	if err := ring.Push(boxWithNode(&node)); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	box, ok := ring.Pop()
	if !ok || !box.Valid() {
		t.Fatal("Expected a valid box back")
	}
	if ring.slots[0].Valid() {
		t.Error("Ring slot should not retain the handle after Pop")
	}
}
