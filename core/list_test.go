package core

import "testing"

func TestInitHeadIsEmpty(t *testing.T) {
	var head LinkedListNode
	InitHead(&head)

	if !IsEmpty(&head) {
		t.Error("Fresh head should be empty")
	}
	if RemoveHead(&head) != nil {
		t.Error("RemoveHead on empty list should return nil")
	}
}

func TestInsertTailFIFOOrder(t *testing.T) {
	var head LinkedListNode
	InitHead(&head)

	var nodes [4]LinkedListNode
	for i := range nodes {
		InsertTail(&head, &nodes[i])
	}

	for i := range nodes {
		got := RemoveHead(&head)
		if got != &nodes[i] {
			t.Fatalf("Expected node %d at position %d", i, i)
		}
	}
	if !IsEmpty(&head) {
		t.Error("List should be empty after removing all nodes")
	}
}

func TestInsertHeadLIFOOrder(t *testing.T) {
	var head LinkedListNode
	InitHead(&head)

	var nodes [3]LinkedListNode
	for i := range nodes {
		InsertHead(&head, &nodes[i])
	}

	for i := len(nodes) - 1; i >= 0; i-- {
		got := RemoveHead(&head)
		if got != &nodes[i] {
			t.Fatalf("Expected node %d", i)
		}
	}
}

func TestRemoveHeadUnlinksNode(t *testing.T) {
	var head LinkedListNode
	InitHead(&head)

	var node LinkedListNode
	InsertTail(&head, &node)

	got := RemoveHead(&head)
	if got != &node {
		t.Fatal("Expected the inserted node back")
	}
	if got.next != nil || got.prev != nil {
		t.Error("Removed node should have cleared link words")
	}
}

func TestInterleavedInsertRemove(t *testing.T) {
	// For any interleaving of N inserts followed by N removes the list
	// ends empty and never reports empty while an unmatched insert
	// remains.
	var head LinkedListNode
	InitHead(&head)

	var nodes [16]LinkedListNode
	outstanding := 0

	step := func(insert bool, i int, atHead bool) {
		if insert {
			if atHead {
				InsertHead(&head, &nodes[i])
			} else {
				InsertTail(&head, &nodes[i])
			}
			outstanding++
		} else {
			if RemoveHead(&head) == nil {
				t.Fatal("RemoveHead returned nil with outstanding inserts")
			}
			outstanding--
		}
		if outstanding > 0 && IsEmpty(&head) {
			t.Fatalf("List empty-signaled with %d unmatched inserts", outstanding)
		}
		if outstanding == 0 && !IsEmpty(&head) {
			t.Fatal("List not empty with no unmatched inserts")
		}
	}

	// Mixed interleaving: bursts of inserts at both ends with partial
	// drains in between.
	step(true, 0, false)
	step(true, 1, true)
	step(true, 2, false)
	step(false, 0, false)
	step(true, 3, false)
	step(true, 4, true)
	step(false, 0, false)
	step(false, 0, false)
	step(true, 5, false)
	step(false, 0, false)
	step(false, 0, false)
	step(false, 0, false)

	if outstanding != 0 || !IsEmpty(&head) {
		t.Fatal("List should be empty after matching removes")
	}
}

func TestNodesReusableAfterRemoval(t *testing.T) {
	var a, b LinkedListNode
	InitHead(&a)
	InitHead(&b)

	var node LinkedListNode
	InsertTail(&a, &node)

	moved := RemoveHead(&a)
	InsertTail(&b, moved)

	if IsEmpty(&b) || !IsEmpty(&a) {
		t.Error("Node should have moved from list a to list b")
	}
	if RemoveHead(&b) != &node {
		t.Error("Expected the same node back from list b")
	}
}
