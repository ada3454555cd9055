package core

// LinkedListNode is the two-pointer intrusive node embedded at the start of
// every buffer and queue head in the shared mailbox memory. Both cores link
// nodes by writing raw addresses into these words, so the struct layout is
// part of the shared-memory ABI: exactly two pointer-sized link words, no
// other fields.
//
// A node is either a list head or an element, never both. An empty head
// links to itself. A node belongs to at most one list at a time; membership
// is tracked purely by the link words.
type LinkedListNode struct {
	next *LinkedListNode
	prev *LinkedListNode
}

// InitHead turns head into an empty, self-linked list.
func InitHead(head *LinkedListNode) {
	head.next = head
	head.prev = head
}

// IsEmpty reports whether head has no elements.
func IsEmpty(head *LinkedListNode) bool {
	return head.next == head
}

// InsertHead splices an unlinked node in right after head.
func InsertHead(head, node *LinkedListNode) {
	node.next = head.next
	node.prev = head
	head.next = node
	node.next.prev = node
}

// InsertTail splices an unlinked node in right before head.
func InsertTail(head, node *LinkedListNode) {
	node.next = head
	node.prev = head.prev
	head.prev = node
	node.prev.next = node
}

// RemoveHead unlinks and returns the first element of the list, or nil if
// the list is empty. Ownership of the node transfers to the caller at
// unlink time.
func RemoveHead(head *LinkedListNode) *LinkedListNode {
	if IsEmpty(head) {
		return nil
	}
	node := head.next
	head.next = node.next
	node.next.prev = head
	node.next = nil
	node.prev = nil
	return node
}
