package core

import (
	"unsafe"

	"wblink/transport"
)

// EvtBox is the ownership handle for one event unlinked from a shared
// queue. It keeps the backing buffer until the application is done with the
// event; the buffer must then be returned through Mailbox.ReleaseEvent so
// the coprocessor can reuse the pool slot. Losing a live EvtBox leaks that
// slot for good.
type EvtBox struct {
	node *LinkedListNode
	evt  transport.Evt
}

// newEvtBox decodes the event frame behind node. The node is the first
// field of the buffer it lives in, so recovering the enclosing buffer is a
// single container cast; the frame itself goes through the bounds-checked
// decoder.
func newEvtBox(node *LinkedListNode) (EvtBox, error) {
	buf := (*EvtBuffer)(unsafe.Pointer(node))
	evt, err := transport.DecodeEvt(buf.Frame[:])
	if err != nil {
		return EvtBox{}, err
	}
	return EvtBox{node: node, evt: evt}, nil
}

// Kind returns the frame kind discriminant.
func (b *EvtBox) Kind() uint8 { return b.evt.Kind }

// Code returns the event code.
func (b *EvtBox) Code() uint8 { return b.evt.Code }

// Payload returns the event payload. The slice aliases the shared buffer
// and becomes invalid once the box is released.
func (b *EvtBox) Payload() []byte { return b.evt.Payload }

// Valid reports whether the box still owns a buffer.
func (b *EvtBox) Valid() bool { return b.node != nil }

// take surrenders the buffer node, invalidating the box.
func (b *EvtBox) take() *LinkedListNode {
	node := b.node
	b.node = nil
	b.evt = transport.Evt{}
	return node
}
