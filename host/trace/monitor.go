// Package trace reads the event stream the firmware forwards over its
// diagnostic UART and turns it back into decoded mailbox events.
package trace

import (
	"fmt"
	"io"

	"wblink/transport"
)

// Event is one decoded event received from the firmware, with the payload
// copied out of the receive buffer so it stays valid.
type Event struct {
	Kind    uint8
	Code    uint8
	Payload []byte
}

// String renders the event for log output.
func (e Event) String() string {
	return fmt.Sprintf("kind=%#02x code=%#02x len=%d payload=% x",
		e.Kind, e.Code, len(e.Payload), e.Payload)
}

// Monitor scans bridge frames out of a byte stream. It tolerates garbage
// and partial frames between reads; corrupt frames are skipped and
// counted, never surfaced as events.
type Monitor struct {
	r    io.Reader
	buf  []byte
	used int

	// Dropped counts bytes discarded while resynchronizing.
	Dropped int
}

// NewMonitor wraps a stream, typically an open serial port.
func NewMonitor(r io.Reader) *Monitor {
	return &Monitor{
		r:   r,
		buf: make([]byte, 4*transport.BridgeFrameMax),
	}
}

// Next blocks until one complete frame is decoded or the stream errors.
// It returns io.EOF once the stream ends with no complete frame left.
func (m *Monitor) Next() (Event, error) {
	for {
		evt, consumed, ok := transport.ScanBridgeFrame(m.buf[:m.used])
		if ok {
			out := Event{
				Kind:    evt.Kind,
				Code:    evt.Code,
				Payload: append([]byte(nil), evt.Payload...),
			}
			// Anything scanned past before the frame was resync garbage.
			frameLen := transport.BridgeOverhead + 2 + len(evt.Payload)
			m.Dropped += consumed - frameLen
			m.discard(consumed)
			return out, nil
		}
		m.Dropped += consumed
		m.discard(consumed)

		if m.used == len(m.buf) {
			// Pathological stream: no frame fits. Drop the buffer and
			// resynchronize from scratch.
			m.Dropped += m.used
			m.used = 0
		}

		n, err := m.r.Read(m.buf[m.used:])
		m.used += n
		if err != nil && n == 0 {
			return Event{}, err
		}
	}
}

// discard drops n consumed bytes from the front of the scan buffer.
func (m *Monitor) discard(n int) {
	if n <= 0 {
		return
	}
	if n > m.used {
		n = m.used
	}
	copy(m.buf, m.buf[n:m.used])
	m.used -= n
}
