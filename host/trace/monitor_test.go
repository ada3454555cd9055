package trace

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"wblink/transport"
)

func encodeFrame(t *testing.T, kind, code uint8, payload []byte) []byte {
	t.Helper()
	var buf [transport.BridgeFrameMax]byte
	n, err := transport.EncodeBridgeFrame(buf[:], transport.Evt{
		Kind:    kind,
		Code:    code,
		Payload: payload,
	})
	require.NoError(t, err)
	return append([]byte(nil), buf[:n]...)
}

func TestMonitorDecodesStream(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(encodeFrame(t, transport.KindSysEvt, 0x10, []byte{1, 2}))
	stream.Write(encodeFrame(t, transport.KindSysEvt, 0x11, nil))
	stream.Write(encodeFrame(t, transport.KindEvt, 0xFF, []byte{9}))

	m := NewMonitor(&stream)

	evt, err := m.Next()
	require.NoError(t, err)
	require.Equal(t, uint8(0x10), evt.Code)
	require.Equal(t, []byte{1, 2}, evt.Payload)

	evt, err = m.Next()
	require.NoError(t, err)
	require.Equal(t, uint8(0x11), evt.Code)
	require.Empty(t, evt.Payload)

	evt, err = m.Next()
	require.NoError(t, err)
	require.Equal(t, uint8(transport.KindEvt), evt.Kind)
	require.Equal(t, uint8(0xFF), evt.Code)

	_, err = m.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestMonitorSkipsLeadingGarbage(t *testing.T) {
	var stream bytes.Buffer
	stream.Write([]byte{0x00, 0x42, 0x99})
	stream.Write(encodeFrame(t, transport.KindSysEvt, 0x20, []byte{7}))

	m := NewMonitor(&stream)
	evt, err := m.Next()
	require.NoError(t, err)
	require.Equal(t, uint8(0x20), evt.Code)
	require.Equal(t, 3, m.Dropped)
}

// chunkReader yields the underlying data a few bytes at a time, the way a
// serial port does.
type chunkReader struct {
	data  []byte
	chunk int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.chunk
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestMonitorReassemblesSplitFrames(t *testing.T) {
	frame := encodeFrame(t, transport.KindSysEvt, 0x30, []byte{1, 2, 3, 4, 5})
	m := NewMonitor(&chunkReader{data: frame, chunk: 2})

	evt, err := m.Next()
	require.NoError(t, err)
	require.Equal(t, uint8(0x30), evt.Code)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, evt.Payload)
}

func TestMonitorPayloadIsCopied(t *testing.T) {
	frame := encodeFrame(t, transport.KindSysEvt, 0x40, []byte{0xAA})
	frame = append(frame, encodeFrame(t, transport.KindSysEvt, 0x41, []byte{0xBB})...)

	m := NewMonitor(bytes.NewReader(frame))

	first, err := m.Next()
	require.NoError(t, err)
	_, err = m.Next()
	require.NoError(t, err)

	// Decoding the second frame reuses the scan buffer; the first
	// payload must be unaffected.
	require.Equal(t, []byte{0xAA}, first.Payload)
}
