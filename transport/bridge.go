package transport

// Bridge framing wraps decoded mailbox events for the diagnostic UART link
// between the firmware and a host-side monitor. Unlike the shared-memory
// layouts above, this framing is byte-stream oriented and self-delimiting:
//
//	sync (0x7C) | length | kind | code | payload... | crc16 hi | crc16 lo
//
// length counts kind + code + payload. The CRC covers length through the
// end of the payload.
const (
	BridgeSync     = 0x7C
	BridgeOverhead = 4 // sync + length + crc16
	BridgeFrameMax = BridgeOverhead + 2 + MaxPayloadSize
	bridgeLenMin   = 2 // kind + code, empty payload
	bridgePosLen   = 1
	bridgePosKind  = 2
)

// EncodeBridgeFrame serializes e as one bridge frame into buf and returns
// the number of bytes written.
func EncodeBridgeFrame(buf []byte, e Evt) (int, error) {
	if len(e.Payload) > MaxPayloadSize {
		return 0, ErrPayloadTooLarge
	}
	n := BridgeOverhead + bridgeLenMin + len(e.Payload)
	if len(buf) < n {
		return 0, ErrShortBuffer
	}
	buf[0] = BridgeSync
	buf[bridgePosLen] = uint8(bridgeLenMin + len(e.Payload))
	buf[bridgePosKind] = e.Kind
	buf[bridgePosKind+1] = e.Code
	copy(buf[bridgePosKind+2:], e.Payload)
	crc := CRC16(buf[bridgePosLen : n-2])
	buf[n-2] = uint8(crc >> 8)
	buf[n-1] = uint8(crc)
	return n, nil
}

// ScanBridgeFrame finds and decodes the first complete, CRC-valid bridge
// frame in data. It returns the decoded event, the number of bytes consumed
// (including any garbage skipped before the sync byte), and whether a frame
// was decoded. When ok is false the caller should retain data[consumed:]
// and retry once more bytes arrive.
func ScanBridgeFrame(data []byte) (e Evt, consumed int, ok bool) {
	for {
		// Resynchronize on the sync byte.
		start := -1
		for i := consumed; i < len(data); i++ {
			if data[i] == BridgeSync {
				start = i
				break
			}
		}
		if start < 0 {
			return Evt{}, len(data), false
		}
		consumed = start

		if len(data)-start < BridgeOverhead+bridgeLenMin {
			return Evt{}, consumed, false
		}
		bodyLen := int(data[start+bridgePosLen])
		if bodyLen < bridgeLenMin {
			// Corrupt length, skip this sync byte.
			consumed = start + 1
			continue
		}
		frameLen := BridgeOverhead + bodyLen
		if len(data)-start < frameLen {
			return Evt{}, consumed, false
		}

		frame := data[start : start+frameLen]
		wantCRC := uint16(frame[frameLen-2])<<8 | uint16(frame[frameLen-1])
		if CRC16(frame[bridgePosLen:frameLen-2]) != wantCRC {
			consumed = start + 1
			continue
		}

		return Evt{
			Kind:    frame[bridgePosKind],
			Code:    frame[bridgePosKind+1],
			Payload: frame[bridgePosKind+2 : frameLen-2],
		}, start + frameLen, true
	}
}
