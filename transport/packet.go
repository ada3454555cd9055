// Package transport implements the byte-level framing shared between the
// application core and the wireless coprocessor. The layouts here are a
// fixed ABI with the coprocessor firmware and must not change.
package transport

import "errors"

// Shared-memory frame layout constants. Every buffer exchanged through the
// mailbox starts with an 8-byte packet header (two 32-bit link words owned
// by the intrusive queue), followed by a serialized command or event frame.
const (
	PacketHeaderSize = 8 // two 32-bit next/prev link words

	EvtHeaderSize = 3 // kind + event code + payload length
	CmdHeaderSize = 4 // kind + 16-bit command code + payload length

	MaxPayloadSize = 255

	CmdCompleteHeaderSize = 4 // numcmd + 16-bit command code + status
	CmdStatusSize         = 4 // command-status event body
)

// Frame kind discriminants (first byte after the packet header).
const (
	KindBleCmd  = 0x01
	KindAclData = 0x02
	KindEvt     = 0x04
	KindOtCmd   = 0x08
	KindSysCmd  = 0x10
	KindSysEvt  = 0x12
)

// Event codes carried in the second byte of an event frame.
const (
	EvtCodeCmdStatus   = 0x0F
	EvtCodeCmdComplete = 0x0E
	EvtCodeVendor      = 0xFF
)

var (
	ErrShortBuffer     = errors.New("transport: buffer too short for frame")
	ErrPayloadTooLarge = errors.New("transport: payload exceeds maximum size")
	ErrTruncatedFrame  = errors.New("transport: frame truncated before payload end")
)

// Evt is the decoded view of one event frame. Payload aliases the source
// buffer; callers that outlive the buffer must copy it.
type Evt struct {
	Kind    uint8
	Code    uint8
	Payload []byte
}

// Cmd is the decoded view of one command frame.
type Cmd struct {
	Kind    uint8
	Code    uint16
	Payload []byte
}

// CmdComplete is the decoded command-complete event payload carrying the
// outcome of a previously issued command.
type CmdComplete struct {
	NumCmd       uint8
	CmdCode      uint16
	Status       uint8
	ReturnParams []byte
}

// DecodeEvt decodes an event frame from buf. buf starts immediately after
// the packet header.
func DecodeEvt(buf []byte) (Evt, error) {
	if len(buf) < EvtHeaderSize {
		return Evt{}, ErrShortBuffer
	}
	plen := int(buf[2])
	if len(buf) < EvtHeaderSize+plen {
		return Evt{}, ErrTruncatedFrame
	}
	return Evt{
		Kind:    buf[0],
		Code:    buf[1],
		Payload: buf[EvtHeaderSize : EvtHeaderSize+plen],
	}, nil
}

// EncodeEvt serializes e into buf and returns the number of bytes written.
func EncodeEvt(buf []byte, e Evt) (int, error) {
	if len(e.Payload) > MaxPayloadSize {
		return 0, ErrPayloadTooLarge
	}
	n := EvtHeaderSize + len(e.Payload)
	if len(buf) < n {
		return 0, ErrShortBuffer
	}
	buf[0] = e.Kind
	buf[1] = e.Code
	buf[2] = uint8(len(e.Payload))
	copy(buf[EvtHeaderSize:], e.Payload)
	return n, nil
}

// DecodeCmd decodes a command frame from buf. buf starts immediately after
// the packet header.
func DecodeCmd(buf []byte) (Cmd, error) {
	if len(buf) < CmdHeaderSize {
		return Cmd{}, ErrShortBuffer
	}
	plen := int(buf[3])
	if len(buf) < CmdHeaderSize+plen {
		return Cmd{}, ErrTruncatedFrame
	}
	return Cmd{
		Kind:    buf[0],
		Code:    uint16(buf[1]) | uint16(buf[2])<<8,
		Payload: buf[CmdHeaderSize : CmdHeaderSize+plen],
	}, nil
}

// EncodeCmd serializes c into buf and returns the number of bytes written.
func EncodeCmd(buf []byte, c Cmd) (int, error) {
	if len(c.Payload) > MaxPayloadSize {
		return 0, ErrPayloadTooLarge
	}
	n := CmdHeaderSize + len(c.Payload)
	if len(buf) < n {
		return 0, ErrShortBuffer
	}
	buf[0] = c.Kind
	buf[1] = uint8(c.Code)
	buf[2] = uint8(c.Code >> 8)
	buf[3] = uint8(len(c.Payload))
	copy(buf[CmdHeaderSize:], c.Payload)
	return n, nil
}

// DecodeCmdComplete decodes a command-complete event payload, as carried in
// the Payload of an Evt with code EvtCodeCmdComplete.
func DecodeCmdComplete(payload []byte) (CmdComplete, error) {
	if len(payload) < CmdCompleteHeaderSize {
		return CmdComplete{}, ErrShortBuffer
	}
	return CmdComplete{
		NumCmd:       payload[0],
		CmdCode:      uint16(payload[1]) | uint16(payload[2])<<8,
		Status:       payload[3],
		ReturnParams: payload[CmdCompleteHeaderSize:],
	}, nil
}

// EncodeCmdComplete serializes cc into buf and returns the number of bytes
// written.
func EncodeCmdComplete(buf []byte, cc CmdComplete) (int, error) {
	n := CmdCompleteHeaderSize + len(cc.ReturnParams)
	if len(buf) < n {
		return 0, ErrShortBuffer
	}
	buf[0] = cc.NumCmd
	buf[1] = uint8(cc.CmdCode)
	buf[2] = uint8(cc.CmdCode >> 8)
	buf[3] = cc.Status
	copy(buf[CmdCompleteHeaderSize:], cc.ReturnParams)
	return n, nil
}
