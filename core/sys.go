package core

import (
	"errors"

	"wblink/transport"
)

// ErrCommandInFlight is returned when a system command is issued while the
// previous one is still awaiting its response. The transport has no
// timeout of its own; any watchdog policy belongs to the caller.
var ErrCommandInFlight = errors.New("core: system command already in flight")

// sysState tracks the command/response half of the system channel.
type sysState uint8

const (
	sysIdle sysState = iota
	sysCommandSent
	sysAwaitingResponse
	sysResponseReceived
)

// sysChannel runs the two independent protocol halves multiplexed on
// doorbell channel 2: the command/response handshake on the TX side and
// the event drain on the RX side. Both operate on buffers advertised
// through the system sub-table.
type sysChannel struct {
	state    sysState
	cmdBuf   *CmdPacket
	evtQueue *LinkedListNode
}

// init wires the system sub-table and arms the event channel. Called from
// Mailbox bootstrap only, after the shared regions have been zeroed.
func (s *sysChannel) init(db Doorbell, mem1 *SharedMem1, mem2 *SharedMem2) {
	InitHead(&mem2.SysEvtQueue)
	mem1.Sys = SysTable{
		CmdBuffer: &mem2.SysCmdBuf,
		EvtQueue:  &mem2.SysEvtQueue,
	}
	s.cmdBuf = &mem2.SysCmdBuf
	s.evtQueue = &mem2.SysEvtQueue
	s.state = sysIdle

	db.SetRxEnabled(ChanSysEvent, true)
}

// sendCommand serializes one system command into the shared command buffer
// and rings the doorbell. The buffer now belongs to the coprocessor until
// the TX-free interrupt reports the response.
func (s *sysChannel) sendCommand(db Doorbell, code uint16, payload []byte) error {
	if s.state != sysIdle {
		return ErrCommandInFlight
	}
	_, err := transport.EncodeCmd(s.cmdBuf.Serial[:], transport.Cmd{
		Kind:    transport.KindSysCmd,
		Code:    code,
		Payload: payload,
	})
	if err != nil {
		return err
	}
	s.state = sysCommandSent

	db.SetTxFlag(ChanSysCmdRsp)
	db.SetTxEnabled(ChanSysCmdRsp, true)
	s.state = sysAwaitingResponse
	return nil
}

// cmdRspHandler runs on the system channel TX-free interrupt. The
// coprocessor has overwritten the command buffer with the response: the
// same bytes now decode as an event frame whose payload is a
// command-complete record.
func (s *sysChannel) cmdRspHandler(db Doorbell) (transport.CmdComplete, error) {
	db.SetTxEnabled(ChanSysCmdRsp, false)
	s.state = sysResponseReceived
	defer func() { s.state = sysIdle }()

	evt, err := transport.DecodeEvt(s.cmdBuf.Serial[:])
	if err != nil {
		return transport.CmdComplete{}, err
	}
	return transport.DecodeCmdComplete(evt.Payload)
}

// evtHandler runs on the system event RX interrupt. It drains the entire
// intrusive queue in one pass, preserving link order, and only then clears
// the doorbell flag. A full ring aborts the drain; the caller must treat
// that as fatal, never as a silent drop.
func (s *sysChannel) evtHandler(db Doorbell, ring *EvtRing) error {
	for !IsEmpty(s.evtQueue) {
		node := RemoveHead(s.evtQueue)
		box, err := newEvtBox(node)
		if err != nil {
			return err
		}
		if err := ring.Push(box); err != nil {
			return err
		}
	}
	db.ClearRxFlag(ChanSysEvent)
	return nil
}
