//go:build stm32wb55

package main

import (
	"machine"
	"runtime/interrupt"
	"time"

	"wblink/core"
	"wblink/transport"
)

// IPCC interrupt lines, CPU1 side.
const (
	irqIPCCC1RX = 44
	irqIPCCC1TX = 45
)

var mbox *core.Mailbox

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})

	enableIPCCClock()
	db := ipccDoorbell{}
	db.Configure()

	mbox = core.Init(&refTable, &sharedMem1, &sharedMem2, db, core.Config{
		Log: debugLog,
	})

	rx := interrupt.New(irqIPCCC1RX, handleIPCCRx)
	tx := interrupt.New(irqIPCCC1TX, handleIPCCTx)
	rx.Enable()
	tx.Enable()

	// The reference table is published; CPU2 may now boot and read it.
	releaseCPU2()

	// Wait for the wireless firmware to announce itself. Zero version
	// means the coprocessor has not booted yet; this is polled, never an
	// error.
	for {
		if info, ok := mbox.WirelessFwInfo(); ok {
			debugLog("wireless fw " + verString(info))
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Forward every decoded event over the diagnostic UART and recycle
	// its buffer.
	var frame [transport.BridgeFrameMax]byte
	for {
		box, ok := mbox.DequeueEvent()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		n, err := transport.EncodeBridgeFrame(frame[:], transport.Evt{
			Kind:    box.Kind(),
			Code:    box.Code(),
			Payload: box.Payload(),
		})
		if err == nil {
			machine.Serial.Write(frame[:n])
		}
		mbox.ReleaseEvent(&box)
	}
}

func handleIPCCRx(interrupt.Interrupt) {
	mbox.OnRxInterrupt()
}

func handleIPCCTx(interrupt.Interrupt) {
	mbox.OnTxInterrupt()
}

func debugLog(msg string) {
	println("[wblink] " + msg)
}

func verString(info transport.FwInfo) string {
	return itoa(int(info.VersionMajor)) + "." +
		itoa(int(info.VersionMinor)) + "." +
		itoa(int(info.SubVersion))
}

// itoa avoids fmt on the firmware target.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	pos := len(buf)
	for n > 0 && pos > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
