//go:build stm32wb55

package main

import (
	"runtime/volatile"
	"unsafe"

	"wblink/core"
)

// IPCC register block, CPU1 view. Each direction has six channels; the
// status registers expose one flag bit per channel, the mask registers one
// interrupt-mask bit per channel and kind.
type ipccRegs struct {
	C1CR     volatile.Register32 // CPU1 control: RXOIE, TXFIE
	C1MR     volatile.Register32 // CPU1 mask: CHnOM (rx, 0..5), CHnFM (tx, 16..21)
	C1SCR    volatile.Register32 // CPU1 set/clear: CHnC (0..5), CHnS (16..21)
	C1TOC2SR volatile.Register32 // CPU1-to-CPU2 channel flags
	C2CR     volatile.Register32
	C2MR     volatile.Register32
	C2SCR    volatile.Register32
	C2TOC1SR volatile.Register32 // CPU2-to-CPU1 channel flags
}

const (
	ipccBase = 0x5800_0C00

	ipccCRRxOccupiedIE = 1 << 0
	ipccCRTxFreeIE     = 1 << 16

	ipccTxShift = 16
)

//go:inline
func ipcc() *ipccRegs {
	return (*ipccRegs)(unsafe.Pointer(uintptr(ipccBase)))
}

// ipccDoorbell implements core.Doorbell over the IPCC peripheral, CPU1
// side.
type ipccDoorbell struct{}

// Configure enables the global RX-occupied and TX-free interrupt gates.
// Per-channel masks stay closed until a channel is armed.
func (ipccDoorbell) Configure() {
	regs := ipcc()
	regs.C1MR.Set(0xFFFF_FFFF)
	regs.C1CR.SetBits(ipccCRRxOccupiedIE | ipccCRTxFreeIE)
}

// chFlag is the channel's flag/status bit, chTxMask the corresponding
// TX-free mask bit in the upper half of the mask and set/clear registers.
func chFlag(ch core.Channel) uint32   { return 1 << (uint32(ch) - 1) }
func chTxMask(ch core.Channel) uint32 { return 1 << (uint32(ch) - 1 + ipccTxShift) }

func (ipccDoorbell) IsRxPending(ch core.Channel) bool {
	regs := ipcc()
	return regs.C2TOC1SR.HasBits(chFlag(ch)) && !regs.C1MR.HasBits(chFlag(ch))
}

func (ipccDoorbell) IsTxPending(ch core.Channel) bool {
	regs := ipcc()
	return !regs.C1TOC2SR.HasBits(chFlag(ch)) && !regs.C1MR.HasBits(chTxMask(ch))
}

func (ipccDoorbell) SetRxEnabled(ch core.Channel, enabled bool) {
	regs := ipcc()
	if enabled {
		regs.C1MR.ClearBits(chFlag(ch))
	} else {
		regs.C1MR.SetBits(chFlag(ch))
	}
}

func (ipccDoorbell) SetTxEnabled(ch core.Channel, enabled bool) {
	regs := ipcc()
	if enabled {
		regs.C1MR.ClearBits(chTxMask(ch))
	} else {
		regs.C1MR.SetBits(chTxMask(ch))
	}
}

func (ipccDoorbell) ClearRxFlag(ch core.Channel) {
	ipcc().C1SCR.Set(chFlag(ch))
}

func (ipccDoorbell) SetTxFlag(ch core.Channel) {
	ipcc().C1SCR.Set(chTxMask(ch))
}
