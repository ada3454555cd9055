//go:build stm32wb55

package main

import (
	"runtime/volatile"
	"unsafe"
)

// Minimal RCC/PWR access for bringing up the mailbox: clock the IPCC
// peripheral and release CPU2 from reset. Full clock-tree configuration
// (PLL, CPU2 prescaler, USB source) belongs to the board support code, not
// here.
const (
	rccBase = 0x5800_0000
	pwrBase = 0x5800_0400

	rccAHB3ENROffset = 0x78
	pwrCR4Offset     = 0x0C

	rccAHB3ENRIPCCEN = 1 << 20
	pwrCR4C2BOOT     = 1 << 15
)

func reg32(base, offset uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(base + offset))
}

// enableIPCCClock gates the IPCC peripheral clock on.
func enableIPCCClock() {
	reg32(rccBase, rccAHB3ENROffset).SetBits(rccAHB3ENRIPCCEN)
	// Read back to make sure the enable has propagated before the first
	// register access.
	_ = reg32(rccBase, rccAHB3ENROffset).Get()
}

// releaseCPU2 boots the coprocessor. Must run only after the reference
// table has been published: the coprocessor reads it immediately.
func releaseCPU2() {
	reg32(pwrBase, pwrCR4Offset).SetBits(pwrCR4C2BOOT)
}
