//go:build stm32wb55

package main

import "wblink/core"

// The mailbox memory must sit at the addresses the coprocessor firmware
// hard-codes: the reference table at the head of SRAM2a, the sub-tables in
// SRAM2a, the buffers in SRAM2b. The linker script pins these sections:
//
//	.tl_ref_table : reference table, start of SRAM2a
//	.mb_mem1      : sub-tables and shared queue heads, SRAM2a
//	.mb_mem2      : command/event buffers and pools, SRAM2b
//
// Nothing else may be placed in those sections.

//go:section .tl_ref_table
//go:align 4
var refTable core.RefTable

//go:section .mb_mem1
//go:align 4
var sharedMem1 core.SharedMem1

//go:section .mb_mem2
//go:align 4
var sharedMem2 core.SharedMem2
