package core

// MemManager recycles consumed event buffers back to the pool the
// coprocessor allocates from. Released buffers are staged on a local list
// in task context; the release-channel TX-free interrupt splices the stage
// into the shared free-buffer queue and pulses the doorbell so the
// coprocessor reclaims them.
type MemManager struct {
	freeBufQueue   *LinkedListNode // shared queue, drained by the coprocessor
	localFreeQueue LinkedListNode  // staging list, task inserts / TX irq drains
}

// init zero-fills the bookkeeping, publishes the memory-manager sub-table
// and initializes the queue heads the coprocessor expects. Called from
// Mailbox bootstrap only.
func (m *MemManager) init(mem1 *SharedMem1, mem2 *SharedMem2) {
	InitHead(&mem1.FreeBufQueue)
	InitHead(&mem1.TracesEvtQueue)
	InitHead(&m.localFreeQueue)
	m.freeBufQueue = &mem1.FreeBufQueue

	mem1.MemManager = MemManagerTable{
		SpareBleBuffer: &mem2.BleSpareEvtBuf,
		SpareSysBuffer: &mem2.SysSpareEvtBuf,
		BlePool:        &mem2.EvtPool,
		BlePoolSize:    BlePoolSize,
		FreeBufQueue:   &mem1.FreeBufQueue,
	}
}

// release stages one consumed event buffer and arms the release channel.
// Task context; the stage list is also touched by the TX interrupt, so the
// insert runs with interrupts masked.
func (m *MemManager) release(db Doorbell, node *LinkedListNode) {
	state := disableInterrupts()
	InsertTail(&m.localFreeQueue, node)
	restoreInterrupts(state)

	db.SetTxEnabled(ChanMmReleaseBuf, true)
}

// freeBufHandler runs on the release-channel TX-free interrupt, meaning
// the coprocessor has fully drained the shared free queue. Move everything
// staged since, then ring the doorbell again if there is new work.
func (m *MemManager) freeBufHandler(db Doorbell) {
	db.SetTxEnabled(ChanMmReleaseBuf, false)

	moved := 0
	for !IsEmpty(&m.localFreeQueue) {
		InsertTail(m.freeBufQueue, RemoveHead(&m.localFreeQueue))
		moved++
	}
	if moved > 0 {
		db.SetTxFlag(ChanMmReleaseBuf)
	}
}
