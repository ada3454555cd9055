package core

import "wblink/transport"

// Shared-memory sizing. The BLE event pool must hold enough asynchronous
// events to cover the window between a command and its completion; each
// pool entry is rounded up to a 4-byte boundary so the coprocessor can
// carve the pool into aligned buffers.
const (
	BleEvtQueueLength       = 5
	BleMostEventPayloadSize = 255
	BleEventFrameSize       = transport.EvtHeaderSize + BleMostEventPayloadSize

	BlePoolSize = BleEvtQueueLength * 4 *
		((transport.PacketHeaderSize + BleEventFrameSize + 3) / 4)

	CsBufferSize = transport.PacketHeaderSize + transport.EvtHeaderSize + transport.CmdStatusSize
)

// EvtBuffer is one event buffer as laid out in shared memory: the intrusive
// queue node followed by the serialized event frame.
type EvtBuffer struct {
	Node  LinkedListNode
	Frame [BleEventFrameSize]byte
}

// CmdPacket is the shared command buffer layout: queue node followed by the
// serialized command frame. On the system channel the same bytes are
// overwritten with the response event frame once the command completes.
type CmdPacket struct {
	Header LinkedListNode
	Serial [transport.CmdHeaderSize + transport.MaxPayloadSize]byte
}

// SafeBootInfoTable mirrors the coprocessor's safe-boot descriptor.
type SafeBootInfoTable struct {
	Version uint32
}

// RssInfoTable mirrors the read-only security subsystem descriptor.
type RssInfoTable struct {
	Version    uint32
	MemorySize uint32
	RssInfo    uint32
}

// WirelessFwInfoTable is written by the coprocessor once its firmware has
// booted. Version stays zero until then; both words must be accessed as
// whole 32-bit values. Use transport.DecodeFwInfo to unpack them.
type WirelessFwInfoTable struct {
	Version    uint32
	MemorySize uint32
	ThreadInfo uint32
	BleInfo    uint32
}

// DeviceInfoTable groups the identity records the coprocessor fills in at
// boot.
type DeviceInfoTable struct {
	SafeBoot       SafeBootInfoTable
	RssInfo        RssInfoTable
	WirelessFwInfo WirelessFwInfoTable
}

// BleTable advertises the BLE channel buffers.
type BleTable struct {
	CmdBuffer        *CmdPacket
	CsBuffer         *[CsBufferSize]byte
	EvtQueue         *LinkedListNode
	HciAclDataBuffer *EvtBuffer
}

// ThreadTable advertises the Thread stack buffers.
type ThreadTable struct {
	NoStackBuffer   *EvtBuffer
	CliCmdRspBuffer *CmdPacket
	OtCmdRspBuffer  *CmdPacket
}

// SysTable advertises the system channel command buffer and event queue.
type SysTable struct {
	CmdBuffer *CmdPacket
	EvtQueue  *LinkedListNode
}

// MemManagerTable advertises the spare buffers, the BLE event pool and the
// free-buffer queue the coprocessor drains to reclaim released events.
type MemManagerTable struct {
	SpareBleBuffer *EvtBuffer
	SpareSysBuffer *EvtBuffer

	BlePool     *[BlePoolSize]byte
	BlePoolSize uint32

	FreeBufQueue *LinkedListNode

	TracesEvtPool     *byte
	TracesEvtPoolSize uint32
}

// TracesTable advertises the diagnostic trace queue.
type TracesTable struct {
	TracesQueue *LinkedListNode
}

// Mac802154Table advertises the 802.15.4 MAC buffers.
type Mac802154Table struct {
	CmdRspBuffer *CmdPacket
	NotAckBuffer *EvtBuffer
	EvtQueue     *LinkedListNode
}

// RefTable is the root discovery record. It lives at the one well-known
// address both firmware images hard-code, and holds the addresses of every
// sub-table. It is populated exactly once, before any channel is armed or
// the coprocessor is released from reset.
type RefTable struct {
	DeviceInfo *DeviceInfoTable
	Ble        *BleTable
	Thread     *ThreadTable
	Sys        *SysTable
	MemManager *MemManagerTable
	Traces     *TracesTable
	Mac802154  *Mac802154Table
}

// SharedMem1 aggregates the sub-tables and queue heads placed in the first
// shared SRAM bank. The platform layer pins an instance at the linker-fixed
// address; tests use an ordinary Go value.
type SharedMem1 struct {
	DeviceInfo DeviceInfoTable
	Ble        BleTable
	Thread     ThreadTable
	Sys        SysTable
	MemManager MemManagerTable
	Traces     TracesTable
	Mac802154  Mac802154Table

	FreeBufQueue   LinkedListNode
	TracesEvtQueue LinkedListNode
}

// SharedMem2 aggregates the buffers and queue heads placed in the second
// shared SRAM bank.
type SharedMem2 struct {
	CsBuffer    [CsBufferSize]byte
	EvtQueue    LinkedListNode
	SysEvtQueue LinkedListNode
	SysCmdBuf   CmdPacket

	EvtPool        [BlePoolSize]byte
	SysSpareEvtBuf EvtBuffer
	BleSpareEvtBuf EvtBuffer
}
