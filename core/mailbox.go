package core

import "wblink/transport"

// Config carries the application hooks. All fields are optional.
type Config struct {
	// Log receives debug lines. Nil means no output; firmware targets
	// typically point this at a UART writer.
	Log func(string)

	// OnCmdResponse receives the decoded command-complete record for each
	// system command. Whether responses should instead flow through the
	// event ring is policy this layer does not fix; the default just logs.
	OnCmdResponse func(transport.CmdComplete)

	// OnFatal receives unrecoverable transport errors, such as an event
	// ring overflow. The default panics: losing an event would corrupt
	// the ordering contract the ring exists to preserve.
	OnFatal func(error)
}

// Mailbox is the composition root of the transport. It owns the system
// channel state, the memory manager and the application-facing event ring,
// and demultiplexes doorbell interrupts to the owning handler.
//
// A Mailbox only exists after Init has published the reference table, so
// channel operations cannot run before bootstrap completes.
type Mailbox struct {
	ref  *RefTable
	mem1 *SharedMem1
	mem2 *SharedMem2
	db   Doorbell
	cfg  Config

	sys  sysChannel
	mm   MemManager
	ring EvtRing

	rxAnomalies uint32
	txAnomalies uint32
}

// Init establishes the cross-core contract: zero every sub-table and
// shared buffer, wire the sub-table addresses into the reference table,
// then arm the system channel. The caller must release the coprocessor
// from reset only after Init returns; the reference table address itself
// is the single constant both firmware images hard-code.
func Init(ref *RefTable, mem1 *SharedMem1, mem2 *SharedMem2, db Doorbell, cfg Config) *Mailbox {
	*mem1 = SharedMem1{}
	*mem2 = SharedMem2{}

	*ref = RefTable{
		DeviceInfo: &mem1.DeviceInfo,
		Ble:        &mem1.Ble,
		Thread:     &mem1.Thread,
		Sys:        &mem1.Sys,
		MemManager: &mem1.MemManager,
		Traces:     &mem1.Traces,
		Mac802154:  &mem1.Mac802154,
	}

	mb := &Mailbox{ref: ref, mem1: mem1, mem2: mem2, db: db, cfg: cfg}
	mb.mm.init(mem1, mem2)
	mb.sys.init(db, mem1, mem2)
	return mb
}

// route binds one doorbell channel to its handler. A nil handler marks a
// channel that is understood but not serviced yet; a pending bit on any
// channel outside the table is protocol drift and is counted as an
// anomaly instead.
type route struct {
	ch     Channel
	name   string
	handle func(*Mailbox)
}

// rxRoutes lists coprocessor-to-core channels in service priority order.
var rxRoutes = [...]route{
	{ChanSysEvent, "sys-event", (*Mailbox).handleSysEvent},
	{ChanThreadNotifAck, "thread-notif-ack", nil},
	{ChanBleEvent, "ble-event", nil},
	{ChanTraces, "traces", nil},
	{ChanThreadCliAck, "thread-cli-ack", nil},
}

// txRoutes lists core-to-coprocessor channels in service priority order.
var txRoutes = [...]route{
	{ChanSysCmdRsp, "sys-cmd-rsp", (*Mailbox).handleSysCmdRsp},
	{ChanThreadOtCmdRsp, "thread-ot-cmd-rsp", nil},
	{ChanMmReleaseBuf, "mm-release", (*Mailbox).handleMmRelease},
	{ChanHciAclData, "hci-acl-data", nil},
	{ChanBleCmd, "ble-cmd", nil},
	{ChanThreadCliCmd, "thread-cli-cmd", nil},
}

// OnRxInterrupt services the highest-priority pending RX channel. Invoked
// from the platform's RX doorbell interrupt; channels left pending simply
// retrigger it.
func (mb *Mailbox) OnRxInterrupt() {
	for _, r := range rxRoutes {
		if !mb.db.IsRxPending(r.ch) {
			continue
		}
		if r.handle == nil {
			mb.log("rx inert channel: " + r.name)
			return
		}
		r.handle(mb)
		return
	}
	mb.rxAnomalies += mb.noteAnomalies("rx", mb.db.IsRxPending)
}

// OnTxInterrupt services the highest-priority pending TX-free channel.
func (mb *Mailbox) OnTxInterrupt() {
	for _, r := range txRoutes {
		if !mb.db.IsTxPending(r.ch) {
			continue
		}
		if r.handle == nil {
			mb.log("tx inert channel: " + r.name)
			return
		}
		r.handle(mb)
		return
	}
	mb.txAnomalies += mb.noteAnomalies("tx", mb.db.IsTxPending)
}

// noteAnomalies flags doorbell bits with no route as protocol drift. It
// runs only when no routed channel was pending, so anything pending here
// is unrecognized by construction.
func (mb *Mailbox) noteAnomalies(dir string, pending func(Channel) bool) uint32 {
	var n uint32
	for ch := Channel1; ch <= Channel(NumChannels); ch++ {
		if !pending(ch) {
			continue
		}
		n++
		mb.log(dir + " anomaly: unrecognized doorbell channel " + itoa(int(ch)))
	}
	return n
}

func (mb *Mailbox) handleSysEvent() {
	if err := mb.sys.evtHandler(mb.db, &mb.ring); err != nil {
		mb.fatal(err)
	}
}

func (mb *Mailbox) handleSysCmdRsp() {
	cc, err := mb.sys.cmdRspHandler(mb.db)
	if err != nil {
		mb.log("sys response decode failed: " + err.Error())
		return
	}
	if mb.cfg.OnCmdResponse != nil {
		mb.cfg.OnCmdResponse(cc)
		return
	}
	mb.log("sys command complete: code=" + utoa(uint32(cc.CmdCode)) +
		" status=" + utoa(uint32(cc.Status)))
}

func (mb *Mailbox) handleMmRelease() {
	mb.mm.freeBufHandler(mb.db)
}

// SendSysCommand writes one command into the shared system buffer and
// rings the doorbell. The response arrives through OnTxInterrupt and is
// delivered to Config.OnCmdResponse.
func (mb *Mailbox) SendSysCommand(code uint16, payload []byte) error {
	return mb.sys.sendCommand(mb.db, code, payload)
}

// DequeueEvent pops the oldest undelivered event, or reports false on an
// empty ring. Task context; never blocks, never masks interrupts.
func (mb *Mailbox) DequeueEvent() (EvtBox, bool) {
	return mb.ring.Pop()
}

// ReleaseEvent returns a consumed event's buffer to the coprocessor pool.
// The box is invalidated; releasing an invalid box is a no-op.
func (mb *Mailbox) ReleaseEvent(box *EvtBox) {
	node := box.take()
	if node == nil {
		return
	}
	mb.mm.release(mb.db, node)
}

// WirelessFwInfo reads the firmware identity the coprocessor publishes in
// the device-info sub-table. It reports false until the coprocessor has
// booted and filled the table; a zero version word means not ready, not an
// error.
func (mb *Mailbox) WirelessFwInfo() (transport.FwInfo, bool) {
	info := &mb.ref.DeviceInfo.WirelessFwInfo
	version := info.Version
	if version == 0 {
		return transport.FwInfo{}, false
	}
	return transport.DecodeFwInfo(version, info.MemorySize), true
}

// Anomalies returns the count of unrecognized doorbell bits seen on each
// direction since Init.
func (mb *Mailbox) Anomalies() (rx, tx uint32) {
	return mb.rxAnomalies, mb.txAnomalies
}

func (mb *Mailbox) log(msg string) {
	if mb.cfg.Log != nil {
		mb.cfg.Log(msg)
	}
}

func (mb *Mailbox) fatal(err error) {
	if mb.cfg.OnFatal != nil {
		mb.cfg.OnFatal(err)
		return
	}
	panic(err)
}
