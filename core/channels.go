package core

// Channel identifies one doorbell notification line. The doorbell hardware
// carries a single edge-triggered bit per channel and direction; payload
// always lives in the pre-agreed shared buffers and queues.
type Channel uint8

const (
	Channel1 Channel = 1
	Channel2 Channel = 2
	Channel3 Channel = 3
	Channel4 Channel = 4
	Channel5 Channel = 5
	Channel6 Channel = 6

	// NumChannels is the number of doorbell lines per direction.
	NumChannels = 6
)

// Channel roles, application core to coprocessor. The assignment is a
// protocol constant shared with the coprocessor firmware.
const (
	ChanBleCmd         = Channel1
	ChanSysCmdRsp      = Channel2
	ChanThreadOtCmdRsp = Channel3
	ChanMacCmdRsp      = Channel3 // reserved, shares the Thread channel
	ChanMmReleaseBuf   = Channel4
	ChanThreadCliCmd   = Channel5 // reserved
	ChanHciAclData     = Channel6
)

// Channel roles, coprocessor to application core.
const (
	ChanBleEvent       = Channel1
	ChanSysEvent       = Channel2
	ChanThreadNotifAck = Channel3
	ChanMacNotifAck    = Channel3 // reserved, shares the Thread channel
	ChanTraces         = Channel4
	ChanThreadCliAck   = Channel5
)

// Doorbell is the notification peripheral as seen from the application
// core. The platform layer implements it over the real hardware; tests use
// an in-memory fake.
//
// RX primitives act on coprocessor-to-application channels, TX primitives
// on application-to-coprocessor channels. A TX channel reads as pending
// once the coprocessor has consumed the flag and the TX-free interrupt is
// enabled.
type Doorbell interface {
	IsRxPending(ch Channel) bool
	IsTxPending(ch Channel) bool

	SetRxEnabled(ch Channel, enabled bool)
	SetTxEnabled(ch Channel, enabled bool)

	ClearRxFlag(ch Channel)
	SetTxFlag(ch Channel)
}
