package transport

// FwInfo is the unpacked wireless firmware identity published by the
// coprocessor in the device-info table.
//
// Version word layout:
//
//	[24:31] version major
//	[16:23] version minor
//	[8:15]  subversion
//	[4:7]   branch (0 = mass market)
//	[0:3]   build (0 = untracked, 15 = released)
//
// Memory-size word layout:
//
//	[24:31] SRAM2a size, 1 KB units
//	[16:23] SRAM2b size, 1 KB units
//	[8:15]  reserved
//	[0:7]   flash size, 4 KB sectors
type FwInfo struct {
	VersionMajor uint8
	VersionMinor uint8
	SubVersion   uint8
	Branch       uint8 // 4-bit field
	Build        uint8 // 4-bit field

	FlashSize  uint8 // number of 4 KB sectors
	SRAM2aSize uint8 // number of 1 KB sectors
	SRAM2bSize uint8 // number of 1 KB sectors
}

// DecodeFwInfo unpacks the two firmware-info words. Both words must be read
// from shared memory as whole 32-bit values to avoid tearing.
func DecodeFwInfo(version, memorySize uint32) FwInfo {
	return FwInfo{
		VersionMajor: uint8(version >> 24),
		VersionMinor: uint8(version >> 16),
		SubVersion:   uint8(version >> 8),
		Branch:       uint8(version>>4) & 0x0F,
		Build:        uint8(version) & 0x0F,
		FlashSize:    uint8(memorySize),
		SRAM2aSize:   uint8(memorySize >> 24),
		SRAM2bSize:   uint8(memorySize >> 16),
	}
}

// Encode packs i back into the two firmware-info words.
func (i FwInfo) Encode() (version, memorySize uint32) {
	version = uint32(i.VersionMajor)<<24 |
		uint32(i.VersionMinor)<<16 |
		uint32(i.SubVersion)<<8 |
		uint32(i.Branch&0x0F)<<4 |
		uint32(i.Build&0x0F)
	memorySize = uint32(i.SRAM2aSize)<<24 |
		uint32(i.SRAM2bSize)<<16 |
		uint32(i.FlashSize)
	return version, memorySize
}
