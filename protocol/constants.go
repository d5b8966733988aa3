package protocol

import "time"

// ProtocolVersion is the WT2003S datasheet revision implemented by this library.
const ProtocolVersion = "1.03"

// Frame structure constants per WT2003S datasheet.
const (
	// StartCode is the frame start marker (0x7E)
	StartCode = 0x7E

	// EndCode is the frame end marker (0xEF)
	EndCode = 0xEF

	// FrameOverhead is the number of bytes a frame adds around its
	// length/opcode/data region: START(1) + CHECKSUM(1) + END(1)
	FrameOverhead = 3

	// MinFrameSize is the size of a frame with no data bytes:
	// START(1) + LEN(1) + CMD(1) + CHECKSUM(1) + END(1)
	MinFrameSize = 5
)

// Command codes per WT2003S datasheet section 5.
const (
	// CmdPlayByName plays a file in the root directory by its 4-character name
	CmdPlayByName = 0xA3

	// CmdPlayByIndex plays a file in the root directory by its storage index
	CmdPlayByIndex = 0xA2

	// CmdStop stops playback
	CmdStop = 0xAB

	// CmdNext skips to the next track
	CmdNext = 0xAC

	// CmdPrevious returns to the previous track
	CmdPrevious = 0xAD

	// CmdSetVolume sets the output volume (0-30)
	CmdSetVolume = 0xAE

	// CmdSetPlayMode selects the playback mode
	CmdSetPlayMode = 0xAF

	// CmdQueryTrackCount asks for the number of tracks on the medium
	CmdQueryTrackCount = 0xC5
)

// Length bytes per command. The length counts itself, the command byte,
// the data bytes and the checksum.
const (
	LenPlayByName      = 0x07
	LenPlayByIndex     = 0x05
	LenNoData          = 0x03
	LenSetVolume       = 0x04
	LenSetPlayMode     = 0x04
	LenQueryTrackCount = LenNoData
)

// Parameter limits.
const (
	// MinVolume is the lowest accepted volume
	MinVolume = 0

	// MaxVolume is the highest accepted volume
	MaxVolume = 30

	// TrackNameDigits is the width of a zero-padded track name ("0007")
	TrackNameDigits = 4

	// MaxTrackName is the largest track number addressable by name
	MaxTrackName = 9999
)

// TrackCountResponseSize is the raw response size for CmdQueryTrackCount.
const TrackCountResponseSize = 3

// SettleDelay is how long the device needs after each command before it
// accepts the next one.
const SettleDelay = 200 * time.Millisecond
