package protocol

import "fmt"

// BuildFrame wraps a command in a WT2003S frame.
//
// Frame structure:
//
//	[START][LEN][CMD][DATA...][CHECKSUM][END]
//
// The length byte is written as given; its consistency with len(data) is
// the caller's responsibility. The checksum is the low byte of the sum of
// LEN, CMD and DATA.
func BuildFrame(length, opcode byte, data ...byte) []byte {
	frame := make([]byte, 0, MinFrameSize+len(data))

	// Start code
	frame = append(frame, StartCode)

	// Length, command, data
	frame = append(frame, length, opcode)
	frame = append(frame, data...)

	// Checksum over everything after START
	frame = append(frame, Checksum(frame[1:]))

	// End code
	frame = append(frame, EndCode)

	return frame
}

// BuildPlayByNameCmd constructs a Play By Name command frame for the file
// named ZeroPad(track)+".mp3" in the root directory.
//
// Frame structure:
//
//	[START][0x07][0xA3][D0][D1][D2][D3][CHECKSUM][END]
//
// D0..D3 are the ASCII codes of the four digits. Tracks above MaxTrackName
// cannot be expressed in four digits and are rejected.
func BuildPlayByNameCmd(track uint16) ([]byte, error) {
	if track > MaxTrackName {
		return nil, fmt.Errorf("track %d exceeds maximum %d for name addressing", track, MaxTrackName)
	}

	return BuildFrame(LenPlayByName, CmdPlayByName, TrackNameBytes(track)...), nil
}

// BuildPlayByIndexCmd constructs a Play By Index command frame.
//
// Frame structure:
//
//	[START][0x05][0xA2][INDEX_H][INDEX_L][CHECKSUM][END]
func BuildPlayByIndexCmd(index uint16) ([]byte, error) {
	return BuildFrame(LenPlayByIndex, CmdPlayByIndex, byte(index>>8), byte(index)), nil
}

// BuildStopCmd constructs a Stop command frame.
//
// Frame structure:
//
//	[START][0x03][0xAB][CHECKSUM][END]
func BuildStopCmd() ([]byte, error) {
	return BuildFrame(LenNoData, CmdStop), nil
}

// BuildNextCmd constructs a Next Track command frame.
func BuildNextCmd() ([]byte, error) {
	return BuildFrame(LenNoData, CmdNext), nil
}

// BuildPreviousCmd constructs a Previous Track command frame.
func BuildPreviousCmd() ([]byte, error) {
	return BuildFrame(LenNoData, CmdPrevious), nil
}

// BuildSetPlayModeCmd constructs a Set Play Mode command frame.
//
// Frame structure:
//
//	[START][0x04][0xAF][MODE][CHECKSUM][END]
//
// Use ClampPlayMode first for the lenient behaviour.
func BuildSetPlayModeCmd(mode PlayMode) ([]byte, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("play mode %d out of range %d-%d", int(mode), PlayModeSingleNoLoop, PlayModeRandom)
	}

	return BuildFrame(LenSetPlayMode, CmdSetPlayMode, byte(mode)), nil
}

// BuildSetVolumeCmd constructs a Set Volume command frame.
//
// Frame structure:
//
//	[START][0x04][0xAE][VOLUME][CHECKSUM][END]
//
// Use ClampVolume first for the lenient behaviour.
func BuildSetVolumeCmd(volume int) ([]byte, error) {
	if volume < MinVolume || volume > MaxVolume {
		return nil, fmt.Errorf("volume %d out of range %d-%d", volume, MinVolume, MaxVolume)
	}

	return BuildFrame(LenSetVolume, CmdSetVolume, byte(volume)), nil
}

// BuildQueryTrackCountCmd constructs a Query Track Count command frame.
// The device answers with TrackCountResponseSize raw bytes, see
// ParseTrackCountResponse.
//
// Frame structure:
//
//	[START][0x03][0xC5][CHECKSUM][END]
func BuildQueryTrackCountCmd() ([]byte, error) {
	return BuildFrame(LenQueryTrackCount, CmdQueryTrackCount), nil
}
