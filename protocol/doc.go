// Package protocol implements the WT2003S MP3 decoder serial command protocol.
//
// This package provides functions to build command frames and parse the
// raw query responses according to the WT2003S-16S datasheet v1.03.
//
// # Protocol Overview
//
// Every command is a single frame written to the UART (9600 baud, 8N1):
//
//	Command: [START][LEN][CMD][DATA...][CHECKSUM][END]
//
// Where:
//   - START = Start code (0x7E)
//   - END = End code (0xEF)
//   - LEN = number of bytes from LEN through CHECKSUM
//   - CHECKSUM = low byte of LEN + CMD + DATA
//
// The device needs SettleDelay after every command before it will accept
// another one.
//
// # Command Builders
//
// Use the Build* functions to create command frames:
//
//	frame, err := protocol.BuildPlayByIndexCmd(300)
//	frame, err := protocol.BuildSetVolumeCmd(protocol.ClampVolume(v))
//	// ... etc
//
// BuildFrame is the primitive all of them share and may be used for
// commands this package does not wrap.
//
// # Responses
//
// Only the track count query produces a response: three raw bytes with the
// count big-endian at offset 1. ParseTrackCountResponse extracts it:
//
//	count, err := protocol.ParseTrackCountResponse(buf)
//
// A response of the wrong size yields a *ResponseError.
//
// # Reference
//
// WT2003S-16S Chip V1.03 datasheet (SparkFun mirror).
package protocol
