package protocol

import "encoding/binary"

// ParseTrackCountResponse parses the raw Query Track Count response.
//
// Data format (TrackCountResponseSize bytes):
//
//	[ANY][COUNT_H][COUNT_L]
//
// No framing markers or checksum are checked; only the size is.
func ParseTrackCountResponse(data []byte) (uint16, error) {
	if len(data) != TrackCountResponseSize {
		return 0, &ResponseError{
			Operation: "query track count",
			Got:       len(data),
			Want:      TrackCountResponseSize,
		}
	}

	return binary.BigEndian.Uint16(data[1:3]), nil
}
