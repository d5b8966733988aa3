package protocol

import (
	"strconv"
	"strings"
)

// ZeroPad left-pads the decimal form of n with '0' up to TrackNameDigits
// characters. Numbers that already have more digits are returned unchanged.
//
// Example:
//
//	protocol.ZeroPad(7)     // "0007"
//	protocol.ZeroPad(12345) // "12345"
func ZeroPad(n uint16) string {
	s := strconv.FormatUint(uint64(n), 10)
	if len(s) >= TrackNameDigits {
		return s
	}
	return strings.Repeat("0", TrackNameDigits-len(s)) + s
}

// TrackNameBytes returns the character codes of ZeroPad(n), one data byte
// per digit, as sent by the play-by-name command.
func TrackNameBytes(n uint16) []byte {
	return []byte(ZeroPad(n))
}
