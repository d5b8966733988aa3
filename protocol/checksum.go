package protocol

// Checksum computes the 8-bit frame checksum over the length, command and
// data bytes (everything between START and the checksum slot).
//
// The sum is accumulated as an int and only the low byte is kept.
func Checksum(region []byte) byte {
	sum := 0
	for _, b := range region {
		sum += int(b)
	}
	return byte(sum & 0xFF)
}

// VerifyFrame reports whether frame is well formed: correct markers, a length
// byte that matches the frame size and a matching checksum.
//
// The device never sends framed responses; this is used by simulators and
// tests that inspect outbound frames.
func VerifyFrame(frame []byte) bool {
	if len(frame) < MinFrameSize {
		return false
	}
	if frame[0] != StartCode || frame[len(frame)-1] != EndCode {
		return false
	}
	if int(frame[1]) != len(frame)-2 {
		return false
	}
	return Checksum(frame[1:len(frame)-2]) == frame[len(frame)-2]
}
