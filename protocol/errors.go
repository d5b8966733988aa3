package protocol

import (
	"errors"
	"fmt"
)

// ResponseError indicates the device answered with fewer (or more) bytes
// than the command's response size.
type ResponseError struct {
	// Operation is the command whose response was malformed
	Operation string

	// Got is the number of bytes received
	Got int

	// Want is the expected response size
	Want int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: got %d bytes, expected %d", e.Operation, e.Got, e.Want)
}

// IsResponseError returns true if err is or wraps a ResponseError.
func IsResponseError(err error) bool {
	var re *ResponseError
	return errors.As(err, &re)
}

// CommandName returns a human-readable name for an opcode.
func CommandName(opcode byte) string {
	switch opcode {
	case CmdPlayByName:
		return "play by name"
	case CmdPlayByIndex:
		return "play by index"
	case CmdStop:
		return "stop"
	case CmdNext:
		return "next"
	case CmdPrevious:
		return "previous"
	case CmdSetVolume:
		return "set volume"
	case CmdSetPlayMode:
		return "set play mode"
	case CmdQueryTrackCount:
		return "query track count"
	default:
		return fmt.Sprintf("unknown command 0x%02X", opcode)
	}
}
