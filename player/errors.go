package player

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by every command issued before a transport
// has been bound with Bind or InitTransport, or after Close.
var ErrNotInitialized = errors.New("transport not initialized")

// ParamOutOfRangeError indicates a command parameter the device cannot
// accept. Mode and volume only produce it with WithStrictParams; by-name
// track numbers above protocol.MaxTrackName always do.
type ParamOutOfRangeError struct {
	Param string
	Value int
	Min   int
	Max   int
}

func (e *ParamOutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d is out of range: valid range is %d-%d",
		e.Param, e.Value, e.Min, e.Max)
}

// ShortWriteError indicates the transport accepted only part of a frame.
type ShortWriteError struct {
	Written int
	Want    int
}

func (e *ShortWriteError) Error() string {
	return fmt.Sprintf("short write: wrote %d of %d frame bytes", e.Written, e.Want)
}
