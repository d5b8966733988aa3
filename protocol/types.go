package protocol

import (
	"fmt"
	"strconv"
)

// PlayMode selects how the device advances between tracks.
type PlayMode int

const (
	// PlayModeSingleNoLoop plays the selected track once
	PlayModeSingleNoLoop PlayMode = 0

	// PlayModeSingleLoop repeats the selected track
	PlayModeSingleLoop PlayMode = 1

	// PlayModeAllLoop plays every track and starts over
	PlayModeAllLoop PlayMode = 2

	// PlayModeRandom plays tracks in random order
	PlayModeRandom PlayMode = 3
)

// Valid reports whether m is one of the modes the device understands.
func (m PlayMode) Valid() bool {
	return m >= PlayModeSingleNoLoop && m <= PlayModeRandom
}

func (m PlayMode) String() string {
	switch m {
	case PlayModeSingleNoLoop:
		return "single"
	case PlayModeSingleLoop:
		return "single-loop"
	case PlayModeAllLoop:
		return "all-loop"
	case PlayModeRandom:
		return "random"
	default:
		return fmt.Sprintf("PlayMode(%d)", int(m))
	}
}

// ParsePlayMode maps a mode name (as returned by String) or its numeric
// value to a PlayMode.
func ParsePlayMode(s string) (PlayMode, error) {
	for m := PlayModeSingleNoLoop; m <= PlayModeRandom; m++ {
		if s == m.String() {
			return m, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown play mode %q", s)
	}
	return PlayMode(n), nil
}

// ClampPlayMode returns m if it is valid and PlayModeSingleNoLoop otherwise.
// Out-of-range modes fall back to the default rather than the nearest bound.
func ClampPlayMode(m PlayMode) PlayMode {
	if !m.Valid() {
		return PlayModeSingleNoLoop
	}
	return m
}

// ClampVolume limits v to [MinVolume, MaxVolume].
func ClampVolume(v int) int {
	return min(max(v, MinVolume), MaxVolume)
}
