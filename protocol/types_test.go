package protocol

import (
	"strconv"
	"testing"
)

func TestClampPlayMode(t *testing.T) {
	tests := []struct {
		in   PlayMode
		want PlayMode
	}{
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: 2, want: 2},
		{in: 3, want: 3},
		{in: 4, want: 0},
		{in: 7, want: 0},
		{in: -1, want: 0},
		{in: -100, want: 0},
	}

	for _, tt := range tests {
		if got := ClampPlayMode(tt.in); got != tt.want {
			t.Errorf("ClampPlayMode(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 0, want: 0},
		{in: 15, want: 15},
		{in: 30, want: 30},
		{in: 31, want: 30},
		{in: 45, want: 30},
		{in: -1, want: 0},
		{in: -5, want: 0},
	}

	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParsePlayMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PlayMode
		wantErr bool
	}{
		{in: "single", want: PlayModeSingleNoLoop},
		{in: "single-loop", want: PlayModeSingleLoop},
		{in: "all-loop", want: PlayModeAllLoop},
		{in: "random", want: PlayModeRandom},
		{in: "2", want: PlayModeAllLoop},
		{in: "9", want: 9},
		{in: "3x", wantErr: true},
		{in: "shuffle", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePlayMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePlayMode(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePlayMode(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlayMode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPlayModeString(t *testing.T) {
	if PlayModeRandom.String() != "random" {
		t.Errorf("PlayModeRandom.String() = %q", PlayModeRandom.String())
	}
	if PlayMode(9).String() != "PlayMode(9)" {
		t.Errorf("PlayMode(9).String() = %q", PlayMode(9).String())
	}
}

func TestZeroPad(t *testing.T) {
	for n := 0; n <= MaxTrackName; n++ {
		s := ZeroPad(uint16(n))
		if len(s) != TrackNameDigits {
			t.Fatalf("ZeroPad(%d) = %q, want %d characters", n, s, TrackNameDigits)
		}
		v, err := strconv.Atoi(s)
		if err != nil || v != n {
			t.Fatalf("ZeroPad(%d) = %q does not round-trip", n, s)
		}
	}
}

func TestZeroPadDoesNotTruncate(t *testing.T) {
	tests := map[uint16]string{
		7:     "0007",
		42:    "0042",
		10000: "10000",
		65535: "65535",
	}

	for n, want := range tests {
		if got := ZeroPad(n); got != want {
			t.Errorf("ZeroPad(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTrackNameBytes(t *testing.T) {
	got := TrackNameBytes(7)
	want := []byte{0x30, 0x30, 0x30, 0x37}
	if string(got) != string(want) {
		t.Errorf("TrackNameBytes(7) = % X, want % X", got, want)
	}
}
