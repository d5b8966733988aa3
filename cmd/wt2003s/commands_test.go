package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moffa90/go-wt2003s/internal/config"
	"github.com/moffa90/go-wt2003s/player"
)

// fakeChip records frames and replays a fixed response.
type fakeChip struct {
	frames [][]byte
	reply  []byte
}

func (f *fakeChip) Write(p []byte) (int, error) {
	f.frames = append(f.frames, append([]byte(nil), p...))
	return len(p), nil
}

func (f *fakeChip) Read(p []byte) (int, error) {
	n := copy(p, f.reply)
	f.reply = f.reply[n:]
	return n, nil
}

func newTestApp(chip *fakeChip) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	p := player.New(nil, player.WithSleep(func(time.Duration) {}))
	return &app{
		player:  p,
		out:     &out,
		connect: func() error { return p.Bind(chip) },
	}, &out
}

func TestExecuteFrames(t *testing.T) {
	tests := []struct {
		args []string
		want []byte
		out  string
	}{
		{[]string{"stop"}, []byte{0x7E, 0x03, 0xAB, 0xAE, 0xEF}, ""},
		{[]string{"next"}, []byte{0x7E, 0x03, 0xAC, 0xAF, 0xEF}, ""},
		{[]string{"prev"}, []byte{0x7E, 0x03, 0xAD, 0xB0, 0xEF}, ""},
		{[]string{"play", "300"}, []byte{0x7E, 0x05, 0xA2, 0x01, 0x2C, 0xD4, 0xEF}, "playing index 300\n"},
		{[]string{"play-name", "7"}, []byte{0x7E, 0x07, 0xA3, 0x30, 0x30, 0x30, 0x37, 0x71, 0xEF}, "playing 0007.mp3\n"},
		{[]string{"volume", "20"}, []byte{0x7E, 0x04, 0xAE, 0x14, 0xC6, 0xEF}, ""},
		{[]string{"volume", "99"}, []byte{0x7E, 0x04, 0xAE, 0x1E, 0xD0, 0xEF}, ""},
		{[]string{"mode", "all-loop"}, []byte{0x7E, 0x04, 0xAF, 0x02, 0xB5, 0xEF}, ""},
		{[]string{"MODE", "3"}, []byte{0x7E, 0x04, 0xAF, 0x03, 0xB6, 0xEF}, ""},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			chip := &fakeChip{}
			a, out := newTestApp(chip)

			require.NoError(t, a.execute(context.Background(), tt.args))
			require.Len(t, chip.frames, 1)
			assert.Equal(t, tt.want, chip.frames[0])
			assert.Equal(t, tt.out, out.String())
		})
	}
}

func TestExecuteCount(t *testing.T) {
	chip := &fakeChip{reply: []byte{0xC5, 0x01, 0x2C}}
	a, out := newTestApp(chip)

	require.NoError(t, a.execute(context.Background(), []string{"count"}))
	assert.Equal(t, "300\n", out.String())
	assert.Equal(t, []byte{0x7E, 0x03, 0xC5, 0xC8, 0xEF}, chip.frames[0])
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"empty", nil, "no command given"},
		{"unknown", []string{"rewind"}, `unknown command "rewind"`},
		{"missing arg", []string{"play"}, "usage: play N"},
		{"extra arg", []string{"stop", "now"}, "usage: stop"},
		{"bad track", []string{"play", "-1"}, `invalid track "-1"`},
		{"track overflow", []string{"play", "70000"}, "must be 0-65535"},
		{"name overflow", []string{"play-name", "10000"}, "track 10000 is out of range"},
		{"bad volume", []string{"volume", "loud"}, `invalid volume "loud"`},
		{"bad mode", []string{"mode", "shuffle"}, "shuffle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chip := &fakeChip{}
			a, _ := newTestApp(chip)

			err := a.execute(context.Background(), tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, chip.frames)
		})
	}
}

func TestExecuteConnectsOnce(t *testing.T) {
	chip := &fakeChip{}
	a, _ := newTestApp(chip)
	connects := 0
	bind := a.connect
	a.connect = func() error {
		connects++
		return bind()
	}

	ctx := context.Background()
	require.NoError(t, a.execute(ctx, []string{"stop"}))
	require.NoError(t, a.execute(ctx, []string{"next"}))
	assert.Equal(t, 1, connects)
	assert.Len(t, chip.frames, 2)
}

func TestExecuteConnectError(t *testing.T) {
	a, _ := newTestApp(&fakeChip{})
	a.connect = func() error { return errors.New("no such port") }

	err := a.execute(context.Background(), []string{"stop"})
	assert.EqualError(t, err, "no such port")
}

func TestExecuteWithoutConnector(t *testing.T) {
	a, _ := newTestApp(&fakeChip{})
	a.connect = nil

	err := a.execute(context.Background(), []string{"stop"})
	assert.ErrorIs(t, err, player.ErrNotInitialized)
}

func TestShell(t *testing.T) {
	chip := &fakeChip{reply: []byte{0xC5, 0x00, 0x05}}
	a, out := newTestApp(chip)

	in := strings.NewReader("stop\n\nvolume 40\nbogus\ncount\nshell\nquit\nnext\n")
	require.NoError(t, a.shell(context.Background(), in))

	require.Len(t, chip.frames, 3)
	assert.Equal(t, byte(0xAB), chip.frames[0][2])
	assert.Equal(t, byte(0xAE), chip.frames[1][2])
	assert.Equal(t, byte(0x1E), chip.frames[1][3])
	assert.Equal(t, byte(0xC5), chip.frames[2][2])

	s := out.String()
	assert.Contains(t, s, `error: unknown command "bogus"`)
	assert.Contains(t, s, "5\n")
	assert.Contains(t, s, "error: already in shell")
}

func TestShellHelp(t *testing.T) {
	a, out := newTestApp(&fakeChip{})

	require.NoError(t, a.shell(context.Background(), strings.NewReader("help\n")))
	assert.Contains(t, out.String(), "play-name N")
	assert.Contains(t, out.String(), "catalog DIR")
}

func TestShellCancelled(t *testing.T) {
	chip := &fakeChip{}
	a, _ := newTestApp(chip)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.shell(ctx, strings.NewReader("stop\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, chip.frames)
}

func TestCatalogCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001.mp3"), []byte("not audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0003.mp3"), []byte("not audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	chip := &fakeChip{}
	a, out := newTestApp(chip)
	a.connect = func() error { t.Fatal("catalog must not open the serial port"); return nil }

	require.NoError(t, a.execute(context.Background(), []string{"catalog", dir}))

	s := out.String()
	assert.Contains(t, s, "TRACK")
	assert.Contains(t, s, "0001.mp3")
	assert.Contains(t, s, "0003.mp3")
	assert.Contains(t, s, "2 tracks")
	assert.Contains(t, s, "gaps: [2]")
	assert.Contains(t, s, "skipped: notes.txt")
}

func TestCatalogCommandMissingDir(t *testing.T) {
	a, _ := newTestApp(&fakeChip{})

	err := a.execute(context.Background(), []string{"catalog", filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}

func TestPortsCommand(t *testing.T) {
	a, out := newTestApp(&fakeChip{})
	a.listPorts = func() ([]string, error) { return []string{"/dev/ttyUSB0", "/dev/ttyS0"}, nil }

	require.NoError(t, a.execute(context.Background(), []string{"ports"}))
	assert.Equal(t, "/dev/ttyUSB0\n/dev/ttyS0\n", out.String())

	out.Reset()
	a.listPorts = func() ([]string, error) { return nil, nil }
	require.NoError(t, a.execute(context.Background(), []string{"ports"}))
	assert.Equal(t, "no serial ports found\n", out.String())
}

func TestConfigCommand(t *testing.T) {
	a, out := newTestApp(&fakeChip{})

	err := a.execute(context.Background(), []string{"config"})
	assert.EqualError(t, err, "no configuration loaded")

	a.cfg = &config.Config{
		Serial: config.SerialConfig{Port: "/dev/ttyUSB0", BaudRate: 9600},
		Player: config.PlayerConfig{SettleDelay: 200 * time.Millisecond},
	}
	require.NoError(t, a.execute(context.Background(), []string{"config"}))
	assert.Contains(t, out.String(), "port: /dev/ttyUSB0")
	assert.Contains(t, out.String(), "settleDelay: 200ms")
}

func TestPlayerOptionsStrictParams(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		wantErr bool
		volume  byte
	}{
		{"clamp", false, false, 0x1E},
		{"strict", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Player: config.PlayerConfig{StrictParams: tt.strict}}
			chip := &fakeChip{}
			opts := append(playerOptions(cfg, zap.NewNop(), nil), player.WithSleep(func(time.Duration) {}))
			p := player.New(chip, opts...)

			err := p.SetVolume(context.Background(), 99)
			if tt.wantErr {
				var rangeErr *player.ParamOutOfRangeError
				require.True(t, errors.As(err, &rangeErr))
				assert.Empty(t, chip.frames)
				return
			}
			require.NoError(t, err)
			require.Len(t, chip.frames, 1)
			assert.Equal(t, tt.volume, chip.frames[0][3])
		})
	}
}
