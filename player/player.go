package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/moffa90/go-wt2003s/protocol"
	"github.com/moffa90/go-wt2003s/transport"
)

// Player drives a WT2003S module over a serial link.
// Every command writes one frame and then blocks for the settle delay.
//
// Player is safe for concurrent use; command exchanges are serialized.
type Player struct {
	mu     sync.Mutex
	device io.ReadWriter
	config Config
}

// New creates a new Player bound to device with the given options.
// device may be nil; commands then fail with ErrNotInitialized until
// Bind or InitTransport is called.
//
// Example:
//
//	port, _ := transport.Open(transport.DefaultConfig("/dev/ttyUSB0"))
//	p := player.New(port,
//	    player.WithLogger(myLogger),
//	)
func New(device io.ReadWriter, opts ...Option) *Player {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Player{
		device: device,
		config: cfg,
	}
}

// Bind replaces the transport. A previously bound transport that
// implements io.Closer is closed first. Binding the same device again is
// a no-op. Binding nil unbinds.
func (p *Player) Bind(device io.ReadWriter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.bindLocked(device)
}

func (p *Player) bindLocked(device io.ReadWriter) error {
	if p.device == device {
		return nil
	}

	var closeErr error
	if c, ok := p.device.(io.Closer); ok {
		closeErr = c.Close()
	}
	p.device = device

	if closeErr != nil {
		p.logError("close previous transport", "error", closeErr)
		return fmt.Errorf("close previous transport: %w", closeErr)
	}
	return nil
}

// InitTransport opens the serial link described by cfg and binds it,
// replacing any previous binding. Serial ports are opened exclusively, so
// the current transport is closed before the new one is opened; calling
// InitTransport again on the same port with a new baud rate reconfigures
// it. If the open fails the player is left unbound.
//
// Example:
//
//	err := p.InitTransport(transport.Config{
//	    Port:     "/dev/ttyUSB0",
//	    BaudRate: transport.BaudRate9600,
//	})
func (p *Player) InitTransport(cfg transport.Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	closeErr := p.bindLocked(nil)

	device, err := p.config.Opener(cfg)
	if err != nil {
		p.logError("open transport", "transport", cfg.String(), "error", err)
		return fmt.Errorf("init transport: %w", err)
	}
	p.device = device
	p.logInfo("transport bound", "transport", cfg.String())

	if closeErr != nil {
		return fmt.Errorf("init transport: %w", closeErr)
	}
	return nil
}

// Close closes the bound transport (if it is an io.Closer) and unbinds it.
func (p *Player) Close() error {
	return p.Bind(nil)
}

// Bound reports whether a transport is bound.
func (p *Player) Bound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.device != nil
}

// PlayTrackByName plays the file named ZeroPad(track)+".mp3" in the root
// directory of the medium, e.g. 7 plays "0007.mp3".
// Tracks above protocol.MaxTrackName return a *ParamOutOfRangeError.
func (p *Player) PlayTrackByName(ctx context.Context, track uint16) error {
	if track > protocol.MaxTrackName {
		return p.rejectParam(protocol.CmdPlayByName, &ParamOutOfRangeError{
			Param: "track",
			Value: int(track),
			Min:   0,
			Max:   protocol.MaxTrackName,
		})
	}

	cmd, err := protocol.BuildPlayByNameCmd(track)
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// PlayTrack plays the file at the given storage index in the root directory.
func (p *Player) PlayTrack(ctx context.Context, index uint16) error {
	cmd, err := protocol.BuildPlayByIndexCmd(index)
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// Stop stops playback.
func (p *Player) Stop(ctx context.Context) error {
	cmd, err := protocol.BuildStopCmd()
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// Next skips to the next track.
func (p *Player) Next(ctx context.Context) error {
	cmd, err := protocol.BuildNextCmd()
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// Previous returns to the previous track.
func (p *Player) Previous(ctx context.Context) error {
	cmd, err := protocol.BuildPreviousCmd()
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// SetPlayMode selects the playback mode. Unknown modes fall back to
// protocol.PlayModeSingleNoLoop unless strict params are enabled.
func (p *Player) SetPlayMode(ctx context.Context, mode protocol.PlayMode) error {
	if !mode.Valid() {
		if p.config.StrictParams {
			return p.rejectParam(protocol.CmdSetPlayMode, &ParamOutOfRangeError{
				Param: "play mode",
				Value: int(mode),
				Min:   int(protocol.PlayModeSingleNoLoop),
				Max:   int(protocol.PlayModeRandom),
			})
		}
		p.logDebug("play mode clamped", "requested", int(mode), "sent", int(protocol.ClampPlayMode(mode)))
		mode = protocol.ClampPlayMode(mode)
	}

	cmd, err := protocol.BuildSetPlayModeCmd(mode)
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// SetVolume sets the output volume. Values outside 0-30 are clamped to the
// nearest bound unless strict params are enabled.
// The device can take more than 150ms to apply a volume change.
func (p *Player) SetVolume(ctx context.Context, volume int) error {
	if clamped := protocol.ClampVolume(volume); clamped != volume {
		if p.config.StrictParams {
			return p.rejectParam(protocol.CmdSetVolume, &ParamOutOfRangeError{
				Param: "volume",
				Value: volume,
				Min:   protocol.MinVolume,
				Max:   protocol.MaxVolume,
			})
		}
		p.logDebug("volume clamped", "requested", volume, "sent", clamped)
		volume = clamped
	}

	cmd, err := protocol.BuildSetVolumeCmd(volume)
	if err != nil {
		return err
	}

	return p.sendCommand(ctx, cmd)
}

// QueryTrackCount asks the device how many tracks the medium holds.
// A response shorter than protocol.TrackCountResponseSize yields a
// *protocol.ResponseError.
func (p *Player) QueryTrackCount(ctx context.Context) (uint16, error) {
	cmd, err := protocol.BuildQueryTrackCountCmd()
	if err != nil {
		return 0, err
	}

	response, err := p.sendCommandWithResponse(ctx, cmd, protocol.TrackCountResponseSize)
	if err != nil {
		return 0, err
	}

	count, err := protocol.ParseTrackCountResponse(response)
	if err != nil {
		p.recordFailure(protocol.CommandName(protocol.CmdQueryTrackCount))
		return 0, err
	}

	if p.config.Recorder != nil {
		p.config.Recorder.TrackCount(count)
	}
	p.logDebug("track count", "count", count)

	return count, nil
}

// SendFrame writes a prebuilt frame (see protocol.BuildFrame) and waits
// out the settle delay. It is meant for commands this package does not wrap.
func (p *Player) SendFrame(ctx context.Context, frame []byte) error {
	if len(frame) < protocol.MinFrameSize {
		return fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(frame), protocol.MinFrameSize)
	}

	return p.sendCommand(ctx, frame)
}

// sendCommand sends a command and expects no response.
func (p *Player) sendCommand(ctx context.Context, cmd []byte) error {
	_, err := p.exchange(ctx, cmd, 0)
	return err
}

// sendCommandWithResponse sends a command, waits out the settle delay and
// reads up to responseSize raw bytes.
func (p *Player) sendCommandWithResponse(ctx context.Context, cmd []byte, responseSize int) ([]byte, error) {
	return p.exchange(ctx, cmd, responseSize)
}

// exchange runs one transfer and reports it. The frame callback runs after
// the player lock is released.
func (p *Player) exchange(ctx context.Context, cmd []byte, responseSize int) ([]byte, error) {
	opcode := cmd[2]
	op := protocol.CommandName(opcode)

	response, settle, err := p.transfer(ctx, op, cmd, responseSize)
	if err != nil {
		p.recordFailure(op)
	}

	if p.config.FrameCallback != nil {
		p.config.FrameCallback(FrameEvent{
			Operation: op,
			Opcode:    opcode,
			Frame:     cmd,
			Response:  response,
			Settle:    settle,
			Err:       err,
		})
	}

	return response, err
}

// transfer performs one locked write/settle/read cycle.
func (p *Player) transfer(ctx context.Context, op string, cmd []byte, responseSize int) ([]byte, time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return nil, 0, ErrNotInitialized
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("cancelled: %w", err)
	}

	p.logDebug("send frame", "op", op, "opcode", fmt.Sprintf("0x%02X", cmd[2]), "frame", fmt.Sprintf("% X", cmd))

	n, err := p.device.Write(cmd)
	if err != nil {
		p.logError("write frame", "op", op, "error", err)
		return nil, 0, fmt.Errorf("write frame: %w", err)
	}
	if n != len(cmd) {
		return nil, 0, &ShortWriteError{Written: n, Want: len(cmd)}
	}
	if p.config.Recorder != nil {
		p.config.Recorder.FrameSent(op, len(cmd))
	}

	// The frame is on the wire; the device gets its settle time regardless
	// of ctx.
	settle := p.config.SettleDelay
	p.config.Sleep(settle)
	if p.config.Recorder != nil {
		p.config.Recorder.Settled(settle)
	}

	if responseSize == 0 {
		return nil, settle, nil
	}

	response, err := readResponse(p.device, responseSize)
	if err != nil {
		p.logError("read response", "op", op, "error", err)
		return response, settle, fmt.Errorf("read response: %w", err)
	}
	p.logDebug("response", "op", op, "bytes", fmt.Sprintf("% X", response))

	return response, settle, nil
}

// readResponse reads until size bytes arrived, the reader hits EOF, or a
// read returns nothing (serial read timeout). A short result is returned
// without error; callers validate the size.
func readResponse(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size)
	n := 0
	for n < size {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return buf[:n], err
		}
		if m == 0 {
			break
		}
	}
	return buf[:n], nil
}

// rejectParam records and logs a parameter rejection.
func (p *Player) rejectParam(opcode byte, err *ParamOutOfRangeError) error {
	op := protocol.CommandName(opcode)
	p.recordFailure(op)
	p.logError("parameter rejected", "op", op, "param", err.Param, "value", err.Value)
	return err
}

func (p *Player) recordFailure(op string) {
	if p.config.Recorder != nil {
		p.config.Recorder.CommandFailed(op)
	}
}

// logDebug logs a debug message if a logger is configured.
func (p *Player) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Player) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Player) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
