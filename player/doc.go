// Package player provides a high-level API for driving WT2003S MP3 modules.
//
// # Overview
//
// A Player translates playback operations into protocol frames, writes them
// to the bound transport and waits out the device's settle delay:
//   - Playing tracks by storage index or by "NNNN.mp3" name
//   - Stop, next and previous
//   - Play mode and volume
//   - Querying the number of tracks on the medium
//
// # Basic Usage
//
//	port, err := transport.Open(transport.DefaultConfig("/dev/ttyUSB0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := player.New(port)
//	defer p.Close()
//
//	ctx := context.Background()
//	_ = p.SetVolume(ctx, 20)
//	_ = p.PlayTrackByName(ctx, 7) // plays 0007.mp3
//
//	count, err := p.QueryTrackCount(ctx)
//
// # Timing
//
// Every command blocks the caller for the settle delay (200ms by default)
// after its frame was written, so the device is ready for the next one.
// The context is checked before a frame is written; the settle delay itself
// always runs to completion.
//
// # Parameters
//
// By default out-of-range values are clamped the way the device firmware
// examples do: volume to 0-30, unknown play modes to single/no-loop.
// WithStrictParams(true) returns a *ParamOutOfRangeError instead.
//
// # Configuration Options
//
//	p := player.New(port,
//	    player.WithLogger(myLogger),
//	    player.WithRecorder(myMetrics),
//	    player.WithFrameCallback(func(e player.FrameEvent) { ... }),
//	    player.WithSettleDelay(250*time.Millisecond),
//	    player.WithStrictParams(true),
//	)
//
// # Error Handling
//
// The package provides structured error types:
//   - ErrNotInitialized: no transport bound
//   - ParamOutOfRangeError: rejected parameter
//   - ShortWriteError: transport accepted part of a frame
//   - protocol.ResponseError: query answered with the wrong number of bytes
//
// # Hardware Independence
//
// Any io.ReadWriter works as a transport: a serial port from the transport
// package, a USB bridge, a network tunnel or a mock for tests. InitTransport
// and Bind replace the binding at runtime; an io.Closer being replaced is
// closed.
package player
