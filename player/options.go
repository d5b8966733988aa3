package player

import (
	"io"
	"time"

	"github.com/moffa90/go-wt2003s/protocol"
	"github.com/moffa90/go-wt2003s/transport"
)

// Opener opens a transport for InitTransport.
type Opener func(cfg transport.Config) (io.ReadWriteCloser, error)

// Config holds the player configuration.
type Config struct {
	// FrameCallback is called after every command exchange (optional)
	FrameCallback FrameCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Recorder receives traffic counters (optional)
	Recorder Recorder

	// SettleDelay is the pause after every frame
	SettleDelay time.Duration

	// StrictParams rejects out-of-range mode and volume instead of clamping
	StrictParams bool

	// Sleep blocks for the settle delay
	Sleep func(time.Duration)

	// Opener is used by InitTransport
	Opener Opener
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		SettleDelay: protocol.SettleDelay,
		Sleep:       time.Sleep,
		Opener:      openSerial,
	}
}

func openSerial(cfg transport.Config) (io.ReadWriteCloser, error) {
	port, err := transport.Open(cfg)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Option is a functional option for configuring the Player.
type Option func(*Config)

// WithFrameCallback sets a callback invoked after every command exchange.
func WithFrameCallback(callback FrameCallback) Option {
	return func(c *Config) {
		c.FrameCallback = callback
	}
}

// WithLogger sets a logger for the player operations.
//
// Example:
//
//	p := player.New(port, player.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithRecorder sets a Recorder for traffic counters.
func WithRecorder(recorder Recorder) Option {
	return func(c *Config) {
		c.Recorder = recorder
	}
}

// WithSettleDelay overrides the post-command settle delay.
// Default is protocol.SettleDelay (200ms). Negative values are ignored.
//
// Example:
//
//	p := player.New(port, player.WithSettleDelay(250*time.Millisecond))
func WithSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SettleDelay = d
		}
	}
}

// WithStrictParams makes SetPlayMode and SetVolume return a
// *ParamOutOfRangeError for out-of-range values instead of clamping them.
// Default is false.
func WithStrictParams(strict bool) Option {
	return func(c *Config) {
		c.StrictParams = strict
	}
}

// WithSleep replaces the function used to wait out the settle delay.
// Useful for tests and simulators.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Config) {
		if sleep != nil {
			c.Sleep = sleep
		}
	}
}

// WithOpener replaces the transport opener used by InitTransport.
func WithOpener(opener Opener) Option {
	return func(c *Config) {
		if opener != nil {
			c.Opener = opener
		}
	}
}
