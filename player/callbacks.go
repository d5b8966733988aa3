package player

import "time"

// FrameEvent describes one completed (or failed) command exchange.
// Passed to FrameCallback after the settle delay.
type FrameEvent struct {
	// Operation is the command name, e.g. "set volume"
	Operation string

	// Opcode is the command byte
	Opcode byte

	// Frame is the complete frame that was written
	Frame []byte

	// Response holds the raw bytes read back (queries only)
	Response []byte

	// Settle is the delay applied after the frame was written
	Settle time.Duration

	// Err is the error the exchange ended with, if any
	Err error
}

// FrameCallback is called once per command exchange, after the exchange
// has released the player lock. It may call back into the Player.
// Concurrent commands may invoke it concurrently.
//
// Example:
//
//	p := player.New(port,
//	    player.WithFrameCallback(func(e player.FrameEvent) {
//	        fmt.Printf("%-18s % X\n", e.Operation, e.Frame)
//	    }),
//	)
type FrameCallback func(FrameEvent)

// Logger is an optional logging interface that can be provided to the player.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	p := player.New(port, player.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// Recorder receives counters about the command traffic, e.g. for metrics.
type Recorder interface {
	// FrameSent is called after a frame of size bytes was written
	FrameSent(operation string, size int)

	// Settled is called after each settle delay
	Settled(d time.Duration)

	// CommandFailed is called when a command returns an error
	CommandFailed(operation string)

	// TrackCount is called with every successfully parsed track count
	TrackCount(n uint16)
}
