package transport

import (
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

// BaudRate is one of the UART speeds the WT2003S accepts.
type BaudRate int

// Supported baud rates.
const (
	BaudRate1200   BaudRate = 1200
	BaudRate2400   BaudRate = 2400
	BaudRate4800   BaudRate = 4800
	BaudRate9600   BaudRate = 9600
	BaudRate14400  BaudRate = 14400
	BaudRate19200  BaudRate = 19200
	BaudRate28800  BaudRate = 28800
	BaudRate31250  BaudRate = 31250
	BaudRate38400  BaudRate = 38400
	BaudRate57600  BaudRate = 57600
	BaudRate115200 BaudRate = 115200
)

// DefaultBaudRate is the factory setting of the chip.
const DefaultBaudRate = BaudRate9600

// DefaultReadTimeout bounds how long a query waits for the device to answer.
const DefaultReadTimeout = time.Second

var supportedBaudRates = []BaudRate{
	BaudRate1200, BaudRate2400, BaudRate4800, BaudRate9600, BaudRate14400,
	BaudRate19200, BaudRate28800, BaudRate31250, BaudRate38400, BaudRate57600,
	BaudRate115200,
}

// Valid reports whether b is a supported baud rate.
func (b BaudRate) Valid() bool {
	for _, s := range supportedBaudRates {
		if b == s {
			return true
		}
	}
	return false
}

// Config describes how to reach the device.
type Config struct {
	// Port is the serial device path, e.g. /dev/ttyUSB0 or COM3. On a host
	// UART it stands in for the TX/RX pin pair.
	Port string

	// TXPin and RXPin name the wiring for logs (optional)
	TXPin string
	RXPin string

	// BaudRate defaults to DefaultBaudRate when zero
	BaudRate BaudRate

	// ReadTimeout defaults to DefaultReadTimeout when zero
	ReadTimeout time.Duration
}

// DefaultConfig returns a Config for port with the chip's factory settings.
func DefaultConfig(port string) Config {
	return Config{
		Port:        port,
		BaudRate:    DefaultBaudRate,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Validate fills in defaults and checks the configuration.
func (c *Config) Validate() error {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		return fmt.Errorf("serial port cannot be empty")
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if !c.BaudRate.Valid() {
		return fmt.Errorf("unsupported baud rate %d", c.BaudRate)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read timeout cannot be negative")
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return nil
}

// String describes the binding for logs.
func (c Config) String() string {
	s := fmt.Sprintf("%s@%d", c.Port, c.BaudRate)
	if c.TXPin != "" || c.RXPin != "" {
		s += fmt.Sprintf(" (tx=%s rx=%s)", c.TXPin, c.RXPin)
	}
	return s
}

// Mode returns the 8N1 serial mode for c.
func (c Config) Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: int(c.BaudRate),
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Open opens and configures the serial port described by cfg.
// The returned port is an io.ReadWriteCloser suitable for player.Bind.
func Open(cfg Config) (serial.Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port, err := serial.Open(cfg.Port, cfg.Mode())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", cfg.Port, err)
	}

	// Discard anything the device sent before we were listening.
	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("reset input buffer on %s: %w", cfg.Port, err)
	}

	return port, nil
}

// ListPorts returns the serial ports present on the host.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
