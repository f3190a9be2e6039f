// Package serial abstracts the host side of the board's UART link so
// tools can run against real hardware or a mock in tests.
package serial

import (
	"io"
)

// Port is one open serial connection.
type Port interface {
	io.ReadWriteCloser

	// Flush drains any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyUSB0", "COM3").
	Device string

	// Baud rate; the demo firmware talks at 115200.
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the demo firmware.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
