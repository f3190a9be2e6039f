// Package core implements the hardware-control logic for the HK32F0301M
// family: clock-tree bring-up with factory trim injection, the one-shot
// ADC engine, and the peripheral drivers that consume the frozen clock
// tree. All register access goes through the Reg/Memory abstractions so
// the same sequences run against real silicon (targets/) and against
// simulated registers in the tests.
package core

// Hertz is a frequency in cycles per second.
type Hertz uint32

// Frequency unit multipliers.
const (
	KHz Hertz = 1000
	MHz Hertz = 1000 * KHz
)

// Hz returns the frequency as a plain cycle count.
func (f Hertz) Hz() uint32 {
	return uint32(f)
}

// KiloHertz returns the frequency in whole kilohertz.
func (f Hertz) KiloHertz() uint32 {
	return uint32(f / KHz)
}

// MegaHertz returns the frequency in whole megahertz.
func (f Hertz) MegaHertz() uint32 {
	return uint32(f / MHz)
}
