package core

// PeriphClock describes one peripheral's slot in the bus clock-enable
// and reset registers. Drivers take it by value so one constructor
// serves every instance instead of a hand-copied block per peripheral.
type PeriphClock struct {
	EnableReg Reg
	EnableBit uint32
	ResetReg  Reg
	ResetBit  uint32
}

// enable gates the peripheral's bus clock on.
func (c PeriphClock) enable() {
	c.EnableReg.SetBits(c.EnableBit)
}

// reset pulses the peripheral's reset line, returning it to a clean
// slate.
func (c PeriphClock) reset() {
	c.ResetReg.SetBits(c.ResetBit)
	c.ResetReg.ClearBits(c.ResetBit)
}
