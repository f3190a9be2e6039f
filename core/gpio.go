package core

// GPIO port driver. Pin modes are 2-bit fields in MODER; outputs are
// driven through BSRR so set and clear are single atomic writes. ADC
// inputs must be placed in analog mode before conversion.

// PinMode is the 2-bit MODER encoding for one pin.
type PinMode uint8

const (
	ModeInput     PinMode = 0
	ModeOutput    PinMode = 1
	ModeAlternate PinMode = 2
	ModeAnalog    PinMode = 3
)

// Port is one GPIO port.
type Port struct {
	regs *GPIORegs
}

// NewPort wraps a GPIO register block.
func NewPort(regs *GPIORegs) *Port {
	return &Port{regs: regs}
}

// Configure sets the mode of one pin, leaving the rest of the port
// untouched.
func (p *Port) Configure(pin uint8, mode PinMode) {
	p.regs.MODER.ReplaceBits(uint32(mode), 0x3, pin*2)
}

// Set drives an output pin high or low.
func (p *Port) Set(pin uint8, high bool) {
	if high {
		p.regs.BSRR.Set(1 << pin)
	} else {
		p.regs.BSRR.Set(1 << (uint32(pin) + 16))
	}
}

// Get reads the input state of a pin.
func (p *Port) Get(pin uint8) bool {
	return p.regs.IDR.HasBits(1 << pin)
}
