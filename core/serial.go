package core

import (
	"errors"

	"tinygo.org/x/drivers"
)

// UART driver. The baud divisor is computed from the frozen clock
// tree, never from hardware queries. Reads are non-blocking; writes
// spin on the transmit-empty flag. *Serial satisfies the
// tinygo.org/x/drivers UART interface so HAL ports plug directly into
// that ecosystem's device drivers.

// UART_ISR bits.
const (
	uartISRPE   = 1 << 0
	uartISRFE   = 1 << 1
	uartISRNF   = 1 << 2
	uartISRORE  = 1 << 3
	uartISRRXNE = 1 << 5
	uartISRTC   = 1 << 6
	uartISRTXE  = 1 << 7
)

// UART_CR1: UE | RE | TE.
const uartCR1Enable = 0xD

// Receive errors, in the priority order the status register is
// inspected.
var (
	ErrSerialParity  = errors.New("core: serial parity error")
	ErrSerialFraming = errors.New("core: serial framing error")
	ErrSerialNoise   = errors.New("core: serial noise error")
	ErrSerialOverrun = errors.New("core: serial rx overrun")
	ErrSerialNoData  = errors.New("core: serial no data")
)

// Serial is one UART.
type Serial struct {
	regs   *UARTRegs
	clocks Clocks
}

// NewSerial enables the UART's bus clock, programs the baud divisor
// from the frozen clock tree, and enables the transmitter and
// receiver. Advanced features stay at their reset defaults.
func NewSerial(regs *UARTRegs, clock PeriphClock, baud Hertz, clocks Clocks) *Serial {
	clock.enable()

	regs.BRR.Set(clocks.PCLK().Hz() / baud.Hz())
	regs.CR2.Set(0)
	regs.CR3.Set(0)
	regs.CR1.SetBits(uartCR1Enable)

	return &Serial{regs: regs, clocks: clocks}
}

// SetBaud reprograms the baud divisor from the frozen clock tree.
// Framing is fixed at construction.
func (s *Serial) SetBaud(baud Hertz) {
	s.regs.BRR.Set(s.clocks.PCLK().Hz() / baud.Hz())
}

// Buffered returns the number of bytes ready to read: the hardware
// holds at most one.
func (s *Serial) Buffered() int {
	if s.regs.ISR.HasBits(uartISRRXNE) {
		return 1
	}
	return 0
}

// ReadByte returns the received byte, or the highest-priority pending
// receive error, or ErrSerialNoData when nothing has arrived.
func (s *Serial) ReadByte() (byte, error) {
	isr := s.regs.ISR.Get()
	switch {
	case isr&uartISRPE != 0:
		return 0, ErrSerialParity
	case isr&uartISRFE != 0:
		return 0, ErrSerialFraming
	case isr&uartISRNF != 0:
		return 0, ErrSerialNoise
	case isr&uartISRORE != 0:
		return 0, ErrSerialOverrun
	case isr&uartISRRXNE != 0:
		return byte(s.regs.RDR.Get()), nil
	default:
		return 0, ErrSerialNoData
	}
}

// Read drains at most one pending byte into p. It returns 0 bytes
// when the receiver is idle rather than blocking.
func (s *Serial) Read(p []byte) (int, error) {
	if len(p) == 0 || !s.regs.ISR.HasBits(uartISRRXNE) {
		return 0, nil
	}
	p[0] = byte(s.regs.RDR.Get())
	return 1, nil
}

// WriteByte waits for the transmit register to drain and writes one
// byte.
func (s *Serial) WriteByte(b byte) error {
	for !s.regs.ISR.HasBits(uartISRTXE) {
	}
	s.regs.TDR.Set(uint32(b))
	return nil
}

// Write sends the whole buffer.
func (s *Serial) Write(data []byte) (int, error) {
	for _, b := range data {
		if err := s.WriteByte(b); err != nil {
			return 0, err
		}
	}
	return len(data), nil
}

// Flushed reports whether the last transmission has fully completed.
func (s *Serial) Flushed() bool {
	return s.regs.ISR.HasBits(uartISRTC)
}

var _ drivers.UART = (*Serial)(nil)
