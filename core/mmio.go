package core

// Reg is one 32-bit hardware register. The method set matches TinyGo's
// runtime/volatile.Register32, so on hardware a *volatile.Register32 is
// used directly; the tests substitute simulated registers that model the
// peripheral's responses.
type Reg interface {
	// Get returns the register value.
	Get() uint32

	// Set writes the register value.
	Set(value uint32)

	// SetBits sets the given bits in the register.
	SetBits(bits uint32)

	// ClearBits clears the given bits in the register.
	ClearBits(bits uint32)

	// HasBits reports whether all of the given bits are set.
	HasBits(bits uint32) bool

	// ReplaceBits clears change<<pos and ORs in value<<pos.
	ReplaceBits(value uint32, change uint32, pos uint8)
}

// Memory performs loads and stores at absolute addresses. It covers the
// two accesses the register blocks cannot: reading the factory info
// block and writing the PWR trim registers behind the unlock protocol.
type Memory interface {
	// Load32 reads the 32-bit word at addr.
	Load32(addr uintptr) uint32

	// Store32 writes the 32-bit word at addr.
	Store32(addr uintptr, value uint32)
}

// RCCRegs is the reset and clock control register block.
type RCCRegs struct {
	CR       Reg // oscillator control: HSION/HSIRDY, EXTCLK, HSI trim
	CFGR     Reg // SW/SWS source select, HPRE/PPRE prescalers
	CIR      Reg // clock interrupt enable/flags
	CFGR3    Reg // peripheral clock source select
	CFGR4    Reg // EXTCLK input mux, FLITF clock prescaler
	CSR      Reg // control/status: LSION/LSIRDY
	APBENR1  Reg // APB1 peripheral clock enables
	APBENR2  Reg // APB2 peripheral clock enables
	APBRSTR1 Reg
	APBRSTR2 Reg
}

// FlashRegs is the embedded flash interface register block.
type FlashRegs struct {
	ACR       Reg // access control: wait-state latency
	VecOffset Reg // interrupt vector offset override
}

// ADCRegs is the analog-to-digital converter register block.
type ADCRegs struct {
	ISR    Reg // status: ADRDY, EOC
	CR     Reg // control: ADEN, ADDIS, ADSTART, ADSTP
	CFGR1  Reg // configuration: ALIGN
	CFGR2  Reg // clock mode
	SMPR   Reg // sample time
	CHSELR Reg // channel select, one bit per channel
	DR     Reg // conversion data
	CCR    Reg // common control: VREFEN
}

// GPIORegs is one GPIO port register block.
type GPIORegs struct {
	MODER Reg // 2-bit mode per pin
	IDR   Reg // input data
	ODR   Reg // output data
	BSRR  Reg // bit set (low half) / reset (high half)
}

// UARTRegs is one UART register block.
type UARTRegs struct {
	CR1 Reg // control: UE, TE, RE
	CR2 Reg
	CR3 Reg
	BRR Reg // baud rate divisor
	ISR Reg // status: PE, FE, NF, ORE, RXNE, TXE, TC
	RDR Reg // receive data
	TDR Reg // transmit data
}

// TimerRegs is one general-purpose timer register block.
type TimerRegs struct {
	CR1  Reg // control: CEN
	DIER Reg // interrupt enable: UIE
	SR   Reg // status: UIF
	CNT  Reg // counter
	PSC  Reg // prescaler
	ARR  Reg // auto-reload
}

// SysTickRegs is the Cortex-M system timer register block.
type SysTickRegs struct {
	CSR Reg // control/status: ENABLE, CLKSOURCE
	RVR Reg // reload value
	CVR Reg // current value
}
