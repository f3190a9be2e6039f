package core

// Simulated registers for host tests. Write hooks model the hardware's
// guaranteed convergence (enable leads to ready) so the driver's spin
// loops terminate, and a shared event log records writes in order for
// sequencing assertions.

type simEvent struct {
	reg   string
	value uint32
}

type simBus struct {
	events []simEvent
}

func (b *simBus) record(reg string, value uint32) {
	b.events = append(b.events, simEvent{reg: reg, value: value})
}

// writes returns the values written to one register, in order.
func (b *simBus) writes(reg string) []uint32 {
	var out []uint32
	for _, e := range b.events {
		if e.reg == reg {
			out = append(out, e.value)
		}
	}
	return out
}

type simReg struct {
	name string
	v    uint32
	bus  *simBus
	// onWrite may adjust the stored value, modeling hardware-set
	// status bits.
	onWrite func(old, next uint32) uint32
}

func (r *simReg) write(next uint32) {
	old := r.v
	if r.onWrite != nil {
		next = r.onWrite(old, next)
	}
	r.v = next
	if r.bus != nil {
		r.bus.record(r.name, next)
	}
}

func (r *simReg) Get() uint32           { return r.v }
func (r *simReg) Set(v uint32)          { r.write(v) }
func (r *simReg) SetBits(b uint32)      { r.write(r.v | b) }
func (r *simReg) ClearBits(b uint32)    { r.write(r.v &^ b) }
func (r *simReg) HasBits(b uint32) bool { return r.v&b == b }

func (r *simReg) ReplaceBits(value uint32, change uint32, pos uint8) {
	r.write(r.v&^(change<<pos) | value<<pos)
}

type memOp struct {
	addr  uintptr
	value uint32
}

type simMemory struct {
	words  map[uintptr]uint32
	stores []memOp
}

func newSimMemory() *simMemory {
	return &simMemory{words: make(map[uintptr]uint32)}
}

func (m *simMemory) Load32(addr uintptr) uint32 {
	return m.words[addr]
}

func (m *simMemory) Store32(addr uintptr, value uint32) {
	m.words[addr] = value
	m.stores = append(m.stores, memOp{addr: addr, value: value})
}

// simClockTree is a simulated RCC plus flash interface. Oscillator
// enables assert their ready flags immediately and the SWS field
// mirrors SW on every CFGR write.
type simClockTree struct {
	bus   *simBus
	rcc   *RCCRegs
	flash *FlashRegs

	cr, cfgr, csr *simReg
	acr, vecOff   *simReg
}

func newSimClockTree() *simClockTree {
	bus := &simBus{}
	t := &simClockTree{bus: bus}

	t.cr = &simReg{name: "RCC_CR", bus: bus, onWrite: func(old, next uint32) uint32 {
		if next&rccCRHSION != 0 {
			next |= rccCRHSIRDY
		}
		if next&rccCREXTCLKON != 0 {
			next |= rccCREXTCLKRDY
		}
		return next
	}}
	t.csr = &simReg{name: "RCC_CSR", bus: bus, onWrite: func(old, next uint32) uint32 {
		if next&rccCSRLSION != 0 {
			next |= rccCSRLSIRDY
		}
		return next
	}}
	t.cfgr = &simReg{name: "RCC_CFGR", bus: bus, onWrite: func(old, next uint32) uint32 {
		sw := next >> rccCFGRSWPos & rccCFGRSWMsk
		return next&^(rccCFGRSWSMsk<<rccCFGRSWSPos) | sw<<rccCFGRSWSPos
	}}
	t.acr = &simReg{name: "FLASH_ACR", bus: bus}
	t.vecOff = &simReg{name: "FLASH_VECOFF", bus: bus, v: 0xDEAD}

	t.rcc = &RCCRegs{
		CR:       t.cr,
		CFGR:     t.cfgr,
		CIR:      &simReg{name: "RCC_CIR", bus: bus},
		CFGR3:    &simReg{name: "RCC_CFGR3", bus: bus},
		CFGR4:    &simReg{name: "RCC_CFGR4", bus: bus},
		CSR:      t.csr,
		APBENR1:  &simReg{name: "RCC_APBENR1", bus: bus},
		APBENR2:  &simReg{name: "RCC_APBENR2", bus: bus},
		APBRSTR1: &simReg{name: "RCC_APBRSTR1", bus: bus},
		APBRSTR2: &simReg{name: "RCC_APBRSTR2", bus: bus},
	}
	t.flash = &FlashRegs{ACR: t.acr, VecOffset: t.vecOff}
	return t
}

// simConverter is a simulated ADC block: enabling asserts ready,
// starting a conversion latches sample into the data register and
// asserts end-of-conversion, stop and disable complete immediately.
type simConverter struct {
	regs   *ADCRegs
	cr     *simReg
	isr    *simReg
	dr     *simReg
	chselr *simReg
	smpr   *simReg
	cfgr1  *simReg
	cfgr2  *simReg
	ccr    *simReg

	sample uint16 // value the next conversion produces
}

func newSimConverter() *simConverter {
	c := &simConverter{}

	c.isr = &simReg{name: "ADC_ISR"}
	c.dr = &simReg{name: "ADC_DR"}
	c.cr = &simReg{name: "ADC_CR", onWrite: func(old, next uint32) uint32 {
		if next&adcCRADEN != 0 && old&adcCRADEN == 0 {
			c.isr.v |= adcISRADRDY
		}
		if next&adcCRADSTART != 0 {
			c.dr.v = uint32(c.sample)
			c.isr.v |= adcISREOC
			next &^= adcCRADSTART
		}
		if next&adcCRADSTP != 0 {
			next &^= adcCRADSTP
		}
		if next&adcCRADDIS != 0 {
			next &^= adcCRADDIS | adcCRADEN
			c.isr.v &^= adcISREOC
		}
		return next
	}}
	c.chselr = &simReg{name: "ADC_CHSELR"}
	c.smpr = &simReg{name: "ADC_SMPR"}
	c.cfgr1 = &simReg{name: "ADC_CFGR1"}
	c.cfgr2 = &simReg{name: "ADC_CFGR2"}
	c.ccr = &simReg{name: "ADC_CCR"}

	c.regs = &ADCRegs{
		ISR:    c.isr,
		CR:     c.cr,
		CFGR1:  c.cfgr1,
		CFGR2:  c.cfgr2,
		SMPR:   c.smpr,
		CHSELR: c.chselr,
		DR:     c.dr,
		CCR:    c.ccr,
	}
	return c
}

// validTrimWord packs payload with its half-word complement.
func validTrimWord(payload uint32) uint32 {
	payload &= 0xFFFF
	return payload | ^payload<<16
}
