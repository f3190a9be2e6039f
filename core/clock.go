package core

// Clock-source selection. A ClockSetup is a builder: pick one source,
// then Freeze it. Freeze loads the factory trims, walks the hardware
// through the source switch, and returns the frozen Clocks value. The
// ready and switch-confirmed waits spin without a timeout; the
// oscillators' ready latency is guaranteed by the datasheet.

// Nominal internal oscillator frequencies.
const (
	hsiFreq = 48 * MHz
	lsiFreq = 60 * KHz
)

// RCC_CR bits.
const (
	rccCRHSION     = 1 << 0
	rccCRHSIRDY    = 1 << 1
	rccCREXTCLKON  = 1 << 16
	rccCREXTCLKRDY = 1 << 17
)

// RCC_CSR bits.
const (
	rccCSRLSION  = 1 << 0
	rccCSRLSIRDY = 1 << 1
)

// RCC_CFGR fields.
const (
	rccCFGRSWPos   = 0
	rccCFGRSWMsk   = 0x3
	rccCFGRSWSPos  = 2
	rccCFGRSWSMsk  = 0x3
	rccCFGRHPREPos = 4
	rccCFGRHPREMsk = 0xF
	rccCFGRPPREPos = 8
	rccCFGRPPREMsk = 0x7
)

// RCC_CFGR4 fields.
const (
	rccCFGR4EXTClkSelPos   = 0
	rccCFGR4EXTClkSelMsk   = 0x3
	rccCFGR4FLITFClkPrePos = 8
	rccCFGR4FLITFClkPreMsk = 0x7
)

// System clock source switch codes (SW field values, confirmed by SWS).
const (
	swHSI    = 0
	swEXTCLK = 1
	swLSI    = 3
)

// FLASH_ACR latency field.
const (
	flashACRLatencyPos = 0
	flashACRLatencyMsk = 0x7
)

type sysClkSource uint8

const (
	srcHSI sysClkSource = iota
	srcLSI
	srcEXTCLK
)

// Clocks is the frozen clock tree. Holding a Clocks value is the proof
// that clock configuration is complete; it is copied by value and never
// changes after Freeze produces it.
type Clocks struct {
	hclk   Hertz
	pclk   Hertz
	sysclk Hertz
}

// HCLK returns the AHB frequency.
func (c Clocks) HCLK() Hertz { return c.hclk }

// PCLK returns the APB frequency.
func (c Clocks) PCLK() Hertz { return c.pclk }

// SysClk returns the system core frequency.
func (c Clocks) SysClk() Hertz { return c.sysclk }

// ClockSetup selects and finalizes the system clock source.
type ClockSetup struct {
	rcc      *RCCRegs
	flash    *FlashRegs
	mem      Memory
	source   sysClkSource
	external Hertz
	frozen   bool
}

// NewClockSetup starts clock configuration with the internal
// high-speed oscillator selected.
func NewClockSetup(rcc *RCCRegs, flash *FlashRegs, mem Memory) *ClockSetup {
	return &ClockSetup{rcc: rcc, flash: flash, mem: mem, source: srcHSI}
}

// UseInternal selects the internal high-speed oscillator.
func (s *ClockSetup) UseInternal() *ClockSetup {
	s.source = srcHSI
	return s
}

// UseLowSpeed selects the internal low-speed oscillator.
func (s *ClockSetup) UseLowSpeed() *ClockSetup {
	s.source = srcLSI
	return s
}

// UseExternal selects the external clock input at the given frequency.
func (s *ClockSetup) UseExternal(freq Hertz) *ClockSetup {
	s.source = srcEXTCLK
	s.external = freq
	return s
}

// FlashLatency returns the flash wait-state code for a system
// frequency: 0 up to 16 MHz, 1 up to 32 MHz, 2 above.
func FlashLatency(freq Hertz) uint32 {
	switch {
	case freq <= 16*MHz:
		return 0
	case freq <= 32*MHz:
		return 1
	default:
		return 2
	}
}

// frequency returns the nominal frequency of the selected source.
func (s *ClockSetup) frequency() Hertz {
	switch s.source {
	case srcEXTCLK:
		return s.external
	case srcLSI:
		return lsiFreq
	default:
		return hsiFreq
	}
}

// setFlashWait programs the wait-state latency for the target
// frequency. It runs before the source switch so instruction fetch
// stays correct the moment the core starts running faster.
func (s *ClockSetup) setFlashWait(freq Hertz) {
	s.flash.ACR.ReplaceBits(FlashLatency(freq), flashACRLatencyMsk, flashACRLatencyPos)
}

// enableSource brings the selected oscillator up, waits for its ready
// flag, programs the matching flash latency, and returns the SW code
// to switch to.
func (s *ClockSetup) enableSource() uint32 {
	switch s.source {
	case srcEXTCLK:
		s.rcc.CFGR4.ReplaceBits(0, rccCFGR4EXTClkSelMsk, rccCFGR4EXTClkSelPos)
		s.rcc.CR.SetBits(rccCREXTCLKON)
		for !s.rcc.CR.HasBits(rccCREXTCLKRDY) {
		}
		s.setFlashWait(s.external)
		return swEXTCLK

	case srcLSI:
		s.rcc.CSR.SetBits(rccCSRLSION)
		for !s.rcc.CSR.HasBits(rccCSRLSIRDY) {
		}
		s.setFlashWait(lsiFreq)
		return swLSI

	default:
		s.rcc.CR.SetBits(rccCRHSION)
		s.rcc.CFGR4.ReplaceBits(7, rccCFGR4FLITFClkPreMsk, rccCFGR4FLITFClkPrePos)
		for !s.rcc.CR.HasBits(rccCRHSIRDY) {
		}
		s.setFlashWait(hsiFreq)
		return swHSI
	}
}

// Freeze finalizes the clock configuration. It is a one-way
// transition: the setup cannot be reused and the returned Clocks value
// never changes.
func (s *ClockSetup) Freeze() Clocks {
	if s.frozen {
		panic("core: clock tree already frozen")
	}
	s.frozen = true

	loadHSITrim(s.rcc, s.mem)
	loadPowerTrim(s.rcc, s.mem)

	sw := s.enableSource()

	// AHB and APB run undivided from the system clock.
	s.rcc.CFGR.ReplaceBits(0, rccCFGRHPREMsk, rccCFGRHPREPos)
	s.rcc.CFGR.ReplaceBits(0, rccCFGRPPREMsk, rccCFGRPPREPos)

	// Switch, then poll the status field until the hardware confirms
	// the new source is feeding the system clock.
	s.rcc.CFGR.ReplaceBits(sw, rccCFGRSWMsk, rccCFGRSWPos)
	for (s.rcc.CFGR.Get()>>rccCFGRSWSPos)&rccCFGRSWSMsk != sw {
	}

	s.flash.VecOffset.Set(0)

	freq := s.frequency()
	return Clocks{hclk: freq, pclk: freq, sysclk: freq}
}
