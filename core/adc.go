package core

import "errors"

// One-shot ADC engine. Every read is a full power cycle: the converter
// is enabled, one sample is taken, and the converter is stopped and
// disabled again before the call returns. The engine never leaves the
// peripheral armed.

// ADC_ISR bits.
const (
	adcISRADRDY = 1 << 0
	adcISREOC   = 1 << 2
)

// ADC_CR bits.
const (
	adcCRADEN    = 1 << 0
	adcCRADDIS   = 1 << 1
	adcCRADSTART = 1 << 2
	adcCRADSTP   = 1 << 4
)

// ADC_CFGR1 bits.
const adcCFGR1Align = 1 << 5

// ADC_CFGR2 clock mode: synchronous PCLK/4.
const adcCFGR2ClkDiv4 = 2

// ADC_SMPR sample time field.
const (
	adcSMPRSMPPos = 0
	adcSMPRSMPMsk = 0x7
)

// ADC_CCR bits.
const adcCCRVRefEn = 1 << 22

// ErrADC is the engine's reserved unspecified failure. The blocking
// read contract admits it, but the base hardware handshakes always
// converge and never produce it.
var ErrADC = errors.New("core: adc failure")

// SampleTime selects how long the converter dwells on a channel before
// digitizing, in ADC clock cycles. Longer is more accurate.
type SampleTime uint8

// Sample times, each value plus half a cycle.
const (
	Sample1   SampleTime = iota // 1.5 cycles
	Sample7                     // 7.5 cycles
	Sample13                    // 13.5 cycles
	Sample28                    // 28.5 cycles
	Sample41                    // 41.5 cycles
	Sample55                    // 55.5 cycles
	Sample71                    // 71.5 cycles
	Sample239                   // 239.5 cycles
)

// DefaultSampleTime is the slowest, most accurate setting.
const DefaultSampleTime = Sample239

// Align selects where the 12-bit result sits in the 16-bit data
// register.
type Align uint8

const (
	// AlignRight returns results unshifted, 0..4095 in unit steps.
	AlignRight Align = iota
	// AlignLeft shifts results into the upper bits, 0..65535 in
	// coarse steps.
	AlignLeft
)

// DefaultAlign is right alignment.
const DefaultAlign = AlignRight

// StoredConfig is a snapshot of the engine's sample time and alignment,
// restored with ADC.RestoreConfig.
type StoredConfig struct {
	sampleTime SampleTime
	align      Align
}

// ADC owns one converter register block. At most one ADC may be
// constructed per physical peripheral; the register block handle is
// obtained once at startup and never duplicated.
type ADC struct {
	regs       *ADCRegs
	sampleTime SampleTime
	align      Align
}

// NewADC takes ownership of the converter and applies the default
// configuration. The analog sub-clock is set to PCLK/4. Construct it
// only after the clock tree is frozen.
func NewADC(regs *ADCRegs) *ADC {
	a := &ADC{
		regs:       regs,
		sampleTime: DefaultSampleTime,
		align:      DefaultAlign,
	}
	a.regs.CFGR2.Set(adcCFGR2ClkDiv4)
	return a
}

// SetSampleTime sets the sample time used by the next conversion.
func (a *ADC) SetSampleTime(t SampleTime) {
	a.sampleTime = t
}

// SetAlign sets the result alignment used by the next conversion.
func (a *ADC) SetAlign(al Align) {
	a.align = al
}

// SaveConfig snapshots the current sample time and alignment.
func (a *ADC) SaveConfig() StoredConfig {
	return StoredConfig{sampleTime: a.sampleTime, align: a.align}
}

// RestoreConfig restores a snapshot taken with SaveConfig.
func (a *ADC) RestoreConfig(cfg StoredConfig) {
	a.sampleTime = cfg.sampleTime
	a.align = cfg.align
}

// DefaultConfig resets the engine to defaults and returns the previous
// configuration so the caller can restore it.
func (a *ADC) DefaultConfig() StoredConfig {
	cfg := a.SaveConfig()
	a.sampleTime = DefaultSampleTime
	a.align = DefaultAlign
	return cfg
}

// MaxSample returns the largest value a conversion can produce under
// the current alignment.
func (a *ADC) MaxSample() uint16 {
	if a.align == AlignLeft {
		return 0xFFFF
	}
	return 1<<12 - 1
}

// powerUp enables the converter and waits until it is ready. A stale
// ready flag from an earlier cycle is cleared first.
func (a *ADC) powerUp() {
	if a.regs.ISR.HasBits(adcISRADRDY) {
		a.regs.ISR.ClearBits(adcISRADRDY)
	}
	a.regs.CR.SetBits(adcCRADEN)
	for !a.regs.ISR.HasBits(adcISRADRDY) {
	}
}

// powerDown stops any conversion and disables the converter, waiting
// out both handshakes.
func (a *ADC) powerDown() {
	a.regs.CR.SetBits(adcCRADSTP)
	for a.regs.CR.HasBits(adcCRADSTP) {
	}
	a.regs.CR.SetBits(adcCRADDIS)
	for a.regs.CR.HasBits(adcCRADEN) {
	}
}

// convert runs one conversion on the given channel: arm the channel,
// program sample time and alignment, start, wait for end of
// conversion, read the result.
func (a *ADC) convert(channel uint8) uint16 {
	a.regs.CHSELR.Set(1 << channel)

	a.regs.SMPR.ReplaceBits(uint32(a.sampleTime), adcSMPRSMPMsk, adcSMPRSMPPos)
	if a.align == AlignLeft {
		a.regs.CFGR1.SetBits(adcCFGR1Align)
	} else {
		a.regs.CFGR1.ClearBits(adcCFGR1Align)
	}

	a.regs.CR.SetBits(adcCRADSTART)
	for !a.regs.ISR.HasBits(adcISREOC) {
	}

	res := uint16(a.regs.DR.Get())
	if a.align == AlignLeft {
		// Shift the sample to span the full 16-bit range. Matches the
		// shipped behavior; assumes the data register holds the
		// unshifted 12-bit sample.
		res <<= 8
	}
	return res
}

// Read samples the input once, power-cycling the converter around the
// conversion. The error is always nil in the base design; the
// signature reserves ErrADC for wrappers that add failure detection.
func (a *ADC) Read(in AnalogInput) (uint16, error) {
	a.powerUp()
	res := a.convert(in.Channel())
	a.powerDown()
	return res, nil
}

// ReadMillivolts samples the input and converts the result to
// millivolts using a fresh supply-voltage measurement.
func (a *ADC) ReadMillivolts(in AnalogInput) (uint16, error) {
	vdda, err := a.ReadVdda()
	if err != nil {
		return 0, err
	}
	raw, err := a.Read(in)
	if err != nil {
		return 0, err
	}
	return uint16(uint32(raw) * uint32(vdda) / uint32(a.MaxSample())), nil
}
