package core

// Internal voltage reference. The reference feeds ADC channel 8 when
// its enable bit in the common control register is set; measuring it
// against the supply gives a calibrated estimate of VDDA.

// Nominal internal reference voltage in millivolts.
const vrefNominalMillivolts = 1200

// EnableVRef connects the internal reference to its ADC channel.
// Disable it again when not in use; it draws bias current.
func (a *ADC) EnableVRef() {
	a.regs.CCR.SetBits(adcCCRVRefEn)
}

// DisableVRef disconnects the internal reference.
func (a *ADC) DisableVRef() {
	a.regs.CCR.ClearBits(adcCCRVRefEn)
}

// VRefEnabled reports whether the internal reference is connected.
func (a *ADC) VRefEnabled() bool {
	return a.regs.CCR.HasBits(adcCCRVRefEn)
}

// ReadVdda measures the supply voltage in millivolts via the internal
// reference. The engine is forced to the default configuration for the
// measurement and the caller's configuration is restored afterwards;
// if the reference was off it is enabled only for the duration of the
// conversion. The 4095 divisor matches the right alignment that the
// default configuration guarantees during the measurement.
func (a *ADC) ReadVdda() (uint16, error) {
	prev := a.DefaultConfig()
	defer a.RestoreConfig(prev)

	var raw uint16
	var err error
	if a.VRefEnabled() {
		raw, err = a.Read(AnalogVRef)
	} else {
		a.EnableVRef()
		raw, err = a.Read(AnalogVRef)
		a.DisableVRef()
	}
	if err != nil {
		return 0, err
	}

	// The bandgap pins the reference channel well above zero on
	// powered silicon, so raw is never 0 here.
	return uint16(4095 * vrefNominalMillivolts / uint32(raw)), nil
}
