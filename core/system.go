package core

// InitializeHardwareDefaults forces the clock hardware back to its
// reset state: HSI running, system clock sourced from HSI with no
// prescaling, no clock output, and all clock interrupts disabled. Call
// it first in the program's entry sequence, before constructing a
// ClockSetup.
func InitializeHardwareDefaults(rcc *RCCRegs) {
	// Keep the internal oscillator running while everything below it
	// is torn down; it is the reset-state system clock source.
	rcc.CR.SetBits(rccCRHSION)

	// Reset SW, HPRE, PPRE and MCOSEL.
	rcc.CFGR.Set(rcc.CFGR.Get() & 0xF8FFB81C)

	// Reset the UART and I2C clock source selections.
	rcc.CFGR3.Set(rcc.CFGR3.Get() & 0xFFFFFFEC)

	// Disable and clear all clock interrupts.
	rcc.CIR.Set(0)
}
