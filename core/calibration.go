package core

// Factory calibration. The info block carries trim words measured at
// production test; each word packs its payload in the low half and the
// bitwise complement in the high half so a blank or corrupted block is
// detectable. Words that fail the complement check are skipped and the
// hardware keeps its reset-default trim.

// Info block word addresses.
const (
	HSITrimAddr   uintptr = 0x1FFFF10C // oscillator calibration and trim
	BGPTrimAddr   uintptr = 0x1FFFF114 // bandgap reference trim
	LDOTrimAddr   uintptr = 0x1FFFF118 // regulator trim, run and low-power
	LPLDOTrimAddr uintptr = 0x1FFFF11C // low-power regulator trim
)

// PWR trim register addresses and the write-protection keys. Trim
// registers only accept writes between the two-key unlock and the
// relock; the relock value is written twice per the datasheet.
const (
	pwrUnlockAddr   uintptr = 0x4000704C
	pwrBGPAddr      uintptr = 0x40007070
	pwrLDORunAddr   uintptr = 0x40007060
	pwrLDOLprAddr   uintptr = 0x40007064
	pwrLPLDOLprAddr uintptr = 0x4000706C

	pwrKey1   = 0x00001985
	pwrKey2   = 0x00000429
	pwrRelock = 0x0000FFFF
)

// RCC_APBENR1 PWR interface clock enable.
const rccAPBENR1PWREN = 1 << 28

// TrimWordValid reports whether the high half of word is the bitwise
// complement of the low half.
func TrimWordValid(word uint32) bool {
	return word&0xFFFF == 0xFFFF-(word>>16)&0xFFFF
}

// LPLDOWordValid reports whether the low-power-regulator word is
// self-consistent. Its payload is one byte wide, complemented
// byte-for-byte: bits 8..15 against bits 24..31.
func LPLDOWordValid(word uint32) bool {
	return (word>>8)&0xFF == 0xFF-(word>>24)&0xFF
}

// HSITrimFields extracts the oscillator calibration and trim payloads
// from a validated HSI trim word.
func HSITrimFields(word uint32) (cal, trim uint32) {
	return (word & 0xFF) >> 2, (word >> 8) & 0xFF
}

// BGPTrimField packs the bandgap trim payload for the PWR BGP register.
func BGPTrimField(word uint32) uint32 {
	mbgp := word & 0x1F
	lbgp := (word >> 8) & 0x1F
	return lbgp<<8 | mbgp
}

// LDOTrimFields extracts the run-mode and low-power-mode regulator
// trim payloads.
func LDOTrimFields(word uint32) (run, lpr uint32) {
	return word & 0xFF, (word >> 8) & 0xFF
}

// LPLDOTrimField extracts the low-power-regulator trim payload.
func LPLDOTrimField(word uint32) uint32 {
	return (word >> 8) & 0xFF
}

// loadHSITrim injects the factory oscillator calibration into RCC_CR.
// The trim field occupies bits 8..13 and the calibration field bits
// 2..7; everything outside those fields and HSION/HSIRDY is preserved.
func loadHSITrim(rcc *RCCRegs, mem Memory) {
	word := mem.Load32(HSITrimAddr)
	if !TrimWordValid(word) {
		return
	}
	cal, trim := HSITrimFields(word)
	v := rcc.CR.Get() & 0xFFFFC003
	v |= trim << 8
	v |= cal << 2
	rcc.CR.Set(v)
}

// trimWrite brackets the payload stores with the PWR unlock and relock
// sequence. The ordering is the hardware's write-protection protocol
// and must not change.
func trimWrite(mem Memory, store func()) {
	mem.Store32(pwrUnlockAddr, pwrKey1)
	mem.Store32(pwrUnlockAddr, pwrKey2)
	store()
	mem.Store32(pwrUnlockAddr, pwrRelock)
	mem.Store32(pwrUnlockAddr, pwrRelock)
}

// loadPowerTrim injects the factory bandgap and regulator trims into
// the PWR block. The PWR interface clock is enabled first; invalid
// words leave their registers untouched.
func loadPowerTrim(rcc *RCCRegs, mem Memory) {
	bgp := mem.Load32(BGPTrimAddr)
	ldo := mem.Load32(LDOTrimAddr)
	lpldo := mem.Load32(LPLDOTrimAddr)

	rcc.APBENR1.SetBits(rccAPBENR1PWREN)

	if TrimWordValid(bgp) {
		v := BGPTrimField(bgp)
		trimWrite(mem, func() {
			mem.Store32(pwrBGPAddr, v)
		})
	}
	if TrimWordValid(ldo) {
		run, lpr := LDOTrimFields(ldo)
		trimWrite(mem, func() {
			mem.Store32(pwrLDORunAddr, run)
			mem.Store32(pwrLDOLprAddr, lpr)
		})
	}
	if LPLDOWordValid(lpldo) {
		v := LPLDOTrimField(lpldo)
		trimWrite(mem, func() {
			mem.Store32(pwrLPLDOLprAddr, v)
		})
	}
}
