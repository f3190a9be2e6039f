package core

// Countdown timers. Each general-purpose timer is described by its
// register block plus its PeriphClock descriptor; the prescaler and
// auto-reload values are derived from the frozen clock tree.

// TIM_CR1 bits.
const timCR1CEN = 1 << 0

// TIM_DIER bits.
const timDIERUIE = 1 << 0

// TIM_SR bits.
const timSRUIF = 1 << 0

// Countdown is a periodic countdown timer.
type Countdown struct {
	regs   *TimerRegs
	clocks Clocks
}

// NewCountdown enables and resets the timer, then starts it counting
// down at the given timeout frequency.
func NewCountdown(regs *TimerRegs, clock PeriphClock, timeout Hertz, clocks Clocks) *Countdown {
	clock.enable()
	clock.reset()

	t := &Countdown{regs: regs, clocks: clocks}
	t.Start(timeout)
	return t
}

// Start restarts the countdown at the given frequency. The tick budget
// is split between the 16-bit prescaler and the 16-bit auto-reload.
// timeout must not exceed PCLK; at least one peripheral tick per
// period is required.
func (t *Countdown) Start(timeout Hertz) {
	t.regs.CR1.ClearBits(timCR1CEN)
	t.regs.CNT.Set(0)

	ticks := t.clocks.PCLK().Hz() / timeout.Hz()
	psc := (ticks - 1) / (1 << 16)
	arr := ticks / (psc + 1)

	t.regs.PSC.Set(psc)
	t.regs.ARR.Set(arr)

	t.regs.CR1.SetBits(timCR1CEN)
}

// Expired reports whether the countdown has reached zero since the
// last call, clearing the update flag when it has.
func (t *Countdown) Expired() bool {
	if !t.regs.SR.HasBits(timSRUIF) {
		return false
	}
	t.regs.SR.ClearBits(timSRUIF)
	return true
}

// Wait spins until the countdown expires.
func (t *Countdown) Wait() {
	for !t.Expired() {
	}
}

// EnableInterrupt raises the timer's interrupt on each update event.
func (t *Countdown) EnableInterrupt() {
	t.regs.DIER.SetBits(timDIERUIE)
}

// DisableInterrupt masks the timer's update interrupt.
func (t *Countdown) DisableInterrupt() {
	t.regs.DIER.ClearBits(timDIERUIE)
}

// Stop pauses the counter.
func (t *Countdown) Stop() {
	t.regs.CR1.ClearBits(timCR1CEN)
}
