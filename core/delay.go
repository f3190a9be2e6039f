package core

// SysTick delay provider. The system timer free-runs as a 1 ms
// down-counter off the core clock; delays are measured against it in
// chunks short enough that the counter cannot wrap twice.

// SysTick CSR bits.
const (
	systCSREnable    = 1 << 0
	systCSRClkSource = 1 << 2
)

// Longest span a single counter comparison can measure reliably.
const maxDelayChunkNs = 500_000

// Delay measures time against the system timer.
type Delay struct {
	syst   *SysTickRegs
	clocks Clocks
}

// NewDelay configures the system timer as a delay provider. If the
// counter is already running its period is left alone.
func NewDelay(syst *SysTickRegs, clocks Clocks) *Delay {
	if !syst.CSR.HasBits(systCSREnable) {
		syst.RVR.Set(clocks.SysClk().Hz()/1000 - 1) // 1 ms period
		syst.CVR.Set(0)
		syst.CSR.SetBits(systCSRClkSource | systCSREnable)
	}
	return &Delay{syst: syst, clocks: clocks}
}

// delayChunk waits for at most maxDelayChunkNs nanoseconds, handling
// one wrap of the down-counter.
func (d *Delay) delayChunk(ns uint32) {
	ticks := ns * (d.clocks.SysClk().Hz() / 1_000_000) / 1000
	start := d.syst.CVR.Get()

	if start > ticks {
		for start-d.syst.CVR.Get() < ticks {
		}
		return
	}

	end := d.syst.RVR.Get() - (ticks - start)
	for {
		cur := d.syst.CVR.Get()
		if cur > start && cur < end {
			return
		}
	}
}

// DelayNs waits at least ns nanoseconds.
func (d *Delay) DelayNs(ns uint32) {
	for ns > maxDelayChunkNs {
		ns -= maxDelayChunkNs
		d.delayChunk(maxDelayChunkNs)
	}
	d.delayChunk(ns)
}

// DelayUs waits at least us microseconds.
func (d *Delay) DelayUs(us uint32) {
	for us > 0 {
		chunk := us
		if chunk > maxDelayChunkNs/1000 {
			chunk = maxDelayChunkNs / 1000
		}
		d.delayChunk(chunk * 1000)
		us -= chunk
	}
}

// DelayMs waits at least ms milliseconds.
func (d *Delay) DelayMs(ms uint32) {
	for ; ms > 0; ms-- {
		d.DelayUs(1000)
	}
}
