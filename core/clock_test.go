package core

import "testing"

func TestFreezeClocksEqualNominal(t *testing.T) {
	cases := []struct {
		name   string
		pick   func(*ClockSetup) *ClockSetup
		want   Hertz
		wantSW uint32
	}{
		{"internal", (*ClockSetup).UseInternal, 48 * MHz, swHSI},
		{"low-speed", (*ClockSetup).UseLowSpeed, 60 * KHz, swLSI},
		{"external", func(s *ClockSetup) *ClockSetup { return s.UseExternal(8 * MHz) }, 8 * MHz, swEXTCLK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sim := newSimClockTree()
			setup := NewClockSetup(sim.rcc, sim.flash, newSimMemory())

			clocks := tc.pick(setup).Freeze()

			if clocks.HCLK() != tc.want || clocks.PCLK() != tc.want || clocks.SysClk() != tc.want {
				t.Errorf("clocks = {%d %d %d}, want all %d",
					clocks.HCLK(), clocks.PCLK(), clocks.SysClk(), tc.want)
			}

			cfgr := sim.cfgr.Get()
			if sw := cfgr >> rccCFGRSWPos & rccCFGRSWMsk; sw != tc.wantSW {
				t.Errorf("SW = %d, want %d", sw, tc.wantSW)
			}
			if sws := cfgr >> rccCFGRSWSPos & rccCFGRSWSMsk; sws != tc.wantSW {
				t.Errorf("SWS = %d, want %d", sws, tc.wantSW)
			}
		})
	}
}

func TestFreezeLastSelectorWins(t *testing.T) {
	sim := newSimClockTree()
	setup := NewClockSetup(sim.rcc, sim.flash, newSimMemory())

	clocks := setup.UseExternal(24 * MHz).UseLowSpeed().UseInternal().Freeze()

	if clocks.SysClk() != 48*MHz {
		t.Errorf("SysClk = %d, want %d", clocks.SysClk(), 48*MHz)
	}
}

func TestFlashLatencyThresholds(t *testing.T) {
	cases := []struct {
		freq Hertz
		want uint32
	}{
		{1 * MHz, 0},
		{16_000_000, 0},
		{16_000_001, 1},
		{32_000_000, 1},
		{32_000_001, 2},
		{48 * MHz, 2},
	}
	for _, tc := range cases {
		if got := FlashLatency(tc.freq); got != tc.want {
			t.Errorf("FlashLatency(%d) = %d, want %d", tc.freq, got, tc.want)
		}
	}
}

func TestFreezeProgramsLatencyBeforeSwitch(t *testing.T) {
	sim := newSimClockTree()
	setup := NewClockSetup(sim.rcc, sim.flash, newSimMemory())

	setup.UseExternal(24 * MHz).Freeze()

	latencyAt := -1
	switchAt := -1
	for i, e := range sim.bus.events {
		if e.reg == "FLASH_ACR" && latencyAt == -1 {
			latencyAt = i
		}
		if e.reg == "RCC_CFGR" && e.value>>rccCFGRSWPos&rccCFGRSWMsk == swEXTCLK && switchAt == -1 {
			switchAt = i
		}
	}
	if latencyAt == -1 || switchAt == -1 {
		t.Fatalf("missing events: latencyAt=%d switchAt=%d", latencyAt, switchAt)
	}
	if latencyAt > switchAt {
		t.Errorf("flash latency written at %d, after source switch at %d", latencyAt, switchAt)
	}
	if sim.acr.Get()&flashACRLatencyMsk != 1 {
		t.Errorf("ACR latency = %d, want 1 for 24 MHz", sim.acr.Get()&flashACRLatencyMsk)
	}
}

func TestFreezePrescalersAndVectorOffset(t *testing.T) {
	sim := newSimClockTree()
	setup := NewClockSetup(sim.rcc, sim.flash, newSimMemory())

	setup.UseInternal().Freeze()

	cfgr := sim.cfgr.Get()
	if hpre := cfgr >> rccCFGRHPREPos & rccCFGRHPREMsk; hpre != 0 {
		t.Errorf("HPRE = %d, want 0 (div1)", hpre)
	}
	if ppre := cfgr >> rccCFGRPPREPos & rccCFGRPPREMsk; ppre != 0 {
		t.Errorf("PPRE = %d, want 0 (div1)", ppre)
	}
	if got := sim.vecOff.Get(); got != 0 {
		t.Errorf("vector offset = %#x, want 0", got)
	}

	// The internal source runs the flash interface prescaler at its
	// fixed divisor.
	cfgr4 := sim.rcc.CFGR4.Get()
	if pre := cfgr4 >> rccCFGR4FLITFClkPrePos & rccCFGR4FLITFClkPreMsk; pre != 7 {
		t.Errorf("FLITF prescaler = %d, want 7", pre)
	}
}

func TestFreezeTwicePanics(t *testing.T) {
	sim := newSimClockTree()
	setup := NewClockSetup(sim.rcc, sim.flash, newSimMemory())
	setup.Freeze()

	defer func() {
		if recover() == nil {
			t.Error("second Freeze did not panic")
		}
	}()
	setup.Freeze()
}

func TestInitializeHardwareDefaults(t *testing.T) {
	sim := newSimClockTree()
	sim.cfgr.v = 0xFFFFFFFF
	sim.rcc.CFGR3.Set(0xFFFFFFFF)
	sim.rcc.CIR.Set(0xFFFFFFFF)

	InitializeHardwareDefaults(sim.rcc)

	if !sim.cr.HasBits(rccCRHSION) {
		t.Error("HSION not set")
	}
	if got := sim.cfgr.Get() &^ (rccCFGRSWSMsk << rccCFGRSWSPos); got&^0xF8FFB81C != 0 {
		t.Errorf("CFGR = %#x, reset mask not applied", sim.cfgr.Get())
	}
	if got := sim.rcc.CFGR3.Get(); got&^0xFFFFFFEC != 0 {
		t.Errorf("CFGR3 = %#x, reset mask not applied", got)
	}
	if got := sim.rcc.CIR.Get(); got != 0 {
		t.Errorf("CIR = %#x, want 0", got)
	}
}
