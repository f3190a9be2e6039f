//go:build tinygo

package main

import (
	"runtime/volatile"
	"unsafe"

	"hk32hal/core"
)

// Register bindings for the HK32F0301M. Each peripheral block is built
// once from volatile registers at the datasheet addresses; the handles
// are package globals and are never duplicated.

// Peripheral base addresses.
const (
	rccBase   = 0x40021000
	flashBase = 0x40022000
	adcBase   = 0x40012400

	gpioaBase = 0x48000000
	gpiobBase = 0x48000400
	gpiocBase = 0x48000800
	gpiodBase = 0x48000C00

	uart1Base = 0x40013800
	uart2Base = 0x40004400

	tim1Base = 0x40012C00
	tim2Base = 0x40000000
	tim6Base = 0x40001000

	systBase = 0xE000E010
)

// APB peripheral clock enable/reset bits.
const (
	apbTIM2Bit  = 1 << 0
	apbTIM6Bit  = 1 << 4
	apbUART2Bit = 1 << 17

	apbTIM1Bit  = 1 << 11
	apbUART1Bit = 1 << 14
)

func reg(addr uintptr) core.Reg {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// RCC is the reset and clock control block.
var RCC = &core.RCCRegs{
	CR:       reg(rccBase + 0x00),
	CFGR:     reg(rccBase + 0x04),
	CIR:      reg(rccBase + 0x08),
	APBRSTR2: reg(rccBase + 0x0C),
	APBRSTR1: reg(rccBase + 0x10),
	APBENR2:  reg(rccBase + 0x18),
	APBENR1:  reg(rccBase + 0x1C),
	CSR:      reg(rccBase + 0x24),
	CFGR3:    reg(rccBase + 0x30),
	CFGR4:    reg(rccBase + 0x34),
}

// FLASH is the flash interface block.
var FLASH = &core.FlashRegs{
	ACR:       reg(flashBase + 0x00),
	VecOffset: reg(flashBase + 0x24),
}

// ADC is the analog-to-digital converter block.
var ADC = &core.ADCRegs{
	ISR:    reg(adcBase + 0x00),
	CR:     reg(adcBase + 0x08),
	CFGR1:  reg(adcBase + 0x0C),
	CFGR2:  reg(adcBase + 0x10),
	SMPR:   reg(adcBase + 0x14),
	CHSELR: reg(adcBase + 0x28),
	DR:     reg(adcBase + 0x40),
	CCR:    reg(adcBase + 0x308),
}

func gpioRegs(base uintptr) *core.GPIORegs {
	return &core.GPIORegs{
		MODER: reg(base + 0x00),
		IDR:   reg(base + 0x10),
		ODR:   reg(base + 0x14),
		BSRR:  reg(base + 0x18),
	}
}

// GPIO port register blocks.
var (
	GPIOA = gpioRegs(gpioaBase)
	GPIOB = gpioRegs(gpiobBase)
	GPIOC = gpioRegs(gpiocBase)
	GPIOD = gpioRegs(gpiodBase)
)

func uartRegs(base uintptr) *core.UARTRegs {
	return &core.UARTRegs{
		CR1: reg(base + 0x00),
		CR2: reg(base + 0x04),
		CR3: reg(base + 0x08),
		BRR: reg(base + 0x0C),
		ISR: reg(base + 0x1C),
		RDR: reg(base + 0x24),
		TDR: reg(base + 0x28),
	}
}

// UART register blocks.
var (
	UART1 = uartRegs(uart1Base)
	UART2 = uartRegs(uart2Base)
)

func timerRegs(base uintptr) *core.TimerRegs {
	return &core.TimerRegs{
		CR1:  reg(base + 0x00),
		DIER: reg(base + 0x0C),
		SR:   reg(base + 0x10),
		CNT:  reg(base + 0x24),
		PSC:  reg(base + 0x28),
		ARR:  reg(base + 0x2C),
	}
}

// Timer register blocks.
var (
	TIM1 = timerRegs(tim1Base)
	TIM2 = timerRegs(tim2Base)
	TIM6 = timerRegs(tim6Base)
)

// SYST is the Cortex-M system timer.
var SYST = &core.SysTickRegs{
	CSR: reg(systBase + 0x00),
	RVR: reg(systBase + 0x04),
	CVR: reg(systBase + 0x08),
}

// Bus clock descriptors for the peripherals this port exposes.
var (
	UART1Clock = core.PeriphClock{EnableReg: RCC.APBENR2, EnableBit: apbUART1Bit}
	UART2Clock = core.PeriphClock{EnableReg: RCC.APBENR1, EnableBit: apbUART2Bit}

	TIM1Clock = core.PeriphClock{
		EnableReg: RCC.APBENR2, EnableBit: apbTIM1Bit,
		ResetReg: RCC.APBRSTR2, ResetBit: apbTIM1Bit,
	}
	TIM2Clock = core.PeriphClock{
		EnableReg: RCC.APBENR1, EnableBit: apbTIM2Bit,
		ResetReg: RCC.APBRSTR1, ResetBit: apbTIM2Bit,
	}
	TIM6Clock = core.PeriphClock{
		EnableReg: RCC.APBENR1, EnableBit: apbTIM6Bit,
		ResetReg: RCC.APBRSTR1, ResetBit: apbTIM6Bit,
	}
)

// mmioMemory performs absolute loads and stores: info block reads and
// the protected PWR trim writes.
type mmioMemory struct{}

func (mmioMemory) Load32(addr uintptr) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(addr)).Get()
}

func (mmioMemory) Store32(addr uintptr, value uint32) {
	(*volatile.Register32)(unsafe.Pointer(addr)).Set(value)
}

// Mem is the absolute-address accessor handed to the clock setup.
var Mem core.Memory = mmioMemory{}
