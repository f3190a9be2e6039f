//go:build tinygo

// Demo firmware for the HK32F0301M port: bring the clock tree up from
// the internal oscillator, then report the supply voltage and one
// analog pin over UART1 once a second.
package main

import (
	"hk32hal/core"
)

const sensorInput = core.AnalogPD2

func main() {
	core.InitializeHardwareDefaults(RCC)

	clocks := core.NewClockSetup(RCC, FLASH, Mem).
		UseInternal().
		Freeze()

	serial := core.NewSerial(UART1, UART1Clock, 115200, clocks)
	delay := core.NewDelay(SYST, clocks)

	// The sensed pin must be in analog mode before conversion.
	portD := core.NewPort(GPIOD)
	portD.Configure(2, core.ModeAnalog)

	adc := core.NewADC(ADC)

	serial.Write([]byte("hk32f0301m up, sysclk="))
	serial.Write([]byte(core.FormatUint(clocks.SysClk().Hz())))
	serial.Write([]byte("\r\n"))

	for {
		vdda, err := adc.ReadVdda()
		if err != nil {
			serial.Write([]byte("vdda error\r\n"))
			delay.DelayMs(1000)
			continue
		}
		mv, err := adc.ReadMillivolts(sensorInput)
		if err != nil {
			serial.Write([]byte("read error\r\n"))
			delay.DelayMs(1000)
			continue
		}

		serial.Write([]byte("vdda="))
		serial.Write([]byte(core.FormatUint(uint32(vdda))))
		serial.Write([]byte("mV "))
		serial.Write([]byte(sensorInput.String()))
		serial.Write([]byte("="))
		serial.Write([]byte(core.FormatUint(uint32(mv))))
		serial.Write([]byte("mV\r\n"))

		delay.DelayMs(1000)
	}
}
