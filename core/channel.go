package core

// AnalogInput identifies one analog input: an external pin in analog
// mode or an internal sensor. The set is closed and the mapping to
// hardware channel indices is a pure function of the identity, so the
// binding is fixed before any code runs.
type AnalogInput uint8

// Analog inputs of the HK32F0301M ADC.
const (
	AnalogPD5 AnalogInput = iota
	AnalogPD6
	AnalogPC4
	AnalogPD3
	AnalogPD2
	AnalogPD1
	AnalogPC6
	AnalogVPMU // internal power-management sensor
	AnalogVRef // internal voltage reference
)

// NumAnalogInputs is the number of declared analog inputs.
const NumAnalogInputs = 9

// Channel returns the hardware channel index for the input. Indices
// are disjoint: no two inputs share a channel.
func (in AnalogInput) Channel() uint8 {
	switch in {
	case AnalogPD5:
		return 0
	case AnalogPD6:
		return 1
	case AnalogPC4:
		return 2
	case AnalogPD3:
		return 3
	case AnalogPD2:
		return 4
	case AnalogPD1:
		return 5
	case AnalogPC6:
		return 6
	case AnalogVPMU:
		return 7
	case AnalogVRef:
		return 8
	default:
		panic("core: unknown analog input")
	}
}

// String returns the input's name.
func (in AnalogInput) String() string {
	switch in {
	case AnalogPD5:
		return "PD5"
	case AnalogPD6:
		return "PD6"
	case AnalogPC4:
		return "PC4"
	case AnalogPD3:
		return "PD3"
	case AnalogPD2:
		return "PD2"
	case AnalogPD1:
		return "PD1"
	case AnalogPC6:
		return "PC6"
	case AnalogVPMU:
		return "VPMU"
	case AnalogVRef:
		return "VREF"
	default:
		return "unknown"
	}
}
