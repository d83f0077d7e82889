package types

import (
	"fmt"
	"math"
)

// Energy is a float64 wrapper representing an amount of energy in Joules.
// Multiply a plain value by a unit constant to construct one, e.g.
// 12.5*Microjoule.
type Energy float64

// Energy unit constants, expressed in the base unit (Joules).
const (
	Nanojoule  Energy = 1e-9
	Microjoule Energy = 1e-6
	Millijoule Energy = 1e-3
	Joule      Energy = 1
	Kilojoule  Energy = 1e3
)

// Humanized returns a human-readable string with automatic unit (µJ, mJ, J, kJ).
func (e Energy) Humanized() string {
	v := float64(e)
	abs := math.Abs(v)
	switch {
	case abs >= float64(Kilojoule):
		return fmt.Sprintf("%.2f kJ", v/float64(Kilojoule))
	case abs >= float64(Joule):
		return fmt.Sprintf("%.2f J", v)
	case abs >= float64(Millijoule):
		return fmt.Sprintf("%.2f mJ", v/float64(Millijoule))
	default:
		return fmt.Sprintf("%.2f µJ", v/float64(Microjoule))
	}
}

// Joules returns the energy in Joules.
func (e Energy) Joules() float64 { return float64(e) }

// Millijoules returns the energy in millijoules.
func (e Energy) Millijoules() float64 { return float64(e / Millijoule) }

// Microjoules returns the energy in microjoules.
func (e Energy) Microjoules() float64 { return float64(e / Microjoule) }

// Power is a float64 wrapper representing a power in Watts.
type Power float64

// Power unit constants, expressed in the base unit (Watts).
const (
	Microwatt Power = 1e-6
	Milliwatt Power = 1e-3
	Watt      Power = 1
	Kilowatt  Power = 1e3
	Megawatt  Power = 1e6
)

// Humanized returns a human-readable string with automatic unit (µW, mW, W, kW, MW).
func (p Power) Humanized() string {
	v := float64(p)
	abs := math.Abs(v)
	switch {
	case abs >= float64(Megawatt):
		return fmt.Sprintf("%.2f MW", v/float64(Megawatt))
	case abs >= float64(Kilowatt):
		return fmt.Sprintf("%.2f kW", v/float64(Kilowatt))
	case abs >= float64(Watt):
		return fmt.Sprintf("%.2f W", v)
	case abs >= float64(Milliwatt):
		return fmt.Sprintf("%.2f mW", v/float64(Milliwatt))
	default:
		return fmt.Sprintf("%.2f µW", v/float64(Microwatt))
	}
}

// Watts returns the power in Watts.
func (p Power) Watts() float64 { return float64(p) }

// Kilowatts returns the power in kilowatts.
func (p Power) Kilowatts() float64 { return float64(p / Kilowatt) }

// Frequency is a float64 wrapper representing a repetition rate in Hertz.
// Positive infinity is a valid value meaning the rate is not limited.
type Frequency float64

// Frequency unit constants, expressed in the base unit (Hertz).
const (
	Hertz     Frequency = 1
	Kilohertz Frequency = 1e3
	Megahertz Frequency = 1e6
)

// Humanized returns a human-readable string with automatic unit (Hz, kHz, MHz).
// An unlimited rate renders as "unbounded".
func (f Frequency) Humanized() string {
	if math.IsInf(float64(f), 1) {
		return "unbounded"
	}
	v := float64(f)
	abs := math.Abs(v)
	switch {
	case abs >= float64(Megahertz):
		return fmt.Sprintf("%.2f MHz", v/float64(Megahertz))
	case abs >= float64(Kilohertz):
		return fmt.Sprintf("%.2f kHz", v/float64(Kilohertz))
	default:
		return fmt.Sprintf("%.0f Hz", v)
	}
}

// Hz returns the frequency in Hertz.
func (f Frequency) Hz() float64 { return float64(f) }

// KHz returns the frequency in kilohertz.
func (f Frequency) KHz() float64 { return float64(f / Kilohertz) }
