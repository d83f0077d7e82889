package types

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergy_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Energy
		want string
	}{
		{0, "0.00 µJ"},
		{999 * Nanojoule, "1.00 µJ"},    // rendered in µJ below the mJ threshold
		{1 * Microjoule, "1.00 µJ"},     // exactly 1 µJ
		{999 * Microjoule, "999.00 µJ"}, // just below 1 mJ
		{1 * Millijoule, "1.00 mJ"},     // exactly 1 mJ
		{999 * Millijoule, "999.00 mJ"}, // just below 1 J
		{1 * Joule, "1.00 J"},           // exactly 1 J
		{999 * Joule, "999.00 J"},       // just below 1 kJ
		{1 * Kilojoule, "1.00 kJ"},      // exactly 1 kJ
		{2.5 * Kilojoule, "2.50 kJ"},    // above 1 kJ stays in kJ
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%s", i, tc.want), func(t *testing.T) {
			got := tc.in.Humanized()
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPower_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Power
		want string
	}{
		{0, "0.00 µW"},
		{500 * Microwatt, "500.00 µW"},
		{1 * Milliwatt, "1.00 mW"},
		{999 * Milliwatt, "999.00 mW"},
		{1 * Watt, "1.00 W"},
		{200 * Watt, "200.00 W"},
		{1 * Kilowatt, "1.00 kW"},
		{1 * Megawatt, "1.00 MW"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%s", i, tc.want), func(t *testing.T) {
			got := tc.in.Humanized()
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFrequency_Humanized(t *testing.T) {
	cases := []struct {
		in   Frequency
		want string
	}{
		{0, "0 Hz"},
		{625 * Hertz, "625 Hz"},
		{999 * Hertz, "999 Hz"},
		{1 * Kilohertz, "1.00 kHz"},
		{120 * Kilohertz, "120.00 kHz"},
		{1 * Megahertz, "1.00 MHz"},
		{Frequency(math.Inf(1)), "unbounded"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%s", i, tc.want), func(t *testing.T) {
			got := tc.in.Humanized()
			require.Equal(t, tc.want, got)
		})
	}
}

func TestUnits_Accessors(t *testing.T) {
	// Exact decade boundaries
	e := 1 * Millijoule
	assert.InDelta(t, 0.001, e.Joules(), 1e-15)
	assert.InDelta(t, 1.0, e.Millijoules(), 1e-12)
	assert.InDelta(t, 1000.0, e.Microjoules(), 1e-9)

	// Non-integers
	e = 12.5 * Microjoule
	assert.InDelta(t, 12.5, e.Microjoules(), 1e-12)
	assert.InDelta(t, 0.0125, e.Millijoules(), 1e-12)

	p := 2.5 * Kilowatt
	assert.InDelta(t, 2500.0, p.Watts(), 1e-9)
	assert.InDelta(t, 2.5, p.Kilowatts(), 1e-12)

	f := 625 * Hertz
	assert.InDelta(t, 625.0, f.Hz(), 1e-12)
	assert.InDelta(t, 0.625, f.KHz(), 1e-12)
}
