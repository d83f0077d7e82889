package limits

import (
	"fmt"
	"strings"

	"github.com/teddyrendahl/pymps/pkg/types"
)

// Requirement holds one device state's tolerances.
// Units:
//   - MaxPulseEnergyMJ: millijoules, largest tolerable single-pulse energy,
//     keyed by photon-energy bin label
//   - MaxPower: Watts, largest tolerable continuous power
type Requirement struct {
	State            string
	MaxPulseEnergyMJ map[string]float64
	MaxPower         types.Power
}

// Tolerances renders the per-bin pulse-energy tolerances in the given column
// order, e.g. "8.0 keV: 10.00 mJ, 12.0 keV: 2.40 mJ".
func (r Requirement) Tolerances(cols []string) string {
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		e := types.Energy(r.MaxPulseEnergyMJ[col]) * types.Millijoule
		parts = append(parts, fmt.Sprintf("%s keV: %s", col, e.Humanized()))
	}
	return strings.Join(parts, ", ")
}

// Requirements is the ordered list of device states from one tolerance
// table.
type Requirements []Requirement

// States returns the state names in table order.
func (r Requirements) States() []string {
	names := make([]string, len(r))
	for i, req := range r {
		names[i] = req.State
	}
	return names
}

// Get returns the requirement row for the named state.
func (r Requirements) Get(state string) (Requirement, error) {
	for _, req := range r {
		if req.State == state {
			return req, nil
		}
	}
	return Requirement{}, fmt.Errorf("%w %q (have: %s)", ErrUnknownState, state, strings.Join(r.States(), ", "))
}
