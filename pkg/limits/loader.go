package limits

import (
	"fmt"

	"github.com/teddyrendahl/pymps/pkg/table"
	"github.com/teddyrendahl/pymps/pkg/types"
)

// powerColumn is the tolerance-table column holding continuous power limits.
const powerColumn = "Power"

// LoadRequirements reads a device tolerance table from a CSV file. Every row
// becomes one Requirement, with the Power column split out from the
// photon-energy columns. Values must be non-negative.
func LoadRequirements(path string) (Requirements, error) {
	t, err := table.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return fromTable(t)
}

func fromTable(t *table.Table) (Requirements, error) {
	if !t.HasColumn(powerColumn) {
		return nil, ErrNoPower
	}
	cols := t.Cols()
	photon := make([]string, 0, len(cols)-1)
	for _, col := range cols {
		if col != powerColumn {
			photon = append(photon, col)
		}
	}
	if len(photon) == 0 {
		return nil, ErrNoPhotonColumns
	}

	power, err := t.Column(powerColumn)
	if err != nil {
		return nil, err
	}
	states := t.Rows()
	reqs := make(Requirements, 0, len(states))
	for i, state := range states {
		if power[i] < 0 {
			return nil, fmt.Errorf("%w: state %q column %q: %v", ErrNegativeValue, state, powerColumn, power[i])
		}
		energies := make(map[string]float64, len(photon))
		for _, col := range photon {
			v, err := t.At(state, col)
			if err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: state %q column %q: %v", ErrNegativeValue, state, col, v)
			}
			energies[col] = v
		}
		reqs = append(reqs, Requirement{
			State:            state,
			MaxPulseEnergyMJ: energies,
			MaxPower:         types.Power(power[i]),
		})
	}
	return reqs, nil
}

// LoadBeam reads a predicted pulse-energy table from a CSV file. Rows are
// bunch charges, columns are photon-energy bins, cells are microjoules.
// Values must be non-negative.
func LoadBeam(path string) (*table.Table, error) {
	t, err := table.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	rows := t.Rows()
	for _, col := range t.Cols() {
		vals, err := t.Column(col)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			if v < 0 {
				return nil, fmt.Errorf("%w: row %q column %q: %v", ErrNegativeValue, rows[i], col, v)
			}
		}
	}
	return t, nil
}
