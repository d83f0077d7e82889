package limits

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/teddyrendahl/pymps/pkg/table"
	"gonum.org/v1/gonum/floats/scalar"
)

// Limits is the pair of derived limit tables for one device state. Both
// tables share the beam table's shape: bunch-charge rows by photon-energy
// columns.
type Limits struct {
	State          string
	MinAttenuation *table.Table
	MaxRepRate     *table.Table
}

// Compute derives the minimum attenuation and maximum repetition rate tables
// for one device state against the predicted pulse-energy table. The
// photon-energy columns of the two tables must agree exactly; nothing is
// computed otherwise.
func Compute(req Requirement, beam *table.Table) (*Limits, error) {
	if err := checkColumns(req, beam); err != nil {
		return nil, err
	}

	att := table.ZerosLike(beam)
	rate := table.ZerosLike(beam)
	for _, col := range beam.Cols() {
		pred, err := beam.Column(col)
		if err != nil {
			return nil, err
		}
		maxMJ := req.MaxPulseEnergyMJ[col]

		attCol := make([]float64, len(pred))
		rateCol := make([]float64, len(pred))
		for i, uj := range pred {
			attCol[i] = minAttenuation(maxMJ, uj)
			rateCol[i] = maxRepRate(req.MaxPower.Watts(), uj, attCol[i])
		}
		if err := att.SetColumn(col, attCol); err != nil {
			return nil, err
		}
		if err := rate.SetColumn(col, rateCol); err != nil {
			return nil, err
		}
	}
	return &Limits{State: req.State, MinAttenuation: att, MaxRepRate: rate}, nil
}

// checkColumns verifies the photon-energy columns in both directions before
// any cell is computed.
func checkColumns(req Requirement, beam *table.Table) error {
	for _, col := range beam.Cols() {
		if _, ok := req.MaxPulseEnergyMJ[col]; !ok {
			return fmt.Errorf("state %q tolerances: %w %q", req.State, table.ErrMissingColumn, col)
		}
	}
	for col := range req.MaxPulseEnergyMJ {
		if !beam.HasColumn(col) {
			return fmt.Errorf("beam table: %w %q (required by state %q)", table.ErrMissingColumn, col, req.State)
		}
	}
	return nil
}

// minAttenuation returns the smallest attenuation that keeps one pulse at or
// below the tolerable single-pulse energy. The allowed transmission is
// clamped to 1 and rounded before the subtraction, so a tolerance at or
// above the prediction yields exactly 0.
func minAttenuation(maxPulseMJ, predictedUJ float64) float64 {
	allowed := math.Inf(1) // zero predicted energy tolerates full transmission
	if predictedUJ != 0 {
		allowed = maxPulseMJ / (predictedUJ / 1000)
	}
	allowed = math.Min(allowed, 1)
	return 1 - round2(allowed)
}

// maxRepRate returns the fastest repetition rate in Hz that keeps deposited
// power at or below maxPowerW. The attenuation fraction is subtracted from
// the rate in Hz rather than folded into the per-pulse energy; kept
// bit-compatible with the commissioning spreadsheets this tool replaces.
func maxRepRate(maxPowerW, predictedUJ, minAtt float64) float64 {
	rate := math.Inf(1) // zero predicted energy deposits no power at any rate
	if predictedUJ != 0 {
		rate = maxPowerW/(predictedUJ/1e6) - minAtt
	}
	return round0(rate)
}

// round2 rounds to two decimals, halves to even.
func round2(v float64) float64 { return scalar.RoundEven(v, 2) }

// round0 rounds to the nearest integer, halves to even.
func round0(v float64) float64 { return scalar.RoundEven(v, 0) }

// Save writes both limit tables as CSV files in dir. File names derive from
// the state with spaces replaced by underscores:
// {STATE}_min_attenuation.csv and {STATE}_max_rep_rate.csv. Existing files
// are overwritten.
func (l *Limits) Save(dir string) (string, string, error) {
	base := strings.ReplaceAll(l.State, " ", "_")
	attPath := filepath.Join(dir, base+"_min_attenuation.csv")
	ratePath := filepath.Join(dir, base+"_max_rep_rate.csv")
	if err := l.MinAttenuation.WriteCSV(attPath); err != nil {
		return "", "", err
	}
	if err := l.MaxRepRate.WriteCSV(ratePath); err != nil {
		return "", "", err
	}
	return attPath, ratePath, nil
}
