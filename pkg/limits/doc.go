// Package limits derives per-device protection limits for an FEL beamline
// from two CSV tables: a device tolerance table and a predicted pulse-energy
// table.
//
// # Inputs
//
// The tolerance table has one row per device state. Its columns are
// photon-energy bin labels plus one "Power" column:
//
//	State,9.0,12.0,Power
//	Mirror IN,1.2,2.4,200
//	Mirror OUT,0.05,0.1,20
//
// Photon-energy cells are the largest tolerable single-pulse energy in
// millijoules; Power is the largest tolerable continuous power in Watts.
//
// The beam table has one row per bunch charge and the same photon-energy
// columns; cells are predicted single-pulse energies in microjoules:
//
//	Bunch Charge,9.0,12.0
//	20,0.12,0.5
//	50,1.2,5.0
//
// # Limits
//
// For every (bunch charge, photon energy) cell the package derives:
//
//	allowed = min(maxPulseMJ / (predictedUJ / 1000), 1)
//	minAtt  = 1 - round2(allowed)
//
//	maxRate = round0(maxPowerW / (predictedUJ / 1e6) - minAtt)   // Hz
//
// round2 rounds to two decimals and round0 to integers, both half to even.
// The attenuation fraction is subtracted from the rate in Hz rather than
// folded into the per-pulse energy; this keeps results bit-compatible with
// the commissioning spreadsheets the tool replaces.
//
// Edge cases
//
//   - A predicted pulse energy of zero tolerates full transmission at any
//     rate: the cell yields minAtt 0 and maxRate +Inf.
//   - A tolerance at or above the predicted energy also yields minAtt 0.
//   - Photon-energy columns must agree between the two tables in both
//     directions; a column present on one side only fails the whole
//     computation before any cell is produced.
//
// # Outputs
//
// Limits.Save writes the two tables side by side as
// {STATE}_min_attenuation.csv and {STATE}_max_rep_rate.csv, with spaces in
// the state name replaced by underscores.
//
// Errors (errs.go)
//
//	ErrNoPower         : tolerance table lacks the Power column
//	ErrNoPhotonColumns : tolerance table has no photon-energy columns
//	ErrUnknownState    : requested state not present in the tolerance table
//	ErrNegativeValue   : a negative energy or power in an input table
//
// Example
//
//	/*
//	reqs, err := limits.LoadRequirements("requirements.csv")
//	if err != nil { log.Fatal(err) }
//	beam, err := limits.LoadBeam("beam.csv")
//	if err != nil { log.Fatal(err) }
//
//	req, err := reqs.Get("Mirror IN")
//	if err != nil { log.Fatal(err) }
//	l, err := limits.Compute(req, beam)
//	if err != nil { log.Fatal(err) }
//	attPath, ratePath, err := l.Save(".")
//	*/
//
// Package import path: github.com/teddyrendahl/pymps/pkg/limits
package limits
