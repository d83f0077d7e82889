package limits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teddyrendahl/pymps/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRequirements(t *testing.T) {
	path := writeFile(t, "requirements.csv",
		"State,8.0,9.5,Power\nMirror IN,1.2,2.4,200\nMirror OUT,0.05,0.1,20\n")
	reqs, err := LoadRequirements(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	// file order is preserved
	assert.Equal(t, []string{"Mirror IN", "Mirror OUT"}, reqs.States())

	first := reqs[0]
	assert.Equal(t, "Mirror IN", first.State)
	assert.Equal(t, map[string]float64{"8.0": 1.2, "9.5": 2.4}, first.MaxPulseEnergyMJ)
	assert.Equal(t, 200*types.Watt, first.MaxPower)

	got, err := reqs.Get("Mirror OUT")
	require.NoError(t, err)
	assert.InDelta(t, 0.05, got.MaxPulseEnergyMJ["8.0"], 0)
	assert.Equal(t, 20*types.Watt, got.MaxPower)

	_, err = reqs.Get("GONE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.Contains(t, err.Error(), "Mirror IN, Mirror OUT")
}

func TestLoadRequirements_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error // matched with errors.Is when set
	}{
		{"empty file", "", nil},
		{"no Power column", "State,8.0,9.5\nOPEN,1,2\n", ErrNoPower},
		{"only Power column", "State,Power\nOPEN,200\n", ErrNoPhotonColumns},
		{"negative pulse energy", "State,8.0,Power\nOPEN,-1,200\n", ErrNegativeValue},
		{"negative power", "State,8.0,Power\nOPEN,1,-5\n", ErrNegativeValue},
		{"unparseable cell", "State,8.0,Power\nOPEN,x,200\n", nil},
		{"duplicate state row", "State,8.0,Power\nOPEN,1,200\nOPEN,2,200\n", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "req.csv", tc.content)
			_, err := LoadRequirements(path)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
			t.Logf("rejected: %v", err)
		})
	}
}

func TestLoadRequirements_MissingFile(t *testing.T) {
	_, err := LoadRequirements(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRequirement_Tolerances(t *testing.T) {
	req := Requirement{
		State:            "Mirror IN",
		MaxPulseEnergyMJ: map[string]float64{"9.0": 1.2, "12.0": 0.05},
		MaxPower:         200 * types.Watt,
	}
	got := req.Tolerances([]string{"9.0", "12.0"})
	assert.Equal(t, "9.0 keV: 1.20 mJ, 12.0 keV: 50.00 µJ", got)
}

func TestLoadBeam(t *testing.T) {
	path := writeFile(t, "beam.csv", "Bunch Charge,8.0,9.5\n20,0.12,0.5\n100,8000,12000\n")
	beam, err := LoadBeam(path)
	require.NoError(t, err)

	assert.Equal(t, "Bunch Charge", beam.Corner())
	assert.Equal(t, []string{"20", "100"}, beam.Rows())
	assert.Equal(t, []string{"8.0", "9.5"}, beam.Cols())

	v, err := beam.At("100", "8.0")
	require.NoError(t, err)
	assert.InDelta(t, 8000, v, 0)
}

func TestLoadBeam_Rejects(t *testing.T) {
	bad := writeFile(t, "beam.csv", "Bunch Charge,8.0\n20,-1\n")
	_, err := LoadBeam(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = LoadBeam(filepath.Join(t.TempDir(), "beam.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
