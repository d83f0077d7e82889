package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/host"
	"github.com/spf13/cobra"

	"github.com/teddyrendahl/pymps/pkg/limits"
	"github.com/teddyrendahl/pymps/pkg/recording"
	"github.com/teddyrendahl/pymps/pkg/table"
	"github.com/teddyrendahl/pymps/pkg/types"
)

var pretty bool

type opts struct {
	// inputs
	beam  string
	state string
	all   bool

	// outputs
	output   string
	jsonPath string
	htmlPath string
	open     bool
	record   string
}

func main() {
	_ = godotenv.Load()

	var o opts

	root := &cobra.Command{
		Use:   "pymps REQUIREMENTS_CSV",
		Short: "Beamline protection limit calculator",
		Long: `pymps derives machine protection limits for beamline devices.
Given a device tolerance table (CSV) and the predicted single-pulse energies
of the photon beam, it writes one minimum-attenuation table and one maximum
repetition-rate table per device state.

* GitHub: https://github.com/teddyrendahl/pymps

Examples:
  pymps requirements.csv
  pymps -s "Mirror IN" --beam lookup/beam.csv -o limits/ requirements.csv
  pymps --all --json report.json --html report.html --open requirements.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(o, args[0])
		},
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "print the computed tables to stdout")
	root.Flags().StringVarP(&o.beam, "beam", "b", envOr("PYMPS_BEAM", "beam.csv"), "predicted pulse-energy table (env PYMPS_BEAM)")
	root.Flags().StringVarP(&o.output, "output", "o", envOr("PYMPS_OUTPUT", "."), "directory for the limit CSV files (env PYMPS_OUTPUT)")
	root.Flags().StringVarP(&o.state, "state", "s", "", "device state to compute (default: first state in the file)")
	root.Flags().BoolVarP(&o.all, "all", "a", false, "compute limits for every state in the file")

	root.Flags().StringVar(&o.jsonPath, "json", "", "write all computed tables to a JSON report")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write all computed tables to an HTML report")
	root.Flags().BoolVar(&o.open, "open", false, "open the HTML report in the default browser")
	root.Flags().StringVar(&o.record, "record", envOr("PYMPS_RECORD", ""), "append runs to a SQLite audit database (env PYMPS_RECORD)")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts, reqPath string) error {
	if o.all && o.state != "" {
		return fmt.Errorf("--state and --all are mutually exclusive")
	}

	hostname, kernel := hostSummary()
	fmt.Printf(_console, hostname, kernel, reqPath, o.beam, time.Now().Format("2006-01-02 15:04:05"))

	reqs, err := limits.LoadRequirements(reqPath)
	if err != nil {
		return err
	}
	beam, err := limits.LoadBeam(o.beam)
	if err != nil {
		return err
	}

	selected := reqs[:1] // default: the first state in the file
	switch {
	case o.all:
		selected = reqs
	case o.state != "":
		req, err := reqs.Get(o.state)
		if err != nil {
			return err
		}
		selected = limits.Requirements{req}
	}

	// Compute every table before writing anything, so a bad state or a
	// column mismatch leaves no partial output behind.
	results := make([]*limits.Limits, 0, len(selected))
	for _, req := range selected {
		l, err := limits.Compute(req, beam)
		if err != nil {
			return err
		}
		results = append(results, l)
	}

	if err := os.MkdirAll(o.output, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	for i, l := range results {
		attPath, ratePath, err := l.Save(o.output)
		if err != nil {
			return err
		}
		fmt.Printf("# %s (max power %s): wrote %s, %s\n", l.State, selected[i].MaxPower.Humanized(), attPath, ratePath)
		fmt.Printf("# pulse tolerances: %s\n", selected[i].Tolerances(l.MinAttenuation.Cols()))
		if pretty {
			printLimits(l)
		}
	}

	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, reqPath, o.beam, selected, results); err != nil {
			return err
		}
		fmt.Printf("# json report: %s\n", o.jsonPath)
	}
	if o.htmlPath != "" {
		if err := writeHTMLReport(o.htmlPath, reqPath, o.beam, selected, results); err != nil {
			return err
		}
		fmt.Printf("# html report: %s\n", o.htmlPath)
		if o.open {
			if err := browser.OpenFile(o.htmlPath); err != nil {
				slog.Warn("open report", "err", err)
			}
		}
	}
	if o.record != "" {
		if err := record(o, reqPath, selected, results); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Printf("pymps wrote %d limit table(s) for %d state(s) to %s\n", 2*len(results), len(results), o.output)
	fmt.Println()

	return nil
}

func record(o opts, reqPath string, selected limits.Requirements, results []*limits.Limits) error {
	rec, err := recording.Open(o.record)
	if err != nil {
		return err
	}
	defer rec.Close()

	hostname, _ := hostSummary()
	cmdline := strings.Join(os.Args, " ")
	for i, l := range results {
		id, err := rec.Record(recording.Run{
			State:        l.State,
			Requirements: reqPath,
			Beam:         o.beam,
			MaxPowerW:    selected[i].MaxPower.Watts(),
			Command:      cmdline,
			Hostname:     hostname,
		}, l)
		if err != nil {
			return err
		}
		fmt.Printf("# recorded run %s for state %q in %s\n", id, l.State, o.record)
	}
	return nil
}

func hostSummary() (hostname, kernel string) {
	info, err := host.Info()
	if err != nil {
		return "unknown", "unknown"
	}
	return info.Hostname, info.KernelVersion
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newTable() *tabwriter.Writer {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	return tw
}

func printLimits(l *limits.Limits) {
	fmt.Printf("\n%s - minimum attenuation (fraction):\n", l.State)
	printTable(l.MinAttenuation, func(v float64) string { return fmt.Sprintf("%.2f", v) })
	fmt.Printf("\n%s - maximum repetition rate:\n", l.State)
	printTable(l.MaxRepRate, func(v float64) string { return types.Frequency(v).Humanized() })
	fmt.Println()
}

func printTable(t *table.Table, cell func(float64) string) {
	tw := newTable()
	cols := t.Cols()

	header := t.Corner()
	rule := strings.Repeat("-", len(t.Corner()))
	for _, c := range cols {
		header += "\t" + c + " keV"
		rule += "\t" + strings.Repeat("-", len(c)+4)
	}
	fmt.Fprintln(tw, header)
	fmt.Fprintln(tw, rule)

	for i, label := range t.Rows() {
		line := label
		for j := range cols {
			line += "\t" + cell(t.Value(i, j))
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
}

// jsonFloat renders non-finite cells as null, which encoding/json rejects
// for plain float64 values.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

type jsonTable struct {
	BunchCharges   []string      `json:"bunch_charges"`
	PhotonEnergies []string      `json:"photon_energies"`
	Cells          [][]jsonFloat `json:"cells"`
}

type jsonState struct {
	State          string    `json:"state"`
	MaxPowerW      float64   `json:"max_power_w"`
	MinAttenuation jsonTable `json:"min_attenuation"`
	MaxRepRateHz   jsonTable `json:"max_rep_rate_hz"`
}

type report struct {
	GeneratedAt  time.Time   `json:"generated_at"`
	Requirements string      `json:"requirements"`
	Beam         string      `json:"beam"`
	States       []jsonState `json:"states"`
}

func writeJSON(path, reqPath, beamPath string, selected limits.Requirements, results []*limits.Limits) error {
	states := make([]jsonState, 0, len(results))
	for i, l := range results {
		states = append(states, jsonState{
			State:          l.State,
			MaxPowerW:      selected[i].MaxPower.Watts(),
			MinAttenuation: tableJSON(l.MinAttenuation),
			MaxRepRateHz:   tableJSON(l.MaxRepRate),
		})
	}
	rep := report{
		GeneratedAt:  time.Now(),
		Requirements: reqPath,
		Beam:         beamPath,
		States:       states,
	}

	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func tableJSON(t *table.Table) jsonTable {
	rows := t.Rows()
	cols := t.Cols()
	cells := make([][]jsonFloat, len(rows))
	for i := range rows {
		cells[i] = make([]jsonFloat, len(cols))
		for j := range cols {
			cells[i][j] = jsonFloat(t.Value(i, j))
		}
	}
	return jsonTable{BunchCharges: rows, PhotonEnergies: cols, Cells: cells}
}

type htmlTable struct {
	Corner string
	Cols   []string
	Rows   []htmlRow
}

type htmlRow struct {
	Label string
	Cells []string
}

func tableHTML(t *table.Table, cell func(float64) string) htmlTable {
	cols := t.Cols()
	out := htmlTable{Corner: t.Corner(), Cols: cols}
	for i, label := range t.Rows() {
		r := htmlRow{Label: label}
		for j := range cols {
			r.Cells = append(r.Cells, cell(t.Value(i, j)))
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

func writeHTMLReport(path, reqPath, beamPath string, selected limits.Requirements, results []*limits.Limits) error {
	type stateView struct {
		State      string
		MaxPower   string
		Tolerances string
		Att        htmlTable
		Rate       htmlTable
	}
	type view struct {
		GeneratedAt  string
		Requirements string
		Beam         string
		States       []stateView
	}

	states := make([]stateView, 0, len(results))
	for i, l := range results {
		states = append(states, stateView{
			State:      l.State,
			MaxPower:   selected[i].MaxPower.Humanized(),
			Tolerances: selected[i].Tolerances(l.MinAttenuation.Cols()),
			Att:        tableHTML(l.MinAttenuation, func(v float64) string { return fmt.Sprintf("%.2f", v) }),
			Rate:       tableHTML(l.MaxRepRate, func(v float64) string { return types.Frequency(v).Humanized() }),
		})
	}
	data := view{
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05"),
		Requirements: reqPath,
		Beam:         beamPath,
		States:       states,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>pymps Limit Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2,h3{margin:0 0 8px}
table{border-collapse:collapse;font-size:14px;margin:0 0 14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
code{background:#f5f5f5;padding:2px 4px;border-radius:4px}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
</style>

<h1><a href="https://github.com/teddyrendahl/pymps" target="_blank" rel="noopener noreferrer" style="color:inherit;text-decoration:none;">pymps Limit Report</a></h1>

<p class="small">
Generated: {{.GeneratedAt}} &nbsp;|&nbsp;
Requirements: <code>{{.Requirements}}</code> &nbsp;|&nbsp;
Beam: <code>{{.Beam}}</code>
</p>

{{range .States}}
<h2><span class="badge">{{.State}}</span> max power {{.MaxPower}}</h2>
<p class="small">pulse tolerances: {{.Tolerances}}</p>

<h3>Minimum attenuation</h3>
<table>
<thead><tr><th>{{.Att.Corner}}</th>{{range .Att.Cols}}<th>{{.}} keV</th>{{end}}</tr></thead>
<tbody>
{{range .Att.Rows}}
<tr><td>{{.Label}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>

<h3>Maximum repetition rate</h3>
<table>
<thead><tr><th>{{.Rate.Corner}}</th>{{range .Rate.Cols}}<th>{{.}} keV</th>{{end}}</tr></thead>
<tbody>
{{range .Rate.Rows}}
<tr><td>{{.Label}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>
{{end}}
</html>`))

const _console = `pymps - Beamline Protection Limit Calculator

* GitHub: https://github.com/teddyrendahl/pymps

       Host: %s
       Kernel: %s
       Requirements: %s
       Beam table: %s

Protection limit report as of %s:

`
