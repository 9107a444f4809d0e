package disloc

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/lmplog"
	"gonum.org/v1/gonum/mat"
)

func snapWithCSP(timestep int, csp []float64, types []int) *crys.Snapshot {
	n := len(csp)
	ids := make([]int, n)
	coords := make([]float64, 3*n)
	for i := range ids {
		ids[i] = i + 1
		coords[3*i] = float64(i)
	}
	return &crys.Snapshot{
		Timestep: timestep,
		Box:      [3][2]float64{{0, 100}, {0, 100}, {0, 100}},
		HasBox:   true,
		IDs:      ids,
		Types:    types,
		CSP:      csp,
		Coords:   mat.NewDense(n, 3, coords),
	}
}

func TestCountAndDensity(Te *testing.T) {
	csp := []float64{0.1, 2.5, 3.0, 1.9}
	if n := Count(csp, DefaultThreshold); n != 2 {
		Te.Errorf("Count: got %d, want 2", n)
	}
	//2 atoms, 1 Å of line each, over a (100 Å)^3 box
	vol := 1e6 * 1e-30
	want := 2.0 * 1e-10 / vol
	if got := Density(2, vol); math.Abs(got-want) > want*1e-12 {
		Te.Errorf("Density: got %v, want %v", got, want)
	}
	if Density(2, 0) != 0 {
		Te.Error("degenerate volume should give zero density")
	}
}

func TestEvolution(Te *testing.T) {
	snaps := []*crys.Snapshot{
		snapWithCSP(2000, []float64{0.5, 2.5, 2.6}, []int{1, 2, 2}),
		snapWithCSP(0, []float64{0.5, 0.4, 0.3}, []int{1, 2, 3}),
	}
	ser := &lmplog.Series{Label: "Pzz", Steps: []int{0, 2000}, Strain: []float64{0, 0.02}, Stress: []float64{10, 400}}
	evo := Evolution(snaps, ser, DefaultThreshold)
	if len(evo.Timesteps) != 2 || evo.Timesteps[0] != 0 {
		Te.Fatalf("evolution not sorted by timestep: %v", evo.Timesteps)
	}
	if evo.NDisloc[0] != 0 || evo.NDisloc[1] != 2 {
		Te.Errorf("dislocation counts: %v", evo.NDisloc)
	}
	if evo.NGrains[0] != 3 || evo.NGrains[1] != 2 {
		Te.Errorf("grain counts: %v", evo.NGrains)
	}
	if len(evo.MatchedStrain) != 2 || evo.MatchedStrain[1] != 0.02 {
		Te.Errorf("strain matching: %v", evo.MatchedStrain)
	}
	//without a series there is simply no correlation data
	evo = Evolution(snaps, nil, DefaultThreshold)
	if len(evo.MatchedStrain) != 0 {
		Te.Errorf("unexpected matched strain without a series: %v", evo.MatchedStrain)
	}
}

func TestWriteMarkdown(Te *testing.T) {
	snaps := []*crys.Snapshot{
		snapWithCSP(0, []float64{0.5, 0.4}, []int{1, 1}),
		snapWithCSP(3000, []float64{2.5, 2.6}, []int{1, 1}),
		snapWithCSP(6000, []float64{2.5, 0.1}, []int{1, 1}),
	}
	evo := Evolution(snaps, nil, DefaultThreshold)
	name := filepath.Join(Te.TempDir(), "dislocation_evolution_report.md")
	if err := evo.WriteMarkdown(name); err != nil {
		Te.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	report := string(data)
	for _, want := range []string{
		"# Dislocation Evolution Report",
		"Total number of timesteps analyzed: 3",
		"Initial phase (0-1000)",
		"Middle phase (1000-5000)",
		"Final phase (5000-end)",
		"Stress-strain data not available",
	} {
		if !strings.Contains(report, want) {
			Te.Errorf("report missing %q", want)
		}
	}
}

func TestExportXYZ(Te *testing.T) {
	s := snapWithCSP(0, []float64{0.5, 3.5}, []int{1, 2})
	name := filepath.Join(Te.TempDir(), "frame_0.xyz")
	if err := ExportXYZ(s, name); err != nil {
		Te.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		Te.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "2" || !strings.HasPrefix(lines[1], "Frame at timestep 0") {
		Te.Errorf("bad header: %q %q", lines[0], lines[1])
	}
	if fields := strings.Fields(lines[3]); len(fields) != 5 || fields[0] != "2" {
		Te.Errorf("bad atom line: %q", lines[3])
	}
}
