/*
 * disloc.go, part of gocrys.
 *
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goCrys is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package disloc estimates dislocation content from the centro-symmetry
//parameter (CSP) carried by a trajectory. Atoms whose CSP exceeds a
//threshold sit in a distorted environment and are counted as
//dislocation atoms; each contributes a nominal 1 Å of dislocation line,
//which over the box volume gives a density in m^-2. Snapshots without a
//CSP column contribute zero counts.
package disloc

import (
	"bufio"
	"fmt"
	"os"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/lmplog"
	"gonum.org/v1/gonum/stat"
)

//DefaultThreshold is the CSP value above which an atom is counted as
//belonging to a dislocation, in an FCC lattice.
const DefaultThreshold = 2.0

//Count returns the number of atoms whose CSP exceeds the threshold.
func Count(csp []float64, threshold float64) int {
	n := 0
	for _, v := range csp {
		if v > threshold {
			n++
		}
	}
	return n
}

//Density converts a dislocation atom count into a line density, with
//each atom contributing 1 Å of line over the given box volume in m^3.
//It returns 0 for a degenerate volume.
func Density(nAtoms int, volM3 float64) float64 {
	if volM3 <= 0 {
		return 0
	}
	return float64(nAtoms) * 1e-10 / volM3
}

//Evo is the time evolution of the dislocation statistics, in increasing
//timestep order, plus the (strain, density) pairs for the timesteps
//shared with a stress-strain series.
type Evo struct {
	Threshold      float64
	Timesteps      []int
	Density        []float64 //m^-2
	NDisloc        []int
	NGrains        []int
	MatchedStrain  []float64
	MatchedDensity []float64
}

//Evolution computes the dislocation statistics of every snapshot, and,
//when a stress-strain series is given (nil is fine), correlates density
//with strain on the timesteps both have.
func Evolution(snaps []*crys.Snapshot, ser *lmplog.Series, threshold float64) *Evo {
	sorted := make([]*crys.Snapshot, len(snaps))
	copy(sorted, snaps)
	crys.SortByTimestep(sorted)
	evo := &Evo{Threshold: threshold}
	for _, s := range sorted {
		n := Count(s.CSP, threshold)
		evo.Timesteps = append(evo.Timesteps, s.Timestep)
		evo.NDisloc = append(evo.NDisloc, n)
		evo.Density = append(evo.Density, Density(n, s.BoxVolume()*1e-30))
		evo.NGrains = append(evo.NGrains, len(s.UniqueTypes()))
	}
	if ser != nil {
		strainAt := make(map[int]float64, ser.Len())
		for i, step := range ser.Steps {
			strainAt[step] = ser.Strain[i]
		}
		for i, t := range evo.Timesteps {
			if strain, ok := strainAt[t]; ok {
				evo.MatchedStrain = append(evo.MatchedStrain, strain)
				evo.MatchedDensity = append(evo.MatchedDensity, evo.Density[i])
			}
		}
	}
	return evo
}

//phaseMean averages the densities of the timesteps accepted by the
//filter, or reports that the phase holds no data.
func (E *Evo) phaseMean(in func(int) bool) (float64, bool) {
	var vals []float64
	for i, t := range E.Timesteps {
		if in(t) {
			vals = append(vals, E.Density[i])
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

//meanGrains is the average grain count across the trajectory.
func (E *Evo) meanGrains() float64 {
	g := make([]float64, len(E.NGrains))
	for i, n := range E.NGrains {
		g[i] = float64(n)
	}
	return stat.Mean(g, nil)
}

//WriteMarkdown writes the dislocation evolution report consumed by the
//PDF builder.
func (E *Evo) WriteMarkdown(filename string) error {
	if len(E.Timesteps) == 0 {
		return fmt.Errorf("nothing to report: no timesteps analyzed")
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can't create report %s: %w", filename, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	fmt.Fprintf(w, "# Dislocation Evolution Report\n\n")
	fmt.Fprintf(w, "## Time Evolution Analysis\n\n")
	fmt.Fprintf(w, "Total number of timesteps analyzed: %d\n", len(E.Timesteps))
	fmt.Fprintf(w, "Initial dislocation density: %.2e m^-2\n", E.Density[0])
	fmt.Fprintf(w, "Final dislocation density: %.2e m^-2\n", E.Density[len(E.Density)-1])
	max := E.Density[0]
	for _, d := range E.Density {
		if d > max {
			max = d
		}
	}
	fmt.Fprintf(w, "Maximum dislocation density: %.2e m^-2\n", max)
	fmt.Fprintf(w, "Average number of grains: %.1f\n\n", E.meanGrains())
	fmt.Fprintf(w, "## Key Observations\n\n")
	fmt.Fprintf(w, "1. Dislocation density evolution shows the following trends:\n")
	phases := []struct {
		name string
		in   func(int) bool
	}{
		{"Initial phase (0-1000)", func(t int) bool { return t <= 1000 }},
		{"Middle phase (1000-5000)", func(t int) bool { return t > 1000 && t <= 5000 }},
		{"Final phase (5000-end)", func(t int) bool { return t > 5000 }},
	}
	for _, p := range phases {
		if mean, ok := E.phaseMean(p.in); ok {
			fmt.Fprintf(w, "   - %s: Average density %.2e m^-2\n", p.name, mean)
		} else {
			fmt.Fprintf(w, "   - %s: No data in this phase\n", p.name)
		}
	}
	fmt.Fprintf(w, "\n2. Correlation with stress-strain data:\n")
	if len(E.MatchedStrain) > 0 {
		fmt.Fprintf(w, "   - Stress-strain data available for correlation analysis\n")
		fmt.Fprintf(w, "   - See the strain-dislocation correlation plot\n")
	} else {
		fmt.Fprintf(w, "   - Stress-strain data not available for correlation analysis\n")
	}
	return nil
}

//ExportXYZ writes one snapshot as a simple xyz-like file for external
//visualization: an atom count, a comment, then one "type x y z csp"
//line per atom.
func ExportXYZ(snap *crys.Snapshot, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can't create %s: %w", filename, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	fmt.Fprintf(w, "%d\n", snap.Len())
	fmt.Fprintf(w, "Frame at timestep %d\n", snap.Timestep)
	for i := 0; i < snap.Len(); i++ {
		csp := 0.0
		if snap.CSP != nil {
			csp = snap.CSP[i]
		}
		fmt.Fprintf(w, "%d %.6f %.6f %.6f %.6f\n", snap.Types[i],
			snap.Coords.At(i, 0), snap.Coords.At(i, 1), snap.Coords.At(i, 2), csp)
	}
	return nil
}
