/*
 * deform.go, part of gocrys.
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

//Package deform quantifies how much a structure has deformed along a
//trajectory: for every snapshot, the average magnitude of the
//per-particle displacement with respect to the first snapshot.
package deform

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"

	crys "github.com/rmera/gocrys"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Displacements returns the per-particle Euclidean displacement
//magnitudes between two Nx3 coordinate blocks. Both matrices must have
//the same shape.
func Displacements(ref, cur *mat.Dense) ([]float64, error) {
	rr, rc := ref.Dims()
	cr, cc := cur.Dims()
	if rr != cr || rc != cc {
		return nil, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", rr, rc, cr, cc)
	}
	d := make([]float64, rr)
	for i := 0; i < rr; i++ {
		var d2 float64
		for j := 0; j < 3; j++ {
			v := cur.At(i, j) - ref.At(i, j)
			d2 += v * v
		}
		d[i] = math.Sqrt(d2)
	}
	return d, nil
}

//Result is a deformation curve: one average displacement magnitude per
//analyzed timestep, in increasing timestep order.
type Result struct {
	Timesteps []int
	AvgDispl  []float64
	Skipped   int //frames dropped for not matching the reference shape
}

//Analyze computes the deformation curve of a trajectory against its
//first (lowest-timestep) snapshot. Snapshots whose particle count does
//not match the reference can not be compared particle-by-particle and
//are skipped with a heads-up.
func Analyze(snaps []*crys.Snapshot) (*Result, error) {
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no snapshots to analyze")
	}
	sorted := make([]*crys.Snapshot, len(snaps))
	copy(sorted, snaps)
	crys.SortByTimestep(sorted)
	ref := sorted[0]
	res := &Result{}
	for _, s := range sorted {
		d, err := Displacements(ref.Coords, s.Coords)
		if err != nil {
			log.Printf("skipping timestep %d: %v", s.Timestep, err)
			res.Skipped++
			continue
		}
		res.Timesteps = append(res.Timesteps, s.Timestep)
		res.AvgDispl = append(res.AvgDispl, stat.Mean(d, nil))
	}
	return res, nil
}

//Phase buckets a timestep into the deformation phases the reports use.
func Phase(timestep int) string {
	switch {
	case timestep <= 1000:
		return "Initial"
	case timestep <= 5000:
		return "Transition"
	}
	return "Final"
}

//WriteMarkdown writes the deformation report consumed by the PDF
//builder: a summary followed by a per-timestep table.
func (R *Result) WriteMarkdown(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can't create report %s: %w", filename, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	fmt.Fprintf(w, "# Deformation Report\n\n")
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "Timesteps analyzed: %d\n", len(R.Timesteps))
	if R.Skipped > 0 {
		fmt.Fprintf(w, "Frames skipped (shape mismatch): %d\n", R.Skipped)
	}
	if n := len(R.AvgDispl); n > 0 {
		fmt.Fprintf(w, "Final average displacement magnitude: %.6f\n", R.AvgDispl[n-1])
	}
	fmt.Fprintf(w, "\n## Displacement by Timestep\n\n")
	fmt.Fprintf(w, "| Timestep | Avg Displacement | Phase |\n")
	fmt.Fprintf(w, "|----------|------------------|-------|\n")
	for i, t := range R.Timesteps {
		fmt.Fprintf(w, "| %d | %.6f | %s |\n", t, R.AvgDispl[i], Phase(t))
	}
	return nil
}
