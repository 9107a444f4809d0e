/*
 * grain.go, part of gocrys.
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

//Package grain sets up Voronoi polycrystal geometries for an external
//structure generator (atomsk). It picks grain centers and lattice
//orientations, writes the generator's parameter file and a seed unit
//cell, and runs the generator as a subprocess. No physics happens here;
//the only contract with the generator is that its output parses as a
//dump trajectory.
package grain

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
)

//Params describes one polycrystal to be generated: a cubic box of
//BoxSize Å holding NGrains randomly placed, randomly oriented grains.
//The same Seed always produces the same geometry.
type Params struct {
	BoxSize float64
	NGrains int
	Seed    int64
}

//A Grain is one Voronoi cell: its center and the Euler angles (degrees)
//of its lattice orientation.
type Grain struct {
	Center      [3]float64
	Orientation [3]float64 //phi1, Phi, phi2
}

//Grains returns the grain centers and orientations for the given
//parameters. Centers are uniform inside the box, angles uniform in
//[0, 360).
func (P *Params) Grains() []Grain {
	rng := rand.New(rand.NewSource(P.Seed))
	grains := make([]Grain, P.NGrains)
	for i := range grains {
		for j := 0; j < 3; j++ {
			grains[i].Center[j] = rng.Float64() * P.BoxSize
		}
		for j := 0; j < 3; j++ {
			grains[i].Orientation[j] = rng.Float64() * 360.0
		}
	}
	return grains
}

//WriteParamFile writes the generator's polycrystal parameter file: the
//box line followed by one node line per grain.
func (P *Params) WriteParamFile(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "box %.2f %.2f %.2f\n", P.BoxSize, P.BoxSize, P.BoxSize)
	for _, g := range P.Grains() {
		fmt.Fprintf(bw, "node %.3f %.3f %.3f %.2f %.2f %.2f\n",
			g.Center[0], g.Center[1], g.Center[2],
			g.Orientation[0], g.Orientation[1], g.Orientation[2])
	}
	return bw.Flush()
}

//WriteSeedCell writes a placeholder FCC aluminium unit cell in the
//engine's data format, for when no seed cell is provided. The lattice
//constant is the experimental 4.05 Å.
func WriteSeedCell(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can't create seed cell %s: %w", filename, err)
	}
	defer f.Close()
	const cell = `LAMMPS data file via goCrys

1 atoms
1 atom types

0.0 4.05 xlo xhi
0.0 4.05 ylo yhi
0.0 4.05 zlo zhi

Masses

1 26.981540

Atoms # atomic

1 1 0.0 0.0 0.0
`
	_, err = f.WriteString(cell)
	return err
}

//Generate runs the external structure generator over seedFile and
//paramFile, producing outFile. The generator's chatter goes to the
//given writer (nil for discard). Whatever the generator writes to
//outFile must be valid dump input; that is the whole contract.
func Generate(atomskPath, seedFile, paramFile, outFile string, chatter io.Writer) error {
	if chatter == nil {
		chatter = io.Discard
	}
	cmd := exec.Command(atomskPath, "--polycrystal", seedFile, paramFile, outFile, "-wrap")
	cmd.Stdout = chatter
	cmd.Stderr = chatter
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("structure generator failed: %w", err)
	}
	return nil
}
