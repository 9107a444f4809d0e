/*
 * snapshot.go, part of gocrys.
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

package crys

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Snapshot holds the full particle/box state of the simulated system at
// one timestep. Particle order is the order of appearance in the source
// file. CSP is nil when the source did not carry a centro-symmetry
// column. Coordinates are a Nx3 gonum matrix, one row per particle.
type Snapshot struct {
	Timestep int
	Box      [3][2]float64 //lo,hi per axis
	HasBox   bool
	IDs      []int
	Types    []int
	CSP      []float64
	Coords   *mat.Dense
}

// Len returns the number of particles in the snapshot.
func (S *Snapshot) Len() int {
	return len(S.IDs)
}

// BoxVolume returns the volume of the simulation cell, in the cube of
// whatever unit the bounds use (Å^3 for the dumps this library reads).
// It returns 0 if the snapshot carries no box.
func (S *Snapshot) BoxVolume() float64 {
	if !S.HasBox {
		return 0
	}
	v := 1.0
	for _, b := range S.Box {
		v *= b[1] - b[0]
	}
	return v
}

// UniqueTypes returns the sorted set of particle type labels present in
// the snapshot. In a polycrystal dump each grain carries its own type,
// so this is the grain count.
func (S *Snapshot) UniqueTypes() []int {
	seen := make(map[int]bool)
	for _, t := range S.Types {
		seen[t] = true
	}
	uniq := make([]int, 0, len(seen))
	for t := range seen {
		uniq = append(uniq, t)
	}
	sort.Ints(uniq)
	return uniq
}

// SortByTimestep sorts the given snapshots in place by increasing
// timestep. Readers emit snapshots in file order and never sort, so
// analyses that need a time axis call this first.
func SortByTimestep(snaps []*Snapshot) {
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestep < snaps[j].Timestep })
}
