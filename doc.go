/*
 * doc.go, part of gocrys.
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

/*
Package crys is a toolkit for setting up and post-processing molecular
dynamics simulations of Voronoi polycrystals.

goCrys does not perform any physics itself. It prepares inputs for, and
digests outputs of, external programs (a polycrystal structure generator
and a molecular dynamics engine), turning line-oriented text dumps and
run logs into per-timestep records, derived scalars, plots and a PDF
report.


	**goCrys Capabilities**


    Reads and writes LAMMPS-style trajectory dump files, plain or
	compressed (zstd, gzip), tolerating the malformed records the
	generating tools sometimes emit.

    Extracts engineering stress-strain series from a simulation run log.

    Generates Voronoi polycrystal seed geometries and drives an external
	structure generator over them.

    Computes per-timestep deformation (average displacement magnitude)
	and centro-symmetry based dislocation statistics.

    Renders stress-strain curves, evolution plots and histograms, and
	collects everything into a single PDF project report.

Each cmd/ program is an independent, flag-less script over flat files;
there is no shared runtime and no concurrency. The root package only
holds the types and interfaces the others agree on.
*/
package crys
