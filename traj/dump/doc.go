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
 */

//Package dump reads and writes LAMMPS-style trajectory dump files, the
//line-oriented text format the external simulation engine and structure
//generator produce. Files with a .zst, .zstd or .gz extension are
//transparently (de)compressed.
//
//The format is a flat sequence of sections, each introduced by a marker
//line:
//
//	ITEM: TIMESTEP
//	1000
//	ITEM: NUMBER OF ATOMS
//	4
//	ITEM: BOX BOUNDS pp pp pp
//	0.0 100.0
//	0.0 100.0
//	0.0 100.0
//	ITEM: ATOMS id type x y z
//	1 1 10.5 20.3 5.0
//	...
//
//The ATOMS marker carries the column names; the reader resolves the
//index of each field it cares about once per header and reuses those
//indices for every data line until the next ATOMS marker. The declared
//NUMBER OF ATOMS is only a capacity hint: the generating tools emit
//wrong counts at times, so a section simply ends at the next marker or
//at end of file, whichever comes first.
//
//Error policy is two-tiered. A data line that does not tokenize or
//parse is skipped (and counted, see Skipped), so one corrupt record
//cannot abort a multi-gigabyte read. A truncated structural header
//(fewer than 3 BOX BOUNDS lines, an ATOMS header without the required
//column names) is unrecoverable and surfaces as a critical Error.
package dump
