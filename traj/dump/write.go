/*
 * write.go, part of gocrys.
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

package dump

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	crys "github.com/rmera/gocrys"
)

//DumpW writes a normalized dump trajectory with the fixed column set
//"id type x y z". Output is deterministic: same snapshots in, same
//bytes out.
type DumpW struct {
	f         *os.File
	z         io.WriteCloser //compressor, nil for plain files
	h         *bufio.Writer
	filename  string
	writeable bool
	defbox    [3][2]float64
}

//NewWriter creates a dump trajectory for writing. Compression is
//selected from the filename extension, as in New.
func NewWriter(name string) (*DumpW, error) {
	W := new(DumpW)
	W.filename = name
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	low := strings.ToLower(name)
	switch {
	case strings.HasSuffix(low, ".zst") || strings.HasSuffix(low, ".zstd"):
		W.z, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			W.f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
		}
		W.h = bufio.NewWriter(W.z)
	case strings.HasSuffix(low, ".gz"):
		W.z = gzip.NewWriter(W.f)
		W.h = bufio.NewWriter(W.z)
	default:
		W.h = bufio.NewWriter(W.f)
	}
	//the cuboid written for snapshots that carry no box of their own
	W.defbox = [3][2]float64{{0, 100}, {0, 100}, {0, 100}}
	W.writeable = true
	return W, nil
}

//SetDefaultBox replaces the cuboid written for snapshots that carry no
//box bounds of their own.
func (W *DumpW) SetDefaultBox(box [3][2]float64) {
	W.defbox = box
}

//WNext writes the given snapshot as the next frame. Particle order is
//preserved, floats are rendered with 6 decimal digits and a particle
//type of 1 is substituted when the snapshot carries no type
//information.
func (W *DumpW) WNext(snap *crys.Snapshot) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if snap == nil || snap.Coords == nil {
		return Error{NilSnapshot, W.filename, []string{"WNext"}, true}
	}
	n := snap.Len()
	if r, _ := snap.Coords.Dims(); r != n {
		return Error{fmt.Sprintf("%d ids given, but %d coordinate rows", n, r), W.filename, []string{"WNext"}, true}
	}
	fmt.Fprintf(W.h, "ITEM: TIMESTEP\n%d\n", snap.Timestep)
	fmt.Fprintf(W.h, "ITEM: NUMBER OF ATOMS\n%d\n", n)
	fmt.Fprintf(W.h, "ITEM: BOX BOUNDS pp pp pp\n")
	box := snap.Box
	if !snap.HasBox {
		box = W.defbox
	}
	for _, b := range box {
		fmt.Fprintf(W.h, "%.6f %.6f\n", b[0], b[1])
	}
	fmt.Fprintf(W.h, "ITEM: ATOMS id type x y z\n")
	for i := 0; i < n; i++ {
		typ := 1
		if snap.Types != nil {
			typ = snap.Types[i]
		}
		fmt.Fprintf(W.h, "%d %d %.6f %.6f %.6f\n", snap.IDs[i], typ,
			snap.Coords.At(i, 0), snap.Coords.At(i, 1), snap.Coords.At(i, 2))
	}
	//Fprintf results land in the buffer, so this flush is where a full
	//disk or a vanished file actually surfaces.
	if err := W.h.Flush(); err != nil {
		W.writeable = false
		return Error{WriteError + ": " + err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes and closes the file. The writer can not be used after
//this call. It is safe to call more than once, and it still releases
//the file after a failed WNext.
func (W *DumpW) Close() {
	if W == nil || W.f == nil {
		return
	}
	W.h.Flush()
	if W.z != nil {
		W.z.Close()
		W.z = nil
	}
	W.f.Close()
	W.f = nil
	W.writeable = false
}
