/*
 * dump.go, part of gocrys.
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
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	crys "github.com/rmera/gocrys"
	"gonum.org/v1/gonum/mat"
)

//The reader is a small state machine fed one line at a time. A snapshot
//accumulates until the next TIMESTEP marker (or end of file) finalizes
//it, so the file is processed strictly top to bottom in a single pass.
const (
	scanning = iota
	expectTimestep
	expectNAtoms
	expectBox
	readingAtoms
)

//schema holds the column index of each field the reader cares about,
//resolved once per ATOMS marker from its column-name list. -1 marks an
//absent optional column.
type schema struct {
	id, typ, x, y, z, csp int
}

func resolveSchema(cols []string) *schema {
	s := &schema{id: -1, typ: -1, x: -1, y: -1, z: -1, csp: -1}
	for i, name := range cols {
		switch name {
		case "id":
			s.id = i
		case "type":
			s.typ = i
		case "x", "xu", "xs":
			s.x = i
		case "y", "yu", "ys":
			s.y = i
		case "z", "zu", "zs":
			s.z = i
		case "c_csym", "c_csp", "csp":
			s.csp = i
		}
	}
	if s.id < 0 || s.x < 0 || s.y < 0 || s.z < 0 {
		return nil
	}
	return s
}

//frame is the mutable accumulator for the snapshot being scanned.
type frame struct {
	timestep int
	box      [3][2]float64
	hasbox   bool
	declared int //NUMBER OF ATOMS value, capacity hint only
	ids      []int
	types    []int
	csp      []float64
	coords   []float64 //flat, row-major, 3 per particle
}

func newFrame() *frame {
	return &frame{declared: -1}
}

//DumpR reads a dump trajectory. It holds no snapshot state after a
//frame has been returned; the caller owns the snapshots.
type DumpR struct {
	f        *os.File
	z        io.ReadCloser //decompressor, nil for plain files
	h        *bufio.Reader
	filename string
	readable bool
	eof      bool
	state    int
	boxleft  int //bound lines still expected while in expectBox
	sch      *schema
	cur      *frame
	natoms   int
	skipped  int
}

//New opens a dump trajectory for reading. Compression is selected from
//the filename extension.
func New(name string) (*DumpR, error) {
	D := new(DumpR)
	D.filename = name
	var err error
	D.f, D.z, err = openReader(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	if D.z != nil {
		D.h = bufio.NewReader(D.z)
	} else {
		D.h = bufio.NewReader(D.f)
	}
	D.state = scanning
	D.natoms = -1
	D.readable = true
	return D, nil
}

//openReader opens name and wraps it in the decompressor matching its
//extension, or none. Shared with the round-trip verifier.
func openReader(name string) (*os.File, io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	low := strings.ToLower(name)
	switch {
	case strings.HasSuffix(low, ".zst") || strings.HasSuffix(low, ".zstd"):
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return f, zstdql{r.Close, r}, nil
	case strings.HasSuffix(low, ".gz"):
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return f, r, nil
	}
	return f, nil, nil
}

//zstd.Decoder.Close returns nothing, so it does not satisfy
//io.ReadCloser on its own.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//Readable returns true if the handle is ready for Next to be called on
//it. It doesn't guarantee that there is something left to read.
func (D *DumpR) Readable() bool {
	return D.readable
}

//Len returns the number of atoms in the last snapshot read, or -1 if
//none has been read yet. Frames in a dump need not all have the same
//atom count.
func (D *DumpR) Len() int {
	return D.natoms
}

//Skipped returns the number of malformed data lines silently dropped so
//far. Purely informative; skipping is the normal tolerance policy.
func (D *DumpR) Skipped() int {
	return D.skipped
}

//Next returns the next snapshot in the trajectory, in file order. When
//the trajectory is over it returns an error implementing
//crys.LastFrameError, which is a normal termination, not an actual
//error. Structural problems (truncated headers) return a critical
//error and leave the reader unusable.
func (D *DumpR) Next() (*crys.Snapshot, error) {
	if !D.readable {
		return nil, Error{TrajUnIni, D.filename, []string{"Next"}, true}
	}
	if D.eof {
		D.Close()
		return nil, newlastFrameError(D.filename, "Next")
	}
	for {
		line, err := D.h.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				D.Close()
				return nil, Error{ReadError + ": " + err.Error(), D.filename, []string{"Next"}, true}
			}
			D.eof = true
		}
		line = strings.TrimSpace(line)
		if line != "" {
			snap, cerr := D.feed(line)
			if cerr != nil {
				D.Close()
				return nil, cerr
			}
			if snap != nil {
				return snap, nil
			}
		}
		if D.eof {
			if D.state == expectBox && D.boxleft > 0 {
				D.Close()
				return nil, Error{IncompleteBox, D.filename, []string{"Next"}, true}
			}
			if snap := D.finalize(); snap != nil {
				return snap, nil
			}
			D.Close()
			return nil, newlastFrameError(D.filename, "Next")
		}
	}
}

//feed advances the state machine by one non-empty line. It returns a
//snapshot when the line finalizes one.
func (D *DumpR) feed(line string) (*crys.Snapshot, error) {
	if strings.HasPrefix(line, "ITEM:") {
		return D.marker(line)
	}
	switch D.state {
	case expectTimestep:
		v, err := strconv.Atoi(strings.Fields(line)[0])
		if err != nil {
			return nil, Error{fmt.Sprintf("can't read timestep from %q: %s", line, err.Error()), D.filename, []string{"feed"}, true}
		}
		D.cur.timestep = v
		D.state = scanning
	case expectNAtoms:
		//a hint only, so a bad value is simply ignored
		if n, err := strconv.Atoi(strings.Fields(line)[0]); err == nil && n > 0 {
			D.cur.declared = n
			D.cur.ids = make([]int, 0, n)
			D.cur.coords = make([]float64, 0, 3*n)
		}
		D.state = scanning
	case expectBox:
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, Error{IncompleteBox + ": " + line, D.filename, []string{"feed"}, true}
		}
		lo, err1 := strconv.ParseFloat(f[0], 64)
		hi, err2 := strconv.ParseFloat(f[1], 64)
		if err1 != nil || err2 != nil {
			return nil, Error{IncompleteBox + ": " + line, D.filename, []string{"feed"}, true}
		}
		axis := 3 - D.boxleft
		D.cur.box[axis][0] = lo
		D.cur.box[axis][1] = hi
		D.boxleft--
		if D.boxleft == 0 {
			D.cur.hasbox = true
			D.state = scanning
		}
	case readingAtoms:
		D.atomLine(line)
	case scanning:
		//a stray line outside any section; nothing to do with it
	}
	return nil, nil
}

//marker handles an ITEM: line. A TIMESTEP marker finalizes the
//accumulating snapshot before resetting the accumulator, which is how
//snapshots get emitted mid-file.
func (D *DumpR) marker(line string) (*crys.Snapshot, error) {
	if D.state == expectBox && D.boxleft > 0 {
		return nil, Error{IncompleteBox, D.filename, []string{"marker"}, true}
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, "ITEM:"))
	switch {
	case strings.HasPrefix(rest, "TIMESTEP"):
		done := D.finalize()
		D.cur = newFrame()
		D.state = expectTimestep
		return done, nil
	case strings.HasPrefix(rest, "NUMBER OF ATOMS"):
		if D.cur == nil {
			D.cur = newFrame()
		}
		D.state = expectNAtoms
	case strings.HasPrefix(rest, "BOX BOUNDS"):
		if D.cur == nil {
			D.cur = newFrame()
		}
		D.state = expectBox
		D.boxleft = 3
	case strings.HasPrefix(rest, "ATOMS"):
		cols := strings.Fields(rest)[1:]
		sch := resolveSchema(cols)
		if sch == nil {
			return nil, Error{BadAtomsHeader + ": " + line, D.filename, []string{"marker"}, true}
		}
		D.sch = sch
		if D.cur == nil {
			D.cur = newFrame()
		}
		D.state = readingAtoms
	default:
		//some section this library doesn't know; it still ends the
		//atoms section, if one was being read.
		D.state = scanning
	}
	return nil, nil
}

//atomLine decodes one particle record with the current schema. Lines
//that fail to decode are dropped and counted, never propagated.
func (D *DumpR) atomLine(line string) {
	if D.sch == nil || D.cur == nil {
		D.skipped++
		return
	}
	f := strings.Fields(line)
	need := D.sch.id
	for _, i := range []int{D.sch.x, D.sch.y, D.sch.z, D.sch.typ, D.sch.csp} {
		if i > need {
			need = i
		}
	}
	if len(f) <= need {
		D.skipped++
		return
	}
	//the engine prints everything, ids included, as numbers that may
	//carry a decimal point, so all fields go through ParseFloat.
	vals := make([]float64, 0, 6)
	bad := false
	for _, i := range []int{D.sch.id, D.sch.x, D.sch.y, D.sch.z} {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			bad = true
			break
		}
		vals = append(vals, v)
	}
	if bad {
		D.skipped++
		return
	}
	typ := 1
	if D.sch.typ >= 0 {
		if v, err := strconv.ParseFloat(f[D.sch.typ], 64); err == nil {
			typ = int(v)
		} else {
			D.skipped++
			return
		}
	}
	if D.sch.csp >= 0 {
		v, err := strconv.ParseFloat(f[D.sch.csp], 64)
		if err != nil {
			D.skipped++
			return
		}
		D.cur.csp = append(D.cur.csp, v)
	}
	D.cur.ids = append(D.cur.ids, int(vals[0]))
	D.cur.types = append(D.cur.types, typ)
	D.cur.coords = append(D.cur.coords, vals[1], vals[2], vals[3])
	//the declared count is a soft cutoff: once reached, whatever
	//follows is no longer particle data.
	if D.cur.declared > 0 && len(D.cur.ids) >= D.cur.declared {
		D.state = scanning
	}
}

//finalize turns the accumulator into a snapshot and resets it. A
//snapshot with no particles carries no usable data and is discarded.
func (D *DumpR) finalize() *crys.Snapshot {
	fr := D.cur
	D.cur = nil
	if fr == nil || len(fr.ids) == 0 {
		return nil
	}
	snap := &crys.Snapshot{
		Timestep: fr.timestep,
		Box:      fr.box,
		HasBox:   fr.hasbox,
		IDs:      fr.ids,
		Types:    fr.types,
		CSP:      fr.csp,
		Coords:   mat.NewDense(len(fr.ids), 3, fr.coords),
	}
	D.natoms = len(fr.ids)
	return snap
}

//ReadAll reads every remaining snapshot, in file order. No sorting and
//no deduplication happen here; see crys.SortByTimestep.
func (D *DumpR) ReadAll() ([]*crys.Snapshot, error) {
	var snaps []*crys.Snapshot
	for {
		s, err := D.Next()
		if err != nil {
			if _, ok := err.(crys.LastFrameError); ok {
				break
			}
			return nil, errDecorate(err, "ReadAll")
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

//Close releases the file handle and the decompressor and marks the
//reader unreadable. It is safe to call more than once. Critical errors
//call it internally, so the handle is released even if the caller
//never does.
func (D *DumpR) Close() {
	D.readable = false
	if D.f == nil {
		return
	}
	if D.z != nil {
		D.z.Close()
		D.z = nil
	}
	D.f.Close()
	D.f = nil
}
