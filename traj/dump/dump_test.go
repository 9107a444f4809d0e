/*
 * dump_test.go, part of gocrys.
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

package dump

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	crys "github.com/rmera/gocrys"
	"gonum.org/v1/gonum/mat"
)

var rootdirtest string = "../../test"

//Reads the two-snapshot fixture and checks order, counts and the
//average per-particle displacement between the frames.
func TestDumpRead(Te *testing.T) {
	fmt.Println("Dump read test!")
	traj, err := New(rootdirtest + "/dump.voro")
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(snaps) != 2 {
		Te.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Timestep != 0 || snaps[1].Timestep != 100 {
		Te.Errorf("timesteps out of order: %d, %d", snaps[0].Timestep, snaps[1].Timestep)
	}
	if snaps[0].Len() != 2 || snaps[1].Len() != 2 {
		Te.Errorf("wrong particle counts: %d, %d", snaps[0].Len(), snaps[1].Len())
	}
	if !snaps[1].HasBox || snaps[1].Box[0][1] != 10.5 {
		Te.Errorf("wrong box in second snapshot: %v", snaps[1].Box)
	}
	//average Euclidean displacement between the frames must be
	//(0.1+0.3)/2 = 0.2
	sum := 0.0
	for i := 0; i < snaps[0].Len(); i++ {
		var d2 float64
		for j := 0; j < 3; j++ {
			d := snaps[1].Coords.At(i, j) - snaps[0].Coords.At(i, j)
			d2 += d * d
		}
		sum += math.Sqrt(d2)
	}
	avg := sum / float64(snaps[0].Len())
	if math.Abs(avg-0.2) > 1e-9 {
		Te.Errorf("average displacement: got %v, want 0.2", avg)
	}
	fmt.Println("average displacement", avg)
}

//Writer(Parser(input)) must produce the same grammar, and the numbers
//must survive the trip at the writer's 6-decimal precision.
func TestRoundTrip(Te *testing.T) {
	fmt.Println("Dump round-trip test!")
	in := rootdirtest + "/dump.voro"
	out := filepath.Join(Te.TempDir(), "dump2.deform")
	traj, err := New(in)
	if err != nil {
		Te.Fatal(err)
	}
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	w, err := NewWriter(out)
	if err != nil {
		Te.Fatal(err)
	}
	for _, s := range snaps {
		if err := w.WNext(s); err != nil {
			Te.Error(err)
		}
	}
	w.Close()
	if err := Verify(in, out, 10); err != nil {
		Te.Error(err)
	}
	back, err := New(out)
	if err != nil {
		Te.Fatal(err)
	}
	resnaps, err := back.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(resnaps) != len(snaps) {
		Te.Fatalf("lost snapshots in round trip: %d vs %d", len(resnaps), len(snaps))
	}
	for k, s := range snaps {
		r := resnaps[k]
		if r.Timestep != s.Timestep || r.Len() != s.Len() {
			Te.Errorf("snapshot %d changed shape in round trip", k)
		}
		for i := 0; i < s.Len(); i++ {
			if r.IDs[i] != s.IDs[i] {
				Te.Errorf("snapshot %d particle %d changed id", k, i)
			}
			for j := 0; j < 3; j++ {
				if math.Abs(r.Coords.At(i, j)-s.Coords.At(i, j)) > 1e-6 {
					Te.Errorf("snapshot %d particle %d coordinate %d drifted", k, i, j)
				}
			}
		}
	}
}

//A malformed data line inside an ATOMS section is dropped without
//touching its neighbors, and without raising.
func TestTolerantParsing(Te *testing.T) {
	name := writeTemp(Te, "garbled.voro", `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.0 1.0 1.0
2 1 not-a-number
3 1 3.0 3.0 3.0
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].Len() != 2 {
		Te.Fatalf("expected 1 snapshot with 2 particles, got %d snapshots", len(snaps))
	}
	if snaps[0].IDs[0] != 1 || snaps[0].IDs[1] != 3 {
		Te.Errorf("valid neighbors corrupted: ids %v", snaps[0].IDs)
	}
	if traj.Skipped() != 1 {
		Te.Errorf("skipped-line count: got %d, want 1", traj.Skipped())
	}
}

//A BOX BOUNDS section with fewer than 3 bound lines before the next
//marker is a truncated header, which is fatal.
func TestTruncatedBoxFatal(Te *testing.T) {
	name := writeTemp(Te, "truncbox.voro", `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
1
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.0 1.0 1.0
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	_, err = traj.Next()
	if err == nil {
		Te.Fatal("truncated BOX BOUNDS went unnoticed")
	}
	terr, ok := err.(crys.TrajError)
	if !ok || !terr.Critical() {
		Te.Errorf("truncated header should be a critical TrajError, got %v", err)
	}
	//and so is a box truncated by the end of the file
	name = writeTemp(Te, "truncbox2.voro", `ITEM: TIMESTEP
0
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
`)
	traj, err = New(name)
	if err != nil {
		Te.Fatal(err)
	}
	_, err = traj.Next()
	if terr, ok := err.(crys.TrajError); !ok || !terr.Critical() {
		Te.Errorf("EOF mid BOX BOUNDS should be a critical TrajError, got %v", err)
	}
}

//An ATOMS header whose column list lacks the required names is fatal.
func TestBadAtomsHeaderFatal(Te *testing.T) {
	name := writeTemp(Te, "badatoms.voro", `ITEM: TIMESTEP
0
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS vx vy vz
1 1 1.0
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	_, err = traj.Next()
	if terr, ok := err.(crys.TrajError); !ok || !terr.Critical() {
		Te.Errorf("unusable ATOMS header should be a critical TrajError, got %v", err)
	}
}

//The declared atom count is a soft bound: fewer particle lines than
//declared is not an error, the section just ends at the next marker or
//at the end of the file.
func TestCountIsSoftBound(Te *testing.T) {
	name := writeTemp(Te, "softcount.voro", `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
5
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.0 1.0 1.0
2 1 2.0 2.0 2.0
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].Len() != 2 {
		Te.Fatalf("soft bound mishandled: %d snapshots", len(snaps))
	}
}

//A snapshot that accumulated no particles is discarded, not emitted.
func TestEmptySnapshotDiscarded(Te *testing.T) {
	name := writeTemp(Te, "empty.voro", `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
0
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
ITEM: TIMESTEP
100
ITEM: NUMBER OF ATOMS
1
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z
1 1 1.0 1.0 1.0
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].Timestep != 100 {
		Te.Fatalf("empty snapshot not discarded: got %d snapshots", len(snaps))
	}
}

//An optional centro-symmetry column declared in the header must be
//picked up by name, wherever it sits.
func TestCSPColumn(Te *testing.T) {
	name := writeTemp(Te, "csp.voro", `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
2
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 10.0
0.0 10.0
ITEM: ATOMS id type x y z c_csym
1 1 1.0 1.0 1.0 0.5
2 2 2.0 2.0 2.0 3.5
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	s := snaps[0]
	if s.CSP == nil || len(s.CSP) != 2 || s.CSP[1] != 3.5 {
		Te.Errorf("csp column mishandled: %v", s.CSP)
	}
	if s.Types[1] != 2 {
		Te.Errorf("type column mishandled: %v", s.Types)
	}
}

//Compressed write and read back, selected by extension.
func TestCompressedRoundTrip(Te *testing.T) {
	fmt.Println("Compressed dump test!")
	in := rootdirtest + "/dump.voro"
	out := filepath.Join(Te.TempDir(), "dump.voro.gz")
	traj, err := New(in)
	if err != nil {
		Te.Fatal(err)
	}
	snaps, err := traj.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	w, err := NewWriter(out)
	if err != nil {
		Te.Fatal(err)
	}
	for _, s := range snaps {
		if err := w.WNext(s); err != nil {
			Te.Error(err)
		}
	}
	w.Close()
	back, err := New(out)
	if err != nil {
		Te.Fatal(err)
	}
	resnaps, err := back.ReadAll()
	if err != nil {
		Te.Fatal(err)
	}
	if len(resnaps) != 2 || resnaps[1].Timestep != 100 {
		Te.Errorf("compressed round trip lost data: %d snapshots", len(resnaps))
	}
}

//A critical error must not strand the file handle: the reader releases
//it on the spot, and Close stays safe to call afterwards, repeatedly.
func TestCloseAfterError(Te *testing.T) {
	name := writeTemp(Te, "truncbox3.voro", `ITEM: TIMESTEP
0
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
`)
	traj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	_, err = traj.Next()
	if terr, ok := err.(crys.TrajError); !ok || !terr.Critical() {
		Te.Fatalf("expected a critical TrajError, got %v", err)
	}
	if traj.f != nil || traj.z != nil {
		Te.Error("file handle still held after a critical error")
	}
	traj.Close()
	traj.Close()
	if traj.Readable() {
		Te.Error("reader still claims to be readable after Close")
	}
}

//A write that can no longer reach the file must come back from WNext
//as a critical error, not vanish into a truncated trajectory.
func TestWriteErrorSurfaced(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "gone.voro")
	w, err := NewWriter(name)
	if err != nil {
		Te.Fatal(err)
	}
	//pull the file out from under the writer
	w.f.Close()
	snap := &crys.Snapshot{
		Timestep: 0,
		IDs:      []int{1},
		Types:    []int{1},
		Coords:   mat.NewDense(1, 3, []float64{1, 1, 1}),
	}
	err = w.WNext(snap)
	if terr, ok := err.(crys.TrajError); !ok || !terr.Critical() {
		Te.Fatalf("unreachable file should be a critical TrajError, got %v", err)
	}
	if err = w.WNext(snap); err == nil {
		Te.Error("writer still accepts frames after a write error")
	}
	w.Close()
}

func TestSplit(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "big.voro")
	//3 MB of padding, split into 1 MB pieces
	if err := os.WriteFile(name, make([]byte, 3*1024*1024), 0644); err != nil {
		Te.Fatal(err)
	}
	parts, err := Split(name, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if len(parts) != 3 {
		Te.Fatalf("expected 3 parts, got %d", len(parts))
	}
	var total int64
	for _, p := range parts {
		fi, err := os.Stat(p)
		if err != nil {
			Te.Fatal(err)
		}
		total += fi.Size()
	}
	if total != 3*1024*1024 {
		Te.Errorf("split lost bytes: %d", total)
	}
}

func writeTemp(Te *testing.T, name, content string) string {
	Te.Helper()
	full := filepath.Join(Te.TempDir(), name)
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
	return full
}
