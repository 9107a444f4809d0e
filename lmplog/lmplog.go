/*
 * lmplog.go, part of gocrys.
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

//Package lmplog digests the thermodynamic output of a simulation engine
//run log into an engineering stress-strain series.
//
//The log is a whitespace-tabulated table introduced by a header row
//("Step Temp ... Pzz ... Lz ..."), buried among arbitrary chatter. The
//header is located once and its column indices are resolved by name;
//after that, any line whose field count matches the header is a
//candidate data row, and rows that fail to parse are skipped. A log in
//which the header never appears is unusable, which is the one fatal
//condition of this package.
//
//Strain is the engineering strain of the box length along the loading
//axis, relative to its length at step 0. Stress is the negated pressure
//component along the same axis (the engine reports pressure, which for
//a solid under tension has the opposite sign convention).
package lmplog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//Axis labels as the engine prints them in the thermo header.
var stressKey = [3]string{"Pxx", "Pyy", "Pzz"}
var lengthKey = [3]string{"Lx", "Ly", "Lz"}

//Series is a stress-strain curve: one entry per thermo output row,
//in log order.
type Series struct {
	Label  string //the stress column the series came from, e.g. "Pzz"
	Steps  []int
	Strain []float64
	Stress []float64
}

//Read extracts the stress-strain series along the given axis (x=0,
//y=1, z=2) from a run log.
func Read(filename string, axis int) (*Series, error) {
	if axis < 0 || axis > 2 {
		return nil, Error{fmt.Sprintf("no such axis: %d", axis), filename, []string{"Read"}, true}
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{"Unable to open file: " + err.Error(), filename, []string{"Read"}, true}
	}
	defer f.Close()
	required := []string{"Step", stressKey[axis], lengthKey[axis], "Lx", "Ly", "Lz"}
	ser := &Series{Label: stressKey[axis]}
	var cols map[string]int
	ncols := 0
	initLen := 0.0
	haveInit := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if cols == nil {
			if !strings.HasPrefix(line, "Step") {
				continue
			}
			header := strings.Fields(line)
			c := make(map[string]int, len(header))
			for i, name := range header {
				c[name] = i
			}
			ok := true
			for _, key := range required {
				if _, found := c[key]; !found {
					ok = false
					break
				}
			}
			if !ok {
				//a Step-ish line that is not the thermo header;
				//keep looking.
				continue
			}
			cols = c
			ncols = len(header)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != ncols {
			continue
		}
		step, err := strconv.Atoi(fields[cols["Step"]])
		if err != nil {
			continue //chatter that happens to have the right width
		}
		stress, err1 := strconv.ParseFloat(fields[cols[stressKey[axis]]], 64)
		length, err2 := strconv.ParseFloat(fields[cols[lengthKey[axis]]], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		var strain float64
		if step == 0 {
			initLen = length
			haveInit = true
		} else {
			if !haveInit || initLen == 0 {
				continue //no reference length yet
			}
			strain = (length - initLen) / initLen
		}
		ser.Steps = append(ser.Steps, step)
		ser.Strain = append(ser.Strain, strain)
		ser.Stress = append(ser.Stress, -stress)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{"Error reading log: " + err.Error(), filename, []string{"Read"}, true}
	}
	if cols == nil {
		return nil, Error{MissingHeader, filename, []string{"Read"}, true}
	}
	return ser, nil
}

//Len returns the number of rows in the series.
func (S *Series) Len() int {
	return len(S.Steps)
}

//Yield returns the index of the approximate yield point, taken as the
//row of maximum stress. The second return is false when the series is
//empty or the maximum sits at step 0, where a yield annotation would be
//meaningless.
func (S *Series) Yield() (int, bool) {
	if S.Len() == 0 {
		return -1, false
	}
	idx := floats.MaxIdx(S.Stress)
	if S.Steps[idx] == 0 {
		return idx, false
	}
	return idx, true
}

//MaxStress and MaxStrain report the curve extrema.
func (S *Series) MaxStress() float64 {
	if S.Len() == 0 {
		return 0
	}
	return floats.Max(S.Stress)
}

func (S *Series) MaxStrain() float64 {
	if S.Len() == 0 {
		return 0
	}
	return floats.Max(S.Strain)
}

//WriteCSV writes the series in the normalized "timestep, strain,
//stress" form the downstream analyses read.
func (S *Series) WriteCSV(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return Error{"Unable to open file: " + err.Error(), filename, []string{"WriteCSV"}, true}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	fmt.Fprintf(w, "# Timestep, Strain, Stress (%s)\n", S.Label)
	for i, step := range S.Steps {
		fmt.Fprintf(w, "%d, %.6e, %.6e\n", step, S.Strain[i], S.Stress[i])
	}
	return nil
}

//ReadCSV reads a series back from the file WriteCSV produces. The
//label is recovered from the comment header when present.
func ReadCSV(filename string) (*Series, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{"Unable to open file: " + err.Error(), filename, []string{"ReadCSV"}, true}
	}
	defer f.Close()
	ser := &Series{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if i := strings.Index(line, "("); i >= 0 {
				ser.Label = strings.TrimSuffix(line[i+1:], ")")
			}
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			continue
		}
		step, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		strain, err1 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		stress, err2 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ser.Steps = append(ser.Steps, step)
		ser.Strain = append(ser.Strain, strain)
		ser.Stress = append(ser.Stress, stress)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), filename, []string{"ReadCSV"}, true}
	}
	return ser, nil
}

//Errors

//Error fulfills crys.Error.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("run log %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Format() string { return "lammps log" }

func (err Error) Critical() bool { return err.critical }

const (
	MissingHeader = "thermo output header never found; check the thermo_style of the run"
)
