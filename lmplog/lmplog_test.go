package lmplog

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

var rootdirtest string = "../test"

func TestRead(Te *testing.T) {
	fmt.Println("Run log read test!")
	ser, err := Read(rootdirtest+"/lammps.log", 2)
	if err != nil {
		Te.Fatal(err)
	}
	if ser.Len() != 4 {
		Te.Fatalf("expected 4 rows, got %d", ser.Len())
	}
	if ser.Label != "Pzz" {
		Te.Errorf("wrong stress label: %s", ser.Label)
	}
	if ser.Strain[0] != 0 {
		Te.Errorf("strain at step 0 should be 0, got %v", ser.Strain[0])
	}
	//Lz went 100.0 -> 101.0, so strain 0.01; Pzz -2500 becomes +2500
	if math.Abs(ser.Strain[1]-0.01) > 1e-12 {
		Te.Errorf("strain at step 1000: got %v, want 0.01", ser.Strain[1])
	}
	if ser.Stress[1] != 2500.0 {
		Te.Errorf("stress sign convention: got %v, want 2500", ser.Stress[1])
	}
	idx, ok := ser.Yield()
	if !ok || ser.Steps[idx] != 2000 {
		Te.Errorf("yield point: got index %d ok=%v", idx, ok)
	}
	if ser.MaxStress() != 4000.0 || math.Abs(ser.MaxStrain()-0.03) > 1e-12 {
		Te.Errorf("extrema: %v, %v", ser.MaxStress(), ser.MaxStrain())
	}
}

//A log without the thermo header is unusable and must say so.
func TestMissingHeaderFatal(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "headless.log")
	content := "LAMMPS (2 Aug 2023)\nunits metal\nrun 1000\nTotal wall time: 0:01:00\n"
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
	_, err := Read(name, 2)
	if err == nil {
		Te.Fatal("missing thermo header went unnoticed")
	}
	lerr, ok := err.(Error)
	if !ok || !lerr.Critical() {
		Te.Errorf("missing header should be a critical Error, got %v", err)
	}
}

//Rows before the step-0 reference row can not yield a strain and are
//dropped rather than mislabeled.
func TestNoReferenceLength(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "noref.log")
	content := `Step Pzz Lx Ly Lz
5000 -100.0 100.0 100.0 105.0
0 -10.0 100.0 100.0 100.0
6000 -200.0 100.0 100.0 106.0
`
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
	ser, err := Read(name, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if ser.Len() != 2 {
		Te.Fatalf("expected the pre-reference row dropped, got %d rows", ser.Len())
	}
	if ser.Steps[0] != 0 || ser.Steps[1] != 6000 {
		Te.Errorf("wrong rows kept: %v", ser.Steps)
	}
}

func TestCSVRoundTrip(Te *testing.T) {
	ser, err := Read(rootdirtest+"/lammps.log", 2)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "stress_strain_data.txt")
	if err := ser.WriteCSV(name); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadCSV(name)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != ser.Len() || back.Label != ser.Label {
		Te.Fatalf("csv round trip changed shape: %d rows, label %q", back.Len(), back.Label)
	}
	for i := range ser.Steps {
		if back.Steps[i] != ser.Steps[i] {
			Te.Errorf("row %d changed step", i)
		}
		if math.Abs(back.Stress[i]-ser.Stress[i]) > math.Abs(ser.Stress[i])*1e-6 {
			Te.Errorf("row %d stress drifted: %v vs %v", i, back.Stress[i], ser.Stress[i])
		}
	}
}
