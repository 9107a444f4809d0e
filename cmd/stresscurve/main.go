//Plots the stress-strain curve with the yield point marked, and logs
//the mechanical extrema.
package main

import (
	"os"
	"path/filepath"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/crysplot"
	"github.com/rmera/gocrys/lmplog"
	"github.com/rmera/gocrys/logger"
)

func main() {
	cfg, err := crys.LoadConfig("gocrys.yaml")
	if err != nil {
		logger.New("").Fatal(err)
	}
	log := logger.New(cfg.LogFile)
	ser, err := lmplog.ReadCSV(cfg.StressPath())
	if err != nil {
		//fall back to the raw run log when the extracted CSV is absent
		log.Warnf("can't read %s (%v), extracting from the run log", cfg.StressPath(), err)
		ser, err = lmplog.Read(cfg.RunLogPath(), cfg.Axis())
		if err != nil {
			log.Fatal(err)
		}
	}
	if err := os.MkdirAll(cfg.Results, 0755); err != nil {
		log.Fatal(err)
	}
	out := filepath.Join(cfg.Results, "stress_strain_curve.png")
	if err := crysplot.StressStrain(ser, out); err != nil {
		log.Fatal(err)
	}
	log.Infof("maximum stress %.2f at strain %.4f", ser.MaxStress(), ser.MaxStrain())
	if i, ok := ser.Yield(); ok {
		log.Infof("yield point: step %d, strain %.4f, stress %.2f", ser.Steps[i], ser.Strain[i], ser.Stress[i])
	}
	log.Infof("stress-strain curve saved as %s", out)
}
