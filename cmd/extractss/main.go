//Extracts the stress-strain series from the engine run log and saves
//it as CSV for the plotting and correlation scripts.
package main

import (
	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/lmplog"
	"github.com/rmera/gocrys/logger"
)

func main() {
	cfg, err := crys.LoadConfig("gocrys.yaml")
	if err != nil {
		logger.New("").Fatal(err)
	}
	log := logger.New(cfg.LogFile)
	ser, err := lmplog.Read(cfg.RunLogPath(), cfg.Axis())
	if err != nil {
		log.Fatal(err)
	}
	if ser.Len() == 0 {
		log.Fatal("no thermodynamic data rows found in ", cfg.RunLogPath())
	}
	if err := ser.WriteCSV(cfg.StressPath()); err != nil {
		log.Fatal(err)
	}
	log.Infof("%d data points (%s) written to %s", ser.Len(), ser.Label, cfg.StressPath())
}
