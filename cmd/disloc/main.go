//Tracks the dislocation population over the trajectory: density and
//grain evolution, correlation against the stress-strain series, plots,
//a markdown summary and an XYZ export of the first frame.
package main

import (
	"os"
	"path/filepath"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/crysplot"
	"github.com/rmera/gocrys/disloc"
	"github.com/rmera/gocrys/lmplog"
	"github.com/rmera/gocrys/logger"
	"github.com/rmera/gocrys/traj/dump"
)

func main() {
	cfg, err := crys.LoadConfig("gocrys.yaml")
	if err != nil {
		logger.New("").Fatal(err)
	}
	log := logger.New(cfg.LogFile)
	r, err := dump.New(cfg.DumpPath())
	if err != nil {
		log.Fatal(err)
	}
	snaps, err := r.ReadAll()
	r.Close()
	if err != nil {
		log.Fatal(err)
	}
	if len(snaps) == 0 {
		log.Fatal("no snapshots in ", cfg.DumpPath())
	}
	ser, err := lmplog.ReadCSV(cfg.StressPath())
	if err != nil {
		log.Warnf("no stress-strain series (%v), correlation will be skipped", err)
		ser = nil
	}
	evo := disloc.Evolution(snaps, ser, cfg.CSPThreshold)
	if err := os.MkdirAll(cfg.Results, 0755); err != nil {
		log.Fatal(err)
	}
	out := filepath.Join(cfg.Results, "dislocation_evolution.png")
	if err := crysplot.Evolution(evo, out); err != nil {
		log.Fatal(err)
	}
	log.Infof("evolution plot saved as %s", out)
	if len(evo.MatchedStrain) > 0 {
		out = filepath.Join(cfg.Results, "strain_dislocation_correlation.png")
		if err := crysplot.Correlation(evo, out); err != nil {
			log.Fatal(err)
		}
		log.Infof("correlation plot saved as %s", out)
	}
	if len(snaps[0].CSP) > 0 {
		out = filepath.Join(cfg.Results, "csp_distribution.png")
		if err := crysplot.CSPHistogram(snaps[0], out); err != nil {
			log.Fatal(err)
		}
		log.Infof("CSP histogram saved as %s", out)
	}
	out = filepath.Join(cfg.Results, "dislocation_evolution_report.md")
	if err := evo.WriteMarkdown(out); err != nil {
		log.Fatal(err)
	}
	log.Infof("dislocation report saved as %s", out)
	xyz := filepath.Join(cfg.Outputs, "frame_0.xyz")
	if err := disloc.ExportXYZ(snaps[0], xyz); err != nil {
		log.Fatal(err)
	}
	log.Infof("first frame exported as %s", xyz)
}
