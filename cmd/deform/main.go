//Computes the average atomic displacement of every snapshot against
//the first one and writes the deformation report.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/deform"
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
	res, err := deform.Analyze(snaps)
	if err != nil {
		log.Fatal(err)
	}
	for i, t := range res.Timesteps {
		fmt.Printf("Timestep %8d: avg displacement %10.6f  (%s)\n", t, res.AvgDispl[i], deform.Phase(t))
	}
	if res.Skipped > 0 {
		log.Warnf("%d snapshots skipped for atom-count mismatch with the reference", res.Skipped)
	}
	if err := os.MkdirAll(cfg.Results, 0755); err != nil {
		log.Fatal(err)
	}
	out := filepath.Join(cfg.Results, "deformation_report.md")
	if err := res.WriteMarkdown(out); err != nil {
		log.Fatal(err)
	}
	log.Infof("deformation report saved as %s", out)
}
