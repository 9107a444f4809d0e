//Reads the raw dump and re-serializes it into a clean trajectory,
//verifying the copy against the original afterwards.
package main

import (
	"path/filepath"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/logger"
	"github.com/rmera/gocrys/traj/dump"
)

func main() {
	cfg, err := crys.LoadConfig("gocrys.yaml")
	if err != nil {
		logger.New("").Fatal(err)
	}
	log := logger.New(cfg.LogFile)
	in := cfg.DumpPath()
	out := filepath.Join(cfg.Outputs, "dump2.deform")
	r, err := dump.New(in)
	if err != nil {
		log.Fatal(err)
	}
	snaps, err := r.ReadAll()
	if err != nil {
		log.Fatal(err)
	}
	if r.Skipped() > 0 {
		log.Warnf("%d malformed atom lines skipped in %s", r.Skipped(), in)
	}
	r.Close()
	log.Infof("read %d snapshots from %s", len(snaps), in)
	w, err := dump.NewWriter(out)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range snaps {
		if err := w.WNext(s); err != nil {
			log.Fatal(err)
		}
	}
	w.Close()
	if err := dump.Verify(in, out, 10); err != nil {
		log.Fatal(err)
	}
	log.Infof("trajectory written and verified as %s", out)
}
