//Splits the raw dump into fixed-size pieces for transfer.
package main

import (
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
	parts, err := dump.Split(cfg.DumpPath(), cfg.ChunkMB)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range parts {
		log.Infof("wrote %s", p)
	}
	log.Infof("%s split into %d pieces of at most %d MB", cfg.DumpPath(), len(parts), cfg.ChunkMB)
}
