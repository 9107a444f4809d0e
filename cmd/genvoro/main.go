//Generates a Voronoi polycrystal: writes the generator parameter file
//(and a placeholder seed cell if none exists) and runs the external
//structure generator over them.
package main

import (
	"os"
	"path/filepath"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/grain"
	"github.com/rmera/gocrys/logger"
)

func main() {
	cfg, err := crys.LoadConfig("gocrys.yaml")
	if err != nil {
		logger.New("").Fatal(err)
	}
	log := logger.New(cfg.LogFile)
	if err := os.MkdirAll(cfg.Inputs, 0755); err != nil {
		log.Fatal(err)
	}
	seed := cfg.SeedCellPath()
	if _, err := os.Stat(seed); os.IsNotExist(err) {
		log.Infof("creating placeholder seed cell %s", seed)
		if err := grain.WriteSeedCell(seed); err != nil {
			log.Fatal(err)
		}
	}
	p := &grain.Params{BoxSize: cfg.BoxSize, NGrains: cfg.NGrains, Seed: cfg.RandomSeed}
	paramFile := filepath.Join(cfg.Inputs, "voronoi10.txt")
	f, err := os.Create(paramFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := p.WriteParamFile(f); err != nil {
		f.Close()
		log.Fatal(err)
	}
	f.Close()
	out := filepath.Join(cfg.Inputs, "voronoi10.lmp")
	log.Infof("running %s --polycrystal %s %s %s", cfg.AtomskPath, seed, paramFile, out)
	if err := grain.Generate(cfg.AtomskPath, seed, paramFile, out, os.Stdout); err != nil {
		log.Fatal(err)
	}
	log.Infof("Voronoi structure with %d grains generated as %s", cfg.NGrains, out)
}
