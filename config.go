package crys

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config collects the filenames and thresholds the cmd/ scripts agree
// on. The scripts take no flags: they run on these defaults, optionally
// overridden by a gocrys.yaml file in the working directory.
type Config struct {
	Inputs  string `yaml:"inputs"`  //directory with engine inputs (seed cell, parameter files)
	Outputs string `yaml:"outputs"` //directory with raw engine outputs
	Results string `yaml:"results"` //directory for plots and reports

	Dump       string `yaml:"dump"`        //trajectory dump, relative to Outputs
	RunLog     string `yaml:"run_log"`     //engine run log, relative to Outputs
	StressFile string `yaml:"stress_file"` //extracted stress-strain series, relative to Outputs

	LoadingAxis  string  `yaml:"loading_axis"`  //x, y or z
	CSPThreshold float64 `yaml:"csp_threshold"` //centro-symmetry cutoff for dislocation atoms

	BoxSize    float64 `yaml:"box_size"` //polycrystal box edge, Å
	NGrains    int     `yaml:"n_grains"`
	RandomSeed int64   `yaml:"random_seed"`
	AtomskPath string  `yaml:"atomsk_path"`
	SeedCell   string  `yaml:"seed_cell"` //unit cell for the structure generator, relative to Inputs

	ChunkMB int `yaml:"chunk_mb"` //size of the pieces produced by the dump splitter

	LogFile string `yaml:"log_file"` //script log, empty for stderr only
}

// DefaultConfig returns the directory layout and thresholds the
// analysis scripts assume when no gocrys.yaml is present.
func DefaultConfig() *Config {
	return &Config{
		Inputs:       "inputs",
		Outputs:      "outputs",
		Results:      "results",
		Dump:         "dump.voro",
		RunLog:       "lammps.log",
		StressFile:   "stress_strain_data.txt",
		LoadingAxis:  "z",
		CSPThreshold: 2.0,
		BoxSize:      100.0,
		NGrains:      10,
		RandomSeed:   42,
		AtomskPath:   "bin/atomsk",
		SeedCell:     "fcc_Al_unitcell.lmp",
		ChunkMB:      90,
	}
}

// LoadConfig reads a yaml configuration from path, on top of the
// defaults. A missing file is not an error, the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, fmt.Errorf("can't read configuration %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("malformed configuration %s: %w", path, err)
	}
	return conf, nil
}

// DumpPath and friends save the scripts from repeating filepath.Join
// calls on every use.
func (C *Config) DumpPath() string     { return filepath.Join(C.Outputs, C.Dump) }
func (C *Config) RunLogPath() string   { return filepath.Join(C.Outputs, C.RunLog) }
func (C *Config) StressPath() string   { return filepath.Join(C.Outputs, C.StressFile) }
func (C *Config) SeedCellPath() string { return filepath.Join(C.Inputs, C.SeedCell) }

// Axis returns the loading axis as an index (x=0, y=1, z=2). Anything
// unrecognized falls back to z.
func (C *Config) Axis() int {
	switch C.LoadingAxis {
	case "x", "X":
		return 0
	case "y", "Y":
		return 1
	}
	return 2
}
