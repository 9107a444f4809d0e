//Assembles the figures and markdown summaries produced by the other
//scripts into the final PDF project report.
package main

import (
	"path/filepath"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/logger"
	"github.com/rmera/gocrys/report"
)

func main() {
	cfg, err := crys.LoadConfig("gocrys.yaml")
	if err != nil {
		logger.New("").Fatal(err)
	}
	log := logger.New(cfg.LogFile)
	res := func(name string) string { return filepath.Join(cfg.Results, name) }
	p := &report.Params{
		Title:    "Voronoi Polycrystal MD Simulation",
		Subtitle: "Comprehensive Project Report",
		Author:   "goCrys",
		Overview: "This project models the generation and uniaxial deformation of a " +
			"Voronoi polycrystal. A polycrystalline structure is generated with Atomsk, " +
			"deformed with LAMMPS, and the resulting trajectory is analyzed for " +
			"atomic displacements, dislocation density and stress-strain response.",
		Figures: []report.Figure{
			{Caption: "Stress-Strain Curve", Path: res("stress_strain_curve.png"),
				Description: "Mechanical response along the loading axis, with the yield point marked."},
			{Caption: "Dislocation Evolution", Path: res("dislocation_evolution.png"),
				Description: "Dislocation density and grain count over the deformation."},
			{Caption: "Strain-Dislocation Correlation", Path: res("strain_dislocation_correlation.png"),
				Description: "Dislocation density against strain at matched timesteps."},
			{Caption: "CSP Distribution", Path: res("csp_distribution.png"),
				Description: "Centro-symmetry parameter distribution of the first frame."},
		},
		Sections: []report.Section{
			{Title: "Deformation Report", Path: res("deformation_report.md")},
			{Title: "Dislocation Evolution Report", Path: res("dislocation_evolution_report.md")},
		},
	}
	out := res("project_report.pdf")
	if err := report.Build(p, out); err != nil {
		log.Fatal(err)
	}
	log.Infof("project report saved as %s", out)
}
