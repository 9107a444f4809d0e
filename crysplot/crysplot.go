/*
 * crysplot.go, part of gocrys.
 *
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goCrys is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package crysplot renders the analysis results as PNG figures.
package crysplot

import (
	"fmt"
	"image/color"
	"os"

	crys "github.com/rmera/gocrys"
	"github.com/rmera/gocrys/disloc"
	"github.com/rmera/gocrys/lmplog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	blue  = color.RGBA{B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 160, A: 255}
)

//StressStrain plots the stress-strain curve, marking the approximate
//yield point (the stress maximum) when it does not sit at step 0.
func StressStrain(ser *lmplog.Series, filename string) error {
	if ser.Len() == 0 {
		return fmt.Errorf("empty stress-strain series")
	}
	p := plot.New()
	p.Title.Text = "Stress-Strain Curve from Uniaxial Tensile Test"
	p.X.Label.Text = "Engineering Strain"
	p.Y.Label.Text = fmt.Sprintf("Engineering Stress (-%s)", ser.Label)
	p.Add(plotter.NewGrid())
	xys := make(plotter.XYs, ser.Len())
	for i := range xys {
		xys[i].X = ser.Strain[i]
		xys[i].Y = ser.Stress[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = blue
	line.Width = vg.Points(2)
	p.Add(line)
	if idx, ok := ser.Yield(); ok {
		pt, err := plotter.NewScatter(plotter.XYs{{X: ser.Strain[idx], Y: ser.Stress[idx]}})
		if err != nil {
			return err
		}
		pt.GlyphStyle.Color = red
		pt.GlyphStyle.Radius = vg.Points(4)
		p.Add(pt)
		p.Legend.Add(fmt.Sprintf("Approx. Yield (%.4f, %.2f)", ser.Strain[idx], ser.Stress[idx]), pt)
		p.Legend.Top = true
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}

//Evolution draws the dislocation density and the dislocation/grain
//counts against time, stacked in a single image.
func Evolution(evo *disloc.Evo, filename string) error {
	if len(evo.Timesteps) == 0 {
		return fmt.Errorf("empty evolution data")
	}
	top := plot.New()
	top.Title.Text = "Evolution of Dislocation Density"
	top.X.Label.Text = "Timestep"
	top.Y.Label.Text = "Dislocation Density (m^-2)"
	dens := make(plotter.XYs, len(evo.Timesteps))
	for i, t := range evo.Timesteps {
		dens[i].X = float64(t)
		dens[i].Y = evo.Density[i]
	}
	dline, err := plotter.NewLine(dens)
	if err != nil {
		return err
	}
	dline.Color = blue
	top.Add(dline, plotter.NewGrid())
	top.Legend.Add("Dislocation Density", dline)

	bottom := plot.New()
	bottom.Title.Text = "Evolution of Dislocations and Grains"
	bottom.X.Label.Text = "Timestep"
	bottom.Y.Label.Text = "Count"
	nd := make(plotter.XYs, len(evo.Timesteps))
	ng := make(plotter.XYs, len(evo.Timesteps))
	for i, t := range evo.Timesteps {
		nd[i].X = float64(t)
		nd[i].Y = float64(evo.NDisloc[i])
		ng[i].X = float64(t)
		ng[i].Y = float64(evo.NGrains[i])
	}
	dl, err := plotter.NewLine(nd)
	if err != nil {
		return err
	}
	dl.Color = red
	gl, err := plotter.NewLine(ng)
	if err != nil {
		return err
	}
	gl.Color = green
	bottom.Add(dl, gl, plotter.NewGrid())
	bottom.Legend.Add("Number of Dislocations", dl)
	bottom.Legend.Add("Number of Grains", gl)

	img := vgimg.New(9*vg.Inch, 12*vg.Inch)
	dc := draw.New(img)
	plots := [][]*plot.Plot{{top}, {bottom}}
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 4}
	canvases := plot.Align(plots, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(f)
	return err
}

//Correlation draws strain against dislocation density for the
//timesteps shared between the trajectory and the stress-strain series.
func Correlation(evo *disloc.Evo, filename string) error {
	if len(evo.MatchedStrain) == 0 {
		return fmt.Errorf("no matching timesteps between trajectory and stress-strain data")
	}
	p := plot.New()
	p.Title.Text = "Correlation between Strain and Dislocation Density"
	p.X.Label.Text = "Strain"
	p.Y.Label.Text = "Dislocation Density (m^-2)"
	xys := make(plotter.XYs, len(evo.MatchedStrain))
	for i := range xys {
		xys[i].X = evo.MatchedStrain[i]
		xys[i].Y = evo.MatchedDensity[i]
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = blue
	p.Add(sc, plotter.NewGrid())
	return p.Save(7*vg.Inch, 5*vg.Inch, filename)
}

//CSPHistogram draws the distribution of centro-symmetry values of one
//snapshot; the high tail is the defect content.
func CSPHistogram(snap *crys.Snapshot, filename string) error {
	if snap.CSP == nil {
		return fmt.Errorf("snapshot at timestep %d carries no centro-symmetry column", snap.Timestep)
	}
	p := plot.New()
	p.Title.Text = "CSP Distribution"
	p.X.Label.Text = "Centro-Symmetry Parameter"
	p.Y.Label.Text = "Atoms"
	h, err := plotter.NewHist(plotter.Values(snap.CSP), 50)
	if err != nil {
		return err
	}
	h.FillColor = blue
	p.Add(h)
	return p.Save(7*vg.Inch, 5*vg.Inch, filename)
}
