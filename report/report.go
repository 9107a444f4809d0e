/*
 * report.go, part of gocrys.
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

//Package report collects the analysis outputs (markdown summaries and
//PNG figures) into a single PDF project report. It only reads whatever
//the other packages produced; images and sections that do not exist
//are simply left out.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

//The report's color scheme, RGB.
var (
	primary   = [3]int{30, 64, 175}   //rich blue
	secondary = [3]int{59, 130, 246}  //bright blue
	textgray  = [3]int{31, 41, 55}    //dark gray
	light     = [3]int{248, 250, 252} //off-white
	gray      = [3]int{107, 114, 128} //medium gray
)

//Figure is one image in the results section.
type Figure struct {
	Caption     string
	Path        string
	Description string
}

//Section is one markdown report rendered into the PDF.
type Section struct {
	Title string
	Path  string
}

//Params drives Build.
type Params struct {
	Title    string
	Subtitle string
	Author   string
	Overview string
	Figures  []Figure
	Sections []Section
}

//Build writes the PDF to outfile.
func Build(p *Params, outfile string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(13, 17, 13)
	pdf.SetAutoPageBreak(true, 17)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(primary[0], primary[1], primary[2])
		pdf.CellFormat(0, 10, fmt.Sprintf("%s   |   Page %d", p.Title, pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	cover(pdf, p)
	toc(pdf, p)
	overview(pdf, p)
	software(pdf)
	structure(pdf)
	figures(pdf, p)
	for _, s := range p.Sections {
		if _, err := os.Stat(s.Path); err != nil {
			continue
		}
		section(pdf, s)
	}
	if err := pdf.OutputFileAndClose(outfile); err != nil {
		return fmt.Errorf("can't build report %s: %w", outfile, err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(primary[0], primary[1], primary[2])
	pdf.MultiCell(0, 11, text, "", "L", false)
	pdf.Ln(4)
}

func body(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(textgray[0], textgray[1], textgray[2])
	pdf.MultiCell(0, 5.5, text, "", "L", false)
	pdf.Ln(2)
}

func cover(pdf *fpdf.Fpdf, p *Params) {
	pdf.AddPage()
	pdf.Ln(50)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetTextColor(primary[0], primary[1], primary[2])
	pdf.MultiCell(0, 14, p.Title, "", "C", false)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 20)
	pdf.SetTextColor(secondary[0], secondary[1], secondary[2])
	pdf.MultiCell(0, 10, p.Subtitle, "", "C", false)
	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(gray[0], gray[1], gray[2])
	pdf.MultiCell(0, 7, "Author: "+p.Author, "", "C", false)
	pdf.MultiCell(0, 7, "Date: "+time.Now().Format("January 2, 2006"), "", "C", false)
	pdf.Ln(40)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.MultiCell(0, 7, "Generated automatically with goCrys", "", "C", false)
}

func toc(pdf *fpdf.Fpdf, p *Params) {
	pdf.AddPage()
	heading(pdf, "Table of Contents")
	entries := []string{"Project Overview", "Software and Tools Used", "Project Structure", "Results and Visualizations"}
	for _, s := range p.Sections {
		entries = append(entries, s.Title)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(primary[0], primary[1], primary[2])
	for _, e := range entries {
		pdf.MultiCell(0, 9, e, "", "L", false)
	}
}

func overview(pdf *fpdf.Fpdf, p *Params) {
	pdf.AddPage()
	heading(pdf, "Project Overview")
	body(pdf, p.Overview)
}

func software(pdf *fpdf.Fpdf) {
	heading(pdf, "Software and Tools Used")
	rows := [][]string{
		{"Software", "Purpose"},
		{"Atomsk", "Structure Generation"},
		{"LAMMPS", "Molecular Dynamics Simulation"},
		{"OVITO/VMD", "Visualization"},
		{"goCrys", "Analysis and Reporting"},
	}
	table(pdf, rows, []float64{60, 120})
	pdf.Ln(6)
}

func structure(pdf *fpdf.Fpdf) {
	heading(pdf, "Project Structure")
	rows := [][]string{
		{"Directory", "Contents"},
		{"inputs/", "Seed cell and generator parameter files"},
		{"outputs/", "Raw simulation outputs (dump, run log)"},
		{"results/", "Plots, reports and this document"},
	}
	table(pdf, rows, []float64{60, 120})
	pdf.Ln(6)
}

func figures(pdf *fpdf.Fpdf, p *Params) {
	pdf.AddPage()
	heading(pdf, "Results and Visualizations")
	for _, fig := range p.Figures {
		if _, err := os.Stat(fig.Path); err != nil {
			continue
		}
		pdf.ImageOptions(fig.Path, 20, pdf.GetY(), 170, 0, true,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(gray[0], gray[1], gray[2])
		pdf.MultiCell(0, 6, fig.Caption, "", "C", false)
		body(pdf, fig.Description)
		pdf.Ln(4)
	}
}

func section(pdf *fpdf.Fpdf, s Section) {
	pdf.AddPage()
	heading(pdf, s.Title)
	blocks, err := readMarkdown(s.Path)
	if err != nil {
		body(pdf, fmt.Sprintf("[Could not read %s: %v]", s.Path, err))
		return
	}
	for _, b := range blocks {
		switch b.kind {
		case mdHeading:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetTextColor(secondary[0], secondary[1], secondary[2])
			pdf.MultiCell(0, 8, b.text, "", "L", false)
			pdf.Ln(1)
		case mdTable:
			table(pdf, b.rows, nil)
			pdf.Ln(4)
		default:
			body(pdf, b.text)
		}
	}
}

//table renders rows with a colored header row and alternating body
//fills. Nil widths spreads the columns evenly over the page.
func table(pdf *fpdf.Fpdf, rows [][]string, widths []float64) {
	if len(rows) == 0 {
		return
	}
	if widths == nil {
		pw, _ := pdf.GetPageSize()
		l, _, r, _ := pdf.GetMargins()
		w := (pw - l - r) / float64(len(rows[0]))
		widths = make([]float64, len(rows[0]))
		for i := range widths {
			widths[i] = w
		}
	}
	for i, row := range rows {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFillColor(primary[0], primary[1], primary[2])
		} else {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(textgray[0], textgray[1], textgray[2])
			if i%2 == 1 {
				pdf.SetFillColor(light[0], light[1], light[2])
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
		}
		for j, cell := range row {
			w := widths[len(widths)-1]
			if j < len(widths) {
				w = widths[j]
			}
			pdf.CellFormat(w, 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}
