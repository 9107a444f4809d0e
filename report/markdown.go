package report

import (
	"bufio"
	"os"
	"strings"
)

//The PDF builder understands only the markdown subset the analysis
//packages emit: atx headings, pipe tables and plain paragraphs.

const (
	mdParagraph = iota
	mdHeading
	mdTable
)

type mdBlock struct {
	kind int
	text string
	rows [][]string
}

//readMarkdown parses a report file into blocks. "Next Steps" sections
//are dropped, emphasis asterisks are stripped and table separator rows
//(|---|...) are discarded.
func readMarkdown(path string) ([]mdBlock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var blocks []mdBlock
	var para []string
	var rows [][]string
	skipping := false //inside a Next Steps section
	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, mdBlock{kind: mdParagraph, text: strings.Join(para, "\n")})
			para = nil
		}
	}
	flushTable := func() {
		if len(rows) > 1 {
			blocks = append(blocks, mdBlock{kind: mdTable, rows: rows})
		}
		rows = nil
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.ReplaceAll(line, "*", "")
		if strings.HasPrefix(line, "#") {
			flushPara()
			flushTable()
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if strings.EqualFold(title, "Next Steps") {
				skipping = true
				continue
			}
			skipping = false
			blocks = append(blocks, mdBlock{kind: mdHeading, text: title})
			continue
		}
		if skipping {
			continue
		}
		if strings.HasPrefix(line, "|") {
			flushPara()
			if strings.HasPrefix(line, "|-") || strings.HasPrefix(line, "| -") {
				continue
			}
			cells := strings.Split(strings.Trim(line, "|"), "|")
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			rows = append(rows, cells)
			continue
		}
		flushTable()
		if line == "" {
			flushPara()
			continue
		}
		para = append(para, line)
	}
	flushPara()
	flushTable()
	return blocks, scanner.Err()
}
