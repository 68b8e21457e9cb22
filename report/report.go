// Package report writes the analysis of a witness statement to an
// XLSX workbook, one row per paragraph, for manual review before or
// after a reformatting run.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/KBGitHubacc/wordformat/classify"
	"github.com/KBGitHubacc/wordformat/numbering"
)

// maxCellChars truncates paragraph text in the workbook; the row is a
// review aid, not an archive.
const maxCellChars = 300

// Row describes one analyzed paragraph.
type Row struct {
	Index  int
	Type   classify.ParagraphType
	Level  int
	Target bool
	Text   string
}

// Analysis is everything one run learned about a document.
type Analysis struct {
	InputPath  string
	OutputPath string
	Rows       []Row
	Stats      numbering.Stats
	Targets    int
}

// BuildRows assembles per-paragraph rows from the analysis pass.
// Empty paragraphs are omitted.
func BuildRows(paras []classify.Paragraph, types []classify.ParagraphType, levels []int, targets []numbering.Target) []Row {
	targeted := make(map[int]bool, len(targets))
	for _, t := range targets {
		targeted[t.ParagraphIndex] = true
	}

	var rows []Row
	for i, p := range paras {
		if p.IsEmpty() {
			continue
		}
		rows = append(rows, Row{
			Index:  p.Index,
			Type:   types[i],
			Level:  levels[i],
			Target: targeted[p.Index],
			Text:   p.Text,
		})
	}
	return rows
}

const (
	sheetParagraphs = "Paragraphs"
	sheetSummary    = "Summary"
)

// Write saves the analysis as an XLSX workbook at path.
func Write(path string, a Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetParagraphs)
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	headers := []string{"Index", "Type", "Level", "Numbered", "Text"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetParagraphs, cell, h)
	}
	for i, row := range a.Rows {
		text := row.Text
		if len(text) > maxCellChars {
			text = text[:maxCellChars]
		}
		values := []interface{}{row.Index, row.Type.String(), row.Level, row.Target, text}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetParagraphs, cell, v)
		}
	}
	f.SetColWidth(sheetParagraphs, "E", "E", 90)

	summary := [][]interface{}{
		{"Input", a.InputPath},
		{"Output", a.OutputPath},
		{"Paragraphs", len(a.Rows)},
		{"Targets", a.Targets},
		{"Matched", a.Stats.Matched},
		{"Dropped", a.Stats.Dropped},
		{"Skipped (tables)", a.Stats.Skipped},
		{"Numbering id", a.Stats.NumID},
	}
	for r, pair := range summary {
		for col, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+1)
			f.SetCellValue(sheetSummary, cell, v)
		}
	}
	f.SetColWidth(sheetSummary, "A", "B", 40)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}
