package docx

import (
	"fmt"
	"strings"
)

// HeaderInfo describes the standard court header block prepended to a
// witness statement.
type HeaderInfo struct {
	Tribunal   string `json:"tribunal" yaml:"tribunal"`
	CaseNumber string `json:"case_number" yaml:"case_number"`
	Claimant   string `json:"claimant" yaml:"claimant"`
	Respondent string `json:"respondent" yaml:"respondent"`
	Witness    string `json:"witness" yaml:"witness"`
}

// InsertHeader prepends the standard header paragraphs to the
// document body: tribunal line, case number, the BETWEEN block with
// the parties, and the statement title. Existing content is untouched
// and moves down; paragraph offsets are invalidated, so re-enumerate
// afterwards.
func (d *Document) InsertHeader(info HeaderInfo) error {
	open := strings.Index(d.DocumentXML, "<w:body")
	if open < 0 {
		return ErrNoBody
	}
	openEnd := strings.Index(d.DocumentXML[open:], ">")
	if openEnd < 0 {
		return ErrNoBody
	}
	at := open + openEnd + 1

	var b strings.Builder
	if info.Tribunal != "" {
		b.WriteString(headerPara(strings.ToUpper(info.Tribunal), true, true))
	}
	if info.CaseNumber != "" {
		b.WriteString(headerPara("Case Number: "+info.CaseNumber, false, true))
	}
	if info.Claimant != "" || info.Respondent != "" {
		b.WriteString(headerPara("B E T W E E N:", true, true))
		b.WriteString(headerPara(info.Claimant, false, true))
		b.WriteString(headerPara("Claimant", false, true))
		b.WriteString(headerPara("-and-", false, true))
		b.WriteString(headerPara(info.Respondent, false, true))
		b.WriteString(headerPara("Respondent", false, true))
	}
	if info.Witness != "" {
		b.WriteString(headerPara("", false, false))
		b.WriteString(headerPara("WITNESS STATEMENT OF "+strings.ToUpper(info.Witness), true, true))
	}
	b.WriteString(headerPara("", false, false))

	d.DocumentXML = d.DocumentXML[:at] + b.String() + d.DocumentXML[at:]
	return nil
}

// headerPara builds one serialized header paragraph.
func headerPara(text string, bold, centered bool) string {
	var props strings.Builder
	if centered {
		props.WriteString(`<w:jc w:val="center"/>`)
	}

	var run strings.Builder
	if text != "" {
		run.WriteString("<w:r>")
		if bold {
			run.WriteString(`<w:rPr><w:b/></w:rPr>`)
		}
		fmt.Fprintf(&run, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(text))
		run.WriteString("</w:r>")
	}

	if props.Len() == 0 {
		return "<w:p>" + run.String() + "</w:p>"
	}
	return "<w:p><w:pPr>" + props.String() + "</w:pPr>" + run.String() + "</w:p>"
}
