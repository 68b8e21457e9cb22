//go:build cgo

package wordformat

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KBGitHubacc/wordformat/docx"
)

func writeTestDocx(t *testing.T, path string) {
	t.Helper()
	const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	para := func(text string) string {
		return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document ` + ns + `><w:body>` +
		para("IN THE COUNTY COURT AT CARDIFF") +
		para("WITNESS STATEMENT OF SARAH JONES") +
		para("I, Sarah Jones, will say as follows:") +
		para("1. I am the Claimant in these proceedings.") +
		para("2. On 1 May 2025 I asked the Respondent for:") +
		para("(a) a copy of my contract of employment;") +
		para("3. I received no response to that request.") +
		para("I believe that the facts stated in this witness statement are true.") +
		`</w:body></w:document>`

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": document,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testEngine(t *testing.T) Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestEngineReformat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.docx")
	writeTestDocx(t, input)

	e := testEngine(t)
	res, err := e.Reformat(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}

	if res.OutputPath != filepath.Join(dir, "statement_formatted.docx") {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}
	if res.Targets != 4 {
		t.Errorf("Targets = %d, want 4", res.Targets)
	}
	if res.Stats.Matched != 4 || res.Stats.Dropped != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.HintsFrom != "none" {
		t.Errorf("HintsFrom = %q, want none without a classifier", res.HintsFrom)
	}
	if res.RunID == "" {
		t.Error("RunID not recorded")
	}

	out, err := docx.Open(res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.DocumentXML, "<w:numPr>"); got != 4 {
		t.Errorf("output has %d numbered paragraphs, want 4", got)
	}
	if !strings.Contains(out.DocumentXML, `<w:t>I am the Claimant in these proceedings.</w:t>`) {
		t.Error("manual marker not stripped in output")
	}
	if out.NumberingXML == "" {
		t.Error("output has no numbering part")
	}
	if !strings.Contains(out.DocumentXML, `<w:t>I believe that the facts stated in this witness statement are true.</w:t>`) {
		t.Error("statement of truth modified")
	}
}

func TestEngineReformatWithHeader(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.docx")
	writeTestDocx(t, input)

	e := testEngine(t)
	res, err := e.Reformat(context.Background(), input, WithHeader(docx.HeaderInfo{
		Tribunal: "In the County Court at Cardiff",
		Witness:  "Sarah Jones",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Matched != 4 {
		t.Errorf("Stats = %+v; header insertion must not break matching", res.Stats)
	}

	out, err := docx.Open(res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.DocumentXML, "WITNESS STATEMENT OF SARAH JONES</w:t>") {
		t.Error("inserted title missing")
	}
}

func TestEngineAnalyzeDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.docx")
	writeTestDocx(t, input)

	e := testEngine(t)
	res, err := e.Analyze(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if res.Targets != 4 {
		t.Errorf("Targets = %d, want 4", res.Targets)
	}
	if res.OutputPath != "" {
		t.Errorf("OutputPath = %q, want empty for analyze", res.OutputPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "statement_formatted.docx")); !os.IsNotExist(err) {
		t.Error("analyze wrote an output file")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after analyze, want 1", len(entries))
	}
}

func TestEngineReformatReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.docx")
	writeTestDocx(t, input)
	reportPath := filepath.Join(dir, "review.xlsx")

	e := testEngine(t)
	if _, err := e.Reformat(context.Background(), input, WithReport(reportPath)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestEngineRejectsNonDocx(t *testing.T) {
	e := testEngine(t)
	if _, err := e.Reformat(context.Background(), "notes.txt"); err == nil {
		t.Fatal("expected error for non-DOCX input")
	}
}
