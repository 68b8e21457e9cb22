// Package docx reads and writes DOCX containers and performs
// offset-addressed edits on the serialized document markup. It is
// deliberately not a full OOXML model: the document part is kept as a
// raw string and mutated through range replacements, so that
// everything the source file contains — styles, revisions, drawings —
// survives untouched.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const (
	documentPart  = "word/document.xml"
	numberingPart = "word/numbering.xml"
	contentTypes  = "[Content_Types].xml"
	documentRels  = "word/_rels/document.xml.rels"
)

// ErrNoBody is returned when the document part has no paragraph
// container at all. Nothing safe can be patched in that case.
var ErrNoBody = errors.New("docx: no document body found")

// Document is a fully materialized in-memory DOCX file. DocumentXML
// and NumberingXML are mutable working copies; all other parts are
// carried through byte-for-byte on Save.
type Document struct {
	parts map[string][]byte
	order []string // original part order, for stable output

	DocumentXML  string
	NumberingXML string // "" when the source has no numbering part

	numberingCreated bool
}

// Open reads a DOCX file from disk.
func Open(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()
	return fromZip(&r.Reader)
}

// OpenReader reads a DOCX container from an in-memory reader.
func OpenReader(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	return fromZip(zr)
}

func fromZip(zr *zip.Reader) (*Document, error) {
	d := &Document{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		d.parts[f.Name] = data
		d.order = append(d.order, f.Name)
	}

	doc, ok := d.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("docx: %s not found in container", documentPart)
	}
	d.DocumentXML = string(doc)
	if num, ok := d.parts[numberingPart]; ok {
		d.NumberingXML = string(num)
	}
	return d, nil
}

// HasBody reports whether the document part contains a body element.
func (d *Document) HasBody() bool {
	return strings.Contains(d.DocumentXML, "<w:body")
}

// Save writes the document back to a DOCX file. Untouched parts are
// copied through; the document and numbering parts are written from
// their working copies. A numbering part created during this run is
// also registered in the content types and relationship parts.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if err := d.write(f); err != nil {
		return err
	}
	return f.Close()
}

// Write serializes the container to w.
func (d *Document) Write(w io.Writer) error {
	return d.write(w)
}

func (d *Document) write(w io.Writer) error {
	d.parts[documentPart] = []byte(d.DocumentXML)
	if d.NumberingXML != "" {
		d.parts[numberingPart] = []byte(d.NumberingXML)
	}
	if d.numberingCreated {
		d.registerNumberingPart()
	}

	zw := zip.NewWriter(w)
	written := make(map[string]bool, len(d.parts))
	for _, name := range d.order {
		if err := writePart(zw, name, d.parts[name]); err != nil {
			return err
		}
		written[name] = true
	}
	// Parts added during this run (e.g. a fresh numbering part).
	for name, data := range d.parts {
		if !written[name] {
			if err := writePart(zw, name, data); err != nil {
				return err
			}
		}
	}
	return zw.Close()
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	pw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if _, err := pw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// registerNumberingPart patches the content-types and relationship
// parts so that a numbering part created from scratch is picked up by
// the word processor.
func (d *Document) registerNumberingPart() {
	if ct, ok := d.parts[contentTypes]; ok {
		s := string(ct)
		if !strings.Contains(s, numberingPart) {
			override := `<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`
			s = strings.Replace(s, "</Types>", override+"</Types>", 1)
			d.parts[contentTypes] = []byte(s)
		}
	}
	if rels, ok := d.parts[documentRels]; ok {
		s := string(rels)
		if !strings.Contains(s, "numbering.xml") {
			rel := fmt.Sprintf(
				`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`,
				d.freeRelID(s))
			s = strings.Replace(s, "</Relationships>", rel+"</Relationships>", 1)
			d.parts[documentRels] = []byte(s)
		}
	} else {
		d.parts[documentRels] = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
			`</Relationships>`)
	}
}

// freeRelID returns an rId not yet used in the relationships part.
func (d *Document) freeRelID(rels string) string {
	for i := 1; ; i++ {
		id := fmt.Sprintf("rId%d", i+100)
		if !strings.Contains(rels, `"`+id+`"`) {
			return id
		}
	}
}

// PlainText returns the document's paragraph texts joined with hard
// line breaks, in document order, blank paragraphs included. This is
// the input for the plain-text analysis pass; its paragraph indices
// line up one-to-one with Paragraphs() at the time of the call.
func (d *Document) PlainText() string {
	paras := d.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}
