package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KBGitHubacc/wordformat/classify"
)

// Range is a half-open [Start, End) byte range within DocumentXML.
type Range struct {
	Start, End int
}

// Valid reports whether the range covers at least one byte.
func (r Range) Valid() bool { return r.End > r.Start }

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// ParagraphRef locates one <w:p> element inside the serialized
// document markup, together with the sub-ranges the numbering patcher
// needs to edit. All offsets are raw byte offsets in DocumentXML and
// are invalidated by any edit — re-enumerate after ApplyEdits.
type ParagraphRef struct {
	Index int
	Elem  Range // the full <w:p>...</w:p> element

	OpenEnd    int   // just after the <w:p ...> open tag
	PPr        Range // <w:pPr> element, zero when absent
	PPrOpenEnd int   // just after the <w:pPr> open tag
	PStyleEnd  int   // just after </w:pStyle> (or its self-closing tag), 0 when absent
	NumPr      Range // existing <w:numPr> element, zero when absent
	FirstText  Range // inner content of the first non-blank <w:t>

	Text     string // concatenated run text, trimmed
	Style    string
	IndentPt float64 // left indent from <w:ind>, in points
	Bold     bool
	Centered bool
}

// isWordElem reports whether the element is a WordprocessingML
// element. Documents in the wild occasionally omit the namespace.
func isWordElem(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == wordNS || name.Space == "")
}

// Paragraphs scans the serialized markup and returns every paragraph
// in document order, including paragraphs inside table cells (use
// TableRegions to exclude those). The scan is a single pass over the
// raw XML; malformed trailing content simply ends the enumeration.
func (d *Document) Paragraphs() []ParagraphRef {
	dec := xml.NewDecoder(strings.NewReader(d.DocumentXML))

	var paras []ParagraphRef
	var cur ParagraphRef
	// paraDepth counts nested <w:p> elements; paragraphs inside text
	// boxes (w:txbxContent) nest within a body paragraph and fold
	// their text into it rather than enumerating separately.
	paraDepth := 0
	inPPr := false
	var text strings.Builder
	tStart := 0
	inT := false

	for {
		prevOff := int(dec.InputOffset())
		tok, err := dec.Token()
		if err != nil {
			break
		}
		curOff := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWordElem(t.Name, "p"):
				if paraDepth == 0 {
					cur = ParagraphRef{Index: len(paras), Elem: Range{Start: prevOff}, OpenEnd: curOff}
					text.Reset()
				}
				paraDepth++
			case paraDepth == 0:
				// property elements outside paragraphs (e.g. sectPr) are skipped
			case isWordElem(t.Name, "pPr") && paraDepth == 1:
				cur.PPr = Range{Start: prevOff}
				cur.PPrOpenEnd = curOff
				inPPr = true
			case isWordElem(t.Name, "pStyle") && inPPr:
				cur.Style = attrVal(t, "val")
			case isWordElem(t.Name, "numPr") && inPPr:
				cur.NumPr = Range{Start: prevOff}
			case isWordElem(t.Name, "ind") && inPPr:
				if v := attrVal(t, "left"); v != "" {
					if twips, err := strconv.Atoi(v); err == nil {
						cur.IndentPt = float64(twips) / 20
					}
				}
			case isWordElem(t.Name, "jc") && inPPr:
				if v := attrVal(t, "val"); v == "center" {
					cur.Centered = true
				}
			case isWordElem(t.Name, "b") && inPPr:
				// run-property default for the whole paragraph
				cur.Bold = attrVal(t, "val") != "false" && attrVal(t, "val") != "0"
			case isWordElem(t.Name, "t"):
				inT = true
				tStart = curOff
			}

		case xml.CharData:
			if inT {
				text.Write([]byte(t))
			}

		case xml.EndElement:
			switch {
			case isWordElem(t.Name, "p") && paraDepth > 0:
				paraDepth--
				if paraDepth == 0 {
					cur.Elem.End = curOff
					cur.Text = strings.TrimSpace(text.String())
					paras = append(paras, cur)
					inPPr = false
				}
			case isWordElem(t.Name, "pPr") && paraDepth == 1:
				cur.PPr.End = curOff
				inPPr = false
			case isWordElem(t.Name, "pStyle") && paraDepth == 1:
				cur.PStyleEnd = curOff
			case isWordElem(t.Name, "numPr") && paraDepth == 1:
				cur.NumPr.End = curOff
			case isWordElem(t.Name, "t"):
				if inT && paraDepth == 1 && !cur.FirstText.Valid() {
					inner := d.DocumentXML[tStart:prevOff]
					if strings.TrimSpace(unescapeXML(inner)) != "" {
						cur.FirstText = Range{Start: tStart, End: prevOff}
					}
				}
				inT = false
			}
		}
	}
	return paras
}

func attrVal(e xml.StartElement, local string) string {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Range edits
// ---------------------------------------------------------------------------

// Edit is one range replacement in DocumentXML.
type Edit struct {
	Start, End  int
	Replacement string
}

// ApplyEdits applies a batch of range replacements in reverse
// document order, so earlier offsets stay valid while later ones are
// rewritten. Overlapping edits are rejected.
func (d *Document) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].End > sorted[i-1].Start {
			return fmt.Errorf("docx: overlapping edits at %d and %d", sorted[i].Start, sorted[i-1].Start)
		}
	}

	doc := d.DocumentXML
	for _, e := range sorted {
		if e.Start < 0 || e.End > len(doc) || e.Start > e.End {
			return fmt.Errorf("docx: edit range [%d,%d) out of bounds", e.Start, e.End)
		}
		doc = doc[:e.Start] + e.Replacement + doc[e.End:]
	}
	d.DocumentXML = doc
	return nil
}

// StripMarkerEdit builds the edit that removes the manual numbering
// marker for level from the paragraph's first text run. stripMain
// additionally removes a bare leading main number from level-0
// paragraphs (the patch path replaces it with native numbering).
// Returns false when the paragraph has no text run or nothing to
// strip.
func (d *Document) StripMarkerEdit(p ParagraphRef, level int, stripMain bool) (Edit, bool) {
	if !p.FirstText.Valid() {
		return Edit{}, false
	}
	// Markers are plain ASCII at the very start of the run, so the
	// strip operates on the raw (still-escaped) text: the tail of the
	// run, entities included, is carried through byte-for-byte.
	raw := d.DocumentXML[p.FirstText.Start:p.FirstText.End]
	lead := len(raw) - len(strings.TrimLeft(raw, " \t"))
	head := raw[lead:]

	stripped := classify.StripMarker(head, level)
	if stripMain && level == 0 {
		stripped = classify.StripMainNumber(stripped)
	}
	if stripped == head {
		return Edit{}, false
	}
	return Edit{Start: p.FirstText.Start + lead, End: p.FirstText.End, Replacement: stripped}, true
}

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return xmlUnescaper.Replace(s)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
