package docx

import (
	"encoding/xml"
	"strings"
)

// TableRegions returns the byte ranges of every top-level table in
// the serialized markup. Nested tables are folded into their
// outermost region; containment is decided by balanced start/end
// boundary matching, not by tag counting on raw text.
func (d *Document) TableRegions() []Range {
	dec := xml.NewDecoder(strings.NewReader(d.DocumentXML))

	var regions []Range
	depth := 0
	start := 0

	for {
		prevOff := int(dec.InputOffset())
		tok, err := dec.Token()
		if err != nil {
			break
		}
		curOff := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			if isWordElem(t.Name, "tbl") {
				if depth == 0 {
					start = prevOff
				}
				depth++
			}
		case xml.EndElement:
			if isWordElem(t.Name, "tbl") && depth > 0 {
				depth--
				if depth == 0 {
					regions = append(regions, Range{Start: start, End: curOff})
				}
			}
		}
	}
	return regions
}

// InTable reports whether the paragraph lies inside any of the given
// table regions.
func InTable(p ParagraphRef, tables []Range) bool {
	for _, t := range tables {
		if t.Contains(p.Elem) {
			return true
		}
	}
	return false
}
