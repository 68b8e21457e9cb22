package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// ExistingNumberingIDs returns every id already used in the
// document's numbering part, across both numbering instances
// (w:num/@numId) and abstract definitions (w:abstractNum/@abstractNumId).
// An absent numbering part yields an empty slice.
func (d *Document) ExistingNumberingIDs() []int {
	if d.NumberingXML == "" {
		return nil
	}
	dec := xml.NewDecoder(strings.NewReader(d.NumberingXML))

	var ids []int
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var attr string
		switch {
		case isWordElem(se.Name, "num"):
			attr = "numId"
		case isWordElem(se.Name, "abstractNum"):
			attr = "abstractNumId"
		default:
			continue
		}
		if v := attrVal(se, attr); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// AllocateNumberingID returns a numbering id guaranteed not to
// collide with any existing id. The wide offset leaves room for ids
// the scan may have missed (e.g. ids referenced by styles only).
func AllocateNumberingID(existing []int) int {
	if len(existing) == 0 {
		return 1
	}
	max := existing[0]
	for _, id := range existing[1:] {
		if id > max {
			max = id
		}
	}
	return max + 100
}

const numberingSkeleton = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:numbering xmlns:w="` + wordNS + `"></w:numbering>`

// AddListDefinition installs a three-level decimal / lower-letter /
// lower-roman list definition under the given id, which is used for
// both the abstract definition and the numbering instance. The
// numbering part is created from scratch when the document has none.
func (d *Document) AddListDefinition(id int) {
	if d.NumberingXML == "" {
		d.NumberingXML = numberingSkeleton
		d.numberingCreated = true
	}

	abstract := buildAbstractNum(id)
	instance := fmt.Sprintf(`<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`, id, id)

	// Schema order: all abstractNum elements precede all num elements.
	if i := strings.Index(d.NumberingXML, "<w:num "); i >= 0 {
		d.NumberingXML = d.NumberingXML[:i] + abstract + d.NumberingXML[i:]
	} else {
		d.NumberingXML = strings.Replace(d.NumberingXML, "</w:numbering>", abstract+"</w:numbering>", 1)
	}
	d.NumberingXML = strings.Replace(d.NumberingXML, "</w:numbering>", instance+"</w:numbering>", 1)
}

// numberingLevels describes the three levels of the witness-statement
// list: 1. / (a) / (i).
var numberingLevels = []struct {
	format  string
	lvlText string
	indent  int // left indent in twips, hanging 360
}{
	{"decimal", "%1.", 720},
	{"lowerLetter", "(%2)", 1440},
	{"lowerRoman", "(%3)", 2160},
}

func buildAbstractNum(id int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<w:abstractNum w:abstractNumId="%d">`, id)
	b.WriteString(`<w:multiLevelType w:val="multilevel"/>`)
	for i, lvl := range numberingLevels {
		fmt.Fprintf(&b, `<w:lvl w:ilvl="%d">`, i)
		b.WriteString(`<w:start w:val="1"/>`)
		fmt.Fprintf(&b, `<w:numFmt w:val="%s"/>`, lvl.format)
		fmt.Fprintf(&b, `<w:lvlText w:val="%s"/>`, lvl.lvlText)
		b.WriteString(`<w:lvlJc w:val="left"/>`)
		fmt.Fprintf(&b, `<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr>`, lvl.indent)
		b.WriteString(`</w:lvl>`)
	}
	b.WriteString(`</w:abstractNum>`)
	return b.String()
}

// NumPrXML returns the numbering-properties element binding a
// paragraph to numbering instance numID at the given level.
func NumPrXML(numID, level int) string {
	return fmt.Sprintf(`<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, level, numID)
}

// NumberingEdits returns the edits that give paragraph p native
// numbering. Pre-existing numbering on the paragraph is replaced, not
// stacked; a missing pPr is created in place.
func NumberingEdits(p ParagraphRef, numID, level int) []Edit {
	numPr := NumPrXML(numID, level)
	switch {
	case p.NumPr.Valid():
		return []Edit{{Start: p.NumPr.Start, End: p.NumPr.End, Replacement: numPr}}
	case p.PPr.Valid() && p.PPrOpenEnd < p.PPr.End:
		// numPr must follow pStyle when one is present.
		at := p.PPrOpenEnd
		if p.PStyleEnd > 0 {
			at = p.PStyleEnd
		}
		return []Edit{{Start: at, End: at, Replacement: numPr}}
	case p.PPr.Valid():
		// self-closing <w:pPr/>
		return []Edit{{Start: p.PPr.Start, End: p.PPr.End, Replacement: "<w:pPr>" + numPr + "</w:pPr>"}}
	default:
		return []Edit{{Start: p.OpenEnd, End: p.OpenEnd, Replacement: "<w:pPr>" + numPr + "</w:pPr>"}}
	}
}
