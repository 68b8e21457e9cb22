package docx

import (
	"strings"
	"testing"
)

func TestAllocateNumberingID(t *testing.T) {
	tests := []struct {
		existing []int
		want     int
	}{
		{nil, 1},
		{[]int{1, 3, 7}, 107},
		{[]int{200}, 300},
		{[]int{7, 1, 3}, 107},
	}
	for _, tt := range tests {
		if got := AllocateNumberingID(tt.existing); got != tt.want {
			t.Errorf("AllocateNumberingID(%v) = %d, want %d", tt.existing, got, tt.want)
		}
	}
}

func TestExistingNumberingIDs(t *testing.T) {
	d := &Document{NumberingXML: `<?xml version="1.0"?>` +
		`<w:numbering ` + nsAttr + `>` +
		`<w:abstractNum w:abstractNumId="1"></w:abstractNum>` +
		`<w:abstractNum w:abstractNumId="3"></w:abstractNum>` +
		`<w:num w:numId="7"><w:abstractNumId w:val="3"/></w:num>` +
		`</w:numbering>`}

	got := d.ExistingNumberingIDs()
	want := []int{1, 3, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestExistingNumberingIDsNoPart(t *testing.T) {
	d := &Document{}
	if got := d.ExistingNumberingIDs(); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestAddListDefinitionCreatesPart(t *testing.T) {
	d := &Document{}
	d.AddListDefinition(1)

	if !d.numberingCreated {
		t.Error("numberingCreated not set")
	}
	for _, want := range []string{
		`<w:abstractNum w:abstractNumId="1">`,
		`<w:numFmt w:val="decimal"/>`,
		`<w:numFmt w:val="lowerLetter"/>`,
		`<w:numFmt w:val="lowerRoman"/>`,
		`<w:num w:numId="1"><w:abstractNumId w:val="1"/></w:num>`,
	} {
		if !strings.Contains(d.NumberingXML, want) {
			t.Errorf("numbering part missing %s", want)
		}
	}
}

func TestAddListDefinitionOrdersAbstractFirst(t *testing.T) {
	d := &Document{NumberingXML: `<?xml version="1.0"?>` +
		`<w:numbering ` + nsAttr + `>` +
		`<w:abstractNum w:abstractNumId="0"></w:abstractNum>` +
		`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
		`</w:numbering>`}
	d.AddListDefinition(101)

	abstract := strings.Index(d.NumberingXML, `<w:abstractNum w:abstractNumId="101">`)
	firstNum := strings.Index(d.NumberingXML, `<w:num `)
	if abstract < 0 || firstNum < 0 || abstract > firstNum {
		t.Errorf("new abstract definition at %d, first instance at %d; abstracts must precede instances", abstract, firstNum)
	}
	if d.numberingCreated {
		t.Error("numberingCreated set although the part existed")
	}
}

func TestNumberingEdits(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"replaces existing numPr",
			`<w:p><w:pPr><w:numPr><w:ilvl w:val="3"/><w:numId w:val="9"/></w:numPr></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
			`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="5"/></w:numPr></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
		},
		{
			"inserts after pStyle",
			`<w:p><w:pPr><w:pStyle w:val="Body"/><w:jc w:val="both"/></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
			`<w:p><w:pPr><w:pStyle w:val="Body"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="5"/></w:numPr><w:jc w:val="both"/></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
		},
		{
			"inserts into empty pPr",
			`<w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
			`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="5"/></w:numPr><w:jc w:val="both"/></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
		},
		{
			"replaces self-closing pPr",
			`<w:p><w:pPr/><w:r><w:t>T.</w:t></w:r></w:p>`,
			`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="5"/></w:numPr></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
		},
		{
			"creates pPr",
			`<w:p><w:r><w:t>T.</w:t></w:r></w:p>`,
			`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="5"/></w:numPr></w:pPr><w:r><w:t>T.</w:t></w:r></w:p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := docWith(tt.body)
			p := d.Paragraphs()[0]
			if err := d.ApplyEdits(NumberingEdits(p, 5, 0)); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(d.DocumentXML, tt.want) {
				t.Errorf("got %q\nwant fragment %q", d.DocumentXML, tt.want)
			}
		})
	}
}
