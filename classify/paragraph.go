package classify

import "strings"

// Paragraph is one contiguous unit of document text produced by a
// single extraction pass. Start/Length locate the untrimmed paragraph
// in the text that was handed to the extractor; offsets from the
// plain-text pass and the serialized-markup pass are different
// coordinate spaces and must not be mixed.
type Paragraph struct {
	Index  int    // 0-based position among all paragraphs, blanks included
	Text   string // trimmed content
	Start  int
	Length int

	// Style hints carried over from the document when known.
	// Zero values mean "no hint".
	IndentPt float64 // effective left indent in points
	Bold     bool
	Centered bool
}

// IsEmpty reports whether the paragraph has no visible content.
func (p Paragraph) IsEmpty() bool { return p.Text == "" }

// ExtractParagraphs splits plain text into paragraphs on hard line
// breaks. Blank paragraphs are kept so that indices stay aligned with
// any externally supplied classification map built over the same text.
func ExtractParagraphs(text string) []Paragraph {
	return ExtractParagraphsFrom(text, 0)
}

// ExtractParagraphsFrom extracts only the paragraphs whose start
// offset is at or after from. The returned paragraphs are a fresh
// pass: indices count from zero within the returned slice.
func ExtractParagraphsFrom(text string, from int) []Paragraph {
	var paras []Paragraph
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		start := offset
		offset += len(line) + 1 // +1 for the newline
		if start < from {
			continue
		}
		paras = append(paras, Paragraph{
			Index:  len(paras),
			Text:   strings.TrimSpace(line),
			Start:  start,
			Length: len(line),
		})
	}
	return paras
}
