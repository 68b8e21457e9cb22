package classify

// Pass identifies which extraction pass a set of paragraph indices
// refers to. The plain-text pass (analysis) and the serialized-markup
// pass (patching) enumerate paragraphs independently; an override
// built over one pass is meaningless against the other.
type Pass int

const (
	// PassPlainText is the analysis pass over the document's plain text.
	PassPlainText Pass = iota
	// PassSerialized is the patch pass over the serialized markup.
	PassSerialized
)

// String returns a human-readable pass name.
func (p Pass) String() string {
	switch p {
	case PassPlainText:
		return "plaintext"
	case PassSerialized:
		return "serialized"
	default:
		return "unknown"
	}
}

// ParagraphType is the semantic role assigned to a paragraph.
type ParagraphType int

const (
	TypeUnknown ParagraphType = iota
	TypeHeader
	TypeTitle
	TypeIntro
	TypeHeading
	TypeBody
	TypeQuote
	TypeStatementOfTruth
	TypeSignature
)

// String returns the canonical lowercase name of the type.
func (t ParagraphType) String() string {
	switch t {
	case TypeHeader:
		return "header"
	case TypeTitle:
		return "title"
	case TypeIntro:
		return "intro"
	case TypeHeading:
		return "heading"
	case TypeBody:
		return "body"
	case TypeQuote:
		return "quote"
	case TypeStatementOfTruth:
		return "statement_of_truth"
	case TypeSignature:
		return "signature"
	default:
		return "unknown"
	}
}

// ParseParagraphType maps a canonical type name back to its value.
// It accepts the names produced by String plus a few spellings the
// external classifier is known to emit.
func ParseParagraphType(s string) (ParagraphType, bool) {
	switch s {
	case "header":
		return TypeHeader, true
	case "title":
		return TypeTitle, true
	case "intro", "introduction":
		return TypeIntro, true
	case "heading", "section_heading":
		return TypeHeading, true
	case "body", "numbered", "paragraph":
		return TypeBody, true
	case "quote":
		return TypeQuote, true
	case "statement_of_truth", "truth":
		return TypeStatementOfTruth, true
	case "signature":
		return TypeSignature, true
	default:
		return TypeUnknown, false
	}
}

// Override carries externally supplied per-paragraph classifications
// and numbering levels. Indices refer to the pass named by Pass;
// consumers must ignore an override tagged for a different pass
// rather than misapply its indices.
type Override struct {
	Pass   Pass
	Types  map[int]ParagraphType
	Levels map[int]int
}

// TypeFor returns the overridden type for a paragraph index, if any.
// Safe on a nil receiver.
func (o *Override) TypeFor(index int) (ParagraphType, bool) {
	if o == nil || o.Types == nil {
		return TypeUnknown, false
	}
	t, ok := o.Types[index]
	return t, ok
}

// LevelFor returns the overridden numbering level for a paragraph
// index, if any. Safe on a nil receiver. Values are clamped to the
// valid 0..2 range.
func (o *Override) LevelFor(index int) (int, bool) {
	if o == nil || o.Levels == nil {
		return 0, false
	}
	lvl, ok := o.Levels[index]
	if !ok {
		return 0, false
	}
	if lvl < 0 {
		lvl = 0
	}
	if lvl > 2 {
		lvl = 2
	}
	return lvl, true
}

// Empty reports whether the override carries no information at all.
// Safe on a nil receiver.
func (o *Override) Empty() bool {
	return o == nil || (len(o.Types) == 0 && len(o.Levels) == 0)
}
