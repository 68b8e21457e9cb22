package classify

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
)

// ---------------------------------------------------------------------------
// Keyword and pattern tables
// ---------------------------------------------------------------------------

// headerPatterns match front-matter lines of a UK witness statement:
// the tribunal/court line, case references, party markers and the
// "-and-" / "v" separators between parties.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^in\s+the\b`),
	regexp.MustCompile(`(?i)\b(employment\s+tribunal|county\s+court|high\s+court|crown\s+court|court\s+of\s+appeal)\b`),
	regexp.MustCompile(`(?i)^case\s+(no\.?|number|reference)\b`),
	regexp.MustCompile(`(?i)^claim\s+(no\.?|number)\b`),
	regexp.MustCompile(`(?i)\b(claimant|respondent|applicant|defendant)s?\b`),
	regexp.MustCompile(`(?i)^between:?$`),
	regexp.MustCompile(`(?i)^-?\s*(and|v)\s*-?$`),
}

var (
	titlePhrase = "witness statement"

	introPhrases = []string{
		"will say as follows",
		"make this statement",
	}

	truthPhrases = []string{
		"statement of truth",
		"believe that the facts",
	}
)

// earlyHeaderWindow is the plain-text offset below which an
// unrecognised paragraph is still treated as front matter. Court
// headers routinely contain free-form lines (addresses, hearing
// dates) that no keyword list catches.
const earlyHeaderWindow = 800

// preBodyLongPara force-exits the intro state: a paragraph this long
// before the body marker is narrative, not a continuing intro line.
const preBodyLongPara = 200

// IsTitle reports whether text is the statement title line.
func IsTitle(text string) bool {
	return strings.Contains(strings.ToLower(text), titlePhrase)
}

// IsHeaderLine reports whether text matches a front-matter pattern.
func IsHeaderLine(text string) bool {
	for _, re := range headerPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IsIntroLine reports whether text contains an intro phrase.
func IsIntroLine(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range introPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsTruthLine reports whether text contains a statement-of-truth phrase.
func IsTruthLine(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range truthPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// headingLeadRe matches a short alphanumeric or roman marker followed
// by a dot at the very start of a heading, e.g. "A. ", "IV. ", "3. ".
var headingLeadRe = regexp.MustCompile(`^[A-Za-z0-9IVX]+\.\s`)

// IsHeadingText reports whether text looks like a section heading:
// short, marker-led, and mostly uppercase. The uppercase-density
// requirement keeps numbered body paragraphs ("1. I am...") from
// being tagged as headings.
func IsHeadingText(text string) bool {
	if len(text) >= 100 || !headingLeadRe.MatchString(text) {
		return false
	}
	upper, letters := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 0 && float64(upper)/float64(letters) > 0.4
}

// IsAllCapsHeading reports whether text is a short line whose letters
// are all uppercase, e.g. "BACKGROUND" or "A. THE PARTIES".
func IsAllCapsHeading(text string) bool {
	if text == "" || len(text) >= 100 {
		return false
	}
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 4
}

// ---------------------------------------------------------------------------
// State machine
// ---------------------------------------------------------------------------

type state int

const (
	stateHeader state = iota
	statePreBody
	stateBody
	stateBackMatter
)

// Classify assigns a semantic type to every paragraph in a single
// left-to-right pass. Empty paragraphs get TypeUnknown and do not
// advance the state machine.
//
// An override entry wins outright over the heuristic result for its
// paragraph, but the state machine still advances on the heuristic
// reading: the override changes the emitted label, not the scan.
// Overrides tagged for a different pass are ignored with a warning.
func Classify(paras []Paragraph, ov *Override) []ParagraphType {
	if ov != nil && ov.Pass != PassPlainText {
		slog.Warn("classify: ignoring override from wrong pass", "pass", ov.Pass.String())
		ov = nil
	}

	types := make([]ParagraphType, len(paras))
	st := stateHeader

	for i, p := range paras {
		if p.IsEmpty() {
			types[i] = TypeUnknown
			continue
		}

		var t ParagraphType
		switch st {
		case stateHeader:
			switch {
			case IsTitle(p.Text):
				t = TypeTitle
				st = statePreBody
			case IsHeaderLine(p.Text) || p.Start < earlyHeaderWindow:
				// Early paragraphs are header by default unless they
				// clearly start the narrative.
				t = TypeHeader
			default:
				t = TypeIntro
				st = statePreBody
			}

		case statePreBody:
			switch {
			case IsIntroLine(p.Text):
				t = TypeIntro
				st = stateBody
			case IsTitle(p.Text):
				t = TypeTitle
			case len(p.Text) > preBodyLongPara:
				t = TypeBody
				st = stateBody
			default:
				t = TypeIntro
			}

		case stateBody:
			switch {
			case IsTruthLine(p.Text):
				t = TypeStatementOfTruth
				st = stateBackMatter
			case IsHeadingText(p.Text):
				t = TypeHeading
			default:
				t = TypeBody
			}

		case stateBackMatter:
			if IsTruthLine(p.Text) {
				t = TypeStatementOfTruth
			} else {
				t = TypeSignature
			}
		}

		if o, ok := ov.TypeFor(p.Index); ok {
			t = o
		}
		types[i] = t
	}
	return types
}
