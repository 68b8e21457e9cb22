package classify

import (
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Marker patterns
// ---------------------------------------------------------------------------

// Each marker pattern tolerates a stray leading main number such as
// "145. (a) ..." — an artifact of previous incorrect numbering that
// earlier tooling left in the text.
var (
	// mainMarkerRe matches a level-0 marker: "1. " or "12) ".
	mainMarkerRe = regexp.MustCompile(`^\d{1,3}[.)]\s+`)

	// romanParenRe matches "(ii)", "(iii)", "(iv)" — multi-character
	// roman numerals only. A single "i" is excluded here because it is
	// ambiguous with the pronoun; see ExplicitLevel.
	romanParenRe = regexp.MustCompile(`^(?:\d{1,3}[.)]\s+)?\(([ivx]{2,})\)\s*`)

	// romanBareRe matches "ii) " or "ii. " without parentheses.
	romanBareRe = regexp.MustCompile(`^(?:\d{1,3}[.)]\s+)?([ivx]{2,})[.)]\s+`)

	// letterParenRe matches "(a)" or "a)".
	letterParenRe = regexp.MustCompile(`^(?:\d{1,3}[.)]\s+)?\(?([a-z])\)\s*`)

	// letterDotRe matches "a. " — a space (or end of text, or a
	// capital/open-paren) must follow the dot so that ordinary
	// abbreviations and sentences are not mistaken for markers. The
	// follower is captured because it belongs to the content, not the
	// marker; strippers must cut before it.
	letterDotRe = regexp.MustCompile(`^(?:\d{1,3}[.)]\s+)?([a-z])\.(?:\s+|$|([A-Z(]))`)
)

// indentation thresholds for paragraph styles that carry a left or
// first-line indent instead of an explicit marker.
const (
	indentLevel1Pt = 36.0
	indentLevel2Pt = 70.0
)

// isRomanWord reports whether s consists only of roman-numeral runes.
// The regexes already restrict to i/v/x; this guards future edits.
func isRomanWord(s string) bool {
	for _, r := range s {
		switch r {
		case 'i', 'v', 'x':
		default:
			return false
		}
	}
	return s != ""
}

// ExplicitLevel returns the numbering level implied by a literal
// marker at the start of text, and whether one was found.
//
// Multi-character roman markers mean level 2. Single-letter markers —
// including a lone "(i)", which in this genre is more often a
// sub-point than a sub-sub-point — mean level 1. A bare main number
// means level 0.
func ExplicitLevel(text string) (int, bool) {
	if m := romanParenRe.FindStringSubmatch(text); m != nil && isRomanWord(m[1]) {
		return 2, true
	}
	if m := romanBareRe.FindStringSubmatch(text); m != nil && isRomanWord(m[1]) {
		return 2, true
	}
	if letterParenRe.MatchString(text) || letterDotRe.MatchString(text) {
		return 1, true
	}
	if mainMarkerRe.MatchString(text) {
		return 0, true
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// List continuation context
// ---------------------------------------------------------------------------

// continuesList reports whether text reads as an item of a lettered
// list: it ends with a semicolon, optionally followed by "and"/"or".
func continuesList(text string) bool {
	t := strings.TrimRight(text, " \t")
	if strings.HasSuffix(t, ";") {
		return true
	}
	lower := strings.ToLower(t)
	return strings.HasSuffix(lower, "; and") || strings.HasSuffix(lower, "; or")
}

// ---------------------------------------------------------------------------
// Level detection
// ---------------------------------------------------------------------------

// DetectLevels determines the numbering depth of each paragraph.
// Levels are only meaningful for paragraphs typed TypeBody; all
// others get 0.
//
// Priority per paragraph, first match wins:
//  1. external override level
//  2. multi-character roman marker -> 2
//  3. letter marker (incl. lone "(i)") -> 1
//  4. colon/semicolon list-continuation context -> 1
//  5. indentation magnitude -> 2 or 1
//  6. default 0
//
// The list context opens when a paragraph ends with a colon and
// closes when one ends with a bare period, so unmarked continuation
// lines of a lettered list still number correctly.
func DetectLevels(paras []Paragraph, types []ParagraphType, ov *Override) []int {
	if ov != nil && ov.Pass != PassPlainText {
		ov = nil
	}

	levels := make([]int, len(paras))
	inList := false

	for i, p := range paras {
		if p.IsEmpty() {
			continue
		}

		if i < len(types) && types[i] == TypeBody {
			lvl := 0
			if v, ok := ov.LevelFor(p.Index); ok {
				lvl = v
			} else if ml, ok := markerLevel(p.Text); ok {
				lvl = ml
			} else if inList && continuesList(p.Text) {
				lvl = 1
			} else if p.IndentPt >= indentLevel2Pt {
				lvl = 2
			} else if p.IndentPt >= indentLevel1Pt {
				lvl = 1
			}
			levels[i] = lvl
		}

		// Context is tracked over every non-empty paragraph, not just
		// body ones, so a heading cleanly terminates a list.
		switch {
		case strings.HasSuffix(p.Text, ":"):
			inList = true
		case strings.HasSuffix(p.Text, "."):
			inList = false
		}
	}
	return levels
}

// markerLevel is ExplicitLevel restricted to sub-levels: a bare main
// number is not evidence of depth during detection (every main
// paragraph has one), only during reconciliation upgrades.
func markerLevel(text string) (int, bool) {
	lvl, ok := ExplicitLevel(text)
	if !ok || lvl == 0 {
		return 0, false
	}
	return lvl, true
}
