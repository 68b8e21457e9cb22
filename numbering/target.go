package numbering

import (
	"strings"

	"github.com/KBGitHubacc/wordformat/classify"
)

// Target names one analysis-pass paragraph that should receive native
// numbering. ParagraphIndex belongs to the plain-text pass; the
// reconciler re-locates the paragraph by fingerprint, never by index.
type Target struct {
	ParagraphIndex int
	Level          int
	Fingerprint    string
}

// excludedTypes never receive numbering.
var excludedTypes = map[classify.ParagraphType]bool{
	classify.TypeHeader:           true,
	classify.TypeTitle:            true,
	classify.TypeIntro:            true,
	classify.TypeHeading:          true,
	classify.TypeQuote:            true,
	classify.TypeStatementOfTruth: true,
	classify.TypeSignature:        true,
}

// excludedPhrases gate out intro and truth lines even when a
// classifier override mislabels them as body.
var excludedPhrases = []string{
	"will say as follows",
	"statement of truth",
}

// BuildTargets produces the ordered, deduplicated target list for
// the reconciler. The body-start boundary gates out everything before
// the narrative begins regardless of per-paragraph checks.
func BuildTargets(paras []classify.Paragraph, types []classify.ParagraphType, levels []int, ov *classify.Override) []Target {
	start := bodyStart(paras, types, ov)

	seen := make(map[string]bool)
	var targets []Target
	for i, p := range paras {
		if i < start || excluded(p, types[i]) {
			continue
		}
		fp := Fingerprint(p.Text)
		if fp == "" || seen[fp] {
			continue
		}
		seen[fp] = true
		targets = append(targets, Target{
			ParagraphIndex: p.Index,
			Level:          levels[i],
			Fingerprint:    fp,
		})
	}
	return targets
}

// excluded reports whether a single paragraph can never be a target.
func excluded(p classify.Paragraph, t classify.ParagraphType) bool {
	if p.IsEmpty() || excludedTypes[t] {
		return true
	}
	if classify.IsHeadingText(p.Text) {
		return true
	}
	lower := strings.ToLower(p.Text)
	for _, phrase := range excludedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	// Short fragments without a period are usually table cells or
	// labels picked up incidentally.
	if len(strings.Fields(p.Text)) <= 3 && !strings.Contains(p.Text, ".") {
		return true
	}
	return false
}

// bodyStart computes the index (position in paras) of the first
// paragraph eligible for numbering. In order of preference: the first
// paragraph an override explicitly types body/heading, the first
// paragraph after an intro line that is not itself front matter, and
// the first all-caps heading.
func bodyStart(paras []classify.Paragraph, types []classify.ParagraphType, ov *classify.Override) int {
	if ov != nil && ov.Pass == classify.PassPlainText {
		for i, p := range paras {
			if t, ok := ov.TypeFor(p.Index); ok && (t == classify.TypeBody || t == classify.TypeHeading) {
				return i
			}
		}
	}
	for i, p := range paras {
		if !classify.IsIntroLine(p.Text) {
			continue
		}
		// The successor check goes by classified type, not by line
		// heuristics: a first body paragraph like "1. I am the
		// Claimant." also matches the party header pattern.
		for j := i + 1; j < len(paras) && j < len(types); j++ {
			if types[j] == classify.TypeBody || types[j] == classify.TypeHeading {
				return j
			}
		}
		break
	}
	for i, p := range paras {
		if classify.IsAllCapsHeading(p.Text) && types[i] != classify.TypeHeader && types[i] != classify.TypeTitle {
			return i
		}
	}
	return 0
}
