// Package numbering builds the ordered list of paragraphs that
// should carry native list numbering and reconciles that list against
// the serialized document, whose paragraph enumeration may differ
// from the analysis pass.
package numbering

import (
	"strings"

	"github.com/KBGitHubacc/wordformat/classify"
)

const (
	// fingerprintLen bounds the normalized prefix kept per target.
	fingerprintLen = 80

	// minMatchLen is the shortest normalized string allowed to decide
	// a containment match; anything shorter matches only on equality.
	minMatchLen = 15
)

// Normalize lowercases text, strips any leading manual numbering
// marker, and collapses runs of whitespace. Two extraction passes
// over the same logical paragraph normalize to the same string even
// when one of them still carries a stale marker.
func Normalize(text string) string {
	t := strings.TrimSpace(text)
	if lvl, ok := classify.ExplicitLevel(t); ok && lvl > 0 {
		t = classify.StripMarker(t, lvl)
	} else {
		t = classify.StripMainNumber(t)
	}
	t = strings.ToLower(t)
	return strings.Join(strings.Fields(t), " ")
}

// Fingerprint returns the normalized prefix used to re-locate a
// paragraph across passes.
func Fingerprint(text string) string {
	n := Normalize(text)
	if len(n) > fingerprintLen {
		n = n[:fingerprintLen]
	}
	return n
}

// Matches reports whether a serialized paragraph's normalized text
// corresponds to a target fingerprint. The relation is symmetric
// prefix containment, with the shorter side required to be long
// enough that the match cannot be spurious; short strings match only
// when equal.
func Matches(fingerprint, normalized string) bool {
	if fingerprint == "" || normalized == "" {
		return false
	}
	if fingerprint == normalized {
		return true
	}
	shorter := len(fingerprint)
	if len(normalized) < shorter {
		shorter = len(normalized)
	}
	if shorter < minMatchLen {
		return false
	}
	return strings.HasPrefix(normalized, fingerprint) || strings.HasPrefix(fingerprint, normalized)
}
