package classify

// StripMainNumber removes a stray leading main-number marker such as
// "145. " or "3) " from text. No-op when none is present.
func StripMainNumber(text string) string {
	if loc := mainMarkerRe.FindStringIndex(text); loc != nil {
		return text[loc[1]:]
	}
	return text
}

// StripMarker removes the leading manual marker matching the given
// level from text, together with any stray main-number artifact in
// front of it ("145. (a) Text" -> "Text"). Only levels 1 and 2 strip
// by default; level-0 text is returned unchanged (its literal number
// is handled separately by the patch path, see StripMainNumber).
//
// When no pattern for the level matches, text is returned unchanged,
// which makes stripping a safe no-op to repeat.
func StripMarker(text string, level int) string {
	switch level {
	case 1:
		if loc := letterParenRe.FindStringIndex(text); loc != nil {
			return text[loc[1]:]
		}
		if m := letterDotRe.FindStringSubmatchIndex(text); m != nil {
			end := m[1]
			if m[4] >= 0 {
				// the follower char starts the content
				end = m[4]
			}
			return text[end:]
		}
	case 2:
		if m := romanParenRe.FindStringSubmatchIndex(text); m != nil && isRomanWord(text[m[2]:m[3]]) {
			return text[m[1]:]
		}
		if m := romanBareRe.FindStringSubmatchIndex(text); m != nil && isRomanWord(text[m[2]:m[3]]) {
			return text[m[1]:]
		}
	}
	return text
}
