package numbering

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"1. I am the Claimant.", "i am the claimant."},
		{"(a)  The   first point;", "the first point;"},
		{"145. (ii) Deep  point", "deep point"},
		{"  Plain text  ", "plain text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.text); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFingerprintTruncates(t *testing.T) {
	long := "1. " + "abcdefghij abcdefghij abcdefghij abcdefghij abcdefghij abcdefghij abcdefghij abcdefghij"
	fp := Fingerprint(long)
	if len(fp) != fingerprintLen {
		t.Errorf("fingerprint length = %d, want %d", len(fp), fingerprintLen)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name        string
		fingerprint string
		normalized  string
		want        bool
	}{
		{
			"prefix relation",
			"i am the claimant and i confirm",
			"i am the claimant and i confirm that the contents are true",
			true,
		},
		{
			"unrelated paragraph",
			"i am the claimant and i confirm",
			"i am also aware that the respondent disagrees",
			false,
		},
		{
			"reverse containment",
			"i am the claimant and i confirm that the contents are true",
			"i am the claimant and i confirm",
			true,
		},
		{
			"short strings only match exactly",
			"he resigned.",
			"he resigned. then he left the building",
			false,
		},
		{"short exact", "he resigned.", "he resigned.", true},
		{"empty never matches", "", "anything at all here", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.fingerprint, tt.normalized); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.fingerprint, tt.normalized, got, tt.want)
			}
		})
	}
}
