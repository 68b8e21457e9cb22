package numbering

import (
	"testing"

	"github.com/KBGitHubacc/wordformat/classify"
)

const statementText = "IN THE EMPLOYMENT TRIBUNAL LONDON\n" +
	"Case Reference: 123/2025\n" +
	"\n" +
	"WITNESS STATEMENT OF JOHN SMITH\n" +
	"\n" +
	"I, John Smith, will say as follows:\n" +
	"\n" +
	"1. I am the Claimant.\n" +
	"\n" +
	"A. BACKGROUND\n" +
	"\n" +
	"2. I started work in 2020.\n"

func analyzed(t *testing.T, text string, ov *classify.Override) ([]classify.Paragraph, []classify.ParagraphType, []int) {
	t.Helper()
	paras := classify.ExtractParagraphs(text)
	types := classify.Classify(paras, ov)
	levels := classify.DetectLevels(paras, types, ov)
	return paras, types, levels
}

func TestBuildTargetsWitnessStatement(t *testing.T) {
	paras, types, levels := analyzed(t, statementText, nil)
	targets := BuildTargets(paras, types, levels, nil)

	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2: %+v", len(targets), targets)
	}
	if targets[0].Fingerprint != "i am the claimant." {
		t.Errorf("target 0 fingerprint = %q", targets[0].Fingerprint)
	}
	if targets[1].Fingerprint != "i started work in 2020." {
		t.Errorf("target 1 fingerprint = %q", targets[1].Fingerprint)
	}
	for i, target := range targets {
		if target.Level != 0 {
			t.Errorf("target %d level = %d, want 0", i, target.Level)
		}
	}
}

func TestBuildTargetsBoundaryGatesHeader(t *testing.T) {
	paras, types, levels := analyzed(t, statementText, nil)

	// Force the case-reference line to body: the boundary must still
	// gate it out, since it sits before the narrative begins.
	var caseIdx = -1
	for _, p := range paras {
		if p.Text == "Case Reference: 123/2025" {
			caseIdx = p.Index
		}
	}
	types[caseIdx] = classify.TypeBody

	targets := BuildTargets(paras, types, levels, nil)
	for _, target := range targets {
		if target.ParagraphIndex == caseIdx {
			t.Error("front-matter paragraph before the body boundary became a target")
		}
	}
}

func TestBuildTargetsOverrideBoundary(t *testing.T) {
	paras, types, levels := analyzed(t, statementText, nil)

	// An override typing the heading paragraph body moves the
	// boundary there.
	var headingIdx = -1
	for i, p := range paras {
		if p.Text == "A. BACKGROUND" {
			headingIdx = i
		}
	}
	ov := &classify.Override{
		Pass:  classify.PassPlainText,
		Types: map[int]classify.ParagraphType{paras[headingIdx].Index: classify.TypeHeading},
	}
	targets := BuildTargets(paras, types, levels, ov)
	for _, target := range targets {
		if target.Fingerprint == "i am the claimant." {
			t.Error("paragraph before the override boundary became a target")
		}
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1: %+v", len(targets), targets)
	}
}

func TestBuildTargetsExclusions(t *testing.T) {
	text := "WITNESS STATEMENT OF JANE DOE\n" +
		"I, Jane Doe, will say as follows:\n" +
		"1. The first numbered paragraph of the statement.\n" +
		"Name\n" + // table-cell fragment: short, no period
		"2. The second numbered paragraph of the statement.\n" +
		"I believe that the facts stated in this statement are true.\n"
	paras, types, levels := analyzed(t, text, nil)
	targets := BuildTargets(paras, types, levels, nil)

	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2: %+v", len(targets), targets)
	}
	for _, target := range targets {
		if target.Fingerprint == "name" {
			t.Error("short table-cell fragment became a target")
		}
	}
}

func TestBuildTargetsDeduplicates(t *testing.T) {
	text := "I, A Person, will say as follows:\n" +
		"1. A repeated paragraph with identical content here.\n" +
		"2. A repeated paragraph with identical content here.\n"
	paras, types, levels := analyzed(t, text, nil)
	targets := BuildTargets(paras, types, levels, nil)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1 after dedup: %+v", len(targets), targets)
	}
}

func TestBuildTargetsSubLevels(t *testing.T) {
	text := "I, A Person, will say as follows:\n" +
		"1. He raised the following concerns with me:\n" +
		"(a) the first concern he raised that day;\n" +
		"(ii) a deeper roman sub-point underneath it;\n" +
		"2. A further main paragraph follows here.\n"
	paras, types, levels := analyzed(t, text, nil)
	targets := BuildTargets(paras, types, levels, nil)

	if len(targets) != 4 {
		t.Fatalf("got %d targets, want 4: %+v", len(targets), targets)
	}
	wantLevels := []int{0, 1, 2, 0}
	for i, target := range targets {
		if target.Level != wantLevels[i] {
			t.Errorf("target %d level = %d, want %d", i, target.Level, wantLevels[i])
		}
	}
}
