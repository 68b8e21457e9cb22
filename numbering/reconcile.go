package numbering

import (
	"fmt"
	"log/slog"

	"github.com/KBGitHubacc/wordformat/classify"
	"github.com/KBGitHubacc/wordformat/docx"
)

// stripMainOnPatch strips the literal "N." text from level-0
// paragraphs during the patch, since the patch replaces the number
// with native numbering and leaving the text would render it twice.
const stripMainOnPatch = true

// Stats summarizes one reconciliation run.
type Stats struct {
	Matched int // targets bound to a serialized paragraph
	Dropped int // targets whose paragraph was not found
	Skipped int // serialized paragraphs inside tables
	NumID   int // allocated numbering id, 0 when nothing matched
}

// Reconcile re-locates each target inside the document's serialized
// paragraph sequence by content fingerprint, allocates a
// collision-free numbering id, and rewrites the matched paragraphs:
// stale native numbering and manual markers are removed and the new
// numbering reference injected. All edits are applied as one batch in
// reverse document order.
//
// A document without a body is a hard failure; individual unmatched
// targets are dropped silently and malformed paragraphs are skipped
// with a warning.
func Reconcile(d *docx.Document, targets []Target) (Stats, error) {
	var stats Stats
	if !d.HasBody() {
		return stats, docx.ErrNoBody
	}
	if len(targets) == 0 {
		return stats, nil
	}

	numID := docx.AllocateNumberingID(d.ExistingNumberingIDs())
	stats.NumID = numID

	paras := d.Paragraphs()
	tables := d.TableRegions()

	var edits []docx.Edit
	cursor := 0 // next unconsumed target; both sequences are in document order

	for _, p := range paras {
		if docx.InTable(p, tables) {
			stats.Skipped++
			continue
		}
		if p.Text == "" {
			continue
		}

		norm := Normalize(p.Text)
		match := -1
		for i := cursor; i < len(targets); i++ {
			if Matches(targets[i].Fingerprint, norm) {
				match = i
				break
			}
		}
		if match < 0 {
			continue
		}
		// Targets are single-use: everything up to and including the
		// match is consumed, so a later paragraph can never re-claim
		// it, and skipped-over targets count as dropped.
		cursor = match + 1

		level := targets[match].Level
		if explicit, ok := classify.ExplicitLevel(p.Text); ok && explicit > level {
			// The paragraph's own marker is stronger evidence than
			// indentation or context heuristics: upgrade, never
			// downgrade.
			slog.Debug("numbering: level upgraded from explicit marker",
				"paragraph", p.Index, "from", level, "to", explicit)
			level = explicit
		}

		edits = append(edits, docx.NumberingEdits(p, numID, level)...)
		if e, ok := d.StripMarkerEdit(p, level, stripMainOnPatch); ok {
			edits = append(edits, e)
		} else if level > 0 && !p.FirstText.Valid() {
			slog.Warn("numbering: paragraph has no text run to strip", "paragraph", p.Index)
		}
		stats.Matched++
	}

	stats.Dropped = len(targets) - stats.Matched
	if stats.Matched == 0 {
		stats.NumID = 0
	}

	if err := d.ApplyEdits(edits); err != nil {
		return stats, fmt.Errorf("applying numbering edits: %w", err)
	}
	if stats.Matched > 0 {
		d.AddListDefinition(numID)
	}
	return stats, nil
}
