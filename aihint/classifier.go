// Package aihint asks an LLM to label the paragraphs of a witness
// statement when the regex heuristics are not trusted, and converts
// the labels into classifier overrides. The LLM is advisory: any
// failure here leaves the caller on heuristics alone.
package aihint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/KBGitHubacc/wordformat/classify"
	"github.com/KBGitHubacc/wordformat/llm"
)

// DefaultBatchSize bounds how many paragraphs go into one prompt.
// Large statements are split so each request stays well inside the
// model's attention budget.
const DefaultBatchSize = 40

// maxParaChars truncates long paragraphs in the prompt; the opening
// words carry the structural signal.
const maxParaChars = 200

// Hint is one per-paragraph label returned by the model. Index is a
// plain-text-pass paragraph index.
type Hint struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Level int    `json:"level"`
}

// Override converts hints into classifier overrides for the
// plain-text pass. Unknown type labels are dropped; levels are kept
// only when non-zero, so the detector still decides the rest.
func Override(hints []Hint) *classify.Override {
	if len(hints) == 0 {
		return nil
	}
	ov := &classify.Override{
		Pass:   classify.PassPlainText,
		Types:  make(map[int]classify.ParagraphType),
		Levels: make(map[int]int),
	}
	for _, h := range hints {
		if t, ok := classify.ParseParagraphType(h.Type); ok {
			ov.Types[h.Index] = t
		}
		if h.Level > 0 {
			ov.Levels[h.Index] = h.Level
		}
	}
	if len(ov.Types) == 0 && len(ov.Levels) == 0 {
		return nil
	}
	return ov
}

// Classifier labels paragraphs in batches through an LLM provider.
type Classifier struct {
	provider  llm.Provider
	batchSize int
}

// New creates a Classifier. batchSize <= 0 selects DefaultBatchSize.
func New(provider llm.Provider, batchSize int) *Classifier {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Classifier{provider: provider, batchSize: batchSize}
}

const systemPrompt = `You label the paragraphs of a UK legal witness statement.
For each input paragraph, decide its role:
  header           - court name, case number, party names, "BETWEEN", "-and-"
  title            - the "WITNESS STATEMENT OF ..." line
  intro            - the "I, ..., will say as follows" line
  heading          - a short section heading
  body             - a narrative paragraph of the statement
  quote            - quoted correspondence or testimony
  statement_of_truth - the statement of truth
  signature        - signature and date lines
For body paragraphs also give a numbering depth: 0 for a main
paragraph, 1 for a lettered sub-point, 2 for a roman sub-sub-point.
Each line ends with the paragraph's rendered style in braces: bold,
centered and all-caps flags plus a word count. Short bold or centered
lines are usually headings or header lines, not body.
Respond with JSON only: {"paragraphs":[{"index":0,"type":"body","level":0}]}.
Include every index you were given exactly once.`

// Hints labels every non-empty paragraph. It returns the model's
// per-paragraph labels in index order across all batches. An error
// from any batch abandons the whole run; partial labels are worse
// than none because absent indices silently fall back to heuristics.
func (c *Classifier) Hints(ctx context.Context, paras []classify.Paragraph) ([]Hint, error) {
	var pending []classify.Paragraph
	for _, p := range paras {
		if !p.IsEmpty() {
			pending = append(pending, p)
		}
	}

	var hints []Hint
	for start := 0; start < len(pending); start += c.batchSize {
		end := start + c.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch, err := c.classifyBatch(ctx, pending[start:end])
		if err != nil {
			return nil, fmt.Errorf("classifying paragraphs %d..%d: %w", start, end-1, err)
		}
		hints = append(hints, batch...)
	}
	slog.Debug("aihint: classification complete", "paragraphs", len(pending), "hints", len(hints))
	return hints, nil
}

func (c *Classifier) classifyBatch(ctx context.Context, batch []classify.Paragraph) ([]Hint, error) {
	var b strings.Builder
	for _, p := range batch {
		text := p.Text
		if len(text) > maxParaChars {
			text = text[:maxParaChars]
		}
		fmt.Fprintf(&b, "[%d] %s %s\n", p.Index, text, styleNote(p))
	}

	resp, err := c.provider.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: b.String()},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Paragraphs []Hint `json:"paragraphs"`
	}
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &parsed); err != nil {
		return nil, fmt.Errorf("parsing classification response: %w", err)
	}

	valid := batch[0].Index
	last := batch[len(batch)-1].Index
	var hints []Hint
	for _, h := range parsed.Paragraphs {
		if h.Index < valid || h.Index > last {
			slog.Warn("aihint: hint for out-of-batch paragraph dropped", "index", h.Index)
			continue
		}
		hints = append(hints, h)
	}
	return hints, nil
}

// styleNote renders a paragraph's style signals for the prompt, e.g.
// "{bold, centered, all-caps, 2 words}". The word count is always
// present so each line's annotation is unambiguous to the model.
func styleNote(p classify.Paragraph) string {
	var flags []string
	if p.Bold {
		flags = append(flags, "bold")
	}
	if p.Centered {
		flags = append(flags, "centered")
	}
	if isAllCaps(p.Text) {
		flags = append(flags, "all-caps")
	}
	words := len(strings.Fields(p.Text))
	if words == 1 {
		flags = append(flags, "1 word")
	} else {
		flags = append(flags, fmt.Sprintf("%d words", words))
	}
	return "{" + strings.Join(flags, ", ") + "}"
}

// isAllCaps reports whether s contains letters and none of them are
// lower case.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// stripFences removes a markdown code fence around a JSON payload.
// Some models wrap JSON-mode output anyway.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
