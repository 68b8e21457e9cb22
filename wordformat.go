// Package wordformat reformats UK witness statements in DOCX form:
// it classifies paragraphs, detects manual numbering depth, strips
// literal markers, and installs native Word list numbering in their
// place. Classification can be assisted by an external LLM whose
// labels are cached between runs.
package wordformat

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KBGitHubacc/wordformat/aihint"
	"github.com/KBGitHubacc/wordformat/classify"
	"github.com/KBGitHubacc/wordformat/docx"
	"github.com/KBGitHubacc/wordformat/llm"
	"github.com/KBGitHubacc/wordformat/numbering"
	"github.com/KBGitHubacc/wordformat/report"
	"github.com/KBGitHubacc/wordformat/store"
)

// Engine is the main entry point for witness-statement reformatting.
type Engine interface {
	// Reformat analyzes a DOCX witness statement and writes the
	// renumbered document.
	Reformat(ctx context.Context, path string, opts ...RunOption) (*Result, error)

	// Analyze runs the analysis pass only: nothing is written, the
	// Result describes what Reformat would do.
	Analyze(ctx context.Context, path string) (*Result, error)

	// Store returns the underlying store for diagnostic access.
	Store() *store.Store

	// Close cleanly shuts down the engine.
	Close() error
}

// Result reports one analysis or reformatting run.
type Result struct {
	InputPath   string          `json:"input_path"`
	OutputPath  string          `json:"output_path,omitempty"`
	ContentHash string          `json:"content_hash"`
	Rows        []report.Row    `json:"-"`
	Targets     int             `json:"targets"`
	Stats       numbering.Stats `json:"stats"`
	RunID       string          `json:"run_id,omitempty"`
	HintsFrom   string          `json:"hints_from"` // "cache", "classifier", or "none"
}

// RunOption configures a single Reformat call.
type RunOption func(*runOptions)

type runOptions struct {
	outputPath string
	reportPath string
	header     *docx.HeaderInfo
	skipHints  bool
	skipHeader bool
}

// WithOutputPath overrides the derived output path.
func WithOutputPath(path string) RunOption {
	return func(o *runOptions) { o.outputPath = path }
}

// WithReport also writes an XLSX review report to path.
func WithReport(path string) RunOption {
	return func(o *runOptions) { o.reportPath = path }
}

// WithHeader overrides the configured court header for this run.
func WithHeader(info docx.HeaderInfo) RunOption {
	return func(o *runOptions) { o.header = &info }
}

// WithoutHeader suppresses header insertion even when configured.
func WithoutHeader() RunOption {
	return func(o *runOptions) { o.skipHeader = true }
}

// WithoutClassifier forces heuristics-only classification for this
// run, ignoring both the external classifier and its cache.
func WithoutClassifier() RunOption {
	return func(o *runOptions) { o.skipHints = true }
}

// engine is the concrete implementation of Engine.
type engine struct {
	cfg        Config
	store      *store.Store
	classifier *aihint.Classifier
	model      string
}

// New creates an engine with the given configuration.
func New(cfg Config) (Engine, error) {
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = "_formatted"
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("%w: negative classifier batch size", ErrInvalidConfig)
	}

	s, err := store.Open(cfg.resolveDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	e := &engine{cfg: cfg, store: s}
	if cfg.Classifier.Provider != "" {
		provider, err := llm.NewProvider(llm.Config{
			Provider: cfg.Classifier.Provider,
			Model:    cfg.Classifier.Model,
			BaseURL:  cfg.Classifier.BaseURL,
			APIKey:   cfg.Classifier.APIKey,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("creating classifier provider: %w", err)
		}
		e.classifier = aihint.New(provider, cfg.BatchSize)
		e.model = cfg.Classifier.Model
	}
	return e, nil
}

func (e *engine) Store() *store.Store { return e.store }

func (e *engine) Close() error { return e.store.Close() }

// analysis carries the intermediate products between the analysis
// pass and the patch pass.
type analysis struct {
	doc     *docx.Document
	targets []numbering.Target
	result  *Result
}

func (e *engine) analyze(ctx context.Context, path string, skipHints bool) (*analysis, error) {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	d, err := docx.Open(path)
	if err != nil {
		return nil, err
	}
	if !d.HasBody() {
		return nil, ErrNoBody
	}

	text := d.PlainText()
	paras := classify.ExtractParagraphs(text)

	// The plain text came from the same enumeration, so the style
	// attributes line up index-for-index.
	refs := d.Paragraphs()
	for i := range paras {
		if i >= len(refs) {
			break
		}
		paras[i].IndentPt = refs[i].IndentPt
		paras[i].Bold = refs[i].Bold
		paras[i].Centered = refs[i].Centered
	}

	hash := store.ContentHash(text)
	ov, hintsFrom := e.hints(ctx, hash, paras, skipHints)

	types := classify.Classify(paras, ov)
	levels := classify.DetectLevels(paras, types, ov)
	targets := numbering.BuildTargets(paras, types, levels, ov)

	return &analysis{
		doc:     d,
		targets: targets,
		result: &Result{
			InputPath:   path,
			ContentHash: hash,
			Rows:        report.BuildRows(paras, types, levels, targets),
			Targets:     len(targets),
			HintsFrom:   hintsFrom,
		},
	}, nil
}

// hints resolves classifier overrides: cache first, then the live
// classifier. Classifier failure is logged and demoted to heuristics;
// a bad hint costs less than a failed run.
func (e *engine) hints(ctx context.Context, hash string, paras []classify.Paragraph, skip bool) (*classify.Override, string) {
	if skip || e.classifier == nil {
		return nil, "none"
	}

	cached, err := e.store.GetHints(ctx, hash)
	if err != nil {
		slog.Warn("reading hint cache", "error", err)
	}
	if len(cached) > 0 {
		return aihint.Override(cached), "cache"
	}

	hints, err := e.classifier.Hints(ctx, paras)
	if err != nil {
		slog.Warn("external classifier failed, using heuristics", "error", err)
		return nil, "none"
	}
	if err := e.store.PutHints(ctx, hash, e.model, hints); err != nil {
		slog.Warn("writing hint cache", "error", err)
	}
	return aihint.Override(hints), "classifier"
}

func (e *engine) Analyze(ctx context.Context, path string) (*Result, error) {
	a, err := e.analyze(ctx, path, false)
	if err != nil {
		return nil, err
	}
	return a.result, nil
}

func (e *engine) Reformat(ctx context.Context, path string, opts ...RunOption) (*Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	a, err := e.analyze(ctx, path, o.skipHints)
	if err != nil {
		return nil, err
	}

	header := o.header
	if header == nil {
		header = e.cfg.Header
	}
	if header != nil && !o.skipHeader {
		if err := a.doc.InsertHeader(*header); err != nil {
			return nil, fmt.Errorf("inserting header: %w", err)
		}
	}

	stats, err := numbering.Reconcile(a.doc, a.targets)
	if err != nil {
		return nil, err
	}
	a.result.Stats = stats

	out := o.outputPath
	if out == "" {
		out = derivedOutputPath(path, e.cfg.OutputSuffix)
	}
	if err := a.doc.Save(out); err != nil {
		return nil, err
	}
	a.result.OutputPath = out

	runID, err := e.store.RecordRun(ctx, store.Run{
		InputPath:   path,
		OutputPath:  out,
		ContentHash: a.result.ContentHash,
		Targets:     a.result.Targets,
		Matched:     stats.Matched,
		Dropped:     stats.Dropped,
		Skipped:     stats.Skipped,
		NumID:       stats.NumID,
	})
	if err != nil {
		slog.Warn("recording run", "error", err)
	} else {
		a.result.RunID = runID
	}

	if o.reportPath != "" {
		if err := report.Write(o.reportPath, report.Analysis{
			InputPath:  path,
			OutputPath: out,
			Rows:       a.result.Rows,
			Stats:      stats,
			Targets:    a.result.Targets,
		}); err != nil {
			return nil, fmt.Errorf("writing report: %w", err)
		}
	}

	slog.Info("statement reformatted",
		"input", path,
		"output", out,
		"targets", a.result.Targets,
		"matched", stats.Matched,
		"dropped", stats.Dropped,
		"num_id", stats.NumID,
	)
	return a.result, nil
}

// derivedOutputPath puts the output next to the input with the
// configured suffix before the extension.
func derivedOutputPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
