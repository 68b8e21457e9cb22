// Command wordformat reformats UK witness statements in DOCX form:
// manual paragraph numbering out, native Word list numbering in.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KBGitHubacc/wordformat"
	"github.com/KBGitHubacc/wordformat/docx"
)

var (
	flagConfig  string
	flagVerbose bool

	flagOutput   string
	flagReport   string
	flagNoAI     bool
	flagNoHeader bool

	flagTribunal   string
	flagCaseNumber string
	flagClaimant   string
	flagRespondent string
	flagWitness    string

	flagLimit int
)

func main() {
	root := &cobra.Command{
		Use:           "wordformat",
		Short:         "Reformat witness statement numbering in DOCX files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (JSON)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	reformat := &cobra.Command{
		Use:   "reformat <statement.docx>",
		Short: "Analyze and rewrite a statement with native numbering",
		Args:  cobra.ExactArgs(1),
		RunE:  runReformat,
	}
	reformat.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (default: <input>_formatted.docx)")
	reformat.Flags().StringVar(&flagReport, "report", "", "also write an XLSX review report")
	reformat.Flags().BoolVar(&flagNoAI, "no-ai", false, "heuristics only, skip the external classifier")
	reformat.Flags().BoolVar(&flagNoHeader, "no-header", false, "skip court header insertion")
	reformat.Flags().StringVar(&flagTribunal, "tribunal", "", "court or tribunal line for the header")
	reformat.Flags().StringVar(&flagCaseNumber, "case-number", "", "case number for the header")
	reformat.Flags().StringVar(&flagClaimant, "claimant", "", "claimant name for the header")
	reformat.Flags().StringVar(&flagRespondent, "respondent", "", "respondent name for the header")
	reformat.Flags().StringVar(&flagWitness, "witness", "", "witness name for the header title")

	analyze := &cobra.Command{
		Use:   "analyze <statement.docx>",
		Short: "Dry run: report classifications and numbering targets without writing",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyze.Flags().BoolVar(&flagNoAI, "no-ai", false, "heuristics only, skip the external classifier")

	runs := &cobra.Command{
		Use:   "runs",
		Short: "List recent reformatting runs",
		Args:  cobra.NoArgs,
		RunE:  runRuns,
	}
	runs.Flags().IntVarP(&flagLimit, "limit", "n", 20, "maximum runs to list")

	root.AddCommand(reformat, analyze, runs)

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (wordformat.Config, error) {
	cfg := wordformat.DefaultConfig()
	if flagConfig != "" {
		f, err := os.Open(flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("opening config: %w", err)
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Override from environment variables.
	if v := os.Getenv("WORDFORMAT_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WORDFORMAT_CLASSIFIER_PROVIDER"); v != "" {
		cfg.Classifier.Provider = v
	}
	if v := os.Getenv("WORDFORMAT_CLASSIFIER_MODEL"); v != "" {
		cfg.Classifier.Model = v
	}
	if v := os.Getenv("WORDFORMAT_CLASSIFIER_BASE_URL"); v != "" {
		cfg.Classifier.BaseURL = v
	}
	if v := os.Getenv("WORDFORMAT_CLASSIFIER_API_KEY"); v != "" {
		cfg.Classifier.APIKey = v
	}

	// Fallback: check well-known provider env vars for API keys.
	if cfg.Classifier.APIKey == "" {
		switch cfg.Classifier.Provider {
		case "openai":
			cfg.Classifier.APIKey = os.Getenv("OPENAI_API_KEY")
		case "groq":
			cfg.Classifier.APIKey = os.Getenv("GROQ_API_KEY")
		case "gemini":
			cfg.Classifier.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	return cfg, nil
}

func headerFromFlags() *docx.HeaderInfo {
	if flagTribunal == "" && flagCaseNumber == "" && flagClaimant == "" &&
		flagRespondent == "" && flagWitness == "" {
		return nil
	}
	return &docx.HeaderInfo{
		Tribunal:   flagTribunal,
		CaseNumber: flagCaseNumber,
		Claimant:   flagClaimant,
		Respondent: flagRespondent,
		Witness:    flagWitness,
	}
}

func runReformat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := wordformat.New(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []wordformat.RunOption
	if flagOutput != "" {
		opts = append(opts, wordformat.WithOutputPath(flagOutput))
	}
	if flagReport != "" {
		opts = append(opts, wordformat.WithReport(flagReport))
	}
	if flagNoAI {
		opts = append(opts, wordformat.WithoutClassifier())
	}
	if flagNoHeader {
		opts = append(opts, wordformat.WithoutHeader())
	}
	if h := headerFromFlags(); h != nil {
		opts = append(opts, wordformat.WithHeader(*h))
	}

	res, err := engine.Reformat(cmd.Context(), args[0], opts...)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", res.OutputPath)
	fmt.Printf("  paragraphs numbered: %d of %d targets (hints: %s)\n",
		res.Stats.Matched, res.Targets, res.HintsFrom)
	if res.Stats.Dropped > 0 {
		fmt.Printf("  dropped targets:     %d\n", res.Stats.Dropped)
	}
	if res.Stats.Skipped > 0 {
		fmt.Printf("  table paragraphs:    %d (left untouched)\n", res.Stats.Skipped)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoAI {
		cfg.Classifier.Provider = ""
	}

	engine, err := wordformat.New(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	res, err := engine.Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d paragraphs, %d numbering targets (hints: %s)\n",
		res.InputPath, len(res.Rows), res.Targets, res.HintsFrom)
	for _, row := range res.Rows {
		mark := " "
		if row.Target {
			mark = "*"
		}
		text := row.Text
		if len(text) > 70 {
			text = text[:70] + "…"
		}
		fmt.Printf("%s %3d  %-18s L%d  %s\n", mark, row.Index, row.Type, row.Level, text)
	}
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := wordformat.New(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	runs, err := engine.Store().RecentRuns(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  matched %d/%d  num_id %d  %s\n",
			r.CreatedAt, r.ID[:8], r.Matched, r.Targets, r.NumID, r.InputPath)
	}
	return nil
}
