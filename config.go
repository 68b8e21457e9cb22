package wordformat

import (
	"os"
	"path/filepath"

	"github.com/KBGitHubacc/wordformat/docx"
)

// Config holds all configuration for the reformatting engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.wordformat/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "wordformat".
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath
	// is not explicitly set. Options: "home" (default) uses ~/.wordformat/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// Classifier is the optional external paragraph classifier. An
	// empty Provider runs on heuristics alone.
	Classifier LLMConfig `json:"classifier" yaml:"classifier"`

	// BatchSize bounds how many paragraphs go into one classifier
	// request. Zero selects the package default.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// Header, when set, is prepended to every reformatted document.
	Header *docx.HeaderInfo `json:"header,omitempty" yaml:"header,omitempty"`

	// OutputSuffix names the output file next to the input:
	// statement.docx -> statement<suffix>.docx. Defaults to "_formatted".
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`
}

// LLMConfig configures a single LLM provider endpoint.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // ollama, lmstudio, openrouter, openai, groq, xai, gemini, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// DefaultConfig returns a Config with sensible defaults: no external
// classifier, database in ~/.wordformat/wordformat.db.
func DefaultConfig() Config {
	return Config{
		DBName:       "wordformat",
		StorageDir:   "home",
		OutputSuffix: "_formatted",
	}
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "wordformat"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		dir := filepath.Join(home, ".wordformat")
		return filepath.Join(dir, name+".db")
	}
}
