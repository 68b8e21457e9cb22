package wordformat

import (
	"errors"

	"github.com/KBGitHubacc/wordformat/docx"
)

var (
	// ErrNoBody is returned when the document has no body to patch.
	// Aliased so callers can test with errors.Is against either package.
	ErrNoBody = docx.ErrNoBody

	// ErrUnsupportedFormat is returned for inputs that are not DOCX files.
	ErrUnsupportedFormat = errors.New("wordformat: unsupported document format")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("wordformat: invalid configuration")
)
