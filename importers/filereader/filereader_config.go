package fileimporter

// Config specific to the file importer
type Config struct {
	// NormalizeNewlines rewrites "\r\n" and lone "\r" line endings to "\n".
	// JavaScript applies the same rewrite to template literals, so without it
	// the generated constants do not reproduce CR line endings.
	NormalizeNewlines bool
	// StripBOM removes a leading UTF-8 byte order mark. Spreadsheet exports
	// frequently carry one; when kept it ends up as U+FEFF inside the constant.
	StripBOM bool
}

// DefaultConfig returns the importer defaults.
func DefaultConfig() Config {
	return Config{
		NormalizeNewlines: true,
		StripBOM:          false,
	}
}
