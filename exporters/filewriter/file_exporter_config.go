package filewriter

import "os"

// Config specific to the file exporter
type Config struct {
	// Atomic writes to a temporary file in the destination directory and renames
	// it over the destination, so readers never observe a partial file.
	Atomic bool
	// Perm is the mode of a newly created output file. Zero means 0644. An
	// existing output keeps its mode.
	Perm os.FileMode
}

// DefaultConfig returns the exporter defaults.
func DefaultConfig() Config {
	return Config{
		Atomic: true,
		Perm:   0644,
	}
}
