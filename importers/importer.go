package importers

// Importer defines the interface for loading the raw content of an input file.
type Importer interface {
	// Import returns the full text content at path. Failures are reported as
	// *types.ReadError and are never partially recovered.
	Import(path string) (string, error)
}
