package exporters

// Exporter defines the interface for persisting the generated document.
type Exporter interface {
	// Export replaces the content at path with data. Failures are reported as
	// *types.WriteError.
	Export(path string, data []byte) error
}
