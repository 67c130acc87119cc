package generator

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"

	"github.com/utilitycheck/utility-data/config"
	"github.com/utilitycheck/utility-data/escape"
	"github.com/utilitycheck/utility-data/exporters"
	"github.com/utilitycheck/utility-data/exporters/filewriter"
	"github.com/utilitycheck/utility-data/importers"
	fileimporter "github.com/utilitycheck/utility-data/importers/filereader"
	"github.com/utilitycheck/utility-data/source"
	"github.com/utilitycheck/utility-data/types"
	"github.com/utilitycheck/utility-data/util/metrics"
)

// Result describes a successful run.
type Result struct {
	Output       string
	Constants    []string
	BytesWritten int
}

// Generator reads the configured inputs and writes the constants file.
type Generator struct {
	cfg      config.Config
	importer importers.Importer
	exporter exporters.Exporter
	logger   *logrus.Logger
}

// MakeGenerator constructs a generator using the given importer and exporter.
func MakeGenerator(cfg config.Config, importer importers.Importer, exporter exporters.Exporter, logger *logrus.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		importer: importer,
		exporter: exporter,
		logger:   logger,
	}
}

// MakeFileGenerator constructs a generator backed by the file importer and
// exporter, configured from cfg.
func MakeFileGenerator(cfg config.Config, logger *logrus.Logger) *Generator {
	return MakeGenerator(
		cfg,
		fileimporter.New(cfg.ImporterConfig(), logger),
		filewriter.New(cfg.ExporterConfig(), logger),
		logger)
}

// Build reads every input and returns the document. The first read failure
// aborts the build.
func (g *Generator) Build() (source.Document, error) {
	if err := g.cfg.Valid(); err != nil {
		return source.Document{}, err
	}

	var doc source.Document
	if g.cfg.Header {
		doc.Header = source.GeneratedHeader(g.cfg.Paths())
	}

	for _, in := range g.cfg.Inputs {
		raw, err := g.importer.Import(in.Path)
		if err != nil {
			return source.Document{}, err
		}

		counts := escape.Count(raw)
		metrics.InputBytes.WithLabelValues(in.Name).Add(float64(len(raw)))
		metrics.EscapesApplied.WithLabelValues(in.Name, "backslash").Add(float64(counts.Backslashes))
		metrics.EscapesApplied.WithLabelValues(in.Name, "backtick").Add(float64(counts.Backticks))
		metrics.EscapesApplied.WithLabelValues(in.Name, "interpolation").Add(float64(counts.Interpolation))
		g.logger.WithFields(logrus.Fields{
			"input":    in.Name,
			"constant": in.Constant,
			"escapes":  counts.Total(),
		}).Debug("escaped input")

		doc.Declarations = append(doc.Declarations, source.NewDeclaration(in.Constant, raw))
	}
	return doc, nil
}

// Run builds the document and writes it to the configured output.
func (g *Generator) Run() (Result, error) {
	start := time.Now()

	doc, err := g.Build()
	if err != nil {
		return Result{}, err
	}

	data := doc.Bytes()
	if err := g.exporter.Export(g.cfg.Output, data); err != nil {
		return Result{}, err
	}

	metrics.OutputBytes.Set(float64(len(data)))
	metrics.GenerationTimeSeconds.Set(time.Since(start).Seconds())
	metrics.LastSuccessTimestamp.SetToCurrentTime()

	result := Result{
		Output:       g.cfg.Output,
		BytesWritten: len(data),
	}
	for _, decl := range doc.Declarations {
		result.Constants = append(result.Constants, decl.Name)
	}
	return result, nil
}

// Check compares the configured output with what Run would write, without
// writing anything. A *types.StaleError is returned when they differ.
func (g *Generator) Check() error {
	doc, err := g.Build()
	if err != nil {
		return err
	}
	generated := doc.Bytes()

	existing, err := os.ReadFile(g.cfg.Output)
	if errors.Is(err, fs.ErrNotExist) {
		return &types.StaleError{Path: g.cfg.Output, Missing: true}
	}
	if err != nil {
		return types.MakeReadError(g.cfg.Output, err)
	}

	if bytes.Equal(existing, generated) {
		g.logger.WithField("path", g.cfg.Output).Info("output is up to date")
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: g.cfg.Output,
		ToFile:   g.cfg.Output + " (generated)",
		Context:  1,
	})
	if err != nil {
		return err
	}
	return &types.StaleError{Path: g.cfg.Output, Diff: diff}
}
