package generator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utilitycheck/utility-data/config"
	fileimporter "github.com/utilitycheck/utility-data/importers/filereader"
	"github.com/utilitycheck/utility-data/types"
	"github.com/utilitycheck/utility-data/util/metrics"
)

var logger *logrus.Logger

func init() {
	logger, _ = test.NewNullLogger()
}

// makeConfig returns the default configuration rooted at a temporary
// directory, with the given input files created.
func makeConfig(t *testing.T, files map[string]string) (config.Config, string) {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	cfg := config.Default()
	cfg.Output = filepath.Join(dir, cfg.Output)
	for i := range cfg.Inputs {
		cfg.Inputs[i].Path = filepath.Join(dir, cfg.Inputs[i].Path)
	}
	return cfg, dir
}

type mockExporter struct {
	err   error
	calls int
}

func (m *mockExporter) Export(path string, data []byte) error {
	m.calls++
	if m.err != nil {
		return types.MakeWriteError(path, m.err)
	}
	return nil
}

func TestRunEndToEnd(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{
		"gas.csv": "a,b\nc,d",
		"we.csv":  "x,y",
	})

	result, err := MakeFileGenerator(cfg, logger).Run()
	require.NoError(t, err)
	assert.Equal(t, cfg.Output, result.Output)
	assert.Equal(t, []string{"GAS_CSV_TEXT", "WE_CSV_TEXT"}, result.Constants)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	expected := "const GAS_CSV_TEXT = `a,b\nc,d`;\nconst WE_CSV_TEXT = `x,y`;\n"
	assert.Equal(t, expected, string(data))
	assert.Equal(t, len(expected), result.BytesWritten)
}

func TestRunEscapesContent(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{
		"gas.csv": "price,note\r\n$5,`${total}`\\n",
		"we.csv":  "",
	})

	_, err := MakeFileGenerator(cfg, logger).Run()
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	expected := "const GAS_CSV_TEXT = `price,note\n$5,\\`\\${total}\\`\\\\n`;\nconst WE_CSV_TEXT = ``;\n"
	assert.Equal(t, expected, string(data))
}

func TestRunHeader(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "g", "we.csv": "w"})
	cfg.Header = true

	_, err := MakeFileGenerator(cfg, logger).Run()
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "// Code generated by utility-data from ")
	assert.Contains(t, string(data), "DO NOT EDIT.\n\nconst GAS_CSV_TEXT = `g`;\nconst WE_CSV_TEXT = `w`;\n")
}

func TestRunMissingInput(t *testing.T) {
	cfg, dir := makeConfig(t, map[string]string{"we.csv": "x,y"})
	exp := &mockExporter{}

	gen := MakeGenerator(cfg, fileimporter.New(cfg.ImporterConfig(), logger), exp, logger)
	_, err := gen.Run()

	var readErr *types.ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, filepath.Join(dir, "gas.csv"), readErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Zero(t, exp.calls)
	assert.NoFileExists(t, cfg.Output)
}

func TestRunMissingInputLeavesPriorOutput(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "a", "we.csv": "b"})
	_, err := MakeFileGenerator(cfg, logger).Run()
	require.NoError(t, err)
	prior, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	require.NoError(t, os.Remove(cfg.Inputs[1].Path))
	_, err = MakeFileGenerator(cfg, logger).Run()
	require.Error(t, err)

	after, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, prior, after)
}

func TestRunWriteFailure(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "a", "we.csv": "b"})
	exp := &mockExporter{err: fs.ErrPermission}

	gen := MakeGenerator(cfg, fileimporter.New(cfg.ImporterConfig(), logger), exp, logger)
	_, err := gen.Run()

	var writeErr *types.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, cfg.Output, writeErr.Path)
	assert.Equal(t, 1, exp.calls)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "a", "we.csv": "b"})
	cfg.Inputs[0].Constant = "not valid"

	_, err := MakeFileGenerator(cfg, logger).Run()
	assert.ErrorContains(t, err, "not a valid JavaScript identifier")
	assert.NoFileExists(t, cfg.Output)
}

func TestRunMetrics(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "``\\", "we.csv": "${a}"})
	cfg.Inputs[0].Name = "metrics-gas"
	cfg.Inputs[1].Name = "metrics-we"

	result, err := MakeFileGenerator(cfg, logger).Run()
	require.NoError(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.InputBytes.WithLabelValues("metrics-gas")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.EscapesApplied.WithLabelValues("metrics-gas", "backtick")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EscapesApplied.WithLabelValues("metrics-gas", "backslash")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EscapesApplied.WithLabelValues("metrics-we", "interpolation")))
	assert.Equal(t, float64(result.BytesWritten), testutil.ToFloat64(metrics.OutputBytes))
}

func TestCheck(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "a,b\nc,d", "we.csv": "x,y"})
	gen := MakeFileGenerator(cfg, logger)

	// missing output
	err := gen.Check()
	var staleErr *types.StaleError
	require.True(t, errors.As(err, &staleErr))
	assert.True(t, staleErr.Missing)

	// up to date
	_, err = gen.Run()
	require.NoError(t, err)
	require.NoError(t, gen.Check())

	// stale
	require.NoError(t, os.WriteFile(cfg.Inputs[1].Path, []byte("x,z"), 0644))
	before, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	err = gen.Check()
	require.True(t, errors.As(err, &staleErr))
	assert.False(t, staleErr.Missing)
	assert.Contains(t, staleErr.Diff, "-const WE_CSV_TEXT = `x,y`;")
	assert.Contains(t, staleErr.Diff, "+const WE_CSV_TEXT = `x,z`;")

	// check never writes
	after, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCheckMissingInput(t *testing.T) {
	cfg, _ := makeConfig(t, map[string]string{"gas.csv": "a"})

	err := MakeFileGenerator(cfg, logger).Check()
	var readErr *types.ReadError
	require.True(t, errors.As(err, &readErr))
}
