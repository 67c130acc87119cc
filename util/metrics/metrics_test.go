package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTwice(t *testing.T) {
	RegisterPrometheusMetrics()
	assert.NotPanics(t, RegisterPrometheusMetrics)
}

func TestWriteTextfile(t *testing.T) {
	RegisterPrometheusMetrics()
	InputBytes.WithLabelValues("gas").Add(42)
	EscapesApplied.WithLabelValues("gas", "backtick").Inc()
	OutputBytes.Set(64)

	assert.Equal(t, float64(42), testutil.ToFloat64(InputBytes.WithLabelValues("gas")))

	path := filepath.Join(t.TempDir(), "utility_data.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `utility_data_input_bytes_total{input="gas"} 42`)
	assert.Contains(t, text, `utility_data_escapes_applied_total{input="gas",kind="backtick"} 1`)
	assert.Contains(t, text, "utility_data_output_bytes 64")
	assert.NotContains(t, text, "go_goroutines")

	for _, name := range AllMetricNames {
		assert.Contains(t, text, "# TYPE utility_data_"+name+" ", name)
	}
}

func TestWriteTextfileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "utility_data.prom")
	assert.Error(t, WriteTextfile(path))
}
