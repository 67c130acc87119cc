package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the generator metrics. A dedicated registry keeps the Go
// runtime collectors out of the textfile output.
var Registry = prometheus.NewRegistry()

// RegisterPrometheusMetrics registers all metrics with Registry. It is safe to
// call more than once.
func RegisterPrometheusMetrics() {
	for _, c := range []prometheus.Collector{
		InputBytes,
		EscapesApplied,
		OutputBytes,
		GenerationTimeSeconds,
		LastSuccessTimestamp,
	} {
		if err := Registry.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}

// Prometheus metric names broken out for reuse.
const (
	InputBytesName            = "input_bytes_total"
	EscapesAppliedName        = "escapes_applied_total"
	OutputBytesName           = "output_bytes"
	GenerationTimeSecondsName = "generation_time_seconds"
	LastSuccessTimestampName  = "last_success_timestamp_seconds"
)

const namespace = "utility_data"

// Initialize the prometheus objects.
var (
	// AllMetricNames is a reference for all the custom metric names.
	AllMetricNames = []string{
		InputBytesName,
		EscapesAppliedName,
		OutputBytesName,
		GenerationTimeSecondsName,
		LastSuccessTimestampName,
	}

	InputBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      InputBytesName,
			Help:      "Bytes read from each input file.",
		}, []string{"input"})

	EscapesApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      EscapesAppliedName,
			Help:      "Escapes inserted into the generated literals, by kind.",
		}, []string{"input", "kind"})

	OutputBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      OutputBytesName,
			Help:      "Size of the most recently generated output file.",
		})

	GenerationTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      GenerationTimeSecondsName,
			Help:      "Wall time of the most recent generation run.",
		})

	LastSuccessTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      LastSuccessTimestampName,
			Help:      "Unix time of the most recent successful run.",
		})
)

// WriteTextfile writes the registry in the text exposition format, for the
// node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("WriteTextfile(): %w", err)
	}
	return nil
}
