// Package metrics provides Prometheus metrics for otb runs. Metrics live in a
// private registry and are exported through the node_exporter textfile
// collector format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Document kinds used as the "kind" label.
const (
	KindSchematic = "schematic"
	KindBoard     = "board"
)

// Write targets used as the "target" label.
const (
	TargetPart    = "part"
	TargetElement = "element"
)

// Metrics holds the counters and gauges of one run.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsLoaded *prometheus.CounterVec
	LoadFailures    *prometheus.CounterVec
	AttributeWrites *prometheus.CounterVec
	MirrorMisses    prometheus.Counter
	BOMParts        prometheus.Gauge
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		DocumentsLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otb_documents_loaded_total",
				Help: "Total number of EAGLE documents loaded",
			},
			[]string{"kind"},
		),

		LoadFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otb_load_failures_total",
				Help: "Total number of EAGLE documents that failed to load",
			},
			[]string{"kind"},
		),

		AttributeWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otb_attribute_writes_total",
				Help: "Total number of attribute writes by target and outcome",
			},
			[]string{"target", "outcome"},
		),

		MirrorMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "otb_mirror_misses_total",
				Help: "Schematic edits with no matching board element",
			},
		),

		BOMParts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "otb_bom_parts",
				Help: "Number of parts in the bill of materials",
			},
		),
	}
}

// Registry returns the registry holding all metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
