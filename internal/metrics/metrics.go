package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stuartin/azenix-challenge/internal/parser"
)

// Metrics holds the counters for one run on a private registry, so that
// tests and repeated runs in one process do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	LinesRead     prometheus.Counter
	EntriesParsed prometheus.Counter
	ParseErrors   *prometheus.CounterVec
}

// New creates and registers the counters
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logparse_lines_read_total",
			Help: "Lines read from the input log.",
		}),
		EntriesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logparse_entries_parsed_total",
			Help: "Lines that parsed into a log entry.",
		}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logparse_parse_errors_total",
			Help: "Lines rejected by the parser, by error kind.",
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(m.LinesRead, m.EntriesParsed, m.ParseErrors)

	// pre-create every label so zero counts are exported
	for _, k := range parser.Kinds() {
		m.ParseErrors.WithLabelValues(k.String())
	}
	return m
}

// Record counts a batch of parse results
func (m *Metrics) Record(results []parser.Result) {
	m.LinesRead.Add(float64(len(results)))
	for _, r := range results {
		if r.Err != nil {
			m.ParseErrors.WithLabelValues(parser.KindOf(r.Err).String()).Inc()
			continue
		}
		m.EntriesParsed.Inc()
	}
}

// WriteTextfile writes the registry in the node_exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
