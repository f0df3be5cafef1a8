package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the pipeline's prometheus collectors.
type Metrics struct {
	processed *prometheus.CounterVec
}

// NewMetrics creates pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_processed_total",
				Help: "Total number of documents run through the parsing pipeline.",
			},
			[]string{"doc_type", "outcome"},
		),
	}

	if err := reg.Register(m.processed); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) observe(docType, outcome string) {
	if m == nil {
		return
	}
	m.processed.WithLabelValues(docType, outcome).Inc()
}
