// ABOUTME: Prometheus instruments for the chat and ingestion pipelines
// ABOUTME: Exposed over HTTP through MetricsHandler
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatTurns         *prometheus.CounterVec
	ProviderErrors    *prometheus.CounterVec
	DocumentsIngested *prometheus.CounterVec
	ChunksIndexed     prometheus.Gauge
	RetrievalLatency  prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ChatTurns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_turns_total",
			Help:      "Chat turns by outcome.",
		}, []string{"outcome"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Provider errors by provider.",
		}, []string{"provider"}),
		DocumentsIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_ingested_total",
			Help:      "Documents ingested by kind.",
		}, []string{"kind"}),
		ChunksIndexed: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_indexed",
			Help:      "Number of chunks currently indexed in the knowledge base.",
		}),
		RetrievalLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieval_latency_ms",
			Help:      "End-to-end retrieval latency in milliseconds.",
			Buckets:   []float64{50, 100, 200, 400, 700, 1200, 2000, 5000},
		}),
	}
}

func (m *Metrics) ObserveRetrievalLatency(d time.Duration) {
	m.RetrievalLatency.Observe(float64(d.Milliseconds()))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
