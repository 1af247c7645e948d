package libscore

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Prometheus series are registered with the default registry. Programs
// embedding Libscore expose them the usual way, for example with promhttp.
var (
	rowsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecscore",
			Subsystem: "libscore",
			Name:      "rows_total",
			Help:      "Total number of rows scored, by outcome.",
		},
		[]string{"status"},
	)
	baseScoreHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vecscore",
			Subsystem: "libscore",
			Name:      "base_score",
			Help:      "Base Scores of successfully scored rows.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		},
	)
)

var (
	meter  = otel.Meter("github.com/quay/vecscore/libscore")
	tracer = otel.Tracer("github.com/quay/vecscore/libscore")

	rowCount metric.Int64Counter
)

var metricInit = sync.OnceValue(func() (err error) {
	rowCount, err = meter.Int64Counter("row.count",
		metric.WithUnit("{row}"),
		metric.WithDescription("Rows scored, by outcome."),
	)
	return err
})

var statusAttrKey = attribute.Key("status")

func statusAttr(s Status) attribute.KeyValue {
	return statusAttrKey.String(s.String())
}
