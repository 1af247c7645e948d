package resolve

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter  = otel.Meter("github.com/quay/vecscore/resolve")
	tracer = otel.Tracer("github.com/quay/vecscore/resolve")

	resolveCall metric.Int64Counter
)

var metricInit = sync.OnceValue(func() (err error) {
	resolveCall, err = meter.Int64Counter("resolve.calls",
		metric.WithUnit("{call}"),
		metric.WithDescription("Rows resolved, by the strategy that found a vector."),
	)
	return err
})

var strategyAttrKey = attribute.Key("strategy")

func strategyAttr(s Strategy) attribute.KeyValue {
	return strategyAttrKey.String(s.String())
}
