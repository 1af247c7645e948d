package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "vecscore"

// Telemetry holds the installed OpenTelemetry providers.
type telemetry struct {
	shutdown []func(context.Context) error
	// LogHandler forwards records to the OTLP log exporter, if configured.
	LogHandler slog.Handler
}

// Shutdown flushes and stops every provider, in reverse order of
// installation.
func (t *telemetry) Shutdown(ctx context.Context) error {
	ctx, done := context.WithTimeout(ctx, 10*time.Second)
	defer done()
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, t.shutdown[i](ctx))
	}
	return errors.Join(errs...)
}

// SetupTelemetry installs global trace, metric, and log providers according
// to the flags in "cfg". Console exporters write to "w". With "-metrics", the
// Prometheus default registry is also written to "w" at shutdown.
func setupTelemetry(ctx context.Context, cfg *config, w io.Writer) (*telemetry, error) {
	t := new(telemetry)
	if !cfg.Trace && !cfg.Metrics && cfg.OTLP == "" {
		return t, nil
	}
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		slog.Warn("otel error", "reason", err)
	}))
	r, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", serviceName)))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var spanExp []sdktrace.SpanExporter
	var metricExp []sdkmetric.Exporter
	if cfg.Trace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("creating trace exporter: %w", err)
		}
		spanExp = append(spanExp, exp)
	}
	if cfg.Metrics {
		exp, err := stdoutmetric.New(stdoutmetric.WithEncoder(json.NewEncoder(w)))
		if err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}
		metricExp = append(metricExp, exp)
		t.shutdown = append(t.shutdown, func(context.Context) error {
			return writePrometheus(w, prometheus.DefaultGatherer)
		})
	}
	if cfg.OTLP != "" {
		se, me, le, err := otlpExporters(ctx, cfg.OTLP)
		if err != nil {
			return nil, err
		}
		spanExp = append(spanExp, se)
		metricExp = append(metricExp, me)

		lp := sdklog.NewLoggerProvider(
			sdklog.WithResource(r),
			sdklog.WithProcessor(sdklog.NewBatchProcessor(le)),
		)
		global.SetLoggerProvider(lp)
		t.shutdown = append(t.shutdown, lp.Shutdown)
		t.LogHandler = otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(lp))
	}

	if len(spanExp) != 0 {
		opts := []sdktrace.TracerProviderOption{
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithResource(r),
		}
		for _, exp := range spanExp {
			opts = append(opts, sdktrace.WithBatcher(exp))
		}
		tp := sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(tp)
		t.shutdown = append(t.shutdown, tp.Shutdown)
	}
	if len(metricExp) != 0 {
		opts := []sdkmetric.Option{sdkmetric.WithResource(r)}
		for _, exp := range metricExp {
			opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
		}
		mp := sdkmetric.NewMeterProvider(opts...)
		otel.SetMeterProvider(mp)
		t.shutdown = append(t.shutdown, mp.Shutdown)
	}
	return t, nil
}

// OtlpExporters creates OTLP exporters for the named transport. Endpoints
// and headers come from the standard OTEL_EXPORTER_OTLP_* environment
// variables.
func otlpExporters(ctx context.Context, proto string) (sdktrace.SpanExporter, sdkmetric.Exporter, sdklog.Exporter, error) {
	var (
		se  *otlptrace.Exporter
		me  sdkmetric.Exporter
		le  sdklog.Exporter
		err error
	)
	switch proto {
	case "http":
		if se, err = otlptracehttp.New(ctx); err != nil {
			break
		}
		if me, err = otlpmetrichttp.New(ctx); err != nil {
			break
		}
		le, err = otlploghttp.New(ctx)
	case "grpc":
		if se, err = otlptracegrpc.New(ctx); err != nil {
			break
		}
		if me, err = otlpmetricgrpc.New(ctx); err != nil {
			break
		}
		le, err = otlploggrpc.New(ctx)
	default:
		return nil, nil, nil, fmt.Errorf("unknown OTLP protocol %q", proto)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating OTLP %s exporter: %w", proto, err)
	}
	return se, me, le, nil
}

// WritePrometheus writes the gathered Prometheus series in the text
// exposition format.
func writePrometheus(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering prometheus metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Tee is an [slog.Handler] that sends records to every member.
type tee []slog.Handler

var _ slog.Handler = tee(nil)

func (t tee) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := make(tee, len(t))
	for i, h := range t {
		n[i] = h.WithAttrs(attrs)
	}
	return n
}

func (t tee) WithGroup(name string) slog.Handler {
	n := make(tee, len(t))
	for i, h := range t {
		n[i] = h.WithGroup(name)
	}
	return n
}
