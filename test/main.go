// Package test holds helpers shared by the vecscore tests.
package test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Main runs the tests in "m", installing a trace provider if the
// "-app-trace" flag names a file.
//
//	func TestMain(m *testing.M) {
//		test.Main(m)
//	}
func Main(m *testing.M) {
	path := flag.String("app-trace", "", "path to write application traces to (otel JSON format)")
	flag.Parse()

	code := func() int {
		if *path == "" {
			return m.Run()
		}
		f, err := os.OpenFile(*path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening trace file: %v\n", err)
			return 1
		}
		defer f.Close()
		exp, err := stdouttrace.New(stdouttrace.WithWriter(f))
		if err != nil {
			panic(fmt.Errorf("creating stdout exporter: %w", err))
		}
		r, err := resource.Merge(
			resource.Default(),
			resource.NewSchemaless(attribute.String("test.start", time.Now().Format(time.RFC3339))))
		if err != nil {
			panic(fmt.Errorf("creating resource: %w", err))
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithResource(r),
			sdktrace.WithBatcher(exp),
		)
		otel.SetTracerProvider(tp)
		defer func() {
			ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
			defer done()
			if err := tp.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "flushing traces: %v\n", err)
			}
		}()
		return m.Run()
	}()
	os.Exit(code)
}
