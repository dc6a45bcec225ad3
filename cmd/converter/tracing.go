package main

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

const tracerName = "github.com/mixtli/dungeon-lab-sub000/cmd/converter"

// newTracer returns a tracer whose spans are printed to w when shutdown
// flushes them
func newTracer(w io.Writer) (trace.Tracer, func(context.Context) error, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create trace exporter")
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	return provider.Tracer(tracerName), provider.Shutdown, nil
}
