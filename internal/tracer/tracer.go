// Package tracer wires optional OpenTelemetry export for the HTTP surface.
package tracer

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const (
	enabledEnv      = "OTEL_ENABLED"
	endpointEnv     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	defaultEndpoint = "localhost:4318"
	serviceName     = "knowledge-bot"
)

func noopShutdown(context.Context) error { return nil }

// InitTracer installs the global tracer provider and returns its shutdown
// hook. Tracing is off unless OTEL_ENABLED=true; when off, or when the OTLP
// exporter cannot be built, the returned hook is a no-op so callers can
// defer it unconditionally.
func InitTracer() func(context.Context) error {
	if os.Getenv(enabledEnv) != "true" {
		return noopShutdown
	}

	endpoint := os.Getenv(endpointEnv)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("otlp exporter unavailable, tracing stays off: %v", err)
		return noopShutdown
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	log.Printf("tracing enabled, exporting to %s", endpoint)

	return tp.Shutdown
}
