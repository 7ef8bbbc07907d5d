// Package otel configures OpenTelemetry tracing for service entrypoints.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/hkopenai/hk-food-mcp-server/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Env holds the tracing switches read from the environment.
type Env struct {
	Endpoint string `env:"HK_FOOD_OTEL_ENDPOINT"`
	Enabled  string `env:"HK_FOOD_OTEL_ENABLED"`
}

// ShutdownFunc flushes pending spans and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when HK_FOOD_OTEL_ENDPOINT is empty or
// HK_FOOD_OTEL_ENABLED is "false", Setup returns a no-op shutdown function and
// no global provider is registered. The W3C trace-context propagator is
// installed either way so outgoing CSV fetches carry caller context.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var cfg Env
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	if strings.EqualFold(cfg.Enabled, "false") {
		return noop, nil
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
