package tracing

import (
	"context"
	"fmt"
	"strings"

	"rewardsched/internal/platform/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Exporters understood by Setup
const (
	ExporterNone   = "none"
	ExporterOTLP   = "otlp"
	ExporterZipkin = "zipkin"
)

// Config selects and tunes the span exporter
type Config struct {
	Exporter       string
	Endpoint       string
	SampleRate     float64
	ServiceName    string
	ServiceVersion string
}

// ConfigFrom reads TRACE_* keys from cfg
func ConfigFrom(cfg config.Conf) Config {
	c := cfg.Prefix("TRACE_")
	return Config{
		Exporter:   c.MayEnum("EXPORTER", ExporterNone, ExporterNone, ExporterOTLP, ExporterZipkin),
		Endpoint:   c.MayString("ENDPOINT", ""),
		SampleRate: c.MayFloat64("SAMPLE_RATE", 1.0),
	}
}

// Shutdown flushes and stops an installed provider
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider for cfg
// with ExporterNone nothing is installed and spans stay no-ops
func Setup(ctx context.Context, cfg Config) (Shutdown, error) {
	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}
	if exp == nil {
		return noopShutdown, nil
	}

	rate := cfg.SampleRate
	if rate <= 0 || rate > 1 {
		rate = 1
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		return noopShutdown, fmt.Errorf("tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case "", ExporterNone:
		return nil, nil
	case ExporterOTLP:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "localhost:4318"
		}
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		return exp, nil
	case ExporterZipkin:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "http://localhost:9411/api/v2/spans"
		}
		exp, err := zipkin.New(endpoint)
		if err != nil {
			return nil, fmt.Errorf("zipkin exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", cfg.Exporter)
	}
}
