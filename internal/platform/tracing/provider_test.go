package tracing

import (
	"context"
	"testing"

	"rewardsched/internal/platform/config"

	"go.opentelemetry.io/otel"
)

func TestSetup_NoneInstallsNothing(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown, err := Setup(context.Background(), Config{Exporter: ExporterNone})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Fatalf("provider replaced for exporter none")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_UnknownExporter(t *testing.T) {
	if _, err := Setup(context.Background(), Config{Exporter: "carrier-pigeon"}); err == nil {
		t.Fatalf("expected error for unknown exporter")
	}
}

func TestSetup_ZipkinInstallsProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := Setup(context.Background(), Config{
		Exporter:    ExporterZipkin,
		Endpoint:    "http://127.0.0.1:1/api/v2/spans",
		ServiceName: "scheduler-api",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if otel.GetTracerProvider() == prev {
		t.Fatalf("expected a new global provider")
	}
	_ = shutdown(context.Background())
}

func TestConfigFrom(t *testing.T) {
	t.Setenv("SCHED_API_TRACE_EXPORTER", "otlp")
	t.Setenv("SCHED_API_TRACE_ENDPOINT", "collector:4318")
	t.Setenv("SCHED_API_TRACE_SAMPLE_RATE", "0.25")

	got := ConfigFrom(config.New().Prefix("SCHED_API_"))
	if got.Exporter != ExporterOTLP || got.Endpoint != "collector:4318" || got.SampleRate != 0.25 {
		t.Fatalf("unexpected config %+v", got)
	}
}
