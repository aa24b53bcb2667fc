// Package tracing starts OpenTelemetry spans for planning operations
// spans go to whatever provider is installed globally, a no-op until main installs one
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Scope is the instrumentation scope name
const Scope = "rewardsched.scheduler"

// Attribute keys
const (
	AttrProfileID  = "scheduler.profile_id"
	AttrTemplateID = "scheduler.template_id"
	AttrEventID    = "scheduler.event_id"
	AttrOutcome    = "scheduler.outcome"
	AttrStatus     = "scheduler.status"
)

// Start opens a span named name under Scope
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(Scope).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End marks the span result and ends it
func End(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrStatus, "error"))
	} else {
		span.SetStatus(codes.Ok, "")
		span.SetAttributes(attribute.String(AttrStatus, "success"))
	}
	span.End()
}

// NonEmpty returns a string attribute, or nothing for an empty value
func NonEmpty(key, value string) []attribute.KeyValue {
	if value == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String(key, value)}
}
