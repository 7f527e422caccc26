// Package telemetry sets up OpenTelemetry tracing for panel transitions.
//
// Tracing is off unless OTEL_EXPORTER_OTLP_ENDPOINT is set, in which case
// spans are batched to that endpoint over OTLP/HTTP.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Environment variables read by Setup.
const (
	EndpointEnvVar    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	ServiceNameEnvVar = "OTEL_SERVICE_NAME"
)

const (
	defaultServiceName  = "accordion"
	instrumentationName = "github.com/muurk/accordion/internal/accordion"
)

// Tracer wraps the tracer provider used for transition spans. A nil *Tracer
// is valid and traces nothing.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// Setup creates an OTLP-backed tracer if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil when the endpoint is not configured (disabled).
func Setup(ctx context.Context) (*Tracer, error) {
	endpoint := os.Getenv(EndpointEnvVar)
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv(ServiceNameEnvVar)
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return New(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// New wraps an existing provider. Tests pass one backed by a span recorder.
func New(provider *sdktrace.TracerProvider) *Tracer {
	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer(instrumentationName),
	}
}

func (t *Tracer) otel() oteltrace.Tracer {
	if t == nil {
		return noop.NewTracerProvider().Tracer(instrumentationName)
	}
	return t.tracer
}

// Event records a single panel event as a span. err marks the span failed.
func (t *Tracer) Event(ctx context.Context, name, panelID string, attrs map[string]string, err error) {
	_, span := t.otel().Start(ctx, name)
	defer span.End()

	kv := make([]attribute.KeyValue, 0, len(attrs)+1)
	kv = append(kv, attribute.String("accordion.panel.id", panelID))
	for k, v := range attrs {
		kv = append(kv, attribute.String("accordion."+k, v))
	}
	span.SetAttributes(kv...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// Shutdown flushes and closes the exporter
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
