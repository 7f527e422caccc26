package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")
	tr, err := Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if tr != nil {
		t.Fatal("expected nil tracer when endpoint is unset")
	}

	// nil tracer is usable
	tr.Event(context.Background(), "panel.open", "a", nil, nil)
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestEventRecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tr := New(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	tr.Event(context.Background(), "panel.pin", "b", map[string]string{"kind": "pin"}, nil)
	tr.Event(context.Background(), "panel.open", "zz", nil, errors.New("unknown panel id"))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	if spans[0].Name() != "panel.pin" {
		t.Errorf("span name = %q", spans[0].Name())
	}
	found := false
	for _, kv := range spans[0].Attributes() {
		if kv.Key == attribute.Key("accordion.kind") && kv.Value.AsString() == "pin" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing accordion.kind attribute: %v", spans[0].Attributes())
	}

	if spans[1].Status().Code != codes.Error {
		t.Errorf("status = %v, want error", spans[1].Status().Code)
	}
}
