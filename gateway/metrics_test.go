package gateway

import (
	"context"
	"io"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("boardsync/gateway")

	t.Cleanup(func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown tracer provider: %v", err)
		}
		otel.SetTracerProvider(prev)
		tracer = otel.Tracer("boardsync/gateway")
	})
	return exporter
}

func attributesToMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func TestRequestSpanRecordsOpAndStatus(t *testing.T) {
	exporter := setupTestTracer(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[]}`)
	})

	if _, err := c.Boards(context.Background()); err != nil {
		t.Fatalf("boards: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "gateway.boards" {
		t.Fatalf("unexpected span name %q", span.Name)
	}
	attrs := attributesToMap(span.Attributes)
	if attrs["boardsync.gateway.op"] != "boards" {
		t.Fatalf("missing op attribute: %v", attrs)
	}
	if attrs["http.status_code"] != int64(http.StatusOK) {
		t.Fatalf("missing status attribute: %v", attrs)
	}
	if span.Status.Code != codes.Ok {
		t.Fatalf("unexpected span status %v", span.Status)
	}
}

func TestRequestSpanRecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := c.Boards(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Status.Code != codes.Error {
		t.Fatalf("expected error span status, got %v", span.Status)
	}
	if len(span.Events) == 0 {
		t.Fatal("expected a recorded error event")
	}
}

func TestDurationToMillis(t *testing.T) {
	if got := durationToMillis(0); got != 0 {
		t.Fatalf("zero duration should be 0, got %v", got)
	}
	if got := durationToMillis(1500000); got != 1.5 {
		t.Fatalf("expected 1.5ms, got %v", got)
	}
}
