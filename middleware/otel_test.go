package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/felixgeelhaar/docschema/protocol"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp
}

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOTelMiddleware(t *testing.T) {
	t.Run("creates span for request", func(t *testing.T) {
		exporter, tp := newTestTracer(t)

		handler := OTel(WithTracerProvider(tp))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, nil), nil
		})

		_, err := handler(context.Background(), &protocol.Request{ID: json.RawMessage("1"), Method: "tools/list"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		if spans[0].Name != "docschema.tools/list" {
			t.Errorf("span name = %q, want %q", spans[0].Name, "docschema.tools/list")
		}
	})

	t.Run("tags tool name on tools/call", func(t *testing.T) {
		exporter, tp := newTestTracer(t)

		handler := OTel(WithTracerProvider(tp))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, nil), nil
		})

		req := &protocol.Request{
			ID:     json.RawMessage("1"),
			Method: "tools/call",
			Params: json.RawMessage(`{"name":"resize"}`),
		}
		_, _ = handler(context.Background(), req)

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		v, ok := spanAttr(spans[0].Attributes, "docschema.tool")
		if !ok || v.AsString() != "resize" {
			t.Errorf("docschema.tool = %v, want %q", v.AsString(), "resize")
		}
	})

	t.Run("records error on failure", func(t *testing.T) {
		exporter, tp := newTestTracer(t)

		handler := OTel(WithTracerProvider(tp))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return nil, errors.New("handler failed")
		})

		_, err := handler(context.Background(), &protocol.Request{ID: json.RawMessage("1"), Method: "tools/call"})
		if err == nil {
			t.Fatal("expected error")
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		if len(spans[0].Events) == 0 {
			t.Error("expected error event on span")
		}
	})

	t.Run("records protocol error code", func(t *testing.T) {
		exporter, tp := newTestTracer(t)

		handler := OTel(WithTracerProvider(tp))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return nil, protocol.NewNotFound("tool not found")
		})

		_, _ = handler(context.Background(), &protocol.Request{ID: json.RawMessage("1"), Method: "tools/call"})

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		v, ok := spanAttr(spans[0].Attributes, "rpc.jsonrpc.error_code")
		if !ok {
			t.Fatal("expected rpc.jsonrpc.error_code attribute")
		}
		if v.AsInt64() != int64(protocol.CodeNotFound) {
			t.Errorf("error code = %d, want %d", v.AsInt64(), protocol.CodeNotFound)
		}
	})

	t.Run("skips configured methods", func(t *testing.T) {
		exporter, tp := newTestTracer(t)

		handler := OTel(WithTracerProvider(tp), WithOTelSkipMethods("ping"))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, nil), nil
		})

		_, _ = handler(context.Background(), &protocol.Request{ID: json.RawMessage("1"), Method: "ping"})

		if n := len(exporter.GetSpans()); n != 0 {
			t.Errorf("expected 0 spans for skipped method, got %d", n)
		}
	})

	t.Run("uses custom service name", func(t *testing.T) {
		exporter, tp := newTestTracer(t)

		handler := OTel(WithTracerProvider(tp), WithOTelServiceName("schema-gateway"))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, nil), nil
		})

		_, _ = handler(context.Background(), &protocol.Request{ID: json.RawMessage("1"), Method: "tools/list"})

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		v, ok := spanAttr(spans[0].Attributes, "service.name")
		if !ok || v.AsString() != "schema-gateway" {
			t.Error("expected service.name attribute with custom value")
		}
	})

	t.Run("records request and error metrics", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer func() { _ = mp.Shutdown(context.Background()) }()

		calls := 0
		handler := OTel(WithMeterProvider(mp))(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			calls++
			if calls == 2 {
				return nil, protocol.NewInvalidParams("bad")
			}
			return protocol.NewResponse(req.ID, nil), nil
		})

		req := &protocol.Request{ID: json.RawMessage("1"), Method: "tools/list"}
		_, _ = handler(context.Background(), req)
		_, _ = handler(context.Background(), req)

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(context.Background(), &rm); err != nil {
			t.Fatalf("collect: %v", err)
		}

		sums := map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
					for _, dp := range sum.DataPoints {
						sums[m.Name] += dp.Value
					}
				}
			}
		}

		if sums["docschema.server.requests"] != 2 {
			t.Errorf("requests = %d, want 2", sums["docschema.server.requests"])
		}
		if sums["docschema.server.errors"] != 1 {
			t.Errorf("errors = %d, want 1", sums["docschema.server.errors"])
		}
	})

	t.Run("uses global providers by default", func(t *testing.T) {
		if OTel() == nil {
			t.Fatal("expected non-nil middleware")
		}
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, tp := newTestTracer(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	AddSpanEvent(ctx, "schemas.listed", attribute.Int("count", 3))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if len(spans[0].Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(spans[0].Events))
	}
	if spans[0].Events[0].Name != "schemas.listed" {
		t.Errorf("event name = %q, want %q", spans[0].Events[0].Name, "schemas.listed")
	}

	// No span in context: must not panic.
	AddSpanEvent(context.Background(), "ignored")
}
