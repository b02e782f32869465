package executor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/fieldflow/field"
	"github.com/kbukum/fieldflow/logger"
)

var (
	constant = TransformerFunc(func(context.Context, field.Field, Inputs) (field.Value, error) {
		return field.String("ok"), nil
	})
	errTransform = errors.New("transform-fail")
	failing      = TransformerFunc(func(context.Context, field.Field, Inputs) (field.Value, error) {
		return field.Value{}, errTransform
	})
	summary = field.Field{ID: "id-summary", Name: "summary", Type: field.TypeText, IsTransformation: true}
)

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestWithTracing_RecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	traced := WithTracing(constant, tp.Tracer("test"))
	v, err := traced.Transform(context.Background(), summary, Inputs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := v.AsString(); s != "ok" {
		t.Fatalf("expected 'ok', got %q", s)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "fieldflow.transform" {
		t.Fatalf("unexpected span name %q", spans[0].Name())
	}
	if name, ok := attr(spans[0].Attributes(), "field.name"); !ok || name.AsString() != "summary" {
		t.Fatalf("expected field.name attribute, got %v", spans[0].Attributes())
	}
	if spans[0].Status().Code == codes.Error {
		t.Fatal("expected span without error status")
	}
}

func TestWithTracing_PropagatesError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	_, err := WithTracing(failing, tp.Tracer("test")).Transform(context.Background(), summary, Inputs{})
	if !errors.Is(err, errTransform) {
		t.Fatalf("expected transform error, got %v", err)
	}
	spans := sr.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Fatalf("expected one errored span, got %v", spans)
	}
}

func TestWithTracing_NilTracerUsesGlobal(t *testing.T) {
	if _, err := WithTracing(constant, nil).Transform(context.Background(), summary, Inputs{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func counterTotal(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	data, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %s is %T, not an int64 sum", m.Name, m.Data)
	}
	var total int64
	for _, dp := range data.DataPoints {
		total += dp.Value
	}
	return total
}

func TestWithMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if _, err := WithMetrics(constant, metrics).Transform(ctx, summary, Inputs{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := WithMetrics(failing, metrics).Transform(ctx, summary, Inputs{}); !errors.Is(err, errTransform) {
		t.Fatalf("expected transform error, got %v", err)
	}

	got := collect(t, reader)
	if n := counterTotal(t, got["fieldflow.transform.total"]); n != 2 {
		t.Fatalf("expected 2 transformations, got %d", n)
	}
	if n := counterTotal(t, got["fieldflow.transform.errors"]); n != 1 {
		t.Fatalf("expected 1 error, got %d", n)
	}
	if _, ok := got["fieldflow.transform.duration"]; !ok {
		t.Fatal("expected duration histogram")
	}
}

func TestWithLogging_Success(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "executor-test", &buf)

	if _, err := WithLogging(constant, log).Transform(context.Background(), summary, Inputs{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "transformation completed") || !strings.Contains(out, `"field_name":"summary"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestWithLogging_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "executor-test", &buf)

	_, err := WithLogging(failing, log).Transform(context.Background(), summary, Inputs{})
	if !errors.Is(err, errTransform) {
		t.Fatalf("expected transform error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "transformation failed") || !strings.Contains(out, `"error":"transform-fail"`) || !strings.Contains(out, `"operation":"transform"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}
