package executor

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fieldflow/field"
	"github.com/kbukum/fieldflow/logger"
)

const instrumentationName = "github.com/kbukum/fieldflow/executor"

// WithTracing wraps a Transformer with OpenTelemetry span creation.
// Each evaluation creates a span named "fieldflow.transform". A nil tracer
// uses the global provider.
func WithTracing(t Transformer, tracer trace.Tracer) Transformer {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return &tracingTransformer{inner: t, tracer: tracer}
}

type tracingTransformer struct {
	inner  Transformer
	tracer trace.Tracer
}

func (t *tracingTransformer) Transform(ctx context.Context, f field.Field, in Inputs) (field.Value, error) {
	ctx, span := t.tracer.Start(ctx, "fieldflow.transform", trace.WithAttributes(
		attribute.String("field.id", f.ID),
		attribute.String("field.name", f.Name),
		attribute.String("field.type", string(f.Type)),
		attribute.Int("field.inputs", in.Len()),
	))
	defer span.End()

	v, err := t.inner.Transform(ctx, f, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}

// Metrics holds the instruments recorded around transformer calls.
type Metrics struct {
	transformTotal    metric.Int64Counter
	transformDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	transformTotal, err := meter.Int64Counter("fieldflow.transform.total",
		metric.WithDescription("Total number of field transformations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fieldflow.transform.total counter: %w", err)
	}

	transformDuration, err := meter.Float64Histogram("fieldflow.transform.duration",
		metric.WithDescription("Duration of field transformations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fieldflow.transform.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("fieldflow.transform.errors",
		metric.WithDescription("Total failed transformations by field type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fieldflow.transform.errors counter: %w", err)
	}

	return &Metrics{
		transformTotal:    transformTotal,
		transformDuration: transformDuration,
		errorTotal:        errorTotal,
	}, nil
}

// RecordTransform records one transformation.
func (m *Metrics) RecordTransform(ctx context.Context, f field.Field, status string, duration time.Duration) {
	m.transformTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("field_type", string(f.Type)),
		attribute.String("status", status),
	))
	m.transformDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("field_type", string(f.Type)),
	))
}

// RecordError records a failed transformation.
func (m *Metrics) RecordError(ctx context.Context, f field.Field) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("field_type", string(f.Type)),
	))
}

// WithMetrics wraps a Transformer with metric recording.
func WithMetrics(t Transformer, metrics *Metrics) Transformer {
	return &metricsTransformer{inner: t, metrics: metrics}
}

type metricsTransformer struct {
	inner   Transformer
	metrics *Metrics
}

func (t *metricsTransformer) Transform(ctx context.Context, f field.Field, in Inputs) (field.Value, error) {
	start := time.Now()
	v, err := t.inner.Transform(ctx, f, in)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		t.metrics.RecordError(ctx, f)
	}
	t.metrics.RecordTransform(ctx, f, status, duration)
	return v, err
}

// WithLogging wraps a Transformer with evaluation logging.
func WithLogging(t Transformer, log *logger.Logger) Transformer {
	return &loggingTransformer{inner: t, log: log}
}

type loggingTransformer struct {
	inner Transformer
	log   *logger.Logger
}

func (t *loggingTransformer) Transform(ctx context.Context, f field.Field, in Inputs) (field.Value, error) {
	start := time.Now()
	v, err := t.inner.Transform(ctx, f, in)
	duration := time.Since(start)

	fields := map[string]interface{}{
		logger.FieldFieldName: f.Name,
		logger.FieldFieldType: string(f.Type),
	}

	if err != nil {
		t.log.Error("transformation failed", fields, logger.ErrorFields("transform", err), logger.DurationFields("transform", duration))
	} else {
		t.log.Debug("transformation completed", fields, logger.DurationFields("transform", duration))
	}
	return v, err
}
