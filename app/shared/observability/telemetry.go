package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skyrden-airlines/portal/app/shared/apperr"
)

// Tracer returns a tracer from the global provider. Without an exporter
// configured the global provider is a no-op.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Telemetry is the per-service bundle Run needs.
type Telemetry struct {
	Service string
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics Metrics
}

// Run executes op inside a span, records attempt/outcome/duration metrics,
// recovers panics into errors and logs the result. Classified client errors
// (validation, not found, conflict...) count as handled and log at info.
func Run[T any](ctx context.Context, t Telemetry, operation, identifier string, op func(ctx context.Context) (T, error)) (result T, err error) {
	name := t.Service + "." + operation

	var span trace.Span
	if t.Tracer != nil {
		ctx, span = t.Tracer.Start(ctx, name, trace.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := t.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	metrics.RecordOperationAttempt(ctx, operation, t.Service)
	start := time.Now()
	defer func() {
		metrics.RecordOperationDuration(ctx, operation, t.Service, time.Since(start))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", name, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", name),
				slog.String("identifier", identifier),
				slog.Any("panic", r),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			metrics.RecordOperationFailure(ctx, operation, t.Service)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		span.RecordError(err)
		metrics.RecordOperationFailure(ctx, operation, t.Service)
		if apperr.KindOf(err) == apperr.KindInternal {
			span.SetStatus(codes.Error, err.Error())
			logger.ErrorContext(ctx, "Operation failed",
				slog.String("operation", name),
				slog.String("identifier", identifier),
				slog.String("error", err.Error()),
			)
		} else {
			logger.InfoContext(ctx, "Operation rejected",
				slog.String("operation", name),
				slog.String("identifier", identifier),
				slog.String("reason", err.Error()),
			)
		}
		return result, err
	}

	metrics.RecordOperationSuccess(ctx, operation, t.Service)
	logger.DebugContext(ctx, "Operation completed",
		slog.String("operation", name),
		slog.String("identifier", identifier),
	)
	return result, nil
}
