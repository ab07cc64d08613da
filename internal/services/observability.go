package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"travelplanner/pkg/utils"
)

var tracer = otel.Tracer("travelplanner/internal/services")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finishSpan records err on span. Infrastructure failures are logged and
// collapsed into utils.ErrDatabaseError; domain errors pass through as is.
func finishSpan(span trace.Span, logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	if utils.IsDomainError(err) {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Error, op+": database error")
	return databaseError(logger, op, err, fields...)
}

func databaseError(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	if utils.IsDomainError(err) {
		return err
	}
	logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return utils.ErrDatabaseError
}
