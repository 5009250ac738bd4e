package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// WithFields returns a child of logger carrying a copy of fields. Loggers
// without FieldsLogger support, nil loggers and empty maps pass through.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	scoped, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return scoped.WithFields(maps.Clone(fields))
}

// OrNoOp returns logger, or NoOp when logger is nil.
func OrNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// FromContext binds ctx to logger and attaches the fields stored with
// ContextWithFields.
func FromContext(logger interfaces.Logger, ctx context.Context) interfaces.Logger {
	if logger == nil || ctx == nil {
		return OrNoOp(logger)
	}
	return WithFields(logger.WithContext(ctx), ContextFields(ctx))
}
