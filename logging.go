package prioritypool

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// WithLogger returns a context carrying logger, following the same
// FromContext/WithContext convention the teacher repository uses its
// zlog wrapper for, but against zap directly. A caller threads the
// result through Job.Ctx to give one particular job its own logger —
// the worker and queue pick it up on the job's actual dispatch path
// (see Worker.execute, Queue.Push).
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFromContext returns the logger stashed in ctx by WithLogger, or
// fallback if ctx carries none.
func loggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return fallback
}
