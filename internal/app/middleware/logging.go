package middleware

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/queries"
)

// Logging records every dispatched command with its outcome and duration.
func Logging(logger *slog.Logger) CommandMiddleware {
	if logger == nil {
		panic("middleware: logger required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			started := time.Now()
			result, err := nextFn(ctx, cmd)
			if err != nil {
				logger.Debug("command failed", "command", cmd.Key(), "duration", time.Since(started), "error", err)
				return nil, err
			}
			logger.Debug("command handled", "command", cmd.Key(), "duration", time.Since(started))
			return result, nil
		})
	}
}

// QueryLogging records query handling the same way.
func QueryLogging(logger *slog.Logger) QueryMiddleware {
	if logger == nil {
		panic("middleware: logger required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			started := time.Now()
			result, err := nextFn(ctx, q)
			if err != nil {
				logger.Debug("query failed", "query", q.Key(), "duration", time.Since(started), "error", err)
				return nil, err
			}
			logger.Debug("query handled", "query", q.Key(), "duration", time.Since(started))
			return result, nil
		})
	}
}
