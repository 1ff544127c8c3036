package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"saasadmin/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// Statements touching these columns are logged with placeholders only.
var secretColumns = []string{"password_hash", "token_hash"}

// queryLogger routes gorm output into slog. Bound values are dropped for
// statements that carry credentials.
type queryLogger struct {
	log       *slog.Logger
	level     logger.LogLevel
	slowQuery time.Duration
}

var (
	_ logger.Interface  = (*queryLogger)(nil)
	_ gorm.ParamsFilter = (*queryLogger)(nil)
)

func newQueryLogger(base *slog.Logger, cfg *config.Config) *queryLogger {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}
	if base == nil {
		base = slog.Default()
	}

	return &queryLogger{
		log:       base.With(slog.String("component", "gorm")),
		level:     level,
		slowQuery: defaultSlowQuery,
	}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *queryLogger) printf(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < min {
		return
	}
	l.log.LogAttrs(ctx, level, fmt.Sprintf(msg, args...))
}

// ParamsFilter is consulted by gorm before it renders SQL for Trace.
func (l *queryLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if touchesSecrets(sql) {
		return sql, nil
	}

	return sql, params
}

func touchesSecrets(sql string) bool {
	for _, column := range secretColumns {
		if strings.Contains(sql, column) {
			return true
		}
	}

	return false
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var (
		level slog.Level
		msg   string
		extra slog.Attr
	)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		level, msg, extra = slog.LevelError, "query failed", slog.String("error", err.Error())
	case l.slowQuery > 0 && elapsed > l.slowQuery && l.level >= logger.Warn:
		level, msg, extra = slog.LevelWarn, "slow query", slog.Duration("threshold", l.slowQuery)
	case l.level >= logger.Info:
		level, msg = slog.LevelInfo, "query"
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}
	l.log.LogAttrs(ctx, level, msg, attrs...)
}
