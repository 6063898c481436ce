package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// commandLogger is a go-redis hook that logs store commands through zerolog.
//
// Commands slower than slowThreshold are logged at warn level. With verbose
// set (local env) every command is logged at debug level as well.
type commandLogger struct {
	logger        *zerolog.Logger
	slowThreshold time.Duration
	verbose       bool
}

var _ redis.Hook = (*commandLogger)(nil)

func newCommandLogger(logger *zerolog.Logger, slowThreshold time.Duration, verbose bool) *commandLogger {
	return &commandLogger{
		logger:        logger,
		slowThreshold: slowThreshold,
		verbose:       verbose,
	}
}

func (h *commandLogger) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *commandLogger) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.record(ctx, cmd.Name(), 1, time.Since(start), err)
		return err
	}
}

func (h *commandLogger) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.record(ctx, "pipeline", len(cmds), time.Since(start), err)
		return err
	}
}

func (h *commandLogger) record(ctx context.Context, name string, count int, took time.Duration, err error) {
	// Prefer the request-scoped logger so command lines carry request_id.
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}

	var event *zerolog.Event
	switch {
	case h.slowThreshold > 0 && took >= h.slowThreshold:
		event = logger.Warn()
	case h.verbose:
		event = logger.Debug()
	default:
		return
	}

	// redis.Nil is a normal "no such key" reply, not a failure.
	if err != nil && !errors.Is(err, redis.Nil) {
		event = event.Err(err)
	}

	event.
		Str("command", name).
		Int("commands", count).
		Dur("duration", took).
		Msg("redis command")
}

