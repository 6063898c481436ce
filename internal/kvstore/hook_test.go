package kvstore

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestCommandLoggerSlowCommands(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := newCommandLogger(&logger, 10*time.Millisecond, false)

	h.record(context.Background(), "get", 1, time.Millisecond, nil)
	if buf.Len() != 0 {
		t.Fatalf("fast command logged: %s", buf.String())
	}

	h.record(context.Background(), "set", 1, 20*time.Millisecond, nil)
	if !strings.Contains(buf.String(), `"level":"warn"`) || !strings.Contains(buf.String(), `"command":"set"`) {
		t.Fatalf("slow command not logged at warn: %s", buf.String())
	}
}

func TestCommandLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := newCommandLogger(&logger, 0, true)

	h.record(context.Background(), "get", 1, time.Millisecond, redis.Nil)
	if strings.Contains(buf.String(), `"error"`) {
		t.Fatalf("redis.Nil logged as error: %s", buf.String())
	}

	buf.Reset()
	h.record(context.Background(), "del", 1, time.Millisecond, errors.New("connection reset"))
	if !strings.Contains(buf.String(), `"error":"connection reset"`) {
		t.Fatalf("error missing: %s", buf.String())
	}
}

func TestCommandLoggerPrefersRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	baseLogger := zerolog.New(&base)
	requestLogger := zerolog.New(&scoped).With().Str("request_id", "r-1").Logger()

	h := newCommandLogger(&baseLogger, 0, true)
	h.record(requestLogger.WithContext(context.Background()), "get", 1, time.Millisecond, nil)

	if base.Len() != 0 {
		t.Fatalf("base logger used: %s", base.String())
	}
	if !strings.Contains(scoped.String(), `"request_id":"r-1"`) {
		t.Fatalf("request logger not used: %s", scoped.String())
	}
}
