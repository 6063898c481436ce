package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/product-cache/internal/errs"
)

type replyError string

func (e replyError) Error() string { return string(e) }
func (replyError) RedisError()     {}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil reply", redis.Nil, KeyNotFound},
		{"wrapped nil reply", fmt.Errorf("get: %w", redis.Nil), KeyNotFound},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"dial refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ConnectionFailure},
		{"closed client", redis.ErrClosed, ConnectionFailure},
		{"server reply", replyError("WRONGTYPE Operation against a key holding the wrong kind of value"), ServerError},
		{"unknown", errors.New("boom"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	if Wrap("product", "1", nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}

	err := Wrap("product", "1", redis.Nil)
	if !errors.Is(err, redis.Nil) {
		t.Fatal("wrapped error lost redis.Nil")
	}
	if ErrCode(fmt.Errorf("lookup: %w", err)) != KeyNotFound {
		t.Fatalf("ErrCode() = %s", ErrCode(err))
	}
	if ErrCode(errors.New("plain")) != Other {
		t.Fatal("plain errors should classify as Other")
	}
}

func TestHandleError(t *testing.T) {
	t.Run("missing key becomes 404", func(t *testing.T) {
		err := HandleError(fmt.Errorf("lookup: %w", Wrap("product", "7", redis.Nil)))

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected *errs.HTTPError, got %T", err)
		}
		if httpErr.Status != http.StatusNotFound {
			t.Fatalf("status = %d", httpErr.Status)
		}
		if httpErr.Code != "PRODUCT_NOT_FOUND" {
			t.Fatalf("code = %s", httpErr.Code)
		}
		if httpErr.Message != "Product not found" {
			t.Fatalf("message = %s", httpErr.Message)
		}
	})

	t.Run("transport failure becomes opaque 500", func(t *testing.T) {
		cause := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused 10.0.0.1:6379")}
		err := HandleError(Wrap("product", "7", cause))

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected *errs.HTTPError, got %T", err)
		}
		if httpErr.Status != http.StatusInternalServerError {
			t.Fatalf("status = %d", httpErr.Status)
		}
		if httpErr.Message != http.StatusText(http.StatusInternalServerError) {
			t.Fatalf("500 leaked detail: %q", httpErr.Message)
		}
	})

	t.Run("unwrapped nil reply", func(t *testing.T) {
		var httpErr *errs.HTTPError
		if !errors.As(HandleError(redis.Nil), &httpErr) || httpErr.Status != http.StatusNotFound {
			t.Fatalf("expected 404, got %v", httpErr)
		}
	})

	t.Run("HTTPError passes through", func(t *testing.T) {
		in := errs.NewBadRequestError("nope", false, nil, nil)
		if HandleError(in) != error(in) {
			t.Fatal("HTTPError was re-wrapped")
		}
	})
}

func TestGenerateErrorCode(t *testing.T) {
	if got := generateErrorCode("", KeyNotFound); got != "RECORD_NOT_FOUND" {
		t.Fatalf("got %s", got)
	}
	if got := generateErrorCode("product", Timeout); got != "PRODUCT_TIMEOUT" {
		t.Fatalf("got %s", got)
	}
	if got := humanizeText("product_variant"); got != "Product Variant" {
		t.Fatalf("got %s", got)
	}
}
