// Package storeerr handles errors coming back from the key-value store.
//
// It classifies go-redis errors (missing keys, server replies, dial and
// read failures) and converts them into client-facing errs.HTTPError values,
// so a missing product becomes a 404 while every transport problem stays an
// opaque 500.
package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"
)

// Code is the category a store error falls into.
type Code string

const (
	// Other is anything not recognised below.
	Other Code = "other"
	// KeyNotFound is the go-redis redis.Nil reply.
	KeyNotFound Code = "key_not_found"
	// ServerError is an error reply sent by the store (e.g. WRONGTYPE).
	ServerError Code = "server_error"
	// Timeout covers context deadlines and network timeouts.
	Timeout Code = "timeout"
	// ConnectionFailure covers dial errors and closed clients.
	ConnectionFailure Code = "connection_failure"
)

// Error is a store error annotated with the entity and key it concerns.
type Error struct {
	Code   Code
	Entity string
	Key    string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Entity, e.Key, e.Code, e.driverErr)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Wrap annotates a go-redis error with the entity and key of the command
// that produced it. A nil err stays nil.
func Wrap(entity, key string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:      Classify(err),
		Entity:    entity,
		Key:       key,
		driverErr: err,
	}
}

// ErrCode reports the Code of an already wrapped error, or Other.
func ErrCode(err error) Code {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return Other
}

// Classify inspects a raw go-redis error.
func Classify(err error) Code {
	if errors.Is(err, redis.Nil) {
		return KeyNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Timeout
		}
		return ConnectionFailure
	}

	if errors.Is(err, redis.ErrClosed) {
		return ConnectionFailure
	}

	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return ServerError
	}

	return Other
}
