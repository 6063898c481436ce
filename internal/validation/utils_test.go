package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/product-cache/internal/errs"
)

type renameRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Kind  string `json:"kind" validate:"omitempty,oneof=book film"`
	Count int    `json:"count" validate:"lte=10"`
}

func (r *renameRequest) Validate() error {
	return validator.New().Struct(r)
}

type evenRequest struct {
	N int `json:"n"`
}

func (r *evenRequest) Validate() error {
	if r.N%2 != 0 {
		return CustomValidationErrors{{Field: "n", Message: "must be even"}}
	}
	return nil
}

type opaqueRequest struct{}

func (r *opaqueRequest) Validate() error {
	return errors.New("payload rejected")
}

func newContext(body, contentType string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T: %v", err, err)
	}
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	req := &renameRequest{}
	if err := BindAndValidate(newContext(`{"name":"lamp","kind":"book"}`, echo.MIMEApplicationJSON), req); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if req.Name != "lamp" {
		t.Fatalf("name = %q", req.Name)
	}
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	tests := []struct {
		body  string
		field string
		msg   string
	}{
		{`{}`, "name", "is required"},
		{`{"name":"ab"}`, "name", "must be at least 3 characters"},
		{`{"name":"abc","kind":"song"}`, "kind", "must be one of: book film"},
		{`{"name":"abc","count":11}`, "count", "must not exceed 10"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body, echo.MIMEApplicationJSON), &renameRequest{})

			httpErr := asHTTPError(t, err)
			if httpErr.Status != http.StatusBadRequest || !httpErr.Override {
				t.Fatalf("got %+v", httpErr)
			}
			if len(httpErr.Errors) != 1 {
				t.Fatalf("errors = %+v", httpErr.Errors)
			}
			if httpErr.Errors[0].Field != tt.field || httpErr.Errors[0].Error != tt.msg {
				t.Fatalf("got %+v, want %s %q", httpErr.Errors[0], tt.field, tt.msg)
			}
		})
	}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	httpErr := asHTTPError(t, BindAndValidate(newContext(`{"n":3}`, echo.MIMEApplicationJSON), &evenRequest{}))
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Error != "must be even" {
		t.Fatalf("errors = %+v", httpErr.Errors)
	}

	httpErr = asHTTPError(t, BindAndValidate(newContext(`{}`, echo.MIMEApplicationJSON), &opaqueRequest{}))
	if httpErr.Errors != nil || !strings.Contains(httpErr.Message, "payload rejected") {
		t.Fatalf("got %+v", httpErr)
	}
}

func TestBindAndValidateBindFailures(t *testing.T) {
	httpErr := asHTTPError(t, BindAndValidate(newContext(`{"name":`, echo.MIMEApplicationJSON), &renameRequest{}))
	if httpErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", httpErr.Status)
	}

	for _, contentType := range []string{echo.MIMETextPlain, ""} {
		httpErr = asHTTPError(t, BindAndValidate(newContext(`{"name":"lamp"}`, contentType), &renameRequest{}))
		if httpErr.Status != http.StatusBadRequest {
			t.Fatalf("content type %q: status = %d", contentType, httpErr.Status)
		}
		if httpErr.Message != "Content-Type must be application/json" {
			t.Fatalf("content type %q: message = %q", contentType, httpErr.Message)
		}
	}
}
