package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/product-cache/internal/errs"
)

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. PRODUCT_NOT_FOUND.
func generateErrorCode(entity string, code Code) string {
	if entity == "" {
		entity = "record"
	}

	action := "ERROR"
	switch code {
	case KeyNotFound:
		action = "NOT_FOUND"
	case Timeout:
		action = "TIMEOUT"
	case ConnectionFailure:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", errs.MakeUpperCaseWithUnderscores(entity), action)
}

// humanizeText converts "product_variant" into "Product Variant".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a store error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - KeyNotFound: 404 "<Entity> not found"
//   - anything else: generic 500, details stay in the logs
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		if storeErr.Code == KeyNotFound {
			code := generateErrorCode(storeErr.Entity, storeErr.Code)
			entity := humanizeText(storeErr.Entity)
			if entity == "" {
				entity = "Record"
			}
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entity), true, &code)
		}
		return errs.NewInternalServerError()
	}

	if Classify(err) == KeyNotFound {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
