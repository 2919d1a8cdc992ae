package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/validate/pkg/binder"
	"github.com/dmitrymomot/validate/pkg/htmlform"
	"github.com/dmitrymomot/validate/pkg/store"
	"github.com/dmitrymomot/validate/pkg/validator"
)

var (
	// ErrNilStore indicates New was called without a form store
	ErrNilStore = errors.New("handler: nil form store")
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrInvalidRequest indicates a request body that cannot describe a form
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRequestTooLarge indicates a form description body over the size limit
	ErrRequestTooLarge = errors.New("request body too large")
)

// HTTPError is an error with an HTTP status and a machine-readable key.
type HTTPError struct {
	Code int
	Key  string
	Err  error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e HTTPError) Unwrap() error {
	return e.Err
}

// classify maps package errors to an HTTP status and error key.
func classify(err error) (int, string) {
	var httpErr HTTPError
	var unknownRule *validator.UnknownRuleError
	var configErr *validator.ConfigurationError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Key
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "form_not_found"
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge, "request_too_large"
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, htmlform.ErrParseHTML),
		errors.Is(err, validator.ErrEmptyFieldName),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.As(err, &unknownRule):
		return http.StatusInternalServerError, "unknown_rule"
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, "configuration_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
