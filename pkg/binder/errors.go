package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrInvalidTarget        = errors.New("target must be a struct or pointer to struct")
	ErrInvalidTag           = errors.New("invalid input tag")
)
