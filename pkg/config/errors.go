package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be read
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrReadingValidations is returned when a validations file cannot be read
	ErrReadingValidations = errors.New("failed to read validations file")

	// ErrParsingValidations is returned when a validations document is malformed
	ErrParsingValidations = errors.New("failed to parse validations")

	// ErrUnsupportedFormat is returned for validations files that are neither YAML nor JSON
	ErrUnsupportedFormat = errors.New("unsupported validations format")

	// ErrInvalidConfig is returned when loaded values fail a sanity check
	ErrInvalidConfig = errors.New("invalid configuration")
)
