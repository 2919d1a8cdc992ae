package store

import "errors"

var (
	ErrNotFound      = errors.New("form instance not found")
	ErrInvalidRecord = errors.New("invalid form instance record")
	ErrEncodeRecord  = errors.New("failed to encode form instance record")
	ErrDecodeRecord  = errors.New("failed to decode form instance record")

	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
