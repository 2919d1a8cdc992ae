// Package config loads process configuration from the environment and
// explicit field validations from YAML or JSON files.
//
// Environment loading wraps github.com/joho/godotenv and
// github.com/caarlos0/env/v11: the default .env file is read once, each
// configuration type is parsed once and cached, and ResetCache forces a
// fresh parse in tests.
//
// Config holds the settings shared by the binaries:
//
//	VALIDATE_ENV               development | staging | production
//	VALIDATE_LOG_LEVEL         debug | info | warn | error
//	VALIDATE_LOG_FORMAT        json | text (defaults follow VALIDATE_ENV)
//	VALIDATE_VALIDATIONS_FILE  path to a YAML or JSON validations file
//	VALIDATE_HTTP_ADDR         listen address of formserver
//	VALIDATE_STORE             memory | redis
//	VALIDATE_STORE_CAPACITY    memory store size
//	VALIDATE_STATE_TTL         form instance expiry
//	REDIS_URL                  redis connection URL, plus REDIS_RETRY_* settings
//
// Example:
//
//	var cfg config.Config
//	config.MustLoad(&cfg)
//	validations, err := config.LoadValidations(cfg.ValidationsFile)
package config
