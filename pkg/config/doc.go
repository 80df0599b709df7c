// Package config provides a type-safe, cached loader for configuration
// structs populated from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process, then env.Parse fills any
// struct based on `env` field tags. Each configuration type is parsed at
// most once and cached by type name, so packages can call Load for their own
// Config without coordinating.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
// Sentinel errors (ErrParsingConfig, ErrNilPointer, ...) support errors.Is
// classification. Tests that mutate the environment can call ResetCache.
package config
