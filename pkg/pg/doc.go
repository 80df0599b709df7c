// Package pg provides a thin layer over the pgx/v5 driver: environment-driven
// pool configuration, a retrying Connect, a health check closure, and error
// classification helpers. The audit storage builds on the pool it returns.
//
// All configuration values come from environment variables so they can be
// tuned per environment without code changes; see the field tags in Config
// for variable names and defaults.
package pg
