// Package metrics exposes Prometheus collectors for the event fabric. The
// Dispatch type plugs into the dispatcher's metrics hook and labels every
// observation with event and handler name, so per-adapter failure rates and
// latency are visible without log spelunking.
package metrics
