package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "notifykit"

// Dispatch implements the dispatcher metrics hook with Prometheus
// collectors: events published, handler failures, and handler latency, all
// labeled by event and handler name.
type Dispatch struct {
	eventsPublished *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
}

// NewDispatch registers the dispatch collectors with reg. Pass
// prometheus.DefaultRegisterer in production wiring and a fresh
// prometheus.NewRegistry in tests.
func NewDispatch(reg prometheus.Registerer) *Dispatch {
	factory := promauto.With(reg)
	return &Dispatch{
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "events_published_total",
				Help:      "Total number of events published to the dispatcher by event name",
			},
			[]string{"event"},
		),
		handlerFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "handler_failures_total",
				Help:      "Total number of handler invocations that returned an error or panicked",
			},
			[]string{"event", "handler"},
		),
		handlerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "handler_duration_seconds",
				Help:      "Handler invocation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"event", "handler"},
		),
	}
}

// EventPublished counts one published event.
func (m *Dispatch) EventPublished(eventName string) {
	m.eventsPublished.WithLabelValues(eventName).Inc()
}

// HandlerFailed counts one failed handler invocation.
func (m *Dispatch) HandlerFailed(eventName, handlerName string) {
	m.handlerFailures.WithLabelValues(eventName, handlerName).Inc()
}

// HandlerDuration records one handler invocation's latency.
func (m *Dispatch) HandlerDuration(eventName, handlerName string, d time.Duration) {
	m.handlerDuration.WithLabelValues(eventName, handlerName).Observe(d.Seconds())
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
