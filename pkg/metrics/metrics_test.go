package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/metrics"
)

func TestDispatch_Collectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewDispatch(reg)

	m.EventPublished("forecast.created")
	m.EventPublished("forecast.created")
	m.EventPublished("session.revoked")
	m.HandlerFailed("forecast.created", "realtime.ForecastHandler")
	m.HandlerDuration("forecast.created", "realtime.ForecastHandler", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			key := f.GetName()
			for _, label := range metric.GetLabel() {
				key += "|" + label.GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				byName[key] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				byName[key] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(t, 2.0, byName["notifykit_dispatch_events_published_total|forecast.created"])
	assert.Equal(t, 1.0, byName["notifykit_dispatch_events_published_total|session.revoked"])
	assert.Equal(t, 1.0, byName["notifykit_dispatch_handler_failures_total|forecast.created|realtime.ForecastHandler"])
	assert.Equal(t, 1.0, byName["notifykit_dispatch_handler_duration_seconds|forecast.created|realtime.ForecastHandler"])
}
