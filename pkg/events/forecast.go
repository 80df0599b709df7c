package events

import "time"

// Forecast is the domain entity carried by forecast lifecycle events.
type Forecast struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	TemperatureC int       `json:"temperature_c"`
	Summary      string    `json:"summary"`
}

// TemperatureF converts the stored Celsius value for display surfaces.
func (f Forecast) TemperatureF() int {
	return 32 + int(float64(f.TemperatureC)/0.5556)
}

// ForecastCreated is published after a forecast has been stored.
type ForecastCreated struct {
	Forecast      Forecast
	CorrelationID string
}

func (ForecastCreated) EventName() string { return "forecast.created" }

// ForecastUpdated is published after an existing forecast has been changed.
type ForecastUpdated struct {
	Forecast      Forecast
	CorrelationID string
}

func (ForecastUpdated) EventName() string { return "forecast.updated" }

// ForecastDeleted is published after a forecast has been removed.
type ForecastDeleted struct {
	ID            string
	CorrelationID string
}

func (ForecastDeleted) EventName() string { return "forecast.deleted" }
