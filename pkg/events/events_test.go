package events_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

func TestNewCorrelationID(t *testing.T) {
	t.Parallel()

	id := events.NewCorrelationID()
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, events.NewCorrelationID())
}

func TestForecast_TemperatureF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		celsius    int
		fahrenheit int
	}{
		{celsius: 0, fahrenheit: 32},
		{celsius: 100, fahrenheit: 211},
		{celsius: -20, fahrenheit: -3},
		{celsius: 25, fahrenheit: 76},
	}

	for _, tt := range tests {
		f := events.Forecast{TemperatureC: tt.celsius}
		assert.Equal(t, tt.fahrenheit, f.TemperatureF(), "celsius=%d", tt.celsius)
	}
}

func TestFailure_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	f := events.NewFailure(events.KindDatabase, "create", "forecast", "f1", cause)

	assert.ErrorIs(t, f, cause)
	assert.Contains(t, f.Error(), "database")
	assert.Contains(t, f.Error(), "create")
	assert.Contains(t, f.Error(), "forecast")
}

func TestFailure_Message(t *testing.T) {
	t.Parallel()

	withCause := events.NewFailure(events.KindValidation, "update", "forecast", "f1", errors.New("summary is required"))
	assert.Equal(t, "summary is required", withCause.Message())

	withoutCause := events.NewFailure(events.KindNotFound, "delete", "forecast", "f1", nil)
	assert.Equal(t, "not_found error", withoutCause.Message())
}

func TestNewFailure_DefaultsToUnknownKind(t *testing.T) {
	t.Parallel()

	f := events.NewFailure("", "create", "forecast", "", nil)
	assert.Equal(t, events.KindUnknown, f.Kind)
}

func TestEventNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event events.Event
		name  string
	}{
		{events.UserRegistered{}, "user.registered"},
		{events.UserLoggedIn{}, "user.loggedin"},
		{events.UserLoggedOut{}, "user.loggedout"},
		{events.SessionCreated{}, "session.created"},
		{events.SessionRevoked{}, "session.revoked"},
		{events.APIKeyCreated{}, "apikey.created"},
		{events.APIKeyRevoked{}, "apikey.revoked"},
		{events.UserRoleChanged{}, "user.rolechanged"},
		{events.UserClaimChanged{}, "user.claimchanged"},
		{events.EmailSent{}, "email.sent"},
		{events.VerificationEmailSent{}, "email.verification_sent"},
		{events.ForecastCreated{}, "forecast.created"},
		{events.ForecastUpdated{}, "forecast.updated"},
		{events.ForecastDeleted{}, "forecast.deleted"},
		{events.ErrorOccurred{}, "error.occurred"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.event.EventName())
	}
}
