// Package events defines the typed fact records published through the
// notification fabric, along with the error taxonomy used to classify domain
// failures.
//
// Every event is an immutable value created at the moment the triggering
// action completes (or fails, for error events). Events carry only the facts
// needed by subscribers: actor and target identifiers, timestamps and an
// explicit correlation id threading one causal chain through the logs.
//
// # Usage
//
//	evt := events.UserRegistered{
//	    UserID:        user.ID,
//	    Email:         user.Email,
//	    UserName:      user.Name,
//	    RegisteredAt:  time.Now(),
//	    IPAddress:     clientIP,
//	    CorrelationID: events.NewCorrelationID(),
//	}
//	publisher.Publish(ctx, evt)
//
// Domain failures are expressed as explicit Failure values rather than
// panics; the publish helpers in pkg/notifier convert them into ErrorOccurred
// events for uniform client notification.
package events
