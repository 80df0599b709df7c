package events

import "time"

// EmailSent is published after a transactional email has been handed to the
// delivery provider.
type EmailSent struct {
	Recipient     string
	Subject       string
	Tag           string
	SentAt        time.Time
	CorrelationID string
}

func (EmailSent) EventName() string { return "email.sent" }

// VerificationEmailSent is published after an address-verification email has
// been handed to the delivery provider.
type VerificationEmailSent struct {
	Recipient     string
	Message       string
	SentAt        time.Time
	CorrelationID string
}

func (VerificationEmailSent) EventName() string { return "email.verification_sent" }
