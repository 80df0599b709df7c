// Package mailer delivers transactional email and bridges delivery into the
// event fabric. The Sender interface abstracts the provider: Postmark in
// production, DevSender writing files to disk during local development.
//
// The Handler is the fabric-facing side: it reacts to account lifecycle
// events by sending mail and publishing the follow-up events
// (VerificationEmailSent, EmailSent) that drive the real-time notice shown
// to the user and the audit trail.
package mailer
