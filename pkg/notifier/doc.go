// Package notifier holds the publish-site helpers services call after a
// state change commits or fails. The Notifier stamps business events with
// time and correlation id; the Reporter converts explicit Failure values
// into ErrorOccurred events, dropping reports addressed to nobody.
//
// Both types publish and return immediately. Whatever happens downstream
// stays downstream: a publish never fails the business operation it follows.
package notifier
