// Package mailer delivers cached analysis reports by email.
//
// The send command looks a report up by token, composes the same
// markdown document the --markdown flag prints, and hands it to a
// Mailer. The SMTP implementation is the only one today; the interface
// exists so the delivery flow can be tested without a relay.
package mailer
