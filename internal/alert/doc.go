// Package alert emails a notification when a server has issues.
//
// Dispatcher composes the message and hands it to a Sender. SMTPSender
// submits through a relay with mandatory STARTTLS and password login.
// Delivery failures are printed and logged, never returned, so one bad
// alert cannot stop the remaining servers from being checked.
package alert
