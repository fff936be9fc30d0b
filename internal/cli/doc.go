// Package cli implements the vitals command-line interface.
//
// The root command takes a single config file and runs one pass of health
// checks over every configured server:
//
//	vitals <config.json>            - check all servers, email alerts
//	vitals validate <config.json>   - load and validate the config only
//	vitals version                  - print build information
//
// Exit status is 0 after a completed run, whatever the servers reported.
// It is 1 only for usage mistakes and configuration errors.
package cli
