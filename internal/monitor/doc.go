// Package monitor runs health checks against remote servers.
//
// A check is a fixed shell command plus a pure parser (see the parsers
// subpackage). Checker runs the disk, cpu, and memory checks against one
// server in order and stops at the first failure, returning a Report.
// Runner walks the configured servers one at a time, prints a line per
// result, and hands any issues to an Alerter.
//
// # Results
//
// Every outcome is a Result:
//
//	Reading           - a parsed metric classified OK or CRITICAL
//	ConnectionFailure - the pipeline stopped early; always ERROR
//
// A metric is CRITICAL when its value is greater than or equal to the
// configured threshold.
//
// # Execution
//
// Servers are checked sequentially and each command opens its own SSH
// connection. Cancelling the context stops the run before the next server.
package monitor
