// Package ui renders vitals' console output.
//
// Output is line-oriented: a run header, one line per metric, notes about
// alerts, and a closing summary. Styling uses Lip Gloss with ANSI colors.
// Call ConfigureColors once at startup; it falls back to plain text when
// stdout is not a terminal, NO_COLOR is set, or --no-color is passed.
//
// # Symbols
//
//	SymbolSuccess (checkmark) - metric within threshold
//	SymbolFail    (X)         - metric over threshold, or check failed
//	SymbolWarning (triangle)  - skipped or interrupted work
package ui
