package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Metric within threshold
	SymbolFail    = "✗" // Metric over threshold, or the check failed
	SymbolWarning = "⚠" // Something was skipped or interrupted
	SymbolBullet  = "•"
)
