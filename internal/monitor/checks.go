package monitor

import (
	"math"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/monitor/parsers"
)

// Remote commands. Each prints a single value on one line.
const (
	DiskCommand   = `df -h / | awk 'NR==2 {print $5}'`
	CPUCommand    = `echo $(cat /proc/loadavg | awk '{print $1}') $(nproc)`
	MemoryCommand = `free | awk 'NR==2 {printf "%.0f", ($3/$2)*100}'`
)

// PercentUnit is the unit every built-in check reports in.
const PercentUnit = "%"

// Check pairs a remote command with the parser for its output.
type Check struct {
	Metric  Metric
	Command string
	Unit    string
	// Precision is the number of decimals kept in the reported value.
	// Classification always uses the unrounded value.
	Precision int
	Parse     func(raw string) (float64, error)
	Threshold func(config.Thresholds) int
}

// DefaultChecks returns the disk, cpu, and memory checks in run order.
func DefaultChecks() []Check {
	return []Check{
		{
			Metric:    MetricDisk,
			Command:   DiskCommand,
			Unit:      PercentUnit,
			Parse:     intParser(parsers.ParseDiskPercent),
			Threshold: func(t config.Thresholds) int { return t.Disk },
		},
		{
			Metric:    MetricCPU,
			Command:   CPUCommand,
			Unit:      PercentUnit,
			Precision: 2,
			Parse:     parsers.ParseLoadPerCore,
			Threshold: func(t config.Thresholds) int { return t.CPU },
		},
		{
			Metric:    MetricMemory,
			Command:   MemoryCommand,
			Unit:      PercentUnit,
			Parse:     intParser(parsers.ParseMemoryPercent),
			Threshold: func(t config.Thresholds) int { return t.Memory },
		},
	}
}

// Evaluate parses raw command output and classifies it against thresholds.
func (c Check) Evaluate(raw string, thresholds config.Thresholds) (Reading, error) {
	v, err := c.Parse(raw)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Name:  c.Metric,
		Value: round(v, c.Precision),
		Unit:  c.Unit,
		State: Classify(v, c.Threshold(thresholds)),
	}, nil
}

func intParser(parse func(string) (int, error)) func(string) (float64, error) {
	return func(raw string) (float64, error) {
		v, err := parse(raw)
		return float64(v), err
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
