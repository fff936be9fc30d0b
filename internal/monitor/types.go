package monitor

import (
	"strconv"

	"github.com/rileyhilliard/vitals/internal/errors"
)

// Status classifies a single result.
type Status string

const (
	StatusOK       Status = "OK"
	StatusCritical Status = "CRITICAL"
	StatusError    Status = "ERROR"
)

// Metric names what a result measures.
type Metric string

const (
	MetricDisk       Metric = "disk"
	MetricCPU        Metric = "cpu"
	MetricMemory     Metric = "memory"
	MetricConnection Metric = "connection"
)

// Result is one line of a server report: either a Reading or a
// ConnectionFailure.
type Result interface {
	Metric() Metric
	Status() Status
	// Display is the value with its unit, e.g. "92%", or the failure text.
	Display() string
}

// Reading is a successfully parsed and classified metric.
type Reading struct {
	Name  Metric
	Value float64
	Unit  string
	State Status
}

func (r Reading) Metric() Metric { return r.Name }
func (r Reading) Status() Status { return r.State }

func (r Reading) Display() string {
	return FormatValue(r.Value) + r.Unit
}

// ConnectionFailure records why a server's checks stopped early.
// Its status is always ERROR.
type ConnectionFailure struct {
	Err error
}

func (f ConnectionFailure) Metric() Metric { return MetricConnection }
func (f ConnectionFailure) Status() Status { return StatusError }

func (f ConnectionFailure) Display() string {
	return errors.Brief(f.Err)
}

// Classify returns CRITICAL when value is at or above threshold, else OK.
func Classify(value float64, threshold int) Status {
	if value >= float64(threshold) {
		return StatusCritical
	}
	return StatusOK
}

// IsIssue reports whether a result should be alerted on.
func IsIssue(r Result) bool {
	s := r.Status()
	return s == StatusCritical || s == StatusError
}

// FormatValue prints a value with the fewest digits that represent it,
// so 42 prints as "42" and 37.5 as "37.5".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	_ Result = Reading{}
	_ Result = ConnectionFailure{}
)
