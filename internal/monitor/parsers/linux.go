// Package parsers turns the raw text of the health check commands into numbers.
// Parsers are pure: they never touch the network and never coerce bad input to
// zero. Anything unexpected is reported as ErrUnexpectedOutput.
package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnexpectedOutput marks command output that doesn't have the expected shape.
var ErrUnexpectedOutput = errors.New("unexpected command output")

// ParseDiskPercent parses the Use% column of df for one filesystem, e.g. "92%".
func ParseDiskPercent(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	return parsePercent("disk usage", raw, s)
}

// ParseMemoryPercent parses a pre-computed used/total percentage, e.g. "85".
func ParseMemoryPercent(raw string) (int, error) {
	return parsePercent("memory usage", raw, strings.TrimSpace(raw))
}

// ParseLoadPerCore parses "<1-minute load average> <core count>", e.g. "2.00 4",
// and returns load/cores*100, unrounded.
//
// This is load relative to capacity, not CPU busy time. It exceeds 100 when
// the run queue is longer than the core count.
func ParseLoadPerCore(raw string) (float64, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: want \"<load> <cores>\", got %q", ErrUnexpectedOutput, raw)
	}

	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || load < 0 {
		return 0, fmt.Errorf("%w: load average %q is not a number", ErrUnexpectedOutput, fields[0])
	}

	cores, err := strconv.Atoi(fields[1])
	if err != nil || cores < 1 {
		return 0, fmt.Errorf("%w: core count %q is not a positive integer", ErrUnexpectedOutput, fields[1])
	}

	return load / float64(cores) * 100, nil
}

func parsePercent(what, raw, s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty %s", ErrUnexpectedOutput, what)
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s %q is not a whole percentage", ErrUnexpectedOutput, what, raw)
	}
	return v, nil
}
