package scenario

import (
	"fmt"
	"log"
)

// AssertionMode selects how expectation mismatches are reported.
type AssertionMode int

const (
	// AssertionStrict fails the scenario on the first mismatch.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs mismatches and keeps going.
	AssertionLogOnly
)

// Assertions reports expectation results for a run.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf always returns an error; it is for failures no mode can ignore.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a mismatch. Strict mode returns it; log-only mode logs it.
func (a Assertions) Assertf(format string, args ...any) error {
	if a.Mode == AssertionStrict {
		return fmt.Errorf(format, args...)
	}
	if a.Logger != nil {
		a.Logger.Printf("assertion failed: "+format, args...)
	}
	return nil
}
