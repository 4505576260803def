package errors

import "fmt"

// InputError wraps a specific error with context about which part of the
// instance payload is malformed or incomplete.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid instance input at %s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// UnsupportedConfigurationError reports an instance shape the shift partition
// logic has no rule for.
type UnsupportedConfigurationError struct {
	NumPeriods int
}

func (e *UnsupportedConfigurationError) Error() string {
	return fmt.Sprintf("fixed shifts are only implemented for 8 periods, got %d", e.NumPeriods)
}

// ConfigurationError reports a run configuration that cannot drive a solve,
// e.g. the partflex variant invoked without its shift-count cap.
type ConfigurationError struct {
	Option string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %v", e.Option, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// SolverFailureError reports that the external MILP solver terminated without
// a usable solution, so no results can be extracted.
type SolverFailureError struct {
	Model string
	Err   error
}

func (e *SolverFailureError) Error() string {
	return fmt.Sprintf("solver failure on %s model: %v", e.Model, e.Err)
}

func (e *SolverFailureError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrMalformedPayload    = fmt.Errorf("malformed JSON payload")
	ErrNoRegions           = fmt.Errorf("no regions declared")
	ErrNoAreas             = fmt.Errorf("region declares no areas")
	ErrDuplicateID         = fmt.Errorf("duplicate identifier")
	ErrInvalidPeriodCount  = fmt.Errorf("num_time_intervals must be positive")
	ErrInvalidScenarios    = fmt.Errorf("num_scenarios must be positive")
	ErrUnknownArea         = fmt.Errorf("scenario data references unknown area")
	ErrUnknownScenario     = fmt.Errorf("scenario number out of declared range")
	ErrLengthMismatch      = fmt.Errorf("series length disagrees with num_time_intervals")
	ErrMissingScenarioData = fmt.Errorf("missing demand data for scenario/area")
	ErrMissingMultiplier   = fmt.Errorf("multiplier not set")
	ErrMissingInstance     = fmt.Errorf("instance path not set")
	ErrMissingMaxShifts    = fmt.Errorf("max shift-start periods must be positive")
	ErrUnknownVariant      = fmt.Errorf("unknown model variant")
	ErrNoSolution          = fmt.Errorf("no usable solution returned")
	ErrShiftPartition      = fmt.Errorf("shift partition does not cover the period range")
)
