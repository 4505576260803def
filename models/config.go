package models

import (
	"math"
	"time"

	"courier-scheduler/errors"
)

// Config is the single run configuration, built once by the caller and
// passed down the pipeline. The three multipliers have no defaults and must
// be set explicitly.
type Config struct {
	Model        Variant
	InstancePath string

	OutsourcingCostMultiplier float64
	RegionalMultiplier        float64
	GlobalMultiplier          float64

	// MaxShiftStartPeriods caps the number of distinct shift-start periods;
	// required by the partflex variant only.
	MaxShiftStartPeriods int

	// OutputPath overrides the default results file name when non-empty.
	OutputPath string

	// TimeLimit is passed through to the solver; zero means no limit.
	TimeLimit time.Duration
}

// Validate checks the configuration before any instance derivation or model
// construction happens.
func (c Config) Validate() error {
	if !c.Model.Valid() {
		return &errors.ConfigurationError{Option: "model", Err: errors.ErrUnknownVariant}
	}
	if c.InstancePath == "" {
		return &errors.ConfigurationError{Option: "instance", Err: errors.ErrMissingInstance}
	}
	if math.IsNaN(c.OutsourcingCostMultiplier) {
		return &errors.ConfigurationError{Option: "outsourcing-cost-multiplier", Err: errors.ErrMissingMultiplier}
	}
	if math.IsNaN(c.RegionalMultiplier) {
		return &errors.ConfigurationError{Option: "regional-multiplier", Err: errors.ErrMissingMultiplier}
	}
	if math.IsNaN(c.GlobalMultiplier) {
		return &errors.ConfigurationError{Option: "global-multiplier", Err: errors.ErrMissingMultiplier}
	}
	if c.Model == VariantPartflex && c.MaxShiftStartPeriods <= 0 {
		return &errors.ConfigurationError{Option: "max-n-shifts", Err: errors.ErrMissingMaxShifts}
	}
	return nil
}
