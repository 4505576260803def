package solver

import (
	"fmt"
	"os"

	"courier-scheduler/errors"
	"courier-scheduler/metrics"
	"courier-scheduler/models"

	"github.com/nextmv-io/sdk/mip"
)

// Solve builds the configured MILP variant over the instance, runs the
// external solver and extracts the results record. The call blocks until the
// solver returns a terminal status.
func Solve(cfg models.Config, inst *models.Instance) (*models.Results, error) {
	switch cfg.Model {
	case models.VariantBase:
		b := newBaseModel(inst)
		solution, err := optimize(b.m, cfg)
		if err != nil {
			return nil, err
		}
		return b.extract(cfg, solution), nil

	case models.VariantFixed:
		f := newFixedModel(inst)
		solution, err := optimize(f.m, cfg)
		if err != nil {
			return nil, err
		}
		return f.extract(cfg, solution), nil

	case models.VariantFlex:
		fl := newFlexModel(inst)
		solution, err := optimize(fl.m, cfg)
		if err != nil {
			return nil, err
		}
		return fl.extract(cfg, solution), nil

	case models.VariantPartflex:
		if cfg.MaxShiftStartPeriods <= 0 {
			return nil, &errors.ConfigurationError{Option: "max-n-shifts", Err: errors.ErrMissingMaxShifts}
		}
		p := newPartflexModel(inst, cfg.MaxShiftStartPeriods)
		solution, err := optimize(p.m, cfg)
		if err != nil {
			return nil, err
		}
		return p.extract(cfg, solution), nil

	default:
		return nil, &errors.ConfigurationError{Option: "model", Err: errors.ErrUnknownVariant}
	}
}

// optimize runs the HiGHS backend on the built model and ensures the
// termination is usable for extraction. An error or valueless termination is
// a solver failure; a feasible but non-optimal termination proceeds.
func optimize(m mip.Model, cfg models.Config) (mip.Solution, error) {
	milp, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, &errors.SolverFailureError{Model: string(cfg.Model), Err: err}
	}

	options := mip.NewSolveOptions()
	if cfg.TimeLimit > 0 {
		if err := options.SetMaximumDuration(cfg.TimeLimit); err != nil {
			return nil, &errors.SolverFailureError{Model: string(cfg.Model), Err: err}
		}
	}
	if err := options.SetMIPGapRelative(0); err != nil {
		return nil, &errors.SolverFailureError{Model: string(cfg.Model), Err: err}
	}
	options.SetVerbosity(mip.Off)

	solution, err := milp.Solve(options)
	if err != nil {
		return nil, &errors.SolverFailureError{Model: string(cfg.Model), Err: err}
	}
	if solution == nil || !solution.HasValues() {
		return nil, &errors.SolverFailureError{Model: string(cfg.Model), Err: errors.ErrNoSolution}
	}
	if !solution.IsOptimal() {
		fmt.Fprintf(os.Stderr, "warning: %s model terminated with a feasible but non-optimal solution\n", cfg.Model)
	}

	metrics.SolveDurationSeconds.Observe(solution.RunTime().Seconds())

	return solution, nil
}

func (b *baseModel) stats(solution mip.Solution) runStats {
	return runStats{
		Objective:   solution.ObjectiveValue(),
		Elapsed:     solution.RunTime().Seconds(),
		Variables:   b.size.variables,
		Constraints: b.size.constraints,
		Nonzeroes:   b.size.nonzeroes,
	}
}

func (b *baseModel) hiringValues(solution mip.Solution) map[areaPeriod]float64 {
	values := make(map[areaPeriod]float64, len(b.xKeys))
	for _, k := range b.xKeys {
		values[k] = solution.Value(b.x.Get(k))
	}
	return values
}

func (f *fixedModel) movementValues(solution mip.Solution) map[movement]float64 {
	values := make(map[movement]float64, len(f.yKeys))
	for _, k := range f.yKeys {
		values[k] = solution.Value(f.y.Get(k))
	}
	return values
}

func (fl *flexModel) startValues(solution mip.Solution) map[areaPeriod]float64 {
	values := make(map[areaPeriod]float64, len(fl.zKeys))
	for _, k := range fl.zKeys {
		values[k] = solution.Value(fl.zminus.Get(k))
	}
	return values
}

func (b *baseModel) extract(cfg models.Config, solution mip.Solution) *models.Results {
	return baseResults(b.inst, cfg, b.hiringValues(solution), b.stats(solution))
}

func (f *fixedModel) extract(cfg models.Config, solution mip.Solution) *models.Results {
	x := f.hiringValues(solution)
	results := baseResults(f.inst, cfg, x, f.stats(solution))

	moved := movementPct(f.inst, x, f.movementValues(solution))
	results.CourierMovedPct = &moved

	startPeriods := len(f.inst.Shifts)
	results.NShiftStartPeriods = &startPeriods

	return results
}

func (fl *flexModel) extract(cfg models.Config, solution mip.Solution) *models.Results {
	x := fl.hiringValues(solution)
	results := baseResults(fl.inst, cfg, x, fl.stats(solution))

	moved := movementPct(fl.inst, x, fl.movementValues(solution))
	results.CourierMovedPct = &moved

	starts, startsPct := shiftStartStats(fl.inst, fl.startValues(solution))
	results.PeriodsWithStart = &starts
	results.PeriodsWithStartPct = &startsPct

	return results
}
