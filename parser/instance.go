package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"courier-scheduler/errors"
	"courier-scheduler/models"
)

// NewInstance derives the fixed per-run parameters from a validated raw
// payload and the run configuration: geography lookups, demand aggregates,
// hiring bounds, the shift partition and the outsourcing unit cost. The
// result is deterministic for identical inputs and read-only afterwards.
func NewInstance(raw *models.RawInstance, cfg models.Config) (*models.Instance, error) {
	inst := &models.Instance{
		DemandBaseline: raw.DemandBaseline,
		DemandType:     raw.DemandType,
		NumPeriods:     raw.NumTimeIntervals,
		NumScenarios:   raw.NumScenarios,
		RegionAreas:    make(map[string][]string),
		AreaRegion:     make(map[string]string),
		Demand:         make(map[models.DemandKey]float64),
		Required:       make(map[models.DemandKey]float64),
	}

	for _, region := range raw.Geography.City.Regions {
		inst.Regions = append(inst.Regions, region.ID)
		for _, area := range region.Areas {
			inst.Areas = append(inst.Areas, area.ID)
			inst.RegionAreas[region.ID] = append(inst.RegionAreas[region.ID], area.ID)
			inst.AreaRegion[area.ID] = region.ID
		}
	}

	for _, scenario := range raw.Scenarios {
		for _, data := range scenario.Data {
			for theta, d := range data.Demand {
				inst.Demand[models.DemandKey{Scenario: scenario.ScenarioNum, Area: data.AreaID, Period: theta}] = d
			}
			for theta, m := range data.RequiredCouriers {
				inst.Required[models.DemandKey{Scenario: scenario.ScenarioNum, Area: data.AreaID, Period: theta}] = m
			}
		}
	}

	deriveBounds(inst, cfg)

	shifts, err := shiftPartition(inst.NumPeriods)
	if err != nil {
		return nil, err
	}
	inst.Shifts = shifts
	inst.ShiftLength = len(shifts[0])

	inst.OutsourcingCost = models.CostPerCourierAndPeriod * cfg.OutsourcingCostMultiplier

	inst.BaseName = strings.TrimSuffix(filepath.Base(cfg.InstancePath), filepath.Ext(cfg.InstancePath))
	inst.City, _, _ = strings.Cut(inst.BaseName, "_")
	inst.Name = fmt.Sprintf("%s_oc=%v_rm=%v_gm=%v",
		inst.BaseName, cfg.OutsourcingCostMultiplier, cfg.RegionalMultiplier, cfg.GlobalMultiplier)

	return inst, nil
}

// deriveBounds computes the regional and global hiring caps. Double
// averaging (first across scenarios, then across periods) insulates the caps
// from scenario noise before the multipliers scale them.
func deriveBounds(inst *models.Instance, cfg models.Config) {
	mhat1 := make(map[models.DemandKey]float64, len(inst.Areas)*inst.NumPeriods)
	for _, a := range inst.Areas {
		for theta := 0; theta < inst.NumPeriods; theta++ {
			sum := 0.0
			for s := 0; s < inst.NumScenarios; s++ {
				sum += inst.Required[models.DemandKey{Scenario: s, Area: a, Period: theta}]
			}
			mhat1[models.DemandKey{Area: a, Period: theta}] = sum / float64(inst.NumScenarios)
		}
	}

	mhat2 := make(map[string]float64, len(inst.Areas))
	for _, a := range inst.Areas {
		sum := 0.0
		for theta := 0; theta < inst.NumPeriods; theta++ {
			sum += mhat1[models.DemandKey{Area: a, Period: theta}]
		}
		mhat2[a] = sum / float64(inst.NumPeriods)
	}

	inst.UBReg = make(map[string]int, len(inst.Regions))
	total := 0
	for _, region := range inst.Regions {
		sum := 0.0
		for _, a := range inst.RegionAreas[region] {
			sum += mhat2[a]
		}
		inst.UBReg[region] = int(cfg.RegionalMultiplier * sum)
		total += inst.UBReg[region]
	}
	inst.UBGlobal = int(cfg.GlobalMultiplier * float64(total))
}

// shiftPartition splits the period range into contiguous shifts. Only the
// 8-period, two-shifts-of-four layout has a defined rule; any other period
// count is an unsupported configuration rather than a guessed split.
func shiftPartition(numPeriods int) ([][]int, error) {
	if numPeriods != 8 {
		return nil, &errors.UnsupportedConfigurationError{NumPeriods: numPeriods}
	}
	shifts := [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}

	next := 0
	for _, shift := range shifts {
		for _, theta := range shift {
			if theta != next {
				return nil, errors.ErrShiftPartition
			}
			next++
		}
	}
	if next != numPeriods {
		return nil, errors.ErrShiftPartition
	}

	return shifts, nil
}
