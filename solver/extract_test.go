package solver

import (
	"testing"

	"courier-scheduler/models"

	"github.com/stretchr/testify/assert"
)

// singleAreaInstance is the smallest meaningful instance: one region, one
// area, 8 periods, one scenario, a constant requirement of 2 couriers
// serving a demand of 10 parcels per period.
func singleAreaInstance() *models.Instance {
	inst := &models.Instance{
		BaseName:       "milan_typical",
		Name:           "milan_typical_oc=0_rm=1_gm=1",
		City:           "milan",
		DemandBaseline: "typical",
		DemandType:     "uniform",
		NumPeriods:     8,
		NumScenarios:   1,
		Regions:        []string{"R1"},
		Areas:          []string{"A1"},
		RegionAreas:    map[string][]string{"R1": {"A1"}},
		AreaRegion:     map[string]string{"A1": "R1"},
		Demand:         make(map[models.DemandKey]float64),
		Required:       make(map[models.DemandKey]float64),
		UBReg:          map[string]int{"R1": 2},
		UBGlobal:       2,
		Shifts:         [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}},
		ShiftLength:    4,
	}
	for theta := 0; theta < inst.NumPeriods; theta++ {
		inst.Demand[models.DemandKey{Scenario: 0, Area: "A1", Period: theta}] = 10
		inst.Required[models.DemandKey{Scenario: 0, Area: "A1", Period: theta}] = 2
	}
	return inst
}

func constantHiring(inst *models.Instance, couriers float64) map[areaPeriod]float64 {
	x := make(map[areaPeriod]float64)
	for _, a := range inst.Areas {
		for theta := 0; theta < inst.NumPeriods; theta++ {
			x[areaPeriod{Area: a, Period: theta}] = couriers
		}
	}
	return x
}

func testRunConfig() models.Config {
	return models.Config{
		Model:                     models.VariantBase,
		InstancePath:              "/data/milan_typical.json",
		OutsourcingCostMultiplier: 0,
		RegionalMultiplier:        1,
		GlobalMultiplier:          1,
	}
}

func TestBaseResultsCostDecomposition(t *testing.T) {
	inst := singleAreaInstance()
	x := constantHiring(inst, 2)
	stats := runStats{Objective: 16, Elapsed: 0.25, Variables: 16, Constraints: 24, Nonzeroes: 40}

	results := baseResults(inst, testRunConfig(), x, stats)

	// Hiring exactly matches the requirement, so the whole objective is
	// hiring cost.
	assert.InDelta(t, 16.0, results.HiringCosts, 1e-9)
	assert.InDelta(t, 0.0, results.OutsourcingCosts, 1e-9)
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2, 2, 2}, results.HiredCouriers["A1"])

	assert.Equal(t, "milan_typical", results.Instance)
	assert.Equal(t, "milan", results.City)
	assert.Equal(t, models.VariantBase, results.Model)
	assert.Equal(t, 8, results.NumPeriods)
	assert.Equal(t, 1, results.NumScenarios)
	assert.Equal(t, 16, results.NVariables)
	assert.Equal(t, 24, results.NConstraints)
	assert.Equal(t, 40, results.NNonzeroes)
	assert.InDelta(t, 0.25, results.ElapsedTime, 1e-9)
}

func TestBaseResultsParcelEstimates(t *testing.T) {
	inst := singleAreaInstance()

	tests := map[string]struct {
		hired              float64
		expectedOutsourced float64
		expectedInhouse    float64
	}{
		// required=2, demand=10 in the single scenario.
		"FullyStaffed": {hired: 2, expectedOutsourced: 0, expectedInhouse: 10},
		"HalfStaffed":  {hired: 1, expectedOutsourced: 5, expectedInhouse: 5},
		"Unstaffed":    {hired: 0, expectedOutsourced: 10, expectedInhouse: 0},
		// Overstaffing clamps outsourcing at zero instead of going negative.
		"Overstaffed": {hired: 3, expectedOutsourced: 0, expectedInhouse: 15},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			x := constantHiring(inst, tc.hired)
			results := baseResults(inst, testRunConfig(), x, runStats{Objective: 8 * tc.hired})

			for theta := 0; theta < inst.NumPeriods; theta++ {
				assert.InDelta(t, tc.expectedOutsourced, results.OutsourcedParcels["A1"][theta], 1e-9)
				assert.InDelta(t, tc.expectedInhouse, results.InhouseParcels["A1"][theta], 1e-9)
			}
		})
	}
}

func TestParcelEstimatesPct(t *testing.T) {
	inst := singleAreaInstance()

	_, pct, _ := parcelEstimates(inst, constantHiring(inst, 1))
	for theta := 0; theta < inst.NumPeriods; theta++ {
		// Half of the required couriers hired: 50% outsourced.
		assert.InDelta(t, 50.0, pct["A1"][theta], 1e-9)
	}

	// Overstaffing clamps the percentage at zero.
	_, pct, _ = parcelEstimates(inst, constantHiring(inst, 3))
	for theta := 0; theta < inst.NumPeriods; theta++ {
		assert.Equal(t, 0.0, pct["A1"][theta])
	}
}

func TestBaseResultsZeroRequiredPeriod(t *testing.T) {
	inst := singleAreaInstance()
	// No scenario puts demand on period 3.
	inst.Required[models.DemandKey{Scenario: 0, Area: "A1", Period: 3}] = 0
	inst.Demand[models.DemandKey{Scenario: 0, Area: "A1", Period: 3}] = 7

	results := baseResults(inst, testRunConfig(), constantHiring(inst, 2), runStats{Objective: 16})

	assert.Equal(t, 0.0, results.OutsourcedParcels["A1"][3])
	assert.Equal(t, 0.0, results.InhouseParcels["A1"][3])
	assert.InDelta(t, 10.0, results.InhouseParcels["A1"][2], 1e-9)
}

func TestBaseResultsUtilization(t *testing.T) {
	inst := singleAreaInstance()

	results := baseResults(inst, testRunConfig(), constantHiring(inst, 2), runStats{Objective: 16})
	assert.InDelta(t, 100.0, results.RegionalHiredPct["R1"], 1e-9)
	assert.InDelta(t, 100.0, results.RegionalAvgHiredPct, 1e-9)
	assert.InDelta(t, 100.0, results.GlobalAvgHiredPct, 1e-9)

	results = baseResults(inst, testRunConfig(), constantHiring(inst, 1), runStats{Objective: 8})
	assert.InDelta(t, 50.0, results.RegionalHiredPct["R1"], 1e-9)
	assert.InDelta(t, 50.0, results.GlobalAvgHiredPct, 1e-9)
}

func TestBaseResultsZeroBounds(t *testing.T) {
	inst := singleAreaInstance()
	inst.UBReg["R1"] = 0
	inst.UBGlobal = 0

	results := baseResults(inst, testRunConfig(), constantHiring(inst, 0), runStats{})

	assert.Equal(t, 0.0, results.RegionalHiredPct["R1"])
	assert.Equal(t, 0.0, results.RegionalAvgHiredPct)
	assert.Equal(t, 0.0, results.GlobalAvgHiredPct)
}

func TestBaseResultsIdempotence(t *testing.T) {
	inst := singleAreaInstance()
	x := constantHiring(inst, 2)
	stats := runStats{Objective: 16, Elapsed: 0.5, Variables: 16, Constraints: 24, Nonzeroes: 40}

	first := baseResults(inst, testRunConfig(), x, stats)
	second := baseResults(inst, testRunConfig(), x, stats)

	assert.Equal(t, first, second)
}

func TestMovementPct(t *testing.T) {
	inst := twoRegionInstance()

	t.Run("NoMovement", func(t *testing.T) {
		x := constantHiring(inst, 2)
		assert.InDelta(t, 0.0, movementPct(inst, x, map[movement]float64{}), 1e-9)
	})

	t.Run("SingleTransfer", func(t *testing.T) {
		// 4 couriers employed in R1 at period 0, one moved: 25% for that
		// region-period, averaged over 2 regions * 8 periods.
		x := constantHiring(inst, 2)
		y := map[movement]float64{{From: "A1", To: "A2", Period: 0}: 1}
		assert.InDelta(t, 25.0/16.0, movementPct(inst, x, y), 1e-9)
	})

	t.Run("ZeroStaffingCountsAsZero", func(t *testing.T) {
		x := constantHiring(inst, 0)
		y := map[movement]float64{{From: "A1", To: "A2", Period: 0}: 1}
		assert.Equal(t, 0.0, movementPct(inst, x, y))
	})
}

func TestShiftStartStats(t *testing.T) {
	inst := twoRegionInstance()

	starts := map[areaPeriod]float64{
		// Below the numerical-slack tolerance: not a start.
		{Area: "A1", Period: 0}: 0.05,
		{Area: "A2", Period: 2}: 1.0,
		{Area: "A3", Period: 2}: 2.0,
		{Area: "A1", Period: 4}: 0.2,
	}

	count, pct := shiftStartStats(inst, starts)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 25.0, pct, 1e-9)
}
