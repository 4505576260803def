package solver

import (
	"math"

	"courier-scheduler/models"
)

// startTolerance absorbs solver numerical slack when deciding whether any
// couriers start a shift in a period.
const startTolerance = 0.1

// runStats carries the solver run measurements attached to every results
// record.
type runStats struct {
	Objective   float64
	Elapsed     float64
	Variables   int
	Constraints int
	Nonzeroes   int
}

// baseResults computes the results record shared by all variants from the
// solved hiring values: cost decomposition, per-area parcel estimates and
// utilization. It is a pure function of its inputs, so re-running it on the
// same solved values yields an identical record.
func baseResults(inst *models.Instance, cfg models.Config, x map[areaPeriod]float64, stats runStats) *models.Results {
	results := &models.Results{
		Instance:                  inst.BaseName,
		Model:                     cfg.Model,
		City:                      inst.City,
		DemandBaseline:            inst.DemandBaseline,
		DemandType:                inst.DemandType,
		OutsourcingCostMultiplier: cfg.OutsourcingCostMultiplier,
		RegionalMultiplier:        cfg.RegionalMultiplier,
		GlobalMultiplier:          cfg.GlobalMultiplier,
		NumPeriods:                inst.NumPeriods,
		NumScenarios:              inst.NumScenarios,
		ObjValue:                  stats.Objective,
		ElapsedTime:               stats.Elapsed,
		NVariables:                stats.Variables,
		NConstraints:              stats.Constraints,
		NNonzeroes:                stats.Nonzeroes,
	}

	hiring := 0.0
	for _, v := range x {
		hiring += v
	}
	results.HiringCosts = hiring
	results.OutsourcingCosts = stats.Objective - hiring

	results.HiredCouriers = make(map[string][]int, len(inst.Areas))
	for _, a := range inst.Areas {
		row := make([]int, inst.NumPeriods)
		for theta := 0; theta < inst.NumPeriods; theta++ {
			row[theta] = int(math.Round(x[areaPeriod{Area: a, Period: theta}]))
		}
		results.HiredCouriers[a] = row
	}

	results.OutsourcedParcels, _, results.InhouseParcels = parcelEstimates(inst, x)

	results.RegionalHiredPct = make(map[string]float64, len(inst.Regions))
	regionalSum := 0.0
	for _, region := range inst.Regions {
		hired := 0.0
		for _, a := range inst.RegionAreas[region] {
			for theta := 0; theta < inst.NumPeriods; theta++ {
				hired += x[areaPeriod{Area: a, Period: theta}]
			}
		}
		pct := 0.0
		if capacity := float64(inst.UBReg[region] * inst.NumPeriods); capacity > 0 {
			pct = 100 * hired / capacity
		}
		results.RegionalHiredPct[region] = pct
		regionalSum += pct
	}
	results.RegionalAvgHiredPct = regionalSum / float64(len(inst.Regions))
	if capacity := float64(inst.UBGlobal * inst.NumPeriods); capacity > 0 {
		results.GlobalAvgHiredPct = 100 * hiring / capacity
	}

	return results
}

// parcelEstimates averages, across the scenarios with positive required
// couriers, the outsourced parcel count, the outsourced percentage and the
// in-house parcel count for every area and period. An area-period no
// scenario puts demand on reports zero for all three.
func parcelEstimates(inst *models.Instance, x map[areaPeriod]float64) (outsourced, outsourcedPct, inhouse map[string][]float64) {
	outsourced = make(map[string][]float64, len(inst.Areas))
	outsourcedPct = make(map[string][]float64, len(inst.Areas))
	inhouse = make(map[string][]float64, len(inst.Areas))

	for _, a := range inst.Areas {
		out := make([]float64, inst.NumPeriods)
		pct := make([]float64, inst.NumPeriods)
		in := make([]float64, inst.NumPeriods)

		for theta := 0; theta < inst.NumPeriods; theta++ {
			hired := x[areaPeriod{Area: a, Period: theta}]

			scenariosWithDemand := 0
			var totalOut, totalPct, totalIn float64
			for s := 0; s < inst.NumScenarios; s++ {
				k := models.DemandKey{Scenario: s, Area: a, Period: theta}
				required := inst.Required[k]
				if required <= 0 {
					continue
				}
				demand := inst.Demand[k]
				totalOut += (required - hired) * demand / required
				totalPct += 100 * (required - hired) / required
				totalIn += demand * hired / required
				scenariosWithDemand++
			}
			if scenariosWithDemand == 0 {
				continue
			}

			// Hiring more couriers than needed outsources zero parcels, not
			// a negative amount.
			totalOut = max(totalOut, 0)
			totalPct = max(totalPct, 0)

			out[theta] = totalOut / float64(scenariosWithDemand)
			pct[theta] = totalPct / float64(scenariosWithDemand)
			in[theta] = totalIn / float64(scenariosWithDemand)
		}

		outsourced[a] = out
		outsourcedPct[a] = pct
		inhouse[a] = in
	}

	return outsourced, outsourcedPct, inhouse
}

// movementPct averages, over every region-period pair, the intra-region
// movement as a percentage of that region-period's staffing. A region-period
// with no staffing contributes zero to the mean.
func movementPct(inst *models.Instance, x map[areaPeriod]float64, y map[movement]float64) float64 {
	pairs := 0
	sum := 0.0
	for _, region := range inst.Regions {
		for theta := 0; theta < inst.NumPeriods; theta++ {
			moved := 0.0
			employed := 0.0
			for _, a := range inst.RegionAreas[region] {
				employed += x[areaPeriod{Area: a, Period: theta}]
				for _, other := range inst.RegionAreas[region] {
					if a == other {
						continue
					}
					moved += y[movement{From: a, To: other, Period: theta}]
				}
			}
			if employed > 0 {
				sum += 100 * moved / employed
			}
			pairs++
		}
	}
	return sum / float64(pairs)
}

// shiftStartStats counts the periods where at least one area has couriers
// starting a shift, and that count as a percentage of the horizon.
func shiftStartStats(inst *models.Instance, starts map[areaPeriod]float64) (int, float64) {
	periodsWithStart := 0
	for theta := 0; theta < inst.NumPeriods; theta++ {
		for _, a := range inst.Areas {
			if starts[areaPeriod{Area: a, Period: theta}] > startTolerance {
				periodsWithStart++
				break
			}
		}
	}
	return periodsWithStart, 100 * float64(periodsWithStart) / float64(inst.NumPeriods)
}
