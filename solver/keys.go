package solver

import (
	"fmt"

	"courier-scheduler/models"
)

// areaPeriod indexes hiring, shift-start and shift-end variables.
type areaPeriod struct {
	Area   string
	Period int
}

// ID is implemented to fulfill the model.Identifier interface.
func (k areaPeriod) ID() string {
	return fmt.Sprintf("%s:%d", k.Area, k.Period)
}

// areaPeriodScenario indexes the outsourcing-cost proxy variables.
type areaPeriodScenario struct {
	Area     string
	Period   int
	Scenario int
}

func (k areaPeriodScenario) ID() string {
	return fmt.Sprintf("%s:%d:%d", k.Area, k.Period, k.Scenario)
}

// movement indexes courier transfers between two distinct areas of the same
// region within one period.
type movement struct {
	From   string
	To     string
	Period int
}

func (k movement) ID() string {
	return fmt.Sprintf("%s>%s:%d", k.From, k.To, k.Period)
}

// hiringKeys enumerates every (area, period) staffing decision.
func hiringKeys(inst *models.Instance) []areaPeriod {
	keys := make([]areaPeriod, 0, len(inst.Areas)*inst.NumPeriods)
	for _, a := range inst.Areas {
		for theta := 0; theta < inst.NumPeriods; theta++ {
			keys = append(keys, areaPeriod{Area: a, Period: theta})
		}
	}
	return keys
}

// outsourcingKeys enumerates every (area, period, scenario) proxy.
func outsourcingKeys(inst *models.Instance) []areaPeriodScenario {
	keys := make([]areaPeriodScenario, 0, len(inst.Areas)*inst.NumPeriods*inst.NumScenarios)
	for _, a := range inst.Areas {
		for theta := 0; theta < inst.NumPeriods; theta++ {
			for s := 0; s < inst.NumScenarios; s++ {
				keys = append(keys, areaPeriodScenario{Area: a, Period: theta, Scenario: s})
			}
		}
	}
	return keys
}

// movementKeys enumerates the ordered pairs of distinct areas sharing a
// region, per period. Cross-region pairs carry no variable at all, keeping
// the index sparse.
func movementKeys(inst *models.Instance) []movement {
	var keys []movement
	for _, region := range inst.Regions {
		areas := inst.RegionAreas[region]
		for _, a1 := range areas {
			for _, a2 := range areas {
				if a1 == a2 {
					continue
				}
				for theta := 0; theta < inst.NumPeriods; theta++ {
					keys = append(keys, movement{From: a1, To: a2, Period: theta})
				}
			}
		}
	}
	return keys
}

// startCandidates lists the periods a full-length shift can start at.
func startCandidates(inst *models.Instance) []int {
	candidates := make([]int, 0, inst.NumPeriods-inst.ShiftLength+1)
	for theta := 0; theta <= inst.NumPeriods-inst.ShiftLength; theta++ {
		candidates = append(candidates, theta)
	}
	return candidates
}
