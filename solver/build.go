package solver

import (
	"courier-scheduler/models"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"
)

// movementPenalty is the tiny objective weight on movement variables. It
// breaks ties toward minimal churn without affecting the primary objective.
const movementPenalty = 1e-6

// modelSize tracks how many variables, constraints and nonzero constraint
// coefficients the construction emitted.
type modelSize struct {
	variables   int
	constraints int
	nonzeroes   int
}

// baseModel declares the variables and constraints shared by every variant:
// integer hiring decisions per (area, period), a continuous outsourcing-cost
// proxy per (area, period, scenario), the regional and global hiring caps,
// and the outsourcing floor that prices staffing shortfalls.
type baseModel struct {
	m    mip.Model
	inst *models.Instance
	size modelSize

	xKeys     []areaPeriod
	omegaKeys []areaPeriodScenario
	x         model.MultiMap[mip.Int, areaPeriod]
	omega     model.MultiMap[mip.Float, areaPeriodScenario]
}

func newBaseModel(inst *models.Instance) *baseModel {
	b := &baseModel{m: mip.NewModel(), inst: inst}
	b.m.Objective().SetMinimize()

	b.xKeys = hiringKeys(inst)
	b.x = model.NewMultiMap(func(keys ...areaPeriod) mip.Int {
		regionCap := inst.UBReg[inst.AreaRegion[keys[0].Area]]
		return b.m.NewInt(0, int64(regionCap))
	}, b.xKeys)
	for _, k := range b.xKeys {
		b.m.Objective().NewTerm(models.CostPerCourierAndPeriod, b.x.Get(k))
		b.size.variables++
	}

	b.omegaKeys = outsourcingKeys(inst)
	b.omega = model.NewMultiMap(func(keys ...areaPeriodScenario) mip.Float {
		k := keys[0]
		demand := inst.Demand[models.DemandKey{Scenario: k.Scenario, Area: k.Area, Period: k.Period}]
		// The proxy never needs to exceed the cost of outsourcing the whole
		// realized demand.
		return b.m.NewFloat(0, demand*inst.OutsourcingCost)
	}, b.omegaKeys)
	expectedWeight := 1 / float64(inst.NumScenarios)
	for _, k := range b.omegaKeys {
		b.m.Objective().NewTerm(expectedWeight, b.omega.Get(k))
		b.size.variables++
	}

	b.addHiringBounds()
	b.addOutsourcingFloor()

	return b
}

func (b *baseModel) newConstraint(sense mip.Sense, rhs float64) mip.Constraint {
	b.size.constraints++
	return b.m.NewConstraint(sense, rhs)
}

// addTerm adds one coefficient to a constraint row, skipping zero
// coefficients so they neither appear in the matrix nor in the nonzero count.
func (b *baseModel) addTerm(c mip.Constraint, coefficient float64, v mip.Var) {
	if coefficient == 0 {
		return
	}
	b.size.nonzeroes++
	c.NewTerm(coefficient, v)
}

func (b *baseModel) addHiringBounds() {
	for _, region := range b.inst.Regions {
		for theta := 0; theta < b.inst.NumPeriods; theta++ {
			c := b.newConstraint(mip.LessThanOrEqual, float64(b.inst.UBReg[region]))
			for _, a := range b.inst.RegionAreas[region] {
				b.addTerm(c, 1, b.x.Get(areaPeriod{Area: a, Period: theta}))
			}
		}
	}

	for theta := 0; theta < b.inst.NumPeriods; theta++ {
		c := b.newConstraint(mip.LessThanOrEqual, float64(b.inst.UBGlobal))
		for _, a := range b.inst.Areas {
			b.addTerm(c, 1, b.x.Get(areaPeriod{Area: a, Period: theta}))
		}
	}
}

// addOutsourcingFloor lower-bounds the proxy by the cost of the staffing
// shortfall, written as required*omega + demand*cost*x >= required*demand*cost.
// Because omega only carries a positive objective weight, the solver drives
// it to the tightest feasible value, so the floor is exact at optimality.
// A zero required value leaves the row vacuous.
func (b *baseModel) addOutsourcingFloor() {
	for _, k := range b.omegaKeys {
		dk := models.DemandKey{Scenario: k.Scenario, Area: k.Area, Period: k.Period}
		required := b.inst.Required[dk]
		demand := b.inst.Demand[dk]

		c := b.newConstraint(mip.GreaterThanOrEqual, required*demand*b.inst.OutsourcingCost)
		b.addTerm(c, required, b.omega.Get(k))
		b.addTerm(c, demand*b.inst.OutsourcingCost, b.x.Get(areaPeriod{Area: k.Area, Period: k.Period}))
	}
}

// fixedModel pins each region's total staffing for the duration of every
// shift, allowing only area-level redistribution through movement variables.
type fixedModel struct {
	baseModel

	yKeys []movement
	y     model.MultiMap[mip.Int, movement]
}

func newFixedModel(inst *models.Instance) *fixedModel {
	f := &fixedModel{baseModel: *newBaseModel(inst)}
	f.addMovementVars()
	f.addShiftConstantStaffing()
	f.addShiftFlowBalance()
	return f
}

func (f *fixedModel) addMovementVars() {
	f.yKeys = movementKeys(f.inst)
	f.y = model.NewMultiMap(func(keys ...movement) mip.Int {
		regionCap := f.inst.UBReg[f.inst.AreaRegion[keys[0].From]]
		return f.m.NewInt(0, int64(regionCap))
	}, f.yKeys)
	for _, k := range f.yKeys {
		f.m.Objective().NewTerm(movementPenalty, f.y.Get(k))
		f.size.variables++
	}
}

// addMovementTerms adds the movement contribution for area a at period theta
// to a flow-balance row: -1 for every transfer into a, +1 for every transfer
// out of a.
func (f *fixedModel) addMovementTerms(c mip.Constraint, a string, theta int) {
	for _, other := range f.inst.RegionAreas[f.inst.AreaRegion[a]] {
		if other == a {
			continue
		}
		f.addTerm(c, -1, f.y.Get(movement{From: other, To: a, Period: theta}))
		f.addTerm(c, 1, f.y.Get(movement{From: a, To: other, Period: theta}))
	}
}

func (f *fixedModel) addShiftConstantStaffing() {
	for _, region := range f.inst.Regions {
		for _, shift := range f.inst.Shifts {
			first := shift[0]
			for _, theta := range shift[1:] {
				c := f.newConstraint(mip.Equal, 0)
				for _, a := range f.inst.RegionAreas[region] {
					f.addTerm(c, 1, f.x.Get(areaPeriod{Area: a, Period: theta}))
					f.addTerm(c, -1, f.x.Get(areaPeriod{Area: a, Period: first}))
				}
			}
		}
	}
}

func (f *fixedModel) addShiftFlowBalance() {
	for _, region := range f.inst.Regions {
		for _, a := range f.inst.RegionAreas[region] {
			for _, shift := range f.inst.Shifts {
				for _, theta := range shift[1:] {
					c := f.newConstraint(mip.Equal, 0)
					f.addTerm(c, 1, f.x.Get(areaPeriod{Area: a, Period: theta}))
					f.addTerm(c, -1, f.x.Get(areaPeriod{Area: a, Period: theta - 1}))
					f.addMovementTerms(c, a, theta)
				}
			}
		}
	}
}

// flexModel replaces the shift-constant rule with shift-start/shift-end
// bookkeeping so shift timing becomes a decision.
type flexModel struct {
	fixedModel

	zKeys  []areaPeriod
	zplus  model.MultiMap[mip.Int, areaPeriod]
	zminus model.MultiMap[mip.Int, areaPeriod]
}

func newFlexModel(inst *models.Instance) *flexModel {
	fl := &flexModel{fixedModel: fixedModel{baseModel: *newBaseModel(inst)}}
	fl.addMovementVars()
	fl.addShiftVars()
	fl.addShiftCountBalance()
	fl.addGeneralFlowBalance()
	return fl
}

func (fl *flexModel) addShiftVars() {
	length := fl.inst.ShiftLength
	fl.zKeys = hiringKeys(fl.inst)

	fl.zminus = model.NewMultiMap(func(keys ...areaPeriod) mip.Int {
		k := keys[0]
		// No shift can start where it cannot finish.
		if k.Period >= fl.inst.NumPeriods-length+1 {
			return fl.m.NewInt(0, 0)
		}
		return fl.m.NewInt(0, int64(fl.inst.UBReg[fl.inst.AreaRegion[k.Area]]))
	}, fl.zKeys)

	fl.zplus = model.NewMultiMap(func(keys ...areaPeriod) mip.Int {
		k := keys[0]
		// No shift can end before one full length has elapsed.
		if k.Period < length-1 {
			return fl.m.NewInt(0, 0)
		}
		return fl.m.NewInt(0, int64(fl.inst.UBReg[fl.inst.AreaRegion[k.Area]]))
	}, fl.zKeys)

	for _, k := range fl.zKeys {
		fl.zminus.Get(k)
		fl.zplus.Get(k)
		fl.size.variables += 2
	}
}

// addShiftCountBalance ties every shift start to an end exactly one shift
// length later, per region and valid start period.
func (fl *flexModel) addShiftCountBalance() {
	length := fl.inst.ShiftLength
	for _, region := range fl.inst.Regions {
		for theta := 0; theta < fl.inst.NumPeriods; theta++ {
			if theta >= fl.inst.NumPeriods+1-length {
				continue
			}
			c := fl.newConstraint(mip.Equal, 0)
			for _, a := range fl.inst.RegionAreas[region] {
				fl.addTerm(c, 1, fl.zminus.Get(areaPeriod{Area: a, Period: theta}))
				fl.addTerm(c, -1, fl.zplus.Get(areaPeriod{Area: a, Period: theta + length - 1}))
			}
		}
	}
}

func (fl *flexModel) addGeneralFlowBalance() {
	for _, a := range fl.inst.Areas {
		// Initial staffing is exactly the couriers starting at period 0.
		c := fl.newConstraint(mip.Equal, 0)
		fl.addTerm(c, 1, fl.x.Get(areaPeriod{Area: a, Period: 0}))
		fl.addTerm(c, -1, fl.zminus.Get(areaPeriod{Area: a, Period: 0}))

		for theta := 1; theta < fl.inst.NumPeriods; theta++ {
			c := fl.newConstraint(mip.Equal, 0)
			fl.addTerm(c, 1, fl.x.Get(areaPeriod{Area: a, Period: theta}))
			fl.addTerm(c, -1, fl.x.Get(areaPeriod{Area: a, Period: theta - 1}))
			fl.addMovementTerms(c, a, theta)
			fl.addTerm(c, -1, fl.zminus.Get(areaPeriod{Area: a, Period: theta}))
			fl.addTerm(c, 1, fl.zplus.Get(areaPeriod{Area: a, Period: theta - 1}))
		}
	}
}

// partflexModel extends flex with a system-wide cap on how many distinct
// shift-start periods are used.
type partflexModel struct {
	flexModel

	wKeys []int
	w     []mip.Bool
}

func newPartflexModel(inst *models.Instance, maxStartPeriods int) *partflexModel {
	p := &partflexModel{flexModel: *newFlexModel(inst)}

	p.wKeys = startCandidates(inst)
	p.w = make([]mip.Bool, len(p.wKeys))
	for i := range p.wKeys {
		p.w[i] = p.m.NewBool()
		p.size.variables++
	}

	// Starts at theta are only permitted when w[theta] is selected; the
	// regional cap keeps the implication tight without limiting volume.
	for _, region := range inst.Regions {
		for i, theta := range p.wKeys {
			c := p.newConstraint(mip.LessThanOrEqual, 0)
			for _, a := range inst.RegionAreas[region] {
				p.addTerm(c, 1, p.zminus.Get(areaPeriod{Area: a, Period: theta}))
			}
			p.addTerm(c, -float64(inst.UBReg[region]), p.w[i])
		}
	}

	c := p.newConstraint(mip.LessThanOrEqual, float64(maxStartPeriods))
	for i := range p.w {
		p.addTerm(c, 1, p.w[i])
	}

	return p
}
