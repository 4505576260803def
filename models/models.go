package models

// Cost structure shared by every model variant. Hiring is the unit cost of
// one courier working one period; a courier serves up to CourierCapacity
// parcels per period.
const (
	CourierCapacity         = 5
	CostPerCourierAndPeriod = 1.0
	CostPerParcelAndPeriod  = CostPerCourierAndPeriod / CourierCapacity
)

// Variant selects which of the four MILP formulations is built.
type Variant string

const (
	VariantBase     Variant = "base"
	VariantFixed    Variant = "fixed"
	VariantPartflex Variant = "partflex"
	VariantFlex     Variant = "flex"
)

// Valid reports whether v is one of the four known formulations.
func (v Variant) Valid() bool {
	switch v {
	case VariantBase, VariantFixed, VariantPartflex, VariantFlex:
		return true
	}
	return false
}

// HasMovement reports whether the variant carries intra-region movement
// variables.
func (v Variant) HasMovement() bool {
	return v == VariantFixed || v == VariantFlex || v == VariantPartflex
}

// HasShiftVars reports whether the variant carries shift-start/shift-end
// variables.
func (v Variant) HasShiftVars() bool {
	return v == VariantFlex || v == VariantPartflex
}

// RawInstance is the instance payload as it appears in the input file.
type RawInstance struct {
	Geography        Geography     `json:"geography"`
	NumTimeIntervals int           `json:"num_time_intervals"`
	NumScenarios     int           `json:"num_scenarios"`
	DemandBaseline   string        `json:"demand_baseline"`
	DemandType       string        `json:"demand_type"`
	Scenarios        []RawScenario `json:"scenarios"`
}

// Geography nests the city's region/area tree.
type Geography struct {
	City City `json:"city"`
}

// City owns the ordered region list; regions partition the areas.
type City struct {
	Regions []RawRegion `json:"regions"`
}

// RawRegion groups the areas sharing one hiring cap.
type RawRegion struct {
	ID    string    `json:"id"`
	Areas []RawArea `json:"areas"`
}

// RawArea is the leaf unit of demand and staffing decisions.
type RawArea struct {
	ID string `json:"id"`
}

// RawScenario is one stochastic demand realization: per area, one demand and
// one required-courier value per period.
type RawScenario struct {
	ScenarioNum int           `json:"scenario_num"`
	Data        []RawAreaData `json:"data"`
}

// RawAreaData carries one area's per-period series within a scenario.
type RawAreaData struct {
	AreaID           string    `json:"area_id"`
	Demand           []float64 `json:"demand"`
	RequiredCouriers []float64 `json:"required_couriers"`
}

// DemandKey addresses one (scenario, area, period) demand or
// required-courier entry.
type DemandKey struct {
	Scenario int
	Area     string
	Period   int
}

// Instance holds the derived per-run parameters consumed by every model
// variant. It is built once from a RawInstance and read-only thereafter.
type Instance struct {
	BaseName       string
	Name           string
	City           string
	DemandBaseline string
	DemandType     string

	NumPeriods   int
	NumScenarios int

	Regions     []string
	Areas       []string
	RegionAreas map[string][]string
	AreaRegion  map[string]string

	Demand   map[DemandKey]float64
	Required map[DemandKey]float64

	// UBReg caps couriers hireable per region and period; UBGlobal caps the
	// city-wide total per period. Both are derived from scenario-averaged
	// required couriers.
	UBReg    map[string]int
	UBGlobal int

	// Shifts partitions the period range into contiguous blocks; ShiftLength
	// is the common block length.
	Shifts      [][]int
	ShiftLength int

	OutsourcingCost float64
}

// Results is the record extracted from a solved model and written to the
// output file. Variant-specific fields are additive and nil when the variant
// does not produce them.
type Results struct {
	Instance                  string  `json:"instance"`
	Model                     Variant `json:"model"`
	City                      string  `json:"city"`
	DemandBaseline            string  `json:"DB"`
	DemandType                string  `json:"DT"`
	OutsourcingCostMultiplier float64 `json:"OC"`
	RegionalMultiplier        float64 `json:"RM"`
	GlobalMultiplier          float64 `json:"GM"`
	NumPeriods                int     `json:"num_periods"`
	NumScenarios              int     `json:"num_scenarios"`

	ObjValue     float64 `json:"obj_value"`
	ElapsedTime  float64 `json:"elapsed_time"`
	NVariables   int     `json:"n_variables"`
	NConstraints int     `json:"n_constraints"`
	NNonzeroes   int     `json:"n_nonzeroes"`

	HiringCosts      float64 `json:"hiring_costs"`
	OutsourcingCosts float64 `json:"outsourcing_costs"`

	HiredCouriers     map[string][]int     `json:"hired_couriers"`
	OutsourcedParcels map[string][]float64 `json:"outsourced_parcels"`
	InhouseParcels    map[string][]float64 `json:"inhouse_parcels"`

	RegionalHiredPct    map[string]float64 `json:"regional_hired_pct"`
	RegionalAvgHiredPct float64            `json:"regional_avg_hired_pct"`
	GlobalAvgHiredPct   float64            `json:"global_avg_hired_pct"`

	CourierMovedPct     *float64 `json:"courier_moved_pct,omitempty"`
	NShiftStartPeriods  *int     `json:"n_shift_start_periods,omitempty"`
	PeriodsWithStart    *int     `json:"periods_with_start,omitempty"`
	PeriodsWithStartPct *float64 `json:"periods_with_start_pct,omitempty"`
}
