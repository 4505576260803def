// Package metrics provides Prometheus observability metrics for the courier
// shift solver. It covers run durations, model size and the solution-quality
// figures operators track across batch runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"courier-scheduler/models"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// ParseDurationSeconds tracks time to load and validate the instance file.
var ParseDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse and validate the JSON instance file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// SolveDurationSeconds tracks the wall-clock time reported by the MILP solver.
var SolveDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "solver",
	Name:      "duration_seconds",
	Help:      "Wall-clock time the MILP solver spent on the model",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
})

// ModelVariables tracks the number of decision variables in the built model.
var ModelVariables = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "model_variables",
	Help:      "Number of decision variables in the built model",
})

// ModelConstraints tracks the number of constraints in the built model.
var ModelConstraints = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "model_constraints",
	Help:      "Number of constraints in the built model",
})

// ModelNonzeroes tracks the number of nonzero constraint coefficients.
var ModelNonzeroes = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "model_nonzeroes",
	Help:      "Number of nonzero coefficients in the constraint matrix",
})

// ObjectiveValue tracks the objective of the solved model.
var ObjectiveValue = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "objective_value",
	Help:      "Objective value of the solved model (hiring plus expected outsourcing cost)",
})

// HiringCosts tracks the hiring share of the objective.
var HiringCosts = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "hiring_costs",
	Help:      "Total cost of hired couriers across all areas and periods",
})

// OutsourcingCosts tracks the expected outsourcing share of the objective.
var OutsourcingCosts = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "outsourcing_costs",
	Help:      "Expected outsourcing cost share of the objective",
})

// OutsourcedParcelsTotal tracks the expected outsourced parcels summed over
// all areas and periods.
var OutsourcedParcelsTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "outsourced_parcels_total",
	Help:      "Expected outsourced parcels summed over all areas and periods",
})

// RegionalHiredPct tracks capacity utilization per region.
var RegionalHiredPct = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "regional_hired_pct",
	Help:      "Hired couriers as a percentage of the regional hiring cap",
}, []string{"region"})

// GlobalAvgHiredPct tracks city-wide capacity utilization.
var GlobalAvgHiredPct = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "global_avg_hired_pct",
	Help:      "Hired couriers as a percentage of the city-wide hiring cap",
})

// CourierMovedPct tracks intra-region courier movement for the variants that
// allow it.
var CourierMovedPct = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "courier_moved_pct",
	Help:      "Average intra-region courier movement as a percentage of regional staffing",
})

// PeriodsWithStart tracks how many periods see couriers starting a shift.
var PeriodsWithStart = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "periods_with_start",
	Help:      "Number of periods in which at least one area has couriers starting a shift",
})

// RecordResults publishes the figures of one solved run to the registry.
func RecordResults(results *models.Results) {
	ObjectiveValue.Set(results.ObjValue)
	HiringCosts.Set(results.HiringCosts)
	OutsourcingCosts.Set(results.OutsourcingCosts)
	ModelVariables.Set(float64(results.NVariables))
	ModelConstraints.Set(float64(results.NConstraints))
	ModelNonzeroes.Set(float64(results.NNonzeroes))
	GlobalAvgHiredPct.Set(results.GlobalAvgHiredPct)

	for region, pct := range results.RegionalHiredPct {
		RegionalHiredPct.WithLabelValues(region).Set(pct)
	}

	outsourced := 0.0
	for _, series := range results.OutsourcedParcels {
		for _, v := range series {
			outsourced += v
		}
	}
	OutsourcedParcelsTotal.Set(outsourced)

	if results.CourierMovedPct != nil {
		CourierMovedPct.Set(*results.CourierMovedPct)
	}
	if results.PeriodsWithStart != nil {
		PeriodsWithStart.Set(float64(*results.PeriodsWithStart))
	}
}

// ResetRunGauges resets all per-run gauges before a new solve.
func ResetRunGauges() {
	ObjectiveValue.Set(0)
	HiringCosts.Set(0)
	OutsourcingCosts.Set(0)
	ModelVariables.Set(0)
	ModelConstraints.Set(0)
	ModelNonzeroes.Set(0)
	GlobalAvgHiredPct.Set(0)
	OutsourcedParcelsTotal.Set(0)
	CourierMovedPct.Set(0)
	PeriodsWithStart.Set(0)
	RegionalHiredPct.Reset()
}
