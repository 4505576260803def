package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"courier-scheduler/models"
)

// FormatJSON returns the results record as the indented JSON payload written
// to the output file.
func FormatJSON(results *models.Results) (string, error) {
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding results: %w", err)
	}
	return string(payload) + "\n", nil
}

// FormatText returns a human-readable run summary: the cost decomposition,
// utilization figures and a region-by-period table of hired couriers.
func FormatText(results *models.Results, inst *models.Instance) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Instance:         %s (model=%s)\n", results.Instance, results.Model)
	fmt.Fprintf(&sb, "Objective:        %.4f\n", results.ObjValue)
	fmt.Fprintf(&sb, "  Hiring:         %.4f\n", results.HiringCosts)
	fmt.Fprintf(&sb, "  Outsourcing:    %.4f\n", results.OutsourcingCosts)
	fmt.Fprintf(&sb, "Model size:       %d vars, %d constraints, %d nonzeroes\n",
		results.NVariables, results.NConstraints, results.NNonzeroes)
	fmt.Fprintf(&sb, "Utilization:      regional avg %.1f%%, global %.1f%%\n",
		results.RegionalAvgHiredPct, results.GlobalAvgHiredPct)
	if results.CourierMovedPct != nil {
		fmt.Fprintf(&sb, "Courier movement: %.1f%%\n", *results.CourierMovedPct)
	}
	if results.PeriodsWithStart != nil {
		fmt.Fprintf(&sb, "Shift starts:     %d periods (%.1f%%)\n",
			*results.PeriodsWithStart, *results.PeriodsWithStartPct)
	}

	sb.WriteString("\nHired couriers per region and period:\n")
	sb.WriteString(fmt.Sprintf("%-12s", "region"))
	for theta := 0; theta < results.NumPeriods; theta++ {
		fmt.Fprintf(&sb, "%6d", theta)
	}
	sb.WriteString("\n")

	for _, region := range inst.Regions {
		fmt.Fprintf(&sb, "%-12s", region)
		for theta := 0; theta < results.NumPeriods; theta++ {
			total := 0
			for _, a := range inst.RegionAreas[region] {
				total += results.HiredCouriers[a][theta]
			}
			fmt.Fprintf(&sb, "%6d", total)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// OutputPath returns the configured output path, or the default name derived
// from the instance name and run parameters.
func OutputPath(cfg models.Config, inst *models.Instance) string {
	if cfg.OutputPath != "" {
		return cfg.OutputPath
	}
	if cfg.Model == models.VariantPartflex {
		return fmt.Sprintf("results_%s_mu=%d_model=%s.json", inst.Name, cfg.MaxShiftStartPeriods, cfg.Model)
	}
	return fmt.Sprintf("results_%s_model=%s.json", inst.Name, cfg.Model)
}
