package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"courier-scheduler/errors"
	"courier-scheduler/models"
)

// Parse reads a JSON instance payload from the reader and validates it.
// The payload declares the geography (regions owning areas), the period and
// scenario counts, and one demand/required-courier series per scenario and
// area. Every violation is reported as an InputError before any derivation
// or model construction happens.
func Parse(r io.Reader) (*models.RawInstance, error) {
	var raw models.RawInstance
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &errors.InputError{
			Field: "payload",
			Err:   fmt.Errorf("%w: %v", errors.ErrMalformedPayload, err),
		}
	}
	if err := validate(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func validate(raw *models.RawInstance) error {
	regions := raw.Geography.City.Regions
	if len(regions) == 0 {
		return &errors.InputError{Field: "geography.city.regions", Err: errors.ErrNoRegions}
	}
	if raw.NumTimeIntervals <= 0 {
		return &errors.InputError{Field: "num_time_intervals", Err: errors.ErrInvalidPeriodCount}
	}
	if raw.NumScenarios <= 0 {
		return &errors.InputError{Field: "num_scenarios", Err: errors.ErrInvalidScenarios}
	}

	// The region partition of areas must be exact: every area id appears in
	// exactly one region.
	areas := make(map[string]bool)
	regionIDs := make(map[string]bool)
	for _, region := range regions {
		if regionIDs[region.ID] {
			return &errors.InputError{
				Field: "geography.city.regions",
				Err:   fmt.Errorf("%w: region %q", errors.ErrDuplicateID, region.ID),
			}
		}
		regionIDs[region.ID] = true

		if len(region.Areas) == 0 {
			return &errors.InputError{
				Field: "geography.city.regions",
				Err:   fmt.Errorf("%w: region %q", errors.ErrNoAreas, region.ID),
			}
		}
		for _, area := range region.Areas {
			if areas[area.ID] {
				return &errors.InputError{
					Field: "geography.city.regions",
					Err:   fmt.Errorf("%w: area %q", errors.ErrDuplicateID, area.ID),
				}
			}
			areas[area.ID] = true
		}
	}

	// Every (scenario, area) pair needs one demand and one required series,
	// each exactly num_time_intervals long.
	covered := make(map[int]map[string]bool, raw.NumScenarios)
	for _, scenario := range raw.Scenarios {
		s := scenario.ScenarioNum
		if s < 0 || s >= raw.NumScenarios {
			return &errors.InputError{
				Field: "scenarios",
				Err:   fmt.Errorf("%w: scenario %d", errors.ErrUnknownScenario, s),
			}
		}
		if covered[s] == nil {
			covered[s] = make(map[string]bool, len(areas))
		}
		for _, data := range scenario.Data {
			if !areas[data.AreaID] {
				return &errors.InputError{
					Field: "scenarios",
					Err:   fmt.Errorf("%w: area %q in scenario %d", errors.ErrUnknownArea, data.AreaID, s),
				}
			}
			if len(data.Demand) != raw.NumTimeIntervals {
				return &errors.InputError{
					Field: "scenarios",
					Err: fmt.Errorf("%w: demand for area %q in scenario %d has %d entries, want %d",
						errors.ErrLengthMismatch, data.AreaID, s, len(data.Demand), raw.NumTimeIntervals),
				}
			}
			if len(data.RequiredCouriers) != raw.NumTimeIntervals {
				return &errors.InputError{
					Field: "scenarios",
					Err: fmt.Errorf("%w: required_couriers for area %q in scenario %d has %d entries, want %d",
						errors.ErrLengthMismatch, data.AreaID, s, len(data.RequiredCouriers), raw.NumTimeIntervals),
				}
			}
			covered[s][data.AreaID] = true
		}
	}
	for s := 0; s < raw.NumScenarios; s++ {
		for a := range areas {
			if !covered[s][a] {
				return &errors.InputError{
					Field: "scenarios",
					Err:   fmt.Errorf("%w: scenario %d, area %q", errors.ErrMissingScenarioData, s, a),
				}
			}
		}
	}

	return nil
}
