package parser_test

import (
	"strings"
	"testing"

	customerrors "courier-scheduler/errors"
	"courier-scheduler/models"
	"courier-scheduler/parser"

	"github.com/stretchr/testify/assert"
)

const validPayload = `{
  "geography": {"city": {"regions": [
    {"id": "R1", "areas": [{"id": "A1"}, {"id": "A2"}]},
    {"id": "R2", "areas": [{"id": "A3"}]}
  ]}},
  "num_time_intervals": 2,
  "num_scenarios": 1,
  "demand_baseline": "typical",
  "demand_type": "uniform",
  "scenarios": [
    {"scenario_num": 0, "data": [
      {"area_id": "A1", "demand": [10, 12], "required_couriers": [2, 3]},
      {"area_id": "A2", "demand": [5, 5], "required_couriers": [1, 1]},
      {"area_id": "A3", "demand": [8, 0], "required_couriers": [2, 0]}
    ]}
  ]
}`

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedError error
	}{
		"ValidInput": {
			input:         validPayload,
			expectedError: nil,
		},
		"MalformedJSON": {
			input:         `{"geography": `,
			expectedError: customerrors.ErrMalformedPayload,
		},
		"NoRegions": {
			input: `{
			  "geography": {"city": {"regions": []}},
			  "num_time_intervals": 2, "num_scenarios": 1, "scenarios": []
			}`,
			expectedError: customerrors.ErrNoRegions,
		},
		"RegionWithoutAreas": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": []}]}},
			  "num_time_intervals": 2, "num_scenarios": 1, "scenarios": []
			}`,
			expectedError: customerrors.ErrNoAreas,
		},
		"DuplicateAreaAcrossRegions": {
			input: `{
			  "geography": {"city": {"regions": [
			    {"id": "R1", "areas": [{"id": "A1"}]},
			    {"id": "R2", "areas": [{"id": "A1"}]}
			  ]}},
			  "num_time_intervals": 2, "num_scenarios": 1, "scenarios": []
			}`,
			expectedError: customerrors.ErrDuplicateID,
		},
		"ZeroPeriods": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}]}]}},
			  "num_time_intervals": 0, "num_scenarios": 1, "scenarios": []
			}`,
			expectedError: customerrors.ErrInvalidPeriodCount,
		},
		"ZeroScenarios": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}]}]}},
			  "num_time_intervals": 2, "num_scenarios": 0, "scenarios": []
			}`,
			expectedError: customerrors.ErrInvalidScenarios,
		},
		"UnknownArea": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}]}]}},
			  "num_time_intervals": 2, "num_scenarios": 1,
			  "scenarios": [
			    {"scenario_num": 0, "data": [
			      {"area_id": "A9", "demand": [1, 1], "required_couriers": [1, 1]}
			    ]}
			  ]
			}`,
			expectedError: customerrors.ErrUnknownArea,
		},
		"ScenarioOutOfRange": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}]}]}},
			  "num_time_intervals": 2, "num_scenarios": 1,
			  "scenarios": [
			    {"scenario_num": 4, "data": [
			      {"area_id": "A1", "demand": [1, 1], "required_couriers": [1, 1]}
			    ]}
			  ]
			}`,
			expectedError: customerrors.ErrUnknownScenario,
		},
		"DemandLengthMismatch": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}]}]}},
			  "num_time_intervals": 2, "num_scenarios": 1,
			  "scenarios": [
			    {"scenario_num": 0, "data": [
			      {"area_id": "A1", "demand": [1, 1, 1], "required_couriers": [1, 1]}
			    ]}
			  ]
			}`,
			expectedError: customerrors.ErrLengthMismatch,
		},
		"RequiredLengthMismatch": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}]}]}},
			  "num_time_intervals": 2, "num_scenarios": 1,
			  "scenarios": [
			    {"scenario_num": 0, "data": [
			      {"area_id": "A1", "demand": [1, 1], "required_couriers": [1]}
			    ]}
			  ]
			}`,
			expectedError: customerrors.ErrLengthMismatch,
		},
		"MissingScenarioData": {
			input: `{
			  "geography": {"city": {"regions": [{"id": "R1", "areas": [{"id": "A1"}, {"id": "A2"}]}]}},
			  "num_time_intervals": 2, "num_scenarios": 1,
			  "scenarios": [
			    {"scenario_num": 0, "data": [
			      {"area_id": "A1", "demand": [1, 1], "required_couriers": [1, 1]}
			    ]}
			  ]
			}`,
			expectedError: customerrors.ErrMissingScenarioData,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			raw, err := parser.Parse(strings.NewReader(tc.input))

			if tc.expectedError != nil {
				assert.Nil(t, raw)
				assert.ErrorIs(t, err, tc.expectedError)

				var inputErr *customerrors.InputError
				assert.ErrorAs(t, err, &inputErr)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, raw)
		})
	}
}

func TestParseValidFields(t *testing.T) {
	raw, err := parser.Parse(strings.NewReader(validPayload))
	assert.NoError(t, err)

	assert.Equal(t, 2, raw.NumTimeIntervals)
	assert.Equal(t, 1, raw.NumScenarios)
	assert.Equal(t, "typical", raw.DemandBaseline)
	assert.Equal(t, "uniform", raw.DemandType)

	regions := raw.Geography.City.Regions
	assert.Len(t, regions, 2)
	assert.Equal(t, "R1", regions[0].ID)
	assert.Equal(t, []models.RawArea{{ID: "A1"}, {ID: "A2"}}, regions[0].Areas)

	assert.Len(t, raw.Scenarios, 1)
	assert.Equal(t, []float64{10, 12}, raw.Scenarios[0].Data[0].Demand)
	assert.Equal(t, []float64{2, 3}, raw.Scenarios[0].Data[0].RequiredCouriers)
}
