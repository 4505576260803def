package solver

import (
	"testing"

	"courier-scheduler/models"

	"github.com/stretchr/testify/assert"
)

func twoRegionInstance() *models.Instance {
	return &models.Instance{
		NumPeriods:   8,
		NumScenarios: 1,
		Regions:      []string{"R1", "R2"},
		Areas:        []string{"A1", "A2", "A3"},
		RegionAreas:  map[string][]string{"R1": {"A1", "A2"}, "R2": {"A3"}},
		AreaRegion:   map[string]string{"A1": "R1", "A2": "R1", "A3": "R2"},
		Shifts:       [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}},
		ShiftLength:  4,
	}
}

func TestMovementKeys(t *testing.T) {
	keys := movementKeys(twoRegionInstance())

	// Only the two-area region produces pairs: two ordered pairs per period.
	assert.Len(t, keys, 2*8)
	assert.Contains(t, keys, movement{From: "A1", To: "A2", Period: 0})
	assert.Contains(t, keys, movement{From: "A2", To: "A1", Period: 7})

	for _, k := range keys {
		assert.NotEqual(t, k.From, k.To)
		assert.NotContains(t, []string{k.From, k.To}, "A3")
	}
}

func TestHiringAndOutsourcingKeys(t *testing.T) {
	inst := twoRegionInstance()
	inst.NumScenarios = 3

	assert.Len(t, hiringKeys(inst), 3*8)
	assert.Len(t, outsourcingKeys(inst), 3*8*3)
}

func TestStartCandidates(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 4}, startCandidates(twoRegionInstance()))
}
