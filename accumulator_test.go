package tvs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_MergeSumsForwardAndBackward(t *testing.T) {
	acc := NewAccumulator(3)

	acc.Merge(SectorResult{
		SurfaceF: []float64{1, 2, 3},
		SurfaceB: []float64{10, 20, 30},
	})
	acc.Merge(SectorResult{
		SurfaceF: []float64{100, 200, 300},
		SurfaceB: []float64{0, 0, 0},
	})

	assert.Equal(t, []float64{111, 222, 333}, acc.Surface)
}

func TestAccumulator_MergeAllocatesVolumeLazily(t *testing.T) {
	acc := NewAccumulator(2)
	require.Nil(t, acc.Volume)

	acc.Merge(SectorResult{
		SurfaceF: []float64{1, 1},
		SurfaceB: []float64{1, 1},
		VolumeF:  []float64{5, 6},
		VolumeB:  []float64{1, 2},
	})

	require.NotNil(t, acc.Volume)
	assert.Equal(t, []float64{6, 8}, acc.Volume)
}

// TestRunAllSectors_AggregatesEverySectorAngle covers spec §4.5's TVS
// aggregation property: the final per-point total equals the sum of
// surface_F + surface_B contributed by every sector angle swept.
func TestRunAllSectors_AggregatesEverySectorAngle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalSectors = 4 // angles 0, 45, 90, 135

	var seen []int
	var mu sync.Mutex
	acc := RunAllSectors(&cfg, 2, func(angle int) SectorResult {
		mu.Lock()
		seen = append(seen, angle)
		mu.Unlock()
		return SectorResult{
			SurfaceF: []float64{1, 1},
			SurfaceB: []float64{1, 1},
		}
	})

	require.NotNil(t, acc)
	assert.ElementsMatch(t, []int{0, 45, 90, 135}, seen)
	assert.Equal(t, []float64{8, 8}, acc.Surface)
}
