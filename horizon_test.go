package tvs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearBoS builds a BoS whose band is a straight chain over ids, with
// povIdx as the observer slot, bypassing Setup/Advance entirely so the
// horizon kernel can be exercised in isolation from the insertion
// schedule (covered separately in bos_test.go).
func linearBoS(ids []int, povIdx int) *BoS {
	b := &BoS{slots: make([]bosSlot, len(ids))}
	for i, id := range ids {
		s := bosSlot{id: id}
		if i == 0 {
			s.prev = sentinelPrev
		} else {
			s.prev = i - 1
		}
		if i == len(ids)-1 {
			s.next = sentinelNext
		} else {
			s.next = i + 1
		}
		b.slots[i] = s
	}
	b.first, b.last = 0, len(ids)-1
	b.pov = povIdx
	b.count = len(ids)
	return b
}

// horizonGrid builds a Grid whose Sector.Dist[id] == float64(id), so a
// chain of ids in increasing order walks in strictly increasing
// perpendicular distance from the PoV.
func horizonGrid(elevations []float64) *Grid {
	n := len(elevations)
	g := flatGrid(n, 0)
	g.Elevations = elevations
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = float64(i)
	}
	g.Sector = SectorGeometry{Dist: dist}
	return g
}

func TestSweep_FlatGroundIsOneContinuousRing(t *testing.T) {
	elevations := make([]float64, 9)
	g := horizonGrid(elevations)
	ids := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	b := linearBoS(ids, 4)

	cfg := HorizonConfig{ObserverHeight: 5, Scale: 1}
	result := Sweep(b, g, true, cfg)

	require.Len(t, result.Rings, 1)
	assert.Equal(t, 4, result.Rings[0].Open)
	assert.Equal(t, 8, result.Rings[0].Close)
	assert.Greater(t, result.Surface, 0.0)
}

func TestSweep_SpikeBlocksEverythingBeyondIt(t *testing.T) {
	elevations := make([]float64, 9)
	elevations[5] = 100
	g := horizonGrid(elevations)
	ids := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	b := linearBoS(ids, 4)

	cfg := HorizonConfig{ObserverHeight: 5, Scale: 1}
	result := Sweep(b, g, true, cfg)

	require.Len(t, result.Rings, 1)
	assert.Equal(t, 4, result.Rings[0].Open)
	assert.Equal(t, 6, result.Rings[0].Close, "ring closes at the first point found invisible after the spike")
}

func TestSweep_ShortRingDiscard(t *testing.T) {
	elevations := make([]float64, 5)
	g := horizonGrid(elevations)
	ids := []int{0, 1, 2}
	b := linearBoS(ids, 0)

	cfg := HorizonConfig{
		ObserverHeight:     5,
		Scale:              1,
		DiscardShortRings:  true,
		ShortRingThreshold: 100,
	}
	result := Sweep(b, g, true, cfg)

	assert.Nil(t, result.Rings)
	assert.Equal(t, 0.0, result.Surface)
}

// TestSweep_VolumetricAccumulatesAlongsideSurface needs a ring that
// opens somewhere other than the PoV itself: ring 0 always opens with
// openD = openH = 0 (the PoV's own position), which zeroes its volume
// contribution by construction, so a second ring is required to see a
// nonzero total.
func TestSweep_VolumetricAccumulatesAlongsideSurface(t *testing.T) {
	elevations := []float64{0, 0, -100, 50, 0}
	g := horizonGrid(elevations)
	ids := []int{0, 1, 2, 3, 4}
	b := linearBoS(ids, 0)

	cfg := HorizonConfig{ObserverHeight: 5, Scale: 1, Volumetric: true}
	result := Sweep(b, g, true, cfg)

	require.Len(t, result.Rings, 2)
	assert.Greater(t, result.Volume, 0.0)
}
