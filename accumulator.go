package tvs

import (
	"context"
	"runtime"
	"sync"

	"github.com/alitto/pond"
)

// Accumulator merges per-sector results into the final per-point TVS
// (and, optionally, total volume), C7. Each worker owns a private
// SectorResult; Merge is the single mutual-exclusion region spec §5
// requires when combining them.
type Accumulator struct {
	mu sync.Mutex

	Surface []float64
	Volume  []float64
}

// NewAccumulator allocates a zeroed accumulator for a grid of n points.
func NewAccumulator(n int) *Accumulator {
	return &Accumulator{Surface: make([]float64, n)}
}

// Merge adds one sector's forward and backward contribution into the
// running total, per spec §4.5's "surface_F + surface_B" aggregation.
func (a *Accumulator) Merge(r SectorResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id := range a.Surface {
		a.Surface[id] += r.SurfaceF[id] + r.SurfaceB[id]
	}
	if r.VolumeF != nil {
		if a.Volume == nil {
			a.Volume = make([]float64, len(a.Surface))
		}
		for id := range a.Volume {
			a.Volume[id] += r.VolumeF[id] + r.VolumeB[id]
		}
	}
}

// RunAllSectors fans every sector angle out across a pond worker pool,
// sized workers (0 meaning runtime.NumCPU()), and merges each result
// as it completes. runOne does the full per-sector work, including
// whatever cache read/write its angle requires — the accumulator only
// owns the merge barrier, not the cache layout. Grounded on the
// teacher's cmd/main.go convert_gsf_list pool-then-submit shape.
func RunAllSectors(cfg *Config, workers int, runOne func(angle int) SectorResult) *Accumulator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := pond.New(workers, 0, pond.MinWorkers(workers), pond.Context(context.Background()))

	var acc *Accumulator
	var once sync.Once
	angles := SectorAngles(cfg)
	for _, angle := range angles {
		angle := angle
		pool.Submit(func() {
			result := runOne(angle)
			once.Do(func() { acc = NewAccumulator(len(result.SurfaceF)) })
			acc.Merge(result)
		})
	}

	pool.StopAndWait()
	return acc
}
