package tvs

import (
	"fmt"
	"log"
)

// SectorResult is one sector angle's contribution: per-point forward
// and backward surface (and optional volume), indexed by grid point id
// (Grid.ID), zero at every non-computable point.
type SectorResult struct {
	Angle int

	SurfaceF []float64
	SurfaceB []float64
	VolumeF  []float64
	VolumeB  []float64

	Rings []PointRings // only populated when keepRings is set
}

// PointRings is one computable point's ring-sector breakdown for one
// sector angle, the unit the optional ring-sector file (C8) persists.
type PointRings struct {
	PointID  int
	Forward  []RingSector
	Backward []RingSector
}

// RunSector drives one sector angle end to end: rotate the axes (C2),
// replay or record the BoS advance schedule (C3) over every point,
// and sweep the horizon kernel (C5) forward and backward from each
// computable point of view. This is C6, grounded on the teacher's
// cmd/main.go convert_gsf single-item pipeline shape: one function
// doing the full per-item sequence, called either directly or from a
// pool worker.
//
// strict runs the spec §8/§10 invariant checks (C10) inline and aborts
// the sector on the first violation, per Config.Strict; it costs an
// extra O(N) pass per sector so production runs leave it off.
func RunSector(g *Grid, angle int, shift float64, cfg HorizonConfig, precompute bool, src PositionSource, keepRings, strict bool) (SectorResult, error) {
	g.Adjust(angle, shift)

	if strict {
		if report := CheckOrdering(g); !report.OrderingBijective {
			if jsn, jerr := JsonDumps(report); jerr == nil {
				log.Println("ordering invariant violated:", jsn)
			}
			return SectorResult{}, fmt.Errorf("sector %d: %w", angle, ErrOrderingNotBijective)
		}
	}

	b := NewBoS(g)
	b.Setup(precompute)

	n := g.Size()
	result := SectorResult{
		Angle:    angle,
		SurfaceF: make([]float64, n),
		SurfaceB: make([]float64, n),
	}
	if cfg.Volumetric {
		result.VolumeF = make([]float64, n)
		result.VolumeB = make([]float64, n)
	}

	computed := 0
	for k := 0; k < n; k++ {
		b.Advance(k, src)

		if strict {
			if report := CheckContiguity(b, k, n); !report.ContiguityHolds {
				if jsn, jerr := JsonDumps(report); jerr == nil {
					log.Printf("contiguity invariant violated at slot %d: %s", b.Pov(), jsn)
				}
				return SectorResult{}, fmt.Errorf("sector %d, k=%d: %w", angle, k, ErrBosOverflow)
			}
		}

		povID := b.PovID()
		if !g.IsComputable(povID) {
			continue
		}

		fwd := Sweep(b, g, true, cfg)
		bwd := Sweep(b, g, false, cfg)

		if strict {
			if report := CheckRingPairing(fwd.Rings); !report.RingsPaired {
				return SectorResult{}, fmt.Errorf("sector %d, point %d, forward: %w", angle, povID, ErrRingUnpaired)
			}
			if report := CheckRingPairing(bwd.Rings); !report.RingsPaired {
				return SectorResult{}, fmt.Errorf("sector %d, point %d, backward: %w", angle, povID, ErrRingUnpaired)
			}
		}

		result.SurfaceF[povID] = fwd.Surface
		result.SurfaceB[povID] = bwd.Surface
		if cfg.Volumetric {
			result.VolumeF[povID] = fwd.Volume
			result.VolumeB[povID] = bwd.Volume
		}
		if keepRings {
			result.Rings = append(result.Rings, PointRings{
				PointID:  povID,
				Forward:  fwd.Rings,
				Backward: bwd.Rings,
			})
		}
		computed++
	}

	log.Printf("sector %d: %d computable points swept", angle, computed)
	return result, nil
}
