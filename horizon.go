package tvs

import "math"

// RingSector is a maximal visible arc along one sweep direction from
// the PoV, spec §3.
type RingSector struct {
	Open  int
	Close int
}

// SweepResult is one direction's contribution from the horizon kernel,
// C5: the surface (and optional volume) accumulated over the sector's
// half, plus the ring sectors discovered along the way.
type SweepResult struct {
	Surface float64
	Volume  float64
	Rings   []RingSector
}

// HorizonConfig carries the knobs spec §4.3 and §9 expose: the
// curved-earth correction, volumetric accumulation, and the
// short-baseline discard rule.
type HorizonConfig struct {
	ObserverHeight     float64
	CurvedEarth        bool
	EarthRadiusInCells float64
	Volumetric         bool
	DiscardShortRings  bool
	ShortRingThreshold float64
	Scale              float64
}

// Sweep walks the BoS in one direction from the PoV, tracking a
// running maximum elevation angle to discover opening/closing ring
// sectors and accumulate visible surface (and, optionally, volume).
// This is C5's per-direction contract, transcribed directly from spec
// §4.3's pseudocode (itself grounded on
// original_source/Sector.cpp's inner sweep loop).
func Sweep(b *BoS, g *Grid, forward bool, cfg HorizonConfig) SweepResult {
	povID := b.PovID()
	povDist := g.Sector.Dist[povID]
	povElev := g.Elevation(povID) + cfg.ObserverHeight

	visible := true
	maxAngle := math.Inf(-1)
	var openD, openH float64 // ring 0 opens at the PoV itself: d=0, h=0

	var surface, volume float64
	rings := []RingSector{{Open: povID}}
	nrs := 0
	var oneRingCloseDist float64

	lastID := povID
	var lastD, lastH float64

	b.Walk(forward, func(id int) {
		lastID = id
		d := g.Sector.Dist[id]
		deltaD := math.Abs(d - povDist)
		lastD = deltaD

		deltaH := g.Elevation(id) - povElev
		if cfg.CurvedEarth {
			deltaH -= (deltaD * deltaD) / (2 * cfg.EarthRadiusInCells)
		}
		lastH = deltaH
		angle := deltaH / deltaD
		above := angle > maxAngle

		if above && !visible {
			if nrs >= len(rings) {
				rings = append(rings, RingSector{})
			}
			rings[nrs].Open = id
			openD, openH = deltaD, deltaH
		}
		if visible && !above {
			rings[nrs].Close = id
			surface += deltaD*deltaD - openD*openD
			if cfg.Volumetric {
				volume += (deltaD + openD) * math.Abs(openD*deltaD-deltaH*openH)
			}
			if nrs == 0 {
				oneRingCloseDist = deltaD
			}
			nrs++
		}

		visible = above
		if angle > maxAngle {
			maxAngle = angle
		}
	})

	if visible {
		if nrs >= len(rings) {
			rings = append(rings, RingSector{})
		}
		rings[nrs].Close = lastID
		surface += lastD*lastD - openD*openD
		if cfg.Volumetric {
			volume += (lastD + openD) * math.Abs(openD*lastD-lastH*openH)
		}
		if nrs == 0 {
			oneRingCloseDist = lastD
		}
		nrs++
	}
	rings = rings[:nrs]

	if cfg.DiscardShortRings && nrs == 1 && oneRingCloseDist < cfg.ShortRingThreshold {
		return SweepResult{}
	}

	s := cfg.Scale
	result := SweepResult{Rings: rings}
	result.Surface = surface * math.Pi / (360 * s * s)
	if cfg.Volumetric {
		result.Volume = volume * math.Pi / (360 * s * s)
	}
	return result
}
