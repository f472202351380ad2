package tvs

import (
	"github.com/samber/lo"
)

// InvariantReport is the outcome of running the property checks of
// spec §8 over one sector's derived state: the ordering bijection, the
// BoS contiguity bound, and ring-sector pairing. C10.
type InvariantReport struct {
	OrderingBijective bool
	BadOrderingCount  int

	ContiguityHolds bool
	ContiguityMin   int
	ContiguityMax   int

	RingsPaired    bool
	UnpairedRings  int
}

// CheckOrdering verifies sector_ordered and sight_ordered are both
// permutations of [0, N), the invariant spec §4.1/§8 require of the
// axes rotator's output.
func CheckOrdering(g *Grid) InvariantReport {
	n := g.Size()
	report := InvariantReport{OrderingBijective: true}

	dupSector := lo.FindDuplicates(g.Sector.SectorOrdered)
	dupSight := lo.FindDuplicates(g.Sector.SightOrdered)
	report.BadOrderingCount = len(dupSector) + len(dupSight)

	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	got := lo.Uniq(g.Sector.SectorOrdered)
	missing, extra := lo.Difference(want, got)
	gotSight := lo.Uniq(g.Sector.SightOrdered)
	missingSight, extraSight := lo.Difference(want, gotSight)

	if report.BadOrderingCount > 0 || len(missing) > 0 || len(extra) > 0 || len(got) != n ||
		len(missingSight) > 0 || len(extraSight) > 0 || len(gotSight) != n {
		report.OrderingBijective = false
	}
	return report
}

// CheckContiguity verifies the BoS's occupancy stays within
// min(bandWidth, 2k+1, 2(N-1-k)+1) at every step k, spec §8's
// BoS-contiguity invariant.
func CheckContiguity(b *BoS, k, n int) InvariantReport {
	bound := b.bandSize
	if v := 2*k + 1; v < bound {
		bound = v
	}
	if v := 2*(n-1-k) + 1; v < bound {
		bound = v
	}

	report := InvariantReport{
		ContiguityMin: b.Contiguous(),
		ContiguityMax: bound,
	}
	report.ContiguityHolds = b.Contiguous() <= bound
	return report
}

// CheckRingPairing verifies every opened ring sector in a sweep result
// closed before the walk ended, spec §8's ring-sector-pairing
// invariant. An unclosed final ring is only valid when it terminates
// at the band's sentinel end, which Sweep always resolves internally —
// so a RingSector left at its zero value (Open == Close == 0) signals
// corruption upstream. A ring that merely closes at id 0 is not flagged.
func CheckRingPairing(rings []RingSector) InvariantReport {
	unpaired := lo.CountBy(rings, func(r RingSector) bool {
		return r.Open == r.Close && r.Open == 0
	})
	return InvariantReport{
		RingsPaired:   unpaired == 0,
		UnpairedRings: unpaired,
	}
}
