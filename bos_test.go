package tvs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// precomputeJournal is a minimal in-memory PositionSource good enough
// for tests: it records during precompute and replays during compute.
type precomputeJournal struct {
	positions []int32
	cursor    int
}

func (j *precomputeJournal) Record(pos int32) { j.positions = append(j.positions, pos) }
func (j *precomputeJournal) Next() int32{
	v := j.positions[j.cursor]
	j.cursor++
	return v
}

// TestBoS_ContiguityInvariant covers spec §8's BoS-contiguity
// invariant: at every step k, the band holds exactly
// min(bw, 2k+1, 2(N-1-k)+1) distinct points.
func TestBoS_ContiguityInvariant(t *testing.T) {
	g := flatGrid(9, 0)
	g.Adjust(0, 0.001)

	b := NewBoS(g)
	b.Setup(true)
	journal := &precomputeJournal{}

	n := g.Size()
	for k := 0; k < n; k++ {
		b.Advance(k, journal)

		want := b.bandSize
		if v := 2*k + 1; v < want {
			want = v
		}
		if v := 2*(n-1-k) + 1; v < want {
			want = v
		}
		require.Equal(t, want, b.Contiguous(), "k=%d", k)
	}
}

// TestBoS_JournalReplayMatchesPrecompute covers the precompute/replay
// contract a cached journal must satisfy: rerunning the same advance
// schedule against the recorded journal reproduces the same PoV
// sequence as the live precompute run.
func TestBoS_JournalReplayMatchesPrecompute(t *testing.T) {
	g := flatGrid(9, 0)
	g.Adjust(30, 0.001)
	n := g.Size()

	pre := NewBoS(g)
	pre.Setup(true)
	journal := &precomputeJournal{}
	wantPovs := make([]int, n)
	for k := 0; k < n; k++ {
		pre.Advance(k, journal)
		wantPovs[k] = pre.PovID()
	}

	replay := NewBoS(g)
	replay.Setup(false)
	journal.cursor = 0
	for k := 0; k < n; k++ {
		replay.Advance(k, journal)
		assert.Equal(t, wantPovs[k], replay.PovID(), "k=%d", k)
	}
}

func TestBoS_WalkStopsAtSentinels(t *testing.T) {
	g := flatGrid(9, 0)
	g.Adjust(0, 0.001)

	b := NewBoS(g)
	b.Setup(true)
	journal := &precomputeJournal{}

	n := g.Size()
	for k := 0; k < n; k++ {
		b.Advance(k, journal)
	}

	var forward, backward int
	b.Walk(true, func(int) { forward++ })
	b.Walk(false, func(int) { backward++ })
	assert.Equal(t, b.Contiguous()-1, forward+backward)
}
