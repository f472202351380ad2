package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaBandStore_CaptureThenReconstructRoundTrips(t *testing.T) {
	s := NewDeltaBandStore(2)

	s.Capture([]int{12, 14, 16, 16, 16}, []int{8, 5, 5, 1}, 10)
	s.Capture([]int{21, 22}, []int{18}, 20)

	forward, backward := s.Reconstruct(0, 10)
	assert.Equal(t, []int{12, 14, 16, 16, 16}, forward)
	assert.Equal(t, []int{8, 5, 5, 1}, backward)

	forward, backward = s.Reconstruct(1, 20)
	assert.Equal(t, []int{21, 22}, forward)
	assert.Equal(t, []int{18}, backward)
}

func TestDeltaBandStore_CaptureHandlesEmptySequences(t *testing.T) {
	s := NewDeltaBandStore(1)
	s.Capture(nil, nil, 5)

	forward, backward := s.Reconstruct(0, 5)
	assert.Empty(t, forward)
	assert.Empty(t, backward)
}

func TestDeltaBandStore_FlushAndLoadRoundTrips(t *testing.T) {
	s := NewDeltaBandStore(2)
	s.Capture([]int{12, 14, 16}, []int{8, 5, 5, 1}, 10)
	s.Capture([]int{21, 22}, []int{18}, 20)

	path := filepath.Join(t.TempDir(), "sector-0.deltaband")
	require.NoError(t, s.Flush(path))

	loaded, err := LoadDeltaBandStore(path, 2)
	require.NoError(t, err)

	wantF, wantB := s.Reconstruct(0, 10)
	gotF, gotB := loaded.Reconstruct(0, 10)
	assert.Equal(t, wantF, gotF)
	assert.Equal(t, wantB, gotB)

	wantF, wantB = s.Reconstruct(1, 20)
	gotF, gotB = loaded.Reconstruct(1, 20)
	assert.Equal(t, wantF, gotF)
	assert.Equal(t, wantB, gotB)
}

func TestEncodeDecodeRuns_RoundTrips(t *testing.T) {
	pov := 100
	ids := []int{101, 102, 103, 110, 117, 124}
	runs := encodeRuns(pov, ids)
	assert.Equal(t, ids, decodeRuns(pov, runs))
}
