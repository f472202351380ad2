package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalStore_RecordThenNextReplaysInOrder(t *testing.T) {
	j := NewJournalStore()
	j.Record(3)
	j.Record(-1)
	j.Record(-2)

	assert.Equal(t, 3, j.Len())
	assert.Equal(t, int32(3), j.Next())
	assert.Equal(t, int32(-1), j.Next())
	assert.Equal(t, int32(-2), j.Next())
}

func TestJournalStore_NextPanicsWhenExhausted(t *testing.T) {
	j := NewJournalStore()
	j.Record(1)
	j.Next()
	assert.Panics(t, func() { j.Next() })
}

func TestJournalStore_FlushAndLoadRoundTrips(t *testing.T) {
	j := NewJournalStore()
	for _, v := range []int32{0, -1, -2, 7, -999999, 999999} {
		j.Record(v)
	}

	path := filepath.Join(t.TempDir(), "sector-0.bin")
	require.NoError(t, j.Flush(path))

	loaded, err := LoadJournalStore(path)
	require.NoError(t, err)
	require.Equal(t, j.Len(), loaded.Len())

	for i := 0; i < j.Len(); i++ {
		assert.Equal(t, j.positions[i], loaded.Next())
	}
}
