// Package cache implements the two on-disk sector-cache layouts spec
// §6 allows for the precompute/compute split (C4): a position-journal
// (one signed placement code per insertion) and a delta-band table (an
// RLE-encoded band snapshot per computable point of view). Both are
// grounded on original_source/src/BOS.cpp's
// openPreComputedDataFile/writeAndClose/fread sequence and the
// teacher's decode/file.go position-tracking shape, generalised here
// from a fixed GSF record layout to the two cache layouts spec.md §6
// admits.
package cache

import (
	"encoding/binary"
	"os"

	"github.com/tombh/total-viewsheds/encode"
)

// JournalStore implements the position-journal layout: precompute
// records one signed int32 per BoS insertion via Record; compute
// replays them in the same order via Next. Satisfies the BoS package's
// PositionSource interface structurally.
type JournalStore struct {
	positions []int32
	cursor    int
}

// NewJournalStore returns an empty store ready to Record during
// precompute.
func NewJournalStore() *JournalStore {
	return &JournalStore{}
}

// Record appends one placement code, called once per BoS insertion
// during the precompute pass.
func (j *JournalStore) Record(pos int32) {
	j.positions = append(j.positions, pos)
}

// Next returns the placement codes in record order, called once per
// BoS insertion during the compute pass. Panics if the journal is
// exhausted, which signals that the cache file does not match the
// advance schedule being replayed against it.
func (j *JournalStore) Next() int32 {
	v := j.positions[j.cursor]
	j.cursor++
	return v
}

// Len reports how many positions have been recorded or loaded.
func (j *JournalStore) Len() int { return len(j.positions) }

// Flush writes the recorded journal to path as a sequence of 4-byte
// little-endian signed ints, per spec §6's position-journal layout.
func (j *JournalStore) Flush(path string) error {
	buf := make([]byte, len(j.positions)*4)
	for i, p := range j.positions {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(p))
	}
	_, err := encode.WriteBytes(path, buf)
	return err
}

// LoadJournalStore reads back a journal file written by Flush, ready
// for sequential replay via Next.
func LoadJournalStore(path string) (*JournalStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n := len(raw) / 4
	positions := make([]int32, n)
	for i := 0; i < n; i++ {
		positions[i] = int32(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
	}
	return &JournalStore{positions: positions}, nil
}
