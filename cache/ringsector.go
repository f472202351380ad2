package cache

import (
	"encoding/binary"
	"os"

	"github.com/tombh/total-viewsheds/encode"
)

// RingSectorEntry is one grid point's forward and backward ring
// sector id lists, spec §6's optional per-angle ring-sector file.
type RingSectorEntry struct {
	Forward  []int32 // nF ids, even count, opening/closing pairs
	Backward []int32 // nB ids, even count
}

// WriteRingSectors writes entries in grid order: nF, nF ids, nB, nB
// ids, per point. Used when a run is configured to retain the full
// per-point ring-sector breakdown (e.g. the "tower" coverage mode of
// SPEC_FULL.md §10) rather than only the aggregated surface.
func WriteRingSectors(path string, entries []RingSectorEntry) error {
	var buf []byte
	for _, e := range entries {
		buf = appendCountedInt32s(buf, e.Forward)
		buf = appendCountedInt32s(buf, e.Backward)
	}
	_, err := encode.WriteBytes(path, buf)
	return err
}

func appendCountedInt32s(buf []byte, ids []int32) []byte {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(ids)))
	buf = append(buf, n[:]...)
	return appendInt32s(buf, ids)
}

// ReadRingSectors reads back n points' worth of ring-sector entries.
func ReadRingSectors(path string, n int) ([]RingSectorEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	off := 0
	readList := func() []int32 {
		count := int(binary.LittleEndian.Uint32(raw[off : off+4]))
		off += 4
		ids := make([]int32, count)
		for i := 0; i < count; i++ {
			ids[i] = int32(binary.LittleEndian.Uint32(raw[off : off+4]))
			off += 4
		}
		return ids
	}

	entries := make([]RingSectorEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = RingSectorEntry{Forward: readList(), Backward: readList()}
	}
	return entries, nil
}
