package cache

import (
	"encoding/binary"
	"os"

	"github.com/tombh/total-viewsheds/encode"
)

// DeltaBandStore implements the delta-band layout: for every
// computable point of view, the forward and backward sequences of
// point ids the BoS holds at that moment are captured as run-length
// encoded deltas between consecutive ids, per spec §6's "(count,
// delta) pairs" layout. Reconstruction at compute time prefix-sums
// the deltas back out from the PoV id, avoiding the O(bw) insertion
// search entirely.
type DeltaBandStore struct {
	forwardOffsets  []int32
	backwardOffsets []int32
	data            []int16
}

// NewDeltaBandStore returns an empty store sized for n computable
// points of view.
func NewDeltaBandStore(n int) *DeltaBandStore {
	return &DeltaBandStore{
		forwardOffsets:  make([]int32, 0, n),
		backwardOffsets: make([]int32, 0, n),
	}
}

// Capture records the forward and backward band sequences for the
// index-th computable PoV, in the order the BoS's Walk produces them.
func (s *DeltaBandStore) Capture(forwardIDs, backwardIDs []int, povID int) {
	s.forwardOffsets = append(s.forwardOffsets, int32(len(s.data)))
	s.data = append(s.data, encodeRuns(povID, forwardIDs)...)

	s.backwardOffsets = append(s.backwardOffsets, int32(len(s.data)))
	s.data = append(s.data, encodeRuns(povID, backwardIDs)...)
}

// Reconstruct returns the forward and backward id sequences captured
// for the index-th computable PoV.
func (s *DeltaBandStore) Reconstruct(index int, povID int) (forward, backward []int) {
	forward = decodeRuns(povID, s.data[s.forwardOffsets[index]:s.backwardOffsets[index]])

	bEnd := int32(len(s.data))
	if index+1 < len(s.backwardOffsets) {
		bEnd = s.forwardOffsets[index+1]
	}
	backward = decodeRuns(povID, s.data[s.backwardOffsets[index]:bEnd])
	return forward, backward
}

// encodeRuns RLE-encodes the consecutive-id deltas of a band walk
// starting at pov: ids[0]-pov, ids[1]-ids[0], ... Runs of equal delta
// are folded into one (count, delta) pair.
func encodeRuns(pov int, ids []int) []int16 {
	if len(ids) == 0 {
		return nil
	}
	deltas := make([]int, len(ids))
	prev := pov
	for i, id := range ids {
		deltas[i] = id - prev
		prev = id
	}

	runs := make([]int16, 0, len(deltas)*2)
	count := 1
	for i := 1; i <= len(deltas); i++ {
		if i < len(deltas) && deltas[i] == deltas[i-1] {
			count++
			continue
		}
		runs = append(runs, int16(count), int16(deltas[i-1]))
		count = 1
	}
	return runs
}

// decodeRuns expands a run-length stream back into the original id
// sequence by prefix-summing from pov.
func decodeRuns(pov int, runs []int16) []int {
	ids := make([]int, 0, len(runs))
	cur := pov
	for i := 0; i+1 < len(runs); i += 2 {
		count, delta := int(runs[i]), int(runs[i+1])
		for j := 0; j < count; j++ {
			cur += delta
			ids = append(ids, cur)
		}
	}
	return ids
}

// Flush writes the store to path: two int32 offset tables (forward,
// backward) followed by a data_size int32 and the int16 run stream,
// per spec §6's delta-band layout.
func (s *DeltaBandStore) Flush(path string) error {
	buf := make([]byte, 0, (len(s.forwardOffsets)+len(s.backwardOffsets))*4+4+len(s.data)*2)
	buf = appendInt32s(buf, s.forwardOffsets)
	buf = appendInt32s(buf, s.backwardOffsets)

	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(s.data)))
	buf = append(buf, sizeBuf[:]...)

	for _, v := range s.data {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		buf = append(buf, b[:]...)
	}

	_, err := encode.WriteBytes(path, buf)
	return err
}

// LoadDeltaBandStore reads back a store written by Flush for n
// computable points of view.
func LoadDeltaBandStore(path string, n int) (*DeltaBandStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	off := 0
	readOffsets := func() []int32 {
		vals := make([]int32, n)
		for i := 0; i < n; i++ {
			vals[i] = int32(binary.LittleEndian.Uint32(raw[off : off+4]))
			off += 4
		}
		return vals
	}

	forward := readOffsets()
	backward := readOffsets()

	dataSize := int(binary.LittleEndian.Uint32(raw[off : off+4]))
	off += 4

	data := make([]int16, dataSize)
	for i := 0; i < dataSize; i++ {
		data[i] = int16(binary.LittleEndian.Uint16(raw[off : off+2]))
		off += 2
	}

	return &DeltaBandStore{forwardOffsets: forward, backwardOffsets: backward, data: data}, nil
}

func appendInt32s(buf []byte, vals []int32) []byte {
	for _, v := range vals {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		buf = append(buf, b[:]...)
	}
	return buf
}
