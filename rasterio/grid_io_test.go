package rasterio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDEM writes a minimal synthetic DEM file: a 256-byte header with
// cols/rows set, followed by row-major, bottom-left-origin uint16
// little-endian cells. cellAt(onDiskRow, x) supplies the on-disk value.
func writeDEM(t *testing.T, path string, cols, rows int, cellAt func(onDiskRow, x int) uint16) {
	t.Helper()
	var block [HeaderSize]byte
	binary.LittleEndian.PutUint32(block[10:14], uint32(cols))
	binary.LittleEndian.PutUint32(block[14:18], uint32(rows))

	body := make([]byte, cols*rows*2)
	for r := 0; r < rows; r++ {
		for x := 0; x < cols; x++ {
			off := (r*cols + x) * 2
			binary.LittleEndian.PutUint16(body[off:off+2], cellAt(r, x))
		}
	}

	require.NoError(t, os.WriteFile(path, append(block[:], body...), 0o644))
}

func TestReadGrid_FlipsBottomLeftOriginToTopLeft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flip.dem")
	// on-disk row 0 (southernmost) gets value 100+x; row 1 gets 200+x.
	writeDEM(t, path, 3, 2, func(onDiskRow, x int) uint16 {
		if onDiskRow == 0 {
			return uint16(100 + x)
		}
		return uint16(200 + x)
	})

	header, elevations, err := ReadGrid(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), header.Cols)
	assert.Equal(t, uint32(2), header.Rows)

	// top-left row (y=0) must be on-disk row 1 (the northernmost row).
	assert.Equal(t, []float64{200, 201, 202}, elevations[0:3])
	// bottom row (y=1) must be on-disk row 0.
	assert.Equal(t, []float64{100, 101, 102}, elevations[3:6])
}

func TestReadGrid_RejectsShortHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short-header.dem")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	_, _, err := ReadGrid(path)
	require.ErrorIs(t, err, ErrShortHeader)
}

func TestReadGrid_RejectsTruncatedBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short-body.dem")
	var block [HeaderSize]byte
	binary.LittleEndian.PutUint32(block[10:14], 4)
	binary.LittleEndian.PutUint32(block[14:18], 4)
	require.NoError(t, os.WriteFile(path, append(block[:], make([]byte, 4)...), 0o644))

	_, _, err := ReadGrid(path)
	require.ErrorIs(t, err, ErrShortBody)
}
