package rasterio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTVS_OverridesHeaderFieldsAndShrinksExtents(t *testing.T) {
	inputBlock := [HeaderSize]byte{}
	inputHeader, err := DecodeHeader(inputBlock)
	require.NoError(t, err)
	inputHeader.Cols = 100
	inputHeader.Rows = 100
	inputHeader.DataSize = 2
	inputHeader.FloatFlag = 0
	inputHeader.MinX, inputHeader.MinY = 0, 0
	inputHeader.MaxX, inputHeader.MaxY = 100, 100

	path := filepath.Join(t.TempDir(), "out.tvs")
	values := []float32{1.5, 2.5, 3.5, 4.5}
	require.NoError(t, WriteTVS(path, inputHeader, values, 2, 2, 10))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, HeaderSize+len(values)*4)

	var block [HeaderSize]byte
	copy(block[:], raw[:HeaderSize])
	got, err := DecodeHeader(block)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), got.Cols)
	assert.Equal(t, uint32(2), got.Rows)
	assert.Equal(t, uint16(4), got.DataSize)
	assert.Equal(t, uint16(1), got.FloatFlag)
	assert.Equal(t, 10.0, got.MinX)
	assert.Equal(t, 10.0, got.MinY)
	assert.Equal(t, 90.0, got.MaxX)
	assert.Equal(t, 90.0, got.MaxY)
}
