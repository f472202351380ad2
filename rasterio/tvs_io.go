package rasterio

import (
	"encoding/binary"
	"math"
	"os"
)

// WriteTVS writes the final TVS raster: the input DEM's 256-byte
// header passed through, with cols/rows/data-size/float-flag/extents
// overridden per spec §6, followed by the computable_width² float32
// surface values in row-major order. shrink is max_line_of_sight in
// grid units, the amount every extent edge is pulled in by.
func WriteTVS(path string, inputHeader Header, values []float32, computableWidth, computableHeight int, shrink float64) error {
	h := inputHeader
	h.Cols = uint32(computableWidth)
	h.Rows = uint32(computableHeight)
	h.DataSize = 4
	h.FloatFlag = 1
	h.MinX += shrink
	h.MinY += shrink
	h.MaxX -= shrink
	h.MaxY -= shrink

	block, err := EncodeHeader(h)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(block[:]); err != nil {
		return err
	}

	body := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(body[i*4:i*4+4], math.Float32bits(v))
	}
	_, err = f.Write(body)
	return err
}
