package rasterio

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

var ErrShortHeader = errors.New("header is shorter than 256 bytes")
var ErrShortBody = errors.New("grid body is truncated")

// maxInMemoryDEM is the size below which ReadGrid buffers the whole DEM
// into memory via GenericStream rather than streaming it off disk —
// cheap enough for the grid sizes spec §6 targets. The buffer lives only
// for the duration of the ReadGrid call.
const maxInMemoryDEM = 256 << 20 // 256 MiB

// ReadGrid reads a DEM file: a 256-byte header followed by a row-major,
// bottom-left-origin grid of header.Cols x header.Rows 2-byte unsigned
// little-endian elevation samples. The returned elevations are
// canonicalised to top-left row-major order — id = y*cols + x with y=0
// at the top — since every consumer in this module works in that
// orientation.
func ReadGrid(path string) (Header, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Header{}, nil, err
	}

	stream, err := GenericStream(f, uint64(info.Size()), info.Size() <= maxInMemoryDEM)
	if err != nil {
		return Header{}, nil, err
	}

	var block [HeaderSize]byte
	n, err := io.ReadFull(stream, block[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		return Header{}, nil, err
	}
	if n < HeaderSize {
		return Header{}, nil, ErrShortHeader
	}

	if pos, err := Tell(stream); err != nil || pos != HeaderSize {
		return Header{}, nil, ErrShortHeader
	}

	header, err := DecodeHeader(block)
	if err != nil {
		return Header{}, nil, err
	}

	cols, rows := int(header.Cols), int(header.Rows)
	const cellSize = 2

	body := make([]byte, cols*rows*cellSize)
	nb, err := io.ReadFull(stream, body)
	if err != nil && err != io.ErrUnexpectedEOF {
		return Header{}, nil, err
	}
	if nb < len(body) {
		return Header{}, nil, ErrShortBody
	}

	elevations := make([]float64, cols*rows)
	for onDiskRow := 0; onDiskRow < rows; onDiskRow++ {
		// on-disk row 0 is the southernmost (bottom) row; row y in our
		// top-left layout is on-disk row (rows-1-y).
		y := rows - 1 - onDiskRow
		for x := 0; x < cols; x++ {
			off := (onDiskRow*cols + x) * cellSize
			elevations[y*cols+x] = float64(binary.LittleEndian.Uint16(body[off : off+2]))
		}
	}

	return header, elevations, nil
}
