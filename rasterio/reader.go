package rasterio

import (
	"bytes"
	"encoding/binary"
	"os"
)

// Stream caters for a generic reader type so the grid/header codecs can
// handle either a file on disk or an in-memory byte stream. All either
// care about is Read and Seek, which both *os.File and *bytes.Reader
// implement.
type Stream interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
}

// Tell reports the current position within a stream opened for
// reading.
func Tell(stream Stream) (int64, error) {
	return stream.Seek(0, 1)
}

// GenericStream buffers size bytes from an *os.File into memory when
// inmem is set, otherwise hands the file back unchanged. ReadGrid uses
// it to read a small DEM in one go and then decode it from memory.
func GenericStream(stream *os.File, size uint64, inmem bool) (Stream, error) {
	if !inmem {
		return stream, nil
	}
	buffer := make([]byte, size)
	if err := binary.Read(stream, binary.BigEndian, &buffer); err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}
