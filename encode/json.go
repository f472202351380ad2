// Package encode holds small serialisation helpers used by the cache
// package to write raw byte blobs rather than JSON-marshalled structs
// (those live in the root package's WriteJson). rasterio opens and
// writes its own files.
package encode

import "os"

// WriteBytes writes data to file_path, truncating any existing file.
// Used by the precompute cache writers (C4) to flush a sector's
// position-journal or delta-band blob in one shot.
func WriteBytes(file_path string, data []byte) (int, error) {
	f, err := os.OpenFile(file_path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return f.Write(data)
}
