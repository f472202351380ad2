package search

import (
	"io/fs"
	"path/filepath"
)

// trawl is an internal general purpose walking function. The basename
// is only matched against pattern, eg ("*.dem", "tasmania_10m.dem").
func trawl(root, pattern string, items []string) ([]string, error) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		match, err := filepath.Match(pattern, filepath.Base(path))
		if err != nil {
			return err
		}
		if match {
			items = append(items, path)
		}
		return nil
	})
	return items, err
}

// FindDEM recursively searches root for files matching *.dem, feeding
// the run-batch command's directory trawl (cmd/tvs).
func FindDEM(root string) ([]string, error) {
	return trawl(root, "*.dem", make([]string, 0))
}
