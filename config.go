package tvs

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config mirrors the configuration options of spec §6: grid geometry,
// sweep parameters, the precompute/compute pass selector, and the
// directories each stage reads from or writes to.
//
// It is populated directly from CLI flags by cmd/tvs, the same
// flags-to-struct idiom the teacher's cmd/main.go uses rather than a
// config-file parser.
type Config struct {
	DEMWidth  int
	DEMHeight int
	DEMScale  float64 // metres per cell

	MaxLineOfSight float64 // metres; 0 means "one third of grid width"
	ObserverHeight float64 // metres

	TotalSectors int     // default 180
	SectorShift  float64 // degrees, default 0.001

	DiscardShortRings    bool    // §9 open question, resolved as a knob
	ShortRingThreshold   float64 // cells, default 1.5
	CurvedEarth          bool
	EarthRadiusInCells   float64
	Volumetric           bool
	WriteRingSectorFiles bool

	// TowerX, TowerY select a single "tower" observer point (SPEC_FULL.md
	// §10's per-tower coverage bookkeeping): when set, the ring-sector
	// file holds only that point's full forward/backward ring list
	// instead of every computable point's. -1, -1 (the default) disables
	// the restriction.
	TowerX int
	TowerY int

	IsPrecompute bool
	SingleSector int // -1 means "all sectors"

	CacheLayout string // "journal" or "deltaband"; not read by RunSector or cmd/tvs, which always use the journal

	InputFile     string
	TVSFile       string
	VolumeFile    string
	OutputDir     string
	RingSectorDir string
	SectorCacheDir string

	Workers int // 0 means runtime.NumCPU()
	Strict  bool
}

// DefaultConfig returns a Config with the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		DEMScale:             1.0,
		ObserverHeight:       1.5,
		TotalSectors:         180,
		SectorShift:          0.001,
		DiscardShortRings:    true,
		ShortRingThreshold:   1.5,
		EarthRadiusInCells:   6_371_000.0,
		CacheLayout:          "journal",
		SingleSector:         -1,
		TowerX:               -1,
		TowerY:               -1,
	}
}

// HasTower reports whether a single tower observer point has been
// configured, restricting the ring-sector file to just that point.
func (c *Config) HasTower() bool { return c.TowerX >= 0 && c.TowerY >= 0 }

// Validate checks the configuration-class failure modes of spec §7:
// non-square grid, an invalid sector divisor, and missing output
// directories. It never touches the elevation file itself — that is
// an I/O-class error raised by rasterio.
func (c *Config) Validate() error {
	if c.DEMWidth <= 0 || c.DEMHeight <= 0 {
		return errors.Join(ErrBadConfig, errors.New("dem_width and dem_height must be positive"))
	}
	if c.DEMWidth != c.DEMHeight {
		return ErrNonSquareGrid
	}
	if c.TotalSectors <= 0 || 180%c.TotalSectors != 0 {
		return ErrSectorDivisor
	}
	if c.MaxLineOfSight <= 0 {
		c.MaxLineOfSight = float64(c.DEMWidth) / 3.0
	}
	if c.EarthRadiusInCells <= 0 {
		c.EarthRadiusInCells = 6_371_000.0
	}
	if c.ShortRingThreshold <= 0 {
		c.ShortRingThreshold = 1.5
	}
	if (c.TowerX >= 0) != (c.TowerY >= 0) {
		return errors.Join(ErrBadConfig, errors.New("tower_x and tower_y must both be set or both left at -1"))
	}
	if c.HasTower() && (c.TowerX >= c.DEMWidth || c.TowerY >= c.DEMHeight) {
		return errors.Join(ErrBadConfig, errors.New("tower point lies outside the DEM grid"))
	}
	for _, dir := range []string{c.OutputDir, c.SectorCacheDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				return errors.Join(ErrMissingDir, errors.New(dir))
			}
			return err
		}
	}
	if c.WriteRingSectorFiles && c.RingSectorDir == "" {
		return errors.Join(ErrBadConfig, errors.New("ring_sector_dir required when write_ring_sector_files is set"))
	}
	return nil
}

// SectorAngles returns the sector angles a run covers: every angle from
// 0 up to (not including) 180 in TotalSectors steps, or just
// SingleSector when it is set (>= 0), per spec §6's single-sector debug
// knob.
func SectorAngles(cfg *Config) []int {
	if cfg.SingleSector >= 0 {
		return []int{cfg.SingleSector}
	}
	step := 180 / cfg.TotalSectors
	angles := make([]int, 0, cfg.TotalSectors)
	for a := 0; a < 180; a += step {
		angles = append(angles, a)
	}
	return angles
}

// SectorCachePath returns the per-angle cache filename, one per sector
// as required by §5's "exclusive per sector (filename encodes the
// angle)" resource policy.
func (c *Config) SectorCachePath(angle int) string {
	return filepath.Join(c.SectorCacheDir, sectorFileName(angle)+".bin")
}

// RingSectorPath returns the optional per-angle ring-sector filename.
func (c *Config) RingSectorPath(angle int) string {
	return filepath.Join(c.RingSectorDir, sectorFileName(angle)+".rs")
}

func sectorFileName(angle int) string {
	return "sector-" + strconv.Itoa(angle)
}
