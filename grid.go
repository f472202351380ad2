package tvs

// Grid holds the DEM dimensions and elevations, plus the per-sector
// derived arrays (sector order, sight order, perpendicular distances)
// that the axes rotator (C2) produces for whichever sector angle is
// currently active. Grounded on original_source/src/DEM.h's size/scale/
// computable_points field set.
type Grid struct {
	Width  int
	Height int
	Scale  float64 // cell side length, metres

	// Elevations is row-major, top-left origin, one value per
	// id = y*Width + x, canonicalised at load time from the on-disk
	// bottom-left row-major layout (see rasterio.ReadGrid).
	Elevations []float64

	MaxLineOfSight float64
	bandWidth      int // forced odd, defaults to Width

	// ComputableSide is the side length of the interior square whose
	// points lie at least MaxLineOfSight cells from every edge.
	ComputableSide int
	computableMin  int // inclusive lower bound on x and y for computable points

	// Sector holds the current sector's derived arrays. Released and
	// rebuilt on every sector-angle change (owned by C2, scoped per
	// spec §5's "Memory discipline").
	Sector SectorGeometry
}

// SectorGeometry is the per-sector scratch owned by the axes rotator.
type SectorGeometry struct {
	Angle  int // degrees, 0..180 (reduced to <90 internally when quad==1)
	Quad   int // 0 or 1

	// SectorOrdered[k] is the id of the k-th point visited by the
	// parallel sweep.
	SectorOrdered []int

	// SightOrdered[id] is the rank of point id along the axis
	// perpendicular to the sweep.
	SightOrdered []int

	// Dist[id] is the signed perpendicular distance (in cells) of
	// point id from the sweep axis.
	Dist []float64
}

// NewGrid constructs a Grid from raw elevations already canonicalised to
// top-left row-major order. scale is the cell side length in metres,
// maxLOS is the line-of-sight radius in metres (0 defaults to a third
// of the grid width, per spec §6).
func NewGrid(width, height int, elevations []float64, scale, maxLOS float64) (*Grid, error) {
	if width != height {
		return nil, ErrNonSquareGrid
	}
	if len(elevations) != width*height {
		return nil, ErrShortBody
	}
	if maxLOS <= 0 {
		maxLOS = float64(width) / 3.0
	}

	g := &Grid{
		Width:          width,
		Height:         height,
		Scale:          scale,
		Elevations:     elevations,
		MaxLineOfSight: maxLOS,
		bandWidth:      ensureOdd(width),
	}

	// original_source/src/DEM.cpp's isPointComputable bounds x/y to
	// [max_line_of_sight, (width-1)*scale - max_line_of_sight] inclusive;
	// in cell units that's [minBound, width-minBound).
	minBound := int(maxLOS / scale)
	g.computableMin = minBound
	side := width - 2*minBound
	if side < 0 {
		side = 0
	}
	g.ComputableSide = side

	return g, nil
}

// NewGridCopy returns a Grid sharing g's elevations (read-only, per
// spec §5's shared-resource policy) but with its own independent
// Sector scratch, so concurrent sector workers never race on
// Adjust's per-sector rebuild.
func NewGridCopy(g *Grid) *Grid {
	cp := *g
	cp.Sector = SectorGeometry{}
	return &cp
}

// ensureOdd raises an even band width by one, per
// original_source/src/BOS.cpp's ensureBandSizeIsOdd — a supplemental
// feature recovered from original_source (SPEC_FULL.md §10).
func ensureOdd(bw int) int {
	if bw%2 == 0 {
		return bw + 1
	}
	return bw
}

// BandWidth returns the Band of Sight's capacity for this grid.
func (g *Grid) BandWidth() int { return g.bandWidth }

// Size returns the total number of grid points, N in spec notation.
func (g *Grid) Size() int { return g.Width * g.Height }

// ID maps a (x, y) coordinate to its dense point identifier.
func (g *Grid) ID(x, y int) int { return y*g.Width + x }

// XY maps a dense point identifier back to its (x, y) coordinate.
func (g *Grid) XY(id int) (x, y int) {
	return id % g.Width, id / g.Width
}

// Elevation returns the elevation of point id.
func (g *Grid) Elevation(id int) float64 { return g.Elevations[id] }

// IsComputable reports whether point id is far enough from every edge
// for its full MaxLineOfSight radius to be contained in the grid, per
// spec §3's "computable point" definition.
func (g *Grid) IsComputable(id int) bool {
	x, y := g.XY(id)
	lo, hiX, hiY := g.computableMin, g.Width-g.computableMin, g.Height-g.computableMin
	return x >= lo && x < hiX && y >= lo && y < hiY
}

// ComputableIDs returns, in grid order, the ids of every computable
// point.
func (g *Grid) ComputableIDs() []int {
	ids := make([]int, 0, g.ComputableSide*g.ComputableSide)
	for id := 0; id < g.Size(); id++ {
		if g.IsComputable(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
