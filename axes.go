package tvs

import "math"

const degToRad = math.Pi / 180.0

// Adjust rebuilds the current sector's geometry — trig tables,
// perpendicular distances, and the sector/sight orderings — for a new
// sector angle. It is C2, the axes rotator, called once per sector by
// the sector driver (C6) before BoS.Setup.
//
// Grounded directly on original_source/src/Axes.cpp's Adjust/
// preComputeTrig/preSort/sort sequence; see spec §4.1 for the closed
// contract this must satisfy (sector_ordered and sight_ordered are
// both permutations of [0, N)).
func (g *Grid) Adjust(angle int, shift float64) {
	n := g.Size()
	quad := 0
	computableAngle := float64(angle)
	if angle >= 90 {
		quad = 1
		computableAngle -= 90
	}
	computableAngle += shift
	rad := computableAngle * degToRad

	sin, cos := math.Sin(rad), math.Cos(rad)
	tan := math.Tan(rad)
	cotan := 1.0 / tan

	isin := make([]float64, n)
	icos := make([]float64, n)
	itan := make([]float64, n)
	icot := make([]float64, n)
	for i := 0; i < n; i++ {
		isin[i] = float64(i) * sin
		icos[i] = float64(i) * cos
		itan[i] = float64(i) * tan
		icot[i] = float64(i) * cotan
	}

	g.Sector = SectorGeometry{
		Angle:         angle,
		Quad:          quad,
		SectorOrdered: make([]int, n),
		SightOrdered:  make([]int, n),
		Dist:          make([]float64, n),
	}

	// Perpendicular distance from the sweep axis, spec §4.1.
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			var val float64
			if quad == 1 {
				val = icos[y] - isin[x]
			} else {
				val = icos[x] + isin[y]
			}
			g.Sector.Dist[g.ID(x, y)] = val
		}
	}

	g.sortBySightAxis(tan, cotan, icot, itan)
}

// sortBySightAxis derives sector_ordered and sight_ordered by the same
// prefix-sum/triangle-case index construction as Axes::preSort +
// Axes::sort in original_source/src/Axes.cpp. The algorithm is
// storage-layout independent: the "mirror" point np is the 90-degree
// rotation (x, y) -> (width-1-y, x), computed here via Grid.ID rather
// than the original's column-major pointer arithmetic. quad==0 places np
// in sector order; quad==1 gives np the sight rank instead.
func (g *Grid) sortBySightAxis(tan, cotan float64, icot, itan []float64) {
	width, height, size := g.Width, g.Height, g.Size()

	tmp1 := make([]int, width)
	tmp2 := make([]int, height)
	for j := 1; j < width; j++ {
		tmp1[j] = tmp1[j-1] + minInt(height, int(math.Floor(cotan*float64(j))))
	}
	for i := 1; i < height; i++ {
		tmp2[i] = tmp2[i-1] + minInt(width, int(math.Floor(tan*float64(i))))
	}

	lx := float64(width - 1)
	ly := float64(height - 1)

	for j := 1; j <= width; j++ {
		x := float64(j - 1)
		for i := 1; i <= height; i++ {
			y := float64(i - 1)
			ind := i * j
			if (ly - y) < icot[j-1] {
				ind += (height-i)*j - tmp2[height-i] - (height - i)
			} else {
				ind += tmp1[j-1]
			}
			if (lx - x) < itan[i-1] {
				ind += (width-j)*i - tmp1[width-j] - (width - j)
			} else {
				ind += tmp2[i-1]
			}

			px, py := j-1, i-1
			p := g.ID(px, py)
			np := g.ID(width-1-py, px)

			if g.Sector.Quad == 0 {
				g.Sector.SightOrdered[p] = ind - 1
				g.Sector.SectorOrdered[ind-1] = np
			} else {
				g.Sector.SightOrdered[np] = ind - 1
				g.Sector.SectorOrdered[size-ind] = p
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
