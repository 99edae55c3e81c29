package convert

import (
	"math"
	"sort"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
)

func boundingBox(pts []parser.Point2D) (min, max parser.Point2D) {
	if len(pts) == 0 {
		return
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X, max.X = math.Min(min.X, p.X), math.Max(max.X, p.X)
		min.Y, max.Y = math.Min(min.Y, p.Y), math.Max(max.Y, p.Y)
	}
	return
}

// shoelaceArea computes the absolute polygon area (§4.E contour descriptors).
func shoelaceArea(pts []parser.Point2D) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(area) / 2
}

// perimeter sums successive segment lengths, treating the contour as closed.
func perimeter(pts []parser.Point2D) float64 {
	n := len(pts)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += dist(pts[i], pts[j])
	}
	return total
}

func dist(a, b parser.Point2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// ShapeClass is the contour descriptor shape classification (§4.E).
type ShapeClass string

const (
	ShapeRectangular ShapeClass = "rectangular"
	ShapeCircular    ShapeClass = "circular"
	ShapePolygonal   ShapeClass = "polygonal"
	ShapeComplex     ShapeClass = "complex"
)

// ClassifyShape classifies a contour's geometric shape for descriptor
// purposes (distinct from the base-vs-cut classification in §4.E).
func ClassifyShape(pts []parser.Point2D) ShapeClass {
	closed := pts
	if len(pts) > 1 && pointsEqual(pts[0], pts[len(pts)-1], 0.01) {
		closed = pts[:len(pts)-1]
	}
	if len(closed) == 4 && isAxisAlignedPolygon(append(append([]parser.Point2D{}, closed...), closed[0])) {
		return ShapeRectangular
	}
	if len(closed) >= 12 && isApproximatelyCircular(closed) {
		return ShapeCircular
	}
	if len(closed) <= 8 {
		return ShapePolygonal
	}
	return ShapeComplex
}

func isApproximatelyCircular(pts []parser.Point2D) bool {
	cx, cy := 0.0, 0.0
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	var mean float64
	radii := make([]float64, len(pts))
	for i, p := range pts {
		r := math.Hypot(p.X-cx, p.Y-cy)
		radii[i] = r
		mean += r
	}
	mean /= float64(len(pts))
	if mean == 0 {
		return false
	}
	for _, r := range radii {
		if math.Abs(r-mean) > 0.10*mean {
			return false
		}
	}
	return true
}

func pointsEqual(a, b parser.Point2D, tol float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tol
}

// isAxisAlignedPolygon reports whether every segment of the (closed) point
// list is horizontal or vertical within 0.01mm.
func isAxisAlignedPolygon(closed []parser.Point2D) bool {
	for i := 0; i < len(closed)-1; i++ {
		a, b := closed[i], closed[i+1]
		dx, dy := math.Abs(a.X-b.X), math.Abs(a.Y-b.Y)
		if dx > 0.01 && dy > 0.01 {
			return false
		}
	}
	return true
}

// isBaseRectangle reports whether pts is the classic 5-point (closed),
// axis-aligned, origin-anchored rectangle the converter treats as the
// profile's own outline rather than a cut (§4.E rule 1).
func isBaseRectangle(pts []parser.Point2D) bool {
	if len(pts) != 5 {
		return false
	}
	if !pointsEqual(pts[0], pts[4], 0.01) {
		return false
	}
	if !isAxisAlignedPolygon(pts) {
		return false
	}
	min, _ := boundingBox(pts)
	return math.Abs(min.X) <= 1 && math.Abs(min.Y) <= 1
}

// uniqueXs returns the sorted distinct X coordinates of pts, deduplicated
// within 0.01mm, used by the 9-point partial-notch extraction rule.
func uniqueXs(pts []parser.Point2D) []float64 {
	var xs []float64
	for _, p := range pts {
		found := false
		for _, x := range xs {
			if math.Abs(x-p.X) < 0.01 {
				found = true
				break
			}
		}
		if !found {
			xs = append(xs, p.X)
		}
	}
	sort.Float64s(xs)
	return xs
}
