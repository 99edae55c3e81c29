// Package detect implements the cut-type detector (§4.F): a total
// function from (feature, element) to exactly one cutengine.CutKind.
package detect

import (
	"math"

	"github.com/piwi3910/dstvcut/internal/cutengine"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// Detect classifies a feature into exactly one CutKind, following the
// fixed decision chain in §4.F.
func Detect(f scene.Feature, el scene.Element) cutengine.CutKind {
	if f.CutType != "" {
		switch f.CutType {
		case "end_cut":
			return endCutKind(f)
		case "bevel":
			return cutengine.BevelCut
		case "chamfer":
			return cutengine.ChamferCut
		case "slot":
			return cutengine.SlotCut
		case "coping":
			return cutengine.CopingCut
		case "notch":
			return notchKind(f, el)
		case "partial_notches":
			return cutengine.CutWithNotches
		}
	}

	if len(f.Points) >= 3 {
		return contourDerivedKind(f, el)
	}

	if f.Position != nil && el.Dimensions.Length > 0 {
		distFromEnd := math.Min(f.Position.X, el.Dimensions.Length-f.Position.X)
		if distFromEnd <= 0.05*el.Dimensions.Length {
			return endCutKind(f)
		}
	}

	if f.Depth == cutengine.DepthThrough {
		return cutengine.ThroughCut
	}
	return cutengine.PartialCut
}

func endCutKind(f scene.Feature) cutengine.CutKind {
	angleNot90 := f.Angle != nil && !closeTo(*f.Angle, 90)
	if angleNot90 && f.ChamferSize != nil {
		return cutengine.EndChamfer
	}
	if angleNot90 {
		return cutengine.EndAngle
	}
	if countDirectionChanges(f.Points) >= 3 {
		return cutengine.EndCompound
	}
	return cutengine.EndStraight
}

func countDirectionChanges(pts []scene.Point2D) int {
	if len(pts) < 3 {
		return 0
	}
	count := 0
	for i := 1; i < len(pts)-1; i++ {
		a, b, c := pts[i-1], pts[i], pts[i+1]
		v1x, v1y := b.X-a.X, b.Y-a.Y
		v2x, v2y := c.X-b.X, c.Y-b.Y
		n1, n2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
		if n1 == 0 || n2 == 0 {
			continue
		}
		cosAngle := (v1x*v2x + v1y*v2y) / (n1 * n2)
		cosAngle = math.Max(-1, math.Min(1, cosAngle))
		angle := math.Acos(cosAngle)
		if angle > 0.1 {
			count++
		}
	}
	return count
}

func notchKind(f scene.Feature, el scene.Element) cutengine.CutKind {
	if isCurvedNotch(f.Points) {
		return cutengine.NotchCurved
	}
	if len(f.Points) > 6 {
		return cutengine.NotchCompound
	}
	thickness := el.Dimensions.WebThickness
	if f.Face == token.FaceTopFlange || f.Face == token.FaceBottomFlange {
		thickness = el.Dimensions.FlangeThickness
	}
	if thickness > 0 && f.Depth < 0.90*thickness {
		return cutengine.NotchPartial
	}
	return cutengine.NotchRectangular
}

func isCurvedNotch(pts []scene.Point2D) bool {
	if len(pts) < 3 {
		return false
	}
	for i := 0; i < len(pts)-2; i++ {
		a, b, c := pts[i], pts[i+1], pts[i+2]
		cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		if math.Abs(cross) > 0.01 {
			return true
		}
	}
	return false
}

func contourDerivedKind(f scene.Feature, el scene.Element) cutengine.CutKind {
	pts := f.Points

	if len(pts) == 4 && hasEqualOppositeAngles(pts) {
		return cutengine.BevelCut
	}

	if len(pts) > 8 && hasHighSegmentVariance(pts) {
		return cutengine.UnrestrictedContour
	}

	minX, minY, maxX, maxY := bounds(pts)
	L, H := el.Dimensions.Length, el.Dimensions.Height

	if nearEdge(minX, maxX, minY, maxY, L, H) {
		return cutengine.ExteriorCut
	}
	if inCentralZone(minX, maxX, minY, maxY, L, H) {
		return cutengine.InteriorCut
	}
	if matchesNotchHeuristic(minX, maxX, maxX-minX, maxY-minY, L) {
		return notchKind(f, el)
	}
	return cutengine.ContourCut
}

func hasEqualOppositeAngles(pts []scene.Point2D) bool {
	n := len(pts)
	angle := func(i int) float64 {
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		v1x, v1y := prev.X-cur.X, prev.Y-cur.Y
		v2x, v2y := next.X-cur.X, next.Y-cur.Y
		n1, n2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
		if n1 == 0 || n2 == 0 {
			return 0
		}
		cosA := (v1x*v2x + v1y*v2y) / (n1 * n2)
		cosA = math.Max(-1, math.Min(1, cosA))
		return math.Acos(cosA) * 180 / math.Pi
	}
	a0, a2 := angle(0), angle(2)
	if closeTo(a0, 90) || closeTo(a2, 90) {
		return false
	}
	return math.Abs(a0-a2) <= 10
}

func hasHighSegmentVariance(pts []scene.Point2D) bool {
	n := len(pts)
	lens := make([]float64, n)
	var mean float64
	for i := range pts {
		j := (i + 1) % n
		l := math.Hypot(pts[j].X-pts[i].X, pts[j].Y-pts[i].Y)
		lens[i] = l
		mean += l
	}
	mean /= float64(n)
	if mean == 0 {
		return false
	}
	var variance float64
	for _, l := range lens {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(n)
	return variance > 0.5*mean
}

func bounds(pts []scene.Point2D) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return
	}
	minX, minY, maxX, maxY = pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

func nearEdge(minX, maxX, minY, maxY, L, H float64) bool {
	if L > 0 && (minX <= 0.1*L || maxX >= 0.9*L) {
		return true
	}
	if H > 0 && (minY <= 0.1*H || maxY >= 0.9*H) {
		return true
	}
	return false
}

func inCentralZone(minX, maxX, minY, maxY, L, H float64) bool {
	if L <= 0 || H <= 0 {
		return false
	}
	lo, hi := 0.2*L, 0.8*L
	loY, hiY := 0.2*H, 0.8*H
	return minX >= lo && maxX <= hi && minY >= loY && maxY <= hiY
}

func matchesNotchHeuristic(minX, maxX, width, height, L float64) bool {
	if height == 0 {
		return false
	}
	aspect := width / height
	if aspect < 0.5 || aspect > 3 {
		return false
	}
	if L <= 0 {
		return false
	}
	return minX < 0.3*L || maxX > 0.7*L
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
