package parser

import (
	"math"

	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

// ParseSC parses a sequence of position+angle+depth+width tuples and
// generates the rectangular swept contour analytically for each: a
// rectangle anchored at (x, y), extending `width` along `angle` and a
// fixed 1mm nominal thickness across it (SC only fixes the sweep
// footprint; no kerf width is modeled). Each
// record is tagged oblique when its angle is not a multiple of 90deg.
func ParseSC(tokens []token.Token, face token.Face) ([]CutRecord, []string) {
	var cuts []CutRecord
	var warnings []string

	nums := numbersOf(tokens)
	for i := 0; i+5 <= len(nums); i += 5 {
		x, y, angle, depth, width := nums[i], nums[i+1], nums[i+2], nums[i+3], nums[i+4]
		cuts = append(cuts, buildSweptCut(x, y, angle, depth, width, face))
	}
	if rem := len(nums) % 5; rem != 0 {
		warnings = append(warnings, "SC: trailing incomplete cut tuple ignored")
	}

	return cuts, warnings
}

func buildSweptCut(x, y, angle, depth, width float64, face token.Face) CutRecord {
	const thickness = 1.0
	dx := math.Cos(angle * math.Pi / 180)
	dy := math.Sin(angle * math.Pi / 180)
	// perpendicular direction for the thin sweep axis
	px, py := -dy, dx

	p0 := Point2D{X: x, Y: y}
	p1 := Point2D{X: x + dx*width, Y: y + dy*width}
	p2 := Point2D{X: p1.X + px*thickness, Y: p1.Y + py*thickness}
	p3 := Point2D{X: p0.X + px*thickness, Y: p0.Y + py*thickness}

	subtype := CutStraight
	norm := math.Mod(math.Abs(angle), 360)
	if norm != 0 && norm != 90 && norm != 180 && norm != 270 {
		subtype = CutOblique
	}

	a := angle
	return CutRecord{
		Face:    face,
		Contour: []Point2D{p0, p1, p2, p3},
		Depth:   depth,
		Through: depth == DepthThrough,
		Angle:   &a,
		Subtype: subtype,
	}
}

func numbersOf(tokens []token.Token) []float64 {
	var nums []float64
	for _, t := range tokens {
		if t.Kind == token.KindNumber {
			nums = append(nums, t.Number)
		}
	}
	return nums
}
