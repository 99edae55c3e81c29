package convert

import (
	"math"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

// DefaultCutDepth is the depth stamped onto a contour reclassified as a cut
// when the contour itself carries no depth information (§4.E rule 3).
const DefaultCutDepth = 10.0

// classified is the outcome of running one AK contour through the
// base-vs-cut rule (§4.E).
type classified struct {
	isBase bool
	cut    *parser.CutRecord
	notch  *parser.CutRecord // non-nil only for the 9-point extraction rule
}

// classifyContour implements the base-shape-vs-cut rule. header carries the
// profile's L/H/W; mapping has already been applied to c.Face by the
// caller.
func classifyContour(c parser.Contour, header parser.ProfileHeader) classified {
	expected := header.Height
	if c.Face == token.FaceWeb {
		expected = header.Width
	}

	min, max := boundingBox(c.Points)
	lengthCoverage := safeDiv(max.X-min.X, header.Length)
	widthCoverage := safeDiv(max.Y-min.Y, expected)

	if isBaseRectangle(c.Points) && lengthCoverage > 0.90 && widthCoverage > 0.90 {
		return classified{isBase: true}
	}

	if len(c.Points) == 9 && (c.Face == token.FaceWeb || c.Face == token.FaceTopFlange) {
		if notch := extractNinePointNotch(c); notch != nil {
			return classified{cut: notch, notch: notch}
		}
	}

	cut := &parser.CutRecord{
		Face:     c.Face,
		Contour:  c.Points,
		Depth:    DefaultCutDepth,
		Through:  false,
		Internal: c.Internal,
	}
	return classified{cut: cut}
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// extractNinePointNotch implements the 9-point partial-notch extraction
// rule: when the contour's outermost X value steps out significantly
// (>20mm) beyond the next edge in from it, the step-out is pulled out as
// a rectangular notch. mainX is the main rectangle's edge the step
// departs from (the second-largest unique X); extremeX is the step-out
// itself (the largest). The Y range comes only from the points sitting
// at extremeX, not the whole contour.
func extractNinePointNotch(c parser.Contour) *parser.CutRecord {
	xs := uniqueXs(c.Points)
	if len(xs) < 2 {
		return nil
	}
	mainX := xs[len(xs)-2]
	extremeX := xs[len(xs)-1]
	if math.Abs(extremeX-mainX) <= 20 {
		return nil
	}

	var extMinY, extMaxY float64
	first := true
	for _, p := range c.Points {
		if math.Abs(p.X-extremeX) >= 0.01 {
			continue
		}
		if first {
			extMinY, extMaxY = p.Y, p.Y
			first = false
			continue
		}
		extMinY = math.Min(extMinY, p.Y)
		extMaxY = math.Max(extMaxY, p.Y)
	}
	if first {
		return nil
	}

	rect := []parser.Point2D{
		{X: mainX, Y: extMinY}, {X: extremeX, Y: extMinY}, {X: extremeX, Y: extMaxY}, {X: mainX, Y: extMaxY},
	}

	return &parser.CutRecord{
		Face:    c.Face,
		Contour: rect,
		Depth:   DefaultCutDepth,
		Through: false,
		CutType: "partial_notches",
	}
}

// synthesizeTransverseCut builds the §4.E transverse-cut synthesis: when
// the declared profile length exceeds the maximal X of any contour by more
// than 10mm, a cut spans [maxX, L] x [0, H] on the web face.
func synthesizeTransverseCut(header parser.ProfileHeader, maxContourX float64) *parser.CutRecord {
	if header.Length-maxContourX <= 10 {
		return nil
	}
	contour := []parser.Point2D{
		{X: maxContourX, Y: 0}, {X: header.Length, Y: 0},
		{X: header.Length, Y: header.Height}, {X: maxContourX, Y: header.Height},
	}
	depth := 1.5 * header.Width
	if depth <= 0 {
		depth = DefaultCutDepth
	}
	return &parser.CutRecord{
		Face:         token.FaceWeb,
		Contour:      contour,
		Depth:        depth,
		IsTransverse: true,
	}
}
