package handlers

import (
	"fmt"
	"math"

	"github.com/piwi3910/dstvcut/internal/cutengine"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// endCutHandler handles the four end-of-member cut kinds: a straight
// square cut, an angled end cut, a chamfered end cut, and a compound
// (multi-segment) end profile. All four share the same subtraction
// shape: a transverse slab at one end of the member, optionally sheared.
type endCutHandler struct{}

func (endCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{
		cutengine.EndStraight, cutengine.EndAngle, cutengine.EndChamfer, cutengine.EndCompound,
	}
}
func (endCutHandler) Priority() int { return 80 }
func (endCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return f.Position != nil || len(f.Points) >= 2
}
func (endCutHandler) Validate(f scene.Feature, el scene.Element) error {
	if f.Angle != nil && (*f.Angle <= 0 || *f.Angle >= 180) {
		return fmt.Errorf("end cut angle %v out of range (0,180)", *f.Angle)
	}
	return nil
}
func (h endCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	if len(f.Points) >= 3 {
		return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el)}, nil
	}

	x := el.Dimensions.Length
	atStart := true
	if f.Position != nil {
		x = f.Position.X
		atStart = x <= el.Dimensions.Length/2
	}

	angle := 90.0
	if f.Angle != nil {
		angle = *f.Angle
	}
	skew := el.Dimensions.Height / math.Tan(angle*math.Pi/180)
	if math.IsInf(skew, 0) || math.IsNaN(skew) {
		skew = 0
	}

	var base []scene.Point2D
	if atStart {
		base = []scene.Point2D{
			{X: 0, Y: 0}, {X: x, Y: 0}, {X: x + skew, Y: el.Dimensions.Height}, {X: 0, Y: el.Dimensions.Height},
		}
	} else {
		base = []scene.Point2D{
			{X: x, Y: 0}, {X: el.Dimensions.Length, Y: 0},
			{X: el.Dimensions.Length, Y: el.Dimensions.Height}, {X: x - skew, Y: el.Dimensions.Height},
		}
	}
	return Solid{Face: string(f.Face), Base: base, Depth: el.Dimensions.Width + el.Dimensions.Height}, nil
}
func (endCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// copingCutHandler handles beam-to-beam coping profiles: a compound
// contour cut into the member end that matches the intersecting member's
// flange/web profile.
type copingCutHandler struct{}

func (copingCutHandler) Kinds() []cutengine.CutKind { return []cutengine.CutKind{cutengine.CopingCut} }
func (copingCutHandler) Priority() int               { return 85 }
func (copingCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (copingCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("coping cut needs a contour of at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (copingCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: el.Dimensions.Width + el.Dimensions.Height}, nil
}
func (copingCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// bevelCutHandler handles a sheared edge-cut (BevelCut), a constant-angle
// plane cut across a contour that was classified as a 4-point parallelogram
// with no right angles.
type bevelCutHandler struct{}

func (bevelCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.BevelCut, cutengine.ChamferCut}
}
func (bevelCutHandler) Priority() int { return 70 }
func (bevelCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3 || f.BevelAngle != nil || f.ChamferSize != nil
}
func (bevelCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if f.BevelAngle != nil && (*f.BevelAngle <= 0 || *f.BevelAngle >= 90) {
		return fmt.Errorf("bevel angle %v out of range (0,90)", *f.BevelAngle)
	}
	return nil
}
func (bevelCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	if len(f.Points) >= 3 {
		return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el)}, nil
	}
	size := el.Dimensions.FlangeThickness
	if f.ChamferSize != nil {
		size = *f.ChamferSize
	}
	base := rectBase(0, 0, size, size)
	return Solid{Face: string(f.Face), Base: base, Depth: el.Dimensions.Width}, nil
}
func (bevelCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// angleCutHandler handles a straight end cut made at an oblique angle
// without chamfer/compound geometry — a pure AngleCut, distinct from
// EndAngle in that it may occur mid-member (e.g. a raked transverse cut).
type angleCutHandler struct{}

func (angleCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.TransverseCut}
}
func (angleCutHandler) Priority() int { return 40 }
func (angleCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return f.IsTransverse && f.Angle != nil
}
func (angleCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if *f.Angle <= 0 || *f.Angle >= 180 {
		return fmt.Errorf("transverse cut angle %v out of range (0,180)", *f.Angle)
	}
	return nil
}
func (angleCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: f.Depth}, nil
}
func (angleCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// transverseCutHandler handles a square transverse cut (IsTransverse,
// no angle): the synthesized cut that trims a profile to its declared
// length (§4.E transverse-cut synthesis).
type transverseCutHandler struct{}

func (transverseCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.TransverseCut}
}
func (transverseCutHandler) Priority() int { return 45 }
func (transverseCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return f.IsTransverse && f.Angle == nil
}
func (transverseCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("transverse cut needs a contour of at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (transverseCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: f.Depth}, nil
}
func (transverseCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// slotCutHandler handles elongated slot holes (round-ended rectangles),
// built as a rectangle plus two semicircular end caps of six segments
// each (14 outline points in all).
type slotCutHandler struct{}

func (slotCutHandler) Kinds() []cutengine.CutKind { return []cutengine.CutKind{cutengine.SlotCut} }
func (slotCutHandler) Priority() int               { return 75 }
func (slotCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return f.Position != nil && f.Width > 0
}
func (slotCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if f.Diameter <= 0 && f.Height <= 0 {
		return fmt.Errorf("slot cut requires a positive width (diameter or height), got diameter=%v height=%v", f.Diameter, f.Height)
	}
	return nil
}
func (slotCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	radius := f.Diameter / 2
	if radius <= 0 {
		radius = f.Height / 2
	}
	angle := 0.0
	if f.Angle != nil {
		angle = *f.Angle
	}
	base := slotOutline(*f.Position, f.Width, radius, angle)
	return Solid{Face: string(f.Face), Base: base, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (slotCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// slotOutline builds a rounded-rectangle outline of the given center-to-
// center length along angle (degrees) and radius, centered at center.
func slotOutline(center scene.Point2D, length, radius, angleDeg float64) []scene.Point2D {
	const capSegments = 6
	angle := angleDeg * math.Pi / 180
	dx, dy := math.Cos(angle), math.Sin(angle)
	half := length / 2

	p0 := scene.Point2D{X: center.X - dx*half, Y: center.Y - dy*half}
	p1 := scene.Point2D{X: center.X + dx*half, Y: center.Y + dy*half}

	var pts []scene.Point2D
	for i := 0; i <= capSegments; i++ {
		theta := angle + math.Pi/2 + math.Pi*float64(i)/float64(capSegments)
		pts = append(pts, scene.Point2D{X: p1.X + radius*math.Cos(theta), Y: p1.Y + radius*math.Sin(theta)})
	}
	for i := 0; i <= capSegments; i++ {
		theta := angle - math.Pi/2 + math.Pi*float64(i)/float64(capSegments)
		pts = append(pts, scene.Point2D{X: p0.X + radius*math.Cos(theta), Y: p0.Y + radius*math.Sin(theta)})
	}
	return pts
}

// straightCutHandler is the catch-all for a square contour-less cut with
// no transverse/angle attributes — a plain rectangular subtraction.
type straightCutHandler struct{}

func (straightCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.StraightCut, cutengine.ThroughCut, cutengine.PartialCut}
}
func (straightCutHandler) Priority() int { return 20 }
func (straightCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return true
}
func (straightCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	return nil
}
func (straightCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	if len(f.Points) >= 3 {
		return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
	}
	if f.Position == nil {
		return Solid{}, fmt.Errorf("straight cut has neither contour points nor a position")
	}
	w := f.Width
	if w <= 0 {
		w = el.Dimensions.WebThickness
	}
	h := f.Height
	if h <= 0 {
		h = el.Dimensions.Height
	}
	base := rectBase(f.Position.X-w/2, f.Position.Y-h/2, f.Position.X+w/2, f.Position.Y+h/2)
	return Solid{Face: string(f.Face), Base: base, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (straightCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// legacyFallbackHandler is the lowest-priority handler: it accepts every
// kind and subtracts the feature's own contour when it has one, otherwise
// a square of side Diameter (10 when unset) around its position, at the
// feature's effective depth, guaranteeing Dispatch never fails for a recognized CutKind even when a
// more specific handler's Accepts rejected the feature.
type legacyFallbackHandler struct{}

func (legacyFallbackHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{
		cutengine.EndStraight, cutengine.EndAngle, cutengine.EndChamfer, cutengine.EndCompound,
		cutengine.BevelCut, cutengine.ChamferCut, cutengine.SlotCut, cutengine.CopingCut,
		cutengine.NotchRectangular, cutengine.NotchPartial, cutengine.NotchCurved, cutengine.NotchCompound,
		cutengine.CutWithNotches, cutengine.ContourCut, cutengine.ExteriorCut, cutengine.InteriorCut,
		cutengine.UnrestrictedContour, cutengine.TransverseCut, cutengine.StraightCut,
		cutengine.ThroughCut, cutengine.PartialCut,
	}
}
func (legacyFallbackHandler) Priority() int { return math.MinInt32 }
func (legacyFallbackHandler) Accepts(scene.Feature, scene.Element) bool { return true }
func (legacyFallbackHandler) Validate(scene.Feature, scene.Element) error { return nil }
func (legacyFallbackHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	if len(f.Points) >= 3 {
		return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el)}, nil
	}
	pos := scene.Point2D{}
	if f.Position != nil {
		pos = *f.Position
	}
	r := f.Diameter / 2
	if r <= 0 {
		r = 5
	}
	return Solid{Face: string(f.Face), Base: rectBase(pos.X-r, pos.Y-r, pos.X+r, pos.Y+r), Depth: effectiveDepth(f, el)}, nil
}
func (legacyFallbackHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}
