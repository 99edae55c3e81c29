// Package parser turns per-block token slices into structured DSTV records
// (§4.B) and drives the per-profile assembly state machine (§4.C).
package parser

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// ProfileKind classifies a profile's cross-section shape.
type ProfileKind string

const (
	KindI         ProfileKind = "I"
	KindU         ProfileKind = "U"
	KindL         ProfileKind = "L"
	KindT         ProfileKind = "T"
	KindZ         ProfileKind = "Z"
	KindRectTube  ProfileKind = "RectTube"
	KindRoundTube ProfileKind = "RoundTube"
	KindRoundBar  ProfileKind = "RoundBar"
	KindFlatBar   ProfileKind = "FlatBar"
	KindPlate     ProfileKind = "Plate"
	KindCustom    ProfileKind = "Custom"
	KindUnknown   ProfileKind = "Unknown"
)

// AdmissibleFaces returns the set of faces a profile of this kind may carry
// features on. Testable property 3 (face mapping stability) is checked
// against this set.
func (k ProfileKind) AdmissibleFaces() map[token.Face]bool {
	switch k {
	case KindI, KindU, KindZ:
		return map[token.Face]bool{
			token.FaceWeb: true, token.FaceTopFlange: true, token.FaceBottomFlange: true,
			token.FaceFront: true, token.FaceBack: true,
		}
	case KindL, KindT:
		return map[token.Face]bool{token.FaceWeb: true, token.FaceTopFlange: true, token.FaceFront: true, token.FaceBack: true}
	case KindRectTube, KindRoundTube, KindRoundBar:
		return map[token.Face]bool{token.FaceFront: true, token.FaceBack: true, token.FaceTopFlange: true, token.FaceBottomFlange: true}
	case KindFlatBar, KindPlate:
		return map[token.Face]bool{token.FaceFront: true, token.FaceBack: true}
	default:
		return map[token.Face]bool{
			token.FaceWeb: true, token.FaceTopFlange: true, token.FaceBottomFlange: true,
			token.FaceFront: true, token.FaceBack: true,
		}
	}
}

// ProfileHeader holds the 16 positional ST fields (§3 ProfileHeader).
type ProfileHeader struct {
	OrderNumber     string
	PartID          string
	ItemNumber      string
	SteelGrade      string
	Quantity        int
	Designation     string
	Code            string // explicit single-letter profile code, if present
	Length          float64
	Width           float64
	Height          float64
	Radius          float64
	WebThickness    float64
	FlangeThickness float64
	Weight          float64
	PaintingSurface float64
	Reserved        string
}

// Usable reports whether the header carries enough information to be a
// usable record: designation present and length > 0.
func (h ProfileHeader) Usable() bool {
	return h.Designation != "" && h.Length > 0
}

// Point2D is a 2D coordinate in millimetres, in profile-local face space.
type Point2D struct {
	X, Y float64
}

// SlotExtras carries the elongation parameters of a slotted hole.
//
// SlotAngleAlongLength (decision D2, SPEC_FULL §3.9) is the angle value
// meaning "the slot's long axis runs along the profile's length" — the
// convention fabrication drawings use most often, since slots most often
// absorb thermal movement along a member.
const SlotAngleAlongLength = 0.0

type SlotExtras struct {
	Length float64
	Angle  float64
}

// RectExtras carries the extra dimensions of a square/rectangular hole.
type RectExtras struct {
	Width, Height float64
}

// HoleDepthThrough is the sentinel Hole.Depth value meaning "through-cut"
// (decision D3): a hole cannot have a meaningful zero blind depth, so -1 is
// reserved rather than overloading 0.
const HoleDepthThrough = -1.0

// Hole is one BO record.
type Hole struct {
	X, Y     float64
	Diameter float64
	Face     token.Face
	Kind     token.HoleType
	Depth    float64
	Slot     *SlotExtras
	Rect     *RectExtras
}

// Contour is one AK/IK record: an ordered point list on a single face.
type Contour struct {
	Face     token.Face
	Points   []Point2D
	Internal bool // true for IK contours, always
}

// Closed reports whether the first and last points coincide within 0.01mm,
// the DSTV closure tolerance.
func (c Contour) Closed() bool {
	if len(c.Points) < 2 {
		return false
	}
	return pointsClose(c.Points[0], c.Points[len(c.Points)-1], 0.01)
}

func pointsClose(a, b Point2D, tol float64) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy <= tol*tol
}

// DepthThrough is the sentinel Cut depth meaning "through-cut" (decision
// D3): unlike Hole, a cut has no blind-depth-zero ambiguity to avoid, so 0
// is the natural sentinel.
const DepthThrough = 0.0

// CutSubtype tags an SC cut as a straight or oblique sweep.
type CutSubtype string

const (
	CutStraight CutSubtype = "straight"
	CutOblique  CutSubtype = "oblique"
)

// CutRecord is one SC record, or an AK contour reclassified as a cut.
type CutRecord struct {
	Face     token.Face
	Contour  []Point2D
	Depth    float64
	Through  bool
	Internal bool
	Angle    *float64
	Subtype  CutSubtype
	CutType  string // explicit cutengine.Detect() hint, set by the converter for shapes it already knows

	IsTransverse bool // synthesized by the converter, §4.E
}

// Marking is one SI record.
type Marking struct {
	Text      string
	X, Y      float64
	Size      float64
	Angle     float64
	Depth     float64
	FontStyle int
	Alignment int
	Face      token.Face
}

// DefaultMarkingSize returns the DSTV default text size for a text of the
// given length, per §4.B SI parser.
func DefaultMarkingSize(text string) float64 {
	switch {
	case len(text) <= 3:
		return 15
	case len(text) <= 10:
		return 12
	default:
		return 10
	}
}

// Chamfer is one BR record.
type Chamfer struct {
	X, Y   float64
	Angle  float64
	Depth  float64
	Length float64
	Edge   string
}

// AsCutContour re-expresses a chamfer as a triangular cut contour, for
// consumption by handlers that have no chamfer-specific knowledge (§4.B).
func (c Chamfer) AsCutContour() CutRecord {
	dx := c.Length * cosDeg(c.Angle)
	dy := c.Length * sinDeg(c.Angle)
	pts := []Point2D{
		{X: c.X, Y: c.Y},
		{X: c.X + dx, Y: c.Y},
		{X: c.X, Y: c.Y + dy},
	}
	return CutRecord{
		Contour: pts,
		Depth:   c.Depth,
		Through: false,
		Angle:   &c.Angle,
		Subtype: CutStraight,
		CutType: "chamfer",
	}
}

// RawProfile is the assembled output of one ST...EN record, before
// validation or conversion.
type RawProfile struct {
	Header   ProfileHeader
	Holes    []Hole
	Contours []Contour // AK, pre-classification
	Internal []Contour // IK, always internal=true
	Cuts     []CutRecord
	Markings []Marking
	Chamfers []Chamfer

	Warnings []string
}
