// Package cutengine defines the cut-kind taxonomy and metadata shared by
// the cut-type detector (§4.F) and the cut handlers (§4.G/§4.H).
package cutengine

// CutKind is the closed tagged variant produced by the cut-type detector.
type CutKind string

const (
	EndStraight        CutKind = "EndStraight"
	EndAngle           CutKind = "EndAngle"
	EndChamfer         CutKind = "EndChamfer"
	EndCompound        CutKind = "EndCompound"
	BevelCut           CutKind = "BevelCut"
	ChamferCut         CutKind = "ChamferCut"
	SlotCut            CutKind = "SlotCut"
	CopingCut          CutKind = "CopingCut"
	NotchRectangular   CutKind = "NotchRectangular"
	NotchPartial       CutKind = "NotchPartial"
	NotchCurved        CutKind = "NotchCurved"
	NotchCompound      CutKind = "NotchCompound"
	CutWithNotches     CutKind = "CutWithNotches"
	ContourCut         CutKind = "ContourCut"
	ExteriorCut        CutKind = "ExteriorCut"
	InteriorCut        CutKind = "InteriorCut"
	UnrestrictedContour CutKind = "UnrestrictedContour"
	TransverseCut      CutKind = "TransverseCut"
	StraightCut        CutKind = "StraightCut"
	ThroughCut         CutKind = "ThroughCut"
	PartialCut         CutKind = "PartialCut"
)

// Category buckets a CutKind for metadata/reporting purposes.
type Category string

const (
	CategoryInterior   Category = "Interior"
	CategoryExterior   Category = "Exterior"
	CategoryTransverse Category = "Transverse"
)

// CategoryOf assigns each CutKind its reporting category.
func CategoryOf(k CutKind) Category {
	switch k {
	case InteriorCut, NotchRectangular, NotchPartial, NotchCurved, NotchCompound, CutWithNotches, SlotCut:
		return CategoryInterior
	case TransverseCut:
		return CategoryTransverse
	default:
		return CategoryExterior
	}
}

// DepthThrough is the sentinel Feature.Depth value meaning "through" for
// cut-engine features (decision D3, SPEC_FULL §3.9): zero or absent.
const DepthThrough = 0.0

// BoundingBox is an axis-aligned box in element-local coordinates.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Metadata is the stable record stamped onto a processed cut (§3
// CutMetadata).
type Metadata struct {
	ID        string
	Kind      CutKind
	Category  Category
	Face      string
	Bounds    BoundingBox
	Points    [][2]float64
	Depth     float64
	Angle     float64
	Timestamp int64
}
