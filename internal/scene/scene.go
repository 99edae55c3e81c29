// Package scene holds the normalized output of the DSTV pipeline: scene
// elements (one per profile) carrying classified machining features,
// ready for the cut-execution engine.
package scene

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// Point2D is a 2D coordinate in millimetres.
type Point2D struct{ X, Y float64 }

// Vec3 is a 3D vector (position or rotation, in millimetres/radians).
type Vec3 struct{ X, Y, Z float64 }

// Material is the high-level material category a profile kind maps to.
type Material string

const (
	MaterialBeam    Material = "BEAM"
	MaterialChannel Material = "CHANNEL"
	MaterialAngle   Material = "ANGLE"
	MaterialTube    Material = "TUBE"
	MaterialPlate   Material = "PLATE"
)

// DefaultDensity is the steel density (kg/m^3) used when none is supplied.
const DefaultDensity = 7850.0

// MaterialSpec describes the element's physical material.
type MaterialSpec struct {
	Grade      string
	Density    float64
	Appearance string
}

// Dimensions mirrors the subset of ProfileHeader relevant downstream.
type Dimensions struct {
	Length, Width, Height, Radius, WebThickness, FlangeThickness float64
}

// FeatureKind tags what kind of machining feature a Feature represents.
type FeatureKind string

const (
	FeatureCut     FeatureKind = "CUT"
	FeatureEndCut  FeatureKind = "END_CUT"
	FeatureNotch   FeatureKind = "NOTCH"
	FeatureHole    FeatureKind = "HOLE"
	FeatureMarking FeatureKind = "MARKING"
)

// Feature is the cut-engine view of a single machining feature (§3
// "Feature (cut-engine view)"): an id, a kind tag, and the subset of
// parameters relevant to that kind.
type Feature struct {
	ID   string
	Kind FeatureKind
	Face token.Face

	// geometry
	Points []Point2D
	Depth  float64
	Angle  *float64
	Radius float64
	Width  float64
	Height float64

	// hole-specific
	HoleType token.HoleType
	Diameter float64

	// cut-specific
	CutType      string
	IsTransverse bool
	BevelAngle   *float64
	ChamferSize  *float64
	Position     *Point2D

	// geometric descriptors (§4.E), computed per cut from its contour
	Area      float64
	Perimeter float64
	Shape     string

	// marking-specific
	Text string

	ElementID string
}

// Element is one fabricated piece placed in the scene.
type Element struct {
	ID         string
	Kind       string // parser.ProfileKind, as a string to avoid an import cycle with parser
	Material   Material
	Spec       MaterialSpec
	Dimensions Dimensions
	Position   Vec3
	Rotation   Vec3
	Features   []Feature
}

// Bounds is an axis-aligned bounding box in scene (world) coordinates.
type Bounds struct {
	Min, Max Vec3
}

// Scene is the full normalized output: every element keyed by id, plus
// scene-level bounds.
type Scene struct {
	Elements map[string]Element
	Bounds   Bounds
}
