package handlers

import (
	"fmt"

	"github.com/piwi3910/dstvcut/internal/cutengine"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// partialNotchHandler handles notches whose depth does not span the full
// wall thickness (NotchPartial), the highest-priority family since a
// partial notch must never be widened into a through-cut by a lower
// priority handler matching a superset of its kinds.
type partialNotchHandler struct{}

func (partialNotchHandler) Kinds() []cutengine.CutKind { return []cutengine.CutKind{cutengine.NotchPartial} }
func (partialNotchHandler) Priority() int               { return 100 }
func (partialNotchHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (partialNotchHandler) Validate(f scene.Feature, _ scene.Element) error {
	if f.Depth <= 0 {
		return fmt.Errorf("partial notch requires a positive depth, got %v", f.Depth)
	}
	return nil
}
func (h partialNotchHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: f.Depth}, nil
}
func (h partialNotchHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// notchHandler handles full-thickness rectangular/curved/compound notches.
type notchHandler struct{}

func (notchHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.NotchRectangular, cutengine.NotchCurved, cutengine.NotchCompound}
}
func (notchHandler) Priority() int { return 90 }
func (notchHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (notchHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("notch contour needs at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (notchHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (notchHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// compoundCutHandler handles a contour carrying nested partial notches
// (CutWithNotches) as a single solid built from the feature's contour;
// no separate per-notch solids are built.
type compoundCutHandler struct{}

func (compoundCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.CutWithNotches}
}
func (compoundCutHandler) Priority() int { return 95 }
func (compoundCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (compoundCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("compound cut contour needs at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (compoundCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (compoundCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// kontourHandler handles an unrestricted free-form contour (§3
// UnrestrictedContour / KO block), placed with no axis-alignment
// assumption.
type kontourHandler struct{}

func (kontourHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.UnrestrictedContour}
}
func (kontourHandler) Priority() int { return 60 }
func (kontourHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (kontourHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("unrestricted contour needs at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (kontourHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (kontourHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// plateHandler handles PU-block punch-mark/plate-outline style contours
// treated as stock-outline modifications rather than notches.
type plateHandler struct{}

func (plateHandler) Kinds() []cutengine.CutKind { return []cutengine.CutKind{cutengine.ContourCut} }
func (plateHandler) Priority() int               { return 50 }
func (plateHandler) Accepts(f scene.Feature, el scene.Element) bool {
	return len(f.Points) >= 3 && el.Material == scene.MaterialPlate
}
func (plateHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("plate cut contour needs at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (plateHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (plateHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// exteriorCutHandler handles contours that touch the profile's outer
// boundary (flange/web edge trims).
type exteriorCutHandler struct{}

func (exteriorCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.ExteriorCut}
}
func (exteriorCutHandler) Priority() int { return 55 }
func (exteriorCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (exteriorCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("exterior cut contour needs at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (exteriorCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: effectiveDepth(f, el), Through: f.Depth == cutengine.DepthThrough}, nil
}
func (exteriorCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}

// interiorCutHandler handles contours wholly within the profile's field
// (pocket-style cuts not touching any edge).
type interiorCutHandler struct{}

func (interiorCutHandler) Kinds() []cutengine.CutKind {
	return []cutengine.CutKind{cutengine.InteriorCut}
}
func (interiorCutHandler) Priority() int { return 55 }
func (interiorCutHandler) Accepts(f scene.Feature, _ scene.Element) bool {
	return len(f.Points) >= 3
}
func (interiorCutHandler) Validate(f scene.Feature, _ scene.Element) error {
	if len(f.Points) < 3 {
		return fmt.Errorf("interior cut contour needs at least 3 points, got %d", len(f.Points))
	}
	return nil
}
func (interiorCutHandler) BuildGeometry(f scene.Feature, el scene.Element) (Solid, error) {
	return Solid{Face: string(f.Face), Base: f.Points, Depth: f.Depth}, nil
}
func (interiorCutHandler) Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	return baseMetadata(f, el, kind)
}
