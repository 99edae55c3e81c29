// Package convert maps validated DSTV profile records onto normalized
// scene elements, classifying AK/IK contours as base shape or cut and
// assembling each profile's feature list (§4.E).
package convert

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// Options configures the converter's single ambiguity-resolution point:
// which face-letter convention applies (§9, decision D1).
type Options struct {
	FaceMapping FaceMapping
}

// DefaultOptions returns the dominant face-mapping convention.
func DefaultOptions() Options {
	return Options{FaceMapping: FaceMappingDominant}
}

// Result is the converter's output: the assembled scene plus any
// non-fatal warnings (contour anomalies, ambiguous face evidence, etc).
type Result struct {
	Scene    scene.Scene
	Warnings []string
}

// Convert runs every validated profile through contour classification and
// scene assembly.
func Convert(profiles []parser.RawProfile, opts Options) Result {
	result := Result{Scene: scene.Scene{Elements: map[string]scene.Element{}}}

	var minB, maxB scene.Vec3
	first := true

	for idx, p := range profiles {
		el, warnings := convertProfile(p, idx, opts)
		result.Warnings = append(result.Warnings, warnings...)
		result.Scene.Elements[el.ID] = el

		lo, hi := elementBounds(el)
		if first {
			minB, maxB = lo, hi
			first = false
		} else {
			minB = vecMin(minB, lo)
			maxB = vecMax(maxB, hi)
		}
	}

	result.Scene.Bounds = scene.Bounds{Min: minB, Max: maxB}
	return result
}

func convertProfile(p parser.RawProfile, idx int, opts Options) (scene.Element, []string) {
	var warnings []string

	kind := parser.ResolveKind(p.Header.Code, p.Header.Designation)
	id := p.Header.PartID
	if id == "" {
		id = fmt.Sprintf("profile-%d-%d", idx, headerFingerprint(p.Header))
	}

	el := scene.Element{
		ID:       id,
		Kind:     string(kind),
		Material: classifyMaterial(kind),
		Spec: scene.MaterialSpec{
			Grade:   p.Header.SteelGrade,
			Density: scene.DefaultDensity,
		},
		Dimensions: scene.Dimensions{
			Length: p.Header.Length, Width: p.Header.Width, Height: p.Header.Height,
			Radius: p.Header.Radius, WebThickness: p.Header.WebThickness, FlangeThickness: p.Header.FlangeThickness,
		},
	}

	maxContourX := 0.0
	haveContour := false

	appendContourFeatures := func(contours []parser.Contour) {
		for _, c := range contours {
			c.Face = opts.FaceMapping.Apply(c.Face)
			if strictFaceContradiction(c, p.Header, kind) {
				warnings = append(warnings, fmt.Sprintf("%s: contour on face %q has evidence contradicting the configured face-mapping convention", el.ID, c.Face))
			}

			if _, hi := boundingBox(c.Points); true {
				if hi.X > maxContourX {
					maxContourX = hi.X
				}
			}
			haveContour = true

			cl := classifyContour(c, p.Header)
			if cl.isBase {
				continue
			}
			el.Features = append(el.Features, cutFeature(cl.cut, el.ID))
		}
	}

	appendContourFeatures(p.Contours)
	appendContourFeatures(p.Internal)

	if haveContour {
		if tc := synthesizeTransverseCut(p.Header, maxContourX); tc != nil {
			el.Features = append(el.Features, cutFeature(tc, el.ID))
		}
	}

	for _, sc := range p.Cuts {
		sc.Face = opts.FaceMapping.Apply(sc.Face)
		el.Features = append(el.Features, cutFeature(&sc, el.ID))
	}

	for _, ch := range p.Chamfers {
		cr := ch.AsCutContour()
		el.Features = append(el.Features, cutFeature(&cr, el.ID))
	}

	for _, h := range p.Holes {
		el.Features = append(el.Features, holeFeature(h, el.ID))
	}

	for _, m := range p.Markings {
		el.Features = append(el.Features, markingFeature(m, el.ID))
	}

	return el, warnings
}

func cutFeature(c *parser.CutRecord, elementID string) scene.Feature {
	pts := make([]scene.Point2D, len(c.Contour))
	for i, p := range c.Contour {
		pts[i] = scene.Point2D{X: p.X, Y: p.Y}
	}
	return scene.Feature{
		ID:           uuid.New().String(),
		Kind:         scene.FeatureCut,
		Face:         c.Face,
		Points:       pts,
		Depth:        c.Depth,
		Angle:        c.Angle,
		IsTransverse: c.IsTransverse,
		CutType:      c.CutType,
		Area:         shoelaceArea(c.Contour),
		Perimeter:    perimeter(c.Contour),
		Shape:        string(ClassifyShape(c.Contour)),
		ElementID:    elementID,
	}
}

func holeFeature(h parser.Hole, elementID string) scene.Feature {
	f := scene.Feature{
		ID:        uuid.New().String(),
		Kind:      scene.FeatureHole,
		Face:      h.Face,
		Depth:     h.Depth,
		Diameter:  h.Diameter,
		HoleType:  h.Kind,
		Position:  &scene.Point2D{X: h.X, Y: h.Y},
		ElementID: elementID,
	}
	if h.Slot != nil {
		angle := h.Slot.Angle
		f.Angle = &angle
		f.Width = h.Slot.Length
	}
	if h.Rect != nil {
		f.Width = h.Rect.Width
		f.Height = h.Rect.Height
	}
	return f
}

func markingFeature(m parser.Marking, elementID string) scene.Feature {
	return scene.Feature{
		ID:        uuid.New().String(),
		Kind:      scene.FeatureMarking,
		Face:      m.Face,
		Depth:     m.Depth,
		Text:      m.Text,
		Width:     m.Size,
		Position:  &scene.Point2D{X: m.X, Y: m.Y},
		ElementID: elementID,
	}
}

// strictFaceContradiction flags contours whose measured in-face extent
// matches the *other* dimension than the configured mapping implies — the
// "do not guess" tripwire from §9.
func strictFaceContradiction(c parser.Contour, header parser.ProfileHeader, kind parser.ProfileKind) bool {
	if kind != parser.KindI && kind != parser.KindU {
		return false
	}
	if c.Face != token.FaceWeb && c.Face != token.FaceTopFlange {
		return false
	}
	min, max := boundingBox(c.Points)
	extent := max.Y - min.Y
	if header.Width <= 0 || header.Height <= 0 {
		return false
	}
	if c.Face == token.FaceWeb {
		return extent > 0 && closeEnough(extent, header.Height) && !closeEnough(extent, header.Width)
	}
	return extent > 0 && closeEnough(extent, header.Width) && !closeEnough(extent, header.Height)
}

func closeEnough(a, b float64) bool {
	if b == 0 {
		return false
	}
	ratio := a / b
	return ratio > 0.9 && ratio < 1.1
}

// headerFingerprint deterministically derives the synthesized-id suffix
// (§4.E "profile-{index}-{timestamp}") from the header's own content
// instead of wall-clock time, so Convert is a pure function of its input
// and two runs of the same file produce the same element ids.
func headerFingerprint(h parser.ProfileHeader) uint64 {
	f := fnv.New64a()
	fmt.Fprintf(f, "%s|%s|%d|%.3f|%.3f|%.3f", h.Designation, h.SteelGrade, h.Quantity, h.Length, h.Width, h.Height)
	return f.Sum64()
}

func elementBounds(el scene.Element) (min, max scene.Vec3) {
	max = scene.Vec3{X: el.Dimensions.Length, Y: el.Dimensions.Height, Z: el.Dimensions.Width}
	return scene.Vec3{}, max
}

func vecMin(a, b scene.Vec3) scene.Vec3 {
	return scene.Vec3{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)}
}
func vecMax(a, b scene.Vec3) scene.Vec3 {
	return scene.Vec3{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)}
}
func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
