package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
	"github.com/piwi3910/dstvcut/internal/scene"
)

func sampleProfile() parser.RawProfile {
	return parser.RawProfile{
		Header: parser.ProfileHeader{
			PartID: "P1", Designation: "IPE200", SteelGrade: "S355",
			Length: 1000, Width: 100, Height: 200,
		},
		Holes: []parser.Hole{{X: 50, Y: 50, Diameter: 20, Face: token.FaceFront, Depth: parser.HoleDepthThrough}},
		Contours: []parser.Contour{{Face: token.FaceFront, Points: []parser.Point2D{
			{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30},
		}}},
		Markings: []parser.Marking{{Text: "A1", X: 5, Y: 5, Size: 15, Face: token.FaceFront}},
	}
}

func TestConvertProducesOneElementPerProfile(t *testing.T) {
	res := Convert([]parser.RawProfile{sampleProfile()}, DefaultOptions())
	require.Len(t, res.Scene.Elements, 1)
	el, ok := res.Scene.Elements["P1"]
	require.True(t, ok)
	assert.Equal(t, scene.MaterialBeam, el.Material)
	assert.Equal(t, "S355", el.Spec.Grade)
}

func TestConvertAssignsSyntheticIDWhenPartIDMissing(t *testing.T) {
	p := sampleProfile()
	p.Header.PartID = ""
	res := Convert([]parser.RawProfile{p}, DefaultOptions())
	require.Len(t, res.Scene.Elements, 1)
	for id := range res.Scene.Elements {
		assert.NotEmpty(t, id)
	}
}

func TestConvertSyntheticIDIsDeterministic(t *testing.T) {
	p := sampleProfile()
	p.Header.PartID = ""
	res1 := Convert([]parser.RawProfile{p}, DefaultOptions())
	res2 := Convert([]parser.RawProfile{p}, DefaultOptions())
	var id1, id2 string
	for id := range res1.Scene.Elements {
		id1 = id
	}
	for id := range res2.Scene.Elements {
		id2 = id
	}
	assert.Equal(t, id1, id2)
}

func TestConvertEmitsHoleCutAndMarkingFeatures(t *testing.T) {
	res := Convert([]parser.RawProfile{sampleProfile()}, DefaultOptions())
	el := res.Scene.Elements["P1"]

	var holes, cuts, markings int
	for _, f := range el.Features {
		switch f.Kind {
		case scene.FeatureHole:
			holes++
			assert.Equal(t, 20.0, f.Diameter)
		case scene.FeatureCut:
			cuts++
		case scene.FeatureMarking:
			markings++
			assert.Equal(t, "A1", f.Text)
		}
	}
	assert.Equal(t, 1, holes)
	// the contour cut, plus the transverse cut synthesized because the
	// contour (max X 30) stops short of the 1000mm profile end
	assert.Equal(t, 2, cuts)
	assert.Equal(t, 1, markings)
}

func TestConvertSlottedHoleCarriesWidthAndAngle(t *testing.T) {
	p := sampleProfile()
	p.Holes = []parser.Hole{{X: 1, Y: 1, Diameter: 10, Face: token.FaceFront, Kind: token.HoleSlotted, Slot: &parser.SlotExtras{Length: 30, Angle: 15}}}
	res := Convert([]parser.RawProfile{p}, DefaultOptions())
	el := res.Scene.Elements["P1"]
	require.Len(t, el.Features, 1+2+1) // hole + contour cut and synthesized transverse cut + marking from sampleProfile's other fields
	for _, f := range el.Features {
		if f.Kind == scene.FeatureHole {
			require.NotNil(t, f.Angle)
			assert.Equal(t, 15.0, *f.Angle)
			assert.Equal(t, 30.0, f.Width)
		}
	}
}

func TestConvertAppliesFaceMappingToContours(t *testing.T) {
	p := sampleProfile()
	p.Contours[0].Face = token.FaceWeb
	res := Convert([]parser.RawProfile{p}, Options{FaceMapping: FaceMappingAlternate})
	el := res.Scene.Elements["P1"]
	foundTopFlange := false
	for _, f := range el.Features {
		if f.Kind == scene.FeatureCut && f.Face == token.FaceTopFlange {
			foundTopFlange = true
		}
	}
	assert.True(t, foundTopFlange)
}

func TestConvertCutFeatureCarriesGeometricDescriptors(t *testing.T) {
	p := sampleProfile()
	res := Convert([]parser.RawProfile{p}, DefaultOptions())
	el := res.Scene.Elements["P1"]
	var cut *scene.Feature
	for i := range el.Features {
		if el.Features[i].Kind == scene.FeatureCut && !el.Features[i].IsTransverse {
			cut = &el.Features[i]
		}
	}
	require.NotNil(t, cut)
	assert.Equal(t, 400.0, cut.Area)
	assert.Equal(t, 80.0, cut.Perimeter)
	assert.Equal(t, "rectangular", cut.Shape)
}

func TestConvertSceneBoundsReflectLargestProfile(t *testing.T) {
	p1 := sampleProfile()
	p2 := sampleProfile()
	p2.Header.PartID = "P2"
	p2.Header.Length = 5000
	res := Convert([]parser.RawProfile{p1, p2}, DefaultOptions())
	assert.Equal(t, 5000.0, res.Scene.Bounds.Max.X)
}

func TestConvertChamfersBecomeCutFeatures(t *testing.T) {
	p := sampleProfile()
	p.Contours = nil
	p.Holes = nil
	p.Markings = nil
	p.Chamfers = []parser.Chamfer{{X: 0, Y: 0, Angle: 0, Depth: 5, Length: 20}}
	res := Convert([]parser.RawProfile{p}, DefaultOptions())
	el := res.Scene.Elements["P1"]
	require.Len(t, el.Features, 1)
	assert.Equal(t, scene.FeatureCut, el.Features[0].Kind)
	assert.Equal(t, "chamfer", el.Features[0].CutType)
}

func TestConvertNinePointContourEmitsPartialNotchCutType(t *testing.T) {
	p := sampleProfile()
	p.Holes = nil
	p.Markings = nil
	p.Contours = []parser.Contour{{Face: token.FaceWeb, Points: []parser.Point2D{
		{X: 0, Y: 0}, {X: 4703, Y: 0}, {X: 4703, Y: 100}, {X: 5000, Y: 100}, {X: 5000, Y: 150},
		{X: 4703, Y: 150}, {X: 4703, Y: 300}, {X: 0, Y: 300}, {X: 0, Y: 0},
	}}}
	res := Convert([]parser.RawProfile{p}, DefaultOptions())
	el := res.Scene.Elements["P1"]
	var notch *scene.Feature
	for i := range el.Features {
		if el.Features[i].CutType == "partial_notches" {
			notch = &el.Features[i]
		}
	}
	require.NotNil(t, notch)
	assert.Equal(t, scene.FeatureCut, notch.Kind)
}

func TestConvertSynthesizesTransverseCutWhenContourStopsShortOfProfileEnd(t *testing.T) {
	p := parser.RawProfile{
		Header: parser.ProfileHeader{PartID: "P1", Designation: "IPE200", Length: 1000, Width: 100, Height: 200},
		Contours: []parser.Contour{{Face: token.FaceFront, Points: []parser.Point2D{
			{X: 0, Y: 0}, {X: 500, Y: 0}, {X: 500, Y: 50}, {X: 0, Y: 50},
		}}},
	}
	res := Convert([]parser.RawProfile{p}, DefaultOptions())
	el := res.Scene.Elements["P1"]
	foundTransverse := false
	for _, f := range el.Features {
		if f.IsTransverse {
			foundTransverse = true
		}
	}
	assert.True(t, foundTransverse)
}
