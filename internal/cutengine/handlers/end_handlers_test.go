package handlers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/dstvcut/internal/cutengine"
	"github.com/piwi3910/dstvcut/internal/scene"
)

func TestEndCutHandlerAcceptsPositionOrMultiPoint(t *testing.T) {
	h := endCutHandler{}
	assert.ElementsMatch(t, []cutengine.CutKind{
		cutengine.EndStraight, cutengine.EndAngle, cutengine.EndChamfer, cutengine.EndCompound,
	}, h.Kinds())
	assert.Equal(t, 80, h.Priority())
	assert.True(t, h.Accepts(scene.Feature{Position: &scene.Point2D{}}, sampleElement()))
	assert.True(t, h.Accepts(scene.Feature{Points: triangle()[:2]}, sampleElement()))
	assert.False(t, h.Accepts(scene.Feature{}, sampleElement()))
}

func TestEndCutHandlerValidateRejectsOutOfRangeAngle(t *testing.T) {
	h := endCutHandler{}
	zero := 0.0
	require.Error(t, h.Validate(scene.Feature{Angle: &zero}, sampleElement()))
	ninety := 90.0
	require.NoError(t, h.Validate(scene.Feature{Angle: &ninety}, sampleElement()))
}

func TestEndCutHandlerBuildGeometryUsesContourWhenPresent(t *testing.T) {
	h := endCutHandler{}
	f := scene.Feature{ID: "e1", Points: triangle(), Depth: 8}
	solid, err := h.BuildGeometry(f, sampleElement())
	require.NoError(t, err)
	assert.Equal(t, 8.0, solid.Depth)
	assert.Equal(t, triangle(), solid.Base)
}

func TestEndCutHandlerBuildGeometrySquareCutAtStartOfMember(t *testing.T) {
	h := endCutHandler{}
	el := sampleElement()
	ninety := 90.0
	f := scene.Feature{ID: "e2", Position: &scene.Point2D{X: 5, Y: 0}, Angle: &ninety}
	solid, err := h.BuildGeometry(f, el)
	require.NoError(t, err)
	require.Len(t, solid.Base, 4)
	// skew should be zero at 90 degrees: both ends of the cut edge sit at x == 5.
	assert.InDelta(t, 5, solid.Base[1].X, 1e-9)
	assert.InDelta(t, 5, solid.Base[2].X, 1e-9)
	assert.Equal(t, el.Dimensions.Width+el.Dimensions.Height, solid.Depth)
}

func TestEndCutHandlerBuildGeometrySkewsForAngledEndAtFarEnd(t *testing.T) {
	h := endCutHandler{}
	el := sampleElement()
	angle := 45.0
	f := scene.Feature{ID: "e3", Position: &scene.Point2D{X: 900, Y: 0}, Angle: &angle}
	solid, err := h.BuildGeometry(f, el)
	require.NoError(t, err)
	require.Len(t, solid.Base, 4)
	skew := el.Dimensions.Height / math.Tan(45*math.Pi/180)
	assert.InDelta(t, 900-skew, solid.Base[3].X, 1e-9)
}

func TestCopingCutHandlerRequiresThreePlusPoints(t *testing.T) {
	h := copingCutHandler{}
	assert.Equal(t, []cutengine.CutKind{cutengine.CopingCut}, h.Kinds())
	assert.Equal(t, 85, h.Priority())
	require.Error(t, h.Validate(scene.Feature{Points: triangle()[:1]}, sampleElement()))
	require.NoError(t, h.Validate(scene.Feature{Points: triangle()}, sampleElement()))

	el := sampleElement()
	solid, err := h.BuildGeometry(scene.Feature{Points: triangle()}, el)
	require.NoError(t, err)
	assert.Equal(t, el.Dimensions.Width+el.Dimensions.Height, solid.Depth)
}

func TestBevelCutHandlerValidatesAngleRange(t *testing.T) {
	h := bevelCutHandler{}
	assert.ElementsMatch(t, []cutengine.CutKind{cutengine.BevelCut, cutengine.ChamferCut}, h.Kinds())
	assert.Equal(t, 70, h.Priority())
	bad := 90.0
	require.Error(t, h.Validate(scene.Feature{BevelAngle: &bad}, sampleElement()))
	good := 30.0
	require.NoError(t, h.Validate(scene.Feature{BevelAngle: &good}, sampleElement()))
}

func TestBevelCutHandlerBuildGeometryFallsBackToChamferSizeSquare(t *testing.T) {
	h := bevelCutHandler{}
	el := sampleElement()
	size := 12.0
	f := scene.Feature{ChamferSize: &size}
	solid, err := h.BuildGeometry(f, el)
	require.NoError(t, err)
	assert.Equal(t, []scene.Point2D{{X: 0, Y: 0}, {X: 12, Y: 0}, {X: 12, Y: 12}, {X: 0, Y: 12}}, solid.Base)
	assert.Equal(t, el.Dimensions.Width, solid.Depth)
}

func TestBevelCutHandlerBuildGeometryDefaultsToFlangeThicknessWhenNoChamferSize(t *testing.T) {
	h := bevelCutHandler{}
	el := sampleElement()
	solid, err := h.BuildGeometry(scene.Feature{}, el)
	require.NoError(t, err)
	assert.Equal(t, el.Dimensions.FlangeThickness, solid.Base[1].X)
}

func TestAngleCutHandlerRequiresTransverseAndAngle(t *testing.T) {
	h := angleCutHandler{}
	assert.Equal(t, []cutengine.CutKind{cutengine.TransverseCut}, h.Kinds())
	assert.Equal(t, 40, h.Priority())
	angle := 45.0
	assert.True(t, h.Accepts(scene.Feature{IsTransverse: true, Angle: &angle}, sampleElement()))
	assert.False(t, h.Accepts(scene.Feature{IsTransverse: true}, sampleElement()))
	assert.False(t, h.Accepts(scene.Feature{Angle: &angle}, sampleElement()))
}

func TestAngleCutHandlerValidateRejectsOutOfRangeAngle(t *testing.T) {
	h := angleCutHandler{}
	bad := 0.0
	require.Error(t, h.Validate(scene.Feature{Angle: &bad}, sampleElement()))
}

func TestTransverseCutHandlerAcceptsOnlyWithoutAngle(t *testing.T) {
	h := transverseCutHandler{}
	assert.Equal(t, []cutengine.CutKind{cutengine.TransverseCut}, h.Kinds())
	assert.Equal(t, 45, h.Priority())
	assert.True(t, h.Accepts(scene.Feature{IsTransverse: true}, sampleElement()))
	angle := 10.0
	assert.False(t, h.Accepts(scene.Feature{IsTransverse: true, Angle: &angle}, sampleElement()))
}

func TestTransverseCutHandlerValidateRequiresContour(t *testing.T) {
	h := transverseCutHandler{}
	require.Error(t, h.Validate(scene.Feature{Points: triangle()[:1]}, sampleElement()))
	require.NoError(t, h.Validate(scene.Feature{Points: triangle()}, sampleElement()))
}

func TestSlotCutHandlerAcceptsPositionAndPositiveWidth(t *testing.T) {
	h := slotCutHandler{}
	assert.Equal(t, []cutengine.CutKind{cutengine.SlotCut}, h.Kinds())
	assert.Equal(t, 75, h.Priority())
	assert.True(t, h.Accepts(scene.Feature{Position: &scene.Point2D{}, Width: 20}, sampleElement()))
	assert.False(t, h.Accepts(scene.Feature{Width: 20}, sampleElement()))
	assert.False(t, h.Accepts(scene.Feature{Position: &scene.Point2D{}}, sampleElement()))
}

func TestSlotCutHandlerValidateRequiresDiameterOrHeight(t *testing.T) {
	h := slotCutHandler{}
	require.Error(t, h.Validate(scene.Feature{}, sampleElement()))
	require.NoError(t, h.Validate(scene.Feature{Diameter: 10}, sampleElement()))
	require.NoError(t, h.Validate(scene.Feature{Height: 10}, sampleElement()))
}

func TestSlotCutHandlerBuildGeometryProducesClosedOutline(t *testing.T) {
	h := slotCutHandler{}
	el := sampleElement()
	f := scene.Feature{
		Position: &scene.Point2D{X: 50, Y: 50}, Width: 30, Diameter: 10, Depth: cutengine.DepthThrough,
	}
	solid, err := h.BuildGeometry(f, el)
	require.NoError(t, err)
	assert.True(t, solid.Through)
	assert.Len(t, solid.Base, 14) // two 7-point fans (0..capSegments inclusive, capSegments=6)
}

func TestSlotCutHandlerBuildGeometryFallsBackToHeightWhenNoDiameter(t *testing.T) {
	h := slotCutHandler{}
	el := sampleElement()
	f := scene.Feature{Position: &scene.Point2D{X: 0, Y: 0}, Width: 20, Height: 8}
	solid, err := h.BuildGeometry(f, el)
	require.NoError(t, err)
	require.NotEmpty(t, solid.Base)
}

func TestStraightCutHandlerAcceptsEverything(t *testing.T) {
	h := straightCutHandler{}
	assert.ElementsMatch(t, []cutengine.CutKind{
		cutengine.StraightCut, cutengine.ThroughCut, cutengine.PartialCut,
	}, h.Kinds())
	assert.Equal(t, 20, h.Priority())
	assert.True(t, h.Accepts(scene.Feature{}, sampleElement()))
	require.NoError(t, h.Validate(scene.Feature{}, sampleElement()))
}

func TestStraightCutHandlerBuildGeometryErrorsWithoutContourOrPosition(t *testing.T) {
	h := straightCutHandler{}
	_, err := h.BuildGeometry(scene.Feature{}, sampleElement())
	require.Error(t, err)
}

func TestStraightCutHandlerBuildGeometryUsesDefaultsFromElement(t *testing.T) {
	h := straightCutHandler{}
	el := sampleElement()
	f := scene.Feature{Position: &scene.Point2D{X: 500, Y: 100}, Depth: 4}
	solid, err := h.BuildGeometry(f, el)
	require.NoError(t, err)
	require.Len(t, solid.Base, 4)
	wantHalfW := el.Dimensions.WebThickness / 2
	wantHalfH := el.Dimensions.Height / 2
	assert.InDelta(t, 500-wantHalfW, solid.Base[0].X, 1e-9)
	assert.InDelta(t, 100-wantHalfH, solid.Base[0].Y, 1e-9)
}

func TestLegacyFallbackHandlerClaimsEveryKindAndAcceptsAnything(t *testing.T) {
	h := legacyFallbackHandler{}
	assert.Equal(t, math.MinInt32, h.Priority())
	assert.True(t, h.Accepts(scene.Feature{}, sampleElement()))
	require.NoError(t, h.Validate(scene.Feature{}, sampleElement()))
	kinds := h.Kinds()
	assert.Contains(t, kinds, cutengine.StraightCut)
	assert.Contains(t, kinds, cutengine.NotchCompound)
	assert.Contains(t, kinds, cutengine.EndCompound)
}

func TestLegacyFallbackHandlerBuildGeometryDefaultRadiusWhenNoDiameter(t *testing.T) {
	h := legacyFallbackHandler{}
	el := sampleElement()
	solid, err := h.BuildGeometry(scene.Feature{Position: &scene.Point2D{X: 10, Y: 10}}, el)
	require.NoError(t, err)
	require.Len(t, solid.Base, 4)
	assert.InDelta(t, 10-5, solid.Base[0].X, 1e-9)
}
