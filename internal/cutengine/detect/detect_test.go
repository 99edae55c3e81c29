package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/dstvcut/internal/cutengine"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
	"github.com/piwi3910/dstvcut/internal/scene"
)

func sampleElement() scene.Element {
	return scene.Element{
		Dimensions: scene.Dimensions{Length: 1000, Height: 200, Width: 100, WebThickness: 6, FlangeThickness: 9},
	}
}

func angleRef(v float64) *float64 { return &v }

func TestDetectDispatchesByExplicitCutType(t *testing.T) {
	el := sampleElement()
	assert.Equal(t, cutengine.BevelCut, Detect(scene.Feature{CutType: "bevel"}, el))
	assert.Equal(t, cutengine.ChamferCut, Detect(scene.Feature{CutType: "chamfer"}, el))
	assert.Equal(t, cutengine.SlotCut, Detect(scene.Feature{CutType: "slot"}, el))
	assert.Equal(t, cutengine.CopingCut, Detect(scene.Feature{CutType: "coping"}, el))
	assert.Equal(t, cutengine.CutWithNotches, Detect(scene.Feature{CutType: "partial_notches"}, el))
}

func TestDetectEndCutStraight(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "end_cut", Angle: angleRef(90)}
	assert.Equal(t, cutengine.EndStraight, Detect(f, el))
}

func TestDetectEndCutAngleWhenNot90(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "end_cut", Angle: angleRef(45)}
	assert.Equal(t, cutengine.EndAngle, Detect(f, el))
}

func TestDetectEndCutChamferWhenAngledWithChamferSize(t *testing.T) {
	el := sampleElement()
	size := 5.0
	f := scene.Feature{CutType: "end_cut", Angle: angleRef(45), ChamferSize: &size}
	assert.Equal(t, cutengine.EndChamfer, Detect(f, el))
}

func TestDetectEndCutCompoundForZigZagPoints(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "end_cut", Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20},
	}}
	assert.Equal(t, cutengine.EndCompound, Detect(f, el))
}

func TestDetectEndCutStraightForOneOrTwoKinks(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "end_cut", Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10},
	}}
	assert.Equal(t, cutengine.EndStraight, Detect(f, el))
}

// These notch-depth cases use collinear point sets so the curvature
// pre-check (which flags any real corner as curved) does not shadow the
// depth-based classification being exercised.
func TestDetectNotchRectangularForFullDepthNotch(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "notch", Face: token.FaceFront, Depth: 6, Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 15, Y: 0},
	}}
	assert.Equal(t, cutengine.NotchRectangular, Detect(f, el))
}

func TestDetectNotchPartialForShallowDepth(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "notch", Face: token.FaceFront, Depth: 1, Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 15, Y: 0},
	}}
	assert.Equal(t, cutengine.NotchPartial, Detect(f, el))
}

func TestDetectNotchUsesFlangeThicknessOnFlangeFaces(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "notch", Face: token.FaceTopFlange, Depth: 9, Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 15, Y: 0},
	}}
	assert.Equal(t, cutengine.NotchRectangular, Detect(f, el))
}

func TestDetectNotchCompoundForManyCollinearPoints(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "notch", Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 0},
	}}
	assert.Equal(t, cutengine.NotchCompound, Detect(f, el))
}

func TestDetectNotchCurvedForNonCollinearTriplets(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{CutType: "notch", Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 5, Y: 2}, {X: 10, Y: 0},
	}}
	assert.Equal(t, cutengine.NotchCurved, Detect(f, el))
}

func TestDetectContourDerivedExteriorCut(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50},
	}}
	assert.Equal(t, cutengine.ExteriorCut, Detect(f, el))
}

func TestDetectContourDerivedInteriorCut(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{Points: []scene.Point2D{
		{X: 400, Y: 80}, {X: 450, Y: 80}, {X: 450, Y: 120}, {X: 400, Y: 120},
	}}
	assert.Equal(t, cutengine.InteriorCut, Detect(f, el))
}

func TestDetectContourDerivedFallsBackToContourCut(t *testing.T) {
	el := scene.Element{Dimensions: scene.Dimensions{Length: 0, Height: 0}}
	f := scene.Feature{Points: []scene.Point2D{
		{X: 0, Y: 0}, {X: 4, Y: 1}, {X: 8, Y: 0}, {X: 6, Y: -2}, {X: 2, Y: -2},
	}}
	assert.Equal(t, cutengine.ContourCut, Detect(f, el))
}

func TestDetectEndCutByPositionNearProfileEnd(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{Position: &scene.Point2D{X: 5, Y: 0}}
	assert.Equal(t, cutengine.EndStraight, Detect(f, el))
}

func TestDetectThroughCutFallback(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{Position: &scene.Point2D{X: 500, Y: 0}, Depth: cutengine.DepthThrough}
	assert.Equal(t, cutengine.ThroughCut, Detect(f, el))
}

func TestDetectPartialCutFallback(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{Position: &scene.Point2D{X: 500, Y: 0}, Depth: 3}
	assert.Equal(t, cutengine.PartialCut, Detect(f, el))
}

func TestDetectIsTotalAndDeterministic(t *testing.T) {
	el := sampleElement()
	f := scene.Feature{}
	k1 := Detect(f, el)
	k2 := Detect(f, el)
	assert.Equal(t, k1, k2)
	assert.NotEmpty(t, string(k1))
}
