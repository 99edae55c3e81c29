package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

func TestClassifyContourRecognizesBaseRectangle(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 100}
	c := parser.Contour{Face: token.FaceWeb, Points: []parser.Point2D{
		{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0},
	}}
	cl := classifyContour(c, header)
	assert.True(t, cl.isBase)
	assert.Nil(t, cl.cut)
}

func TestClassifyContourSmallContourIsACut(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 100}
	c := parser.Contour{Face: token.FaceFront, Points: []parser.Point2D{
		{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20},
	}}
	cl := classifyContour(c, header)
	require.False(t, cl.isBase)
	require.NotNil(t, cl.cut)
	assert.Equal(t, DefaultCutDepth, cl.cut.Depth)
	assert.Equal(t, token.FaceFront, cl.cut.Face)
}

func TestClassifyContourUsesWidthAsExpectedExtentOnWeb(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 50}
	// covers >90% of length and of width (50) on the web face: should classify as base
	c := parser.Contour{Face: token.FaceWeb, Points: []parser.Point2D{
		{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 48}, {X: 0, Y: 48}, {X: 0, Y: 0},
	}}
	cl := classifyContour(c, header)
	assert.True(t, cl.isBase)
}

func TestExtractNinePointNotchReturnsNilForTooFewUniqueXs(t *testing.T) {
	c := parser.Contour{Points: []parser.Point2D{{X: 0, Y: 0}, {X: 0, Y: 10}}}
	assert.Nil(t, extractNinePointNotch(c))
}

func TestExtractNinePointNotchReturnsNilWhenExtensionSmall(t *testing.T) {
	c := parser.Contour{Points: []parser.Point2D{
		{X: 0, Y: 0}, {X: 15, Y: 0}, {X: 15, Y: 10}, {X: 0, Y: 10},
	}}
	assert.Nil(t, extractNinePointNotch(c))
}

func TestExtractNinePointNotchBuildsRectangleFromExtension(t *testing.T) {
	c := parser.Contour{Face: token.FaceWeb, Points: []parser.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 60},
		{X: 100, Y: 60}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0},
	}}
	notch := extractNinePointNotch(c)
	require.NotNil(t, notch)
	assert.Len(t, notch.Contour, 4)
	assert.Equal(t, DefaultCutDepth, notch.Depth)
	assert.Equal(t, "partial_notches", notch.CutType)
}

func TestClassifyContourNinePointDelegatesToNotchExtraction(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 100}
	c := parser.Contour{Face: token.FaceWeb, Points: []parser.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 60},
		{X: 100, Y: 60}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0},
	}}
	cl := classifyContour(c, header)
	require.NotNil(t, cl.cut)
	require.NotNil(t, cl.notch)
}

func TestSynthesizeTransverseCutNilWhenContourReachesProfileEnd(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 100}
	assert.Nil(t, synthesizeTransverseCut(header, 995))
}

func TestSynthesizeTransverseCutBuildsWebSpanningCut(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 100}
	cut := synthesizeTransverseCut(header, 900)
	require.NotNil(t, cut)
	assert.Equal(t, token.FaceWeb, cut.Face)
	assert.True(t, cut.IsTransverse)
	assert.Equal(t, 150.0, cut.Depth)
	assert.Len(t, cut.Contour, 4)
}

func TestSynthesizeTransverseCutFallsBackToDefaultDepthWhenWidthZero(t *testing.T) {
	header := parser.ProfileHeader{Length: 1000, Height: 200, Width: 0}
	cut := synthesizeTransverseCut(header, 900)
	require.NotNil(t, cut)
	assert.Equal(t, DefaultCutDepth, cut.Depth)
}
