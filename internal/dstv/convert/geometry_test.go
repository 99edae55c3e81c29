package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
)

func rectPts() []parser.Point2D {
	return []parser.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
}

func TestBoundingBox(t *testing.T) {
	min, max := boundingBox(rectPts())
	assert.Equal(t, parser.Point2D{X: 0, Y: 0}, min)
	assert.Equal(t, parser.Point2D{X: 10, Y: 10}, max)
}

func TestShoelaceAreaOfSquare(t *testing.T) {
	assert.InDelta(t, 100.0, shoelaceArea(rectPts()), 1e-9)
}

func TestShoelaceAreaDegenerateIsZero(t *testing.T) {
	assert.Equal(t, 0.0, shoelaceArea([]parser.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}))
}

func TestPerimeterOfSquare(t *testing.T) {
	assert.InDelta(t, 40.0, perimeter(rectPts()), 1e-9)
}

func TestClassifyShapeRectangular(t *testing.T) {
	closed := append(append([]parser.Point2D{}, rectPts()...), rectPts()[0])
	assert.Equal(t, ShapeRectangular, ClassifyShape(closed))
}

func TestClassifyShapeCircular(t *testing.T) {
	var pts []parser.Point2D
	const n = 16
	for i := 0; i < n; i++ {
		angle := float64(i) / n * 2 * math.Pi
		pts = append(pts, parser.Point2D{X: 10 * math.Cos(angle), Y: 10 * math.Sin(angle)})
	}
	assert.Equal(t, ShapeCircular, ClassifyShape(pts))
}

func TestClassifyShapePolygonalForSmallIrregularContour(t *testing.T) {
	pts := []parser.Point2D{{X: 0, Y: 0}, {X: 10, Y: 2}, {X: 7, Y: 9}, {X: 1, Y: 6}, {X: 3, Y: 3}}
	assert.Equal(t, ShapePolygonal, ClassifyShape(pts))
}

func TestIsBaseRectangleRequiresOriginAnchoredClosedAxisAligned(t *testing.T) {
	closed := append(append([]parser.Point2D{}, rectPts()...), rectPts()[0])
	assert.True(t, isBaseRectangle(closed))

	offset := []parser.Point2D{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}, {X: 5, Y: 5}}
	assert.False(t, isBaseRectangle(offset))
}

func TestIsBaseRectangleRejectsWrongPointCount(t *testing.T) {
	assert.False(t, isBaseRectangle(rectPts()))
}

func TestUniqueXsDeduplicatesAndSorts(t *testing.T) {
	pts := []parser.Point2D{{X: 5}, {X: 1}, {X: 5.005}, {X: 3}}
	xs := uniqueXs(pts)
	assert.Equal(t, []float64{1, 3, 5}, xs)
}
