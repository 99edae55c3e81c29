package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/scene"
)

func TestClassifyMaterialMapping(t *testing.T) {
	assert.Equal(t, scene.MaterialBeam, classifyMaterial(parser.KindI))
	assert.Equal(t, scene.MaterialBeam, classifyMaterial(parser.KindT))
	assert.Equal(t, scene.MaterialBeam, classifyMaterial(parser.KindZ))
	assert.Equal(t, scene.MaterialChannel, classifyMaterial(parser.KindU))
	assert.Equal(t, scene.MaterialAngle, classifyMaterial(parser.KindL))
	assert.Equal(t, scene.MaterialTube, classifyMaterial(parser.KindRectTube))
	assert.Equal(t, scene.MaterialTube, classifyMaterial(parser.KindRoundTube))
	assert.Equal(t, scene.MaterialPlate, classifyMaterial(parser.KindFlatBar))
	assert.Equal(t, scene.MaterialPlate, classifyMaterial(parser.KindRoundBar))
	assert.Equal(t, scene.MaterialPlate, classifyMaterial(parser.KindPlate))
	assert.Equal(t, scene.MaterialPlate, classifyMaterial(parser.KindUnknown))
}
