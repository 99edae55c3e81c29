package convert

import (
	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// classifyMaterial maps a profile kind to the high-level material category
// used by the scene model, per §4.E "Material classification".
func classifyMaterial(kind parser.ProfileKind) scene.Material {
	switch kind {
	case parser.KindI, parser.KindT, parser.KindZ:
		return scene.MaterialBeam
	case parser.KindU:
		return scene.MaterialChannel
	case parser.KindL:
		return scene.MaterialAngle
	case parser.KindRectTube, parser.KindRoundTube:
		return scene.MaterialTube
	case parser.KindFlatBar, parser.KindRoundBar, parser.KindPlate:
		return scene.MaterialPlate
	default:
		return scene.MaterialPlate
	}
}
