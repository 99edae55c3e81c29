package csg

import (
	"github.com/piwi3910/dstvcut/internal/cutengine/handlers"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// BuildCutMesh extrudes a handler-produced Solid into a 3D subtraction
// volume (§4.G "Geometry-of-cut"): the 2D base polygon is extruded along
// the cut normal by Solid.Depth, then placed per the face-dependent rule
// — translate by ±H/2 for flange faces, rotate π/2 around X for web/bottom
// faces (§4.G "Face-dependent placement").
func BuildCutMesh(s handlers.Solid, el scene.Element) Mesh {
	base := s.Base
	if len(base) < 3 {
		return Mesh{}
	}
	depth := s.Depth
	if depth <= 0 {
		depth = el.Dimensions.Length + el.Dimensions.Width + el.Dimensions.Height
	}

	n := len(base)
	positions := make([]float64, 0, n*2*3)
	for _, p := range base {
		x, y, z := placeOnFace(p.X, p.Y, 0, token.Face(s.Face), el)
		positions = append(positions, x, y, z)
	}
	for _, p := range base {
		x, y, z := placeOnFace(p.X, p.Y, depth, token.Face(s.Face), el)
		positions = append(positions, x, y, z)
	}

	var indices []uint32
	// bottom fan, top fan (reversed winding)
	for i := 1; i < n-1; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	for i := 1; i < n-1; i++ {
		indices = append(indices, uint32(n), uint32(n+i+1), uint32(n+i))
	}
	// side quads, two triangles each
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		b0, b1 := uint32(i), uint32(j)
		t0, t1 := uint32(n+i), uint32(n+j)
		indices = append(indices, b0, b1, t1, b0, t1, t0)
	}

	return Mesh{
		Positions: positions,
		Indices:   indices,
		UserData: map[string]any{
			"face":    s.Face,
			"through": s.Through,
		},
	}
}

// placeOnFace maps a (x, y, extrudeDepth) point in the feature's 2D face
// plane into element-local 3D space, per §4.G face-dependent placement.
func placeOnFace(x, y, depth float64, face token.Face, el scene.Element) (px, py, pz float64) {
	switch face {
	case token.FaceTopFlange:
		return x, el.Dimensions.Height/2 - depth, y
	case token.FaceBottomFlange:
		// rotate pi/2 around X (Y axis becomes Z), then drop to the
		// bottom flange.
		return x, -el.Dimensions.Height/2 + depth, y
	case token.FaceWeb:
		// rotate pi/2 around X: the face's local Y axis becomes Z.
		return x, depth, y
	default: // front, back
		return x, y, depth
	}
}
