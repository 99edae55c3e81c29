// Package csg evaluates boolean subtraction between an element's base mesh
// and the cut volumes produced by the cut-handler registry (§4.I), and
// offloads heavy evaluations to a background worker pool (§4.J).
//
// The package does not implement a geometric kernel: boolean algebra is a
// documented non-goal (spec §1), so Evaluator is a pluggable seam and the
// bundled implementation is a reference/stub, not a production CSG engine.
package csg

import "math"

// Mesh is an indexed triangle mesh: a flat position attribute is
// mandatory, normals/uv are optional (§3 "Mesh handle"). Ownership is
// exclusively the caller's except during a CSG operation, which may hold
// shared views temporarily; Clone gives the caller an independent copy.
type Mesh struct {
	Positions []float64 // xyz triples
	Normals   []float64 // xyz triples, same length as Positions when present
	UV        []float64 // uv pairs, 2/3 the length of Positions when present
	Colors    []float64 // rgba quads, optional
	Indices   []uint32

	UserData map[string]any
}

// VertexCount returns the number of vertices carried by the position
// attribute.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles described by Indices.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasPosition reports whether the mesh carries the mandatory position
// attribute with at least one triangle's worth of vertices.
func (m Mesh) HasPosition() bool {
	return len(m.Positions) >= 9 && len(m.Positions)%3 == 0
}

// FiniteCoordinates reports whether every position/normal/uv component is
// finite (no NaN/Inf), a CSG service precondition (§4.I).
func (m Mesh) FiniteCoordinates() bool {
	for _, attr := range [][]float64{m.Positions, m.Normals, m.UV} {
		for _, v := range attr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep, independent copy of m: mutating the clone never
// observes in m and vice versa (§8 property 8, cache idempotence relies
// on this).
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Positions: append([]float64(nil), m.Positions...),
		Normals:   append([]float64(nil), m.Normals...),
		UV:        append([]float64(nil), m.UV...),
		Colors:    append([]float64(nil), m.Colors...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	if m.UserData != nil {
		out.UserData = make(map[string]any, len(m.UserData))
		for k, v := range m.UserData {
			out.UserData[k] = v
		}
	}
	return out
}

// BoundingBox is an axis-aligned box in the mesh's local coordinate space.
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// ComputeBoundingBox recomputes a mesh's AABB from its position attribute.
func ComputeBoundingBox(m Mesh) BoundingBox {
	if m.VertexCount() == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{
		MinX: m.Positions[0], MinY: m.Positions[1], MinZ: m.Positions[2],
		MaxX: m.Positions[0], MaxY: m.Positions[1], MaxZ: m.Positions[2],
	}
	for i := 0; i < len(m.Positions); i += 3 {
		x, y, z := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		bb.MinX, bb.MaxX = math.Min(bb.MinX, x), math.Max(bb.MaxX, x)
		bb.MinY, bb.MaxY = math.Min(bb.MinY, y), math.Max(bb.MaxY, y)
		bb.MinZ, bb.MaxZ = math.Min(bb.MinZ, z), math.Max(bb.MaxZ, z)
	}
	return bb
}

// Intersects reports whether two AABBs overlap on every axis.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY &&
		b.MinZ <= o.MaxZ && o.MinZ <= b.MaxZ
}

// EnsureNormals computes per-vertex normals (flat face normals, averaged
// per shared vertex) when the mesh does not already carry them.
func EnsureNormals(m Mesh) Mesh {
	if len(m.Normals) == len(m.Positions) {
		return m
	}
	out := m.Clone()
	out.Normals = make([]float64, len(out.Positions))
	for t := 0; t+2 < len(out.Indices); t += 3 {
		ia, ib, ic := out.Indices[t], out.Indices[t+1], out.Indices[t+2]
		ax, ay, az := out.Positions[ia*3], out.Positions[ia*3+1], out.Positions[ia*3+2]
		bx, by, bz := out.Positions[ib*3], out.Positions[ib*3+1], out.Positions[ib*3+2]
		cx, cy, cz := out.Positions[ic*3], out.Positions[ic*3+1], out.Positions[ic*3+2]
		ux, uy, uz := bx-ax, by-ay, bz-az
		vx, vy, vz := cx-ax, cy-ay, cz-az
		nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
		for _, idx := range [3]uint32{ia, ib, ic} {
			out.Normals[idx*3] += nx
			out.Normals[idx*3+1] += ny
			out.Normals[idx*3+2] += nz
		}
	}
	for i := 0; i < len(out.Normals); i += 3 {
		x, y, z := out.Normals[i], out.Normals[i+1], out.Normals[i+2]
		n := math.Sqrt(x*x + y*y + z*z)
		if n > 1e-12 {
			out.Normals[i], out.Normals[i+1], out.Normals[i+2] = x/n, y/n, z/n
		}
	}
	return out
}

// stripNonEssential keeps only position, normal, uv and color attributes,
// matching the "balanced" performance-mode contract (§4.I).
func stripNonEssential(m Mesh) Mesh {
	out := m.Clone()
	out.UserData = m.UserData
	return out
}

// BoundingSphere is the center + radius enclosing every vertex, computed
// for the "quality" performance mode (§4.I). Vertex merging is explicitly
// deferred, matching the spec's documented limitation.
type BoundingSphere struct {
	CenterX, CenterY, CenterZ float64
	Radius                    float64
}

// ComputeBoundingSphere derives a bounding sphere from the mesh's AABB
// (center of the box, radius to the farthest corner) — a cheap
// approximation, not a minimal enclosing sphere.
func ComputeBoundingSphere(m Mesh) BoundingSphere {
	bb := ComputeBoundingBox(m)
	cx, cy, cz := (bb.MinX+bb.MaxX)/2, (bb.MinY+bb.MaxY)/2, (bb.MinZ+bb.MaxZ)/2
	r := math.Sqrt(
		math.Pow(bb.MaxX-cx, 2) + math.Pow(bb.MaxY-cy, 2) + math.Pow(bb.MaxZ-cz, 2),
	)
	return BoundingSphere{CenterX: cx, CenterY: cy, CenterZ: cz, Radius: r}
}
