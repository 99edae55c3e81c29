// Package handlers implements the cut handler registry (§4.G/§4.H): a
// priority-ordered set of handlers, one per CutKind family, each capable of
// validating a feature and building the subtraction geometry a CSG
// operation needs to carve it out of an element's mesh.
package handlers

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/piwi3910/dstvcut/internal/cutengine"
	"github.com/piwi3910/dstvcut/internal/scene"
)

// Handler is the six-method contract every cut kind's handler satisfies
// (§4.G). Implementations are stateless; any per-call state lives in the
// arguments and return values.
type Handler interface {
	// Kinds lists the CutKind values this handler accepts.
	Kinds() []cutengine.CutKind
	// Priority orders handlers when more than one claims the same kind;
	// higher runs first.
	Priority() int
	// Accepts reports whether this handler can process the feature beyond
	// the kind match (e.g. a minimum point count).
	Accepts(f scene.Feature, el scene.Element) bool
	// Validate checks the feature's parameters are physically sane for
	// this handler before geometry is built.
	Validate(f scene.Feature, el scene.Element) error
	// BuildGeometry returns the subtraction solid (in element-local
	// coordinates) that the CSG service will subtract from the element.
	BuildGeometry(f scene.Feature, el scene.Element) (Solid, error)
	// Describe returns the CutMetadata record for this feature.
	Describe(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata
}

// Solid is a minimal extrusion-based subtraction volume: a planar base
// polygon (in the feature's face plane) carried a given depth along the
// face normal. The CSG service consumes this to build the boolean-
// subtraction mesh.
type Solid struct {
	Face      string
	Base      []scene.Point2D
	Depth     float64
	Through   bool
	Transform Transform
}

// Transform places a Solid's 2D base polygon into element-local 3D space.
type Transform struct {
	Origin scene.Vec3
	Normal scene.Vec3
}

// Registry dispatches features to their priority-ordered handler (§4.H).
type Registry struct {
	mu       sync.RWMutex
	handlers []Handler
	stats    map[cutengine.CutKind]int
}

// NewRegistry builds a registry pre-populated with the full default
// handler set (§4.G), ordered by descending priority.
func NewRegistry() *Registry {
	r := &Registry{stats: make(map[cutengine.CutKind]int)}
	for _, h := range defaultHandlers() {
		r.Register(h)
	}
	return r
}

func defaultHandlers() []Handler {
	return []Handler{
		partialNotchHandler{},
		notchHandler{},
		compoundCutHandler{},
		endCutHandler{},
		copingCutHandler{},
		bevelCutHandler{},
		kontourHandler{},
		plateHandler{},
		exteriorCutHandler{},
		interiorCutHandler{},
		angleCutHandler{},
		slotCutHandler{},
		transverseCutHandler{},
		straightCutHandler{},
		legacyFallbackHandler{},
	}
}

// Register adds a handler, keeping the internal list sorted by descending
// priority (ties broken by insertion order, matching sort.SliceStable).
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
	sort.SliceStable(r.handlers, func(i, j int) bool {
		return r.handlers[i].Priority() > r.handlers[j].Priority()
	})
}

// Unregister removes every handler whose Kinds() set intersects kinds.
func (r *Registry) Unregister(kinds ...cutengine.CutKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[cutengine.CutKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	kept := r.handlers[:0:0]
	for _, h := range r.handlers {
		drop := false
		for _, k := range h.Kinds() {
			if want[k] {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, h)
		}
	}
	r.handlers = kept
}

// Dispatch finds the highest-priority handler accepting (kind, feature,
// element), validates the feature, builds its geometry, and records
// dispatch statistics. Returns an error if no handler claims the kind or
// validation/geometry-building fails.
func (r *Registry) Dispatch(kind cutengine.CutKind, f scene.Feature, el scene.Element) (Solid, cutengine.Metadata, error) {
	r.mu.Lock()
	r.stats[kind]++
	handlers := append([]Handler(nil), r.handlers...)
	r.mu.Unlock()

	for _, h := range handlers {
		if !handlesKind(h, kind) {
			continue
		}
		if !h.Accepts(f, el) {
			continue
		}
		if err := h.Validate(f, el); err != nil {
			return Solid{}, cutengine.Metadata{}, fmt.Errorf("cut %s: %w", f.ID, err)
		}
		solid, err := h.BuildGeometry(f, el)
		if err != nil {
			return Solid{}, cutengine.Metadata{}, fmt.Errorf("cut %s: %w", f.ID, err)
		}
		meta := h.Describe(f, el, kind)
		return solid, meta, nil
	}
	return Solid{}, cutengine.Metadata{}, fmt.Errorf("no handler registered for cut kind %q", kind)
}

func handlesKind(h Handler, kind cutengine.CutKind) bool {
	for _, k := range h.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Stats returns a snapshot of per-kind dispatch counts.
func (r *Registry) Stats() map[cutengine.CutKind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[cutengine.CutKind]int, len(r.stats))
	for k, v := range r.stats {
		out[k] = v
	}
	return out
}

// Clone returns an independent registry with the same handler list and a
// fresh (zeroed) stats map.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Registry{stats: make(map[cutengine.CutKind]int)}
	clone.handlers = append(clone.handlers, r.handlers...)
	return clone
}

// --- shared geometry helpers -------------------------------------------

func effectiveDepth(f scene.Feature, el scene.Element) float64 {
	if f.Depth == cutengine.DepthThrough {
		return el.Dimensions.Width + el.Dimensions.Height + el.Dimensions.Length
	}
	return f.Depth
}

func boundsOf(pts []scene.Point2D) cutengine.BoundingBox {
	if len(pts) == 0 {
		return cutengine.BoundingBox{}
	}
	b := cutengine.BoundingBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

func pointsAsPairs(pts []scene.Point2D) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func baseMetadata(f scene.Feature, el scene.Element, kind cutengine.CutKind) cutengine.Metadata {
	angle := 0.0
	if f.Angle != nil {
		angle = *f.Angle
	}
	return cutengine.Metadata{
		ID:       f.ID,
		Kind:     kind,
		Category: cutengine.CategoryOf(kind),
		Face:     string(f.Face),
		Bounds:   boundsOf(f.Points),
		Points:   pointsAsPairs(f.Points),
		Depth:    f.Depth,
		Angle:    angle,
	}
}

func rectBase(x0, y0, x1, y1 float64) []scene.Point2D {
	return []scene.Point2D{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}
