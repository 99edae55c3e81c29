package convert

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// FaceMapping selects which of the two conflicting face-letter conventions
// found in the wild (§9) applies to a given input. Implementations must
// choose one explicitly — never guess. The converter warns about contour
// evidence that contradicts the chosen mapping; validation does not check
// it at any severity.
type FaceMapping int

const (
	// FaceMappingDominant is v->web, o->top-flange, u->bottom-flange,
	// h->front — the convention assumed everywhere else in this spec
	// (decision D1, SPEC_FULL §3.9).
	FaceMappingDominant FaceMapping = iota
	// FaceMappingAlternate swaps v and o relative to the dominant mapping,
	// inherited from an older subsystem per §9.
	FaceMappingAlternate
)

// Apply reinterprets a lexer-reported face under the selected convention.
// The lexer always reports faces under FaceMappingDominant, so Apply is a
// no-op unless mapping is FaceMappingAlternate, in which case v and o swap.
func (m FaceMapping) Apply(f token.Face) token.Face {
	if m != FaceMappingAlternate {
		return f
	}
	switch f {
	case token.FaceWeb:
		return token.FaceTopFlange
	case token.FaceTopFlange:
		return token.FaceWeb
	default:
		return f
	}
}
