package parser

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// ParseAK splits an AK/IK block body into face-bounded point lists: a face
// indicator starts a new contour, and every following coordinate pair
// belongs to it until the next face indicator (or end of block). A
// contour needs >= 3 points to be emitted; shorter fragments are dropped
// with a warning.
//
// In AK, the declared face is kept as-is even under the v...u convention
// (§9): that convention only reinterprets BO hole faces.
func ParseAK(tokens []token.Token, defaultFace token.Face) ([]Contour, []string) {
	var contours []Contour
	var warnings []string

	current := Contour{Face: defaultFace}
	haveFace := defaultFace != token.FaceUnknown

	flush := func() {
		if len(current.Points) >= 3 {
			contours = append(contours, current)
		} else if len(current.Points) > 0 {
			warnings = append(warnings, "AK: dropped contour fragment with fewer than 3 points")
		}
	}

	i := 0
	n := len(tokens)
	for i < n {
		t := tokens[i]
		switch t.Kind {
		case token.KindComment:
			i++
		case token.KindFace:
			if haveFace && len(current.Points) > 0 {
				flush()
				current = Contour{Face: t.Face}
			} else {
				current.Face = t.Face
			}
			haveFace = true
			i++
		case token.KindNumber:
			x := t.Number
			if i+1 >= n || tokens[i+1].Kind != token.KindNumber {
				warnings = append(warnings, "AK: dangling X coordinate with no matching Y, skipping")
				i++
				continue
			}
			y := tokens[i+1].Number
			current.Points = append(current.Points, Point2D{X: x, Y: y})
			i += 2
		default:
			warnings = append(warnings, "AK: unexpected token, skipping: "+t.Value)
			i++
		}
	}
	flush()

	return contours, warnings
}

// ParseIK parses the same shape as AK, but every resulting contour is
// flagged Internal regardless of its geometry.
func ParseIK(tokens []token.Token, defaultFace token.Face) ([]Contour, []string) {
	contours, warnings := ParseAK(tokens, defaultFace)
	for i := range contours {
		contours[i].Internal = true
	}
	return contours, warnings
}
