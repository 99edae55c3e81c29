package parser

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// ProfileContext carries the enclosing profile's kind and dimensions into
// the BO parser so it can disambiguate face semantics. ParseAK does not
// take it.
type ProfileContext struct {
	Kind   ProfileKind
	Length float64
	Width  float64
	Height float64

	// WebHoleSuffix, when true, reinterprets a number's glued 'u' face
	// suffix as "web, visible-side coordinates" per the v...u convention
	// (§9). It is always true inside a BO block; AK preserves the
	// declared face instead (§9 "v...u hole convention").
	WebHoleSuffix bool
}

// ParseBO consumes a BO block body, repeatedly reading
// (x, y, d, [face], [hole-type, extras]) tuples. Stray tokens and numeric
// garbage are skipped with a warning; extra trailing fields are ignored.
func ParseBO(tokens []token.Token, ctx ProfileContext) ([]Hole, []string) {
	var holes []Hole
	var warnings []string

	i := 0
	n := len(tokens)
	for i < n {
		t := tokens[i]
		if t.Kind == token.KindComment {
			i++
			continue
		}
		if t.Kind != token.KindNumber {
			warnings = append(warnings, "BO: unexpected token, skipping: "+t.Value)
			i++
			continue
		}
		// x
		x := t.Number
		i++
		if i >= n || tokens[i].Kind != token.KindNumber {
			warnings = append(warnings, "BO: incomplete hole record (missing y), skipping rest of line")
			continue
		}
		y := tokens[i].Number
		i++
		if i >= n || tokens[i].Kind != token.KindNumber {
			warnings = append(warnings, "BO: incomplete hole record (missing diameter), skipping rest of line")
			continue
		}
		d := tokens[i].Number
		i++

		h := Hole{X: x, Y: y, Diameter: d, Face: token.FaceFront, Kind: token.HoleRound, Depth: HoleDepthThrough}

		// optional glued-face annotation on the x token (v...u convention)
		if t.Face != token.FaceUnknown {
			h.Face = t.Face
			if t.Value != "" && t.Value[len(t.Value)-1] == 'u' && ctx.WebHoleSuffix {
				h.Face = token.FaceWeb
			}
		}

		// optional bare face indicator token
		if i < n && tokens[i].Kind == token.KindFace {
			h.Face = tokens[i].Face
			i++
		}

		// optional hole-type modifier. The raw letter (not the lexer's
		// provisional HoleType guess) decides square vs. rectangular vs.
		// countersunk, since 's' is ambiguous until we see what follows it.
		if i < n && tokens[i].Kind == token.KindHoleType {
			letter := tokens[i].Value
			i++
			switch letter {
			case "l":
				h.Kind = token.HoleSlotted
				slot := &SlotExtras{}
				if i < n && tokens[i].Kind == token.KindNumber {
					slot.Length = tokens[i].Number
					i++
				}
				if i < n && tokens[i].Kind == token.KindNumber {
					slot.Angle = tokens[i].Number
					i++
				}
				h.Slot = slot
			case "s":
				if i < n && tokens[i].Kind == token.KindNumber {
					h.Kind = token.HoleSquare
					h.Rect = &RectExtras{Width: tokens[i].Number, Height: tokens[i].Number}
					i++
				} else {
					h.Kind = token.HoleCountersunk
				}
			case "r":
				h.Kind = token.HoleRectangular
				rect := &RectExtras{}
				if i < n && tokens[i].Kind == token.KindNumber {
					rect.Width = tokens[i].Number
					i++
				}
				if i < n && tokens[i].Kind == token.KindNumber {
					rect.Height = tokens[i].Number
					i++
				}
				h.Rect = rect
			case "c":
				h.Kind = token.HoleCounterbore
			case "t":
				h.Kind = token.HoleTapped
			}
		}

		holes = append(holes, h)
	}

	return holes, warnings
}
