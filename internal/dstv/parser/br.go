package parser

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// ParseBR parses a sequence of chamfer records: position, angle, depth,
// length, and an optional edge indicator (identifier token).
func ParseBR(tokens []token.Token) ([]Chamfer, []string) {
	var chamfers []Chamfer
	var warnings []string

	i := 0
	n := len(tokens)
	for i < n {
		if tokens[i].Kind == token.KindComment {
			i++
			continue
		}
		if tokens[i].Kind != token.KindNumber {
			warnings = append(warnings, "BR: expected numeric position, skipping: "+tokens[i].Value)
			i++
			continue
		}
		const maxFields = 5
		var vals []float64
		for len(vals) < maxFields && i < n && tokens[i].Kind == token.KindNumber {
			vals = append(vals, tokens[i].Number)
			i++
		}
		if len(vals) < 4 {
			warnings = append(warnings, "BR: incomplete chamfer record, skipping")
			break
		}
		c := Chamfer{X: vals[0], Y: vals[1], Angle: vals[2], Depth: vals[3], Length: vals[3]}
		if len(vals) >= 5 {
			c.Length = vals[4]
		}
		if i < n && tokens[i].Kind == token.KindIdentifier {
			c.Edge = tokens[i].Value
			i++
		}
		chamfers = append(chamfers, c)
	}

	return chamfers, warnings
}
