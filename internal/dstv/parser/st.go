package parser

import (
	"strconv"
	"strings"

	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

// designationPrefixes maps a designation prefix to the profile kind it
// implies, checked in the order declared (longest/most specific first).
var designationPrefixes = []struct {
	prefix string
	kind   ProfileKind
}{
	{"IPE", KindI}, {"HE", KindI}, {"UB", KindI}, {"UC", KindI}, {"IPN", KindI},
	{"UPN", KindU}, {"UPE", KindU}, {"UAP", KindU}, {"MC", KindU},
	{"RHS", KindRectTube}, {"SHS", KindRectTube},
	{"CHS", KindRoundTube}, {"PIPE", KindRoundTube}, {"C", KindU},
	{"PLT", KindPlate}, {"PLATE", KindPlate}, {"PL", KindPlate},
	{"FLAT", KindFlatBar}, {"FB", KindFlatBar}, {"FL", KindFlatBar},
	{"RND", KindRoundBar}, {"RD", KindRoundBar},
	{"Z", KindZ},
	{"T", KindT},
	{"L", KindL},
}

// explicitCodes maps a single-letter ST code field to a profile kind.
var explicitCodes = map[string]ProfileKind{
	"M": KindRectTube,
	"R": KindRoundTube,
	"I": KindI,
	"U": KindU,
	"L": KindL,
	"T": KindT,
}

// ResolveKind applies the two-step profile-kind rule: explicit letter code
// first, otherwise the designation prefix table, per §4.B ST parser.
func ResolveKind(code, designation string) ProfileKind {
	if code != "" {
		if k, ok := explicitCodes[strings.ToUpper(code)]; ok {
			return k
		}
	}
	up := strings.ToUpper(strings.TrimSpace(designation))
	for _, p := range designationPrefixes {
		if strings.HasPrefix(up, p.prefix) {
			return p.kind
		}
	}
	if up == "" {
		return KindUnknown
	}
	return KindCustom
}

// stFieldOrder is the 16-field positional DSTV ST layout.
var stFieldOrder = []string{
	"orderNumber", "partID", "steelGrade", "quantity", "designation", "code",
	"length", "width", "height", "radius", "webThickness", "flangeThickness",
	"weight", "paintingSurface", "itemNumber", "reserved",
}

// ParseST reconstructs the ST body as ordered lines (grouping tokens by
// source line, in source order) and reads them positionally. Missing tail
// fields default to their zero value; numeric garbage is skipped with a
// warning rather than aborting.
func ParseST(tokens []token.Token) (ProfileHeader, []string) {
	lines := groupByLine(tokens)
	var values []string
	for _, line := range lines {
		for _, t := range line {
			if t.Kind == token.KindComment {
				continue
			}
			values = append(values, t.Value)
		}
	}

	var warnings []string
	get := func(i int) string {
		if i < len(values) {
			return strings.TrimSpace(values[i])
		}
		return ""
	}
	getFloat := func(i int) float64 {
		s := get(i)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			warnings = append(warnings, "ST: non-numeric value in field "+stFieldOrder[i]+": "+s)
			return 0
		}
		return v
	}

	h := ProfileHeader{
		OrderNumber:     get(0),
		PartID:          get(1),
		SteelGrade:      get(2),
		Designation:     get(4),
		Code:            get(5),
		Length:          getFloat(6),
		Width:           getFloat(7),
		Height:          getFloat(8),
		Radius:          getFloat(9),
		WebThickness:    getFloat(10),
		FlangeThickness: getFloat(11),
		Weight:          getFloat(12),
		PaintingSurface: getFloat(13),
		ItemNumber:      get(14),
		Reserved:        get(15),
	}
	if qty, err := strconv.Atoi(get(3)); err == nil {
		h.Quantity = qty
	} else if get(3) != "" {
		warnings = append(warnings, "ST: non-integer quantity: "+get(3))
	}

	return h, warnings
}

// groupByLine buckets tokens by their source line, preserving the relative
// order of lines as they appeared in the token stream.
func groupByLine(tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	lastLine := -1
	for _, t := range tokens {
		if t.Line != lastLine {
			lines = append(lines, nil)
			lastLine = t.Line
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], t)
	}
	return lines
}
