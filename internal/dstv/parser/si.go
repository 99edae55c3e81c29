package parser

import "github.com/piwi3910/dstvcut/internal/dstv/token"

// ParseSI consumes a sequence of SI records: text followed by up to 7
// numerics (x, y, size, angle, depth, font-style code, alignment code).
func ParseSI(tokens []token.Token) ([]Marking, []string) {
	var markings []Marking
	var warnings []string

	i := 0
	n := len(tokens)
	for i < n {
		t := tokens[i]
		if t.Kind == token.KindComment {
			i++
			continue
		}
		if t.Kind != token.KindQuotedText && t.Kind != token.KindIdentifier {
			warnings = append(warnings, "SI: expected marking text, skipping token: "+t.Value)
			i++
			continue
		}
		m := Marking{Text: t.Value, Face: token.FaceFront}
		m.Size = DefaultMarkingSize(m.Text)
		i++

		nums := []float64{}
		for len(nums) < 7 && i < n && tokens[i].Kind == token.KindNumber {
			nums = append(nums, tokens[i].Number)
			i++
		}
		if i < n && tokens[i].Kind == token.KindFace {
			m.Face = tokens[i].Face
			i++
		}

		if len(nums) > 0 {
			m.X = nums[0]
		}
		if len(nums) > 1 {
			m.Y = nums[1]
		}
		if len(nums) > 2 {
			m.Size = nums[2]
		}
		if len(nums) > 3 {
			m.Angle = nums[3]
		}
		if len(nums) > 4 {
			m.Depth = nums[4]
		}
		if len(nums) > 5 {
			m.FontStyle = int(nums[5])
		}
		if len(nums) > 6 {
			m.Alignment = int(nums[6])
		}

		markings = append(markings, m)
	}

	return markings, warnings
}
