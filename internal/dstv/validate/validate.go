// Package validate implements structural, per-profile, and cross-feature
// validation of a parsed DSTV profile list at three severity levels (§4.D).
// The validator never panics and never aborts on its own: it always
// returns a report, and callers decide whether to treat errors as fatal.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

// ValidateRawText runs the raw-content checks that need the original text
// rather than the parsed token/profile structures (§4.D "Raw content"):
// long lines warn, and at least one ST block must be present.
func ValidateRawText(text string) Result {
	result := Result{IsValid: true}
	hasST := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) > 256 {
			result.addWarn("line exceeds 256 characters")
		}
		if strings.HasPrefix(strings.TrimSpace(line), "ST") {
			hasST = true
		}
	}
	if !hasST {
		result.addErr("no ST block found in input")
	}
	return result
}

// Severity selects how strict validation is.
type Severity int

const (
	Basic    Severity = iota // structural only
	Standard                 // + per-feature sanity
	Strict                   // + cross-feature interactions, tighter bounds
)

// Config holds the tunable thresholds referenced throughout §4.D.
type Config struct {
	MaxProfileLength float64
	MaxHoleDiameter  float64
	MinHoleDistance  float64
	MaxTotalWeight   float64 // kg; spec expresses this as 100t
}

// Default returns the thresholds named in §4.D.
func Default() Config {
	return Config{
		MaxProfileLength: 20000,
		MaxHoleDiameter:  500,
		MinHoleDistance:  0, // extra margin beyond (d1+d2)/2 before only-warn applies
		MaxTotalWeight:   100000,
	}
}

var steelGradeWhitelist = map[string]bool{
	"S235": true, "S275": true, "S355": true, "S420": true, "S460": true,
	"A36": true, "A572": true, "A992": true,
	"GRADE 43": true, "GRADE 50": true, "GRADE 55": true,
}

func gradeRecognized(grade string) bool {
	if grade == "" {
		return true
	}
	if steelGradeWhitelist[grade] {
		return true
	}
	// suffixed variants, e.g. S355J2, S275JR
	for base := range steelGradeWhitelist {
		if len(grade) >= len(base) && grade[:len(base)] == base {
			return true
		}
	}
	return false
}

// Result is the structured validation report: never an error to callers.
type Result struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

func (r *Result) addErr(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.IsValid = false
}

func (r *Result) addWarn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate runs all checks appropriate to sev against a parsed profile
// list. Per-profile checks run first, in order, then multi-profile checks.
func Validate(profiles []parser.RawProfile, sev Severity, cfg Config) Result {
	result := Result{IsValid: true}

	if len(profiles) == 0 {
		result.addErr("no ST...EN profile record found")
		return result
	}

	for _, p := range profiles {
		validateProfile(&result, p, sev, cfg)
	}

	if sev == Strict {
		validateMultiProfile(&result, profiles, cfg)
	}

	return result
}

// ValidateMultiProfile runs only the cross-profile Strict-level checks
// (duplicate part ids, total job weight) against an already-assembled
// profile list, independent of each profile's own structural validation.
// Callers that validate profiles one at a time (e.g. a streaming CLI) use
// this to still get the cross-profile checks once the full file is read.
func ValidateMultiProfile(profiles []parser.RawProfile, cfg Config) Result {
	result := Result{IsValid: true}
	validateMultiProfile(&result, profiles, cfg)
	return result
}

func validateProfile(r *Result, p parser.RawProfile, sev Severity, cfg Config) {
	label := profileLabel(p)

	if p.Header.Designation == "" {
		r.addErr("%s: missing designation", label)
	}
	if p.Header.Length <= 0 {
		r.addErr("%s: length must be > 0", label)
	} else if p.Header.Length > cfg.MaxProfileLength {
		r.addWarn("%s: length %.1fmm exceeds maxProfileLength %.1fmm", label, p.Header.Length, cfg.MaxProfileLength)
	}
	if p.Header.Width < 0 {
		r.addErr("%s: width must be positive when present", label)
	}
	if p.Header.Height < 0 {
		r.addErr("%s: height must be positive when present", label)
	}
	if !gradeRecognized(p.Header.SteelGrade) {
		r.addWarn("%s: steel grade %q not in whitelist", label, p.Header.SteelGrade)
	}

	kind := parser.ResolveKind(p.Header.Code, p.Header.Designation)
	admissible := kind.AdmissibleFaces()

	if sev >= Standard {
		validateHoles(r, label, p.Holes, admissible, sev, p.Header, cfg)
		validateCuts(r, label, p.Contours, admissible, sev, p.Header)
		validateCuts(r, label, p.Internal, admissible, sev, p.Header)
		validateMarkings(r, label, p.Markings)
	}

	if sev == Strict {
		validateCrossFeature(r, label, p)
	}
}

func profileLabel(p parser.RawProfile) string {
	if p.Header.PartID != "" {
		return p.Header.PartID
	}
	return p.Header.Designation
}

func validateHoles(r *Result, label string, holes []parser.Hole, admissible map[token.Face]bool, sev Severity, h parser.ProfileHeader, cfg Config) {
	for idx, hole := range holes {
		if hole.Diameter <= 0 {
			r.addErr("%s: hole %d diameter must be > 0", label, idx)
			continue
		}
		if hole.Diameter > cfg.MaxHoleDiameter {
			r.addWarn("%s: hole %d diameter %.1fmm exceeds maxHoleDiameter %.1fmm", label, idx, hole.Diameter, cfg.MaxHoleDiameter)
		}
		if sev == Strict && !admissible[hole.Face] {
			r.addErr("%s: hole %d face %q not admissible for this profile kind", label, idx, hole.Face)
		}
		if sev == Strict {
			if hole.X < -1e-6 || hole.X > h.Length+1e-6 {
				r.addWarn("%s: hole %d X position out of face bounds", label, idx)
			}
		}
		if hole.Kind == token.HoleSlotted && hole.Slot != nil {
			if hole.Slot.Length <= hole.Diameter {
				r.addWarn("%s: hole %d slotted length %.1f does not exceed diameter %.1f", label, idx, hole.Slot.Length, hole.Diameter)
			}
		}
	}

	for i := 0; i < len(holes); i++ {
		for j := i + 1; j < len(holes); j++ {
			a, b := holes[i], holes[j]
			if a.Face != b.Face {
				continue
			}
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			minRequired := (a.Diameter + b.Diameter) / 2
			if dist < minRequired {
				r.addErr("%s: holes %d and %d are overlapping (distance %.2f < %.2f)", label, i, j, dist, minRequired)
			} else if dist < minRequired+cfg.MinHoleDistance {
				r.addWarn("%s: holes %d and %d are closer than the recommended clearance", label, i, j)
			}
		}
	}
}

func validateCuts(r *Result, label string, contours []parser.Contour, admissible map[token.Face]bool, sev Severity, h parser.ProfileHeader) {
	for idx, c := range contours {
		if len(c.Points) < 3 {
			r.addErr("%s: contour %d has fewer than 3 points", label, idx)
			continue
		}
		if len(c.Points) > 3 && !c.Closed() {
			r.addWarn("%s: contour %d is not closed", label, idx)
		}
		for _, pt := range c.Points {
			if pt.X < -100 || pt.X > h.Length+100 {
				r.addWarn("%s: contour %d has a point out of face bounds", label, idx)
				break
			}
		}
		if sev == Strict && selfIntersects(c.Points) {
			r.addErr("%s: contour %d self-intersects", label, idx)
		}
	}
}

// selfIntersects runs the non-adjacent-segment pairwise CCW test.
func selfIntersects(pts []parser.Point2D) bool {
	n := len(pts)
	if n < 4 {
		return false
	}
	seg := func(i int) (parser.Point2D, parser.Point2D) { return pts[i], pts[(i+1)%n] }
	for i := 0; i < n; i++ {
		a1, a2 := seg(i)
		for j := i + 1; j < n; j++ {
			if j == i || (j+1)%n == i || i == (j+1)%n {
				continue
			}
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := seg(j)
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func ccw(a, b, c parser.Point2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func segmentsIntersect(a1, a2, b1, b2 parser.Point2D) bool {
	d1 := ccw(b1, b2, a1)
	d2 := ccw(b1, b2, a2)
	d3 := ccw(a1, a2, b1)
	d4 := ccw(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func validateMarkings(r *Result, label string, markings []parser.Marking) {
	for idx, m := range markings {
		if m.Text == "" {
			r.addErr("%s: marking %d has empty text", label, idx)
		} else if len(m.Text) > 50 {
			r.addWarn("%s: marking %d text exceeds 50 characters", label, idx)
		}
		if m.Size <= 0 {
			r.addErr("%s: marking %d size must be > 0", label, idx)
		} else if m.Size > 100 {
			r.addWarn("%s: marking %d size exceeds 100mm", label, idx)
		}
	}
}

func validateCrossFeature(r *Result, label string, p parser.RawProfile) {
	for _, cut := range p.Contours {
		if len(cut.Points) < 3 {
			continue
		}
		for hIdx, h := range p.Holes {
			if h.Face != cut.Face {
				continue
			}
			if pointInPolygon(parser.Point2D{X: h.X, Y: h.Y}, cut.Points) {
				r.addWarn("%s: hole %d lies inside a cut polygon on the same face", label, hIdx)
			}
		}
	}

	for i := 0; i < len(p.Contours); i++ {
		for j := i + 1; j < len(p.Contours); j++ {
			a, b := p.Contours[i], p.Contours[j]
			if a.Face != b.Face {
				continue
			}
			if boundsOverlap(a.Points, b.Points) {
				r.addWarn("%s: cuts %d and %d overlap on the same face", label, i, j)
			}
		}
	}
}

// pointInPolygon uses the even-odd rule.
func pointInPolygon(p parser.Point2D, poly []parser.Point2D) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

func boundsOverlap(a, b []parser.Point2D) bool {
	aMinX, aMinY, aMaxX, aMaxY := bounds(a)
	bMinX, bMinY, bMaxX, bMaxY := bounds(b)
	return aMinX < bMaxX && bMinX < aMaxX && aMinY < bMaxY && bMinY < aMaxY
}

func bounds(pts []parser.Point2D) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return
	}
	minX, minY, maxX, maxY = pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

func validateMultiProfile(r *Result, profiles []parser.RawProfile, cfg Config) {
	seen := map[string]bool{}
	var totalWeight float64
	for _, p := range profiles {
		id := p.Header.PartID
		if id != "" {
			if seen[id] {
				r.addErr("duplicate profile id: %s", id)
			}
			seen[id] = true
		}
		totalWeight += p.Header.Weight * float64(max(p.Header.Quantity, 1))
	}
	if totalWeight > cfg.MaxTotalWeight {
		r.addWarn("total weight %.1fkg exceeds 100t", totalWeight)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
