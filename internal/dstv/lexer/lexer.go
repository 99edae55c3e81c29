// Package lexer tokenizes raw DSTV/NC text into a flat token sequence.
//
// The lexer is a pure function of its input: Lex(s) == Lex(s) for any s,
// and re-invoking it is how a caller "restarts" tokenization — there is no
// hidden process state. It never fails; fields holding invalid UTF-8
// become KindUnknown tokens rather than aborting, per the DSTV dialect's
// tolerance for stray or malformed lines.
package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

var (
	numberRe     = regexp.MustCompile(`^[-+]?\d+(\.\d+)?([eE][-+]?\d+)?`)
	faceSuffixRe = regexp.MustCompile(`^([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)([vuo])$`)
)

// holeTypeLetters are the BO modifier letters that introduce a hole-type
// token when they follow a numeric field inside a BO block.
var holeTypeLetters = map[string]token.HoleType{
	"l": token.HoleSlotted,
	"s": token.HoleCountersunk, // provisional: the BO parser reads "s N" (edge) as square, "s" alone as countersunk
	"r": token.HoleRectangular,
	"c": token.HoleCounterbore,
	"t": token.HoleTapped,
}

// faceLetters maps a bare face indicator letter to its Face under the
// dominant convention (v -> web, o -> top-flange, u -> bottom-flange).
// The alternate convention (v <-> o swapped) is applied downstream by the
// converter, not here — the lexer always reports the dominant mapping so
// there is exactly one source of truth for "what letter was seen".
var faceLetters = map[string]token.Face{
	"v": token.FaceWeb,
	"o": token.FaceTopFlange,
	"u": token.FaceBottomFlange,
	"h": token.FaceFront,
}

// Lex tokenizes raw DSTV/NC text. Encoding is assumed to already be valid
// UTF-8; newline style (\n or \r\n) is not significant.
func Lex(text string) []token.Token {
	var tokens []token.Token
	currentBlock := token.BlockNone

	lines := strings.Split(text, "\n")
	for lineNo, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "**") || strings.HasPrefix(trimmed, "*") {
			tokens = append(tokens, token.Token{
				Kind: token.KindComment, Value: trimmed, Line: lineNo + 1, Column: 1, Block: currentBlock,
			})
			continue
		}

		fields := splitFields(line)
		prevWasNumber := false
		for _, f := range fields {
			tok := lexField(f.text, lineNo+1, f.col, currentBlock, prevWasNumber)
			prevWasNumber = tok.Kind == token.KindNumber

			if tok.Kind == token.KindBlockStart || tok.Kind == token.KindBlockEnd {
				if tok.Value == "EN" {
					currentBlock = token.BlockNone
				} else if b, ok := token.IsBlockKeyword(tok.Value); ok {
					currentBlock = b
				}
				tok.Block = currentBlock
				if tok.Value == "EN" {
					// EN itself belongs to the block it closes, for readers
					// that want to know which block just ended; re-tag using
					// the pre-close value captured above would require extra
					// state, so EN carries BlockNone (the now-current state).
				}
			}

			tokens = append(tokens, tok)
		}
	}

	return tokens
}

type field struct {
	text string
	col  int
}

// splitFields splits a line on whitespace while recording each field's
// 1-based column, and special-cases quoted strings so embedded spaces do
// not split a text token in two.
func splitFields(line string) []field {
	var fields []field
	i := 0
	n := len(line)
	for i < n {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		start := i
		if line[i] == '"' {
			i++
			for i < n && line[i] != '"' {
				i++
			}
			if i < n {
				i++ // consume closing quote
			}
		} else {
			for i < n && line[i] != ' ' && line[i] != '\t' {
				i++
			}
		}
		fields = append(fields, field{text: line[start:i], col: start + 1})
	}
	return fields
}

func lexField(text string, line, col int, block token.Block, prevWasNumber bool) token.Token {
	base := token.Token{Value: text, Line: line, Column: col, Block: block}

	if strings.HasPrefix(text, "\"") && strings.HasSuffix(text, "\"") && len(text) >= 2 {
		base.Kind = token.KindQuotedText
		base.Value = strings.Trim(text, "\"")
		return base
	}

	upper := strings.ToUpper(text)
	if b, ok := token.IsBlockKeyword(upper); ok && col == 1 {
		base.Kind = token.KindBlockEnd
		if b != token.BlockEN {
			base.Kind = token.KindBlockStart
		}
		base.Value = upper
		return base
	}

	// A bare face letter either opens a payload line or trails a numeric
	// field (BO "x y d o", SI records).
	if len(text) == 1 && (col == 1 || prevWasNumber) {
		if face, ok := faceLetters[text]; ok {
			base.Kind = token.KindFace
			base.Face = face
			return base
		}
	}

	if m := faceSuffixRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			base.Kind = token.KindNumber
			base.Number = n
			base.Face = faceLetters[m[2]]
			return base
		}
	}

	if numberRe.MatchString(text) && numberRe.FindString(text) == text {
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			base.Kind = token.KindNumber
			base.Number = n
			return base
		}
	}

	if block == token.BlockBO && prevWasNumber {
		if ht, ok := holeTypeLetters[strings.ToLower(text)]; ok && len(text) == 1 {
			base.Kind = token.KindHoleType
			base.HoleType = ht
			return base
		}
	}

	if text == "" || !utf8.ValidString(text) {
		base.Kind = token.KindUnknown
		return base
	}

	base.Kind = token.KindIdentifier
	return base
}
