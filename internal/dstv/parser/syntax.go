package parser

import (
	"errors"

	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

// ErrNoProfiles is ParseResult.Err's value when a file contains no usable
// ST block at all, per §7 "Missing profile designation or ST absent ->
// hard error".
var ErrNoProfiles = errors.New("no usable ST block found")

// ParseResult is the output of the syntax orchestrator: the assembled
// profile list plus any accumulated warnings and a hard-error flag for
// strict-mode callers (no usable ST block at all).
type ParseResult struct {
	Profiles []RawProfile
	Warnings []string
	Err      error
}

// Parse drives the per-profile state machine described in §4.C: it groups
// the full token stream into per-block bodies and feeds each to its block
// parser, carrying profile context (kind, dimensions) into BO so it can
// disambiguate face semantics. AK and IK receive no profile context, only
// an unknown default face.
func Parse(tokens []token.Token) ParseResult {
	var result ParseResult

	var current *RawProfile
	var currentCtx ProfileContext

	finalize := func() {
		if current != nil {
			result.Profiles = append(result.Profiles, *current)
			current = nil
		}
	}

	i := 0
	n := len(tokens)
	for i < n {
		t := tokens[i]
		if t.Kind == token.KindComment {
			i++
			continue
		}
		if t.Kind != token.KindBlockStart && t.Kind != token.KindBlockEnd {
			// Stray token outside any block: warn and skip.
			result.Warnings = append(result.Warnings, "orchestrator: stray token outside block, skipping: "+t.Value)
			i++
			continue
		}

		block, known := token.IsBlockKeyword(t.Value)
		if !known {
			result.Warnings = append(result.Warnings, "orchestrator: unknown block keyword, skipping: "+t.Value)
			i++
			continue
		}

		if block == token.BlockEN {
			i++
			continue
		}

		// Collect the body: everything up to the matching EN, or the next
		// block-start if EN is missing (implicit close tolerance).
		bodyStart := i + 1
		j := bodyStart
		for j < n {
			if tokens[j].Kind == token.KindBlockEnd && tokens[j].Value == "EN" {
				break
			}
			if tokens[j].Kind == token.KindBlockStart {
				break
			}
			j++
		}
		body := tokens[bodyStart:j]
		consumedEN := j < n && tokens[j].Kind == token.KindBlockEnd && tokens[j].Value == "EN"

		switch block {
		case token.BlockST:
			finalize()
			header, warnings := ParseST(body)
			result.Warnings = append(result.Warnings, warnings...)
			current = &RawProfile{Header: header}
			currentCtx = ProfileContext{
				Kind:          ResolveKind(header.Code, header.Designation),
				Length:        header.Length,
				Width:         header.Width,
				Height:        header.Height,
				WebHoleSuffix: true,
			}

		case token.BlockBO:
			if current == nil {
				result.Warnings = append(result.Warnings, "orchestrator: BO block outside any profile, skipping")
				break
			}
			holes, warnings := ParseBO(body, currentCtx)
			current.Holes = append(current.Holes, holes...)
			result.Warnings = append(result.Warnings, warnings...)

		case token.BlockAK:
			if current == nil {
				result.Warnings = append(result.Warnings, "orchestrator: AK block outside any profile, skipping")
				break
			}
			contours, warnings := ParseAK(body, token.FaceUnknown)
			current.Contours = append(current.Contours, contours...)
			result.Warnings = append(result.Warnings, warnings...)

		case token.BlockIK:
			if current == nil {
				result.Warnings = append(result.Warnings, "orchestrator: IK block outside any profile, skipping")
				break
			}
			contours, warnings := ParseIK(body, token.FaceUnknown)
			current.Internal = append(current.Internal, contours...)
			result.Warnings = append(result.Warnings, warnings...)

		case token.BlockSI:
			if current == nil {
				result.Warnings = append(result.Warnings, "orchestrator: SI block outside any profile, skipping")
				break
			}
			markings, warnings := ParseSI(body)
			current.Markings = append(current.Markings, markings...)
			result.Warnings = append(result.Warnings, warnings...)

		case token.BlockSC:
			if current == nil {
				result.Warnings = append(result.Warnings, "orchestrator: SC block outside any profile, skipping")
				break
			}
			cuts, warnings := ParseSC(body, token.FaceWeb)
			current.Cuts = append(current.Cuts, cuts...)
			result.Warnings = append(result.Warnings, warnings...)

		case token.BlockBR:
			if current == nil {
				result.Warnings = append(result.Warnings, "orchestrator: BR block outside any profile, skipping")
				break
			}
			chamfers, warnings := ParseBR(body)
			current.Chamfers = append(current.Chamfers, chamfers...)
			result.Warnings = append(result.Warnings, warnings...)

		case token.BlockKO, token.BlockPU:
			// Recognized but not modeled further: tolerated, not an error.

		default:
			result.Warnings = append(result.Warnings, "orchestrator: unhandled block keyword: "+string(block))
		}

		if consumedEN {
			i = j + 1
		} else {
			i = j
		}
	}

	finalize()
	if len(result.Profiles) == 0 {
		result.Err = ErrNoProfiles
	}
	return result
}
