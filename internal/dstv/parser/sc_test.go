package parser

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/dstvcut/internal/dstv/lexer"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

func lexSC(body string) []token.Token {
	toks := lexer.Lex("SC\n" + body + "\nEN")
	return toks[1 : len(toks)-1]
}

func TestParseSCBuildsSweptRectangle(t *testing.T) {
	toks := lexSC("0 0 0 0 50")
	cuts, warnings := ParseSC(toks, token.FaceWeb)
	require.Empty(t, warnings)
	require.Len(t, cuts, 1)
	c := cuts[0]
	assert.Equal(t, token.FaceWeb, c.Face)
	assert.Len(t, c.Contour, 4)
	assert.True(t, c.Through)
	assert.Equal(t, CutStraight, c.Subtype)
}

func TestParseSCTaggedObliqueForNonRightAngle(t *testing.T) {
	toks := lexSC("0 0 45 10 50")
	cuts, _ := ParseSC(toks, token.FaceWeb)
	require.Len(t, cuts, 1)
	assert.Equal(t, CutOblique, cuts[0].Subtype)
	assert.False(t, cuts[0].Through)
}

func TestParseSCStraightForCardinalAngles(t *testing.T) {
	for _, angle := range []int{0, 90, 180, 270} {
		toks := lexSC("0 0 " + strconv.Itoa(angle) + " 0 50")
		cuts, _ := ParseSC(toks, token.FaceWeb)
		require.Len(t, cuts, 1)
		assert.Equal(t, CutStraight, cuts[0].Subtype, "angle %v", angle)
	}
}

func TestParseSCTrailingIncompleteTupleWarns(t *testing.T) {
	toks := lexSC("0 0 0 0 50 10 20")
	cuts, warnings := ParseSC(toks, token.FaceWeb)
	require.Len(t, cuts, 1)
	assert.NotEmpty(t, warnings)
}

func TestParseSCMultipleRecords(t *testing.T) {
	toks := lexSC("0 0 0 0 50 100 0 0 0 50")
	cuts, warnings := ParseSC(toks, token.FaceWeb)
	require.Empty(t, warnings)
	require.Len(t, cuts, 2)
}
