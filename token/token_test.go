package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent_KeywordsAndPlainIdentifiers(t *testing.T) {
	assert.Equal(t, LET, LookupIdent("let"))
	assert.Equal(t, FUNCTION, LookupIdent("function"))
	assert.Equal(t, TRUE, LookupIdent("true"))
	assert.Equal(t, IDENT, LookupIdent("notAKeyword"))
}

func TestSpan_Cover(t *testing.T) {
	a := Span{Start: Position{Offset: 2}, End: Position{Offset: 5}}
	b := Span{Start: Position{Offset: 4}, End: Position{Offset: 9}}
	covered := a.Cover(b)
	assert.Equal(t, 2, covered.Start.Offset)
	assert.Equal(t, 9, covered.End.Offset)
}

func TestToken_IsEOF(t *testing.T) {
	assert.True(t, Token{Kind: EOF}.IsEOF())
	assert.False(t, Token{Kind: IDENT}.IsEOF())
}

func TestKind_StringMatchesLexeme(t *testing.T) {
	assert.Equal(t, "==", EQ.String())
	assert.Equal(t, "let", LET.String())
}
