package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenco/langfront/diag"
	"github.com/arenco/langfront/token"
)

func kinds(tokens []token.Token) []token.Kind {
	result := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, t.Kind)
	}
	return result
}

func TestTokenize_SimpleDeclaration(t *testing.T) {
	tokens, diags := Tokenize(`let x = 10;`, false)
	assert.Empty(t, diags)
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF,
	}, kinds(tokens))
	assert.Equal(t, "x", tokens[1].Lexeme)
	assert.Equal(t, float64(10), tokens[3].Literal.Number)
}

func TestTokenize_TwoCharOperators(t *testing.T) {
	tokens, diags := Tokenize(`a == b != c <= d >= e && f || g`, false)
	assert.Empty(t, diags)
	assert.Equal(t, []token.Kind{
		token.IDENT, token.EQ, token.IDENT, token.NEQ, token.IDENT, token.LTE, token.IDENT,
		token.GTE, token.IDENT, token.AND, token.IDENT, token.OR, token.IDENT, token.EOF,
	}, kinds(tokens))
}

func TestTokenize_SingleCharWhenNoMatch(t *testing.T) {
	tokens, diags := Tokenize(`x = 1; y < 2;`, false)
	assert.Empty(t, diags)
	assert.Equal(t, token.ASSIGN, tokens[1].Kind)
	assert.Equal(t, token.LT, tokens[5].Kind)
}

func TestTokenize_StringLiteral(t *testing.T) {
	tokens, diags := Tokenize(`"hello \"world\""`, false)
	assert.Empty(t, diags)
	assert.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, `hello "world"`, tokens[0].Literal.Text)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, diags := Tokenize(`"abc`, false)
	assert.Len(t, diags, 1)
	assert.Equal(t, diag.UnterminatedString, diags[0].Kind)
}

func TestTokenize_LineComment(t *testing.T) {
	tokens, diags := Tokenize("let x = 1; // trailing comment\nlet y = 2;", false)
	assert.Empty(t, diags)
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON,
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF,
	}, kinds(tokens))
}

func TestTokenize_UnknownCharPerCharacter(t *testing.T) {
	_, diags := Tokenize(`let x = 1 @ 2;`, false)
	assert.Len(t, diags, 1)
	assert.Equal(t, diag.UnknownChar, diags[0].Kind)
}

func TestTokenize_UnknownCharCoalesced(t *testing.T) {
	_, diags := Tokenize(`let x = @@@ 1;`, true)
	assert.Len(t, diags, 1)
	assert.Equal(t, diag.UnknownChar, diags[0].Kind)
}

func TestTokenize_EmptyInput(t *testing.T) {
	tokens, diags := Tokenize(``, false)
	assert.Empty(t, diags)
	assert.Len(t, tokens, 1)
	assert.True(t, tokens[0].IsEOF())
}

func TestTokenize_CommentOnlyInput(t *testing.T) {
	tokens, diags := Tokenize("// just a comment", false)
	assert.Empty(t, diags)
	assert.Len(t, tokens, 1)
	assert.True(t, tokens[0].IsEOF())
}

func TestTokenize_KeywordsAndIdentifiers(t *testing.T) {
	tokens, diags := Tokenize(`function fn(a) { return a; }`, false)
	assert.Empty(t, diags)
	assert.Equal(t, token.FUNCTION, tokens[0].Kind)
	assert.Equal(t, token.IDENT, tokens[1].Kind)
	assert.Equal(t, "fn", tokens[1].Lexeme)
	assert.Equal(t, token.RETURN, tokens[6].Kind)
}

func TestTokenize_SpansAreNonOverlappingInSourceOrder(t *testing.T) {
	tokens, _ := Tokenize(`let xy = 1;`, false)
	for i := 1; i < len(tokens); i++ {
		assert.LessOrEqual(t, tokens[i-1].Span.End.Offset, tokens[i].Span.Start.Offset)
	}
}
