package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenco/langfront/token"
)

func span(a, b int) token.Span {
	return token.Span{Start: token.Position{Offset: a}, End: token.Position{Offset: b}}
}

func TestIsLvalue(t *testing.T) {
	assert.True(t, IsLvalue(NewIdentifier(span(0, 1), "x")))
	assert.True(t, IsLvalue(NewIndex(span(0, 1), NewIdentifier(span(0, 1), "x"), NewNumberLit(span(0, 1), 0))))
	assert.True(t, IsLvalue(NewMember(span(0, 1), NewIdentifier(span(0, 1), "x"), "y")))
	assert.False(t, IsLvalue(NewNumberLit(span(0, 1), 1)))
	assert.False(t, IsLvalue(NewCall(span(0, 1), NewIdentifier(span(0, 1), "f"), nil)))
}

func TestProgramSpanCoversStatements(t *testing.T) {
	decl := NewVarDecl(span(0, 10), VarLet, "x", NewNumberLit(span(8, 9), 1))
	prog := NewProgram(decl.Span(), []Stmt{decl})
	assert.Equal(t, decl.Span(), prog.Span())
}
