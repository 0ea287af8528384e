package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenco/langfront/ast"
	"github.com/arenco/langfront/diag"
	"github.com/arenco/langfront/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Program, []diag.Diagnostic) {
	t.Helper()
	tokens, lexDiags := lexer.Tokenize(src, false)
	assert.Empty(t, lexDiags)
	return Parse(tokens, 0)
}

func TestParse_VarDeclWithInit(t *testing.T) {
	prog, diags := parseSource(t, `let x = 10;`)
	assert.Empty(t, diags)
	assert.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	assert.True(t, ok)
	assert.Equal(t, ast.VarLet, decl.Kind)
	assert.Equal(t, "x", decl.Name)
	num, ok := decl.Init.(*ast.NumberLit)
	assert.True(t, ok)
	assert.Equal(t, float64(10), num.Value)
}

func TestParse_ConstWithoutInitializerIsError(t *testing.T) {
	_, diags := parseSource(t, `const pi;`)
	assert.Len(t, diags, 1)
	assert.Equal(t, diag.MissingInitializer, diags[0].Kind)
}

func TestParse_OperatorPrecedence(t *testing.T) {
	prog, diags := parseSource(t, `1 + 2 * 3;`)
	assert.Empty(t, diags)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	bin, ok := stmt.X.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	_, leftIsNum := bin.Left.(*ast.NumberLit)
	assert.True(t, leftIsNum)
	rightMul, ok := bin.Right.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, ast.OpMul, rightMul.Op)
}

func TestParse_AssignmentIsRightAssociative(t *testing.T) {
	prog, diags := parseSource(t, `a = b = 1;`)
	assert.Empty(t, diags)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	outer, ok := stmt.X.(*ast.Assign)
	assert.True(t, ok)
	assert.Equal(t, "a", outer.Target.(*ast.Identifier).Name)
	inner, ok := outer.Value.(*ast.Assign)
	assert.True(t, ok)
	assert.Equal(t, "b", inner.Target.(*ast.Identifier).Name)
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	_, diags := parseSource(t, `1 = 2;`)
	assert.Len(t, diags, 1)
	assert.Equal(t, diag.InvalidAssignmentTarget, diags[0].Kind)
}

func TestParse_DanglingElseBindsToNearestIf(t *testing.T) {
	prog, diags := parseSource(t, `if (a) if (b) c(); else d();`)
	assert.Empty(t, diags)
	outer := prog.Statements[0].(*ast.IfStmt)
	assert.Nil(t, outer.Else)
	inner, ok := outer.Then.(*ast.IfStmt)
	assert.True(t, ok)
	assert.NotNil(t, inner.Else)
}

func TestParse_ForLoopAllClauses(t *testing.T) {
	prog, diags := parseSource(t, `for (let i = 0; i < 10; i = i + 1) { print(i); }`)
	assert.Empty(t, diags)
	forStmt, ok := prog.Statements[0].(*ast.ForStmt)
	assert.True(t, ok)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Cond)
	assert.NotNil(t, forStmt.Update)
}

func TestParse_ForLoopAllClausesOmitted(t *testing.T) {
	prog, diags := parseSource(t, `for (;;) { }`)
	assert.Empty(t, diags)
	forStmt, ok := prog.Statements[0].(*ast.ForStmt)
	assert.True(t, ok)
	assert.Nil(t, forStmt.Init)
	assert.Nil(t, forStmt.Cond)
	assert.Nil(t, forStmt.Update)
}

func TestParse_FunctionDeclaration(t *testing.T) {
	prog, diags := parseSource(t, `function add(a, b) { return a + b; }`)
	assert.Empty(t, diags)
	fn, ok := prog.Statements[0].(*ast.FunDecl)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.Len(t, fn.Body.Statements, 1)
}

func TestParse_CallIndexMemberChain(t *testing.T) {
	prog, diags := parseSource(t, `a.b[0](1, 2);`)
	assert.Empty(t, diags)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	call, ok := stmt.X.(*ast.Call)
	assert.True(t, ok)
	assert.Len(t, call.Args, 2)
	idx, ok := call.Callee.(*ast.Index)
	assert.True(t, ok)
	member, ok := idx.Object.(*ast.Member)
	assert.True(t, ok)
	assert.Equal(t, "b", member.Name)
}

func TestParse_ErrorRecoverySkipsToNextStatement(t *testing.T) {
	prog, diags := parseSource(t, `let x = ; let y = 2;`)
	assert.NotEmpty(t, diags)
	// the malformed first declaration is dropped, but the second survives
	assert.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	assert.True(t, ok)
	assert.Equal(t, "y", decl.Name)
}

func TestParse_DeeplyNestedParens(t *testing.T) {
	src := ""
	for i := 0; i < 300; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 300; i++ {
		src += ")"
	}
	src += ";"
	assert.NotPanics(t, func() {
		_, _ = parseSource(t, src)
	})
}

func TestParse_EmptyProgram(t *testing.T) {
	prog, diags := parseSource(t, ``)
	assert.Empty(t, diags)
	assert.Empty(t, prog.Statements)
}

func TestParse_SpansNestWithinParent(t *testing.T) {
	prog, diags := parseSource(t, `let x = 1 + 2;`)
	assert.Empty(t, diags)
	decl := prog.Statements[0].(*ast.VarDecl)
	declSpan := decl.Span()
	initSpan := decl.Init.Span()
	assert.LessOrEqual(t, declSpan.Start.Offset, initSpan.Start.Offset)
	assert.GreaterOrEqual(t, declSpan.End.Offset, initSpan.End.Offset)
}
