package semantic

import (
	"github.com/arenco/langfront/ast"
	"github.com/arenco/langfront/diag"
	"github.com/arenco/langfront/scope"
)

// analyzeType infers and checks the type of an expression, recording
// diagnostics as needed. An Unknown result from any subexpression
// suppresses further diagnostics about operators built on top of it,
// so a single root cause never cascades into a wall of errors.
func (a *Analyzer) analyzeType(e ast.Expr) Type {
	switch x := e.(type) {
	case *ast.NumberLit:
		return TNumber
	case *ast.StringLit:
		return TString
	case *ast.BoolLit:
		return TBoolean
	case *ast.Identifier:
		sym, ok := a.current.Resolve(x.Name)
		if !ok {
			a.diags.Errorf(diag.Semantic, diag.UndeclaredVariable, x.Span(), "undeclared variable %q", x.Name)
			return TUnknown
		}
		a.current.MarkUsed(x.Name)
		return asType(sym.Type)
	case *ast.Assign:
		return a.analyzeAssign(x)
	case *ast.Binary:
		return a.analyzeBinary(x)
	case *ast.Unary:
		return a.analyzeUnary(x)
	case *ast.Call:
		return a.analyzeCall(x)
	case *ast.Index:
		return a.analyzeIndex(x)
	case *ast.Member:
		a.analyzeType(x.Object)
		return TUnknown
	default:
		return TUnknown
	}
}

func asType(v any) Type {
	if t, ok := v.(Type); ok {
		return t
	}
	return TUnknown
}

func (a *Analyzer) analyzeAssign(x *ast.Assign) Type {
	valueType := a.analyzeType(x.Value)

	ident, isIdent := x.Target.(*ast.Identifier)
	if !isIdent {
		// Index/Member targets have no declared symbol to check against;
		// still type-check the object/index subexpressions.
		a.analyzeType(x.Target)
		return valueType
	}

	sym, ok := a.current.Resolve(ident.Name)
	if !ok {
		a.diags.Errorf(diag.Semantic, diag.UndeclaredVariable, ident.Span(), "undeclared variable %q", ident.Name)
		return valueType
	}
	if sym.Kind == scope.Constant || sym.Kind == scope.Builtin {
		a.diags.Errorf(diag.Semantic, diag.AssignToConstant, x.Span(), "cannot assign to constant %q", ident.Name)
		return valueType
	}
	existing := asType(sym.Type)
	if !existing.IsUnknown() && !valueType.IsUnknown() && !existing.Equal(valueType) {
		a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "cannot assign %s to %q of type %s", valueType, ident.Name, existing)
	} else {
		sym.Type = valueType
	}
	return valueType
}

func (a *Analyzer) analyzeBinary(x *ast.Binary) Type {
	left := a.analyzeType(x.Left)
	right := a.analyzeType(x.Right)

	switch x.Op {
	case ast.OpAdd:
		if left.IsUnknown() || right.IsUnknown() {
			return TUnknown
		}
		if left.Equal(TNumber) && right.Equal(TNumber) {
			return TNumber
		}
		if left.Equal(TString) || right.Equal(TString) {
			return TString
		}
		a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "cannot add %s and %s", left, right)
		return TUnknown
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if left.IsUnknown() || right.IsUnknown() {
			return TUnknown
		}
		if left.Equal(TNumber) && right.Equal(TNumber) {
			return TNumber
		}
		a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "arithmetic operator requires numbers, got %s and %s", left, right)
		return TUnknown
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		if left.IsUnknown() || right.IsUnknown() {
			return TUnknown
		}
		if left.Equal(TNumber) && right.Equal(TNumber) {
			return TBoolean
		}
		a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "comparison operator requires numbers, got %s and %s", left, right)
		return TUnknown
	case ast.OpEq, ast.OpNeq:
		if !left.IsUnknown() && !right.IsUnknown() && !left.Equal(right) {
			a.diags.Warnf(diag.Semantic, diag.EqualityAcrossTypes, x.Span(), "comparing values of different types %s and %s", left, right)
		}
		return TBoolean
	case ast.OpAnd, ast.OpOr:
		if (!left.IsUnknown() && !left.Equal(TBoolean)) || (!right.IsUnknown() && !right.Equal(TBoolean)) {
			a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "logical operator requires booleans, got %s and %s", left, right)
			return TUnknown
		}
		return TBoolean
	default:
		return TUnknown
	}
}

func (a *Analyzer) analyzeUnary(x *ast.Unary) Type {
	operand := a.analyzeType(x.Operand)
	if operand.IsUnknown() {
		return TUnknown
	}
	switch x.Op {
	case ast.OpNot:
		if !operand.Equal(TBoolean) {
			a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "! requires a boolean operand, got %s", operand)
			return TUnknown
		}
		return TBoolean
	case ast.OpNeg, ast.OpPos:
		if !operand.Equal(TNumber) {
			a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Span(), "unary %s requires a number operand, got %s", unaryOpName(x.Op), operand)
			return TUnknown
		}
		return TNumber
	default:
		return TUnknown
	}
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.OpNeg:
		return "-"
	case ast.OpPos:
		return "+"
	case ast.OpNot:
		return "!"
	default:
		return "?"
	}
}

func (a *Analyzer) analyzeCall(x *ast.Call) Type {
	calleeType := a.analyzeType(x.Callee)

	if ident, ok := x.Callee.(*ast.Identifier); ok {
		if sym, found := a.current.Resolve(ident.Name); found && !a.isSelfRecursiveCall(sym) {
			a.current.MarkCalled(ident.Name)
		}
	}

	for _, arg := range x.Args {
		a.analyzeType(arg)
	}

	if calleeType.IsUnknown() {
		return TUnknown
	}
	if calleeType.Kind != FunctionType {
		a.diags.Errorf(diag.Semantic, diag.NotCallable, x.Span(), "%s is not callable", calleeType)
		return TUnknown
	}
	if calleeType.Arity != scope.AnyArity && calleeType.Arity != len(x.Args) {
		a.diags.Errorf(diag.Semantic, diag.ArgumentCountMismatch, x.Span(), "expected %d argument(s), got %d", calleeType.Arity, len(x.Args))
	}
	if calleeType.Return != nil {
		return *calleeType.Return
	}
	return TUnknown
}

func (a *Analyzer) analyzeIndex(x *ast.Index) Type {
	objType := a.analyzeType(x.Object)
	idxType := a.analyzeType(x.Idx)
	if !idxType.IsUnknown() && !idxType.Equal(TNumber) {
		a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Idx.Span(), "index must be a number, got %s", idxType)
	}
	if !objType.IsUnknown() && !objType.Equal(TString) {
		a.diags.Errorf(diag.Semantic, diag.TypeMismatch, x.Object.Span(), "cannot index into %s", objType)
	}
	return TUnknown
}

// isSelfRecursiveCall reports whether sym is the function whose own body
// is currently being analyzed: a direct self-call like f() inside f's
// definition doesn't count as evidence that f is called from anywhere,
// so it must not satisfy the UncalledFunction check.
func (a *Analyzer) isSelfRecursiveCall(sym *scope.Symbol) bool {
	if len(a.funcStack) == 0 {
		return false
	}
	return a.funcStack[len(a.funcStack)-1] == sym
}

// reportUnused walks the full scope tree after traversal and emits
// UnusedVariable/UnusedParameter/UncalledFunction warnings. The
// Function/Called check runs regardless of Used: a recursive-only
// function has Used set (its name was referenced) but must still warn
// if no call site outside its own body ever invoked it.
func (a *Analyzer) reportUnused(root *scope.Scope) {
	root.Walk(func(s *scope.Scope) {
		for _, sym := range s.Symbols() {
			switch sym.Kind {
			case scope.Variable, scope.Constant:
				if !sym.Used {
					a.diags.Warnf(diag.Semantic, diag.UnusedVariable, sym.Span, "%q is never used", sym.Name)
				}
			case scope.Parameter:
				if !sym.Used {
					a.diags.Warnf(diag.Semantic, diag.UnusedParameter, sym.Span, "parameter %q is never used", sym.Name)
				}
			case scope.Function:
				if !sym.Called {
					a.diags.Warnf(diag.Semantic, diag.UncalledFunction, sym.Span, "function %q is never called", sym.Name)
				}
			}
		}
	})
}
