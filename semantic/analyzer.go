// Package semantic implements the two-pass semantic analyzer: symbol
// declaration and type inference over nested lexical scopes, walking
// the AST once declarations are registered so forward references
// within a function (recursion in particular) resolve correctly.
package semantic

import (
	"github.com/arenco/langfront/ast"
	"github.com/arenco/langfront/diag"
	"github.com/arenco/langfront/scope"
)

// Builtin describes a pre-seeded global symbol. Arity uses
// scope.AnyArity for variadic builtins such as print.
type Builtin struct {
	Name   string
	Arity  int
	Return Type
}

// DefaultBuiltins reproduces the three builtins every analysis starts
// with unless a host-supplied configuration overrides them.
func DefaultBuiltins() []Builtin {
	return []Builtin{
		{Name: "print", Arity: scope.AnyArity, Return: TVoid},
		{Name: "input", Arity: 0, Return: TString},
		{Name: "parseInt", Arity: 1, Return: TNumber},
	}
}

// Analyzer walks a Program AST, building a scope tree and accumulating
// diagnostics. Use Analyze for a single-shot call.
type Analyzer struct {
	global    *scope.Scope
	current   *scope.Scope
	depth     int             // function nesting depth, for ReturnOutsideFunction
	funcStack []*scope.Symbol // enclosing function symbols, innermost last
	diags     diag.Bag
}

// New creates an Analyzer with a fresh global scope seeded with builtins.
func New(builtins []Builtin) *Analyzer {
	a := &Analyzer{}
	a.global = scope.New()
	a.current = a.global
	for _, b := range builtins {
		a.global.Declare(&scope.Symbol{
			Name:    b.Name,
			Kind:    scope.Builtin,
			Arity:   b.Arity,
			Used:    true,
			Mutable: false,
			Type:    Func(b.Arity, b.Return),
		})
	}
	return a
}

// Analyze runs the analyzer over prog and returns the populated global
// scope plus all accumulated diagnostics (errors and warnings mixed;
// callers that need them split can check Diagnostic.Severity).
func Analyze(prog *ast.Program, builtins []Builtin) (*scope.Scope, []diag.Diagnostic) {
	a := New(builtins)
	a.analyzeProgram(prog)
	a.reportUnused(a.global)
	return a.global, a.diags.Items()
}

func (a *Analyzer) analyzeProgram(prog *ast.Program) {
	a.hoistFunctions(prog.Statements)
	for _, stmt := range prog.Statements {
		a.analyzeStmt(stmt)
	}
}

// hoistFunctions registers every FunDecl directly in a statement list
// before any statement is analyzed, so calls appearing earlier in
// source than the declaration, and recursive self-calls, resolve.
func (a *Analyzer) hoistFunctions(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		fd, ok := stmt.(*ast.FunDecl)
		if !ok {
			continue
		}
		sym := &scope.Symbol{
			Name:  fd.Name,
			Kind:  scope.Function,
			Span:  fd.Span(),
			Arity: len(fd.Params),
			Type:  Func(len(fd.Params), TUnknown),
		}
		if a.current.Parent != nil {
			if _, shadowed := a.current.Parent.Resolve(fd.Name); shadowed {
				a.diags.Warnf(diag.Semantic, diag.Shadowing, fd.Span(), "declaration of %q shadows an outer binding", fd.Name)
			}
		}
		if !a.current.Declare(sym) {
			a.diags.Errorf(diag.Semantic, diag.Redeclaration, fd.Span(), "function %q is already declared in this scope", fd.Name)
		}
	}
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(s)
	case *ast.FunDecl:
		a.analyzeFunDecl(s)
	case *ast.IfStmt:
		if t := a.analyzeType(s.Cond); !t.IsUnknown() && !t.Equal(TBoolean) {
			a.diags.Warnf(diag.Semantic, diag.NonBooleanCondition, s.Cond.Span(), "condition does not evaluate to a boolean")
		}
		a.analyzeStmt(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}
	case *ast.WhileStmt:
		if t := a.analyzeType(s.Cond); !t.IsUnknown() && !t.Equal(TBoolean) {
			a.diags.Warnf(diag.Semantic, diag.NonBooleanCondition, s.Cond.Span(), "condition does not evaluate to a boolean")
		}
		a.analyzeStmt(s.Body)
	case *ast.ForStmt:
		a.analyzeForStmt(s)
	case *ast.ReturnStmt:
		if a.depth == 0 {
			a.diags.Errorf(diag.Semantic, diag.ReturnOutsideFunction, s.Span(), "return statement outside of a function")
		}
		if s.Value != nil {
			a.analyzeType(s.Value)
		}
	case *ast.Block:
		a.pushScope(scope.BlockScope, func() {
			a.hoistFunctions(s.Statements)
			for _, inner := range s.Statements {
				a.analyzeStmt(inner)
			}
		})
	case *ast.ExprStmt:
		a.analyzeType(s.X)
	}
}

func (a *Analyzer) analyzeVarDecl(s *ast.VarDecl) {
	kind := scope.Variable
	if s.Kind == ast.VarConst {
		kind = scope.Constant
	}
	declType := TUnknown
	if s.Init != nil {
		declType = a.analyzeType(s.Init)
	}
	sym := &scope.Symbol{
		Name:    s.Name,
		Kind:    kind,
		Span:    s.Span(),
		Mutable: kind != scope.Constant,
		Type:    declType,
	}
	if a.current.Parent != nil {
		if _, shadowed := a.current.Parent.Resolve(s.Name); shadowed {
			a.diags.Warnf(diag.Semantic, diag.Shadowing, s.Span(), "declaration of %q shadows an outer binding", s.Name)
		}
	}
	if !a.current.Declare(sym) {
		a.diags.Errorf(diag.Semantic, diag.Redeclaration, s.Span(), "%q is already declared in this scope", s.Name)
	}
}

func (a *Analyzer) analyzeFunDecl(s *ast.FunDecl) {
	// The symbol itself was already registered by hoistFunctions in the
	// enclosing statement list; analyze the body in a fresh function scope.
	sym, _ := a.current.Resolve(s.Name)
	outer := a.current
	a.pushScope(scope.FunctionScope, func() {
		a.funcStack = append(a.funcStack, sym)
		for _, param := range s.Params {
			if _, shadowed := outer.Resolve(param.Name); shadowed {
				a.diags.Warnf(diag.Semantic, diag.Shadowing, param.Span, "parameter %q shadows an outer binding", param.Name)
			}
			a.current.Declare(&scope.Symbol{
				Name:  param.Name,
				Kind:  scope.Parameter,
				Span:  param.Span,
				Type:  TUnknown,
			})
		}
		a.depth++
		a.hoistFunctions(s.Body.Statements)
		for _, inner := range s.Body.Statements {
			a.analyzeStmt(inner)
		}
		a.depth--
		a.funcStack = a.funcStack[:len(a.funcStack)-1]
	})
}

func (a *Analyzer) analyzeForStmt(s *ast.ForStmt) {
	a.pushScope(scope.BlockScope, func() {
		if s.Init != nil {
			a.analyzeStmt(s.Init)
		}
		if s.Cond != nil {
			if t := a.analyzeType(s.Cond); !t.IsUnknown() && !t.Equal(TBoolean) {
				a.diags.Warnf(diag.Semantic, diag.NonBooleanCondition, s.Cond.Span(), "condition does not evaluate to a boolean")
			}
		}
		if s.Update != nil {
			a.analyzeType(s.Update)
		}
		a.analyzeStmt(s.Body)
	})
}

func (a *Analyzer) pushScope(kind scope.Kind, body func()) {
	prev := a.current
	a.current = prev.Push(kind)
	body()
	a.current = prev
}
