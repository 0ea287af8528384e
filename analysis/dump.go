package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arenco/langfront/ast"
)

// Dump renders the report's AST and diagnostics as indented text, for
// demonstration tooling (devrepl, cmd/langfront) and for eyeballing
// test fixtures. It is not a serialization format; no decoder exists.
func (r Report) Dump() string {
	var sb strings.Builder
	if r.AST != nil {
		sb.WriteString("program:\n")
		for _, stmt := range r.AST.Statements {
			dumpStmt(&sb, stmt, 1)
		}
	} else {
		sb.WriteString("program: <none>\n")
	}
	if len(r.Errors) > 0 {
		sb.WriteString("errors:\n")
		for _, d := range r.Errors {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("warnings:\n")
		for _, d := range r.Warnings {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

// dumpStmt switches over the closed statement node set. The compiler
// does not check the switch for completeness: a statement shape with no
// case here is rendered as "<unknown statement>".
func dumpStmt(sb *strings.Builder, s ast.Stmt, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *ast.VarDecl:
		kw := "let"
		if n.Kind == ast.VarConst {
			kw = "const"
		}
		sb.WriteString(kw + " " + n.Name)
		if n.Init != nil {
			sb.WriteString(" = ")
			dumpExprInline(sb, n.Init)
		}
		sb.WriteString("\n")
	case *ast.FunDecl:
		names := make([]string, len(n.Params))
		for i, p := range n.Params {
			names[i] = p.Name
		}
		fmt.Fprintf(sb, "function %s(%s)\n", n.Name, strings.Join(names, ", "))
		dumpStmt(sb, n.Body, depth)
	case *ast.IfStmt:
		sb.WriteString("if (")
		dumpExprInline(sb, n.Cond)
		sb.WriteString(")\n")
		dumpStmt(sb, n.Then, depth+1)
		if n.Else != nil {
			indent(sb, depth)
			sb.WriteString("else\n")
			dumpStmt(sb, n.Else, depth+1)
		}
	case *ast.WhileStmt:
		sb.WriteString("while (")
		dumpExprInline(sb, n.Cond)
		sb.WriteString(")\n")
		dumpStmt(sb, n.Body, depth+1)
	case *ast.ForStmt:
		sb.WriteString("for (...)\n")
		dumpStmt(sb, n.Body, depth+1)
	case *ast.ReturnStmt:
		sb.WriteString("return")
		if n.Value != nil {
			sb.WriteString(" ")
			dumpExprInline(sb, n.Value)
		}
		sb.WriteString("\n")
	case *ast.Block:
		sb.WriteString("{\n")
		for _, inner := range n.Statements {
			dumpStmt(sb, inner, depth+1)
		}
		indent(sb, depth)
		sb.WriteString("}\n")
	case *ast.ExprStmt:
		dumpExprInline(sb, n.X)
		sb.WriteString("\n")
	default:
		sb.WriteString("<unknown statement>\n")
	}
}

func dumpExprInline(sb *strings.Builder, e ast.Expr) {
	switch n := e.(type) {
	case *ast.Identifier:
		sb.WriteString(n.Name)
	case *ast.NumberLit:
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *ast.StringLit:
		sb.WriteString(strconv.Quote(n.Value))
	case *ast.BoolLit:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *ast.Assign:
		dumpExprInline(sb, n.Target)
		sb.WriteString(" = ")
		dumpExprInline(sb, n.Value)
	case *ast.Binary:
		dumpExprInline(sb, n.Left)
		sb.WriteString(" " + binaryOpSymbol(n.Op) + " ")
		dumpExprInline(sb, n.Right)
	case *ast.Unary:
		sb.WriteString(unaryOpSymbol(n.Op))
		dumpExprInline(sb, n.Operand)
	case *ast.Call:
		dumpExprInline(sb, n.Callee)
		sb.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			dumpExprInline(sb, arg)
		}
		sb.WriteString(")")
	case *ast.Index:
		dumpExprInline(sb, n.Object)
		sb.WriteString("[")
		dumpExprInline(sb, n.Idx)
		sb.WriteString("]")
	case *ast.Member:
		dumpExprInline(sb, n.Object)
		sb.WriteString("." + n.Name)
	default:
		sb.WriteString("<unknown expr>")
	}
}

func binaryOpSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpLt:
		return "<"
	case ast.OpLte:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGte:
		return ">="
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	default:
		return "?"
	}
}

func unaryOpSymbol(op ast.UnaryOp) string {
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
