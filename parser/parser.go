// Package parser implements a hand-written LL(1) recursive-descent
// parser with Pratt-style precedence climbing for expressions. It
// never raises on malformed input: errors are recorded and parsing
// resynchronizes at the next statement boundary.
package parser

import (
	"github.com/arenco/langfront/ast"
	"github.com/arenco/langfront/diag"
	"github.com/arenco/langfront/token"
)

// DefaultMaxNestingDepth bounds expression/statement recursion so a
// pathological input cannot overflow the Go call stack; exceeding it
// is reported as a single diagnostic rather than a panic.
const DefaultMaxNestingDepth = 512

// Parser holds the token cursor and accumulated diagnostics.
type Parser struct {
	tokens []token.Token
	pos    int // index of the current token

	maxDepth int
	depth    int

	diags diag.Bag
}

// New creates a Parser over a token sequence produced by the lexer.
// maxDepth <= 0 selects DefaultMaxNestingDepth.
func New(tokens []token.Token, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxNestingDepth
	}
	if len(tokens) == 0 {
		tokens = []token.Token{{Kind: token.EOF}}
	}
	return &Parser{tokens: tokens, maxDepth: maxDepth}
}

// Parse parses a full token sequence into a Program and returns any
// syntactic diagnostics.
func Parse(tokens []token.Token, maxDepth int) (*ast.Program, []diag.Diagnostic) {
	p := New(tokens, maxDepth)
	prog := p.ParseProgram()
	return prog, p.diags.Items()
}

// ---- cursor primitives ----

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// consume advances past a token of the expected kind, or records an
// ExpectedToken diagnostic and returns the unexpected token without
// advancing.
func (p *Parser) consume(expected token.Kind) (token.Token, bool) {
	if p.at(expected) {
		return p.advance(), true
	}
	cur := p.cur()
	p.diags.Errorf(diag.Syntax, diag.ExpectedToken, cur.Span, "expected %s, found %s", expected, cur.Kind)
	return cur, false
}

// synchronize discards tokens until a likely statement boundary: a
// semicolon (consumed), a closing brace (not consumed, so the enclosing
// block parser can close cleanly), a statement-starter keyword, or EOF.
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.SEMICOLON) {
			p.advance()
			return
		}
		if p.at(token.RBRACE) {
			return
		}
		switch p.cur().Kind {
		case token.LET, token.CONST, token.FUNCTION, token.IF, token.WHILE, token.FOR, token.RETURN:
			return
		}
		p.advance()
	}
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		p.diags.Errorf(diag.Syntax, diag.NestingTooDeep, p.cur().Span, "expression or statement nesting exceeds %d levels", p.maxDepth)
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }

// ---- program & statements ----

// ParseProgram parses the full token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.cur().Span
	var stmts []ast.Stmt
	for !p.at(token.EOF) {
		before := p.pos
		stmt, ok := p.parseStatement()
		if ok && stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()
			if p.pos == before {
				p.advance() // e.g. a stray '}' that no enclosing block will consume
			}
		}
	}
	end := p.cur().Span
	span := start
	if len(stmts) > 0 {
		span = stmts[0].Span().Cover(stmts[len(stmts)-1].Span())
	} else {
		span = start.Cover(end)
	}
	return ast.NewProgram(span, stmts)
}

func (p *Parser) parseStatement() (ast.Stmt, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	switch p.cur().Kind {
	case token.LET, token.CONST:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFunDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() (ast.Stmt, bool) {
	startTok := p.advance() // let|const
	kind := ast.VarLet
	if startTok.Kind == token.CONST {
		kind = ast.VarConst
	}
	nameTok, ok := p.consume(token.IDENT)
	if !ok {
		return nil, false
	}
	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		var ok2 bool
		init, ok2 = p.parseExpression(lowest)
		if !ok2 {
			return nil, false
		}
	} else if kind == ast.VarConst {
		p.diags.Errorf(diag.Syntax, diag.MissingInitializer, nameTok.Span, "const %q requires an initializer", nameTok.Lexeme)
	}
	semi, _ := p.consume(token.SEMICOLON)
	span := startTok.Span.Cover(semi.Span)
	return ast.NewVarDecl(span, kind, nameTok.Lexeme, init), true
}

func (p *Parser) parseFunDecl() (ast.Stmt, bool) {
	startTok := p.advance() // function
	nameTok, ok := p.consume(token.IDENT)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.LPAREN); !ok {
		return nil, false
	}
	var params []ast.Param
	if !p.at(token.RPAREN) {
		paramTok, ok := p.consume(token.IDENT)
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: paramTok.Lexeme, Span: paramTok.Span})
		for p.at(token.COMMA) {
			p.advance()
			paramTok, ok := p.consume(token.IDENT)
			if !ok {
				return nil, false
			}
			params = append(params, ast.Param{Name: paramTok.Lexeme, Span: paramTok.Span})
		}
	}
	if _, ok := p.consume(token.RPAREN); !ok {
		return nil, false
	}
	if !p.at(token.LBRACE) {
		p.diags.Errorf(diag.Syntax, diag.ExpectedToken, p.cur().Span, "expected %s, found %s", token.LBRACE, p.cur().Kind)
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	span := startTok.Span.Cover(body.Span())
	return ast.NewFunDecl(span, nameTok.Lexeme, params, body.(*ast.Block)), true
}

func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	startTok := p.advance() // if
	if _, ok := p.consume(token.LPAREN); !ok {
		return nil, false
	}
	cond, ok := p.parseExpression(lowest)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.RPAREN); !ok {
		return nil, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	var elseStmt ast.Stmt
	span := startTok.Span.Cover(then.Span())
	if p.at(token.ELSE) {
		p.advance()
		var ok2 bool
		elseStmt, ok2 = p.parseStatement()
		if !ok2 {
			return nil, false
		}
		span = span.Cover(elseStmt.Span())
	}
	return ast.NewIfStmt(span, cond, then, elseStmt), true
}

func (p *Parser) parseWhileStmt() (ast.Stmt, bool) {
	startTok := p.advance() // while
	if _, ok := p.consume(token.LPAREN); !ok {
		return nil, false
	}
	cond, ok := p.parseExpression(lowest)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.RPAREN); !ok {
		return nil, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	return ast.NewWhileStmt(startTok.Span.Cover(body.Span()), cond, body), true
}

func (p *Parser) parseForStmt() (ast.Stmt, bool) {
	startTok := p.advance() // for
	if _, ok := p.consume(token.LPAREN); !ok {
		return nil, false
	}

	var init ast.Stmt
	if !p.at(token.SEMICOLON) {
		if p.at(token.LET) || p.at(token.CONST) {
			var ok bool
			init, ok = p.parseVarDecl() // consumes trailing semicolon
			if !ok {
				return nil, false
			}
		} else {
			expr, ok := p.parseExpression(lowest)
			if !ok {
				return nil, false
			}
			semi, _ := p.consume(token.SEMICOLON)
			init = ast.NewExprStmt(expr.Span().Cover(semi.Span), expr)
		}
	} else {
		p.advance() // bare semicolon
	}

	var cond ast.Expr
	if !p.at(token.SEMICOLON) {
		var ok bool
		cond, ok = p.parseExpression(lowest)
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.consume(token.SEMICOLON); !ok {
		return nil, false
	}

	var update ast.Expr
	if !p.at(token.RPAREN) {
		var ok bool
		update, ok = p.parseExpression(lowest)
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.consume(token.RPAREN); !ok {
		return nil, false
	}

	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	return ast.NewForStmt(startTok.Span.Cover(body.Span()), init, cond, update, body), true
}

func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	startTok := p.advance() // return
	var value ast.Expr
	if !p.at(token.SEMICOLON) {
		var ok bool
		value, ok = p.parseExpression(lowest)
		if !ok {
			return nil, false
		}
	}
	semi, _ := p.consume(token.SEMICOLON)
	return ast.NewReturnStmt(startTok.Span.Cover(semi.Span), value), true
}

func (p *Parser) parseBlock() (ast.Stmt, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	startTok, ok := p.consume(token.LBRACE)
	if !ok {
		return nil, false
	}
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		before := p.pos
		stmt, ok := p.parseStatement()
		if ok && stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()
			if p.pos == before {
				p.advance()
			}
		}
	}
	endTok, _ := p.consume(token.RBRACE)
	return ast.NewBlock(startTok.Span.Cover(endTok.Span), stmts), true
}

func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	expr, ok := p.parseExpression(lowest)
	if !ok {
		return nil, false
	}
	semi, _ := p.consume(token.SEMICOLON)
	return ast.NewExprStmt(expr.Span().Cover(semi.Span), expr), true
}

// ---- expressions ----

// parseExpression is the Pratt climb entry point. Assignment sits
// below the climb: it is checked for explicitly at the lowest level so
// it can enforce the lvalue rule and right-associate.
func (p *Parser) parseExpression(minPrec int) (ast.Expr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	if minPrec == lowest {
		return p.parseAssignment()
	}
	return p.parseBinary(minPrec)
}

func (p *Parser) parseAssignment() (ast.Expr, bool) {
	left, ok := p.parseBinary(orPrec)
	if !ok {
		return nil, false
	}
	if p.at(token.ASSIGN) {
		p.advance()
		value, ok := p.parseAssignment()
		if !ok {
			return nil, false
		}
		if !ast.IsLvalue(left) {
			p.diags.Errorf(diag.Syntax, diag.InvalidAssignmentTarget, left.Span(), "invalid assignment target")
		}
		return ast.NewAssign(left.Span().Cover(value.Span()), left, value), true
	}
	return left, true
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		prec := precedenceOf(p.cur().Kind)
		if prec < minPrec || prec == lowest {
			break
		}
		opTok := p.advance()
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return nil, false
		}
		op, ok := binaryOpFor(opTok.Kind)
		if !ok {
			return nil, false
		}
		left = ast.NewBinary(left.Span().Cover(right.Span()), op, left, right)
	}
	return left, true
}

func binaryOpFor(kind token.Kind) (ast.BinaryOp, bool) {
	switch kind {
	case token.PLUS:
		return ast.OpAdd, true
	case token.MINUS:
		return ast.OpSub, true
	case token.STAR:
		return ast.OpMul, true
	case token.SLASH:
		return ast.OpDiv, true
	case token.PERCENT:
		return ast.OpMod, true
	case token.LT:
		return ast.OpLt, true
	case token.LTE:
		return ast.OpLte, true
	case token.GT:
		return ast.OpGt, true
	case token.GTE:
		return ast.OpGte, true
	case token.EQ:
		return ast.OpEq, true
	case token.NEQ:
		return ast.OpNeq, true
	case token.AND:
		return ast.OpAnd, true
	case token.OR:
		return ast.OpOr, true
	default:
		return 0, false
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	switch p.cur().Kind {
	case token.BANG, token.MINUS, token.PLUS:
		opTok := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		var op ast.UnaryOp
		switch opTok.Kind {
		case token.BANG:
			op = ast.OpNot
		case token.MINUS:
			op = ast.OpNeg
		case token.PLUS:
			op = ast.OpPos
		}
		return ast.NewUnary(opTok.Span.Cover(operand.Span()), op, operand), true
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expr, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.cur().Kind {
		case token.LPAREN:
			p.advance()
			var args []ast.Expr
			if !p.at(token.RPAREN) {
				arg, ok := p.parseExpression(lowest)
				if !ok {
					return nil, false
				}
				args = append(args, arg)
				for p.at(token.COMMA) {
					p.advance()
					arg, ok := p.parseExpression(lowest)
					if !ok {
						return nil, false
					}
					args = append(args, arg)
				}
			}
			endTok, ok := p.consume(token.RPAREN)
			if !ok {
				return nil, false
			}
			expr = ast.NewCall(expr.Span().Cover(endTok.Span), expr, args)
		case token.LBRACKET:
			p.advance()
			idx, ok := p.parseExpression(lowest)
			if !ok {
				return nil, false
			}
			endTok, ok := p.consume(token.RBRACKET)
			if !ok {
				return nil, false
			}
			expr = ast.NewIndex(expr.Span().Cover(endTok.Span), expr, idx)
		case token.DOT:
			p.advance()
			nameTok, ok := p.consume(token.IDENT)
			if !ok {
				return nil, false
			}
			expr = ast.NewMember(expr.Span().Cover(nameTok.Span), expr, nameTok.Lexeme)
		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.cur()
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		return ast.NewIdentifier(tok.Span, tok.Lexeme), true
	case token.NUMBER:
		p.advance()
		return ast.NewNumberLit(tok.Span, tok.Literal.Number), true
	case token.STRING:
		p.advance()
		return ast.NewStringLit(tok.Span, tok.Literal.Text), true
	case token.TRUE:
		p.advance()
		return ast.NewBoolLit(tok.Span, true), true
	case token.FALSE:
		p.advance()
		return ast.NewBoolLit(tok.Span, false), true
	case token.LPAREN:
		p.advance()
		inner, ok := p.parseExpression(lowest)
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.RPAREN); !ok {
			return nil, false
		}
		return inner, true
	default:
		p.diags.Errorf(diag.Syntax, diag.UnexpectedToken, tok.Span, "unexpected token %s", tok.Kind)
		return nil, false
	}
}
