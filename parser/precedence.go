package parser

import "github.com/arenco/langfront/token"

// Precedence levels for the Pratt-style expression climb, lowest to
// highest. Assignment is handled specially (right-associative, not
// part of the climb) since it is the lowest-precedence construct that
// still requires an lvalue check on its left operand.
const (
	lowest int = iota
	orPrec
	andPrec
	equalityPrec
	relationalPrec
	additivePrec
	multiplicativePrec
	unaryPrec
	postfixPrec
)

var binaryPrecedence = map[token.Kind]int{
	token.OR:      orPrec,
	token.AND:     andPrec,
	token.EQ:      equalityPrec,
	token.NEQ:     equalityPrec,
	token.LT:      relationalPrec,
	token.LTE:     relationalPrec,
	token.GT:      relationalPrec,
	token.GTE:     relationalPrec,
	token.PLUS:    additivePrec,
	token.MINUS:   additivePrec,
	token.STAR:    multiplicativePrec,
	token.SLASH:   multiplicativePrec,
	token.PERCENT: multiplicativePrec,
}

func precedenceOf(kind token.Kind) int {
	if p, ok := binaryPrecedence[kind]; ok {
		return p
	}
	return lowest
}
