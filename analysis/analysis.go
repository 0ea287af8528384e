package analysis

import (
	"github.com/arenco/langfront/ast"
	"github.com/arenco/langfront/diag"
	"github.com/arenco/langfront/lexer"
	"github.com/arenco/langfront/parser"
	"github.com/arenco/langfront/scope"
	"github.com/arenco/langfront/semantic"
	"github.com/arenco/langfront/token"
)

// Report is the aggregate result of running the full pipeline over one
// source buffer: the token stream, the parsed program (nil only when
// SkipParse was requested), the populated scope tree, and diagnostics
// split into errors and warnings and sorted by source position.
type Report struct {
	Tokens   []token.Token
	AST      *ast.Program
	Scopes   *scope.Scope
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

// Analyze runs the lexer, parser, and semantic analyzer over source in
// sequence, merging diagnostics from every stage that ran. A nil cfg
// selects DefaultConfig().
func Analyze(source string, cfg *Config) Report {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tokens, lexDiags := lexer.Tokenize(source, cfg.CoalesceUnknownChars)
	report := Report{Tokens: tokens}

	all := append([]diag.Diagnostic{}, lexDiags...)

	if cfg.SkipParse {
		splitInto(&report, all)
		return report
	}

	prog, synDiags := parser.Parse(tokens, cfg.MaxNestingDepth)
	report.AST = prog
	all = append(all, synDiags...)

	if prog != nil {
		scopes, semDiags := semantic.Analyze(prog, cfg.toSemanticBuiltins())
		report.Scopes = scopes
		all = append(all, semDiags...)
	}

	splitInto(&report, all)
	return report
}

// Tokenize runs only the lexer, exposed for single-stage callers.
func Tokenize(source string) ([]token.Token, []diag.Diagnostic) {
	return lexer.Tokenize(source, false)
}

// Parse runs only the parser over an already-lexed token stream,
// exposed for single-stage callers.
func Parse(tokens []token.Token) (*ast.Program, []diag.Diagnostic) {
	return parser.Parse(tokens, parser.DefaultMaxNestingDepth)
}

func splitInto(report *Report, all []diag.Diagnostic) {
	diag.SortByPosition(all)
	for _, d := range all {
		if d.Severity == diag.Warning {
			report.Warnings = append(report.Warnings, d)
		} else {
			report.Errors = append(report.Errors, d)
		}
	}
}
