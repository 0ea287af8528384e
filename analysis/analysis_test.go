package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_EndToEndNoErrors(t *testing.T) {
	report := Analyze(`function add(a, b) { return a + b; } let sum = add(1, 2); print(sum);`, nil)
	assert.Empty(t, report.Errors)
	assert.NotNil(t, report.AST)
	assert.NotNil(t, report.Scopes)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	report := Analyze(``, nil)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Len(t, report.Tokens, 1)
	assert.NotNil(t, report.AST)
	assert.Empty(t, report.AST.Statements)
}

func TestAnalyze_CommentOnlyInput(t *testing.T) {
	report := Analyze("// nothing here", nil)
	assert.Empty(t, report.Errors)
	assert.NotNil(t, report.AST)
	assert.Empty(t, report.AST.Statements)
}

func TestAnalyze_DiagnosticsSortedByPosition(t *testing.T) {
	report := Analyze(`let a = undeclared1; let b = undeclared2;`, nil)
	assert.GreaterOrEqual(t, len(report.Errors), 2)
	for i := 1; i < len(report.Errors); i++ {
		assert.LessOrEqual(t, report.Errors[i-1].Span.Start.Offset, report.Errors[i].Span.Start.Offset)
	}
}

func TestAnalyze_CustomBuiltinsViaConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Builtins = append(cfg.Builtins, BuiltinConfig{Name: "len", Arity: 1, Return: "number"})
	report := Analyze(`let n = len("hi"); print(n);`, cfg)
	assert.Empty(t, report.Errors)
}

func TestAnalyze_DeterministicAcrossRuns(t *testing.T) {
	src := `let x = 1; function f(a) { return a + x; } f(2);`
	first := Analyze(src, nil)
	second := Analyze(src, nil)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, len(first.Tokens), len(second.Tokens))
}

func TestLoadConfigBytes_DefaultsFillMissingFields(t *testing.T) {
	cfg, err := LoadConfigBytes([]byte(`coalesce_unknown_chars: true`))
	assert.NoError(t, err)
	assert.True(t, cfg.CoalesceUnknownChars)
	assert.Equal(t, DefaultConfig().Builtins, cfg.Builtins)
	assert.Greater(t, cfg.MaxNestingDepth, 0)
}

func TestTokenizeAndParse_SingleStageEntryPoints(t *testing.T) {
	tokens, lexDiags := Tokenize(`let x = 1;`)
	assert.Empty(t, lexDiags)
	prog, synDiags := Parse(tokens)
	assert.Empty(t, synDiags)
	assert.Len(t, prog.Statements, 1)
}

func TestReport_DumpIncludesDiagnostics(t *testing.T) {
	report := Analyze(`let x = 1 +;`, nil)
	dump := report.Dump()
	assert.Contains(t, dump, "errors:")
}
