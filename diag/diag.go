// Package diag defines the diagnostic value shared by every stage of the
// analysis pipeline. No stage panics on malformed input; each stage
// records diagnostics as values and keeps going.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arenco/langfront/token"
)

// Stage identifies which pipeline phase produced a diagnostic. Stage
// ordering doubles as the tie-break rank used when sorting diagnostics
// that share a source position.
type Stage int

const (
	Lex Stage = iota
	Syntax
	Semantic
)

func (s Stage) String() string {
	switch s {
	case Lex:
		return "lex"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Severity distinguishes hard errors from advisory warnings. Only
// Semantic-stage diagnostics are ever Warning severity; Lex and Syntax
// diagnostics are always errors.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Kind is the closed taxonomy of diagnostic reasons across all stages.
type Kind string

const (
	// Lexical
	UnknownChar        Kind = "UnknownChar"
	UnterminatedString Kind = "UnterminatedString"
	MalformedNumber    Kind = "MalformedNumber"

	// Syntactic
	ExpectedToken            Kind = "Expected"
	UnexpectedToken          Kind = "UnexpectedToken"
	InvalidAssignmentTarget  Kind = "InvalidAssignmentTarget"
	MissingInitializer       Kind = "MissingInitializer"
	NestingTooDeep           Kind = "NestingTooDeep"

	// Semantic errors
	UndeclaredVariable      Kind = "UndeclaredVariable"
	Redeclaration           Kind = "Redeclaration"
	TypeMismatch            Kind = "TypeMismatch"
	AssignToConstant        Kind = "AssignToConstant"
	NotCallable             Kind = "NotCallable"
	ArgumentCountMismatch   Kind = "ArgumentCountMismatch"
	ReturnOutsideFunction   Kind = "ReturnOutsideFunction"

	// Semantic warnings
	UnusedVariable      Kind = "UnusedVariable"
	UnusedParameter     Kind = "UnusedParameter"
	UncalledFunction    Kind = "UncalledFunction"
	Shadowing           Kind = "Shadowing"
	NonBooleanCondition Kind = "NonBooleanCondition"
	EqualityAcrossTypes Kind = "EqualityAcrossTypes"
)

// Diagnostic is one reported condition: where it happened, what stage
// and kind produced it, whether it blocks a clean analysis, and a
// human-readable message.
type Diagnostic struct {
	Stage    Stage
	Kind     Kind
	Severity Severity
	Message  string
	Span     token.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Stage, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message)
}

// Bag accumulates diagnostics from one or more stages without aborting
// the stage that produced them.
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Errorf builds and appends an Error-severity diagnostic.
func (b *Bag) Errorf(stage Stage, kind Kind, span token.Span, format string, args ...any) {
	b.Add(Diagnostic{Stage: stage, Kind: kind, Severity: Error, Message: fmt.Sprintf(format, args...), Span: span})
}

// Warnf builds and appends a Warning-severity diagnostic.
func (b *Bag) Warnf(stage Stage, kind Kind, span token.Span, format string, args ...any) {
	b.Add(Diagnostic{Stage: stage, Kind: kind, Severity: Warning, Message: fmt.Sprintf(format, args...), Span: span})
}

// Items returns the accumulated diagnostics in insertion order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasErrors reports whether any accumulated diagnostic is Error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Len reports the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// SortByPosition orders a diagnostic slice by source offset, breaking
// ties by stage rank (Lex < Syntax < Semantic).
func SortByPosition(items []Diagnostic) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Span.Start.Offset != b.Span.Start.Offset {
			return a.Span.Start.Offset < b.Span.Start.Offset
		}
		return a.Stage < b.Stage
	})
}

// Error implements the error interface by joining every accumulated
// diagnostic's message onto one line each, so a Bag can be used
// wherever plain Go code expects a single error value.
func (b *Bag) Error() string {
	if len(b.items) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range b.items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
