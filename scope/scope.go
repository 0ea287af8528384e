// Package scope implements the compile-time symbol table: a tree of
// lexical scopes, each holding a name-to-symbol map, chained to a
// parent for innermost-first resolution. Scopes are retained after
// analysis so a host can render the scope tree.
package scope

import "github.com/arenco/langfront/token"

// Kind tags what introduced a scope.
type Kind int

const (
	Global Kind = iota
	FunctionScope
	BlockScope
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	default:
		return "unknown"
	}
}

// SymbolKind is the closed set of named-entity categories.
type SymbolKind int

const (
	Variable SymbolKind = iota
	Constant
	Function
	Parameter
	Builtin
)

func (k SymbolKind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Constant:
		return "constant"
	case Function:
		return "function"
	case Parameter:
		return "parameter"
	case Builtin:
		return "builtin"
	default:
		return "unknown"
	}
}

// AnyArity marks a builtin that accepts any number of arguments.
const AnyArity = -1

// Symbol is a single named binding: its kind, declaration span,
// function arity (meaningful only when Kind is Function or Builtin),
// and usage tracking flags.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Span    token.Span
	Arity   int // AnyArity for variadic builtins; -1 unused otherwise meaningful only for Function/Builtin
	Used    bool
	Called  bool // meaningful only for Function/Builtin
	Mutable bool

	// Type is stored as `any` here to avoid an import cycle with the
	// semantic package, which defines the concrete Type enum and casts
	// this back on lookup. Only semantic.Analyzer ever reads/writes it.
	Type any
}

// Scope is one lexical region: a flat symbol map plus a parent link
// for outward resolution and a list of children for visualization.
type Scope struct {
	Kind     Kind
	Parent   *Scope
	Children []*Scope
	symbols  map[string]*Symbol
	order    []string // declaration order, for deterministic iteration
}

// New creates a root scope (Parent nil, Kind Global).
func New() *Scope {
	return &Scope{Kind: Global, symbols: make(map[string]*Symbol)}
}

// Push creates and returns a new child scope of the given kind.
func (s *Scope) Push(kind Kind) *Scope {
	child := &Scope{Kind: kind, Parent: s, symbols: make(map[string]*Symbol)}
	s.Children = append(s.Children, child)
	return child
}

// Declare inserts sym into s. It fails (returns false) if a symbol
// with the same name already exists directly in s; shadowing a symbol
// in an ancestor scope is always allowed.
func (s *Scope) Declare(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return true
}

// ResolveLocal looks up name only in s, not its ancestors.
func (s *Scope) ResolveLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Resolve looks up name starting at s and walking outward through
// parents, returning the innermost match.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// MarkUsed flags the innermost symbol bound to name as used, if resolvable.
func (s *Scope) MarkUsed(name string) {
	if sym, ok := s.Resolve(name); ok {
		sym.Used = true
	}
}

// MarkCalled flags the innermost symbol bound to name as called, if resolvable.
func (s *Scope) MarkCalled(name string) {
	if sym, ok := s.Resolve(name); ok {
		sym.Called = true
		sym.Used = true
	}
}

// Symbols returns the scope's own symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	result := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.symbols[name])
	}
	return result
}

// Walk visits s and every descendant scope, depth-first, calling fn
// once per scope.
func (s *Scope) Walk(fn func(*Scope)) {
	fn(s)
	for _, child := range s.Children {
		child.Walk(fn)
	}
}
