package semantic

import "fmt"

// Kind is the closed set of inferable types.
type Kind int

const (
	Unknown Kind = iota
	Number
	String
	Boolean
	Void
	FunctionType
)

// Type is a value type; Arity and Return are only meaningful when Kind
// is FunctionType.
type Type struct {
	Kind   Kind
	Arity  int // scope.AnyArity for variadic
	Return *Type
}

func (t Type) String() string {
	switch t.Kind {
	case Unknown:
		return "unknown"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Void:
		return "void"
	case FunctionType:
		ret := "unknown"
		if t.Return != nil {
			ret = t.Return.String()
		}
		return fmt.Sprintf("function(arity=%d)->%s", t.Arity, ret)
	default:
		return "?"
	}
}

var (
	TUnknown = Type{Kind: Unknown}
	TNumber  = Type{Kind: Number}
	TString  = Type{Kind: String}
	TBoolean = Type{Kind: Boolean}
	TVoid    = Type{Kind: Void}
)

// Func builds a Function type with the given arity and return type.
func Func(arity int, ret Type) Type {
	r := ret
	return Type{Kind: FunctionType, Arity: arity, Return: &r}
}

// IsUnknown reports whether t is the absorbing Unknown element.
func (t Type) IsUnknown() bool { return t.Kind == Unknown }

// Equal reports structural type equality. Unknown compares equal to
// Unknown like any other kind, so callers that suppress diagnostics on
// Unknown check IsUnknown before comparing.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind != FunctionType {
		return true
	}
	if t.Arity != other.Arity {
		return false
	}
	if t.Return == nil || other.Return == nil {
		return t.Return == other.Return
	}
	return t.Return.Equal(*other.Return)
}
