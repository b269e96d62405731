package runtime

import (
	"fmt"

	"elf/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindString
	KindBoolean
	KindNil
	KindList
	KindSet
	KindDict
	KindFunction
	KindBuiltinFunction
	KindPartialFunction
	KindError
)

// String returns the language-level type name used in error messages.
// All callable kinds report as Function.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindNil:
		return "Nil"
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	case KindDict:
		return "Dictionary"
	case KindFunction, KindBuiltinFunction, KindPartialFunction:
		return "Function"
	case KindError:
		return "Error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// TypeName reports the language-level type of v.
func TypeName(v Value) string {
	if v == nil {
		return KindNil.String()
	}
	return v.Kind().String()
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type DecimalValue struct {
	Val float64
}

func (v DecimalValue) Kind() Kind { return KindDecimal }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBoolean }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// Nil is the shared nil value.
var Nil Value = NilValue{}

//-----------------------------------------------------------------------------
// Errors
//-----------------------------------------------------------------------------

// ErrorValue is a first-class evaluation failure. It short-circuits every
// enclosing expression up to the program's top level.
type ErrorValue struct {
	Message string
}

func (v *ErrorValue) Kind() Kind { return KindError }

func (v *ErrorValue) Error() string { return v.Message }

// NewError builds an ErrorValue from a format string.
func NewError(format string, args ...any) *ErrorValue {
	return &ErrorValue{Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is an evaluation error.
func IsError(v Value) bool {
	_, ok := v.(*ErrorValue)
	return ok
}

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

// ListValue is an ordered sequence. Elements must not be mutated once the
// list is shared.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

// SetValue holds unique elements kept in canonical order.
type SetValue struct {
	Elements []Value
}

func (v *SetValue) Kind() Kind { return KindSet }

type DictEntry struct {
	Key   Value
	Value Value
}

// DictValue holds unique keys kept in canonical order.
type DictValue struct {
	Entries []DictEntry
}

func (v *DictValue) Kind() Kind { return KindDict }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// ComposedParameter names the hidden parameter of a composed closure. It
// cannot be written as an identifier in source, so it never shadows a name
// used by the composed expressions.
const ComposedParameter = "%composed"

// FunctionValue is a user closure over the environment it was created in.
type FunctionValue struct {
	Parameters []string
	Body       *ast.Block
	Closure    *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// Caller lets native functions apply callables handed to them.
type Caller interface {
	CallFunction(fn Value, args []Value) Value
}

// NativeFunc implements a builtin. args always has exactly Arity entries
// unless the builtin is variadic.
type NativeFunc func(caller Caller, args []Value) Value

// VariadicArity marks builtins that accept any number of arguments and are
// never curried.
const VariadicArity = -1

type BuiltinFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v *BuiltinFunctionValue) Kind() Kind { return KindBuiltinFunction }

// PartialFunctionValue is a callable awaiting the rest of its arguments.
type PartialFunctionValue struct {
	Target    Value
	BoundArgs []Value
}

func (v *PartialFunctionValue) Kind() Kind { return KindPartialFunction }

// IsCallable reports whether v can be applied to arguments.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *FunctionValue, *BuiltinFunctionValue, *PartialFunctionValue:
		return true
	default:
		return false
	}
}

// Arity reports how many arguments a callable still needs.
func Arity(v Value) int {
	switch fn := v.(type) {
	case *FunctionValue:
		return len(fn.Parameters)
	case *BuiltinFunctionValue:
		return fn.Arity
	case *PartialFunctionValue:
		total := Arity(fn.Target)
		if total == VariadicArity {
			return VariadicArity
		}
		return total - len(fn.BoundArgs)
	default:
		return 0
	}
}

// Truthy applies the language's truthiness rules.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	case IntegerValue:
		return val.Val != 0
	case DecimalValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	default:
		return true
	}
}
