package interpreter

import (
	"math"
	"strings"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

// applyOperator is the single implementation of every binary operator, shared
// by infix expressions and operator builtins such as `+` in `fold(0, +, xs)`.
func applyOperator(op ast.Operator, left, right runtime.Value) runtime.Value {
	switch op {
	case ast.OpEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}
	case ast.OpNotEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}
	case ast.OpAdd:
		return add(left, right)
	case ast.OpMultiply:
		if result, ok := repeatString(left, right); ok {
			return result
		}
		return arithmetic(op, left, right)
	case ast.OpSubtract, ast.OpDivide:
		return arithmetic(op, left, right)
	case ast.OpGreater, ast.OpLess, ast.OpGreaterEqual, ast.OpLessEqual:
		return compare(op, left, right)
	case ast.OpAnd:
		return runtime.BoolValue{Val: runtime.Truthy(left) && runtime.Truthy(right)}
	case ast.OpOr:
		return runtime.BoolValue{Val: runtime.Truthy(left) || runtime.Truthy(right)}
	default:
		return unsupported(left, op, right)
	}
}

func unsupported(left runtime.Value, op ast.Operator, right runtime.Value) *runtime.ErrorValue {
	return runtime.NewError("Unsupported operation: %s %s %s", runtime.TypeName(left), op, runtime.TypeName(right))
}

func add(left, right runtime.Value) runtime.Value {
	switch l := left.(type) {
	case runtime.IntegerValue, runtime.DecimalValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: runtime.Display(l) + r.Val}
		}
		return arithmetic(ast.OpAdd, left, right)
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}
		case runtime.IntegerValue, runtime.DecimalValue:
			return runtime.StringValue{Val: l.Val + runtime.Display(r)}
		}
	case *runtime.ListValue:
		if r, ok := right.(*runtime.ListValue); ok {
			return l.Concat(r)
		}
	case *runtime.SetValue:
		if r, ok := right.(*runtime.SetValue); ok {
			return l.Union(r)
		}
	case *runtime.DictValue:
		if r, ok := right.(*runtime.DictValue); ok {
			return l.Merge(r)
		}
	}
	return unsupported(left, ast.OpAdd, right)
}

// repeatString handles String * Integer in either operand order.
func repeatString(left, right runtime.Value) (runtime.Value, bool) {
	str, ok := left.(runtime.StringValue)
	count := right
	if !ok {
		if str, ok = right.(runtime.StringValue); !ok {
			return nil, false
		}
		count = left
	}
	switch n := count.(type) {
	case runtime.IntegerValue:
		if n.Val < 0 {
			return runtime.NewError("Unsupported operation: String * Integer (< 0)"), true
		}
		if n.Val > 0 && len(str.Val) > math.MaxInt/int(min(n.Val, math.MaxInt)) {
			return runtime.NewError("Unsupported operation: String * Integer (overflow)"), true
		}
		return runtime.StringValue{Val: strings.Repeat(str.Val, int(n.Val))}, true
	case runtime.DecimalValue:
		return runtime.NewError("Unsupported operation: String * Decimal"), true
	default:
		return nil, false
	}
}

func asDecimal(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return float64(n.Val), true
	case runtime.DecimalValue:
		return n.Val, true
	default:
		return 0, false
	}
}

// arithmetic applies + - * / with Integer-to-Decimal promotion on mixed
// operands. A Decimal result that leaves the finite range is an error.
func arithmetic(op ast.Operator, left, right runtime.Value) runtime.Value {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return integerArithmetic(op, l.Val, r.Val)
		}
	}
	l, lok := asDecimal(left)
	r, rok := asDecimal(right)
	if !lok || !rok {
		return unsupported(left, op, right)
	}
	var result float64
	switch op {
	case ast.OpAdd:
		result = l + r
	case ast.OpSubtract:
		result = l - r
	case ast.OpMultiply:
		result = l * r
	case ast.OpDivide:
		if r == 0 {
			return runtime.NewError("Division by zero")
		}
		result = l / r
	default:
		return unsupported(left, op, right)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return runtime.NewError("Unsupported operation: %s %s %s (overflow)", runtime.TypeName(left), op, runtime.TypeName(right))
	}
	return runtime.DecimalValue{Val: result}
}

// integerArithmetic wraps silently on overflow; division truncates toward zero.
func integerArithmetic(op ast.Operator, l, r int64) runtime.Value {
	switch op {
	case ast.OpAdd:
		return runtime.IntegerValue{Val: l + r}
	case ast.OpSubtract:
		return runtime.IntegerValue{Val: l - r}
	case ast.OpMultiply:
		return runtime.IntegerValue{Val: l * r}
	case ast.OpDivide:
		if r == 0 {
			return runtime.NewError("Division by zero")
		}
		return runtime.IntegerValue{Val: l / r}
	default:
		return unsupported(runtime.IntegerValue{Val: l}, op, runtime.IntegerValue{Val: r})
	}
}

func compare(op ast.Operator, left, right runtime.Value) runtime.Value {
	var cmp int
	l, lInt := left.(runtime.IntegerValue)
	r, rInt := right.(runtime.IntegerValue)
	if lInt && rInt {
		cmp = runtime.Compare(l, r)
	} else {
		lf, lok := asDecimal(left)
		rf, rok := asDecimal(right)
		if !lok || !rok {
			return unsupported(left, op, right)
		}
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		case lf != rf:
			return runtime.BoolValue{Val: false}
		}
	}
	switch op {
	case ast.OpGreater:
		return runtime.BoolValue{Val: cmp > 0}
	case ast.OpLess:
		return runtime.BoolValue{Val: cmp < 0}
	case ast.OpGreaterEqual:
		return runtime.BoolValue{Val: cmp >= 0}
	default:
		return runtime.BoolValue{Val: cmp <= 0}
	}
}

func negate(v runtime.Value) runtime.Value {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return runtime.IntegerValue{Val: -n.Val}
	case runtime.DecimalValue:
		return runtime.DecimalValue{Val: -n.Val}
	default:
		return runtime.NewError("Unsupported operation: -%s", runtime.TypeName(v))
	}
}
