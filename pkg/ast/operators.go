package ast

// Operator is the closed set of infix and prefix operators. The same values
// name the operator builtins, so `+` in `fold(0, +, xs)` and `a + b` resolve
// to one implementation.
type Operator string

const (
	OpAdd          Operator = "+"
	OpSubtract     Operator = "-"
	OpMultiply     Operator = "*"
	OpDivide       Operator = "/"
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpAnd          Operator = "&&"
	OpOr           Operator = "||"
)

// BinaryFunctionOperators lists the operators that double as two-argument builtins.
var BinaryFunctionOperators = []Operator{
	OpAdd, OpSubtract, OpMultiply, OpDivide,
	OpGreater, OpLess, OpGreaterEqual, OpLessEqual,
	OpEqual, OpNotEqual,
}

// LookupOperator maps an operator spelling to its enumerated value.
func LookupOperator(symbol string) (Operator, bool) {
	switch op := Operator(symbol); op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide,
		OpGreater, OpLess, OpGreaterEqual, OpLessEqual,
		OpEqual, OpNotEqual, OpAnd, OpOr:
		return op, true
	default:
		return "", false
	}
}

// ShortCircuits reports whether the right operand is evaluated lazily.
func (op Operator) ShortCircuits() bool {
	return op == OpAnd || op == OpOr
}
