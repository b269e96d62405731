package interpreter

import (
	"strconv"
	"strings"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) runtime.Value {
	switch n := node.(type) {
	case nil:
		return runtime.Nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: parseIntegerLiteral(n.Raw)}
	case *ast.DecimalLiteral:
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Raw, "_", ""), 64)
		if err != nil {
			return runtime.NewError("Invalid decimal literal: %s", n.Raw)
		}
		return runtime.DecimalValue{Val: f}
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}
	case *ast.NilLiteral:
		return runtime.Nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n, env)
	case *ast.LetExpression:
		return i.evaluateLet(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.PrefixExpression:
		return i.evaluatePrefix(n, env)
	case *ast.InfixExpression:
		return i.evaluateInfix(n, env)
	case *ast.IfExpression:
		return i.evaluateIf(n, env)
	case *ast.ListLiteral:
		return i.evaluateListLiteral(n, env)
	case *ast.SetLiteral:
		return i.evaluateSetLiteral(n, env)
	case *ast.DictLiteral:
		return i.evaluateDictLiteral(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndex(n, env)
	case *ast.FunctionLiteral:
		return &runtime.FunctionValue{
			Parameters: parameterNames(n.Parameters),
			Body:       n.Body,
			Closure:    env,
		}
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.FunctionComposition:
		return i.evaluateComposition(n, env)
	case *ast.FunctionThread:
		return i.evaluateThread(n, env)
	default:
		return runtime.NewError("Unsupported expression: %s", node.NodeType())
	}
}

// parseIntegerLiteral drops digit separators and accumulates base-10 digits
// with int64 wraparound.
func parseIntegerLiteral(raw string) int64 {
	var v int64
	for idx := 0; idx < len(raw); idx++ {
		c := raw[idx]
		if c < '0' || c > '9' {
			continue
		}
		v = v*10 + int64(c-'0')
	}
	return v
}

func parameterNames(params []*ast.Identifier) []string {
	names := make([]string, 0, len(params))
	for _, param := range params {
		names = append(names, param.Name)
	}
	return names
}

// evaluateIdentifier resolves user bindings first, then the builtin table.
func (i *Interpreter) evaluateIdentifier(id *ast.Identifier, env *runtime.Environment) runtime.Value {
	if v, ok := env.Lookup(id.Name); ok {
		return v
	}
	if builtin, ok := builtins[id.Name]; ok {
		return builtin
	}
	return runtime.NewError("Identifier can not be found: %s", id.Name)
}

func (i *Interpreter) evaluatePrefix(expr *ast.PrefixExpression, env *runtime.Environment) runtime.Value {
	operand := i.evaluateExpression(expr.Operand, env)
	if runtime.IsError(operand) {
		return operand
	}
	return negate(operand)
}

func (i *Interpreter) evaluateInfix(expr *ast.InfixExpression, env *runtime.Environment) runtime.Value {
	left := i.evaluateExpression(expr.Left, env)
	if runtime.IsError(left) {
		return left
	}
	if expr.Operator.ShortCircuits() {
		leftTruthy := runtime.Truthy(left)
		if expr.Operator == ast.OpAnd && !leftTruthy {
			return runtime.BoolValue{Val: false}
		}
		if expr.Operator == ast.OpOr && leftTruthy {
			return runtime.BoolValue{Val: true}
		}
		right := i.evaluateExpression(expr.Right, env)
		if runtime.IsError(right) {
			return right
		}
		return runtime.BoolValue{Val: runtime.Truthy(right)}
	}
	right := i.evaluateExpression(expr.Right, env)
	if runtime.IsError(right) {
		return right
	}
	return applyOperator(expr.Operator, left, right)
}

// evaluateIf runs the chosen branch in the current frame. A false condition
// without an else branch yields nil.
func (i *Interpreter) evaluateIf(expr *ast.IfExpression, env *runtime.Environment) runtime.Value {
	condition := i.evaluateExpression(expr.Condition, env)
	if runtime.IsError(condition) {
		return condition
	}
	if runtime.Truthy(condition) {
		return i.evaluateBlock(expr.Consequence, env)
	}
	if expr.Alternative == nil {
		return runtime.Nil
	}
	return i.evaluateBlock(expr.Alternative, env)
}

func (i *Interpreter) evaluateIndex(expr *ast.IndexExpression, env *runtime.Environment) runtime.Value {
	target := i.evaluateExpression(expr.Target, env)
	if runtime.IsError(target) {
		return target
	}
	index := i.evaluateExpression(expr.Index, env)
	if runtime.IsError(index) {
		return index
	}
	return indexValue(target, index)
}

func indexValue(target, index runtime.Value) runtime.Value {
	switch t := target.(type) {
	case *runtime.ListValue:
		pos, ok := index.(runtime.IntegerValue)
		if !ok {
			return runtime.NewError("Unable to perform index operation, found: List[%s]", runtime.TypeName(index))
		}
		if idx, ok := wrapIndex(pos.Val, len(t.Elements)); ok {
			return t.Elements[idx]
		}
		return runtime.Nil
	case runtime.StringValue:
		pos, ok := index.(runtime.IntegerValue)
		if !ok {
			return runtime.NewError("Unable to perform index operation, found: String[%s]", runtime.TypeName(index))
		}
		chars := []rune(t.Val)
		if idx, ok := wrapIndex(pos.Val, len(chars)); ok {
			return runtime.StringValue{Val: string(chars[idx])}
		}
		return runtime.Nil
	case *runtime.DictValue:
		if index.Kind() == runtime.KindDict {
			return runtime.NewError("Unable to use a Dictionary as a Dictionary key")
		}
		if v, ok := t.Lookup(index); ok {
			return v
		}
		return runtime.Nil
	default:
		return runtime.NewError("Unable to perform index operation, found: %s[%s]", runtime.TypeName(target), runtime.TypeName(index))
	}
}

// wrapIndex maps negative positions from the end; ok is false when out of range.
func wrapIndex(pos int64, length int) (int, bool) {
	if pos < 0 {
		pos += int64(length)
	}
	if pos < 0 || pos >= int64(length) {
		return 0, false
	}
	return int(pos), true
}
