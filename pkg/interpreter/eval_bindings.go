package interpreter

import (
	"fortio.org/log"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

// evaluateLet binds in the current frame. A function-literal initialiser is
// bound in two phases: a nil placeholder is defined first and overwritten in
// place once the closure exists, so the function can refer to itself.
func (i *Interpreter) evaluateLet(expr *ast.LetExpression, env *runtime.Environment) runtime.Value {
	name := expr.Name.Name
	if fnLit, ok := expr.Value.(*ast.FunctionLiteral); ok {
		env.Define(name, runtime.Nil, expr.Mutable)
		fn := i.evaluateExpression(fnLit, env)
		env.Replace(name, fn)
		log.LogVf("interpreter: bound recursive function %s", name)
		return fn
	}
	value := i.evaluateExpression(expr.Value, env)
	if runtime.IsError(value) {
		return value
	}
	env.Define(name, value, expr.Mutable)
	if log.LogVerbose() {
		log.LogVf("interpreter: bound %s = %s (mutable=%t)", name, runtime.Inspect(value), expr.Mutable)
	}
	return value
}

func (i *Interpreter) evaluateAssignment(expr *ast.AssignmentExpression, env *runtime.Environment) runtime.Value {
	value := i.evaluateExpression(expr.Value, env)
	if runtime.IsError(value) {
		return value
	}
	if err := env.Assign(expr.Name.Name, value); err != nil {
		return asErrorValue(err)
	}
	return value
}
