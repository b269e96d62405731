package interpreter

import (
	"fortio.org/log"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCall(call *ast.CallExpression, env *runtime.Environment) runtime.Value {
	callee := i.evaluateExpression(call.Callee, env)
	if runtime.IsError(callee) {
		return callee
	}
	args, errVal := i.evaluateExpressions(call.Arguments, env)
	if errVal != nil {
		return errVal
	}
	return i.CallFunction(callee, args)
}

// CallFunction applies a callable to arguments. Too few arguments yield a
// partial application; too many are an error.
func (i *Interpreter) CallFunction(fn runtime.Value, args []runtime.Value) runtime.Value {
	switch f := fn.(type) {
	case *runtime.PartialFunctionValue:
		combined := make([]runtime.Value, 0, len(f.BoundArgs)+len(args))
		combined = append(combined, f.BoundArgs...)
		combined = append(combined, args...)
		return i.CallFunction(f.Target, combined)
	case *runtime.FunctionValue:
		expected := len(f.Parameters)
		if len(args) < expected {
			return &runtime.PartialFunctionValue{Target: f, BoundArgs: args}
		}
		if len(args) > expected {
			return arityError(expected, len(args))
		}
		frame := runtime.NewEnvironment(f.Closure)
		for idx, name := range f.Parameters {
			frame.Define(name, args[idx], false)
		}
		log.LogVf("interpreter: call |%d params| with %d args", expected, len(args))
		return i.evaluateBlock(f.Body, frame)
	case *runtime.BuiltinFunctionValue:
		if f.Arity == runtime.VariadicArity {
			return f.Impl(i, args)
		}
		if len(args) < f.Arity {
			return &runtime.PartialFunctionValue{Target: f, BoundArgs: args}
		}
		if len(args) > f.Arity {
			return arityError(f.Arity, len(args))
		}
		log.LogVf("interpreter: call builtin %s", f.Name)
		return f.Impl(i, args)
	case *runtime.ErrorValue:
		return f
	default:
		return runtime.NewError("Expected a Function, found: %s", runtime.TypeName(fn))
	}
}

// evaluateComposition builds a one-parameter closure over the current frame
// whose body feeds its argument through the composed expressions in order.
func (i *Interpreter) evaluateComposition(comp *ast.FunctionComposition, env *runtime.Environment) runtime.Value {
	var body ast.Expression = ast.NewIdentifier(runtime.ComposedParameter)
	for _, fn := range comp.Functions {
		body = ast.NewCallExpression(fn, []ast.Expression{body})
	}
	log.LogVf("interpreter: composed %d functions", len(comp.Functions))
	return &runtime.FunctionValue{
		Parameters: []string{runtime.ComposedParameter},
		Body:       ast.NewBlock([]ast.Statement{ast.NewExpressionStatement(body)}),
		Closure:    env,
	}
}

// evaluateThread threads the initial value through each step. A call step
// receives the threaded value after its own arguments.
func (i *Interpreter) evaluateThread(thread *ast.FunctionThread, env *runtime.Environment) runtime.Value {
	value := i.evaluateExpression(thread.Initial, env)
	if runtime.IsError(value) {
		return value
	}
	for _, step := range thread.Functions {
		if call, ok := step.(*ast.CallExpression); ok {
			callee := i.evaluateExpression(call.Callee, env)
			if runtime.IsError(callee) {
				return callee
			}
			args, errVal := i.evaluateExpressions(call.Arguments, env)
			if errVal != nil {
				return errVal
			}
			value = i.CallFunction(callee, append(args, value))
		} else {
			fn := i.evaluateExpression(step, env)
			if runtime.IsError(fn) {
				return fn
			}
			value = i.CallFunction(fn, []runtime.Value{value})
		}
		if runtime.IsError(value) {
			return value
		}
	}
	return value
}
