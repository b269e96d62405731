package interpreter

import (
	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

// evaluateExpressions evaluates left to right and stops at the first error.
func (i *Interpreter) evaluateExpressions(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, *runtime.ErrorValue) {
	values := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		v := i.evaluateExpression(expr, env)
		if errVal, ok := v.(*runtime.ErrorValue); ok {
			return nil, errVal
		}
		values = append(values, v)
	}
	return values, nil
}

func (i *Interpreter) evaluateListLiteral(lit *ast.ListLiteral, env *runtime.Environment) runtime.Value {
	items, errVal := i.evaluateExpressions(lit.Items, env)
	if errVal != nil {
		return errVal
	}
	return runtime.NewList(items)
}

func (i *Interpreter) evaluateSetLiteral(lit *ast.SetLiteral, env *runtime.Environment) runtime.Value {
	items, errVal := i.evaluateExpressions(lit.Items, env)
	if errVal != nil {
		return errVal
	}
	set, errVal := runtime.NewSet(items)
	if errVal != nil {
		return errVal
	}
	return set
}

func (i *Interpreter) evaluateDictLiteral(lit *ast.DictLiteral, env *runtime.Environment) runtime.Value {
	entries := make([]runtime.DictEntry, 0, len(lit.Entries))
	for _, entry := range lit.Entries {
		key := i.evaluateExpression(entry.Key, env)
		if runtime.IsError(key) {
			return key
		}
		value := i.evaluateExpression(entry.Value, env)
		if runtime.IsError(value) {
			return value
		}
		entries = append(entries, runtime.DictEntry{Key: key, Value: value})
	}
	dict, errVal := runtime.NewDict(entries)
	if errVal != nil {
		return errVal
	}
	return dict
}
