package interpreter

import (
	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

// evaluateBlock runs a block in the frame it is given. Only function calls
// create frames.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) runtime.Value {
	if block == nil {
		return runtime.Nil
	}
	return i.evaluateStatements(block.Statements, env)
}

func (i *Interpreter) evaluateStatements(statements []ast.Statement, env *runtime.Environment) runtime.Value {
	var result runtime.Value = runtime.Nil
	for _, stmt := range statements {
		if _, ok := stmt.(*ast.Comment); ok {
			continue
		}
		result = i.evaluateStatement(stmt, env)
		if runtime.IsError(result) {
			return result
		}
	}
	return result
}

func (i *Interpreter) evaluateStatement(stmt ast.Statement, env *runtime.Environment) runtime.Value {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateExpression(s.Expression, env)
	default:
		return runtime.Nil
	}
}
