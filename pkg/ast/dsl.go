package ast

import "strconv"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(strconv.FormatInt(value, 10))
}

func Dec(raw string) *DecimalLiteral {
	return NewDecimalLiteral(raw)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Collection helpers.

func List(items ...Expression) *ListLiteral {
	return NewListLiteral(items)
}

func Set(items ...Expression) *SetLiteral {
	return NewSetLiteral(items)
}

func Dict(entries ...*DictEntry) *DictLiteral {
	return NewDictLiteral(entries)
}

func Entry(key, value Expression) *DictEntry {
	return &DictEntry{Key: key, Value: value}
}

func Index(target, index Expression) *IndexExpression {
	return NewIndexExpression(target, index)
}

// Binding helpers.

func Let(name string, value Expression) *LetExpression {
	return NewLetExpression(ID(name), value, false)
}

func LetMut(name string, value Expression) *LetExpression {
	return NewLetExpression(ID(name), value, true)
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), value)
}

// Operator helpers.

func Bin(op string, left, right Expression) *InfixExpression {
	return NewInfixExpression(Operator(op), left, right)
}

func Neg(operand Expression) *PrefixExpression {
	return NewPrefixExpression(OpSubtract, operand)
}

// Function helpers.

func Fn(params []string, body ...Statement) *FunctionLiteral {
	ids := make([]*Identifier, 0, len(params))
	for _, name := range params {
		ids = append(ids, ID(name))
	}
	return NewFunctionLiteral(ids, NewBlock(body))
}

func Call(callee Expression, args ...Expression) *CallExpression {
	if args == nil {
		args = []Expression{}
	}
	return NewCallExpression(callee, args)
}

func CallName(name string, args ...Expression) *CallExpression {
	return Call(ID(name), args...)
}

func Compose(functions ...Expression) *FunctionComposition {
	return NewFunctionComposition(functions)
}

func Thread(initial Expression, functions ...Expression) *FunctionThread {
	return NewFunctionThread(initial, functions)
}

func If(condition Expression, consequence, alternative *Block) *IfExpression {
	return NewIfExpression(condition, consequence, alternative)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
