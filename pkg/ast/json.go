package ast

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders the program as the debug tree printed by `elf ast`.
// Object keys are emitted in alphabetical order.
func (p *Program) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return JSON(p, "")
}

// Tree converts a node into generic JSON-ready values.
func Tree(node Node) any {
	switch n := node.(type) {
	case nil:
		return nil
	case *Program:
		return object(n, "statements", statementTrees(n.Statements))
	case *Block:
		if n == nil {
			return nil
		}
		return object(n, "statements", statementTrees(n.Statements))
	case *ExpressionStatement:
		return object(n, "value", Tree(n.Expression))
	case *Comment:
		return object(n, "value", n.Text)
	case *Identifier:
		return object(n, "name", n.Name)
	case *IntegerLiteral:
		return object(n, "value", n.Raw)
	case *DecimalLiteral:
		return object(n, "value", n.Raw)
	case *StringLiteral:
		return object(n, "value", n.Value)
	case *BooleanLiteral:
		return object(n, "value", n.Value)
	case *NilLiteral:
		return object(n)
	case *LetExpression:
		return object(n, "name", Tree(n.Name), "value", Tree(n.Value))
	case *AssignmentExpression:
		return object(n, "name", Tree(n.Name), "value", Tree(n.Value))
	case *InfixExpression:
		return object(n, "left", Tree(n.Left), "operator", string(n.Operator), "right", Tree(n.Right))
	case *PrefixExpression:
		return object(n, "operand", Tree(n.Operand), "operator", string(n.Operator))
	case *ListLiteral:
		return object(n, "items", expressionTrees(n.Items))
	case *SetLiteral:
		return object(n, "items", expressionTrees(n.Items))
	case *DictLiteral:
		items := make([]any, 0, len(n.Entries))
		for _, entry := range n.Entries {
			items = append(items, map[string]any{"key": Tree(entry.Key), "value": Tree(entry.Value)})
		}
		return object(n, "items", items)
	case *IndexExpression:
		return object(n, "index", Tree(n.Index), "left", Tree(n.Target))
	case *IfExpression:
		var alternative any
		if n.Alternative != nil {
			alternative = Tree(n.Alternative)
		}
		return object(n, "alternative", alternative, "condition", Tree(n.Condition), "consequence", Tree(n.Consequence))
	case *FunctionLiteral:
		params := make([]any, 0, len(n.Parameters))
		for _, param := range n.Parameters {
			params = append(params, Tree(param))
		}
		return object(n, "body", Tree(n.Body), "parameters", params)
	case *CallExpression:
		return object(n, "arguments", expressionTrees(n.Arguments), "function", Tree(n.Callee))
	case *FunctionComposition:
		return object(n, "functions", expressionTrees(n.Functions))
	case *FunctionThread:
		return object(n, "functions", expressionTrees(n.Functions), "initial", Tree(n.Initial))
	default:
		return map[string]any{"type": string(node.NodeType())}
	}
}

func object(node Node, pairs ...any) map[string]any {
	out := make(map[string]any, len(pairs)/2+1)
	out["type"] = string(node.NodeType())
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = pairs[i+1]
	}
	return out
}

func statementTrees(statements []Statement) []any {
	out := make([]any, 0, len(statements))
	for _, stmt := range statements {
		out = append(out, Tree(stmt))
	}
	return out
}

func expressionTrees(exprs []Expression) []any {
	out := make([]any, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, Tree(expr))
	}
	return out
}

// JSON renders any node as debug JSON without HTML escaping, so operators
// such as `>` stay readable. A non-empty indent pretty-prints.
func JSON(node Node, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(Tree(node)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
