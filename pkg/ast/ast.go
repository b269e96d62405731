package ast

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeExpressionStatement NodeType = "Expression"
	NodeComment             NodeType = "Comment"
	NodeBlock               NodeType = "Block"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "Integer"
	NodeDecimalLiteral      NodeType = "Decimal"
	NodeStringLiteral       NodeType = "String"
	NodeBooleanLiteral      NodeType = "Boolean"
	NodeNilLiteral          NodeType = "Nil"
	NodeLet                 NodeType = "Let"
	NodeMutableLet          NodeType = "MutableLet"
	NodeAssignment          NodeType = "Assignment"
	NodeInfix               NodeType = "Infix"
	NodePrefix              NodeType = "Prefix"
	NodeListLiteral         NodeType = "List"
	NodeSetLiteral          NodeType = "Set"
	NodeDictLiteral         NodeType = "Dictionary"
	NodeIndex               NodeType = "Index"
	NodeIf                  NodeType = "If"
	NodeFunctionLiteral     NodeType = "Function"
	NodeCall                NodeType = "Call"
	NodeFunctionComposition NodeType = "FunctionComposition"
	NodeFunctionThread      NodeType = "FunctionThread"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program and statements

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// ExpressionStatement wraps an expression evaluated for its value.
type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"value"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// Comment keeps the raw `//` text; it evaluates to nothing.
type Comment struct {
	nodeImpl
	statementMarker

	Text string `json:"value"`
}

func NewComment(text string) *Comment {
	return &Comment{nodeImpl: newNodeImpl(NodeComment), Text: text}
}

type Block struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

// IntegerLiteral keeps the source digits, underscores included.
type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Raw string `json:"value"`
}

func NewIntegerLiteral(raw string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Raw: raw}
}

type DecimalLiteral struct {
	nodeImpl
	expressionMarker

	Raw string `json:"value"`
}

func NewDecimalLiteral(raw string) *DecimalLiteral {
	return &DecimalLiteral{nodeImpl: newNodeImpl(NodeDecimalLiteral), Raw: raw}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Bindings

type LetExpression struct {
	nodeImpl
	expressionMarker

	Name    *Identifier `json:"name"`
	Value   Expression  `json:"value"`
	Mutable bool        `json:"-"`
}

func NewLetExpression(name *Identifier, value Expression, mutable bool) *LetExpression {
	kind := NodeLet
	if mutable {
		kind = NodeMutableLet
	}
	return &LetExpression{nodeImpl: newNodeImpl(kind), Name: name, Value: value, Mutable: mutable}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewAssignmentExpression(name *Identifier, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

// Operators

type InfixExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator   `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewInfixExpression(operator Operator, left, right Expression) *InfixExpression {
	return &InfixExpression{nodeImpl: newNodeImpl(NodeInfix), Operator: operator, Left: left, Right: right}
}

type PrefixExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator   `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewPrefixExpression(operator Operator, operand Expression) *PrefixExpression {
	return &PrefixExpression{nodeImpl: newNodeImpl(NodePrefix), Operator: operator, Operand: operand}
}

// Collections

type ListLiteral struct {
	nodeImpl
	expressionMarker

	Items []Expression `json:"items"`
}

func NewListLiteral(items []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Items: items}
}

type SetLiteral struct {
	nodeImpl
	expressionMarker

	Items []Expression `json:"items"`
}

func NewSetLiteral(items []Expression) *SetLiteral {
	return &SetLiteral{nodeImpl: newNodeImpl(NodeSetLiteral), Items: items}
}

type DictEntry struct {
	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

type DictLiteral struct {
	nodeImpl
	expressionMarker

	Entries []*DictEntry `json:"items"`
}

func NewDictLiteral(entries []*DictEntry) *DictLiteral {
	return &DictLiteral{nodeImpl: newNodeImpl(NodeDictLiteral), Entries: entries}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Target Expression `json:"left"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(target, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndex), Target: target, Index: index}
}

// Control flow and functions

// IfExpression has a nil Alternative when no else branch was written.
type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition   Expression `json:"condition"`
	Consequence *Block     `json:"consequence"`
	Alternative *Block     `json:"alternative"`
}

func NewIfExpression(condition Expression, consequence, alternative *Block) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Consequence: consequence, Alternative: alternative}
}

type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Parameters []*Identifier `json:"parameters"`
	Body       *Block        `json:"body"`
}

func NewFunctionLiteral(parameters []*Identifier, body *Block) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Parameters: parameters, Body: body}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"function"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

// FunctionComposition holds `f >> g >> h` flattened into application order.
type FunctionComposition struct {
	nodeImpl
	expressionMarker

	Functions []Expression `json:"functions"`
}

func NewFunctionComposition(functions []Expression) *FunctionComposition {
	return &FunctionComposition{nodeImpl: newNodeImpl(NodeFunctionComposition), Functions: functions}
}

// FunctionThread holds `x |> f |> g`. Call steps receive the threaded value
// as a trailing argument.
type FunctionThread struct {
	nodeImpl
	expressionMarker

	Initial   Expression   `json:"initial"`
	Functions []Expression `json:"functions"`
}

func NewFunctionThread(initial Expression, functions []Expression) *FunctionThread {
	return &FunctionThread{nodeImpl: newNodeImpl(NodeFunctionThread), Initial: initial, Functions: functions}
}
