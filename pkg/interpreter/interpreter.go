package interpreter

import (
	"io"
	"os"

	"fortio.org/log"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/parser"
	"elf/interpreter-go/pkg/runtime"
)

// Interpreter holds the global frame for one run. It is not safe for
// concurrent use; independent runs use independent interpreters.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// New returns an interpreter whose `puts` writes to standard output.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput returns an interpreter whose `puts` writes to w.
func NewWithOutput(w io.Writer) *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    w,
	}
}

// GlobalEnvironment returns the interpreter's global frame.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Output is where `puts` writes.
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// EvaluateProgram runs every statement in the global frame and returns the
// value of the last non-comment statement. An evaluation error is returned
// as a *runtime.ErrorValue.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return runtime.Nil, nil
	}
	result := i.evaluateStatements(program.Statements, i.global)
	if errVal, ok := result.(*runtime.ErrorValue); ok {
		log.LogVf("interpreter: program failed: %s", errVal.Message)
		return nil, errVal
	}
	return result, nil
}

// EvaluateSource parses src and evaluates it against the global frame, so
// bindings persist across calls.
func (i *Interpreter) EvaluateSource(src string) (runtime.Value, error) {
	program, err := parser.ParseSource(src)
	if err != nil {
		return nil, err
	}
	return i.EvaluateProgram(program)
}

// Evaluate evaluates a single node in env. Errors come back as
// *runtime.ErrorValue results.
func (i *Interpreter) Evaluate(node ast.Node, env *runtime.Environment) runtime.Value {
	switch n := node.(type) {
	case *ast.Program:
		return i.evaluateStatements(n.Statements, env)
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case ast.Statement:
		return i.evaluateStatement(n, env)
	case ast.Expression:
		return i.evaluateExpression(n, env)
	default:
		return runtime.Nil
	}
}

// RenderResult formats a program outcome the way the run command prints it:
// the final value followed by a space and newline, or a single [Error] line.
func RenderResult(value runtime.Value, err error) string {
	if err != nil {
		return "[Error] " + err.Error() + "\n"
	}
	if value == nil {
		value = runtime.Nil
	}
	return runtime.Inspect(value) + " \n"
}

// Run evaluates program in a fresh interpreter and prints its result to
// stdout. The evaluation error, if any, is returned after being printed.
func Run(program *ast.Program, stdout io.Writer) error {
	value, err := NewWithOutput(stdout).EvaluateProgram(program)
	if _, werr := io.WriteString(stdout, RenderResult(value, err)); werr != nil && err == nil {
		return werr
	}
	return err
}
