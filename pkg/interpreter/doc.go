// Package interpreter evaluates elf programs by walking the AST produced by
// pkg/parser. Evaluation errors are values: every evaluation function returns
// a runtime.Value, and a *runtime.ErrorValue produced anywhere is passed
// upward unchanged until it reaches the program's top level.
package interpreter
