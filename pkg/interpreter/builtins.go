package interpreter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/runtime"
)

// builtins is the static table consulted after the frame chain misses. It is
// built once and shared by every interpreter.
var builtins = newBuiltinTable()

func newBuiltinTable() map[string]*runtime.BuiltinFunctionValue {
	table := map[string]*runtime.BuiltinFunctionValue{}
	register := func(name string, arity int, impl runtime.NativeFunc) {
		table[name] = &runtime.BuiltinFunctionValue{Name: name, Arity: arity, Impl: impl}
	}

	register("map", 2, builtinMap)
	register("filter", 2, builtinFilter)
	register("fold", 3, builtinFold)
	register("size", 1, builtinSize)
	register("push", 2, builtinPush)
	register("first", 1, builtinFirst)
	register("rest", 1, builtinRest)
	register("assoc", 3, builtinAssoc)
	register("puts", runtime.VariadicArity, builtinPuts)

	for _, op := range ast.BinaryFunctionOperators {
		register(string(op), 2, func(_ runtime.Caller, args []runtime.Value) runtime.Value {
			return applyOperator(op, args[0], args[1])
		})
	}
	return table
}

// BuiltinNames lists the builtin table's entries in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinMap(caller runtime.Caller, args []runtime.Value) runtime.Value {
	fn, list := args[0], args[1]
	elements, ok := list.(*runtime.ListValue)
	if !runtime.IsCallable(fn) || !ok {
		return unexpectedArgument("map", fn, list)
	}
	out := make([]runtime.Value, 0, len(elements.Elements))
	for _, elem := range elements.Elements {
		mapped := caller.CallFunction(fn, []runtime.Value{elem})
		if runtime.IsError(mapped) {
			return mapped
		}
		out = append(out, mapped)
	}
	return runtime.NewList(out)
}

func builtinFilter(caller runtime.Caller, args []runtime.Value) runtime.Value {
	fn, list := args[0], args[1]
	elements, ok := list.(*runtime.ListValue)
	if !runtime.IsCallable(fn) || !ok {
		return unexpectedArgument("filter", fn, list)
	}
	out := make([]runtime.Value, 0, len(elements.Elements))
	for _, elem := range elements.Elements {
		keep := caller.CallFunction(fn, []runtime.Value{elem})
		if runtime.IsError(keep) {
			return keep
		}
		if runtime.Truthy(keep) {
			out = append(out, elem)
		}
	}
	return runtime.NewList(out)
}

func builtinFold(caller runtime.Caller, args []runtime.Value) runtime.Value {
	acc, fn, list := args[0], args[1], args[2]
	elements, ok := list.(*runtime.ListValue)
	if !runtime.IsCallable(fn) || !ok {
		return unexpectedArgument("fold", acc, fn, list)
	}
	for _, elem := range elements.Elements {
		acc = caller.CallFunction(fn, []runtime.Value{acc, elem})
		if runtime.IsError(acc) {
			return acc
		}
	}
	return acc
}

func builtinSize(_ runtime.Caller, args []runtime.Value) runtime.Value {
	switch coll := args[0].(type) {
	case *runtime.ListValue:
		return runtime.IntegerValue{Val: int64(len(coll.Elements))}
	case *runtime.SetValue:
		return runtime.IntegerValue{Val: int64(len(coll.Elements))}
	case *runtime.DictValue:
		return runtime.IntegerValue{Val: int64(len(coll.Entries))}
	case runtime.StringValue:
		return runtime.IntegerValue{Val: int64(len([]rune(coll.Val)))}
	default:
		return unexpectedArgument("size", args[0])
	}
}

func builtinPush(_ runtime.Caller, args []runtime.Value) runtime.Value {
	elem := args[0]
	switch coll := args[1].(type) {
	case *runtime.ListValue:
		return coll.Append(elem)
	case *runtime.SetValue:
		set, errVal := coll.With(elem)
		if errVal != nil {
			return errVal
		}
		return set
	default:
		return unexpectedArgument("push", elem, args[1])
	}
}

func builtinFirst(_ runtime.Caller, args []runtime.Value) runtime.Value {
	switch coll := args[0].(type) {
	case *runtime.ListValue:
		if len(coll.Elements) == 0 {
			return runtime.Nil
		}
		return coll.Elements[0]
	case *runtime.SetValue:
		if len(coll.Elements) == 0 {
			return runtime.Nil
		}
		return coll.Elements[0]
	case runtime.StringValue:
		for _, r := range coll.Val {
			return runtime.StringValue{Val: string(r)}
		}
		return runtime.Nil
	default:
		return unexpectedArgument("first", args[0])
	}
}

func builtinRest(_ runtime.Caller, args []runtime.Value) runtime.Value {
	switch coll := args[0].(type) {
	case *runtime.ListValue:
		if len(coll.Elements) == 0 {
			return runtime.NewList(nil)
		}
		out := make([]runtime.Value, len(coll.Elements)-1)
		copy(out, coll.Elements[1:])
		return runtime.NewList(out)
	case *runtime.SetValue:
		if len(coll.Elements) == 0 {
			return coll
		}
		out := make([]runtime.Value, len(coll.Elements)-1)
		copy(out, coll.Elements[1:])
		return &runtime.SetValue{Elements: out}
	case runtime.StringValue:
		chars := []rune(coll.Val)
		if len(chars) == 0 {
			return coll
		}
		return runtime.StringValue{Val: string(chars[1:])}
	default:
		return unexpectedArgument("rest", args[0])
	}
}

func builtinAssoc(_ runtime.Caller, args []runtime.Value) runtime.Value {
	key, value := args[0], args[1]
	dict, ok := args[2].(*runtime.DictValue)
	if !ok {
		return unexpectedArgument("assoc", key, value, args[2])
	}
	updated, errVal := dict.With(key, value)
	if errVal != nil {
		return errVal
	}
	return updated
}

// builtinPuts writes each argument's rendering followed by a space, then a
// newline.
func builtinPuts(caller runtime.Caller, args []runtime.Value) runtime.Value {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(runtime.Inspect(arg))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	if out, ok := caller.(interface{ Output() io.Writer }); ok && out.Output() != nil {
		fmt.Fprint(out.Output(), b.String())
	}
	return runtime.Nil
}
