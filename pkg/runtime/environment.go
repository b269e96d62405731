package runtime

import "sort"

type binding struct {
	value   Value
	mutable bool
}

// Environment is one frame of lexical bindings. Frames are shared by
// reference between closures and live as long as anything refers to them.
// Evaluation is single-threaded, so frames carry no locks.
type Environment struct {
	values map[string]*binding
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]*binding),
		parent: parent,
	}
}

// Define inserts or shadows a binding in the current frame.
func (e *Environment) Define(name string, value Value, mutable bool) {
	e.values[name] = &binding{value: value, mutable: mutable}
}

// Replace overwrites the value of a binding in the current frame in place,
// keeping its mutability. It is used to tie recursive closures to their own name.
func (e *Environment) Replace(name string, value Value) bool {
	b, ok := e.values[name]
	if !ok {
		return false
	}
	b.value = value
	return true
}

func (e *Environment) lookup(name string) (*binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Lookup retrieves a binding, searching outward through the frame chain.
func (e *Environment) Lookup(name string) (Value, bool) {
	b, ok := e.lookup(name)
	if !ok {
		return nil, false
	}
	return b.value, true
}

// Get is Lookup with the language's missing-identifier error.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return nil, NewError("Identifier can not be found: %s", name)
}

// Assign updates the nearest binding for name. Only mutable bindings may change.
func (e *Environment) Assign(name string, value Value) error {
	b, ok := e.lookup(name)
	if !ok {
		return NewError("Identifier can not be found: %s", name)
	}
	if !b.mutable {
		return NewError("Variable '%s' is not mutable", name)
	}
	b.value = value
	return nil
}

// Has reports whether the binding exists anywhere in the frame chain.
func (e *Environment) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

// Keys returns the current frame's bindings in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
