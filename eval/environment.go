package eval

// Environment is one scope of the chain. Scopes are only ever reached
// through pointers, so a function value and the block which created
// it can hold on to the same scope.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment returns a scope enclosed by outer; a nil outer makes
// a global scope.
func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// NewEnclosed pushes a new scope whose parent is e.
func (e *Environment) NewEnclosed() *Environment { return NewEnvironment(e) }

// Outer pops back to the parent scope. It is nil for the global scope.
func (e *Environment) Outer() *Environment { return e.outer }

// IsGlobal reports whether e is the root of its chain.
func (e *Environment) IsGlobal() bool { return e.outer == nil }

// Depth is the number of scopes in the chain, counting e itself.
func (e *Environment) Depth() int {
	n := 0
	for ; e != nil; e = e.outer {
		n++
	}
	return n
}

// Define binds the given name to the given value in this scope,
// shadowing any outer binding and replacing any existing one. A nil
// value declares the name without initialising it.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get gets the given name from the environment, traversing
// the outer environments if it is not found.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates the closest binding of name.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Capture returns the chain a function created in e closes over.
// Under Shared this is e itself. Under Snapshot every local scope is
// copied, so later changes to them are not seen by the function;
// the global scope is never copied.
func (e *Environment) Capture(policy ClosurePolicy) *Environment {
	if policy != Snapshot || e.IsGlobal() {
		return e
	}
	return e.snapshot()
}

func (e *Environment) snapshot() *Environment {
	if e.IsGlobal() {
		return e
	}
	env := NewEnvironment(e.outer.snapshot())
	for k, v := range e.store {
		env.store[k] = v
	}
	return env
}
