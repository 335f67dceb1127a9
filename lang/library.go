package lang

import "sort"

// Function describes a built-in callable: its parameter types, result
// type and the Java expression it is emitted as.
type Function struct {
	Name   string
	Java   string
	Params []Type
	Result Type
}

// Arity returns the number of parameters.
func (f Function) Arity() int {
	return len(f.Params)
}

// Library is a closed table of built-in functions keyed by name.
type Library struct {
	funcs map[string]Function
}

// NewLibrary builds a library from the given functions. Later entries
// replace earlier ones with the same name.
func NewLibrary(funcs ...Function) *Library {
	lib := &Library{funcs: make(map[string]Function, len(funcs))}
	for _, fn := range funcs {
		lib.funcs[fn.Name] = fn
	}
	return lib
}

// StandardLibrary returns the built-ins available to every program.
func StandardLibrary() *Library {
	return NewLibrary(
		Function{
			Name:   "PRINT",
			Java:   "System.out.println",
			Params: []Type{Any},
			Result: Void,
		},
	)
}

// Lookup finds a function by name.
func (l *Library) Lookup(name string) (Function, bool) {
	fn, ok := l.funcs[name]
	return fn, ok
}

// Names lists the functions in the library, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
