// Package lang holds the semantic model shared by the analyzer and the
// generator: the closed set of types, scopes and the standard library.
package lang

// Type enumerates the semantic types of the language. Types are compared
// by value; there are no composite or user-defined types.
type Type int

const (
	Invalid Type = iota
	Boolean
	Integer
	Decimal
	String
	Void
	Any
)

var typeNames = [...]struct {
	name string // spelling in source programs
	java string // spelling in generated Java
}{
	Invalid: {"INVALID", ""},
	Boolean: {"BOOLEAN", "boolean"},
	Integer: {"INTEGER", "int"},
	Decimal: {"DECIMAL", "double"},
	String:  {"STRING", "String"},
	Void:    {"VOID", "void"},
	Any:     {"ANY", "Object"},
}

// Name returns the source-language name of the type.
func (t Type) Name() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Invalid].name
	}
	return typeNames[t].name
}

// Java returns the spelling of the type in generated Java source.
func (t Type) Java() string {
	if t < 0 || int(t) >= len(typeNames) {
		return ""
	}
	return typeNames[t].java
}

func (t Type) String() string {
	return t.Name()
}

// IsNumeric reports whether arithmetic operators accept the type.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Decimal
}

// LookupType resolves a source-language type name.
func LookupType(name string) (Type, bool) {
	for t := Boolean; t <= Any; t++ {
		if typeNames[t].name == name {
			return t, true
		}
	}
	return Invalid, false
}

// Assignable reports whether a value of type source may be stored into
// storage declared as target: identical types, INTEGER widening to
// DECIMAL, and any non-VOID type into ANY.
func Assignable(source, target Type) bool {
	switch {
	case source == Invalid || target == Invalid:
		return false
	case source == target:
		return true
	case source == Integer && target == Decimal:
		return true
	case target == Any && source != Void:
		return true
	}
	return false
}
