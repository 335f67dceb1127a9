package lang

import (
	"fmt"
	"sort"
)

// scopeArena stores every frame of a scope chain. Frames refer to their
// parent by index.
type scopeArena struct {
	frames []frame
}

type frame struct {
	parent int // index of the enclosing frame, -1 for a root
	names  map[string]Type
}

// Scope is a handle to one frame of a scope chain. It maps names to
// their declared types; a name is defined at most once per frame.
type Scope struct {
	arena *scopeArena
	index int
}

// NewScope creates a root scope in a fresh arena.
func NewScope() *Scope {
	arena := &scopeArena{}
	return arena.open(-1)
}

func (a *scopeArena) open(parent int) *Scope {
	a.frames = append(a.frames, frame{
		parent: parent,
		names:  make(map[string]Type),
	})
	return &Scope{arena: a, index: len(a.frames) - 1}
}

// Child opens a nested scope whose lookups fall back to s.
func (s *Scope) Child() *Scope {
	return s.arena.open(s.index)
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	parent := s.arena.frames[s.index].parent
	if parent < 0 {
		return nil
	}
	return &Scope{arena: s.arena, index: parent}
}

// Define binds name to typ in this scope. Redefining a name already
// bound in this scope is an error; shadowing an enclosing scope is not.
func (s *Scope) Define(name string, typ Type) error {
	names := s.arena.frames[s.index].names
	if _, ok := names[name]; ok {
		return fmt.Errorf("variable %s is already defined", name)
	}
	names[name] = typ
	return nil
}

// Lookup retrieves a binding, searching enclosing scopes if necessary.
func (s *Scope) Lookup(name string) (Type, error) {
	for i := s.index; i >= 0; i = s.arena.frames[i].parent {
		if typ, ok := s.arena.frames[i].names[name]; ok {
			return typ, nil
		}
	}
	return Invalid, fmt.Errorf("variable %s is not defined", name)
}

// LookupLocal retrieves a binding from this scope only.
func (s *Scope) LookupLocal(name string) (Type, bool) {
	typ, ok := s.arena.frames[s.index].names[name]
	return typ, ok
}

// Names returns the names defined in this scope, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.arena.frames[s.index].names))
	for name := range s.arena.frames[s.index].names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
