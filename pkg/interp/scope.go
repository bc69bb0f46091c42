package interp

// Scope is one frame of variable bindings. Frames are linked to their
// caller's frame; the root frame holds the globals.
type Scope struct {
	variables map[string]Value
	parent    *Scope
}

// NewScope creates a new scope with an optional parent scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		variables: make(map[string]Value),
		parent:    parent,
	}
}

// Get looks the name up in this scope, then in each enclosing scope.
func (s *Scope) Get(name string) (Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates the innermost binding of name. A name bound nowhere is
// created in the root scope.
func (s *Scope) Assign(name string, value Value) {
	sc := s
	for ; sc != nil; sc = sc.parent {
		if _, ok := sc.variables[name]; ok {
			sc.variables[name] = value
			return
		}
		if sc.parent == nil {
			break
		}
	}
	sc.variables[name] = value
}

// SetLocal binds name in this scope only.
func (s *Scope) SetLocal(name string, value Value) {
	s.variables[name] = value
}

// Has reports whether name is bound in this scope (not its parents).
func (s *Scope) Has(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Size returns the number of bindings in this scope.
func (s *Scope) Size() int {
	return len(s.variables)
}
