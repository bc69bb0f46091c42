package interp

import (
	"sort"
	"strings"

	"github.com/zurustar/kame/pkg/logo/token"
)

// MaxCallDepth limits nested procedure calls.
const MaxCallDepth = 1000

// Procedure is a user-defined procedure created by TO ... END.
type Procedure struct {
	Name   string
	Params []string
	Body   []token.Token
}

// State is everything a program can change apart from the turtles.
// Resetting the interpreter replaces it with a fresh one.
type State struct {
	procedures map[string]*Procedure
	globals    *Scope
	current    *Scope
	repcount   int
	depth      int
}

// NewState creates an empty state with only the global frame.
func NewState() *State {
	g := NewScope(nil)
	return &State{
		procedures: make(map[string]*Procedure),
		globals:    g,
		current:    g,
	}
}

// normalizeName maps a variable or procedure name to its canonical form.
func normalizeName(name string) string {
	return strings.ToUpper(name)
}

// Procedure returns the procedure with the given name.
func (s *State) Procedure(name string) (*Procedure, bool) {
	p, ok := s.procedures[normalizeName(name)]
	return p, ok
}

// DefineProcedure stores p, replacing any procedure of the same name.
func (s *State) DefineProcedure(p *Procedure) {
	s.procedures[p.Name] = p
}

// ProcedureNames returns the defined procedure names in sorted order.
func (s *State) ProcedureNames() []string {
	names := make([]string, 0, len(s.procedures))
	for name := range s.procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variable looks a variable up through the frame chain.
func (s *State) Variable(name string) (Value, error) {
	name = normalizeName(name)
	v, ok := s.current.Get(name)
	if !ok {
		return nil, errUnboundVariable(name)
	}
	return v, nil
}

// SetVariable assigns to the innermost existing binding, or creates a global.
func (s *State) SetVariable(name string, v Value) {
	s.current.Assign(normalizeName(name), v)
}

// SetLocal binds a variable in the innermost frame.
func (s *State) SetLocal(name string, v Value) {
	s.current.SetLocal(normalizeName(name), v)
}

// Global returns a global variable without consulting local frames.
func (s *State) Global(name string) (Value, bool) {
	return s.globals.Get(normalizeName(name))
}

// pushFrame enters a new local frame and returns the function that leaves it.
func (s *State) pushFrame() func() {
	prev := s.current
	s.current = NewScope(prev)
	return func() {
		s.current = prev
	}
}

// FrameDepth returns the number of local frames above the globals.
func (s *State) FrameDepth() int {
	n := 0
	for sc := s.current; sc != s.globals; sc = sc.Parent() {
		n++
	}
	return n
}
