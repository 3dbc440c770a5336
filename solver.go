package ganvas

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// SolverHandler is notified each time the Solver finishes resolving a
// constraint, with the outermost MultiConstraint containing it (or the
// constraint itself, if it isn't nested inside one known to the
// solver).
type SolverHandler func(c Constraint)

// ContainsConstraints is implemented by constraints that group other
// constraints, such as MultiConstraint. The solver uses it to report
// the outermost owning constraint when one of its children resolves.
type ContainsConstraints interface {
	Constraint
	Constraints() []Constraint
}

// JuggleError is raised when a constraint keeps re-marking itself dirty
// during a single Solve call, which means its variables are juggling
// each other back and forth rather than converging.
type JuggleError struct {
	message string
}

func (e *JuggleError) Error() string {
	return e.message
}

// juggleLimit is how many times a single constraint may be re-queued
// within one Solve call before it's considered stuck.
const juggleLimit = 100

// containingConstraintCacheSize bounds the LRU cache the solver uses to
// avoid re-walking its constraint set on every notification.
const containingConstraintCacheSize = 256

// Solver tracks a set of constraints and resolves the dirty ones in
// weakest-variable order.
type Solver struct {
	constraints map[Constraint]struct{}
	marked      []Constraint
	solving     bool
	handlers    map[*SolverHandler]SolverHandler
	tokens      map[Constraint]*ConstraintHandler

	containingCache *lru.Cache
}

// NewSolver returns an empty Solver.
func NewSolver() *Solver {
	cache, err := lru.New(containingConstraintCacheSize)
	if err != nil {
		panic("ganvas: failed to allocate containing-constraint cache: " + err.Error())
	}
	return &Solver{
		constraints:     make(map[Constraint]struct{}),
		containingCache: cache,
	}
}

// AddHandler subscribes h to be called every time a constraint resolves.
func (s *Solver) AddHandler(h SolverHandler) *SolverHandler {
	if s.handlers == nil {
		s.handlers = make(map[*SolverHandler]SolverHandler)
	}
	token := &h
	s.handlers[token] = h
	return token
}

// RemoveHandler unsubscribes a handler previously added with AddHandler.
func (s *Solver) RemoveHandler(token *SolverHandler) {
	delete(s.handlers, token)
}

// Constraints returns the set of constraints currently registered with
// the solver.
func (s *Solver) Constraints() []Constraint {
	out := make([]Constraint, 0, len(s.constraints))
	for c := range s.constraints {
		out = append(out, c)
	}
	return out
}

// AddConstraint registers c with the solver, marking it for resolution
// on the next Solve and subscribing to its dirty notifications.
func (s *Solver) AddConstraint(c Constraint) Constraint {
	if c == nil {
		panic("ganvas: cannot add a nil constraint")
	}
	s.constraints[c] = struct{}{}
	s.marked = append(s.marked, c)
	if s.tokens == nil {
		s.tokens = make(map[Constraint]*ConstraintHandler)
	}
	s.tokens[c] = c.AddHandler(s.requestResolveConstraint)
	return c
}

// RemoveConstraint unregisters c. Removing a constraint that isn't
// registered is a no-op.
func (s *Solver) RemoveConstraint(c Constraint) {
	if c == nil {
		panic("ganvas: cannot remove a nil constraint")
	}
	if token, ok := s.tokens[c]; ok {
		c.RemoveHandler(token)
		delete(s.tokens, c)
	}
	delete(s.constraints, c)
	s.marked = removeAll(s.marked, c)
	s.containingCache.Remove(c)
}

// requestResolveConstraint is the handler installed on every
// registered constraint; it queues c for the next Solve, or (while
// Solve is running) re-queues it immediately, panicking with a
// *JuggleError if that happens more than juggleLimit times.
func (s *Solver) requestResolveConstraint(c Constraint) {
	if !s.solving {
		s.marked = removeFirst(s.marked, c)
		s.marked = append(s.marked, c)
		return
	}

	s.marked = append(s.marked, c)
	count := countOccurrences(s.marked, c)
	if count > juggleLimit {
		panic(&JuggleError{message: fmt.Sprintf(
			"ganvas: variable juggling detected, constraint %v resolved %d times out of %d",
			c, count, len(s.marked),
		)})
	}
}

// Solve resolves every currently marked constraint, in FIFO order,
// re-queuing any constraint whose resolution dirties another
// constraint (including itself).
func (s *Solver) Solve() {
	s.solving = true
	defer func() { s.solving = false }()

	n := 0
	for n < len(s.marked) {
		c := s.marked[n]
		c.Solve()
		s.notify(c)
		n++
	}
	s.marked = nil
}

func (s *Solver) notify(c Constraint) {
	outer := s.findContainingConstraint(c)
	for _, h := range s.handlers {
		h(outer)
	}
}

func (s *Solver) findContainingConstraint(c Constraint) Constraint {
	if cached, ok := s.containingCache.Get(c); ok {
		return cached.(Constraint)
	}
	found := FindContainingConstraint(c, s.Constraints())
	if found == nil {
		found = c
	}
	s.containingCache.Add(c, found)
	return found
}

// FindContainingConstraint searches constraints for the outermost
// ContainsConstraints whose (possibly nested) children include target,
// or target itself if it is directly in constraints. Returns nil if
// target is not reachable from constraints at all.
func FindContainingConstraint(target Constraint, constraints []Constraint) Constraint {
	for _, c := range constraints {
		if c == target {
			return c
		}
	}
	for _, c := range constraints {
		group, ok := c.(ContainsConstraints)
		if !ok {
			continue
		}
		if FindContainingConstraint(target, group.Constraints()) != nil {
			return FindContainingConstraint(c, constraints)
		}
	}
	return nil
}

func removeFirst(cs []Constraint, target Constraint) []Constraint {
	for i, c := range cs {
		if c == target {
			return append(cs[:i], cs[i+1:]...)
		}
	}
	return cs
}

func removeAll(cs []Constraint, target Constraint) []Constraint {
	out := cs[:0]
	for _, c := range cs {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

func countOccurrences(cs []Constraint, target Constraint) int {
	n := 0
	for _, c := range cs {
		if c == target {
			n++
		}
	}
	return n
}
