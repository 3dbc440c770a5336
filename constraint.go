package ganvas

// ConstraintHandler is notified whenever a constraint becomes dirty
// (one of its input variables changed).
type ConstraintHandler func(c Constraint)

// Constraint is an abstract relation over a set of Variables. Solve
// picks the constraint's current weakest variable and calls SolveFor on
// it; concrete constraints decide what "solving" means.
type Constraint interface {
	Variables() []*Variable
	Weakest() *Variable
	MarkDirty(v *Variable)
	Solve()
	SolveFor(v *Variable)
	AddHandler(h ConstraintHandler) *ConstraintHandler
	RemoveHandler(token *ConstraintHandler)
}

// constraintBase implements the weakest-variable bookkeeping shared by
// every concrete constraint. Concrete constraints embed it and supply
// their own SolveFor.
//
// The weakest list holds every variable tied for the constraint's
// minimum strength, front-to-back. Weakest returns the front element;
// MarkDirty demotes a dirtied front element to the back, so the least
// recently touched tied variable is always solved for next.
type constraintBase struct {
	variables    []*Variable
	weakest      []*Variable
	varTokens    map[*Variable]*VariableHandler
	handlers     map[*ConstraintHandler]ConstraintHandler
	solveFor     func(v *Variable)
	asConstraint Constraint
}

func newConstraintBase(solveFor func(v *Variable), vars ...*Variable) constraintBase {
	c := constraintBase{variables: vars, solveFor: solveFor}
	c.rebuildWeakest()
	return c
}

// setSelf records the concrete Constraint value that embeds this base,
// so handler notifications carry the real type instead of constraintBase
// itself. Concrete constructors call this once, after the embedding
// struct has its final address.
func (c *constraintBase) setSelf(self Constraint) {
	c.asConstraint = self
}

func (c *constraintBase) rebuildWeakest() {
	if len(c.variables) == 0 {
		c.weakest = nil
		return
	}
	min := c.variables[0].Strength()
	for _, v := range c.variables[1:] {
		if v.Strength() < min {
			min = v.Strength()
		}
	}
	weakest := make([]*Variable, 0, len(c.variables))
	for _, v := range c.variables {
		if v.Strength() == min {
			weakest = append(weakest, v)
		}
	}
	c.weakest = weakest
}

func (c *constraintBase) Variables() []*Variable {
	return c.variables
}

func (c *constraintBase) Weakest() *Variable {
	if len(c.weakest) == 0 {
		return nil
	}
	return c.weakest[0]
}

func (c *constraintBase) MarkDirty(v *Variable) {
	if len(c.weakest) > 0 && c.weakest[0] == v {
		c.weakest = append(c.weakest[1:], v)
	}
}

func (c *constraintBase) Solve() {
	w := c.Weakest()
	if w == nil {
		return
	}
	c.solveFor(w)
}

func (c *constraintBase) AddHandler(h ConstraintHandler) *ConstraintHandler {
	first := len(c.handlers) == 0
	if c.handlers == nil {
		c.handlers = make(map[*ConstraintHandler]ConstraintHandler)
	}
	token := &h
	c.handlers[token] = h
	if first {
		c.subscribeVariables()
	}
	return token
}

func (c *constraintBase) RemoveHandler(token *ConstraintHandler) {
	delete(c.handlers, token)
	if len(c.handlers) == 0 {
		c.unsubscribeVariables()
	}
}

func (c *constraintBase) subscribeVariables() {
	c.varTokens = make(map[*Variable]*VariableHandler, len(c.variables))
	for _, v := range c.variables {
		v := v
		c.varTokens[v] = v.AddHandler(func(changed *Variable, old float64) {
			c.MarkDirty(changed)
			c.notify()
		})
	}
}

func (c *constraintBase) unsubscribeVariables() {
	for v, token := range c.varTokens {
		v.RemoveHandler(token)
	}
	c.varTokens = nil
}

func (c *constraintBase) notify() {
	if c.asConstraint == nil {
		return
	}
	for _, h := range c.handlers {
		h(c.asConstraint)
	}
}
