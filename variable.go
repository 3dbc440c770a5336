package ganvas

// Strength tiers a Variable or Constraint input can carry. Lower values
// are weaker: a Constraint prefers to solve for (overwrite) its weakest
// input when several variables could satisfy the relation.
const (
	VeryWeak   = 0
	Weak       = 10
	Normal     = 20
	Strong     = 30
	VeryStrong = 40
	Required   = 100
)

// variableEpsilon is the threshold below which a Variable.SetValue call
// is considered a no-op (no notification fires).
const variableEpsilon = 1e-6

// VariableHandler is notified when a Variable's value changes (or is
// force-marked dirty). old is the value before the change.
type VariableHandler func(v *Variable, old float64)

// Variable is an observable scalar carrying a strength used by
// Constraints to decide which of several inputs to solve for.
type Variable struct {
	value    float64
	strength int
	handlers map[*VariableHandler]VariableHandler
}

// NewVariable creates a Variable with the given initial value and
// strength. strength is stored as given (0 is VeryWeak); callers name a
// strength constant.
func NewVariable(value float64, strength int) *Variable {
	return &Variable{value: value, strength: strength}
}

// Value returns the current value.
func (v *Variable) Value() float64 {
	return v.value
}

// Strength returns the variable's strength tier.
func (v *Variable) Strength() int {
	return v.strength
}

// SetValue updates the value, notifying handlers only if the change
// exceeds epsilon.
func (v *Variable) SetValue(value float64) {
	old := v.value
	diff := value - old
	if diff < 0 {
		diff = -diff
	}
	if diff <= variableEpsilon {
		return
	}
	v.value = value
	v.notify(old)
}

// Dirty re-notifies handlers with the current value, without changing
// it. Used to force re-solving of downstream constraints, e.g. after a
// projection's matrix changes.
func (v *Variable) Dirty() {
	v.notify(v.value)
}

// AddHandler subscribes h to value-change notifications. The returned
// token can be passed to RemoveHandler.
func (v *Variable) AddHandler(h VariableHandler) *VariableHandler {
	if v.handlers == nil {
		v.handlers = make(map[*VariableHandler]VariableHandler)
	}
	token := &h
	v.handlers[token] = h
	return token
}

// RemoveHandler unsubscribes a handler previously added with AddHandler.
func (v *Variable) RemoveHandler(token *VariableHandler) {
	delete(v.handlers, token)
}

func (v *Variable) notify(old float64) {
	for _, h := range v.handlers {
		h(v, old)
	}
}

// Equal reports whether v's value is within epsilon of f.
func (v *Variable) Equal(f float64) bool {
	d := v.value - f
	if d < 0 {
		d = -d
	}
	return d <= variableEpsilon
}

// Less reports whether v's value is strictly less than f.
func (v *Variable) Less(f float64) bool {
	return v.value < f
}
