package ganvas

import "testing"

func TestMultiConstraintSolvesEveryChild(t *testing.T) {
	a, b := NewVariable(1, Normal), NewVariable(5, Normal)
	c, d := NewVariable(2, Normal), NewVariable(9, Normal)

	m := NewMultiConstraint(
		NewEqualsConstraint(a, b, 0),
		NewEqualsConstraint(c, d, 0),
	)

	m.Solve()
	assertNear(t, a.Value(), 5)
	assertNear(t, c.Value(), 9)
}

func TestMultiConstraintExposesChildVariables(t *testing.T) {
	a, b := NewVariable(1, Normal), NewVariable(2, Normal)
	m := NewMultiConstraint(NewEqualsConstraint(a, b, 0))

	vars := m.Variables()
	if len(vars) != 2 {
		t.Fatalf("expected 2 variables from the grouped constraint, got %d", len(vars))
	}
}

func TestMultiConstraintConstraintsReturnsChildren(t *testing.T) {
	a, b := NewVariable(1, Normal), NewVariable(2, Normal)
	c, d := NewVariable(3, Normal), NewVariable(4, Normal)
	eq1 := NewEqualsConstraint(a, b, 0)
	eq2 := NewEqualsConstraint(c, d, 0)
	m := NewMultiConstraint(eq1, eq2)

	children := m.Constraints()
	if len(children) != 2 || children[0] != Constraint(eq1) || children[1] != Constraint(eq2) {
		t.Fatalf("expected Constraints() to return children in order")
	}
}
