package ganvas

import "testing"

// copyConstraint is a minimal concrete Constraint used only to exercise
// constraintBase: SolveFor copies the value of the other variable onto
// whichever variable is currently weakest.
type copyConstraint struct {
	constraintBase
	a, b *Variable
}

func newCopyConstraint(a, b *Variable) *copyConstraint {
	c := &copyConstraint{a: a, b: b}
	c.constraintBase = newConstraintBase(c.SolveFor, a, b)
	c.setSelf(c)
	return c
}

func (c *copyConstraint) SolveFor(v *Variable) {
	if v == c.a {
		c.a.SetValue(c.b.Value())
	} else {
		c.b.SetValue(c.a.Value())
	}
}

func assertNear(t *testing.T, got, want float64) {
	t.Helper()
	const epsilon = 1e-9
	d := got - want
	if d < 0 {
		d = -d
	}
	if d > epsilon {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConstraintWeakestIsLowestStrength(t *testing.T) {
	a := NewVariable(1, Strong)
	b := NewVariable(2, Weak)
	c := newCopyConstraint(a, b)

	if c.Weakest() != b {
		t.Fatalf("expected b (Weak) to be weakest, got a different variable")
	}

	c.Solve()
	assertNear(t, b.Value(), 1)
}

func TestConstraintWeakestTieDemotesFrontOnDirty(t *testing.T) {
	a := NewVariable(1, Normal)
	b := NewVariable(2, Normal)
	c := newCopyConstraint(a, b)

	if c.Weakest() != a {
		t.Fatalf("expected a to be the front of the tied weakest list")
	}

	c.MarkDirty(a)
	if c.Weakest() != b {
		t.Fatalf("expected b to become weakest after a was marked dirty")
	}

	c.MarkDirty(b)
	if c.Weakest() != a {
		t.Fatalf("expected a to cycle back to weakest after b was marked dirty")
	}
}

func TestConstraintMarkDirtyIgnoresNonFrontVariable(t *testing.T) {
	a := NewVariable(1, Normal)
	b := NewVariable(2, Normal)
	c := newCopyConstraint(a, b)

	c.MarkDirty(b)
	if c.Weakest() != a {
		t.Fatalf("marking a non-front tied variable dirty must not reorder the list")
	}
}

func TestConstraintAddHandlerFiresOnVariableChange(t *testing.T) {
	a := NewVariable(1, Weak)
	b := NewVariable(2, Normal)
	c := newCopyConstraint(a, b)

	fired := 0
	c.AddHandler(func(got Constraint) {
		fired++
		if got != Constraint(c) {
			t.Fatalf("handler received a different constraint than expected")
		}
	})

	a.SetValue(5)
	if fired != 1 {
		t.Fatalf("expected handler to fire once, fired %d times", fired)
	}
}

func TestConstraintRemoveHandlerStopsNotifications(t *testing.T) {
	a := NewVariable(1, Weak)
	b := NewVariable(2, Normal)
	c := newCopyConstraint(a, b)

	fired := 0
	token := c.AddHandler(func(Constraint) { fired++ })
	a.SetValue(5)
	c.RemoveHandler(token)
	a.SetValue(9)

	if fired != 1 {
		t.Fatalf("expected exactly one notification before removal, got %d", fired)
	}
}

func TestConstraintWeakestSurvivesVariableChange(t *testing.T) {
	a := NewVariable(1, Weak)
	b := NewVariable(2, Strong)
	c := newCopyConstraint(a, b)

	c.AddHandler(func(Constraint) {})

	if c.Weakest() != a {
		t.Fatalf("expected a (Weak) to remain weakest before any change")
	}
	a.SetValue(7)
	if c.Weakest() != a {
		t.Fatalf("expected a to still be weakest; strength does not change on value change")
	}
}
