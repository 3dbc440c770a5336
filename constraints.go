package ganvas

import (
	"log"
	"math"
)

// equationEpsilon mirrors the module-level tolerance gaphas' constraint
// module uses for its own in-place updates: updateVariable skips writes
// closer than this. Newton convergence uses equationTolerance instead.
const equationEpsilon = 1e-6

func updateVariable(v *Variable, value float64) {
	if math.Abs(v.Value()-value) > equationEpsilon {
		v.SetValue(value)
	}
}

// EqualsConstraint keeps a+delta == b. Solving for either side writes
// that side from the other; solving for any other variable recomputes
// delta.
type EqualsConstraint struct {
	constraintBase
	A, B  *Variable
	Delta float64
}

// NewEqualsConstraint returns a constraint enforcing a+delta == b.
func NewEqualsConstraint(a, b *Variable, delta float64) *EqualsConstraint {
	c := &EqualsConstraint{A: a, B: b, Delta: delta}
	c.constraintBase = newConstraintBase(c.SolveFor, a, b)
	c.setSelf(c)
	return c
}

// SolveFor writes whichever of A or B was passed in, from the other one,
// or recomputes Delta if called with something else entirely.
func (c *EqualsConstraint) SolveFor(v *Variable) {
	switch v {
	case c.A:
		updateVariable(c.A, c.B.Value()-c.Delta)
	case c.B:
		updateVariable(c.B, c.A.Value()+c.Delta)
	default:
		c.Delta = c.B.Value() - c.A.Value()
	}
}

// CenterConstraint keeps Center at the midpoint of A and B.
type CenterConstraint struct {
	constraintBase
	A, B, Center *Variable
}

// NewCenterConstraint returns a constraint keeping center at (a+b)/2.
func NewCenterConstraint(a, b, center *Variable) *CenterConstraint {
	c := &CenterConstraint{A: a, B: b, Center: center}
	c.constraintBase = newConstraintBase(c.SolveFor, a, b, center)
	c.setSelf(c)
	return c
}

// SolveFor always recomputes Center; it is the only variable a sane
// caller ever solves this constraint for.
func (c *CenterConstraint) SolveFor(*Variable) {
	updateVariable(c.Center, (c.A.Value()+c.B.Value())/2.0)
}

// LessThanConstraint keeps Smaller <= Bigger-Delta. Unlike the other
// constraints here, the variable passed to SolveFor is left untouched;
// the *other* side is adjusted, since the passed variable is assumed to
// be the one that moved most recently.
type LessThanConstraint struct {
	constraintBase
	Smaller, Bigger *Variable
	Delta           float64
}

// NewLessThanConstraint returns a constraint enforcing
// smaller <= bigger-delta.
func NewLessThanConstraint(smaller, bigger *Variable, delta float64) *LessThanConstraint {
	c := &LessThanConstraint{Smaller: smaller, Bigger: bigger, Delta: delta}
	c.constraintBase = newConstraintBase(c.SolveFor, smaller, bigger)
	c.setSelf(c)
	return c
}

// SolveFor adjusts whichever side was not passed in, only if the
// inequality currently does not hold.
func (c *LessThanConstraint) SolveFor(v *Variable) {
	if c.Smaller.Value() <= c.Bigger.Value()-c.Delta {
		return
	}
	switch v {
	case c.Smaller:
		c.Bigger.SetValue(c.Smaller.Value() + c.Delta)
	case c.Bigger:
		c.Smaller.SetValue(c.Bigger.Value() - c.Delta)
	default:
		c.Delta = c.Bigger.Value() - c.Smaller.Value()
	}
}

// equationIterationLimit caps Newton's-method iterations in
// EquationConstraint before giving up and logging a warning.
const equationIterationLimit = 1000

// equationTolerance is the convergence tolerance for EquationConstraint.
// This is tighter than gaphas' own EPSILON=1e-6 module constant.
const equationTolerance = 1e-7

// EquationFunc is a function of named variables that EquationConstraint
// drives to zero by adjusting one of them.
type EquationFunc func(args map[string]float64) float64

// EquationConstraint solves f(args...) == 0 for one named argument at a
// time using Newton's method, with the remaining arguments held fixed
// at their current variable values.
type EquationConstraint struct {
	constraintBase
	f     EquationFunc
	names []string
	vars  map[string]*Variable
}

// NewEquationConstraint builds a constraint around f, with args naming
// each Variable f expects by argument name.
func NewEquationConstraint(f EquationFunc, args map[string]*Variable) *EquationConstraint {
	names := make([]string, 0, len(args))
	vars := make([]*Variable, 0, len(args))
	for name, v := range args {
		names = append(names, name)
		vars = append(vars, v)
	}
	c := &EquationConstraint{f: f, names: names, vars: make(map[string]*Variable, len(args))}
	for name, v := range args {
		c.vars[name] = v
	}
	c.constraintBase = newConstraintBase(c.SolveFor, vars...)
	c.setSelf(c)
	return c
}

// SolveFor solves f(...)==0 for the named argument bound to var, holding
// the remaining arguments at their current values.
func (c *EquationConstraint) SolveFor(target *Variable) {
	var arg string
	args := make(map[string]float64, len(c.vars))
	for name, v := range c.vars {
		args[name] = v.Value()
		if v == target {
			arg = name
		}
	}
	result := c.solveNewton(arg, args)
	if target.Value() != result {
		target.SetValue(result)
	}
}

func (c *EquationConstraint) solveNewton(arg string, args map[string]float64) float64 {
	const closeRunsStart = 10
	closeRuns := closeRunsStart

	x0 := args[arg]
	if x0 == 0 {
		x0 = 1
	}
	var x1 float64
	if x0 == 0 {
		x1 = 1
	} else {
		x1 = x0 * 1.1
	}

	eval := func(x float64) float64 {
		args[arg] = x
		return c.f(args)
	}

	fx0 := eval(x0)
	n := 0
	for {
		fx1 := eval(x1)
		if fx1 == 0 || x1 == x0 {
			break
		}
		closeEnough := math.Abs(fx1-fx0) < equationTolerance
		if closeEnough {
			if closeRuns == 0 {
				break
			}
			closeRuns--
		}
		if n > equationIterationLimit {
			log.Printf("ganvas: equation constraint failed to converge within %d iterations", equationIterationLimit)
			break
		}
		slope := (fx1 - fx0) / (x1 - x0)
		if slope == 0 {
			if closeEnough {
				break
			}
			log.Printf("ganvas: equation constraint hit zero slope before converging")
			break
		}
		x2 := x0 - fx0/slope
		fx0 = fx1
		x0 = x1
		x1 = x2
		n++
	}
	return x1
}

// BalanceConstraint keeps V positioned at a fixed ratio along the band
// [Low, High]: V = Low + Balance*(High-Low).
type BalanceConstraint struct {
	constraintBase
	Low, High, V *Variable
	Balance      float64
}

// NewBalanceConstraint returns a constraint holding v at its current
// proportional position within [low, high].
func NewBalanceConstraint(low, high, v *Variable) *BalanceConstraint {
	c := &BalanceConstraint{Low: low, High: high, V: v}
	c.constraintBase = newConstraintBase(c.SolveFor, low, high, v)
	c.setSelf(c)
	c.updateBalance()
	return c
}

func (c *BalanceConstraint) updateBalance() {
	w := c.High.Value() - c.Low.Value()
	if w == 0 {
		c.Balance = 0
		return
	}
	c.Balance = (c.V.Value() - c.Low.Value()) / w
}

// SolveFor recomputes var's value from the current band and fixed
// Balance ratio.
func (c *BalanceConstraint) SolveFor(v *Variable) {
	w := c.High.Value() - c.Low.Value()
	updateVariable(v, c.Low.Value()+w*c.Balance)
}

// LineConstraint keeps a point on the line between two endpoints, at a
// fixed ratio along that line computed the first time it is built or
// whenever UpdateRatio is called explicitly.
type LineConstraint struct {
	constraintBase
	Start, End, Point *Position
	Ratio             float64
}

// NewLineConstraint returns a constraint keeping point on the segment
// start-end, at point's current position along that segment.
func NewLineConstraint(start, end, point *Position) *LineConstraint {
	c := &LineConstraint{Start: start, End: end, Point: point}
	c.constraintBase = newConstraintBase(c.SolveFor,
		start.X, start.Y, end.X, end.Y, point.X, point.Y)
	c.setSelf(c)
	c.UpdateRatio()
	return c
}

// UpdateRatio recomputes the point's fixed position along the line from
// its current coordinates. Call this after moving the point directly.
func (c *LineConstraint) UpdateRatio() {
	sx, sy := c.Start.X.Value(), c.Start.Y.Value()
	ex, ey := c.End.X.Value(), c.End.Y.Value()
	px, py := c.Point.X.Value(), c.Point.Y.Value()

	if ex != sx {
		c.Ratio = (px - sx) / (ex - sx)
	} else if ey != sy {
		c.Ratio = (py - sy) / (ey - sy)
	} else {
		c.Ratio = 0
	}
}

// SolveFor ignores which variable triggered the solve and always
// recomputes the point from the line and the fixed ratio.
func (c *LineConstraint) SolveFor(*Variable) {
	sx, sy := c.Start.X.Value(), c.Start.Y.Value()
	ex, ey := c.End.X.Value(), c.End.Y.Value()

	x := sx + (ex-sx)*c.Ratio
	y := sy + (ey-sy)*c.Ratio

	updateVariable(c.Point.X, x)
	updateVariable(c.Point.Y, y)
}

// PositionConstraint pins Point to Origin.
type PositionConstraint struct {
	constraintBase
	Origin, Point *Position
}

// NewPositionConstraint returns a constraint keeping point equal to
// origin.
func NewPositionConstraint(origin, point *Position) *PositionConstraint {
	c := &PositionConstraint{Origin: origin, Point: point}
	c.constraintBase = newConstraintBase(c.SolveFor,
		origin.X, origin.Y, point.X, point.Y)
	c.setSelf(c)
	return c
}

// SolveFor ignores which variable triggered the solve and always copies
// Origin onto Point.
func (c *PositionConstraint) SolveFor(*Variable) {
	updateVariable(c.Point.X, c.Origin.X.Value())
	updateVariable(c.Point.Y, c.Origin.Y.Value())
}

// LineAlignConstraint keeps a point at a fixed fraction (Align) along a
// line, offset by Delta pixels along the line's own direction, matching
// the line's current angle.
type LineAlignConstraint struct {
	constraintBase
	Start, End, Point *Position
	Align             float64
	Delta             float64
}

// NewLineAlignConstraint returns a constraint holding point at fraction
// align along the line start-end, padded by delta along the line's
// direction.
func NewLineAlignConstraint(start, end, point *Position, align, delta float64) *LineAlignConstraint {
	c := &LineAlignConstraint{Start: start, End: end, Point: point, Align: align, Delta: delta}
	c.constraintBase = newConstraintBase(c.SolveFor,
		start.X, start.Y, end.X, end.Y, point.X, point.Y)
	c.setSelf(c)
	return c
}

// SolveFor ignores which variable triggered the solve and always
// recomputes the point from the line, Align, and Delta.
func (c *LineAlignConstraint) SolveFor(*Variable) {
	sx, sy := c.Start.X.Value(), c.Start.Y.Value()
	ex, ey := c.End.X.Value(), c.End.Y.Value()

	angle := math.Atan2(ey-sy, ex-sx)

	x := sx + (ex-sx)*c.Align + c.Delta*math.Cos(angle)
	y := sy + (ey-sy)*c.Align + c.Delta*math.Sin(angle)

	updateVariable(c.Point.X, x)
	updateVariable(c.Point.Y, y)
}
