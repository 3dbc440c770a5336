package ganvas

// Position is a point built from two Variables sharing a strength.
type Position struct {
	X, Y *Variable
}

// NewPosition creates a Position at (x, y) with the given strength.
func NewPosition(x, y float64, strength int) *Position {
	return &Position{X: NewVariable(x, strength), Y: NewVariable(y, strength)}
}

// Strength returns the strength shared by the position's two variables.
func (p *Position) Strength() int {
	return p.X.Strength()
}

// Point returns the position's current coordinates.
func (p *Position) Point() Point {
	return Point{X: p.X.Value(), Y: p.Y.Value()}
}

// SetPoint moves the position directly, bypassing the solver.
func (p *Position) SetPoint(pt Point) {
	p.X.SetValue(pt.X)
	p.Y.SetValue(pt.Y)
}

// MatrixProjection projects a Position through a Matrix into a second,
// owned Position expressed in the matrix's target coordinate space. It
// is a Constraint: solving for one of the projected variables
// re-derives the projection by applying the matrix; solving for one of
// the original position's variables re-derives the original position
// by applying the matrix's inverse to the projection.
type MatrixProjection struct {
	constraintBase
	orig   *Position
	proj   *Position
	Matrix *Matrix

	matrixToken *MatrixHandler
}

// NewMatrixProjection returns a MatrixProjection tracking pos through
// matrix. Projected returns the resulting Position in the matrix's
// target space.
func NewMatrixProjection(pos *Position, matrix *Matrix) *MatrixProjection {
	proj := NewPosition(0, 0, pos.Strength())
	c := &MatrixProjection{orig: pos, proj: proj, Matrix: matrix}
	c.constraintBase = newConstraintBase(c.SolveFor, proj.X, proj.Y, pos.X, pos.Y)
	c.setSelf(c)
	c.SolveFor(proj.X)
	return c
}

// Projected returns the Position this constraint maintains in the
// matrix's coordinate space.
func (c *MatrixProjection) Projected() *Position {
	return c.proj
}

// Original returns the Position this constraint projects from.
func (c *MatrixProjection) Original() *Position {
	return c.orig
}

// AddHandler subscribes h, and on the first subscription also starts
// watching the projection's matrix so a matrix change re-derives the
// projected position.
func (c *MatrixProjection) AddHandler(h ConstraintHandler) *ConstraintHandler {
	if len(c.handlers) == 0 {
		c.matrixToken = c.Matrix.AddHandler(c.onMatrixChanged)
	}
	return c.constraintBase.AddHandler(h)
}

// RemoveHandler unsubscribes h, and stops watching the matrix once the
// last handler is removed.
func (c *MatrixProjection) RemoveHandler(token *ConstraintHandler) {
	c.constraintBase.RemoveHandler(token)
	if len(c.handlers) == 0 && c.matrixToken != nil {
		c.Matrix.RemoveHandler(c.matrixToken)
		c.matrixToken = nil
	}
}

func (c *MatrixProjection) onMatrixChanged(*Matrix, [6]float64) {
	c.MarkDirty(c.orig.X)
	c.notify()
}

// MarkDirty routes dirtying of either half of a position to both of
// that position's variables, since projecting or unprojecting always
// recomputes x and y together.
func (c *MatrixProjection) MarkDirty(v *Variable) {
	if v == c.orig.X || v == c.orig.Y {
		c.constraintBase.MarkDirty(c.orig.X)
		c.constraintBase.MarkDirty(c.orig.Y)
	} else {
		c.constraintBase.MarkDirty(c.proj.X)
		c.constraintBase.MarkDirty(c.proj.Y)
	}
}

// SolveFor projects orig into proj via Matrix, or unprojects proj back
// into orig via Matrix's inverse, depending on which side var belongs
// to.
func (c *MatrixProjection) SolveFor(v *Variable) {
	if v == c.orig.X || v == c.orig.Y {
		inv := c.Matrix.Inverse()
		x, y := inv.TransformPoint(c.proj.X.Value(), c.proj.Y.Value())
		c.orig.X.SetValue(x)
		c.orig.Y.SetValue(y)
	} else {
		x, y := c.Matrix.TransformPoint(c.orig.X.Value(), c.orig.Y.Value())
		c.proj.X.SetValue(x)
		c.proj.Y.SetValue(y)
	}
}
