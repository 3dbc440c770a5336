package ganvas

// Port is the connectable part of an Item; a Handle glues to a Port on
// another item.
type Port interface {
	Connectable() bool
	SetConnectable(v bool)
	Glue(pos Point) (Point, float64)
	Constraint(item Item, handle *Handle, glueItem Item) Constraint
}

type portBase struct {
	connectable bool
}

func newPortBase() portBase {
	return portBase{connectable: true}
}

func (p *portBase) Connectable() bool      { return p.connectable }
func (p *portBase) SetConnectable(v bool)  { p.connectable = v }

// LinePort is a port defined as the line segment between two
// positions, typically two of an item's handles.
type LinePort struct {
	portBase
	Start, End *Position
}

// NewLinePort returns a port along the segment start-end.
func NewLinePort(start, end *Position) *LinePort {
	return &LinePort{portBase: newPortBase(), Start: start, End: end}
}

// Glue returns the closest point on the port to pos, and the distance
// to it.
func (p *LinePort) Glue(pos Point) (Point, float64) {
	d, pt := DistanceLinePoint(p.Start.Point(), p.End.Point(), pos)
	return pt, d
}

// Constraint builds the MultiConstraint that keeps handle glued to
// this port as glueItem and item move: the port's own endpoints and
// the handle are projected into the canvas's coordinate space, then
// held together with a LineConstraint.
func (p *LinePort) Constraint(item Item, handle *Handle, glueItem Item) Constraint {
	start := NewMatrixProjection(p.Start, glueItem.MatrixI2C())
	end := NewMatrixProjection(p.End, glueItem.MatrixI2C())
	point := NewMatrixProjection(handle.Pos(), item.MatrixI2C())
	line := NewLineConstraint(start.Projected(), end.Projected(), point.Projected())
	return NewMultiConstraint(start, end, point, line)
}

// PointPort is a port defined as a single fixed position.
type PointPort struct {
	portBase
	Point *Position
}

// NewPointPort returns a port at point.
func NewPointPort(point *Position) *PointPort {
	return &PointPort{portBase: newPortBase(), Point: point}
}

// Glue returns the port's fixed point, and the distance from pos to
// it.
func (p *PointPort) Glue(pos Point) (Point, float64) {
	pt := p.Point.Point()
	return pt, DistancePointPoint(pt, pos)
}

// Constraint builds the MultiConstraint that keeps handle glued to
// this port's fixed position as glueItem and item move.
func (p *PointPort) Constraint(item Item, handle *Handle, glueItem Item) Constraint {
	origin := NewMatrixProjection(p.Point, glueItem.MatrixI2C())
	point := NewMatrixProjection(handle.Pos(), item.MatrixI2C())
	c := NewPositionConstraint(origin.Projected(), point.Projected())
	return NewMultiConstraint(origin, point, c)
}
