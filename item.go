package ganvas

import "math"

// Context is passed to an Item's update and draw methods. It carries
// whatever view state a host application wants items to react to;
// Canvas never reads its fields, only threads it through.
type Context struct {
	Cairo    interface{}
	Items    []Item
	Area     Rect
	Selected bool
	Focused  bool
	Hovered  bool
	Dropzone bool
	DrawAll  bool
}

// Item is anything that can live in a Canvas: it owns a local-to-parent
// Matrix, exposes Handles and Ports for connection and hit testing, and
// participates in the update/draw pipeline.
type Item interface {
	Matrix() *Matrix
	MatrixI2C() *Matrix
	Handles() []*Handle
	Ports() []Port
	Point(x, y float64) float64
	Draw(ctx *Context)
	PreUpdate(ctx *Context)
	PostUpdate(ctx *Context)
}

// matrixI2I returns the transform that maps a point in from's
// coordinate space into to's coordinate space, both expressed relative
// to the canvas.
func matrixI2I(from, to Item) *Matrix {
	i2c := from.MatrixI2C()
	c2i := to.MatrixI2C().Inverse()
	return i2c.Multiply(c2i)
}

// itemBase provides the Matrix/MatrixI2C storage and no-op
// PreUpdate/PostUpdate every concrete Item embeds.
type itemBase struct {
	matrix    *Matrix
	matrixI2C *Matrix
}

func newItemBase() itemBase {
	return itemBase{matrix: NewMatrix(), matrixI2C: NewMatrix()}
}

func (b *itemBase) Matrix() *Matrix    { return b.matrix }
func (b *itemBase) MatrixI2C() *Matrix { return b.matrixI2C }
func (b *itemBase) PreUpdate(*Context) {}
func (b *itemBase) PostUpdate(*Context) {}

const (
	nw = iota
	ne
	se
	sw
)

// Element is a rectangular item with 4 corner handles (NW, NE, SE, SW)
// and one edge LinePort per side, kept rectangular by Equals constraints
// between its VeryStrong corner handles and kept no smaller than
// MinWidth/MinHeight.
type Element struct {
	itemBase
	connections *Connections
	handles     [4]*Handle
	ports       [4]Port

	minWidth, minHeight *Variable
}

// NewElement creates an Element of the given width and height,
// registering its shape constraints with connections.
func NewElement(connections *Connections, width, height float64) *Element {
	e := &Element{
		itemBase:    newItemBase(),
		connections: connections,
		minWidth:    NewVariable(10, Required),
		minHeight:   NewVariable(10, Required),
	}
	for i := range e.handles {
		e.handles[i] = NewHandle(0, 0)
		e.handles[i].pos.X.strength = VeryStrong
		e.handles[i].pos.Y.strength = VeryStrong
	}

	hNW, hNE, hSE, hSW := e.handles[nw], e.handles[ne], e.handles[se], e.handles[sw]
	e.ports[0] = NewLinePort(hNW.pos, hNE.pos)
	e.ports[1] = NewLinePort(hNE.pos, hSE.pos)
	e.ports[2] = NewLinePort(hSE.pos, hSW.pos)
	e.ports[3] = NewLinePort(hSW.pos, hNW.pos)

	add := connections.AddConstraint
	add(e, NewEqualsConstraint(hNW.pos.Y, hNE.pos.Y, 0))
	add(e, NewEqualsConstraint(hSW.pos.Y, hSE.pos.Y, 0))
	add(e, NewEqualsConstraint(hNW.pos.X, hSW.pos.X, 0))
	add(e, NewEqualsConstraint(hNE.pos.X, hSE.pos.X, 0))
	add(e, NewLessThanConstraint(hNW.pos.X, hSE.pos.X, e.minWidth.Value()))
	add(e, NewLessThanConstraint(hNW.pos.Y, hSE.pos.Y, e.minHeight.Value()))

	e.SetWidth(width)
	e.SetHeight(height)

	hSE.pos.X.Dirty()
	hSE.pos.Y.Dirty()

	return e
}

// Width returns the distance between the element's left and right
// handles.
func (e *Element) Width() float64 {
	return e.handles[se].pos.X.Value() - e.handles[nw].pos.X.Value()
}

// SetWidth moves the SE handle to make the element width wide.
func (e *Element) SetWidth(width float64) {
	e.handles[se].pos.X.SetValue(e.handles[nw].pos.X.Value() + width)
}

// Height returns the distance between the element's top and bottom
// handles.
func (e *Element) Height() float64 {
	return e.handles[se].pos.Y.Value() - e.handles[nw].pos.Y.Value()
}

// SetHeight moves the SE handle to make the element height tall.
func (e *Element) SetHeight(height float64) {
	e.handles[se].pos.Y.SetValue(e.handles[nw].pos.Y.Value() + height)
}

// MinWidth returns the element's minimum allowed width.
func (e *Element) MinWidth() float64 { return e.minWidth.Value() }

// MinHeight returns the element's minimum allowed height.
func (e *Element) MinHeight() float64 { return e.minHeight.Value() }

// Handles returns the element's 4 corner handles, in NW, NE, SE, SW
// order.
func (e *Element) Handles() []*Handle {
	return []*Handle{e.handles[nw], e.handles[ne], e.handles[se], e.handles[sw]}
}

// Ports returns the element's 4 edge ports, in NW-NE, NE-SE, SE-SW,
// SW-NW order.
func (e *Element) Ports() []Port {
	return []Port{e.ports[0], e.ports[1], e.ports[2], e.ports[3]}
}

// Point returns the distance from (x, y), in item coordinates, to the
// element's outline, or 0 if (x, y) lies inside the element.
func (e *Element) Point(x, y float64) float64 {
	nwPos := e.handles[nw].pos
	sePos := e.handles[se].pos
	r := Rect{
		X: nwPos.X.Value(), Y: nwPos.Y.Value(),
		Width:  sePos.X.Value() - nwPos.X.Value(),
		Height: sePos.Y.Value() - nwPos.Y.Value(),
	}
	return DistanceRectanglePoint(r, Point{X: x, Y: y})
}

// Draw does nothing; Element carries no rendering concern of its own.
func (e *Element) Draw(*Context) {}

// Line is an item made of 2 or more handles connected end to end, with
// one LinePort per segment.
type Line struct {
	itemBase
	connections *Connections
	handles     []*Handle
	ports       []Port

	lineWidth  float64
	fuzziness  float64
	horizontal bool

	orthogonalConstraints []Constraint

	headAngle, tailAngle float64
}

// NewLine creates a 2-handle straight line from (0,0) to (10,10).
func NewLine(connections *Connections) *Line {
	l := &Line{
		itemBase:    newItemBase(),
		connections: connections,
		handles:     []*Handle{NewHandle(0, 0), NewHandle(10, 10)},
		lineWidth:   2,
	}
	l.handles[0].connectable = true
	l.handles[1].connectable = true
	l.rebuildPorts()
	return l
}

func (l *Line) rebuildPorts() {
	if len(l.handles) < 2 {
		panic("ganvas: a line needs at least 2 handles")
	}
	ports := make([]Port, 0, len(l.handles)-1)
	for i := 0; i+1 < len(l.handles); i++ {
		ports = append(ports, NewLinePort(l.handles[i].pos, l.handles[i+1].pos))
	}
	l.ports = ports
}

// Head returns the line's first handle.
func (l *Line) Head() *Handle { return l.handles[0] }

// Tail returns the line's last handle.
func (l *Line) Tail() *Handle { return l.handles[len(l.handles)-1] }

// LineWidth returns the stroke width used when drawing the line.
func (l *Line) LineWidth() float64 { return l.lineWidth }

// SetLineWidth sets the stroke width used when drawing the line.
func (l *Line) SetLineWidth(w float64) { l.lineWidth = w }

// Fuzziness returns the extra margin added around the line for hit
// testing.
func (l *Line) Fuzziness() float64 { return l.fuzziness }

// SetFuzziness sets the extra margin added around the line for hit
// testing.
func (l *Line) SetFuzziness(f float64) { l.fuzziness = f }

// Horizontal reports whether the line's first segment is constrained
// horizontal when Orthogonal is enabled.
func (l *Line) Horizontal() bool { return l.horizontal }

// SetHorizontal changes which axis the first orthogonal segment runs
// along, rebuilding the orthogonal constraints if currently orthogonal.
func (l *Line) SetHorizontal(horizontal bool) {
	l.horizontal = horizontal
	l.SetOrthogonal(l.Orthogonal())
}

// Orthogonal reports whether the line is currently constrained to only
// right-angle segments.
func (l *Line) Orthogonal() bool {
	return len(l.orthogonalConstraints) > 0
}

// SetOrthogonal enables or disables orthogonal routing. Enabling it
// requires at least 3 handles.
func (l *Line) SetOrthogonal(orthogonal bool) {
	if orthogonal && len(l.handles) < 3 {
		panic("ganvas: can't set orthogonal line with less than 3 handles")
	}
	l.updateOrthogonalConstraints(orthogonal)
}

func (l *Line) updateOrthogonalConstraints(orthogonal bool) {
	for _, c := range l.orthogonalConstraints {
		l.connections.RemoveConstraint(l, c)
	}
	l.orthogonalConstraints = nil
	if !orthogonal {
		return
	}

	rest := 0
	if l.horizontal {
		rest = 1
	}
	cons := make([]Constraint, 0, len(l.handles)-1)
	for i := 0; i+1 < len(l.handles); i++ {
		p0, p1 := l.handles[i].pos, l.handles[i+1].pos
		var c Constraint
		if i%2 == rest {
			c = NewEqualsConstraint(p0.X, p1.X, 0)
		} else {
			c = NewEqualsConstraint(p0.Y, p1.Y, 0)
		}
		cons = append(cons, l.connections.AddConstraint(l, c))
	}
	l.orthogonalConstraints = cons
}

// Opposite returns the other end handle of the line, given one end
// handle. Panics if handle is not an end handle.
func (l *Line) Opposite(handle *Handle) *Handle {
	switch handle {
	case l.handles[0]:
		return l.handles[len(l.handles)-1]
	case l.handles[len(l.handles)-1]:
		return l.handles[0]
	default:
		panic("ganvas: handle is not an end handle")
	}
}

// InsertHandle adds handle at index and rebuilds the line's ports to
// match.
func (l *Line) InsertHandle(index int, handle *Handle) {
	l.handles = append(l.handles, nil)
	copy(l.handles[index+1:], l.handles[index:])
	l.handles[index] = handle
	l.rebuildPorts()
}

// RemoveHandle removes handle from the line and rebuilds its ports.
func (l *Line) RemoveHandle(handle *Handle) {
	for i, h := range l.handles {
		if h == handle {
			l.handles = append(l.handles[:i], l.handles[i+1:]...)
			l.rebuildPorts()
			return
		}
	}
}

// insertPort inserts port at index directly, without touching handles.
// SplitSegment/MergeSegment do not use it: they go through
// InsertHandle/RemoveHandle, which rebuild every port.
func (l *Line) insertPort(index int, port Port) {
	l.ports = append(l.ports, nil)
	copy(l.ports[index+1:], l.ports[index:])
	l.ports[index] = port
}

func (l *Line) removePortAt(index int) {
	l.ports = append(l.ports[:index], l.ports[index+1:]...)
}

// PostUpdate recomputes the head and tail angles from the first and
// last segments, for use by a host's arrowhead drawing.
func (l *Line) PostUpdate(ctx *Context) {
	l.itemBase.PostUpdate(ctx)
	p0, p1 := l.handles[0].pos, l.handles[1].pos
	l.headAngle = math.Atan2(p1.Y.Value()-p0.Y.Value(), p1.X.Value()-p0.X.Value())

	n := len(l.handles)
	p1, p0 = l.handles[n-2].pos, l.handles[n-1].pos
	l.tailAngle = math.Atan2(p0.Y.Value()-p1.Y.Value(), p0.X.Value()-p1.X.Value())
}

// HeadAngle returns the angle, in radians, of the line's first
// segment, as of the last PostUpdate.
func (l *Line) HeadAngle() float64 { return l.headAngle }

// TailAngle returns the angle, in radians, of the line's last segment,
// as of the last PostUpdate.
func (l *Line) TailAngle() float64 { return l.tailAngle }

// Handles returns the line's handles, head to tail.
func (l *Line) Handles() []*Handle {
	return l.handles
}

// Ports returns the line's segment ports, head to tail.
func (l *Line) Ports() []Port {
	return l.ports
}

// Point returns the distance from (x, y), in item coordinates, to the
// nearest point on the line, minus Fuzziness (floored at 0).
func (l *Line) Point(x, y float64) float64 {
	best := math.Inf(1)
	p := Point{X: x, Y: y}
	for i := 0; i+1 < len(l.handles); i++ {
		d, _ := DistanceLinePoint(l.handles[i].Point(), l.handles[i+1].Point(), p)
		if d < best {
			best = d
		}
	}
	d := best - l.fuzziness
	if d < 0 {
		return 0
	}
	return d
}

// Draw does nothing; Line carries no rendering concern of its own.
func (l *Line) Draw(*Context) {}
