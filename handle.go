package ganvas

// Handle is a connectable, movable anchor point on an Item, expressed
// in that item's own coordinate space.
type Handle struct {
	pos         *Position
	connectable bool
	movable     bool
	visible     bool
	glued       bool
}

// NewHandle creates a handle at (x, y) with Normal strength, movable
// and visible but not connectable by default.
func NewHandle(x, y float64) *Handle {
	return &Handle{
		pos:     NewPosition(x, y, Normal),
		movable: true,
		visible: true,
	}
}

// Pos returns the handle's position.
func (h *Handle) Pos() *Position {
	return h.pos
}

// SetPoint moves the handle directly, bypassing the solver.
func (h *Handle) SetPoint(pt Point) {
	h.pos.SetPoint(pt)
}

// Point returns the handle's current coordinates.
func (h *Handle) Point() Point {
	return h.pos.Point()
}

// Connectable reports whether this handle may be glued to another
// item's port.
func (h *Handle) Connectable() bool {
	return h.connectable
}

// SetConnectable controls whether this handle may be glued to another
// item's port.
func (h *Handle) SetConnectable(v bool) {
	h.connectable = v
}

// Movable reports whether a user can drag this handle directly.
func (h *Handle) Movable() bool {
	return h.movable
}

// SetMovable controls whether this handle can be dragged directly.
func (h *Handle) SetMovable(v bool) {
	h.movable = v
}

// Visible reports whether this handle should be drawn.
func (h *Handle) Visible() bool {
	return h.visible
}

// SetVisible controls whether this handle should be drawn.
func (h *Handle) SetVisible(v bool) {
	h.visible = v
}

// Glued reports whether the handle is currently being dragged toward a
// potential connection target.
func (h *Handle) Glued() bool {
	return h.glued
}

// SetGlued marks the handle as glued or released.
func (h *Handle) SetGlued(v bool) {
	h.glued = v
}
