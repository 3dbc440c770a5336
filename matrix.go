package ganvas

import "math"

// MatrixHandler is notified after a Matrix mutates. prev is the
// matrix's 6-element tuple immediately before the change.
type MatrixHandler func(m *Matrix, prev [6]float64)

// Matrix is a 2D affine transform in the standard
// [xx, yx, xy, yy, x0, y0] layout: a point (x, y) maps to
//
//	x' = xx*x + xy*y + x0
//	y' = yx*x + yy*y + y0
type Matrix struct {
	xx, yx, xy, yy, x0, y0 float64
	handlers               map[*MatrixHandler]MatrixHandler
}

// NewMatrix returns the identity matrix.
func NewMatrix() *Matrix {
	return &Matrix{xx: 1, yy: 1}
}

// NewMatrixFrom builds a Matrix from explicit coefficients.
func NewMatrixFrom(xx, yx, xy, yy, x0, y0 float64) *Matrix {
	return &Matrix{xx: xx, yx: yx, xy: xy, yy: yy, x0: x0, y0: y0}
}

func (m *Matrix) tuple() [6]float64 {
	return [6]float64{m.xx, m.yx, m.xy, m.yy, m.x0, m.y0}
}

func (m *Matrix) setTuple(t [6]float64) {
	m.xx, m.yx, m.xy, m.yy, m.x0, m.y0 = t[0], t[1], t[2], t[3], t[4], t[5]
}

// AddHandler subscribes h to notifications fired after every mutating
// call (Translate, Rotate, Scale, Invert). The returned token can be
// passed to RemoveHandler.
func (m *Matrix) AddHandler(h MatrixHandler) *MatrixHandler {
	if m.handlers == nil {
		m.handlers = make(map[*MatrixHandler]MatrixHandler)
	}
	token := &h
	m.handlers[token] = h
	return token
}

// RemoveHandler unsubscribes a handler previously added with AddHandler.
func (m *Matrix) RemoveHandler(token *MatrixHandler) {
	delete(m.handlers, token)
}

func (m *Matrix) notify(prev [6]float64) {
	for _, h := range m.handlers {
		h(m, prev)
	}
}

// Translate shifts the matrix by (tx, ty).
func (m *Matrix) Translate(tx, ty float64) {
	prev := m.tuple()
	m.x0 += m.xx*tx + m.xy*ty
	m.y0 += m.yx*tx + m.yy*ty
	m.notify(prev)
}

// Scale scales the matrix by (sx, sy).
func (m *Matrix) Scale(sx, sy float64) {
	prev := m.tuple()
	m.xx *= sx
	m.yx *= sx
	m.xy *= sy
	m.yy *= sy
	m.notify(prev)
}

// Rotate rotates the matrix by radians.
func (m *Matrix) Rotate(radians float64) {
	prev := m.tuple()
	sin, cos := math.Sin(radians), math.Cos(radians)
	xx, yx, xy, yy := m.xx, m.yx, m.xy, m.yy
	m.xx = xx*cos + xy*sin
	m.yx = yx*cos + yy*sin
	m.xy = xy*cos - xx*sin
	m.yy = yy*cos - yx*sin
	m.notify(prev)
}

// Invert replaces the matrix in place with its own inverse. If the
// matrix is singular (determinant within 1e-12 of zero) it is reset to
// the identity.
func (m *Matrix) Invert() {
	prev := m.tuple()
	m.setTuple(invertAffine(prev))
	m.notify(prev)
}

// Inverse returns a new Matrix holding the inverse of m, leaving m
// unchanged.
func (m *Matrix) Inverse() *Matrix {
	inv := invertAffine(m.tuple())
	return NewMatrixFrom(inv[0], inv[1], inv[2], inv[3], inv[4], inv[5])
}

// Multiply returns a new Matrix equal to other applied after m
// (m is the child transform, other the parent). Neither operand is
// mutated and no handlers fire.
func (m *Matrix) Multiply(other *Matrix) *Matrix {
	t := multiplyAffine(other.tuple(), m.tuple())
	return NewMatrixFrom(t[0], t[1], t[2], t[3], t[4], t[5])
}

// TransformPoint maps (x, y) through the matrix.
func (m *Matrix) TransformPoint(x, y float64) (float64, float64) {
	return transformPoint(m.tuple(), x, y)
}

// TransformDistance maps a direction vector (dx, dy) through the
// matrix's linear part, ignoring translation.
func (m *Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.xx*dx + m.xy*dy, m.yx*dx + m.yy*dy
}

// Tuple returns the matrix's six coefficients in [xx, yx, xy, yy, x0,
// y0] order.
func (m *Matrix) Tuple() [6]float64 {
	return m.tuple()
}

// multiplyAffine composes parent*child: applying the result to a point
// is equivalent to applying child first, then parent.
func multiplyAffine(parent, child [6]float64) [6]float64 {
	pxx, pyx, pxy, pyy, px0, py0 := parent[0], parent[1], parent[2], parent[3], parent[4], parent[5]
	cxx, cyx, cxy, cyy, cx0, cy0 := child[0], child[1], child[2], child[3], child[4], child[5]

	return [6]float64{
		cxx*pxx + cyx*pxy,
		cxx*pyx + cyx*pyy,
		cxy*pxx + cyy*pxy,
		cxy*pyx + cyy*pyy,
		cx0*pxx + cy0*pxy + px0,
		cx0*pyx + cy0*pyy + py0,
	}
}

// invertAffine returns the inverse of m, or the identity if m is
// singular.
func invertAffine(m [6]float64) [6]float64 {
	xx, yx, xy, yy, x0, y0 := m[0], m[1], m[2], m[3], m[4], m[5]
	det := xx*yy - yx*xy
	if math.Abs(det) < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	invDet := 1 / det
	ixx := yy * invDet
	iyx := -yx * invDet
	ixy := -xy * invDet
	iyy := xx * invDet
	ix0 := -(x0*ixx + y0*ixy)
	iy0 := -(x0*iyx + y0*iyy)
	return [6]float64{ixx, iyx, ixy, iyy, ix0, iy0}
}

// transformPoint maps (x, y) through affine matrix m.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
