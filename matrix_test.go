package ganvas

import "testing"

func assertMatrix(t *testing.T, m *Matrix, xx, yx, xy, yy, x0, y0 float64) {
	t.Helper()
	got := m.Tuple()
	want := [6]float64{xx, yx, xy, yy, x0, y0}
	for i := range got {
		d := got[i] - want[i]
		if d < 0 {
			d = -d
		}
		if d > 1e-9 {
			t.Fatalf("matrix mismatch at index %d: got %v, want %v", i, got, want)
		}
	}
}

func TestMatrixIdentity(t *testing.T) {
	assertMatrix(t, NewMatrix(), 1, 0, 0, 1, 0, 0)
}

func TestMatrixTranslate(t *testing.T) {
	m := NewMatrix()
	m.Translate(10, 5)
	x, y := m.TransformPoint(0, 0)
	assertNear(t, x, 10)
	assertNear(t, y, 5)
}

func TestMatrixScale(t *testing.T) {
	m := NewMatrix()
	m.Scale(2, 3)
	x, y := m.TransformPoint(1, 1)
	assertNear(t, x, 2)
	assertNear(t, y, 3)
}

func TestMatrixRotate90(t *testing.T) {
	m := NewMatrix()
	m.Rotate(halfPi)
	x, y := m.TransformPoint(1, 0)
	assertNear(t, x, 0)
	assertNear(t, y, 1)
}

func TestMatrixInverseRoundTrip(t *testing.T) {
	m := NewMatrix()
	m.Translate(5, 7)
	m.Rotate(0.4)
	m.Scale(2, 0.5)

	inv := m.Inverse()
	x, y := m.TransformPoint(3, 4)
	x2, y2 := inv.TransformPoint(x, y)
	assertNear(t, x2, 3)
	assertNear(t, y2, 4)
}

func TestMatrixInvertInPlaceSingular(t *testing.T) {
	m := NewMatrixFrom(0, 0, 0, 0, 5, 5)
	m.Invert()
	assertMatrix(t, m, 1, 0, 0, 1, 0, 0)
}

func TestMatrixMultiplyDoesNotMutateOperands(t *testing.T) {
	parent := NewMatrix()
	parent.Translate(10, 0)
	child := NewMatrix()
	child.Translate(0, 10)

	combined := parent.Multiply(child)

	x, y := combined.TransformPoint(0, 0)
	assertNear(t, x, 10)
	assertNear(t, y, 10)

	px, py := parent.TransformPoint(0, 0)
	assertNear(t, px, 10)
	assertNear(t, py, 0)
}

func TestMatrixAddHandlerFiresOnMutation(t *testing.T) {
	m := NewMatrix()
	var gotPrev [6]float64
	fired := 0
	m.AddHandler(func(got *Matrix, prev [6]float64) {
		fired++
		gotPrev = prev
	})

	m.Translate(1, 2)
	if fired != 1 {
		t.Fatalf("expected 1 notification, got %d", fired)
	}
	assertMatrix0(t, gotPrev, 1, 0, 0, 1, 0, 0)
}

func assertMatrix0(t *testing.T, got [6]float64, xx, yx, xy, yy, x0, y0 float64) {
	t.Helper()
	want := [6]float64{xx, yx, xy, yy, x0, y0}
	for i := range got {
		d := got[i] - want[i]
		if d < 0 {
			d = -d
		}
		if d > 1e-9 {
			t.Fatalf("tuple mismatch at index %d: got %v, want %v", i, got, want)
		}
	}
}

const halfPi = 1.5707963267948966
