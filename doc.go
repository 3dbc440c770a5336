// Package ganvas is an embeddable 2D diagramming engine core.
//
// Ganvas provides the retained-mode scene graph, constraint solver,
// connections registry, and spatial index that a diagram editor needs to
// keep shapes, lines, and their geometric coupling (stay-connected,
// orthogonal segments, alignment) consistent after every mutation. It
// does not render, does not open a window, and does not read input — the
// only thing it asks of a host application is a [Context] to pass through
// to [Item.Draw] and an implementation of [View] to receive update
// notifications.
//
// # Quick start
//
//	canvas := ganvas.NewCanvas()
//
//	a := ganvas.NewElement(canvas.Connections(), 40, 40)
//	a.Matrix().Translate(20, 20)
//	canvas.Add(a, nil, -1)
//
//	b := ganvas.NewElement(canvas.Connections(), 40, 40)
//	b.Matrix().Translate(100, 100)
//	canvas.Add(b, nil, -1)
//
//	line := ganvas.NewLine(canvas.Connections())
//	canvas.Add(line, nil, -1)
//
// Connect the line's endpoints to each element's edge port, then ask the
// canvas to resolve the scene:
//
//	canvas.Connections().ConnectItem(line, line.Head(), a, a.Ports()[0],
//		a.Ports()[0].Constraint(line, line.Head(), a), nil)
//	canvas.UpdateNow([]ganvas.Item{line}, nil)
//
// # Core pieces
//
// [Variable] and [Constraint] form the local propagation solver;
// [Solver] tracks which constraints are dirty and resolves them in
// weakest-variable order. [Matrix], [Position], and [MatrixProjection]
// carry affine transforms and coordinate pairs across item boundaries.
// [Handle] and [Port] are the connectable anchor points that
// [Connections] links together. [Item], [Element], and [Line] are the
// diagram primitives; [Tree] keeps them in depth-first order; [Canvas]
// composes all of the above into one update pipeline; [Quadtree] indexes
// item bounds for hit-testing.
package ganvas
